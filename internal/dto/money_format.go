package dto

import (
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// MoneyFormatter renders decimal amounts for display in the configured currency.
type MoneyFormatter struct {
	currencyCode string
}

// NewMoneyFormatter creates a formatter for an ISO 4217 currency code.
func NewMoneyFormatter(currencyCode string) MoneyFormatter {
	return MoneyFormatter{currencyCode: currencyCode}
}

// Format renders amount with the currency's grapheme and separators, e.g. R$1.234,56.
func (f MoneyFormatter) Format(amount decimal.Decimal) string {
	cents := amount.Round(2).Shift(2).IntPart()
	return money.New(cents, f.currencyCode).Display()
}
