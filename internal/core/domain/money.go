package domain

import "github.com/shopspring/decimal"

// MoneyScale is the number of fraction digits every stored amount carries.
const MoneyScale = 2

// Cent is the smallest representable amount.
var Cent = decimal.New(1, -MoneyScale)

// ValidAmount reports whether d is strictly positive with at most two fraction digits.
func ValidAmount(d decimal.Decimal) bool {
	return d.IsPositive() && HasMoneyScale(d)
}

// HasMoneyScale reports whether d carries no more than two fraction digits.
func HasMoneyScale(d decimal.Decimal) bool {
	return d.Equal(d.Truncate(MoneyScale))
}
