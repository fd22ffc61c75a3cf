package domain

import "github.com/shopspring/decimal"

// BankAccount is an owner's checking, savings or wallet account.
// Balance is a cache of the ledger and is recomputed on every posting.
type BankAccount struct {
	AccountID string          `json:"accountID"`
	OwnerID   string          `json:"ownerID"`
	Name      string          `json:"name"`
	BankLabel string          `json:"bankLabel"`
	Balance   decimal.Decimal `json:"balance"`
	IsActive  bool            `json:"isActive"`
	AuditFields
}
