package models

import "github.com/shopspring/decimal"

// BankAccount is a row of the bank_accounts table.
type BankAccount struct {
	AccountID string          `db:"account_id"`
	OwnerID   string          `db:"owner_id"`
	Name      string          `db:"name"`
	BankLabel string          `db:"bank_label"`
	Balance   decimal.Decimal `db:"balance"` // Cache, recomputed from ledger_entries
	IsActive  bool            `db:"is_active"`
	AuditFields
}
