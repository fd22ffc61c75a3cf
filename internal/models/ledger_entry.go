package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// LedgerEntry is a row of the ledger_entries table.
type LedgerEntry struct {
	EntryID       string          `db:"entry_id"`
	OwnerID       string          `db:"owner_id"`
	BankAccountID string          `db:"bank_account_id"`
	Kind          string          `db:"kind"`
	Amount        decimal.Decimal `db:"amount"`
	EntryDate     time.Time       `db:"entry_date"`
	Memo          string          `db:"memo"`
	Reversed      bool            `db:"reversed"`
	ReversalOf    *string         `db:"reversal_of"`    // Nullable
	BillID        *string         `db:"bill_id"`        // Nullable
	PaymentMethod *string         `db:"payment_method"` // Nullable
	CardID        *string         `db:"card_id"`        // Nullable
	AuditFields
}
