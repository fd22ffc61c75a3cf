package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Bill is a row of the bills table. Payment columns are all NULL until the bill is paid.
type Bill struct {
	BillID           string          `db:"bill_id"`
	OwnerID          string          `db:"owner_id"`
	Name             string          `db:"name"`
	VendorID         string          `db:"vendor_id"`
	DueDate          time.Time       `db:"due_date"`
	Amount           decimal.Decimal `db:"amount"`
	Status           string          `db:"status"` // PENDING, PAID or CANCELLED; OVERDUE is never stored
	PlanID           *string         `db:"plan_id"`
	InstallmentIndex int             `db:"installment_index"`
	InstallmentCount int             `db:"installment_count"`

	PaymentMethod        *string          `db:"payment_method"`
	PaymentBankAccountID *string          `db:"payment_bank_account_id"`
	PaymentCardID        *string          `db:"payment_card_id"`
	PaymentInterest      *decimal.Decimal `db:"payment_interest"`
	PaidAt               *time.Time       `db:"paid_at"`
	PaymentLedgerEntryID *string          `db:"payment_ledger_entry_id"`

	CancelledAt *time.Time `db:"cancelled_at"`
	AuditFields
}
