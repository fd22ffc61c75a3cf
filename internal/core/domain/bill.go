package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// BillStatus is the lifecycle state of a bill. Only Pending, Paid and Cancelled are
// stored; Overdue is derived when reading.
type BillStatus string

const (
	BillPending   BillStatus = "PENDING"
	BillOverdue   BillStatus = "OVERDUE"
	BillPaid      BillStatus = "PAID"
	BillCancelled BillStatus = "CANCELLED"
)

// Valid reports whether s is a known status.
func (s BillStatus) Valid() bool {
	switch s {
	case BillPending, BillOverdue, BillPaid, BillCancelled:
		return true
	}
	return false
}

// PaymentMethod is how a bill or ledger outflow was paid.
type PaymentMethod string

const (
	PaymentPix          PaymentMethod = "PIX"
	PaymentBoleto       PaymentMethod = "BOLETO"
	PaymentDebitCard    PaymentMethod = "DEBIT_CARD"
	PaymentCreditCard   PaymentMethod = "CREDIT_CARD"
	PaymentCash         PaymentMethod = "CASH"
	PaymentBankTransfer PaymentMethod = "BANK_TRANSFER"
	PaymentOther        PaymentMethod = "OTHER"
)

// PaymentMethods lists every accepted payment method in display order.
var PaymentMethods = []PaymentMethod{
	PaymentPix, PaymentBoleto, PaymentDebitCard, PaymentCreditCard,
	PaymentCash, PaymentBankTransfer, PaymentOther,
}

// Valid reports whether m is an accepted payment method.
func (m PaymentMethod) Valid() bool {
	for _, known := range PaymentMethods {
		if m == known {
			return true
		}
	}
	return false
}

// InstallmentMode selects how a multi-installment bill is expanded.
type InstallmentMode string

const (
	// ModeSplit divides the total evenly, the last installment absorbing the remainder.
	ModeSplit InstallmentMode = "SPLIT"
	// ModeSameAmount repeats the given amount for every installment.
	ModeSameAmount InstallmentMode = "SAME_AMOUNT_REMAINING"
	// ModeManual takes caller supplied amounts and due dates.
	ModeManual InstallmentMode = "MANUAL"
)

// Valid reports whether m is a known installment mode.
func (m InstallmentMode) Valid() bool {
	switch m {
	case ModeSplit, ModeSameAmount, ModeManual:
		return true
	}
	return false
}

// Payment records how a bill was settled.
type Payment struct {
	Method        PaymentMethod   `json:"method"`
	BankAccountID string          `json:"bankAccountID"`
	CardID        *string         `json:"cardID,omitempty"`
	Interest      decimal.Decimal `json:"interest"`
	PaidAt        time.Time       `json:"paidAt"`
	LedgerEntryID string          `json:"ledgerEntryID"`
}

// Bill is an obligation owed to a vendor. Installments of one plan share PlanID and
// are numbered 1..InstallmentCount in chronological order.
type Bill struct {
	BillID           string          `json:"billID"`
	OwnerID          string          `json:"ownerID"`
	Name             string          `json:"name"`
	VendorID         string          `json:"vendorID"`
	DueDate          time.Time       `json:"dueDate"`
	Amount           decimal.Decimal `json:"amount"`
	Status           BillStatus      `json:"status"`
	PlanID           *string         `json:"planID,omitempty"`
	InstallmentIndex int             `json:"installmentIndex"`
	InstallmentCount int             `json:"installmentCount"`
	Payment          *Payment        `json:"payment,omitempty"`
	CancelledAt      *time.Time      `json:"cancelledAt,omitempty"`
	AuditFields
}

// EffectiveStatus derives the status seen by readers: a pending bill whose due date
// is before today is overdue.
func (b Bill) EffectiveStatus(today time.Time) BillStatus {
	if b.Status == BillPending && b.DueDate.Before(today) {
		return BillOverdue
	}
	return b.Status
}

// WithEffectiveStatus returns a copy of b carrying its derived status.
func (b Bill) WithEffectiveStatus(today time.Time) Bill {
	b.Status = b.EffectiveStatus(today)
	return b
}

// IsOpen reports whether the bill can still be paid or cancelled.
func (b Bill) IsOpen() bool {
	return b.Status == BillPending || b.Status == BillOverdue
}

// IsInstallment reports whether the bill belongs to a plan.
func (b Bill) IsInstallment() bool {
	return b.PlanID != nil
}

// TotalPaid is the amount that left the bank account when the bill was paid.
func (b Bill) TotalPaid() decimal.Decimal {
	if b.Payment == nil {
		return decimal.Zero
	}
	return b.Amount.Add(b.Payment.Interest)
}

// BillFilter narrows bill listings. Zero values mean no restriction.
type BillFilter struct {
	Year     int
	Month    time.Month
	Status   BillStatus
	VendorID string
	PlanID   string
}

// DeleteBillResult reports the outcome of deleting a bill.
type DeleteBillResult struct {
	Deleted                  bool `json:"deleted"`
	HasRemainingInstallments bool `json:"hasRemainingInstallments"`
	RemainingCount           int  `json:"remainingCount"`
}

// CancelRemainingResult reports how many installments were cancelled.
type CancelRemainingResult struct {
	CancelledCount int `json:"cancelledCount"`
}

// BillEventType names a bill lifecycle notification.
type BillEventType string

const (
	BillCreatedEvent   BillEventType = "BILL_CREATED"
	BillPaidEvent      BillEventType = "BILL_PAID"
	BillCancelledEvent BillEventType = "BILL_CANCELLED"
)

// BillEvent is emitted after a bill mutation commits.
type BillEvent struct {
	Type       BillEventType   `json:"type"`
	OwnerID    string          `json:"ownerID"`
	BillID     string          `json:"billID"`
	PlanID     *string         `json:"planID,omitempty"`
	Name       string          `json:"name"`
	Amount     decimal.Decimal `json:"amount"`
	DueDate    time.Time       `json:"dueDate"`
	OccurredAt time.Time       `json:"occurredAt"`
}

// NewBillEvent builds an event describing b.
func NewBillEvent(t BillEventType, b Bill, at time.Time) BillEvent {
	return BillEvent{
		Type:       t,
		OwnerID:    b.OwnerID,
		BillID:     b.BillID,
		PlanID:     b.PlanID,
		Name:       b.Name,
		Amount:     b.Amount,
		DueDate:    b.DueDate,
		OccurredAt: at,
	}
}
