package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryKind classifies a ledger entry.
type EntryKind string

const (
	Inflow         EntryKind = "INFLOW"
	Outflow        EntryKind = "OUTFLOW"
	OpeningBalance EntryKind = "OPENING_BALANCE"
)

// Valid reports whether k is a known entry kind.
func (k EntryKind) Valid() bool {
	switch k {
	case Inflow, Outflow, OpeningBalance:
		return true
	}
	return false
}

// LedgerEntry is an immutable movement on a bank account. The only mutation ever
// applied to a stored entry is setting Reversed. Reversing appends a record entry
// whose ReversalOf points at the original; records never count toward balances.
type LedgerEntry struct {
	EntryID       string          `json:"entryID"`
	OwnerID       string          `json:"ownerID"`
	BankAccountID string          `json:"bankAccountID"`
	Kind          EntryKind       `json:"kind"`
	Amount        decimal.Decimal `json:"amount"` // Always positive; direction comes from Kind
	EntryDate     time.Time       `json:"entryDate"`
	Memo          string          `json:"memo"`
	Reversed      bool            `json:"reversed"`
	ReversalOf    *string         `json:"reversalOf,omitempty"`
	BillID        *string         `json:"billID,omitempty"`
	PaymentMethod PaymentMethod   `json:"paymentMethod,omitempty"`
	CardID        *string         `json:"cardID,omitempty"`
	AuditFields
}

// IsReversalRecord reports whether e was appended by a reversal.
func (e LedgerEntry) IsReversalRecord() bool {
	return e.ReversalOf != nil
}

// IsBillPayment reports whether e was posted by paying a bill.
func (e LedgerEntry) IsBillPayment() bool {
	return e.BillID != nil
}

// Counts reports whether e contributes to balances and reports.
func (e LedgerEntry) Counts() bool {
	return !e.Reversed && !e.IsReversalRecord()
}

// SignedAmount returns the balance contribution of e, ignoring whether it counts.
func (e LedgerEntry) SignedAmount() decimal.Decimal {
	if e.Kind == Outflow {
		return e.Amount.Neg()
	}
	return e.Amount
}

// ComputeBalance folds entries into a balance: counted INFLOW and OPENING_BALANCE
// minus counted OUTFLOW, restricted to entries dated on or before asOf when given.
func ComputeBalance(entries []LedgerEntry, asOf *time.Time) decimal.Decimal {
	balance := decimal.Zero
	for _, e := range entries {
		if !e.Counts() {
			continue
		}
		if asOf != nil && e.EntryDate.After(*asOf) {
			continue
		}
		balance = balance.Add(e.SignedAmount())
	}
	return balance
}
