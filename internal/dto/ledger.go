package dto

import (
	"time"

	"github.com/SscSPs/contas_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// PostEntryRequest defines the data needed to post a ledger entry.
type PostEntryRequest struct {
	Kind          domain.EntryKind     `json:"kind" binding:"required,oneof=INFLOW OUTFLOW OPENING_BALANCE"`
	Amount        decimal.Decimal      `json:"amount" binding:"money" swaggertype:"string" example:"100.00"`
	EntryDate     Date                 `json:"entryDate" swaggertype:"string" example:"2025-02-01"`
	Memo          string               `json:"memo" binding:"max=255"`
	PaymentMethod domain.PaymentMethod `json:"paymentMethod"` // Optional, attributes outflows in payment reports
	CardID        *string              `json:"cardID"`        // Optional
}

// OpeningBalanceRequest resets the opening balance of an account.
type OpeningBalanceRequest struct {
	Amount    decimal.Decimal `json:"amount" binding:"money" swaggertype:"string" example:"1000.00"`
	EntryDate Date            `json:"entryDate" swaggertype:"string" example:"2025-02-01"`
}

// LedgerEntryResponse defines the data returned for a ledger entry.
type LedgerEntryResponse struct {
	EntryID       string               `json:"entryID"`
	BankAccountID string               `json:"bankAccountID"`
	Kind          domain.EntryKind     `json:"kind"`
	Amount        decimal.Decimal      `json:"amount"`
	EntryDate     Date                 `json:"entryDate"`
	Memo          string               `json:"memo"`
	Reversed      bool                 `json:"reversed"`
	ReversalOf    *string              `json:"reversalOf,omitempty"`
	BillID        *string              `json:"billID,omitempty"`
	PaymentMethod domain.PaymentMethod `json:"paymentMethod,omitempty"`
	CardID        *string              `json:"cardID,omitempty"`
	CreatedAt     time.Time            `json:"createdAt"`
}

// ToLedgerEntryResponse converts a domain.LedgerEntry to its response DTO
func ToLedgerEntryResponse(e *domain.LedgerEntry) LedgerEntryResponse {
	return LedgerEntryResponse{
		EntryID:       e.EntryID,
		BankAccountID: e.BankAccountID,
		Kind:          e.Kind,
		Amount:        e.Amount,
		EntryDate:     NewDate(e.EntryDate),
		Memo:          e.Memo,
		Reversed:      e.Reversed,
		ReversalOf:    e.ReversalOf,
		BillID:        e.BillID,
		PaymentMethod: e.PaymentMethod,
		CardID:        e.CardID,
		CreatedAt:     e.CreatedAt,
	}
}

// ListEntriesParams defines query parameters for listing ledger entries.
type ListEntriesParams struct {
	Limit     int     `form:"limit,default=20" binding:"min=1,max=100"`
	NextToken *string `form:"nextToken"`
}

// ListEntriesResponse wraps a page of ledger entries.
type ListEntriesResponse struct {
	Entries   []LedgerEntryResponse `json:"entries"`
	NextToken *string               `json:"nextToken,omitempty"`
}

// ToListEntriesResponse converts a page of entries
func ToListEntriesResponse(entries []domain.LedgerEntry, nextToken *string) ListEntriesResponse {
	res := ListEntriesResponse{Entries: make([]LedgerEntryResponse, len(entries)), NextToken: nextToken}
	for i := range entries {
		res.Entries[i] = ToLedgerEntryResponse(&entries[i])
	}
	return res
}
