package dto

import (
	"time"

	"github.com/SscSPs/contas_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ManualInstallmentRequest is one caller supplied installment in MANUAL mode.
type ManualInstallmentRequest struct {
	Amount  decimal.Decimal `json:"amount" binding:"money" swaggertype:"string" example:"150.00"`
	DueDate Date            `json:"dueDate" swaggertype:"string" example:"2025-03-10"`
}

// CreateBillRequest defines the data needed to create a bill or an installment plan.
type CreateBillRequest struct {
	Name             string                     `json:"name" binding:"required,max=120"`
	VendorID         string                     `json:"vendorID" binding:"required"`
	DueDate          Date                       `json:"dueDate" swaggertype:"string" example:"2025-02-10"`
	Amount           decimal.Decimal            `json:"amount" binding:"money" swaggertype:"string" example:"300.00"`
	InstallmentCount int                        `json:"installmentCount" binding:"omitempty,min=1"` // Defaults to 1
	Mode             domain.InstallmentMode     `json:"mode"`                                       // Defaults to SPLIT
	Installments     []ManualInstallmentRequest `json:"installments" binding:"omitempty,dive"`      // MANUAL mode only
}

// PayBillRequest defines the data needed to pay a bill.
type PayBillRequest struct {
	PaymentMethod domain.PaymentMethod `json:"paymentMethod" binding:"required"`
	BankAccountID string               `json:"bankAccountID" binding:"required"`
	CardID        *string              `json:"cardID"`
	Interest      *decimal.Decimal     `json:"interest" binding:"omitempty,decimal2" swaggertype:"string"`
	PaidAt        *Date                `json:"paidAt" swaggertype:"string"` // Defaults to today
}

// UpdateBillRequest defines the editable fields of an open bill.
// Use pointers to distinguish between zero-value updates and fields not provided.
type UpdateBillRequest struct {
	Name             *string          `json:"name" binding:"omitempty,max=120"`
	DueDate          *Date            `json:"dueDate" swaggertype:"string"`
	Amount           *decimal.Decimal `json:"amount" binding:"omitempty,money" swaggertype:"string"`
	VendorID         *string          `json:"vendorID"`
	ApplyToRemaining bool             `json:"applyToRemaining"` // Re-amortize later open installments so the plan total is kept
}

// ListBillsParams defines query parameters for listing bills.
type ListBillsParams struct {
	Year     int    `form:"year" binding:"omitempty,min=1970,max=9999"`
	Month    int    `form:"month" binding:"omitempty,min=1,max=12"`
	Status   string `form:"status" binding:"omitempty,oneof=PENDING OVERDUE PAID CANCELLED"`
	VendorID string `form:"vendorID"`
}

// ToBillFilter converts list parameters into a repository filter.
func (p ListBillsParams) ToBillFilter() domain.BillFilter {
	return domain.BillFilter{
		Year:     p.Year,
		Month:    time.Month(p.Month),
		Status:   domain.BillStatus(p.Status),
		VendorID: p.VendorID,
	}
}

// PaymentResponse describes how a bill was settled.
type PaymentResponse struct {
	Method        domain.PaymentMethod `json:"method"`
	BankAccountID string               `json:"bankAccountID"`
	CardID        *string              `json:"cardID,omitempty"`
	Interest      decimal.Decimal      `json:"interest"`
	PaidAt        Date                 `json:"paidAt"`
	LedgerEntryID string               `json:"ledgerEntryID"`
}

// BillResponse defines the data returned for a bill.
type BillResponse struct {
	BillID           string            `json:"billID"`
	Name             string            `json:"name"`
	VendorID         string            `json:"vendorID"`
	DueDate          Date              `json:"dueDate"`
	Amount           decimal.Decimal   `json:"amount"`
	Status           domain.BillStatus `json:"status"`
	PlanID           *string           `json:"planID,omitempty"`
	InstallmentIndex int               `json:"installmentIndex"`
	InstallmentCount int               `json:"installmentCount"`
	Payment          *PaymentResponse  `json:"payment,omitempty"`
	CancelledAt      *time.Time        `json:"cancelledAt,omitempty"`
	CreatedAt        time.Time         `json:"createdAt"`
	LastUpdatedAt    time.Time         `json:"lastUpdatedAt"`
}

// ToBillResponse converts a domain.Bill to its response DTO
func ToBillResponse(b *domain.Bill) BillResponse {
	res := BillResponse{
		BillID:           b.BillID,
		Name:             b.Name,
		VendorID:         b.VendorID,
		DueDate:          NewDate(b.DueDate),
		Amount:           b.Amount,
		Status:           b.Status,
		PlanID:           b.PlanID,
		InstallmentIndex: b.InstallmentIndex,
		InstallmentCount: b.InstallmentCount,
		CancelledAt:      b.CancelledAt,
		CreatedAt:        b.CreatedAt,
		LastUpdatedAt:    b.LastUpdatedAt,
	}
	if p := b.Payment; p != nil {
		res.Payment = &PaymentResponse{
			Method:        p.Method,
			BankAccountID: p.BankAccountID,
			CardID:        p.CardID,
			Interest:      p.Interest,
			PaidAt:        NewDate(p.PaidAt),
			LedgerEntryID: p.LedgerEntryID,
		}
	}
	return res
}

// ToListBillResponse converts a slice of bills
func ToListBillResponse(bills []domain.Bill) []BillResponse {
	res := make([]BillResponse, len(bills))
	for i := range bills {
		res[i] = ToBillResponse(&bills[i])
	}
	return res
}
