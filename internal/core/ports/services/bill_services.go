package services

import (
	"context"

	"github.com/SscSPs/contas_app/internal/core/domain"
	"github.com/SscSPs/contas_app/internal/dto"
)

// BillReaderSvc defines read operations for bills. Returned bills carry their
// effective status, so overdue bills read as OVERDUE.
type BillReaderSvc interface {
	GetBill(ctx context.Context, ownerID, billID string) (*domain.Bill, error)
	ListBills(ctx context.Context, ownerID string, params dto.ListBillsParams) ([]domain.Bill, error)
	GetPlan(ctx context.Context, ownerID, planID string) ([]domain.Bill, error)
}

// BillWriterSvc defines the bill lifecycle operations
type BillWriterSvc interface {
	// CreateBill creates a single bill or every installment of a plan.
	CreateBill(ctx context.Context, ownerID string, req dto.CreateBillRequest) ([]domain.Bill, error)

	// UpdateBill edits an open bill, optionally propagating the amount to later open installments.
	UpdateBill(ctx context.Context, ownerID, billID string, req dto.UpdateBillRequest) ([]domain.Bill, error)

	// PayBill marks a bill paid and posts the matching outflow in one transaction.
	PayBill(ctx context.Context, ownerID, billID string, req dto.PayBillRequest) (*domain.Bill, error)

	CancelBill(ctx context.Context, ownerID, billID string) (*domain.Bill, error)

	// DeleteBill soft-cancels a bill and reports the plan's remaining open installments.
	DeleteBill(ctx context.Context, ownerID, billID string) (*domain.DeleteBillResult, error)

	// CancelAllRemaining cancels every open installment of the bill's plan.
	CancelAllRemaining(ctx context.Context, ownerID, billID string) (*domain.CancelRemainingResult, error)
}

// BillSvcFacade combines all bill service interfaces
type BillSvcFacade interface {
	BillReaderSvc
	BillWriterSvc
}

// BillNotifier delivers bill lifecycle events to the notification collaborator.
type BillNotifier interface {
	NotifyBillEvent(ctx context.Context, event domain.BillEvent) error
}
