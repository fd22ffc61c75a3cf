package repositories

import (
	"context"

	"github.com/SscSPs/contas_app/internal/core/domain"
)

// BillReader defines read operations for bills
type BillReader interface {
	// FindBillByID retrieves an owner's bill with its stored status.
	FindBillByID(ctx context.Context, ownerID, billID string) (*domain.Bill, error)

	// FindBillsByPlan retrieves every installment of a plan ordered by installment index.
	FindBillsByPlan(ctx context.Context, ownerID, planID string) ([]domain.Bill, error)

	// ListBills retrieves an owner's bills ordered by due date then installment index.
	// Month/year filter on due date; a Pending or Overdue status filter matches stored Pending.
	ListBills(ctx context.Context, ownerID string, filter domain.BillFilter) ([]domain.Bill, error)
}

// BillWriter defines write operations for bills
type BillWriter interface {
	// SaveBills inserts new bills, typically every installment of a plan at once.
	SaveBills(ctx context.Context, bills []domain.Bill) error

	// UpdateBill overwrites the mutable fields of a bill (details, status, payment, cancellation).
	UpdateBill(ctx context.Context, bill domain.Bill) error
}

// BillTransactionSupport defines operations that support transactional workflows
type BillTransactionSupport interface {
	// FindBillForUpdate retrieves a bill and locks it until the transaction ends.
	FindBillForUpdate(ctx context.Context, ownerID, billID string) (*domain.Bill, error)

	// FindBillsByPlanForUpdate retrieves and locks every installment of a plan.
	FindBillsByPlanForUpdate(ctx context.Context, ownerID, planID string) ([]domain.Bill, error)
}

// BillRepositoryFacade combines all bill repository interfaces
type BillRepositoryFacade interface {
	BillReader
	BillWriter
	BillTransactionSupport
}
