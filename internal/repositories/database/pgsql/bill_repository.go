package pgsql

import (
	"context"
	"fmt"
	"strings"

	"github.com/SscSPs/contas_app/internal/apperrors"
	"github.com/SscSPs/contas_app/internal/core/domain"
	portsrepo "github.com/SscSPs/contas_app/internal/core/ports/repositories"
	"github.com/SscSPs/contas_app/internal/models"
	"github.com/SscSPs/contas_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
)

const billColumns = `bill_id, owner_id, name, vendor_id, due_date, amount, status, plan_id,
	installment_index, installment_count,
	payment_method, payment_bank_account_id, payment_card_id, payment_interest, paid_at, payment_ledger_entry_id,
	cancelled_at, created_at, created_by, last_updated_at, last_updated_by`

type PgxBillRepository struct {
	db querier
}

var _ portsrepo.BillRepositoryFacade = (*PgxBillRepository)(nil)

// SaveBills inserts every bill in one round trip.
func (r *PgxBillRepository) SaveBills(ctx context.Context, bills []domain.Bill) error {
	if len(bills) == 0 {
		return nil
	}
	query := `INSERT INTO bills (` + billColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21)`

	batch := &pgx.Batch{}
	for _, b := range bills {
		m := mapping.ToModelBill(b)
		batch.Queue(query,
			m.BillID, m.OwnerID, m.Name, m.VendorID, m.DueDate, m.Amount, m.Status, m.PlanID,
			m.InstallmentIndex, m.InstallmentCount,
			m.PaymentMethod, m.PaymentBankAccountID, m.PaymentCardID, m.PaymentInterest, m.PaidAt, m.PaymentLedgerEntryID,
			m.CancelledAt, m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
		)
	}

	results := r.db.SendBatch(ctx, batch)
	for _, b := range bills {
		if _, err := results.Exec(); err != nil {
			_ = results.Close()
			if isUniqueViolation(err) {
				return fmt.Errorf("%w: bill %s", apperrors.ErrDuplicate, b.BillID)
			}
			return fmt.Errorf("failed to save bill %s: %w", b.BillID, err)
		}
	}
	if err := results.Close(); err != nil {
		return fmt.Errorf("failed to save bills: %w", err)
	}
	return nil
}

// UpdateBill overwrites the mutable fields of a bill.
func (r *PgxBillRepository) UpdateBill(ctx context.Context, bill domain.Bill) error {
	m := mapping.ToModelBill(bill)
	query := `
		UPDATE bills SET
			name = $3, vendor_id = $4, due_date = $5, amount = $6, status = $7,
			payment_method = $8, payment_bank_account_id = $9, payment_card_id = $10,
			payment_interest = $11, paid_at = $12, payment_ledger_entry_id = $13,
			cancelled_at = $14, last_updated_at = $15, last_updated_by = $16
		WHERE owner_id = $1 AND bill_id = $2;
	`
	tag, err := r.db.Exec(ctx, query,
		m.OwnerID, m.BillID,
		m.Name, m.VendorID, m.DueDate, m.Amount, m.Status,
		m.PaymentMethod, m.PaymentBankAccountID, m.PaymentCardID,
		m.PaymentInterest, m.PaidAt, m.PaymentLedgerEntryID,
		m.CancelledAt, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	return expectOneRow(tag, err, "bill "+m.BillID)
}

func (r *PgxBillRepository) FindBillByID(ctx context.Context, ownerID, billID string) (*domain.Bill, error) {
	return r.findOne(ctx, ownerID, billID, "")
}

func (r *PgxBillRepository) FindBillForUpdate(ctx context.Context, ownerID, billID string) (*domain.Bill, error) {
	return r.findOne(ctx, ownerID, billID, "FOR UPDATE")
}

func (r *PgxBillRepository) findOne(ctx context.Context, ownerID, billID, lock string) (*domain.Bill, error) {
	rows, err := r.db.Query(ctx, `SELECT `+billColumns+` FROM bills WHERE owner_id = $1 AND bill_id = $2 `+lock, ownerID, billID)
	m, err := collectOne[models.Bill](rows, err, "bill "+billID)
	if err != nil {
		return nil, err
	}
	b := mapping.ToDomainBill(*m)
	return &b, nil
}

func (r *PgxBillRepository) FindBillsByPlan(ctx context.Context, ownerID, planID string) ([]domain.Bill, error) {
	return r.findPlan(ctx, ownerID, planID, "")
}

// FindBillsByPlanForUpdate locks the installments in index order so that
// concurrent plan-wide operations acquire row locks in the same sequence.
func (r *PgxBillRepository) FindBillsByPlanForUpdate(ctx context.Context, ownerID, planID string) ([]domain.Bill, error) {
	return r.findPlan(ctx, ownerID, planID, "FOR UPDATE")
}

func (r *PgxBillRepository) findPlan(ctx context.Context, ownerID, planID, lock string) ([]domain.Bill, error) {
	query := `SELECT ` + billColumns + ` FROM bills WHERE owner_id = $1 AND plan_id = $2 ORDER BY installment_index ` + lock
	rows, err := r.db.Query(ctx, query, ownerID, planID)
	list, err := collectAll[models.Bill](rows, err, "plan "+planID)
	if err != nil {
		return nil, err
	}
	return toDomainBills(list), nil
}

// ListBills filters on due month/year, vendor, plan and stored status.
func (r *PgxBillRepository) ListBills(ctx context.Context, ownerID string, filter domain.BillFilter) ([]domain.Bill, error) {
	conds := []string{"owner_id = $1"}
	args := []any{ownerID}
	add := func(cond string, arg any) {
		args = append(args, arg)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}

	if filter.Year != 0 {
		add("EXTRACT(YEAR FROM due_date) = $%d", filter.Year)
	}
	if filter.Month != 0 {
		add("EXTRACT(MONTH FROM due_date) = $%d", int(filter.Month))
	}
	if filter.VendorID != "" {
		add("vendor_id = $%d", filter.VendorID)
	}
	if filter.PlanID != "" {
		add("plan_id = $%d", filter.PlanID)
	}
	switch filter.Status {
	case "":
	case domain.BillPending, domain.BillOverdue:
		add("status = $%d", string(domain.BillPending))
	default:
		add("status = $%d", string(filter.Status))
	}

	query := `SELECT ` + billColumns + ` FROM bills WHERE ` + strings.Join(conds, " AND ") +
		` ORDER BY due_date, installment_index, bill_id`
	rows, err := r.db.Query(ctx, query, args...)
	list, err := collectAll[models.Bill](rows, err, "bills")
	if err != nil {
		return nil, err
	}
	return toDomainBills(list), nil
}

func toDomainBills(list []models.Bill) []domain.Bill {
	bills := make([]domain.Bill, len(list))
	for i, m := range list {
		bills[i] = mapping.ToDomainBill(m)
	}
	return bills
}
