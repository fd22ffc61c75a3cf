package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/contas_app/internal/apperrors"
	"github.com/SscSPs/contas_app/internal/core/domain"
	portsrepo "github.com/SscSPs/contas_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/contas_app/internal/core/ports/services"
	"github.com/SscSPs/contas_app/internal/dto"
	"github.com/SscSPs/contas_app/internal/utils/accounting"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BillServiceConfig holds the tunable rules of the bill lifecycle.
type BillServiceConfig struct {
	MaxInstallments        int  // Upper bound of installments per plan; zero disables it
	AllowInterestOnPending bool // Accept interest when paying a bill that is not overdue yet
}

type billService struct {
	BaseService
	cfg      BillServiceConfig
	ledger   portssvc.LedgerTxSvc
	notifier portssvc.BillNotifier
}

// NewBillService creates a new bill service. notifier may be nil.
func NewBillService(store portsrepo.TransactionManager, ledger portssvc.LedgerTxSvc, notifier portssvc.BillNotifier, cfg BillServiceConfig, options ...ServiceOption) portssvc.BillSvcFacade {
	return &billService{
		BaseService: newBaseService(store, options...),
		cfg:         cfg,
		ledger:      ledger,
		notifier:    notifier,
	}
}

var _ portssvc.BillSvcFacade = (*billService)(nil)

func (s *billService) CreateBill(ctx context.Context, ownerID string, req dto.CreateBillRequest) ([]domain.Bill, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: bill name is required", apperrors.ErrValidation)
	}
	count := req.InstallmentCount
	if count == 0 {
		count = 1
	}
	mode := req.Mode
	if mode == "" {
		mode = domain.ModeSplit
	}
	if !mode.Valid() {
		return nil, fmt.Errorf("%w: %q", apperrors.ErrInvalidInstallmentMode, mode)
	}

	manual := make([]accounting.ManualInstallment, len(req.Installments))
	for i, m := range req.Installments {
		manual[i] = accounting.ManualInstallment{Amount: m.Amount, DueDate: m.DueDate.Time}
	}
	items, err := accounting.BuildInstallments(accounting.PlanRequest{
		Amount:       req.Amount,
		FirstDueDate: req.DueDate.Time,
		Count:        count,
		Mode:         mode,
		Manual:       manual,
		MaxCount:     s.cfg.MaxInstallments,
	})
	if err != nil {
		return nil, err
	}

	now := s.Now()
	var planID *string
	if len(items) > 1 {
		id := uuid.NewString()
		planID = &id
	}
	bills := make([]domain.Bill, len(items))
	for i, it := range items {
		bills[i] = domain.Bill{
			BillID:           uuid.NewString(),
			OwnerID:          ownerID,
			Name:             name,
			VendorID:         req.VendorID,
			DueDate:          it.DueDate,
			Amount:           it.Amount,
			Status:           domain.BillPending,
			PlanID:           planID,
			InstallmentIndex: it.Index,
			InstallmentCount: len(items),
			AuditFields:      domain.NewAuditFields(ownerID, now),
		}
	}

	err = s.Store.WithinTx(ctx, func(ctx context.Context, repos portsrepo.Repositories) error {
		if err := requireActiveVendor(ctx, repos, ownerID, req.VendorID); err != nil {
			return err
		}
		return repos.Bills().SaveBills(ctx, bills)
	})
	if err != nil {
		s.logFailure(ctx, err, "Failed to create bill", slog.String("vendor_id", req.VendorID))
		return nil, err
	}

	s.LogInfo(ctx, "Bill created",
		slog.String("bill_id", bills[0].BillID),
		slog.Int("installments", len(bills)),
		slog.String("mode", string(mode)))
	events := make([]domain.BillEvent, len(bills))
	for i, b := range bills {
		events[i] = domain.NewBillEvent(domain.BillCreatedEvent, b, now)
	}
	s.notify(ctx, events...)
	return s.withEffectiveStatus(bills), nil
}

func requireActiveVendor(ctx context.Context, repos portsrepo.Repositories, ownerID, vendorID string) error {
	vendor, err := repos.Vendors().FindVendorByID(ctx, ownerID, vendorID)
	if err != nil {
		return notFoundAs(err, apperrors.ErrVendorNotFound, vendorID)
	}
	if !vendor.IsActive {
		return fmt.Errorf("%w: %s is inactive", apperrors.ErrVendorNotFound, vendorID)
	}
	return nil
}

func (s *billService) GetBill(ctx context.Context, ownerID, billID string) (*domain.Bill, error) {
	var bill *domain.Bill
	err := s.Store.WithinSnapshot(ctx, func(ctx context.Context, repos portsrepo.Repositories) error {
		var err error
		bill, err = repos.Bills().FindBillByID(ctx, ownerID, billID)
		return notFoundAs(err, apperrors.ErrBillNotFound, billID)
	})
	if err != nil {
		return nil, err
	}
	b := bill.WithEffectiveStatus(s.Today())
	return &b, nil
}

func (s *billService) ListBills(ctx context.Context, ownerID string, params dto.ListBillsParams) ([]domain.Bill, error) {
	filter := params.ToBillFilter()
	var bills []domain.Bill
	err := s.Store.WithinSnapshot(ctx, func(ctx context.Context, repos portsrepo.Repositories) error {
		var err error
		bills, err = repos.Bills().ListBills(ctx, ownerID, filter)
		return err
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to list bills", slog.String("owner_id", ownerID))
		return nil, fmt.Errorf("failed to list bills: %w", err)
	}

	bills = s.withEffectiveStatus(bills)
	if filter.Status == domain.BillPending || filter.Status == domain.BillOverdue {
		kept := bills[:0]
		for _, b := range bills {
			if b.Status == filter.Status {
				kept = append(kept, b)
			}
		}
		bills = kept
	}
	return bills, nil
}

func (s *billService) GetPlan(ctx context.Context, ownerID, planID string) ([]domain.Bill, error) {
	var bills []domain.Bill
	err := s.Store.WithinSnapshot(ctx, func(ctx context.Context, repos portsrepo.Repositories) error {
		var err error
		bills, err = repos.Bills().FindBillsByPlan(ctx, ownerID, planID)
		if err == nil && len(bills) == 0 {
			return fmt.Errorf("%w: %s", apperrors.ErrPlanNotFound, planID)
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	return s.withEffectiveStatus(bills), nil
}

// lockBillAndPlan locks the bill and, when it belongs to a plan, every installment
// of the plan in index order so that concurrent plan-wide operations queue up
// instead of deadlocking. The returned slice always contains the bill itself.
func lockBillAndPlan(ctx context.Context, repos portsrepo.Repositories, ownerID, billID string) (*domain.Bill, []domain.Bill, error) {
	bills := repos.Bills()
	probe, err := bills.FindBillByID(ctx, ownerID, billID)
	if err != nil {
		return nil, nil, notFoundAs(err, apperrors.ErrBillNotFound, billID)
	}
	if probe.PlanID == nil {
		locked, err := bills.FindBillForUpdate(ctx, ownerID, billID)
		if err != nil {
			return nil, nil, notFoundAs(err, apperrors.ErrBillNotFound, billID)
		}
		return locked, []domain.Bill{*locked}, nil
	}

	plan, err := bills.FindBillsByPlanForUpdate(ctx, ownerID, *probe.PlanID)
	if err != nil {
		return nil, nil, err
	}
	for i := range plan {
		if plan[i].BillID == billID {
			target := plan[i]
			return &target, plan, nil
		}
	}
	return nil, nil, fmt.Errorf("%w: %s", apperrors.ErrBillNotFound, billID)
}

// ensureOpen rejects bills in a terminal state.
func ensureOpen(b *domain.Bill) error {
	switch b.Status {
	case domain.BillPaid:
		return fmt.Errorf("%w: %s", apperrors.ErrAlreadyPaid, b.BillID)
	case domain.BillCancelled:
		return fmt.Errorf("%w: %s", apperrors.ErrAlreadyCancelled, b.BillID)
	}
	return nil
}

func (s *billService) UpdateBill(ctx context.Context, ownerID, billID string, req dto.UpdateBillRequest) ([]domain.Bill, error) {
	if req.Amount != nil && !domain.ValidAmount(*req.Amount) {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrInvalidAmount, req.Amount)
	}
	if req.Name != nil && strings.TrimSpace(*req.Name) == "" {
		return nil, fmt.Errorf("%w: bill name cannot be empty", apperrors.ErrValidation)
	}
	now := s.Now()

	var updated []domain.Bill
	err := s.Store.WithinTx(ctx, func(ctx context.Context, repos portsrepo.Repositories) error {
		updated = nil
		bill, plan, err := lockBillAndPlan(ctx, repos, ownerID, billID)
		if err != nil {
			return err
		}
		if err := ensureOpen(bill); err != nil {
			return err
		}

		if req.Name != nil {
			bill.Name = strings.TrimSpace(*req.Name)
		}
		if req.DueDate != nil && !req.DueDate.IsZero() {
			due := domain.DateOf(req.DueDate.Time)
			if bill.IsInstallment() {
				if err := checkInstallmentOrder(plan, bill.InstallmentIndex, due); err != nil {
					return err
				}
			}
			bill.DueDate = due
		}
		if req.VendorID != nil && *req.VendorID != bill.VendorID {
			if err := requireActiveVendor(ctx, repos, ownerID, *req.VendorID); err != nil {
				return err
			}
			bill.VendorID = *req.VendorID
		}

		var later []domain.Bill
		if req.Amount != nil && !req.Amount.Equal(bill.Amount) {
			if bill.IsInstallment() {
				if !req.ApplyToRemaining {
					return fmt.Errorf("%w: changing installment %d alone would change the plan total, apply it to the remaining installments",
						apperrors.ErrInstallmentMismatch, bill.InstallmentIndex)
				}
				if later, err = reamortize(plan, *bill, *req.Amount); err != nil {
					return err
				}
			}
			bill.Amount = *req.Amount
		}

		bill.Touch(ownerID, now)
		if err := repos.Bills().UpdateBill(ctx, *bill); err != nil {
			return fmt.Errorf("failed to update bill: %w", err)
		}
		updated = append(updated, *bill)

		for _, sibling := range later {
			sibling.Touch(ownerID, now)
			if err := repos.Bills().UpdateBill(ctx, sibling); err != nil {
				return fmt.Errorf("failed to update installment %d: %w", sibling.InstallmentIndex, err)
			}
			updated = append(updated, sibling)
		}
		return nil
	})
	if err != nil {
		s.logFailure(ctx, err, "Failed to update bill", slog.String("bill_id", billID))
		return nil, err
	}

	s.LogInfo(ctx, "Bill updated", slog.String("bill_id", billID), slog.Int("affected", len(updated)))
	return s.withEffectiveStatus(updated), nil
}

// checkInstallmentOrder keeps installment indices chronological: the new due date
// may not precede an earlier installment nor follow a later one.
func checkInstallmentOrder(plan []domain.Bill, index int, due time.Time) error {
	for _, sibling := range plan {
		switch {
		case sibling.InstallmentIndex < index && due.Before(sibling.DueDate):
			return fmt.Errorf("%w: installment %d cannot be due before installment %d (%s)",
				apperrors.ErrInstallmentOutOfOrder, index, sibling.InstallmentIndex, sibling.DueDate.Format(time.DateOnly))
		case sibling.InstallmentIndex > index && due.After(sibling.DueDate):
			return fmt.Errorf("%w: installment %d cannot be due after installment %d (%s)",
				apperrors.ErrInstallmentOutOfOrder, index, sibling.InstallmentIndex, sibling.DueDate.Format(time.DateOnly))
		}
	}
	return nil
}

// reamortize moves the difference between the installment's current and new amount
// onto the later open installments so the plan total is unchanged. Paid and
// cancelled installments keep their amounts.
func reamortize(plan []domain.Bill, bill domain.Bill, amount decimal.Decimal) ([]domain.Bill, error) {
	var later []domain.Bill
	remaining := bill.Amount.Sub(amount)
	for _, sibling := range plan {
		if sibling.InstallmentIndex > bill.InstallmentIndex && sibling.IsOpen() {
			later = append(later, sibling)
			remaining = remaining.Add(sibling.Amount)
		}
	}
	if len(later) == 0 {
		return nil, fmt.Errorf("%w: installment %d has no open installment after it to absorb the difference",
			apperrors.ErrInstallmentMismatch, bill.InstallmentIndex)
	}

	amounts, err := accounting.Spread(remaining, len(later))
	if err != nil {
		return nil, fmt.Errorf("%w: %s left for %d remaining installments", apperrors.ErrInstallmentMismatch, remaining, len(later))
	}
	for i := range later {
		later[i].Amount = amounts[i]
	}
	return later, nil
}

func (s *billService) PayBill(ctx context.Context, ownerID, billID string, req dto.PayBillRequest) (*domain.Bill, error) {
	if !req.PaymentMethod.Valid() {
		return nil, fmt.Errorf("%w: %q", apperrors.ErrInvalidPaymentMethod, req.PaymentMethod)
	}
	interest := decimal.Zero
	if req.Interest != nil {
		interest = *req.Interest
		if interest.IsNegative() || !domain.HasMoneyScale(interest) {
			return nil, fmt.Errorf("%w: interest %s", apperrors.ErrInvalidAmount, interest)
		}
	}
	now := s.Now()
	today := s.Today()
	paidAt := today
	if req.PaidAt != nil && !req.PaidAt.IsZero() {
		paidAt = domain.DateOf(req.PaidAt.Time)
	}

	var paid domain.Bill
	err := s.Store.WithinTx(ctx, func(ctx context.Context, repos portsrepo.Repositories) error {
		bill, err := repos.Bills().FindBillForUpdate(ctx, ownerID, billID)
		if err != nil {
			return notFoundAs(err, apperrors.ErrBillNotFound, billID)
		}
		if err := ensureOpen(bill); err != nil {
			return err
		}
		if interest.IsPositive() && bill.EffectiveStatus(today) == domain.BillPending && !s.cfg.AllowInterestOnPending {
			return fmt.Errorf("%w: bill %s is not overdue", apperrors.ErrInterestNotApplicable, billID)
		}
		if _, err := repos.BankAccounts().FindBankAccountForUpdate(ctx, ownerID, req.BankAccountID); err != nil {
			return notFoundAs(err, apperrors.ErrBankAccountNotFound, req.BankAccountID)
		}

		billRef := bill.BillID
		entry, err := s.ledger.PostInTx(ctx, repos, domain.LedgerEntry{
			EntryID:       uuid.NewString(),
			OwnerID:       ownerID,
			BankAccountID: req.BankAccountID,
			Kind:          domain.Outflow,
			Amount:        bill.Amount.Add(interest),
			EntryDate:     paidAt,
			Memo:          bill.Name,
			BillID:        &billRef,
			PaymentMethod: req.PaymentMethod,
			CardID:        req.CardID,
			AuditFields:   domain.NewAuditFields(ownerID, now),
		})
		if err != nil {
			return err
		}

		bill.Status = domain.BillPaid
		bill.Payment = &domain.Payment{
			Method:        req.PaymentMethod,
			BankAccountID: req.BankAccountID,
			CardID:        req.CardID,
			Interest:      interest,
			PaidAt:        paidAt,
			LedgerEntryID: entry.EntryID,
		}
		bill.Touch(ownerID, now)
		if err := repos.Bills().UpdateBill(ctx, *bill); err != nil {
			return fmt.Errorf("failed to mark bill paid: %w", err)
		}
		paid = *bill
		return nil
	})
	if err != nil {
		s.logFailure(ctx, err, "Failed to pay bill", slog.String("bill_id", billID))
		return nil, err
	}

	s.LogInfo(ctx, "Bill paid",
		slog.String("bill_id", billID),
		slog.String("ledger_entry_id", paid.Payment.LedgerEntryID),
		slog.String("total", paid.TotalPaid().String()))
	s.notify(ctx, domain.NewBillEvent(domain.BillPaidEvent, paid, now))
	return &paid, nil
}

func (s *billService) CancelBill(ctx context.Context, ownerID, billID string) (*domain.Bill, error) {
	now := s.Now()
	var cancelled domain.Bill
	err := s.Store.WithinTx(ctx, func(ctx context.Context, repos portsrepo.Repositories) error {
		bill, err := repos.Bills().FindBillForUpdate(ctx, ownerID, billID)
		if err != nil {
			return notFoundAs(err, apperrors.ErrBillNotFound, billID)
		}
		if err := cancelInTx(ctx, repos, bill, ownerID, now); err != nil {
			return err
		}
		cancelled = *bill
		return nil
	})
	if err != nil {
		s.logFailure(ctx, err, "Failed to cancel bill", slog.String("bill_id", billID))
		return nil, err
	}

	s.LogInfo(ctx, "Bill cancelled", slog.String("bill_id", billID))
	s.notify(ctx, domain.NewBillEvent(domain.BillCancelledEvent, cancelled, now))
	return &cancelled, nil
}

func cancelInTx(ctx context.Context, repos portsrepo.Repositories, bill *domain.Bill, userID string, now time.Time) error {
	if err := ensureOpen(bill); err != nil {
		return err
	}
	bill.Status = domain.BillCancelled
	cancelledAt := now
	bill.CancelledAt = &cancelledAt
	bill.Touch(userID, now)
	if err := repos.Bills().UpdateBill(ctx, *bill); err != nil {
		return fmt.Errorf("failed to cancel bill %s: %w", bill.BillID, err)
	}
	return nil
}

// DeleteBill never removes rows: the bill is cancelled and, for installments, the
// caller learns how many siblings are still open so it can offer CancelAllRemaining.
func (s *billService) DeleteBill(ctx context.Context, ownerID, billID string) (*domain.DeleteBillResult, error) {
	now := s.Now()
	var (
		result    domain.DeleteBillResult
		cancelled domain.Bill
	)
	err := s.Store.WithinTx(ctx, func(ctx context.Context, repos portsrepo.Repositories) error {
		bill, plan, err := lockBillAndPlan(ctx, repos, ownerID, billID)
		if err != nil {
			return err
		}
		if err := cancelInTx(ctx, repos, bill, ownerID, now); err != nil {
			return err
		}
		cancelled = *bill

		remaining := 0
		for _, sibling := range plan {
			if sibling.BillID != billID && sibling.IsOpen() {
				remaining++
			}
		}
		result = domain.DeleteBillResult{
			Deleted:                  true,
			HasRemainingInstallments: remaining > 0,
			RemainingCount:           remaining,
		}
		return nil
	})
	if err != nil {
		s.logFailure(ctx, err, "Failed to delete bill", slog.String("bill_id", billID))
		return nil, err
	}

	s.LogInfo(ctx, "Bill deleted", slog.String("bill_id", billID), slog.Int("remaining", result.RemainingCount))
	s.notify(ctx, domain.NewBillEvent(domain.BillCancelledEvent, cancelled, now))
	return &result, nil
}

// CancelAllRemaining cancels every open installment of the bill's plan. A bill
// outside any plan is treated as a plan of one. Paid and cancelled installments
// are left untouched, which makes the operation idempotent.
func (s *billService) CancelAllRemaining(ctx context.Context, ownerID, billID string) (*domain.CancelRemainingResult, error) {
	now := s.Now()
	var cancelled []domain.Bill
	err := s.Store.WithinTx(ctx, func(ctx context.Context, repos portsrepo.Repositories) error {
		cancelled = nil
		_, plan, err := lockBillAndPlan(ctx, repos, ownerID, billID)
		if err != nil {
			return err
		}
		for i := range plan {
			if !plan[i].IsOpen() {
				continue
			}
			if err := cancelInTx(ctx, repos, &plan[i], ownerID, now); err != nil {
				return err
			}
			cancelled = append(cancelled, plan[i])
		}
		return nil
	})
	if err != nil {
		s.logFailure(ctx, err, "Failed to cancel remaining installments", slog.String("bill_id", billID))
		return nil, err
	}

	s.LogInfo(ctx, "Remaining installments cancelled", slog.String("bill_id", billID), slog.Int("cancelled", len(cancelled)))
	events := make([]domain.BillEvent, len(cancelled))
	for i, b := range cancelled {
		events[i] = domain.NewBillEvent(domain.BillCancelledEvent, b, now)
	}
	s.notify(ctx, events...)
	return &domain.CancelRemainingResult{CancelledCount: len(cancelled)}, nil
}

func (s *billService) withEffectiveStatus(bills []domain.Bill) []domain.Bill {
	today := s.Today()
	for i := range bills {
		bills[i] = bills[i].WithEffectiveStatus(today)
	}
	return bills
}

// notify hands committed events to the notifier. Delivery failures are logged and
// never undo the committed change.
func (s *billService) notify(ctx context.Context, events ...domain.BillEvent) {
	if s.notifier == nil {
		return
	}
	for _, e := range events {
		if err := s.notifier.NotifyBillEvent(ctx, e); err != nil {
			s.LogError(ctx, err, "Failed to publish bill event",
				slog.String("bill_id", e.BillID), slog.String("event", string(e.Type)))
		}
	}
}
