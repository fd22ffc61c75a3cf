package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/contas_app/internal/apperrors"
	"github.com/SscSPs/contas_app/internal/core/aggregation"
	"github.com/SscSPs/contas_app/internal/core/domain"
	portsrepo "github.com/SscSPs/contas_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/contas_app/internal/core/ports/services"
	"golang.org/x/sync/singleflight"
)

// reportingService loads a snapshot per request and hands it to the aggregation
// package. Identical requests that arrive while one is being computed share its
// result; results are therefore shared values and must be treated as read-only.
type reportingService struct {
	BaseService
	evolutionMonths int
	inflight        singleflight.Group
}

// NewReportingService creates a new reporting service.
func NewReportingService(store portsrepo.TransactionManager, evolutionMonths int, options ...ServiceOption) portssvc.ReportingService {
	if evolutionMonths < 1 {
		evolutionMonths = aggregation.DefaultEvolutionMonths
	}
	return &reportingService{
		BaseService:     newBaseService(store, options...),
		evolutionMonths: evolutionMonths,
	}
}

var _ portssvc.ReportingService = (*reportingService)(nil)

func (s *reportingService) FinancialSummary(ctx context.Context, q domain.ReportQuery) (*domain.FinancialSummary, error) {
	return runReport(ctx, s, "summary", q, func(snap *domain.ReportSnapshot, today time.Time) *domain.FinancialSummary {
		summary := aggregation.Summarize(snap, q, today)
		return &summary
	})
}

func (s *reportingService) BalanceEvolution(ctx context.Context, q domain.ReportQuery) (*domain.BalanceEvolution, error) {
	return runReport(ctx, s, "evolution", q, func(snap *domain.ReportSnapshot, _ time.Time) *domain.BalanceEvolution {
		ev := aggregation.BalanceEvolution(snap, q, s.evolutionMonths)
		return &ev
	})
}

func (s *reportingService) CategoryBreakdown(ctx context.Context, q domain.ReportQuery) ([]domain.BreakdownRow, error) {
	return runReport(ctx, s, "categories", q, func(snap *domain.ReportSnapshot, _ time.Time) []domain.BreakdownRow {
		return aggregation.CategoryBreakdown(snap, q)
	})
}

func (s *reportingService) VendorBreakdown(ctx context.Context, q domain.ReportQuery) ([]domain.BreakdownRow, error) {
	return runReport(ctx, s, "vendors", q, func(snap *domain.ReportSnapshot, _ time.Time) []domain.BreakdownRow {
		return aggregation.VendorBreakdown(snap, q)
	})
}

func (s *reportingService) PaymentUtilization(ctx context.Context, q domain.ReportQuery) (*domain.PaymentUtilization, error) {
	return runReport(ctx, s, "payments", q, func(snap *domain.ReportSnapshot, _ time.Time) *domain.PaymentUtilization {
		u := aggregation.PaymentUtilization(snap, q)
		return &u
	})
}

func (s *reportingService) Dashboard(ctx context.Context, q domain.ReportQuery) (*domain.Dashboard, error) {
	return runReport(ctx, s, "dashboard", q, func(snap *domain.ReportSnapshot, today time.Time) *domain.Dashboard {
		d := aggregation.BuildDashboard(snap, q, today, s.evolutionMonths)
		return &d
	})
}

func (s *reportingService) AnnualReport(ctx context.Context, ownerID string, year int, accountIDs []string) (*domain.AnnualReport, error) {
	q := domain.ReportQuery{OwnerID: ownerID, Year: year, Month: time.January, AccountIDs: accountIDs}
	return runReport(ctx, s, "annual", q, func(snap *domain.ReportSnapshot, _ time.Time) *domain.AnnualReport {
		r := aggregation.Annual(snap, ownerID, year, accountIDs)
		return &r
	})
}

// runReport validates q, then computes build over a fresh snapshot unless an
// identical computation is already in flight.
func runReport[T any](ctx context.Context, s *reportingService, kind string, q domain.ReportQuery, build func(*domain.ReportSnapshot, time.Time) T) (T, error) {
	var zero T
	if !aggregation.ValidateQuery(q) {
		return zero, fmt.Errorf("%w: %04d-%02d", apperrors.ErrInvalidPeriod, q.Year, int(q.Month))
	}

	key := kind + "|" + aggregation.CacheKey(q)
	v, err, shared := s.inflight.Do(key, func() (any, error) {
		// Shared by every waiter, so one caller's cancellation must not fail the rest.
		snap, err := s.loadSnapshot(context.WithoutCancel(ctx), q.OwnerID)
		if err != nil {
			return nil, err
		}
		return build(snap, s.Today()), nil
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to compute report", slog.String("report", kind), slog.String("key", key))
		return zero, fmt.Errorf("failed to compute %s report: %w", kind, err)
	}
	if shared {
		s.LogDebug(ctx, "Report computation shared with a concurrent request", slog.String("key", key))
	}
	return v.(T), nil
}

func (s *reportingService) loadSnapshot(ctx context.Context, ownerID string) (*domain.ReportSnapshot, error) {
	snap := &domain.ReportSnapshot{}
	err := s.Store.WithinSnapshot(ctx, func(ctx context.Context, repos portsrepo.Repositories) error {
		var err error
		if snap.Accounts, err = repos.BankAccounts().ListBankAccounts(ctx, ownerID, true); err != nil {
			return fmt.Errorf("failed to load accounts: %w", err)
		}
		if snap.Entries, err = repos.Ledger().ListEntriesByOwner(ctx, ownerID, nil); err != nil {
			return fmt.Errorf("failed to load ledger entries: %w", err)
		}
		if snap.Bills, err = repos.Bills().ListBills(ctx, ownerID, domain.BillFilter{}); err != nil {
			return fmt.Errorf("failed to load bills: %w", err)
		}
		if snap.Vendors, err = repos.Vendors().ListVendors(ctx, ownerID, true); err != nil {
			return fmt.Errorf("failed to load vendors: %w", err)
		}
		if snap.Cards, err = repos.Cards().ListCards(ctx, ownerID, true); err != nil {
			return fmt.Errorf("failed to load cards: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return snap, nil
}
