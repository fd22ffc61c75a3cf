package services

import (
	"context"

	"github.com/SscSPs/contas_app/internal/core/domain"
)

// ReportingService defines the read-only aggregation operations. Every report is
// computed from one consistent snapshot of the owner's data.
type ReportingService interface {
	FinancialSummary(ctx context.Context, q domain.ReportQuery) (*domain.FinancialSummary, error)
	BalanceEvolution(ctx context.Context, q domain.ReportQuery) (*domain.BalanceEvolution, error)
	CategoryBreakdown(ctx context.Context, q domain.ReportQuery) ([]domain.BreakdownRow, error)
	VendorBreakdown(ctx context.Context, q domain.ReportQuery) ([]domain.BreakdownRow, error)
	PaymentUtilization(ctx context.Context, q domain.ReportQuery) (*domain.PaymentUtilization, error)
	Dashboard(ctx context.Context, q domain.ReportQuery) (*domain.Dashboard, error)
	AnnualReport(ctx context.Context, ownerID string, year int, accountIDs []string) (*domain.AnnualReport, error)
}
