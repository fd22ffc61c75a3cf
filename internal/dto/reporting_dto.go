package dto

import (
	"time"

	"github.com/SscSPs/contas_app/internal/core/domain"
)

// ReportParams defines the query parameters shared by the monthly reports.
type ReportParams struct {
	Year       int      `form:"year" binding:"required,min=1970,max=9999"`
	Month      int      `form:"month" binding:"required,min=1,max=12"`
	AccountIDs []string `form:"accountId"` // Repeatable; empty means every account
}

// ToReportQuery converts parameters into an aggregation query for ownerID.
func (p ReportParams) ToReportQuery(ownerID string) domain.ReportQuery {
	return domain.ReportQuery{
		OwnerID:    ownerID,
		Year:       p.Year,
		Month:      time.Month(p.Month),
		AccountIDs: p.AccountIDs,
	}
}

// AnnualReportParams defines the query parameters of the annual report.
type AnnualReportParams struct {
	Year       int      `form:"year" binding:"required,min=1970,max=9999"`
	AccountIDs []string `form:"accountId"`
}

// SummaryDisplay carries pre-formatted amounts of a summary.
type SummaryDisplay struct {
	Pending      string `json:"pending"`
	Overdue      string `json:"overdue"`
	Paid         string `json:"paid"`
	DueNextMonth string `json:"dueNextMonth"`
	Inflow       string `json:"inflow"`
	Outflow      string `json:"outflow"`
	Net          string `json:"net"`
}

// FinancialSummaryResponse is the monthly summary with display strings.
type FinancialSummaryResponse struct {
	domain.FinancialSummary
	Display SummaryDisplay `json:"display"`
}

// ToFinancialSummaryResponse converts a summary, formatting amounts with f.
func ToFinancialSummaryResponse(s *domain.FinancialSummary, f MoneyFormatter) FinancialSummaryResponse {
	return FinancialSummaryResponse{
		FinancialSummary: *s,
		Display: SummaryDisplay{
			Pending:      f.Format(s.Pending.Value),
			Overdue:      f.Format(s.Overdue.Value),
			Paid:         f.Format(s.Paid.Value),
			DueNextMonth: f.Format(s.DueNextMonth.Value),
			Inflow:       f.Format(s.Inflow),
			Outflow:      f.Format(s.Outflow),
			Net:          f.Format(s.Net),
		},
	}
}

// DashboardResponse is the dashboard with a formatted summary and total balance.
type DashboardResponse struct {
	domain.Dashboard
	Summary             FinancialSummaryResponse `json:"summary"`
	TotalBalanceDisplay string                   `json:"totalBalanceDisplay"`
}

// ToDashboardResponse converts a dashboard, formatting amounts with f.
func ToDashboardResponse(d *domain.Dashboard, f MoneyFormatter) DashboardResponse {
	return DashboardResponse{
		Dashboard:           *d,
		Summary:             ToFinancialSummaryResponse(&d.Summary, f),
		TotalBalanceDisplay: f.Format(d.TotalBalance),
	}
}
