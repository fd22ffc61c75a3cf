package aggregation

import (
	"time"

	"github.com/SscSPs/contas_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// Annual builds the month by month report of a calendar year.
func Annual(snap *domain.ReportSnapshot, ownerID string, year int, accountIDs []string) domain.AnnualReport {
	f := newAccountFilter(accountIDs)
	report := domain.AnnualReport{
		Year:         year,
		Months:       make([]domain.MonthTotals, 12),
		TotalInflow:  decimal.Zero,
		TotalOutflow: decimal.Zero,
		TotalNet:     decimal.Zero,
		TotalBills:   decimal.Zero,
	}
	for i := range report.Months {
		report.Months[i] = domain.MonthTotals{
			Month: time.Month(i + 1), Inflow: decimal.Zero, Outflow: decimal.Zero, Net: decimal.Zero, BillsPaid: decimal.Zero,
		}
	}

	for _, e := range snap.Entries {
		if e.OwnerID != ownerID || !e.Counts() || e.EntryDate.Year() != year || !f.allows(e.BankAccountID) {
			continue
		}
		m := &report.Months[e.EntryDate.Month()-1]
		switch e.Kind {
		case domain.Inflow:
			m.Inflow = m.Inflow.Add(e.Amount)
		case domain.Outflow:
			m.Outflow = m.Outflow.Add(e.Amount)
		}
	}

	for _, b := range snap.Bills {
		if b.OwnerID != ownerID || b.Status != domain.BillPaid || b.Payment == nil {
			continue
		}
		paidAt := b.Payment.PaidAt
		if paidAt.Year() != year || !f.allows(b.Payment.BankAccountID) {
			continue
		}
		m := &report.Months[paidAt.Month()-1]
		m.BillsPaid = m.BillsPaid.Add(b.TotalPaid())
		m.PaidCount++
	}

	for i := range report.Months {
		m := &report.Months[i]
		m.Net = m.Inflow.Sub(m.Outflow)
		report.TotalInflow = report.TotalInflow.Add(m.Inflow)
		report.TotalOutflow = report.TotalOutflow.Add(m.Outflow)
		report.TotalBills = report.TotalBills.Add(m.BillsPaid)
	}
	report.TotalNet = report.TotalInflow.Sub(report.TotalOutflow)
	return report
}
