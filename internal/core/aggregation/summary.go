package aggregation

import (
	"time"

	"github.com/SscSPs/contas_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

func (t *statusTotal) add(v decimal.Decimal) {
	t.Count++
	t.Value = t.Value.Add(v)
}

type statusTotal domain.StatusTotal

// Summarize builds the monthly financial summary.
//
// Bill figures cover bills due in the month, classified by effective status as of
// today; paid bills count amount plus interest and honour the account filter through
// the paying account. Open bills belong to no account and are never filtered out.
// Ledger figures cover counted entries dated in the month; opening balances are not inflow.
func Summarize(snap *domain.ReportSnapshot, q domain.ReportQuery, today time.Time) domain.FinancialSummary {
	f := newAccountFilter(q.AccountIDs)
	nextYear, next := nextMonth(q.Year, q.Month)

	var pending, overdue, paid, dueNext statusTotal
	zeroTotals(&pending, &overdue, &paid, &dueNext)

	for _, b := range snap.Bills {
		status := b.EffectiveStatus(today)
		switch {
		case domain.InMonth(b.DueDate, q.Year, q.Month):
			switch status {
			case domain.BillPending:
				pending.add(b.Amount)
			case domain.BillOverdue:
				overdue.add(b.Amount)
			case domain.BillPaid:
				if b.Payment != nil && f.allows(b.Payment.BankAccountID) {
					paid.add(b.TotalPaid())
				}
			}
		case domain.InMonth(b.DueDate, nextYear, next):
			if b.IsOpen() {
				dueNext.add(b.Amount)
			}
		}
	}

	inflow, outflow := decimal.Zero, decimal.Zero
	for _, e := range snap.Entries {
		if !countedIn(e, q.Year, q.Month, f) {
			continue
		}
		switch e.Kind {
		case domain.Inflow:
			inflow = inflow.Add(e.Amount)
		case domain.Outflow:
			outflow = outflow.Add(e.Amount)
		}
	}

	return domain.FinancialSummary{
		Year:         q.Year,
		Month:        q.Month,
		Pending:      domain.StatusTotal(pending),
		Overdue:      domain.StatusTotal(overdue),
		Paid:         domain.StatusTotal(paid),
		DueNextMonth: domain.StatusTotal(dueNext),
		Inflow:       inflow,
		Outflow:      outflow,
		Net:          inflow.Sub(outflow),
	}
}

func zeroTotals(totals ...*statusTotal) {
	for _, t := range totals {
		t.Value = decimal.Zero
	}
}
