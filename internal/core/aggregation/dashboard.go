package aggregation

import (
	"time"

	"github.com/SscSPs/contas_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// BuildDashboard computes every monthly report from the same snapshot.
func BuildDashboard(snap *domain.ReportSnapshot, q domain.ReportQuery, today time.Time, months int) domain.Dashboard {
	return domain.Dashboard{
		Summary:          Summarize(snap, q, today),
		BalanceEvolution: BalanceEvolution(snap, q, months),
		Categories:       CategoryBreakdown(snap, q),
		Vendors:          VendorBreakdown(snap, q),
		Payments:         PaymentUtilization(snap, q),
		TotalBalance:     TotalBalance(snap, q),
	}
}

// TotalBalance sums the current balance of active accounts in the filter.
func TotalBalance(snap *domain.ReportSnapshot, q domain.ReportQuery) decimal.Decimal {
	f := newAccountFilter(q.AccountIDs)
	active := make(map[string]bool)
	for _, a := range snap.Accounts {
		if a.IsActive && f.allows(a.AccountID) {
			active[a.AccountID] = true
		}
	}
	total := decimal.Zero
	for _, e := range snap.Entries {
		if e.Counts() && active[e.BankAccountID] {
			total = total.Add(e.SignedAmount())
		}
	}
	return total
}
