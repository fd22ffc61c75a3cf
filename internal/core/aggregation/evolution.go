package aggregation

import (
	"sort"
	"time"

	"github.com/SscSPs/contas_app/internal/core/domain"
)

// EvolutionDates returns the month-end sample dates of a window of months ending
// with the given month, oldest first.
func EvolutionDates(year int, month time.Month, months int) []time.Time {
	if months < 1 {
		months = DefaultEvolutionMonths
	}
	dates := make([]time.Time, months)
	start := domain.MonthStart(year, month).AddDate(0, -(months - 1), 0)
	for i := range dates {
		m := start.AddDate(0, i, 0)
		dates[i] = domain.MonthEnd(m.Year(), m.Month())
	}
	return dates
}

// BalanceEvolution samples the cumulative balance of every active account in the
// filter at each month end of the window. All series share the same date axis; a
// month without movements carries the previous balance forward.
func BalanceEvolution(snap *domain.ReportSnapshot, q domain.ReportQuery, months int) domain.BalanceEvolution {
	f := newAccountFilter(q.AccountIDs)
	dates := EvolutionDates(q.Year, q.Month, months)

	byAccount := make(map[string][]domain.LedgerEntry)
	for _, e := range snap.Entries {
		if e.Counts() {
			byAccount[e.BankAccountID] = append(byAccount[e.BankAccountID], e)
		}
	}

	accounts := make([]domain.BankAccount, 0, len(snap.Accounts))
	for _, a := range snap.Accounts {
		if a.IsActive && f.allows(a.AccountID) {
			accounts = append(accounts, a)
		}
	}
	sort.Slice(accounts, func(i, j int) bool {
		if accounts[i].Name != accounts[j].Name {
			return accounts[i].Name < accounts[j].Name
		}
		return accounts[i].AccountID < accounts[j].AccountID
	})

	series := make([]domain.BalanceSeries, len(accounts))
	for i, a := range accounts {
		points := make([]domain.BalancePoint, len(dates))
		for j := range dates {
			points[j] = domain.BalancePoint{Date: dates[j], Balance: domain.ComputeBalance(byAccount[a.AccountID], &dates[j])}
		}
		series[i] = domain.BalanceSeries{AccountID: a.AccountID, Name: a.Name, Points: points}
	}

	return domain.BalanceEvolution{Dates: dates, Series: series}
}
