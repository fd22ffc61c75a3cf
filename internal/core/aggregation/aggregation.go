// Package aggregation computes dashboard reports from a snapshot of an owner's
// bills and ledger. Every function here is pure: the same snapshot, query and
// reference day always produce the same result.
package aggregation

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/SscSPs/contas_app/internal/core/domain"
)

// DefaultEvolutionMonths is the balance evolution window used when none is configured.
const DefaultEvolutionMonths = 6

// CacheKey identifies a report request for an external response cache. Account
// order does not matter. Annual reports use month zero.
func CacheKey(q domain.ReportQuery) string {
	ids := make([]string, len(q.AccountIDs))
	copy(ids, q.AccountIDs)
	sort.Strings(ids)
	return fmt.Sprintf("%s|%04d-%02d|%s", q.OwnerID, q.Year, int(q.Month), strings.Join(ids, ","))
}

// ValidateQuery checks the period of a monthly query.
func ValidateQuery(q domain.ReportQuery) bool {
	return q.OwnerID != "" && q.Year >= 1970 && q.Month >= time.January && q.Month <= time.December
}

type accountFilter map[string]struct{}

func newAccountFilter(ids []string) accountFilter {
	if len(ids) == 0 {
		return nil
	}
	f := make(accountFilter, len(ids))
	for _, id := range ids {
		f[id] = struct{}{}
	}
	return f
}

func (f accountFilter) allows(accountID string) bool {
	if f == nil {
		return true
	}
	_, ok := f[accountID]
	return ok
}

// paidIn reports whether b was paid within the month from an allowed account.
func paidIn(b domain.Bill, year int, month time.Month, f accountFilter) bool {
	return b.Status == domain.BillPaid && b.Payment != nil &&
		domain.InMonth(b.Payment.PaidAt, year, month) &&
		f.allows(b.Payment.BankAccountID)
}

// countedIn reports whether e contributes to the month's ledger figures.
func countedIn(e domain.LedgerEntry, year int, month time.Month, f accountFilter) bool {
	return e.Counts() && domain.InMonth(e.EntryDate, year, month) && f.allows(e.BankAccountID)
}

func nextMonth(year int, month time.Month) (int, time.Month) {
	if month == time.December {
		return year + 1, time.January
	}
	return year, month + 1
}
