package aggregation

import (
	"sort"

	"github.com/SscSPs/contas_app/internal/core/domain"
	"github.com/SscSPs/contas_app/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

// PaymentUtilization totals what left the owner's accounts in the month per payment
// method and per credit card. Paid bills count by paid date at amount plus interest;
// ledger outflows count when they carry a payment method and are not bill payments,
// so a bill payment is never counted twice.
func PaymentUtilization(snap *domain.ReportSnapshot, q domain.ReportQuery) domain.PaymentUtilization {
	f := newAccountFilter(q.AccountIDs)
	billsBy := make(map[domain.PaymentMethod]decimal.Decimal)
	ledgerBy := make(map[domain.PaymentMethod]decimal.Decimal)
	cardTotals := make(map[string]decimal.Decimal)

	for _, b := range snap.Bills {
		if !paidIn(b, q.Year, q.Month, f) {
			continue
		}
		total := b.TotalPaid()
		billsBy[b.Payment.Method] = billsBy[b.Payment.Method].Add(total)
		if b.Payment.CardID != nil {
			cardTotals[*b.Payment.CardID] = cardTotals[*b.Payment.CardID].Add(total)
		}
	}

	for _, e := range snap.Entries {
		if e.Kind != domain.Outflow || e.IsBillPayment() || !countedIn(e, q.Year, q.Month, f) {
			continue
		}
		if e.PaymentMethod != "" {
			ledgerBy[e.PaymentMethod] = ledgerBy[e.PaymentMethod].Add(e.Amount)
		}
		if e.CardID != nil {
			cardTotals[*e.CardID] = cardTotals[*e.CardID].Add(e.Amount)
		}
	}

	methods := make([]domain.PaymentMethodTotal, 0, len(domain.PaymentMethods))
	for _, m := range domain.PaymentMethods {
		bills, ledger := billsBy[m], ledgerBy[m]
		total := bills.Add(ledger)
		if total.IsZero() {
			continue
		}
		methods = append(methods, domain.PaymentMethodTotal{Method: m, BillsTotal: bills, LedgerTotal: ledger, Total: total})
	}

	cards := make([]domain.CardUtilization, 0, len(snap.Cards))
	for _, c := range snap.Cards {
		total, used := cardTotals[c.CardID]
		if !c.IsActive && !used {
			continue
		}
		u := domain.CardUtilization{CardID: c.CardID, Name: c.Name, Total: total, CreditLimit: c.CreditLimit}
		if c.CreditLimit != nil {
			u.Utilization = accounting.Ratio(total, *c.CreditLimit)
		}
		cards = append(cards, u)
	}
	sort.Slice(cards, func(i, j int) bool { return cards[i].Name < cards[j].Name })

	return domain.PaymentUtilization{Methods: methods, Cards: cards}
}
