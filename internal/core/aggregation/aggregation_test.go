package aggregation

import (
	"testing"
	"time"

	"github.com/SscSPs/contas_app/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const owner = "owner-1"

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func day(y int, m time.Month, dd int) time.Time { return time.Date(y, m, dd, 0, 0, 0, 0, time.UTC) }

func ptr[T any](v T) *T { return &v }

func paidBill(id, vendor string, due time.Time, amount, interest string, method domain.PaymentMethod, account string, paidAt time.Time) domain.Bill {
	return domain.Bill{
		BillID: id, OwnerID: owner, VendorID: vendor, DueDate: due, Amount: d(amount), Status: domain.BillPaid,
		Payment: &domain.Payment{Method: method, BankAccountID: account, Interest: d(interest), PaidAt: paidAt, LedgerEntryID: "e-" + id},
	}
}

func fixture() *domain.ReportSnapshot {
	snap := &domain.ReportSnapshot{
		Accounts: []domain.BankAccount{
			{AccountID: "acc-a", OwnerID: owner, Name: "Checking", IsActive: true},
			{AccountID: "acc-b", OwnerID: owner, Name: "Savings", IsActive: true},
			{AccountID: "acc-old", OwnerID: owner, Name: "Closed", IsActive: false},
		},
		Vendors: []domain.Vendor{
			{VendorID: "v-power", OwnerID: owner, Name: "Power Co", Category: "Utilities"},
			{VendorID: "v-net", OwnerID: owner, Name: "Fiber Net", Category: "Utilities"},
			{VendorID: "v-gym", OwnerID: owner, Name: "Gym", Category: ""},
		},
		Cards: []domain.CreditCard{
			{CardID: "card-1", OwnerID: owner, Name: "Gold", CreditLimit: ptr(d("1000.00")), IsActive: true},
			{CardID: "card-2", OwnerID: owner, Name: "Basic", IsActive: true},
		},
		Entries: []domain.LedgerEntry{
			{EntryID: "ob-a", OwnerID: owner, BankAccountID: "acc-a", Kind: domain.OpeningBalance, Amount: d("1000.00"), EntryDate: day(2025, 1, 1)},
			{EntryID: "ob-b", OwnerID: owner, BankAccountID: "acc-b", Kind: domain.OpeningBalance, Amount: d("500.00"), EntryDate: day(2025, 1, 1)},
			{EntryID: "salary", OwnerID: owner, BankAccountID: "acc-a", Kind: domain.Inflow, Amount: d("3000.00"), EntryDate: day(2025, 3, 5)},
			{EntryID: "e-b1", OwnerID: owner, BankAccountID: "acc-a", Kind: domain.Outflow, Amount: d("110.00"), EntryDate: day(2025, 3, 12), BillID: ptr("b1"), PaymentMethod: domain.PaymentPix},
			{EntryID: "e-b2", OwnerID: owner, BankAccountID: "acc-b", Kind: domain.Outflow, Amount: d("90.00"), EntryDate: day(2025, 3, 20), BillID: ptr("b2"), PaymentMethod: domain.PaymentCreditCard, CardID: ptr("card-1")},
			{EntryID: "groceries", OwnerID: owner, BankAccountID: "acc-a", Kind: domain.Outflow, Amount: d("250.00"), EntryDate: day(2025, 3, 22), PaymentMethod: domain.PaymentCreditCard, CardID: ptr("card-1")},
			{EntryID: "mistake", OwnerID: owner, BankAccountID: "acc-a", Kind: domain.Outflow, Amount: d("999.00"), EntryDate: day(2025, 3, 23), Reversed: true, PaymentMethod: domain.PaymentCash},
			{EntryID: "mistake-rev", OwnerID: owner, BankAccountID: "acc-a", Kind: domain.Inflow, Amount: d("999.00"), EntryDate: day(2025, 3, 23), ReversalOf: ptr("mistake")},
		},
		Bills: []domain.Bill{
			paidBill("b1", "v-power", day(2025, 3, 10), "100.00", "10.00", domain.PaymentPix, "acc-a", day(2025, 3, 12)),
			paidBill("b2", "v-net", day(2025, 3, 15), "90.00", "0", domain.PaymentCreditCard, "acc-b", day(2025, 3, 20)),
			{BillID: "b3", OwnerID: owner, VendorID: "v-gym", DueDate: day(2025, 3, 1), Amount: d("80.00"), Status: domain.BillPending},
			{BillID: "b4", OwnerID: owner, VendorID: "v-gym", DueDate: day(2025, 3, 28), Amount: d("80.00"), Status: domain.BillPending},
			{BillID: "b5", OwnerID: owner, VendorID: "v-gym", DueDate: day(2025, 3, 29), Amount: d("40.00"), Status: domain.BillCancelled},
			{BillID: "b6", OwnerID: owner, VendorID: "v-power", DueDate: day(2025, 4, 10), Amount: d("120.00"), Status: domain.BillPending},
		},
	}
	snap.Bills[1].Payment.CardID = ptr("card-1")
	return snap
}

func march() domain.ReportQuery {
	return domain.ReportQuery{OwnerID: owner, Year: 2025, Month: time.March}
}

func TestSummarize(t *testing.T) {
	s := Summarize(fixture(), march(), day(2025, 3, 15))

	assert.Equal(t, 1, s.Pending.Count)
	assert.True(t, s.Pending.Value.Equal(d("80.00")))
	assert.Equal(t, 1, s.Overdue.Count)
	assert.True(t, s.Overdue.Value.Equal(d("80.00")))
	assert.Equal(t, 2, s.Paid.Count)
	assert.True(t, s.Paid.Value.Equal(d("200.00")))
	assert.Equal(t, 1, s.DueNextMonth.Count)
	assert.True(t, s.DueNextMonth.Value.Equal(d("120.00")))

	assert.True(t, s.Inflow.Equal(d("3000.00")), "opening balances and reversal records are not inflow")
	assert.True(t, s.Outflow.Equal(d("450.00")), "reversed entries are excluded")
	assert.True(t, s.Net.Equal(d("2550.00")))
}

func TestSummarize_AccountFilter(t *testing.T) {
	q := march()
	q.AccountIDs = []string{"acc-b"}
	s := Summarize(fixture(), q, day(2025, 3, 15))

	assert.Equal(t, 1, s.Paid.Count)
	assert.True(t, s.Paid.Value.Equal(d("90.00")))
	assert.True(t, s.Inflow.IsZero())
	assert.True(t, s.Outflow.Equal(d("90.00")))
}

func TestBalanceEvolution(t *testing.T) {
	ev := BalanceEvolution(fixture(), march(), 3)

	require.Len(t, ev.Dates, 3)
	assert.Equal(t, []time.Time{day(2025, 1, 31), day(2025, 2, 28), day(2025, 3, 31)}, ev.Dates)
	require.Len(t, ev.Series, 2, "inactive accounts are not sampled")

	checking := ev.Series[0]
	assert.Equal(t, "acc-a", checking.AccountID)
	for i, p := range checking.Points {
		assert.Equal(t, ev.Dates[i], p.Date, "every series shares the date axis")
	}
	assert.True(t, checking.Points[0].Balance.Equal(d("1000.00")))
	assert.True(t, checking.Points[1].Balance.Equal(d("1000.00")), "carry forward")
	assert.True(t, checking.Points[2].Balance.Equal(d("3640.00")))

	savings := ev.Series[1]
	assert.True(t, savings.Points[2].Balance.Equal(d("410.00")))
}

func TestEvolutionDates_CrossesYear(t *testing.T) {
	dates := EvolutionDates(2025, time.February, 4)
	assert.Equal(t, []time.Time{day(2024, 11, 30), day(2024, 12, 31), day(2025, 1, 31), day(2025, 2, 28)}, dates)
	assert.Len(t, EvolutionDates(2025, time.February, 0), DefaultEvolutionMonths)
}

func TestCategoryBreakdown(t *testing.T) {
	rows := CategoryBreakdown(fixture(), march())

	require.Len(t, rows, 1, "unpaid categories are omitted")
	assert.Equal(t, "Utilities", rows[0].Label)
	assert.True(t, rows[0].Value.Equal(d("200.00")), "value includes interest")
	assert.True(t, rows[0].Percent.Equal(d("100")))
}

func TestVendorBreakdown(t *testing.T) {
	rows := VendorBreakdown(fixture(), march())

	require.Len(t, rows, 2)
	assert.Equal(t, "Power Co", rows[0].Label)
	assert.True(t, rows[0].Percent.Equal(d("55")))
	assert.Equal(t, "Fiber Net", rows[1].Label)
	assert.True(t, rows[1].Percent.Equal(d("45")))
}

func TestBreakdown_PercentagesSumToHundred(t *testing.T) {
	snap := fixture()
	snap.Bills = nil
	for i, amount := range []string{"10.00", "10.00", "10.00"} {
		vendor := domain.Vendor{VendorID: string(rune('x' + i)), OwnerID: owner, Name: string(rune('X' + i)), Category: string(rune('A' + i))}
		snap.Vendors = append(snap.Vendors, vendor)
		snap.Bills = append(snap.Bills, paidBill("p"+vendor.VendorID, vendor.VendorID, day(2025, 3, 1), amount, "0", domain.PaymentCash, "acc-a", day(2025, 3, 2)))
	}

	rows := CategoryBreakdown(snap, march())
	require.Len(t, rows, 3)
	total := decimal.Zero
	for _, r := range rows {
		total = total.Add(r.Percent)
	}
	tolerance := d("0.01").Mul(decimal.NewFromInt(int64(len(rows))))
	assert.True(t, total.Sub(d("100")).Abs().LessThanOrEqual(tolerance), "sum %s", total)
}

func TestPaymentUtilization(t *testing.T) {
	u := PaymentUtilization(fixture(), march())

	byMethod := map[domain.PaymentMethod]domain.PaymentMethodTotal{}
	for _, m := range u.Methods {
		byMethod[m.Method] = m
	}
	require.Contains(t, byMethod, domain.PaymentPix)
	assert.True(t, byMethod[domain.PaymentPix].Total.Equal(d("110.00")))

	cc := byMethod[domain.PaymentCreditCard]
	assert.True(t, cc.BillsTotal.Equal(d("90.00")))
	assert.True(t, cc.LedgerTotal.Equal(d("250.00")), "bill payment entries are not counted twice")
	assert.NotContains(t, byMethod, domain.PaymentCash, "reversed entries are excluded")

	require.Len(t, u.Cards, 2)
	basic, gold := u.Cards[0], u.Cards[1]
	assert.Equal(t, "Basic", basic.Name)
	assert.Nil(t, basic.Utilization)
	assert.True(t, gold.Total.Equal(d("340.00")))
	require.NotNil(t, gold.Utilization)
	assert.True(t, gold.Utilization.Equal(d("0.34")))
}

func TestAnnual(t *testing.T) {
	r := Annual(fixture(), owner, 2025, nil)

	require.Len(t, r.Months, 12)
	mar := r.Months[2]
	assert.Equal(t, time.March, mar.Month)
	assert.True(t, mar.Inflow.Equal(d("3000.00")))
	assert.True(t, mar.Outflow.Equal(d("450.00")))
	assert.Equal(t, 2, mar.PaidCount)
	assert.True(t, mar.BillsPaid.Equal(d("200.00")))
	assert.True(t, r.Months[0].Inflow.IsZero(), "opening balance is not inflow")
	assert.True(t, r.TotalNet.Equal(d("2550.00")))
}

func TestDashboard_TotalBalance(t *testing.T) {
	dash := BuildDashboard(fixture(), march(), day(2025, 3, 15), 6)
	assert.True(t, dash.TotalBalance.Equal(d("4050.00")))
	assert.Len(t, dash.BalanceEvolution.Dates, 6)
}

func TestCacheKey_IgnoresAccountOrder(t *testing.T) {
	a := domain.ReportQuery{OwnerID: owner, Year: 2025, Month: time.March, AccountIDs: []string{"b", "a"}}
	b := domain.ReportQuery{OwnerID: owner, Year: 2025, Month: time.March, AccountIDs: []string{"a", "b"}}
	assert.Equal(t, CacheKey(a), CacheKey(b))
	assert.Equal(t, "owner-1|2025-03|a,b", CacheKey(a))
	assert.Equal(t, []string{"b", "a"}, a.AccountIDs, "input is not mutated")
}
