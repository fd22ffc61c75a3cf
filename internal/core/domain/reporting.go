package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReportQuery identifies one aggregation request. AccountIDs restricts ledger-derived
// figures and payment attribution to the given bank accounts; empty means all.
type ReportQuery struct {
	OwnerID    string
	Year       int
	Month      time.Month
	AccountIDs []string
}

// ReportSnapshot is a consistent read of everything the aggregation engine needs.
type ReportSnapshot struct {
	Accounts []BankAccount
	Entries  []LedgerEntry
	Bills    []Bill
	Vendors  []Vendor
	Cards    []CreditCard
}

// StatusTotal counts bills and sums their amounts.
type StatusTotal struct {
	Count int             `json:"count"`
	Value decimal.Decimal `json:"value"`
}

// FinancialSummary is the monthly overview.
type FinancialSummary struct {
	Year         int             `json:"year"`
	Month        time.Month      `json:"month"`
	Pending      StatusTotal     `json:"pending"`
	Overdue      StatusTotal     `json:"overdue"`
	Paid         StatusTotal     `json:"paid"`
	DueNextMonth StatusTotal     `json:"dueNextMonth"`
	Inflow       decimal.Decimal `json:"inflow"`
	Outflow      decimal.Decimal `json:"outflow"`
	Net          decimal.Decimal `json:"net"`
}

// BalancePoint is one month-end sample of an account balance.
type BalancePoint struct {
	Date    time.Time       `json:"date"`
	Balance decimal.Decimal `json:"balance"`
}

// BalanceSeries is the evolution of one account.
type BalanceSeries struct {
	AccountID string         `json:"accountID"`
	Name      string         `json:"name"`
	Points    []BalancePoint `json:"points"`
}

// BalanceEvolution holds one series per account, all sampled on Dates.
type BalanceEvolution struct {
	Dates  []time.Time     `json:"dates"`
	Series []BalanceSeries `json:"series"`
}

// BreakdownRow is one slice of a category or vendor breakdown.
type BreakdownRow struct {
	Key     string          `json:"key"`
	Label   string          `json:"label"`
	Value   decimal.Decimal `json:"value"`
	Percent decimal.Decimal `json:"percent"`
}

// PaymentMethodTotal sums what was paid with one method.
type PaymentMethodTotal struct {
	Method      PaymentMethod   `json:"method"`
	BillsTotal  decimal.Decimal `json:"billsTotal"`
	LedgerTotal decimal.Decimal `json:"ledgerTotal"`
	Total       decimal.Decimal `json:"total"`
}

// CardUtilization sums what was charged to one card in the period.
type CardUtilization struct {
	CardID      string           `json:"cardID"`
	Name        string           `json:"name"`
	Total       decimal.Decimal  `json:"total"`
	CreditLimit *decimal.Decimal `json:"creditLimit,omitempty"`
	Utilization *decimal.Decimal `json:"utilization,omitempty"` // Fraction of the limit, 4 dp
}

// PaymentUtilization groups payment-method and card figures for a period.
type PaymentUtilization struct {
	Methods []PaymentMethodTotal `json:"methods"`
	Cards   []CardUtilization    `json:"cards"`
}

// Dashboard bundles every monthly aggregation computed over one snapshot.
type Dashboard struct {
	Summary          FinancialSummary   `json:"summary"`
	BalanceEvolution BalanceEvolution   `json:"balanceEvolution"`
	Categories       []BreakdownRow     `json:"categories"`
	Vendors          []BreakdownRow     `json:"vendors"`
	Payments         PaymentUtilization `json:"payments"`
	TotalBalance     decimal.Decimal    `json:"totalBalance"`
}

// MonthTotals is one row of the annual report.
type MonthTotals struct {
	Month     time.Month      `json:"month"`
	Inflow    decimal.Decimal `json:"inflow"`
	Outflow   decimal.Decimal `json:"outflow"`
	Net       decimal.Decimal `json:"net"`
	BillsPaid decimal.Decimal `json:"billsPaid"`
	PaidCount int             `json:"paidCount"`
}

// AnnualReport aggregates a calendar year month by month.
type AnnualReport struct {
	Year         int             `json:"year"`
	Months       []MonthTotals   `json:"months"`
	TotalInflow  decimal.Decimal `json:"totalInflow"`
	TotalOutflow decimal.Decimal `json:"totalOutflow"`
	TotalNet     decimal.Decimal `json:"totalNet"`
	TotalBills   decimal.Decimal `json:"totalBills"`
}
