package aggregation

import (
	"sort"

	"github.com/SscSPs/contas_app/internal/core/domain"
	"github.com/SscSPs/contas_app/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

// CategoryBreakdown groups bills paid in the month by vendor category.
func CategoryBreakdown(snap *domain.ReportSnapshot, q domain.ReportQuery) []domain.BreakdownRow {
	vendors := vendorIndex(snap.Vendors)
	return breakdown(snap, q, func(b domain.Bill) (string, string) {
		category := domain.UncategorizedLabel
		if v, ok := vendors[b.VendorID]; ok && v.Category != "" {
			category = v.Category
		}
		return category, category
	})
}

// VendorBreakdown groups bills paid in the month by vendor.
func VendorBreakdown(snap *domain.ReportSnapshot, q domain.ReportQuery) []domain.BreakdownRow {
	vendors := vendorIndex(snap.Vendors)
	return breakdown(snap, q, func(b domain.Bill) (string, string) {
		if v, ok := vendors[b.VendorID]; ok {
			return v.VendorID, v.Name
		}
		return b.VendorID, b.VendorID
	})
}

// breakdown sums amount plus interest of bills paid in the month per group key.
// Rows are ordered by value descending then label; empty groups are omitted and
// percentages are computed after summation.
func breakdown(snap *domain.ReportSnapshot, q domain.ReportQuery, group func(domain.Bill) (key, label string)) []domain.BreakdownRow {
	f := newAccountFilter(q.AccountIDs)
	rows := make(map[string]*domain.BreakdownRow)

	for _, b := range snap.Bills {
		if !paidIn(b, q.Year, q.Month, f) {
			continue
		}
		key, label := group(b)
		row, ok := rows[key]
		if !ok {
			row = &domain.BreakdownRow{Key: key, Label: label, Value: decimal.Zero}
			rows[key] = row
		}
		row.Value = row.Value.Add(b.TotalPaid())
	}

	out := make([]domain.BreakdownRow, 0, len(rows))
	for _, row := range rows {
		if row.Value.IsPositive() {
			out = append(out, *row)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Value.Equal(out[j].Value) {
			return out[i].Value.GreaterThan(out[j].Value)
		}
		return out[i].Label < out[j].Label
	})

	values := make([]decimal.Decimal, len(out))
	for i := range out {
		values[i] = out[i].Value
	}
	for i, p := range accounting.Percentages(values) {
		out[i].Percent = p
	}
	return out
}

func vendorIndex(vendors []domain.Vendor) map[string]domain.Vendor {
	idx := make(map[string]domain.Vendor, len(vendors))
	for _, v := range vendors {
		idx[v.VendorID] = v
	}
	return idx
}
