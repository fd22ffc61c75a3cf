package accounting

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// Percentages returns each value's share of the total in percent, rounded to two
// decimal places after the division. A zero total yields zero shares.
func Percentages(values []decimal.Decimal) []decimal.Decimal {
	total := decimal.Zero
	for _, v := range values {
		total = total.Add(v)
	}
	out := make([]decimal.Decimal, len(values))
	for i, v := range values {
		if total.IsZero() {
			out[i] = decimal.Zero
			continue
		}
		out[i] = v.Mul(hundred).DivRound(total, 2)
	}
	return out
}

// Ratio returns part/whole rounded to four decimal places, or nil when whole is not positive.
func Ratio(part, whole decimal.Decimal) *decimal.Decimal {
	if !whole.IsPositive() {
		return nil
	}
	r := part.DivRound(whole, 4)
	return &r
}
