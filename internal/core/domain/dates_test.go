package domain_test

import (
	"testing"
	"time"

	"github.com/SscSPs/contas_app/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestAddMonthsClamped(t *testing.T) {
	tests := []struct {
		name   string
		start  time.Time
		months int
		want   time.Time
	}{
		{name: "same day next month", start: date(2025, 1, 15), months: 1, want: date(2025, 2, 15)},
		{name: "jan 31 clamps to feb 28", start: date(2025, 1, 31), months: 1, want: date(2025, 2, 28)},
		{name: "jan 31 clamps to leap feb 29", start: date(2024, 1, 31), months: 1, want: date(2024, 2, 29)},
		{name: "jan 31 keeps day in march", start: date(2025, 1, 31), months: 2, want: date(2025, 3, 31)},
		{name: "crosses year end", start: date(2025, 11, 30), months: 3, want: date(2026, 2, 28)},
		{name: "zero months", start: date(2025, 6, 10), months: 0, want: date(2025, 6, 10)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, domain.AddMonthsClamped(tt.start, tt.months))
		})
	}
}

func TestToday_UsesLocation(t *testing.T) {
	saoPaulo := time.FixedZone("BRT", -3*60*60)
	now := time.Date(2025, 3, 1, 1, 30, 0, 0, time.UTC) // still Feb 28 in BRT

	assert.Equal(t, date(2025, 2, 28), domain.Today(now, saoPaulo))
	assert.Equal(t, date(2025, 3, 1), domain.Today(now, nil))
}

func TestMonthBounds(t *testing.T) {
	assert.Equal(t, date(2024, 2, 1), domain.MonthStart(2024, time.February))
	assert.Equal(t, date(2024, 2, 29), domain.MonthEnd(2024, time.February))
	assert.True(t, domain.InMonth(date(2024, 2, 29), 2024, time.February))
	assert.False(t, domain.InMonth(date(2024, 3, 1), 2024, time.February))
}
