package domain_test

import (
	"testing"
	"time"

	"github.com/SscSPs/contas_app/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestBill_EffectiveStatus(t *testing.T) {
	today := date(2025, 2, 10)

	tests := []struct {
		name   string
		status domain.BillStatus
		due    time.Time
		want   domain.BillStatus
	}{
		{name: "pending due today stays pending", status: domain.BillPending, due: today, want: domain.BillPending},
		{name: "pending due yesterday is overdue", status: domain.BillPending, due: date(2025, 2, 9), want: domain.BillOverdue},
		{name: "paid never becomes overdue", status: domain.BillPaid, due: date(2025, 1, 1), want: domain.BillPaid},
		{name: "cancelled never becomes overdue", status: domain.BillCancelled, due: date(2025, 1, 1), want: domain.BillCancelled},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := domain.Bill{Status: tt.status, DueDate: tt.due}
			assert.Equal(t, tt.want, b.EffectiveStatus(today))
		})
	}
}

func TestBill_TotalPaid(t *testing.T) {
	b := domain.Bill{Amount: decimal.RequireFromString("100.00")}
	assert.True(t, b.TotalPaid().IsZero())

	b.Payment = &domain.Payment{Interest: decimal.RequireFromString("2.50")}
	assert.Equal(t, "102.5", b.TotalPaid().String())
}

func TestPaymentMethod_Valid(t *testing.T) {
	assert.True(t, domain.PaymentPix.Valid())
	assert.True(t, domain.PaymentCreditCard.Valid())
	assert.False(t, domain.PaymentMethod("CHEQUE").Valid())
	assert.False(t, domain.PaymentMethod("").Valid())
}

func TestValidAmount(t *testing.T) {
	assert.True(t, domain.ValidAmount(decimal.RequireFromString("0.01")))
	assert.True(t, domain.ValidAmount(decimal.RequireFromString("10.50")))
	assert.False(t, domain.ValidAmount(decimal.Zero))
	assert.False(t, domain.ValidAmount(decimal.RequireFromString("-1")))
	assert.False(t, domain.ValidAmount(decimal.RequireFromString("1.005")))
}
