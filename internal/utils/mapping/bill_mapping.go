package mapping

import (
	"time"

	"github.com/SscSPs/contas_app/internal/core/domain"
	"github.com/SscSPs/contas_app/internal/models"
	"github.com/shopspring/decimal"
)

// ToModelBill converts a domain.Bill to its row, flattening the payment.
func ToModelBill(d domain.Bill) models.Bill {
	m := models.Bill{
		BillID:           d.BillID,
		OwnerID:          d.OwnerID,
		Name:             d.Name,
		VendorID:         d.VendorID,
		DueDate:          domain.DateOf(d.DueDate),
		Amount:           d.Amount,
		Status:           string(d.Status),
		PlanID:           d.PlanID,
		InstallmentIndex: d.InstallmentIndex,
		InstallmentCount: d.InstallmentCount,
		CancelledAt:      d.CancelledAt,
		AuditFields:      ToModelAuditFields(d.AuditFields),
	}
	// OVERDUE is derived at read time and never persisted
	if d.Status == domain.BillOverdue {
		m.Status = string(domain.BillPending)
	}
	if p := d.Payment; p != nil {
		method := string(p.Method)
		bankAccountID := p.BankAccountID
		interest := p.Interest
		paidAt := domain.DateOf(p.PaidAt)
		ledgerEntryID := p.LedgerEntryID

		m.PaymentMethod = &method
		m.PaymentBankAccountID = &bankAccountID
		m.PaymentCardID = p.CardID
		m.PaymentInterest = &interest
		m.PaidAt = &paidAt
		m.PaymentLedgerEntryID = &ledgerEntryID
	}
	return m
}

// ToDomainBill converts a bills row to a domain.Bill with its stored status.
func ToDomainBill(m models.Bill) domain.Bill {
	d := domain.Bill{
		BillID:           m.BillID,
		OwnerID:          m.OwnerID,
		Name:             m.Name,
		VendorID:         m.VendorID,
		DueDate:          domain.DateOf(m.DueDate),
		Amount:           m.Amount,
		Status:           domain.BillStatus(m.Status),
		PlanID:           m.PlanID,
		InstallmentIndex: m.InstallmentIndex,
		InstallmentCount: m.InstallmentCount,
		CancelledAt:      m.CancelledAt,
		AuditFields:      ToDomainAuditFields(m.AuditFields),
	}
	if m.PaymentMethod != nil {
		interest := decimal.Zero
		if m.PaymentInterest != nil {
			interest = *m.PaymentInterest
		}
		var paidAt time.Time
		if m.PaidAt != nil {
			paidAt = domain.DateOf(*m.PaidAt)
		}
		d.Payment = &domain.Payment{
			Method:        domain.PaymentMethod(*m.PaymentMethod),
			BankAccountID: derefString(m.PaymentBankAccountID),
			CardID:        m.PaymentCardID,
			Interest:      interest,
			PaidAt:        paidAt,
			LedgerEntryID: derefString(m.PaymentLedgerEntryID),
		}
	}
	return d
}
