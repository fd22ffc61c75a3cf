package mapping

import (
	"github.com/SscSPs/contas_app/internal/core/domain"
	"github.com/SscSPs/contas_app/internal/models"
)

// ToModelLedgerEntry converts a domain.LedgerEntry to its row
func ToModelLedgerEntry(d domain.LedgerEntry) models.LedgerEntry {
	return models.LedgerEntry{
		EntryID:       d.EntryID,
		OwnerID:       d.OwnerID,
		BankAccountID: d.BankAccountID,
		Kind:          string(d.Kind),
		Amount:        d.Amount,
		EntryDate:     domain.DateOf(d.EntryDate),
		Memo:          d.Memo,
		Reversed:      d.Reversed,
		ReversalOf:    d.ReversalOf,
		BillID:        d.BillID,
		PaymentMethod: optionalString(string(d.PaymentMethod)),
		CardID:        d.CardID,
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainLedgerEntry converts a ledger_entries row to a domain.LedgerEntry
func ToDomainLedgerEntry(m models.LedgerEntry) domain.LedgerEntry {
	return domain.LedgerEntry{
		EntryID:       m.EntryID,
		OwnerID:       m.OwnerID,
		BankAccountID: m.BankAccountID,
		Kind:          domain.EntryKind(m.Kind),
		Amount:        m.Amount,
		EntryDate:     domain.DateOf(m.EntryDate),
		Memo:          m.Memo,
		Reversed:      m.Reversed,
		ReversalOf:    m.ReversalOf,
		BillID:        m.BillID,
		PaymentMethod: domain.PaymentMethod(derefString(m.PaymentMethod)),
		CardID:        m.CardID,
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}
