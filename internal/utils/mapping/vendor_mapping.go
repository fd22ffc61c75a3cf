package mapping

import (
	"github.com/SscSPs/contas_app/internal/core/domain"
	"github.com/SscSPs/contas_app/internal/models"
)

func ToModelVendor(d domain.Vendor) models.Vendor {
	return models.Vendor{
		VendorID:    d.VendorID,
		OwnerID:     d.OwnerID,
		Name:        d.Name,
		Category:    d.Category,
		IsActive:    d.IsActive,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

func ToDomainVendor(m models.Vendor) domain.Vendor {
	return domain.Vendor{
		VendorID:    m.VendorID,
		OwnerID:     m.OwnerID,
		Name:        m.Name,
		Category:    m.Category,
		IsActive:    m.IsActive,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

func ToModelCreditCard(d domain.CreditCard) models.CreditCard {
	return models.CreditCard{
		CardID:      d.CardID,
		OwnerID:     d.OwnerID,
		Name:        d.Name,
		CreditLimit: d.CreditLimit,
		IsActive:    d.IsActive,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

func ToDomainCreditCard(m models.CreditCard) domain.CreditCard {
	return domain.CreditCard{
		CardID:      m.CardID,
		OwnerID:     m.OwnerID,
		Name:        m.Name,
		CreditLimit: m.CreditLimit,
		IsActive:    m.IsActive,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}
