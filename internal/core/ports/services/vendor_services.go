package services

import (
	"context"

	"github.com/SscSPs/contas_app/internal/core/domain"
	"github.com/SscSPs/contas_app/internal/dto"
)

// VendorSvcFacade defines vendor management operations
type VendorSvcFacade interface {
	CreateVendor(ctx context.Context, ownerID string, req dto.CreateVendorRequest) (*domain.Vendor, error)
	GetVendor(ctx context.Context, ownerID, vendorID string) (*domain.Vendor, error)
	ListVendors(ctx context.Context, ownerID string, includeInactive bool) ([]domain.Vendor, error)
	SetVendorActive(ctx context.Context, ownerID, vendorID string, active bool) (*domain.Vendor, error)
}

// CardSvcFacade defines credit card management operations
type CardSvcFacade interface {
	CreateCard(ctx context.Context, ownerID string, req dto.CreateCardRequest) (*domain.CreditCard, error)
	GetCard(ctx context.Context, ownerID, cardID string) (*domain.CreditCard, error)
	ListCards(ctx context.Context, ownerID string, includeInactive bool) ([]domain.CreditCard, error)
	SetCardActive(ctx context.Context, ownerID, cardID string, active bool) (*domain.CreditCard, error)
}
