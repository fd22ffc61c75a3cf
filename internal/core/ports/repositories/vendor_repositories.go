package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/contas_app/internal/core/domain"
)

// VendorReader defines read operations for vendors
type VendorReader interface {
	FindVendorByID(ctx context.Context, ownerID, vendorID string) (*domain.Vendor, error)
	ListVendors(ctx context.Context, ownerID string, includeInactive bool) ([]domain.Vendor, error)
}

// VendorWriter defines write operations for vendors
type VendorWriter interface {
	SaveVendor(ctx context.Context, vendor domain.Vendor) error
	SetVendorActive(ctx context.Context, ownerID, vendorID string, active bool, userID string, now time.Time) error
}

// VendorRepositoryFacade combines all vendor repository interfaces
type VendorRepositoryFacade interface {
	VendorReader
	VendorWriter
}
