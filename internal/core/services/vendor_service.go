package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/SscSPs/contas_app/internal/apperrors"
	"github.com/SscSPs/contas_app/internal/core/domain"
	portsrepo "github.com/SscSPs/contas_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/contas_app/internal/core/ports/services"
	"github.com/SscSPs/contas_app/internal/dto"
	"github.com/google/uuid"
)

type vendorService struct {
	BaseService
}

// NewVendorService creates a new vendor service.
func NewVendorService(store portsrepo.TransactionManager, options ...ServiceOption) portssvc.VendorSvcFacade {
	return &vendorService{BaseService: newBaseService(store, options...)}
}

var _ portssvc.VendorSvcFacade = (*vendorService)(nil)

func (s *vendorService) CreateVendor(ctx context.Context, ownerID string, req dto.CreateVendorRequest) (*domain.Vendor, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: vendor name is required", apperrors.ErrValidation)
	}

	vendor := domain.Vendor{
		VendorID:    uuid.NewString(),
		OwnerID:     ownerID,
		Name:        name,
		Category:    strings.TrimSpace(req.Category),
		IsActive:    true,
		AuditFields: domain.NewAuditFields(ownerID, s.Now()),
	}
	err := s.Store.WithinTx(ctx, func(ctx context.Context, repos portsrepo.Repositories) error {
		return repos.Vendors().SaveVendor(ctx, vendor)
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to create vendor", slog.String("owner_id", ownerID))
		return nil, fmt.Errorf("failed to create vendor: %w", err)
	}

	s.LogInfo(ctx, "Vendor created", slog.String("vendor_id", vendor.VendorID))
	return &vendor, nil
}

func (s *vendorService) GetVendor(ctx context.Context, ownerID, vendorID string) (*domain.Vendor, error) {
	var vendor *domain.Vendor
	err := s.Store.WithinSnapshot(ctx, func(ctx context.Context, repos portsrepo.Repositories) error {
		var err error
		vendor, err = repos.Vendors().FindVendorByID(ctx, ownerID, vendorID)
		return notFoundAs(err, apperrors.ErrVendorNotFound, vendorID)
	})
	return vendor, err
}

func (s *vendorService) ListVendors(ctx context.Context, ownerID string, includeInactive bool) ([]domain.Vendor, error) {
	var vendors []domain.Vendor
	err := s.Store.WithinSnapshot(ctx, func(ctx context.Context, repos portsrepo.Repositories) error {
		var err error
		vendors, err = repos.Vendors().ListVendors(ctx, ownerID, includeInactive)
		return err
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to list vendors", slog.String("owner_id", ownerID))
		return nil, fmt.Errorf("failed to list vendors: %w", err)
	}
	return vendors, nil
}

// SetVendorActive toggles a vendor. Bills already referencing the vendor are unaffected.
func (s *vendorService) SetVendorActive(ctx context.Context, ownerID, vendorID string, active bool) (*domain.Vendor, error) {
	var vendor *domain.Vendor
	err := s.Store.WithinTx(ctx, func(ctx context.Context, repos portsrepo.Repositories) error {
		if err := repos.Vendors().SetVendorActive(ctx, ownerID, vendorID, active, ownerID, s.Now()); err != nil {
			return notFoundAs(err, apperrors.ErrVendorNotFound, vendorID)
		}
		var err error
		vendor, err = repos.Vendors().FindVendorByID(ctx, ownerID, vendorID)
		return err
	})
	if err != nil {
		s.logFailure(ctx, err, "Failed to change vendor status", slog.String("vendor_id", vendorID))
		return nil, err
	}
	return vendor, nil
}
