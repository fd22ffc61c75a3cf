package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/SscSPs/contas_app/internal/apperrors"
	"github.com/SscSPs/contas_app/internal/core/domain"
	portsrepo "github.com/SscSPs/contas_app/internal/core/ports/repositories"
	"github.com/SscSPs/contas_app/internal/models"
	"github.com/SscSPs/contas_app/internal/utils/mapping"
)

const vendorColumns = `vendor_id, owner_id, name, category, is_active,
	created_at, created_by, last_updated_at, last_updated_by`

const cardColumns = `card_id, owner_id, name, credit_limit, is_active,
	created_at, created_by, last_updated_at, last_updated_by`

type PgxVendorRepository struct {
	db querier
}

var _ portsrepo.VendorRepositoryFacade = (*PgxVendorRepository)(nil)

func (r *PgxVendorRepository) SaveVendor(ctx context.Context, vendor domain.Vendor) error {
	m := mapping.ToModelVendor(vendor)
	query := `INSERT INTO vendors (` + vendorColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);`
	_, err := r.db.Exec(ctx, query,
		m.VendorID, m.OwnerID, m.Name, m.Category, m.IsActive,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: vendor %s", apperrors.ErrDuplicate, m.VendorID)
		}
		return fmt.Errorf("failed to save vendor %s: %w", m.VendorID, err)
	}
	return nil
}

func (r *PgxVendorRepository) FindVendorByID(ctx context.Context, ownerID, vendorID string) (*domain.Vendor, error) {
	rows, err := r.db.Query(ctx, `SELECT `+vendorColumns+` FROM vendors WHERE owner_id = $1 AND vendor_id = $2`, ownerID, vendorID)
	m, err := collectOne[models.Vendor](rows, err, "vendor "+vendorID)
	if err != nil {
		return nil, err
	}
	v := mapping.ToDomainVendor(*m)
	return &v, nil
}

func (r *PgxVendorRepository) ListVendors(ctx context.Context, ownerID string, includeInactive bool) ([]domain.Vendor, error) {
	query := `SELECT ` + vendorColumns + ` FROM vendors WHERE owner_id = $1 AND (is_active OR $2) ORDER BY name, vendor_id`
	rows, err := r.db.Query(ctx, query, ownerID, includeInactive)
	list, err := collectAll[models.Vendor](rows, err, "vendors")
	if err != nil {
		return nil, err
	}
	vendors := make([]domain.Vendor, len(list))
	for i, m := range list {
		vendors[i] = mapping.ToDomainVendor(m)
	}
	return vendors, nil
}

func (r *PgxVendorRepository) SetVendorActive(ctx context.Context, ownerID, vendorID string, active bool, userID string, now time.Time) error {
	query := `UPDATE vendors SET is_active = $3, last_updated_at = $4, last_updated_by = $5 WHERE owner_id = $1 AND vendor_id = $2`
	tag, err := r.db.Exec(ctx, query, ownerID, vendorID, active, now, userID)
	return expectOneRow(tag, err, "vendor "+vendorID)
}

type PgxCardRepository struct {
	db querier
}

var _ portsrepo.CardRepositoryFacade = (*PgxCardRepository)(nil)

func (r *PgxCardRepository) SaveCard(ctx context.Context, card domain.CreditCard) error {
	m := mapping.ToModelCreditCard(card)
	query := `INSERT INTO credit_cards (` + cardColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);`
	_, err := r.db.Exec(ctx, query,
		m.CardID, m.OwnerID, m.Name, m.CreditLimit, m.IsActive,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: card %s", apperrors.ErrDuplicate, m.CardID)
		}
		return fmt.Errorf("failed to save card %s: %w", m.CardID, err)
	}
	return nil
}

func (r *PgxCardRepository) FindCardByID(ctx context.Context, ownerID, cardID string) (*domain.CreditCard, error) {
	rows, err := r.db.Query(ctx, `SELECT `+cardColumns+` FROM credit_cards WHERE owner_id = $1 AND card_id = $2`, ownerID, cardID)
	m, err := collectOne[models.CreditCard](rows, err, "card "+cardID)
	if err != nil {
		return nil, err
	}
	c := mapping.ToDomainCreditCard(*m)
	return &c, nil
}

func (r *PgxCardRepository) ListCards(ctx context.Context, ownerID string, includeInactive bool) ([]domain.CreditCard, error) {
	query := `SELECT ` + cardColumns + ` FROM credit_cards WHERE owner_id = $1 AND (is_active OR $2) ORDER BY name, card_id`
	rows, err := r.db.Query(ctx, query, ownerID, includeInactive)
	list, err := collectAll[models.CreditCard](rows, err, "cards")
	if err != nil {
		return nil, err
	}
	cards := make([]domain.CreditCard, len(list))
	for i, m := range list {
		cards[i] = mapping.ToDomainCreditCard(m)
	}
	return cards, nil
}

func (r *PgxCardRepository) SetCardActive(ctx context.Context, ownerID, cardID string, active bool, userID string, now time.Time) error {
	query := `UPDATE credit_cards SET is_active = $3, last_updated_at = $4, last_updated_by = $5 WHERE owner_id = $1 AND card_id = $2`
	tag, err := r.db.Exec(ctx, query, ownerID, cardID, active, now, userID)
	return expectOneRow(tag, err, "card "+cardID)
}
