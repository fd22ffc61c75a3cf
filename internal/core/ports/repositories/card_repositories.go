package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/contas_app/internal/core/domain"
)

// CardReader defines read operations for credit cards
type CardReader interface {
	FindCardByID(ctx context.Context, ownerID, cardID string) (*domain.CreditCard, error)
	ListCards(ctx context.Context, ownerID string, includeInactive bool) ([]domain.CreditCard, error)
}

// CardWriter defines write operations for credit cards
type CardWriter interface {
	SaveCard(ctx context.Context, card domain.CreditCard) error
	SetCardActive(ctx context.Context, ownerID, cardID string, active bool, userID string, now time.Time) error
}

// CardRepositoryFacade combines all credit card repository interfaces
type CardRepositoryFacade interface {
	CardReader
	CardWriter
}
