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

type cardService struct {
	BaseService
}

// NewCardService creates a new credit card service.
func NewCardService(store portsrepo.TransactionManager, options ...ServiceOption) portssvc.CardSvcFacade {
	return &cardService{BaseService: newBaseService(store, options...)}
}

var _ portssvc.CardSvcFacade = (*cardService)(nil)

func (s *cardService) CreateCard(ctx context.Context, ownerID string, req dto.CreateCardRequest) (*domain.CreditCard, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: card name is required", apperrors.ErrValidation)
	}
	if req.CreditLimit != nil && !domain.ValidAmount(*req.CreditLimit) {
		return nil, fmt.Errorf("%w: credit limit %s", apperrors.ErrInvalidAmount, req.CreditLimit)
	}

	card := domain.CreditCard{
		CardID:      uuid.NewString(),
		OwnerID:     ownerID,
		Name:        name,
		CreditLimit: req.CreditLimit,
		IsActive:    true,
		AuditFields: domain.NewAuditFields(ownerID, s.Now()),
	}
	err := s.Store.WithinTx(ctx, func(ctx context.Context, repos portsrepo.Repositories) error {
		return repos.Cards().SaveCard(ctx, card)
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to create credit card", slog.String("owner_id", ownerID))
		return nil, fmt.Errorf("failed to create credit card: %w", err)
	}

	s.LogInfo(ctx, "Credit card created", slog.String("card_id", card.CardID))
	return &card, nil
}

func (s *cardService) GetCard(ctx context.Context, ownerID, cardID string) (*domain.CreditCard, error) {
	var card *domain.CreditCard
	err := s.Store.WithinSnapshot(ctx, func(ctx context.Context, repos portsrepo.Repositories) error {
		var err error
		card, err = repos.Cards().FindCardByID(ctx, ownerID, cardID)
		return notFoundAs(err, apperrors.ErrCardNotFound, cardID)
	})
	return card, err
}

func (s *cardService) ListCards(ctx context.Context, ownerID string, includeInactive bool) ([]domain.CreditCard, error) {
	var cards []domain.CreditCard
	err := s.Store.WithinSnapshot(ctx, func(ctx context.Context, repos portsrepo.Repositories) error {
		var err error
		cards, err = repos.Cards().ListCards(ctx, ownerID, includeInactive)
		return err
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to list credit cards", slog.String("owner_id", ownerID))
		return nil, fmt.Errorf("failed to list credit cards: %w", err)
	}
	return cards, nil
}

func (s *cardService) SetCardActive(ctx context.Context, ownerID, cardID string, active bool) (*domain.CreditCard, error) {
	var card *domain.CreditCard
	err := s.Store.WithinTx(ctx, func(ctx context.Context, repos portsrepo.Repositories) error {
		if err := repos.Cards().SetCardActive(ctx, ownerID, cardID, active, ownerID, s.Now()); err != nil {
			return notFoundAs(err, apperrors.ErrCardNotFound, cardID)
		}
		var err error
		card, err = repos.Cards().FindCardByID(ctx, ownerID, cardID)
		return err
	})
	if err != nil {
		s.logFailure(ctx, err, "Failed to change credit card status", slog.String("card_id", cardID))
		return nil, err
	}
	return card, nil
}
