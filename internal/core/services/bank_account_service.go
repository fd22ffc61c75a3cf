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
	"github.com/shopspring/decimal"
)

type bankAccountService struct {
	BaseService
}

// NewBankAccountService creates a new bank account service.
func NewBankAccountService(store portsrepo.TransactionManager, options ...ServiceOption) portssvc.BankAccountSvcFacade {
	return &bankAccountService{BaseService: newBaseService(store, options...)}
}

var _ portssvc.BankAccountSvcFacade = (*bankAccountService)(nil)

func (s *bankAccountService) CreateBankAccount(ctx context.Context, ownerID string, req dto.CreateBankAccountRequest) (*domain.BankAccount, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: account name is required", apperrors.ErrValidation)
	}

	account := domain.BankAccount{
		AccountID:   uuid.NewString(),
		OwnerID:     ownerID,
		Name:        name,
		BankLabel:   strings.TrimSpace(req.BankLabel),
		Balance:     decimal.Zero,
		IsActive:    true,
		AuditFields: domain.NewAuditFields(ownerID, s.Now()),
	}
	err := s.Store.WithinTx(ctx, func(ctx context.Context, repos portsrepo.Repositories) error {
		return repos.BankAccounts().SaveBankAccount(ctx, account)
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to create bank account", slog.String("owner_id", ownerID))
		return nil, fmt.Errorf("failed to create bank account: %w", err)
	}

	s.LogInfo(ctx, "Bank account created", slog.String("account_id", account.AccountID))
	return &account, nil
}

func (s *bankAccountService) GetBankAccount(ctx context.Context, ownerID, accountID string) (*domain.BankAccount, error) {
	var account *domain.BankAccount
	err := s.Store.WithinSnapshot(ctx, func(ctx context.Context, repos portsrepo.Repositories) error {
		var err error
		account, err = repos.BankAccounts().FindBankAccountByID(ctx, ownerID, accountID)
		return notFoundAs(err, apperrors.ErrBankAccountNotFound, accountID)
	})
	if err != nil {
		return nil, err
	}
	return account, nil
}

func (s *bankAccountService) ListBankAccounts(ctx context.Context, ownerID string, includeInactive bool) ([]domain.BankAccount, error) {
	var accounts []domain.BankAccount
	err := s.Store.WithinSnapshot(ctx, func(ctx context.Context, repos portsrepo.Repositories) error {
		var err error
		accounts, err = repos.BankAccounts().ListBankAccounts(ctx, ownerID, includeInactive)
		return err
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to list bank accounts", slog.String("owner_id", ownerID))
		return nil, fmt.Errorf("failed to list bank accounts: %w", err)
	}
	return accounts, nil
}

func (s *bankAccountService) DeactivateBankAccount(ctx context.Context, ownerID, accountID string) (*domain.BankAccount, error) {
	return s.setActive(ctx, ownerID, accountID, false)
}

func (s *bankAccountService) ActivateBankAccount(ctx context.Context, ownerID, accountID string) (*domain.BankAccount, error) {
	return s.setActive(ctx, ownerID, accountID, true)
}

func (s *bankAccountService) setActive(ctx context.Context, ownerID, accountID string, active bool) (*domain.BankAccount, error) {
	var account *domain.BankAccount
	err := s.Store.WithinTx(ctx, func(ctx context.Context, repos portsrepo.Repositories) error {
		accounts := repos.BankAccounts()
		if _, err := accounts.FindBankAccountForUpdate(ctx, ownerID, accountID); err != nil {
			return notFoundAs(err, apperrors.ErrBankAccountNotFound, accountID)
		}
		if err := accounts.SetBankAccountActive(ctx, ownerID, accountID, active, ownerID, s.Now()); err != nil {
			return err
		}
		var err error
		account, err = accounts.FindBankAccountByID(ctx, ownerID, accountID)
		return err
	})
	if err != nil {
		s.logFailure(ctx, err, "Failed to change bank account status",
			slog.String("account_id", accountID), slog.Bool("active", active))
		return nil, err
	}

	s.LogInfo(ctx, "Bank account status changed", slog.String("account_id", accountID), slog.Bool("active", active))
	return account, nil
}
