package services

import (
	"context"

	"github.com/SscSPs/contas_app/internal/core/domain"
	"github.com/SscSPs/contas_app/internal/dto"
)

// BankAccountReaderSvc defines read operations for bank accounts
type BankAccountReaderSvc interface {
	GetBankAccount(ctx context.Context, ownerID, accountID string) (*domain.BankAccount, error)
	ListBankAccounts(ctx context.Context, ownerID string, includeInactive bool) ([]domain.BankAccount, error)
}

// BankAccountWriterSvc defines write operations for bank accounts
type BankAccountWriterSvc interface {
	CreateBankAccount(ctx context.Context, ownerID string, req dto.CreateBankAccountRequest) (*domain.BankAccount, error)

	// DeactivateBankAccount stops the account from accepting new postings. History is kept.
	DeactivateBankAccount(ctx context.Context, ownerID, accountID string) (*domain.BankAccount, error)
	ActivateBankAccount(ctx context.Context, ownerID, accountID string) (*domain.BankAccount, error)
}

// BankAccountSvcFacade combines all bank account service interfaces
type BankAccountSvcFacade interface {
	BankAccountReaderSvc
	BankAccountWriterSvc
}
