package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/contas_app/internal/core/domain"
)

// BankAccountReader defines read operations for bank account data
type BankAccountReader interface {
	// FindBankAccountByID retrieves an owner's bank account. Returns apperrors.ErrNotFound
	// when the account does not exist or belongs to another owner.
	FindBankAccountByID(ctx context.Context, ownerID, accountID string) (*domain.BankAccount, error)

	// ListBankAccounts retrieves an owner's bank accounts ordered by name.
	ListBankAccounts(ctx context.Context, ownerID string, includeInactive bool) ([]domain.BankAccount, error)
}

// BankAccountWriter defines write operations for bank account data
type BankAccountWriter interface {
	// SaveBankAccount persists a new bank account.
	SaveBankAccount(ctx context.Context, account domain.BankAccount) error

	// SetBankAccountActive activates or deactivates an account.
	SetBankAccountActive(ctx context.Context, ownerID, accountID string, active bool, userID string, now time.Time) error

	// RefreshCachedBalance recomputes the cached balance from the ledger.
	RefreshCachedBalance(ctx context.Context, ownerID, accountID string, now time.Time) error
}

// BankAccountTransactionSupport defines operations that support transactional workflows
type BankAccountTransactionSupport interface {
	// FindBankAccountForUpdate retrieves an account and locks it until the transaction ends.
	FindBankAccountForUpdate(ctx context.Context, ownerID, accountID string) (*domain.BankAccount, error)
}

// BankAccountRepositoryFacade combines all bank account repository interfaces
type BankAccountRepositoryFacade interface {
	BankAccountReader
	BankAccountWriter
	BankAccountTransactionSupport
}
