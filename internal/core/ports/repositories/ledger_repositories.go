package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/contas_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// LedgerReader defines read operations for ledger entries
type LedgerReader interface {
	// FindEntryByID retrieves an owner's ledger entry.
	FindEntryByID(ctx context.Context, ownerID, entryID string) (*domain.LedgerEntry, error)

	// FindActiveOpeningBalance returns the counted opening balance of an account,
	// or apperrors.ErrNotFound when there is none.
	FindActiveOpeningBalance(ctx context.Context, ownerID, accountID string) (*domain.LedgerEntry, error)

	// ListEntriesByAccount retrieves a page of entries ordered by entry date then creation time,
	// newest first. nextToken is an opaque cursor returned by a previous call.
	ListEntriesByAccount(ctx context.Context, ownerID, accountID string, limit int, nextToken *string) ([]domain.LedgerEntry, *string, error)

	// ListEntriesByOwner retrieves every entry of the owner, optionally limited to some accounts.
	ListEntriesByOwner(ctx context.Context, ownerID string, accountIDs []string) ([]domain.LedgerEntry, error)

	// SumBalance computes the balance of an account from counted entries dated on or before asOf.
	SumBalance(ctx context.Context, ownerID, accountID string, asOf *time.Time) (decimal.Decimal, error)
}

// LedgerWriter defines write operations for ledger entries
type LedgerWriter interface {
	// SaveEntry appends an entry.
	SaveEntry(ctx context.Context, entry domain.LedgerEntry) error

	// MarkEntryReversed sets the reversed flag, the only mutation an entry ever receives.
	MarkEntryReversed(ctx context.Context, ownerID, entryID, userID string, now time.Time) error
}

// LedgerTransactionSupport defines operations that support transactional workflows
type LedgerTransactionSupport interface {
	// FindEntryForUpdate retrieves an entry and locks it until the transaction ends.
	FindEntryForUpdate(ctx context.Context, ownerID, entryID string) (*domain.LedgerEntry, error)
}

// LedgerRepositoryFacade combines all ledger repository interfaces
type LedgerRepositoryFacade interface {
	LedgerReader
	LedgerWriter
	LedgerTransactionSupport
}
