package services

import (
	"context"
	"time"

	"github.com/SscSPs/contas_app/internal/core/domain"
	portsrepo "github.com/SscSPs/contas_app/internal/core/ports/repositories"
	"github.com/SscSPs/contas_app/internal/dto"
	"github.com/shopspring/decimal"
)

// LedgerReaderSvc defines read operations for the ledger
type LedgerReaderSvc interface {
	// Balance computes the balance of an account from its counted entries,
	// restricted to entries dated on or before asOf when given.
	Balance(ctx context.Context, ownerID, accountID string, asOf *time.Time) (decimal.Decimal, error)

	// ListEntries returns a page of an account's entries, newest first.
	ListEntries(ctx context.Context, ownerID, accountID string, params dto.ListEntriesParams) ([]domain.LedgerEntry, *string, error)
}

// LedgerWriterSvc defines write operations for the ledger
type LedgerWriterSvc interface {
	// Post appends an entry to an active account and refreshes its cached balance.
	Post(ctx context.Context, ownerID, accountID string, req dto.PostEntryRequest) (*domain.LedgerEntry, error)

	// Reverse flags an entry as reversed and appends a reversal record.
	Reverse(ctx context.Context, ownerID, entryID string) (*domain.LedgerEntry, error)

	// ResetOpeningBalance replaces the opening balance of an account atomically.
	ResetOpeningBalance(ctx context.Context, ownerID, accountID string, req dto.OpeningBalanceRequest) (*domain.LedgerEntry, error)
}

// LedgerTxSvc lets other services post entries inside their own unit of work.
type LedgerTxSvc interface {
	PostInTx(ctx context.Context, repos portsrepo.Repositories, entry domain.LedgerEntry) (*domain.LedgerEntry, error)
}

// LedgerSvcFacade combines all ledger service interfaces
type LedgerSvcFacade interface {
	LedgerReaderSvc
	LedgerWriterSvc
	LedgerTxSvc
}
