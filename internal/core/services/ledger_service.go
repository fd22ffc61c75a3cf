package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/contas_app/internal/apperrors"
	"github.com/SscSPs/contas_app/internal/core/domain"
	portsrepo "github.com/SscSPs/contas_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/contas_app/internal/core/ports/services"
	"github.com/SscSPs/contas_app/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const defaultEntriesPageSize = 20

// ledgerService implements the append-and-reverse bank account ledger.
type ledgerService struct {
	BaseService
}

// NewLedgerService creates a new ledger service.
func NewLedgerService(store portsrepo.TransactionManager, options ...ServiceOption) portssvc.LedgerSvcFacade {
	return &ledgerService{BaseService: newBaseService(store, options...)}
}

var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

func (s *ledgerService) Post(ctx context.Context, ownerID, accountID string, req dto.PostEntryRequest) (*domain.LedgerEntry, error) {
	if !req.Kind.Valid() {
		return nil, fmt.Errorf("%w: %q", apperrors.ErrInvalidEntryKind, req.Kind)
	}
	if !domain.ValidAmount(req.Amount) {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrInvalidAmount, req.Amount)
	}
	if req.EntryDate.IsZero() {
		return nil, fmt.Errorf("%w: entry date is required", apperrors.ErrValidation)
	}
	if req.PaymentMethod != "" && !req.PaymentMethod.Valid() {
		return nil, fmt.Errorf("%w: %q", apperrors.ErrInvalidPaymentMethod, req.PaymentMethod)
	}

	entry := domain.LedgerEntry{
		EntryID:       uuid.NewString(),
		OwnerID:       ownerID,
		BankAccountID: accountID,
		Kind:          req.Kind,
		Amount:        req.Amount,
		EntryDate:     domain.DateOf(req.EntryDate.Time),
		Memo:          strings.TrimSpace(req.Memo),
		PaymentMethod: req.PaymentMethod,
		CardID:        req.CardID,
		AuditFields:   domain.NewAuditFields(ownerID, s.Now()),
	}

	var posted *domain.LedgerEntry
	err := s.Store.WithinTx(ctx, func(ctx context.Context, repos portsrepo.Repositories) error {
		var err error
		posted, err = s.PostInTx(ctx, repos, entry)
		return err
	})
	if err != nil {
		s.logFailure(ctx, err, "Failed to post ledger entry",
			slog.String("account_id", accountID), slog.String("kind", string(req.Kind)))
		return nil, err
	}

	s.LogInfo(ctx, "Ledger entry posted",
		slog.String("entry_id", posted.EntryID),
		slog.String("account_id", accountID),
		slog.String("kind", string(posted.Kind)),
		slog.String("amount", posted.Amount.String()))
	return posted, nil
}

// PostInTx appends entry to its account inside the caller's unit of work and
// refreshes the cached balance. The account row stays locked until commit.
func (s *ledgerService) PostInTx(ctx context.Context, repos portsrepo.Repositories, entry domain.LedgerEntry) (*domain.LedgerEntry, error) {
	account, err := repos.BankAccounts().FindBankAccountForUpdate(ctx, entry.OwnerID, entry.BankAccountID)
	if err != nil {
		return nil, notFoundAs(err, apperrors.ErrAccountNotFound, entry.BankAccountID)
	}
	if !account.IsActive {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrAccountInactive, account.AccountID)
	}

	if entry.Kind == domain.OpeningBalance {
		_, err := repos.Ledger().FindActiveOpeningBalance(ctx, entry.OwnerID, entry.BankAccountID)
		if err == nil {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrOpeningBalanceExists, account.AccountID)
		}
		if !errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("failed to look up opening balance: %w", err)
		}
	}

	if entry.CardID != nil {
		card, err := repos.Cards().FindCardByID(ctx, entry.OwnerID, *entry.CardID)
		if err != nil {
			return nil, notFoundAs(err, apperrors.ErrCardNotFound, *entry.CardID)
		}
		if !card.IsActive {
			return nil, fmt.Errorf("%w: %s is inactive", apperrors.ErrCardNotFound, *entry.CardID)
		}
	}

	if err := repos.Ledger().SaveEntry(ctx, entry); err != nil {
		return nil, fmt.Errorf("failed to save ledger entry: %w", err)
	}
	if err := repos.BankAccounts().RefreshCachedBalance(ctx, entry.OwnerID, entry.BankAccountID, entry.CreatedAt); err != nil {
		return nil, fmt.Errorf("failed to refresh account balance: %w", err)
	}
	return &entry, nil
}

func (s *ledgerService) Reverse(ctx context.Context, ownerID, entryID string) (*domain.LedgerEntry, error) {
	now := s.Now()
	today := s.Today()

	var record domain.LedgerEntry
	err := s.Store.WithinTx(ctx, func(ctx context.Context, repos portsrepo.Repositories) error {
		original, err := repos.Ledger().FindEntryForUpdate(ctx, ownerID, entryID)
		if err != nil {
			return notFoundAs(err, apperrors.ErrEntryNotFound, entryID)
		}
		if original.Reversed {
			return fmt.Errorf("%w: %s", apperrors.ErrAlreadyReversed, entryID)
		}
		switch {
		case original.IsReversalRecord():
			return fmt.Errorf("%w: %s is a reversal record", apperrors.ErrNotReversible, entryID)
		case original.Kind == domain.OpeningBalance:
			return fmt.Errorf("%w: opening balances are replaced, not reversed", apperrors.ErrNotReversible)
		case original.IsBillPayment():
			return fmt.Errorf("%w: %s settles bill %s", apperrors.ErrNotReversible, entryID, *original.BillID)
		}

		record, err = s.reverseInTx(ctx, repos, *original, now, today)
		return err
	})
	if err != nil {
		s.logFailure(ctx, err, "Failed to reverse ledger entry", slog.String("entry_id", entryID))
		return nil, err
	}

	s.LogInfo(ctx, "Ledger entry reversed",
		slog.String("entry_id", entryID), slog.String("reversal_id", record.EntryID))
	return &record, nil
}

// reverseInTx flags original and appends its reversal record. The record mirrors the
// original with the opposite direction and never counts toward balances.
func (s *ledgerService) reverseInTx(ctx context.Context, repos portsrepo.Repositories, original domain.LedgerEntry, now, today time.Time) (domain.LedgerEntry, error) {
	if _, err := repos.BankAccounts().FindBankAccountForUpdate(ctx, original.OwnerID, original.BankAccountID); err != nil {
		return domain.LedgerEntry{}, notFoundAs(err, apperrors.ErrAccountNotFound, original.BankAccountID)
	}
	if err := repos.Ledger().MarkEntryReversed(ctx, original.OwnerID, original.EntryID, original.OwnerID, now); err != nil {
		return domain.LedgerEntry{}, fmt.Errorf("failed to mark entry reversed: %w", err)
	}

	kind := domain.Inflow
	if original.Kind != domain.Outflow {
		kind = domain.Outflow
	}
	reversalOf := original.EntryID
	record := domain.LedgerEntry{
		EntryID:       uuid.NewString(),
		OwnerID:       original.OwnerID,
		BankAccountID: original.BankAccountID,
		Kind:          kind,
		Amount:        original.Amount,
		EntryDate:     today,
		Memo:          strings.TrimSpace("Reversal: " + original.Memo),
		ReversalOf:    &reversalOf,
		AuditFields:   domain.NewAuditFields(original.OwnerID, now),
	}
	if err := repos.Ledger().SaveEntry(ctx, record); err != nil {
		return domain.LedgerEntry{}, fmt.Errorf("failed to save reversal record: %w", err)
	}
	if err := repos.BankAccounts().RefreshCachedBalance(ctx, original.OwnerID, original.BankAccountID, now); err != nil {
		return domain.LedgerEntry{}, fmt.Errorf("failed to refresh account balance: %w", err)
	}
	return record, nil
}

func (s *ledgerService) ResetOpeningBalance(ctx context.Context, ownerID, accountID string, req dto.OpeningBalanceRequest) (*domain.LedgerEntry, error) {
	if !domain.ValidAmount(req.Amount) {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrInvalidAmount, req.Amount)
	}
	if req.EntryDate.IsZero() {
		return nil, fmt.Errorf("%w: entry date is required", apperrors.ErrValidation)
	}
	now := s.Now()
	today := s.Today()

	var posted *domain.LedgerEntry
	err := s.Store.WithinTx(ctx, func(ctx context.Context, repos portsrepo.Repositories) error {
		account, err := repos.BankAccounts().FindBankAccountForUpdate(ctx, ownerID, accountID)
		if err != nil {
			return notFoundAs(err, apperrors.ErrAccountNotFound, accountID)
		}
		if !account.IsActive {
			return fmt.Errorf("%w: %s", apperrors.ErrAccountInactive, accountID)
		}

		current, err := repos.Ledger().FindActiveOpeningBalance(ctx, ownerID, accountID)
		switch {
		case err == nil:
			if _, err := s.reverseInTx(ctx, repos, *current, now, today); err != nil {
				return err
			}
		case !errors.Is(err, apperrors.ErrNotFound):
			return fmt.Errorf("failed to look up opening balance: %w", err)
		}

		posted, err = s.PostInTx(ctx, repos, domain.LedgerEntry{
			EntryID:       uuid.NewString(),
			OwnerID:       ownerID,
			BankAccountID: accountID,
			Kind:          domain.OpeningBalance,
			Amount:        req.Amount,
			EntryDate:     domain.DateOf(req.EntryDate.Time),
			Memo:          "Opening balance",
			AuditFields:   domain.NewAuditFields(ownerID, now),
		})
		return err
	})
	if err != nil {
		s.logFailure(ctx, err, "Failed to reset opening balance", slog.String("account_id", accountID))
		return nil, err
	}

	s.LogInfo(ctx, "Opening balance reset",
		slog.String("account_id", accountID), slog.String("amount", req.Amount.String()))
	return posted, nil
}

func (s *ledgerService) Balance(ctx context.Context, ownerID, accountID string, asOf *time.Time) (decimal.Decimal, error) {
	var balance decimal.Decimal
	err := s.Store.WithinSnapshot(ctx, func(ctx context.Context, repos portsrepo.Repositories) error {
		if _, err := repos.BankAccounts().FindBankAccountByID(ctx, ownerID, accountID); err != nil {
			return notFoundAs(err, apperrors.ErrAccountNotFound, accountID)
		}
		var err error
		balance, err = repos.Ledger().SumBalance(ctx, ownerID, accountID, asOf)
		return err
	})
	if err != nil {
		s.logFailure(ctx, err, "Failed to compute balance", slog.String("account_id", accountID))
		return decimal.Zero, err
	}
	return balance, nil
}

func (s *ledgerService) ListEntries(ctx context.Context, ownerID, accountID string, params dto.ListEntriesParams) ([]domain.LedgerEntry, *string, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = defaultEntriesPageSize
	}

	var (
		entries []domain.LedgerEntry
		next    *string
	)
	err := s.Store.WithinSnapshot(ctx, func(ctx context.Context, repos portsrepo.Repositories) error {
		if _, err := repos.BankAccounts().FindBankAccountByID(ctx, ownerID, accountID); err != nil {
			return notFoundAs(err, apperrors.ErrAccountNotFound, accountID)
		}
		var err error
		entries, next, err = repos.Ledger().ListEntriesByAccount(ctx, ownerID, accountID, limit, params.NextToken)
		return err
	})
	if err != nil {
		s.logFailure(ctx, err, "Failed to list ledger entries", slog.String("account_id", accountID))
		return nil, nil, err
	}
	return entries, next, nil
}
