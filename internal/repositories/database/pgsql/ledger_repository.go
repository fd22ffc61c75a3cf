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
	"github.com/SscSPs/contas_app/internal/utils/pagination"
	"github.com/shopspring/decimal"
)

const ledgerEntryColumns = `entry_id, owner_id, bank_account_id, kind, amount, entry_date, memo,
	reversed, reversal_of, bill_id, payment_method, card_id,
	created_at, created_by, last_updated_at, last_updated_by`

// countedEntry selects entries that contribute to balances and reports.
const countedEntry = `NOT reversed AND reversal_of IS NULL`

// sumBalanceQuery computes the balance of account $2 of owner $1 from entries
// dated on or before $3 (NULL for no bound).
const sumBalanceQuery = `
	SELECT COALESCE(SUM(CASE WHEN kind = 'OUTFLOW' THEN -amount ELSE amount END), 0)
	FROM ledger_entries
	WHERE owner_id = $1 AND bank_account_id = $2 AND ` + countedEntry + `
	  AND ($3::date IS NULL OR entry_date <= $3::date)`

type PgxLedgerRepository struct {
	db querier
}

var _ portsrepo.LedgerRepositoryFacade = (*PgxLedgerRepository)(nil)

// SaveEntry appends a ledger entry. A second counted opening balance on the
// same account violates a partial unique index and surfaces as ErrDuplicate.
func (r *PgxLedgerRepository) SaveEntry(ctx context.Context, entry domain.LedgerEntry) error {
	m := mapping.ToModelLedgerEntry(entry)
	query := `
		INSERT INTO ledger_entries (` + ledgerEntryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16);
	`
	_, err := r.db.Exec(ctx, query,
		m.EntryID, m.OwnerID, m.BankAccountID, m.Kind, m.Amount, m.EntryDate, m.Memo,
		m.Reversed, m.ReversalOf, m.BillID, m.PaymentMethod, m.CardID,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: ledger entry %s", apperrors.ErrDuplicate, m.EntryID)
		}
		return fmt.Errorf("failed to save ledger entry %s: %w", m.EntryID, err)
	}
	return nil
}

// MarkEntryReversed sets the reversed flag of an entry.
func (r *PgxLedgerRepository) MarkEntryReversed(ctx context.Context, ownerID, entryID, userID string, now time.Time) error {
	query := `
		UPDATE ledger_entries
		SET reversed = TRUE, last_updated_at = $3, last_updated_by = $4
		WHERE owner_id = $1 AND entry_id = $2;
	`
	tag, err := r.db.Exec(ctx, query, ownerID, entryID, now, userID)
	return expectOneRow(tag, err, "ledger entry "+entryID)
}

func (r *PgxLedgerRepository) FindEntryByID(ctx context.Context, ownerID, entryID string) (*domain.LedgerEntry, error) {
	return r.findOne(ctx, "ledger entry "+entryID,
		`SELECT `+ledgerEntryColumns+` FROM ledger_entries WHERE owner_id = $1 AND entry_id = $2`,
		ownerID, entryID)
}

func (r *PgxLedgerRepository) FindEntryForUpdate(ctx context.Context, ownerID, entryID string) (*domain.LedgerEntry, error) {
	return r.findOne(ctx, "ledger entry "+entryID,
		`SELECT `+ledgerEntryColumns+` FROM ledger_entries WHERE owner_id = $1 AND entry_id = $2 FOR UPDATE`,
		ownerID, entryID)
}

// FindActiveOpeningBalance returns the counted opening balance of an account.
func (r *PgxLedgerRepository) FindActiveOpeningBalance(ctx context.Context, ownerID, accountID string) (*domain.LedgerEntry, error) {
	return r.findOne(ctx, "opening balance of "+accountID,
		`SELECT `+ledgerEntryColumns+` FROM ledger_entries
		 WHERE owner_id = $1 AND bank_account_id = $2 AND kind = 'OPENING_BALANCE' AND `+countedEntry,
		ownerID, accountID)
}

func (r *PgxLedgerRepository) findOne(ctx context.Context, what, query string, args ...any) (*domain.LedgerEntry, error) {
	rows, err := r.db.Query(ctx, query, args...)
	m, err := collectOne[models.LedgerEntry](rows, err, what)
	if err != nil {
		return nil, err
	}
	entry := mapping.ToDomainLedgerEntry(*m)
	return &entry, nil
}

// ListEntriesByAccount retrieves a page of an account's entries, newest first.
// The cursor is the (entry_date, created_at, entry_id) key of the last entry of the previous page.
func (r *PgxLedgerRepository) ListEntriesByAccount(ctx context.Context, ownerID, accountID string, limit int, nextToken *string) ([]domain.LedgerEntry, *string, error) {
	query := `SELECT ` + ledgerEntryColumns + ` FROM ledger_entries WHERE owner_id = $1 AND bank_account_id = $2`
	args := []any{ownerID, accountID}

	if nextToken != nil && *nextToken != "" {
		c, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
		}
		query += ` AND (entry_date, created_at, entry_id) < ($3::date, $4::timestamptz, $5::text)`
		args = append(args, c.Date, c.CreatedAt, c.ID)
	}

	query += ` ORDER BY entry_date DESC, created_at DESC, entry_id DESC`
	if limit > 0 {
		// One extra row tells whether another page exists
		query += fmt.Sprintf(` LIMIT %d`, limit+1)
	}

	rows, err := r.db.Query(ctx, query, args...)
	list, err := collectAll[models.LedgerEntry](rows, err, "ledger entries")
	if err != nil {
		return nil, nil, err
	}

	var next *string
	if limit > 0 && len(list) > limit {
		list = list[:limit]
		last := list[len(list)-1]
		token := pagination.EncodeToken(pagination.Cursor{Date: last.EntryDate, CreatedAt: last.CreatedAt, ID: last.EntryID})
		next = &token
	}
	return toDomainEntries(list), next, nil
}

// ListEntriesByOwner retrieves every entry of the owner in chronological order,
// optionally limited to some accounts.
func (r *PgxLedgerRepository) ListEntriesByOwner(ctx context.Context, ownerID string, accountIDs []string) ([]domain.LedgerEntry, error) {
	query := `SELECT ` + ledgerEntryColumns + ` FROM ledger_entries WHERE owner_id = $1`
	args := []any{ownerID}
	if len(accountIDs) > 0 {
		query += ` AND bank_account_id = ANY($2)`
		args = append(args, accountIDs)
	}
	query += ` ORDER BY entry_date, created_at, entry_id`

	rows, err := r.db.Query(ctx, query, args...)
	list, err := collectAll[models.LedgerEntry](rows, err, "ledger entries")
	if err != nil {
		return nil, err
	}
	return toDomainEntries(list), nil
}

// SumBalance computes the balance of an account in SQL.
func (r *PgxLedgerRepository) SumBalance(ctx context.Context, ownerID, accountID string, asOf *time.Time) (decimal.Decimal, error) {
	var bound *time.Time
	if asOf != nil {
		d := domain.DateOf(*asOf)
		bound = &d
	}

	var balance decimal.Decimal
	if err := r.db.QueryRow(ctx, sumBalanceQuery, ownerID, accountID, bound).Scan(&balance); err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum balance of %s: %w", accountID, err)
	}
	return balance, nil
}

func toDomainEntries(list []models.LedgerEntry) []domain.LedgerEntry {
	entries := make([]domain.LedgerEntry, len(list))
	for i, m := range list {
		entries[i] = mapping.ToDomainLedgerEntry(m)
	}
	return entries
}
