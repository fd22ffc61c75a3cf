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

const bankAccountColumns = `account_id, owner_id, name, bank_label, balance, is_active,
	created_at, created_by, last_updated_at, last_updated_by`

type PgxBankAccountRepository struct {
	db querier
}

// Ensure PgxBankAccountRepository implements portsrepo.BankAccountRepositoryFacade
var _ portsrepo.BankAccountRepositoryFacade = (*PgxBankAccountRepository)(nil)

// SaveBankAccount inserts a new bank account.
func (r *PgxBankAccountRepository) SaveBankAccount(ctx context.Context, account domain.BankAccount) error {
	m := mapping.ToModelBankAccount(account)
	query := `
		INSERT INTO bank_accounts (` + bankAccountColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := r.db.Exec(ctx, query,
		m.AccountID, m.OwnerID, m.Name, m.BankLabel, m.Balance, m.IsActive,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: bank account %s", apperrors.ErrDuplicate, m.AccountID)
		}
		return fmt.Errorf("failed to save bank account %s: %w", m.AccountID, err)
	}
	return nil
}

// FindBankAccountByID retrieves an owner's bank account by its ID.
func (r *PgxBankAccountRepository) FindBankAccountByID(ctx context.Context, ownerID, accountID string) (*domain.BankAccount, error) {
	return r.findOne(ctx, ownerID, accountID, "")
}

// FindBankAccountForUpdate retrieves and row-locks an owner's bank account.
func (r *PgxBankAccountRepository) FindBankAccountForUpdate(ctx context.Context, ownerID, accountID string) (*domain.BankAccount, error) {
	return r.findOne(ctx, ownerID, accountID, "FOR UPDATE")
}

func (r *PgxBankAccountRepository) findOne(ctx context.Context, ownerID, accountID, lock string) (*domain.BankAccount, error) {
	query := `SELECT ` + bankAccountColumns + ` FROM bank_accounts WHERE owner_id = $1 AND account_id = $2 ` + lock
	rows, err := r.db.Query(ctx, query, ownerID, accountID)
	m, err := collectOne[models.BankAccount](rows, err, "bank account "+accountID)
	if err != nil {
		return nil, err
	}
	acc := mapping.ToDomainBankAccount(*m)
	return &acc, nil
}

// ListBankAccounts retrieves an owner's bank accounts ordered by name.
func (r *PgxBankAccountRepository) ListBankAccounts(ctx context.Context, ownerID string, includeInactive bool) ([]domain.BankAccount, error) {
	query := `
		SELECT ` + bankAccountColumns + `
		FROM bank_accounts
		WHERE owner_id = $1 AND (is_active OR $2)
		ORDER BY name, account_id;
	`
	rows, err := r.db.Query(ctx, query, ownerID, includeInactive)
	list, err := collectAll[models.BankAccount](rows, err, "bank accounts")
	if err != nil {
		return nil, err
	}
	accounts := make([]domain.BankAccount, len(list))
	for i, m := range list {
		accounts[i] = mapping.ToDomainBankAccount(m)
	}
	return accounts, nil
}

// SetBankAccountActive activates or deactivates an account.
func (r *PgxBankAccountRepository) SetBankAccountActive(ctx context.Context, ownerID, accountID string, active bool, userID string, now time.Time) error {
	query := `
		UPDATE bank_accounts
		SET is_active = $3, last_updated_at = $4, last_updated_by = $5
		WHERE owner_id = $1 AND account_id = $2;
	`
	tag, err := r.db.Exec(ctx, query, ownerID, accountID, active, now, userID)
	return expectOneRow(tag, err, "bank account "+accountID)
}

// RefreshCachedBalance recomputes the cached balance from the counted ledger entries.
func (r *PgxBankAccountRepository) RefreshCachedBalance(ctx context.Context, ownerID, accountID string, now time.Time) error {
	query := `
		UPDATE bank_accounts
		SET balance = (` + sumBalanceQuery + `), last_updated_at = $4
		WHERE owner_id = $1 AND account_id = $2;
	`
	tag, err := r.db.Exec(ctx, query, ownerID, accountID, nil, now)
	return expectOneRow(tag, err, "bank account "+accountID)
}
