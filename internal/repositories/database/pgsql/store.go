package pgsql

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/SscSPs/contas_app/internal/apperrors"
	portsrepo "github.com/SscSPs/contas_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const retryBaseDelay = 10 * time.Millisecond

// Store is the Postgres storage backend. Mutations run in SERIALIZABLE
// transactions and are re-run from scratch on serialization failures.
type Store struct {
	BaseRepository
	maxRetries int
	logger     *slog.Logger
}

var _ portsrepo.Store = (*Store)(nil)

// NewStore creates a store over pool. maxRetries bounds the attempts of one unit of work.
func NewStore(pool *pgxpool.Pool, maxRetries int, logger *slog.Logger) *Store {
	if maxRetries < 1 {
		maxRetries = 1
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		BaseRepository: BaseRepository{Pool: pool},
		maxRetries:     maxRetries,
		logger:         logger,
	}
}

// WithinTx runs fn in a serializable read-write transaction, retrying on
// serialization failures and deadlocks. Once retries are exhausted the error
// wraps apperrors.ErrTransactionConflict.
func (s *Store) WithinTx(ctx context.Context, fn portsrepo.UnitOfWork) error {
	opts := pgx.TxOptions{IsoLevel: pgx.Serializable, AccessMode: pgx.ReadWrite}

	var lastErr error
	for attempt := 1; attempt <= s.maxRetries; attempt++ {
		err := s.run(ctx, opts, fn)
		if err == nil {
			return nil
		}
		if !isRetryable(err) {
			return err
		}
		lastErr = err
		s.logger.DebugContext(ctx, "Retrying conflicting transaction",
			slog.Int("attempt", attempt), slog.String("error", err.Error()))

		if attempt < s.maxRetries {
			if err := backoff(ctx, attempt); err != nil {
				return err
			}
		}
	}
	return fmt.Errorf("%w: gave up after %d attempts: %v", apperrors.ErrTransactionConflict, s.maxRetries, lastErr)
}

// WithinSnapshot runs fn in a REPEATABLE READ READ ONLY transaction so that
// every query sees the same snapshot.
func (s *Store) WithinSnapshot(ctx context.Context, fn portsrepo.UnitOfWork) error {
	return s.run(ctx, pgx.TxOptions{IsoLevel: pgx.RepeatableRead, AccessMode: pgx.ReadOnly}, fn)
}

func (s *Store) run(ctx context.Context, opts pgx.TxOptions, fn portsrepo.UnitOfWork) error {
	tx, err := s.Begin(ctx, opts)
	if err != nil {
		return err
	}
	defer func() {
		if rbErr := s.Rollback(ctx, tx); rbErr != nil {
			s.logger.WarnContext(ctx, "Failed to roll back transaction", slog.String("error", rbErr.Error()))
		}
	}()

	if err := fn(ctx, newRepositories(tx)); err != nil {
		return err
	}
	return s.Commit(ctx, tx)
}

// Ping checks the database connection.
func (s *Store) Ping(ctx context.Context) error {
	return s.Pool.Ping(ctx)
}

// Close releases the connection pool.
func (s *Store) Close() {
	s.Pool.Close()
}

// backoff sleeps for a jittered, exponentially growing delay.
func backoff(ctx context.Context, attempt int) error {
	delay := retryBaseDelay << (attempt - 1)
	delay += time.Duration(rand.Int64N(int64(delay)))

	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// repositories binds every repository to one transaction.
type repositories struct {
	bankAccounts *PgxBankAccountRepository
	ledger       *PgxLedgerRepository
	vendors      *PgxVendorRepository
	cards        *PgxCardRepository
	bills        *PgxBillRepository
}

func newRepositories(q querier) *repositories {
	return &repositories{
		bankAccounts: &PgxBankAccountRepository{db: q},
		ledger:       &PgxLedgerRepository{db: q},
		vendors:      &PgxVendorRepository{db: q},
		cards:        &PgxCardRepository{db: q},
		bills:        &PgxBillRepository{db: q},
	}
}

func (r *repositories) BankAccounts() portsrepo.BankAccountRepositoryFacade { return r.bankAccounts }
func (r *repositories) Ledger() portsrepo.LedgerRepositoryFacade            { return r.ledger }
func (r *repositories) Vendors() portsrepo.VendorRepositoryFacade           { return r.vendors }
func (r *repositories) Cards() portsrepo.CardRepositoryFacade               { return r.cards }
func (r *repositories) Bills() portsrepo.BillRepositoryFacade               { return r.bills }
