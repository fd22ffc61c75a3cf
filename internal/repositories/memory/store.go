// Package memory is a storage backend that keeps every entity in process memory.
// Writers are serialized by one lock and work on a private copy of the state that
// replaces the committed state only when the unit of work succeeds, so readers
// always observe a consistent snapshot and failed units leave nothing behind.
//
// Every write copies the whole state, so a write costs O(total data) and writers
// never overlap. The backend is sized for tests and single-user local runs; use
// the PostgreSQL backend for anything larger.
package memory

import (
	"context"
	"errors"
	"sync"

	"github.com/SscSPs/contas_app/internal/core/domain"
	portsrepo "github.com/SscSPs/contas_app/internal/core/ports/repositories"
)

var errReadOnly = errors.New("memory store: write attempted in a read-only snapshot")

type state struct {
	accounts map[string]domain.BankAccount
	entries  map[string]domain.LedgerEntry
	vendors  map[string]domain.Vendor
	cards    map[string]domain.CreditCard
	bills    map[string]domain.Bill
}

func newState() *state {
	return &state{
		accounts: make(map[string]domain.BankAccount),
		entries:  make(map[string]domain.LedgerEntry),
		vendors:  make(map[string]domain.Vendor),
		cards:    make(map[string]domain.CreditCard),
		bills:    make(map[string]domain.Bill),
	}
}

func (s *state) clone() *state {
	c := &state{
		accounts: make(map[string]domain.BankAccount, len(s.accounts)),
		entries:  make(map[string]domain.LedgerEntry, len(s.entries)),
		vendors:  make(map[string]domain.Vendor, len(s.vendors)),
		cards:    make(map[string]domain.CreditCard, len(s.cards)),
		bills:    make(map[string]domain.Bill, len(s.bills)),
	}
	for k, v := range s.accounts {
		c.accounts[k] = v
	}
	for k, v := range s.entries {
		c.entries[k] = v
	}
	for k, v := range s.vendors {
		c.vendors[k] = v
	}
	for k, v := range s.cards {
		c.cards[k] = v
	}
	for k, v := range s.bills {
		c.bills[k] = copyBill(v)
	}
	return c
}

func copyBill(b domain.Bill) domain.Bill {
	if b.Payment != nil {
		p := *b.Payment
		b.Payment = &p
	}
	if b.CancelledAt != nil {
		t := *b.CancelledAt
		b.CancelledAt = &t
	}
	return b
}

// Store is the in-memory backend.
type Store struct {
	writeMu sync.Mutex
	mu      sync.RWMutex
	current *state
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{current: newState()}
}

var _ portsrepo.Store = (*Store)(nil)

// WithinTx runs fn on a private copy of the whole state and publishes the copy on
// success. The copy is proportional to everything stored.
func (s *Store) WithinTx(ctx context.Context, fn portsrepo.UnitOfWork) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.mu.RLock()
	work := s.current.clone()
	s.mu.RUnlock()

	if err := fn(ctx, &repositories{st: work, writable: true}); err != nil {
		return err
	}

	s.mu.Lock()
	s.current = work
	s.mu.Unlock()
	return nil
}

// WithinSnapshot runs fn against the last committed state. Committed states are
// never modified in place, so no copy is needed.
func (s *Store) WithinSnapshot(ctx context.Context, fn portsrepo.UnitOfWork) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.RLock()
	snap := s.current
	s.mu.RUnlock()
	return fn(ctx, &repositories{st: snap})
}

// Close releases nothing; it exists to satisfy the Store port.
func (s *Store) Close() {}
