package repositories

import "context"

// Repositories exposes every repository bound to one unit of work.
// Implementations are only valid inside the callback that received them.
type Repositories interface {
	BankAccounts() BankAccountRepositoryFacade
	Ledger() LedgerRepositoryFacade
	Vendors() VendorRepositoryFacade
	Cards() CardRepositoryFacade
	Bills() BillRepositoryFacade
}

// UnitOfWork is a function executed against a transactional view of the store.
type UnitOfWork func(ctx context.Context, repos Repositories) error

// TransactionManager defines methods for transaction management
type TransactionManager interface {
	// WithinTx runs fn in a serializable read-write transaction. The whole function
	// may be executed more than once when the backend detects a conflict, so fn must
	// not have side effects outside the repositories it is given.
	WithinTx(ctx context.Context, fn UnitOfWork) error

	// WithinSnapshot runs fn against a consistent read-only snapshot.
	WithinSnapshot(ctx context.Context, fn UnitOfWork) error
}

// Store is a storage backend.
type Store interface {
	TransactionManager
	Close()
}
