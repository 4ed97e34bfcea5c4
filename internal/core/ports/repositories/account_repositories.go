package repositories

import (
	"context"

	"github.com/SscSPs/wallet_ledger_service/internal/core/domain"
)

// AccountReader defines read operations for account data
type AccountReader interface {
	// FindAccountByID retrieves a specific account by its identifier.
	FindAccountByID(ctx context.Context, accountID int64) (*domain.Account, error)

	// FindAccountByOwnerAndCurrency retrieves the single account an owner holds in a currency.
	FindAccountByOwnerAndCurrency(ctx context.Context, ownerID int64, currency string) (*domain.Account, error)
}

// AccountWriter defines write operations for account data
type AccountWriter interface {
	// SaveAccount persists a new account and returns it with its assigned ID.
	// A second account for the same (owner, currency) fails with apperrors.ErrDuplicate.
	SaveAccount(ctx context.Context, account domain.Account) (*domain.Account, error)
}

// AccountRepositoryFacade combines all account-related repository interfaces
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
}

// AccountTxStore is the account side of a unit of work.
type AccountTxStore interface {
	// LockAccountForUpdate takes the transaction-scoped exclusive lock on an account
	// and returns its current state. It blocks while another transaction holds the lock.
	LockAccountForUpdate(ctx context.Context, accountID int64) (*domain.Account, error)

	// UpdateAccountBalance stores a new balance for a locked account and bumps its version.
	UpdateAccountBalance(ctx context.Context, accountID int64, balanceMinor int64) error
}
