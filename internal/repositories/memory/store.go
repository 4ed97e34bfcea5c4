package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/SscSPs/wallet_ledger_service/internal/apperrors"
	"github.com/SscSPs/wallet_ledger_service/internal/core/domain"
	portsrepo "github.com/SscSPs/wallet_ledger_service/internal/core/ports/repositories"
)

type ownerCurrency struct {
	ownerID  int64
	currency string
}

// Store keeps accounts and the journal in process memory. It mirrors the Postgres
// schema: unique (owner, currency), unique idempotency key, non-negative balances
// unless AllowNegative, and transaction-scoped row locks. Nothing is durable.
type Store struct {
	mu sync.Mutex

	accounts   map[int64]domain.Account
	byOwner    map[ownerCurrency]int64
	entries    map[int64]domain.JournalEntry
	entryByKey map[string]int64
	lines      map[int64][]domain.JournalLine

	// rowLocks holds one single-slot semaphore per account.
	rowLocks map[int64]chan struct{}
	// pendingKeys are idempotency keys inserted by transactions that have not ended yet.
	// The channel is closed when the owning transaction commits or rolls back.
	pendingKeys map[string]chan struct{}

	lastAccountID int64
	lastEntryID   int64
	lastLineID    int64

	now func() time.Time
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		accounts:    make(map[int64]domain.Account),
		byOwner:     make(map[ownerCurrency]int64),
		entries:     make(map[int64]domain.JournalEntry),
		entryByKey:  make(map[string]int64),
		lines:       make(map[int64][]domain.JournalLine),
		rowLocks:    make(map[int64]chan struct{}),
		pendingKeys: make(map[string]chan struct{}),
		now:         func() time.Time { return time.Now().UTC() },
	}
}

var (
	_ portsrepo.AccountRepositoryFacade = (*Store)(nil)
	_ portsrepo.UnitOfWork              = (*Store)(nil)
)

func (s *Store) FindAccountByID(ctx context.Context, accountID int64) (*domain.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	acc, ok := s.accounts[accountID]
	if !ok {
		return nil, fmt.Errorf("%w: account %d", apperrors.ErrNotFound, accountID)
	}
	return &acc, nil
}

func (s *Store) FindAccountByOwnerAndCurrency(ctx context.Context, ownerID int64, currency string) (*domain.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, ok := s.byOwner[ownerCurrency{ownerID, currency}]
	if !ok {
		return nil, fmt.Errorf("%w: account for owner %d in %s", apperrors.ErrNotFound, ownerID, currency)
	}
	acc := s.accounts[id]
	return &acc, nil
}

// SaveAccount stores a new zero-balance account.
func (s *Store) SaveAccount(ctx context.Context, account domain.Account) (*domain.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := ownerCurrency{account.OwnerID, account.Currency}
	if _, exists := s.byOwner[key]; exists {
		return nil, fmt.Errorf("%w: account for owner %d in %s", apperrors.ErrDuplicate, account.OwnerID, account.Currency)
	}

	s.lastAccountID++
	account.ID = s.lastAccountID
	account.BalanceMinor = 0
	account.Version = 0
	account.CreatedAt = s.now()

	s.accounts[account.ID] = account
	s.byOwner[key] = account.ID
	return &account, nil
}

// WithinTx runs fn in a transaction. Writes become visible to other callers only
// after fn returns nil and ctx is still live.
func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context, tx portsrepo.TxStore) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	tx := newStoreTx(s)
	committed := false
	defer func() {
		if !committed {
			tx.rollback()
		}
	}()

	if err := fn(ctx, tx); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	tx.commit()
	committed = true
	return nil
}

// rowLock returns the semaphore of an account. Callers must hold s.mu.
func (s *Store) rowLock(accountID int64) chan struct{} {
	lock, ok := s.rowLocks[accountID]
	if !ok {
		lock = make(chan struct{}, 1)
		s.rowLocks[accountID] = lock
	}
	return lock
}
