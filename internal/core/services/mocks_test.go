package services_test

import (
	"context"

	"github.com/SscSPs/wallet_ledger_service/internal/core/domain"
	portsrepo "github.com/SscSPs/wallet_ledger_service/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/wallet_ledger_service/internal/core/ports/services"
	"github.com/stretchr/testify/mock"
)

// --- Mock AccountRepository ---
type MockAccountRepository struct {
	mock.Mock
}

var _ portsrepo.AccountRepositoryFacade = (*MockAccountRepository)(nil)

func (m *MockAccountRepository) SaveAccount(ctx context.Context, account domain.Account) (*domain.Account, error) {
	args := m.Called(ctx, account)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountByID(ctx context.Context, accountID int64) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountByOwnerAndCurrency(ctx context.Context, ownerID int64, currency string) (*domain.Account, error) {
	args := m.Called(ctx, ownerID, currency)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

// --- Mock UnitOfWork ---
type MockUnitOfWork struct {
	mock.Mock
	tx portsrepo.TxStore
}

var _ portsrepo.UnitOfWork = (*MockUnitOfWork)(nil)

// WithinTx records the call and, unless the expectation returns an error, runs fn on m.tx.
func (m *MockUnitOfWork) WithinTx(ctx context.Context, fn func(ctx context.Context, tx portsrepo.TxStore) error) error {
	args := m.Called(ctx)
	if err := args.Error(0); err != nil {
		return err
	}
	return fn(ctx, m.tx)
}

// --- Mock TxStore ---
type MockTxStore struct {
	mock.Mock
}

var _ portsrepo.TxStore = (*MockTxStore)(nil)

func (m *MockTxStore) LockAccountForUpdate(ctx context.Context, accountID int64) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockTxStore) UpdateAccountBalance(ctx context.Context, accountID int64, balanceMinor int64) error {
	args := m.Called(ctx, accountID, balanceMinor)
	return args.Error(0)
}

func (m *MockTxStore) FindEntryByIdempotencyKey(ctx context.Context, key string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockTxStore) InsertEntry(ctx context.Context, entry domain.JournalEntry) (portsrepo.InsertOutcome, error) {
	args := m.Called(ctx, entry)
	return args.Get(0).(portsrepo.InsertOutcome), args.Error(1)
}

func (m *MockTxStore) InsertLines(ctx context.Context, lines []domain.JournalLine) ([]domain.JournalLine, error) {
	args := m.Called(ctx, lines)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JournalLine), args.Error(1)
}

func (m *MockTxStore) FindLinesByEntryID(ctx context.Context, entryID int64) ([]domain.JournalLine, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JournalLine), args.Error(1)
}

// --- Recording metrics ---
type MockLedgerMetrics struct {
	mock.Mock
}

var _ portssvc.LedgerMetrics = (*MockLedgerMetrics)(nil)

func (m *MockLedgerMetrics) ObserveTransfer(outcome portssvc.TransferOutcome, seconds float64) {
	m.Called(outcome, seconds)
}

func (m *MockLedgerMetrics) ObserveMint(currency string, amountMinor int64) {
	m.Called(currency, amountMinor)
}
