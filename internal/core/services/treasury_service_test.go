package services_test

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/SscSPs/wallet_ledger_service/internal/apperrors"
	"github.com/SscSPs/wallet_ledger_service/internal/core/domain"
	portsrepo "github.com/SscSPs/wallet_ledger_service/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/wallet_ledger_service/internal/core/ports/services"
	"github.com/SscSPs/wallet_ledger_service/internal/core/services"
	"github.com/SscSPs/wallet_ledger_service/internal/platform/config"
	"github.com/SscSPs/wallet_ledger_service/internal/repositories/memory"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"golang.org/x/sync/errgroup"
)

type TreasuryServiceTestSuite struct {
	suite.Suite
	ctx      context.Context
	store    *memory.Store
	metrics  *MockLedgerMetrics
	cfg      config.TreasuryConfig
	treasury portssvc.TreasurySvcFacade
}

func (suite *TreasuryServiceTestSuite) SetupTest() {
	suite.ctx = context.Background()
	suite.store = memory.NewStore()
	suite.metrics = new(MockLedgerMetrics)
	suite.metrics.On("ObserveTransfer", mock.Anything, mock.Anything).Maybe()
	suite.cfg = config.TreasuryConfig{TreasuryOwnerID: 0, IssuerOwnerID: -1, Currency: "USD"}

	repos := portsrepo.RepositoryProvider{AccountRepo: suite.store, UnitOfWork: suite.store}
	journal := services.NewJournalEngine()
	transfers := services.NewTransferService(suite.store, journal, services.WithTransferMetrics(suite.metrics))
	suite.treasury = services.NewTreasuryService(suite.cfg, repos, journal, transfers, services.WithTreasuryMetrics(suite.metrics))
}

func (suite *TreasuryServiceTestSuite) account(ownerID int64) *domain.Account {
	acc, err := suite.store.FindAccountByOwnerAndCurrency(suite.ctx, ownerID, "USD")
	suite.Require().NoError(err)
	return acc
}

func (suite *TreasuryServiceTestSuite) TestEnsureFunds_CreatesSystemAccountsAndMintsDeficit() {
	suite.metrics.On("ObserveMint", "USD", int64(500)).Once()

	treasuryID, err := suite.treasury.EnsureFunds(suite.ctx, 500)

	suite.Require().NoError(err)
	treasury := suite.account(0)
	issuer := suite.account(-1)
	suite.Equal(treasury.ID, treasuryID)
	suite.False(treasury.AllowNegative)
	suite.True(issuer.AllowNegative)
	suite.Equal(int64(500), treasury.BalanceMinor)
	suite.Equal(int64(-500), issuer.BalanceMinor)
	suite.metrics.AssertExpectations(suite.T())
}

func (suite *TreasuryServiceTestSuite) TestEnsureFunds_OnlyTopsUpTheDifference() {
	suite.metrics.On("ObserveMint", "USD", int64(300)).Once()
	suite.metrics.On("ObserveMint", "USD", int64(200)).Once()

	_, err := suite.treasury.EnsureFunds(suite.ctx, 300)
	suite.Require().NoError(err)
	_, err = suite.treasury.EnsureFunds(suite.ctx, 100)
	suite.Require().NoError(err)
	suite.Equal(int64(300), suite.account(0).BalanceMinor)

	_, err = suite.treasury.EnsureFunds(suite.ctx, 500)
	suite.Require().NoError(err)
	suite.Equal(int64(500), suite.account(0).BalanceMinor)
	suite.Equal(int64(-500), suite.account(-1).BalanceMinor)
	suite.metrics.AssertExpectations(suite.T())
}

func (suite *TreasuryServiceTestSuite) TestEnsureFunds_PostsMintEntry() {
	suite.metrics.On("ObserveMint", "USD", int64(42)).Once()
	treasuryID, err := suite.treasury.EnsureFunds(suite.ctx, 42)
	suite.Require().NoError(err)

	var lines []domain.JournalLine
	err = suite.store.WithinTx(suite.ctx, func(ctx context.Context, tx portsrepo.TxStore) error {
		// the mint is the only entry in a fresh store
		var err error
		lines, err = tx.FindLinesByEntryID(ctx, 1)
		return err
	})
	suite.Require().NoError(err)
	suite.Require().Len(lines, 2)

	result, err := services.BuildTransferResult(domain.JournalEntry{ID: 1}, lines)
	suite.Require().NoError(err)
	suite.Equal(suite.account(-1).ID, result.FromAccountID)
	suite.Equal(treasuryID, result.ToAccountID)
	suite.Equal(int64(42), result.AmountMinor)
}

func (suite *TreasuryServiceTestSuite) TestEnsureFunds_RejectsNonPositive() {
	_, err := suite.treasury.EnsureFunds(suite.ctx, 0)
	suite.ErrorIs(err, apperrors.ErrValidation)

	_, err = suite.store.FindAccountByOwnerAndCurrency(suite.ctx, 0, "USD")
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *TreasuryServiceTestSuite) TestEnsureFunds_ConcurrentCallersShareSystemAccounts() {
	var mu sync.Mutex
	var minted int64
	suite.metrics.On("ObserveMint", "USD", mock.AnythingOfType("int64")).Run(func(args mock.Arguments) {
		mu.Lock()
		minted += args.Get(1).(int64)
		mu.Unlock()
	})

	var g errgroup.Group
	for i := 0; i < 10; i++ {
		g.Go(func() error {
			_, err := suite.treasury.EnsureFunds(suite.ctx, 1_000)
			return err
		})
	}
	suite.Require().NoError(g.Wait())

	suite.Equal(int64(1_000), suite.account(0).BalanceMinor)
	suite.Equal(int64(-1_000), suite.account(-1).BalanceMinor)
	suite.Equal(int64(1_000), minted)
}

func (suite *TreasuryServiceTestSuite) TestMint_TransfersFromTreasury() {
	suite.metrics.On("ObserveMint", "USD", int64(700)).Once()
	target, err := suite.store.SaveAccount(suite.ctx, domain.Account{OwnerID: 42, Currency: "USD"})
	suite.Require().NoError(err)

	result, err := suite.treasury.Mint(suite.ctx, domain.MintCommand{IdempotencyKey: "mint-1", ToAccountID: target.ID, AmountMinor: 700})

	suite.Require().NoError(err)
	suite.Equal(target.ID, result.ToAccountID)
	suite.Equal(suite.account(0).ID, result.FromAccountID)
	suite.Equal("DEV mint USD", result.Description)
	suite.Require().NotNil(result.ExternalRef)
	suite.Equal("dev-mint", *result.ExternalRef)

	suite.Equal(int64(700), suite.account(42).BalanceMinor)
	suite.Equal(int64(0), suite.account(0).BalanceMinor)
	suite.Equal(int64(-700), suite.account(-1).BalanceMinor)
}

func (suite *TreasuryServiceTestSuite) TestMint_ReplayDoesNotCreditTwice() {
	suite.metrics.On("ObserveMint", "USD", int64(100)).Twice()
	target, err := suite.store.SaveAccount(suite.ctx, domain.Account{OwnerID: 42, Currency: "USD"})
	suite.Require().NoError(err)
	cmd := domain.MintCommand{IdempotencyKey: "mint-1", ToAccountID: target.ID, AmountMinor: 100, Currency: "usd"}

	first, err := suite.treasury.Mint(suite.ctx, cmd)
	suite.Require().NoError(err)
	second, err := suite.treasury.Mint(suite.ctx, cmd)
	suite.Require().NoError(err)

	suite.Equal(first, second)
	suite.Equal(int64(100), suite.account(42).BalanceMinor)
	// the replay topped the treasury up again before finding the key
	suite.Equal(int64(100), suite.account(0).BalanceMinor)
}

func (suite *TreasuryServiceTestSuite) TestMint_RejectsOtherCurrency() {
	_, err := suite.treasury.Mint(suite.ctx, domain.MintCommand{IdempotencyKey: "m", ToAccountID: 1, AmountMinor: 1, Currency: "EUR"})

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.True(strings.Contains(apperrors.Message(err), "USD"))
}

func (suite *TreasuryServiceTestSuite) TestMint_UnknownTarget() {
	suite.metrics.On("ObserveMint", "USD", int64(5)).Once()

	_, err := suite.treasury.Mint(suite.ctx, domain.MintCommand{IdempotencyKey: "m", ToAccountID: 999, AmountMinor: 5})

	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.Equal(fmt.Sprintf("Account not found: %d", 999), apperrors.Message(err))
}

func TestTreasuryServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TreasuryServiceTestSuite))
}
