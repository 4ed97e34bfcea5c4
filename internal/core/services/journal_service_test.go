package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/SscSPs/wallet_ledger_service/internal/apperrors"
	"github.com/SscSPs/wallet_ledger_service/internal/core/domain"
	portsrepo "github.com/SscSPs/wallet_ledger_service/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/wallet_ledger_service/internal/core/ports/services"
	"github.com/SscSPs/wallet_ledger_service/internal/core/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type JournalEngineTestSuite struct {
	suite.Suite
	ctx    context.Context
	tx     *MockTxStore
	engine portssvc.JournalEngine
}

func (suite *JournalEngineTestSuite) SetupTest() {
	suite.ctx = context.Background()
	suite.tx = new(MockTxStore)
	suite.engine = services.NewJournalEngine()
}

func (suite *JournalEngineTestSuite) request() domain.PostingRequest {
	return domain.PostingRequest{
		IdempotencyKey: "key-1",
		Description:    "rent",
		Source:         domain.Account{ID: 1, Currency: "USD", BalanceMinor: 1000},
		Destination:    domain.Account{ID: 2, Currency: "USD"},
		AmountMinor:    250,
		Currency:       "USD",
	}
}

func (suite *JournalEngineTestSuite) TestPost_WritesCreditOnSourceAndDebitOnDestination() {
	entry := domain.JournalEntry{ID: 10, IdempotencyKey: "key-1", Description: "rent", CreatedAt: time.Now()}
	suite.tx.On("InsertEntry", suite.ctx, mock.MatchedBy(func(e domain.JournalEntry) bool {
		return e.IdempotencyKey == "key-1" && e.Description == "rent"
	})).Return(portsrepo.InsertOutcome{Entry: entry, Inserted: true}, nil).Once()

	var written []domain.JournalLine
	suite.tx.On("InsertLines", suite.ctx, mock.Anything).
		Run(func(args mock.Arguments) { written = args.Get(1).([]domain.JournalLine) }).
		Return([]domain.JournalLine{{ID: 1}, {ID: 2}}, nil).Once()

	result, err := suite.engine.Post(suite.ctx, suite.tx, suite.request())

	suite.Require().NoError(err)
	suite.False(result.Replayed)
	suite.Equal(entry, result.Entry)
	suite.Require().Len(written, 2)
	suite.Equal(domain.JournalLine{EntryID: 10, AccountID: 1, AmountMinor: 250, Side: domain.Credit, Currency: "USD"}, written[0])
	suite.Equal(domain.JournalLine{EntryID: 10, AccountID: 2, AmountMinor: 250, Side: domain.Debit, Currency: "USD"}, written[1])
	suite.tx.AssertExpectations(suite.T())
}

func (suite *JournalEngineTestSuite) TestPost_ConflictReturnsExistingEntry() {
	existing := &domain.JournalEntry{ID: 4, IdempotencyKey: "key-1"}
	lines := []domain.JournalLine{
		{ID: 7, EntryID: 4, AccountID: 1, AmountMinor: 250, Side: domain.Credit, Currency: "USD"},
		{ID: 8, EntryID: 4, AccountID: 2, AmountMinor: 250, Side: domain.Debit, Currency: "USD"},
	}
	suite.tx.On("InsertEntry", suite.ctx, mock.Anything).Return(portsrepo.InsertOutcome{}, nil).Once()
	suite.tx.On("FindEntryByIdempotencyKey", suite.ctx, "key-1").Return(existing, nil).Once()
	suite.tx.On("FindLinesByEntryID", suite.ctx, int64(4)).Return(lines, nil).Once()

	result, err := suite.engine.Post(suite.ctx, suite.tx, suite.request())

	suite.Require().NoError(err)
	suite.True(result.Replayed)
	suite.Equal(*existing, result.Entry)
	suite.Equal(lines, result.Lines)
	suite.tx.AssertNotCalled(suite.T(), "InsertLines", mock.Anything, mock.Anything)
}

func (suite *JournalEngineTestSuite) TestPost_ConflictWithUnreadableEntryIsInternal() {
	suite.tx.On("InsertEntry", suite.ctx, mock.Anything).Return(portsrepo.InsertOutcome{}, nil).Once()
	suite.tx.On("FindEntryByIdempotencyKey", suite.ctx, "key-1").Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.engine.Post(suite.ctx, suite.tx, suite.request())

	suite.Equal(apperrors.ErrInternal, apperrors.Kind(err))
}

func (suite *JournalEngineTestSuite) TestPost_InsertFailureIsInternal() {
	suite.tx.On("InsertEntry", suite.ctx, mock.Anything).Return(portsrepo.InsertOutcome{}, assert.AnError).Once()

	_, err := suite.engine.Post(suite.ctx, suite.tx, suite.request())

	suite.ErrorIs(err, assert.AnError)
	suite.Equal(apperrors.ErrInternal, apperrors.Kind(err))
}

func (suite *JournalEngineTestSuite) TestPost_TruncatesFreeText() {
	req := suite.request()
	long := make([]rune, domain.MaxDescriptionLength+20)
	for i := range long {
		long[i] = 'é'
	}
	req.Description = string(long)

	suite.tx.On("InsertEntry", suite.ctx, mock.MatchedBy(func(e domain.JournalEntry) bool {
		return len([]rune(e.Description)) == domain.MaxDescriptionLength
	})).Return(portsrepo.InsertOutcome{Entry: domain.JournalEntry{ID: 1}, Inserted: true}, nil).Once()
	suite.tx.On("InsertLines", suite.ctx, mock.Anything).Return([]domain.JournalLine{}, nil).Once()

	_, err := suite.engine.Post(suite.ctx, suite.tx, req)

	suite.Require().NoError(err)
	suite.tx.AssertExpectations(suite.T())
}

func (suite *JournalEngineTestSuite) TestPost_RejectsInvalidPostings() {
	tests := []struct {
		name   string
		mutate func(*domain.PostingRequest)
	}{
		{"zero amount", func(r *domain.PostingRequest) { r.AmountMinor = 0 }},
		{"same account", func(r *domain.PostingRequest) { r.Destination.ID = r.Source.ID }},
		{"currency mismatch", func(r *domain.PostingRequest) { r.Destination.Currency = "EUR" }},
		{"missing key", func(r *domain.PostingRequest) { r.IdempotencyKey = "" }},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			req := suite.request()
			tt.mutate(&req)

			_, err := suite.engine.Post(suite.ctx, suite.tx, req)

			suite.ErrorIs(err, apperrors.ErrValidation)
		})
	}
	suite.tx.AssertNotCalled(suite.T(), "InsertEntry", mock.Anything, mock.Anything)
}

func TestJournalEngineTestSuite(t *testing.T) {
	suite.Run(t, new(JournalEngineTestSuite))
}

func TestBuildTransferResult(t *testing.T) {
	created := time.Date(2025, 3, 1, 12, 0, 0, 0, time.FixedZone("CET", 3600))
	entry := domain.JournalEntry{ID: 5, Description: "rent", CreatedAt: created}
	credit := domain.JournalLine{ID: 1, EntryID: 5, AccountID: 11, AmountMinor: 300, Side: domain.Credit, Currency: "USD"}
	debit := domain.JournalLine{ID: 2, EntryID: 5, AccountID: 22, AmountMinor: 300, Side: domain.Debit, Currency: "USD"}

	result, err := services.BuildTransferResult(entry, []domain.JournalLine{debit, credit})
	assert.NoError(t, err)
	assert.Equal(t, int64(11), result.FromAccountID)
	assert.Equal(t, int64(22), result.ToAccountID)
	assert.Equal(t, int64(300), result.AmountMinor)
	assert.Equal(t, time.UTC, result.CreatedAt.Location())
	assert.True(t, created.Equal(result.CreatedAt))

	unbalanced := debit
	unbalanced.AmountMinor = 301
	otherCurrency := debit
	otherCurrency.Currency = "EUR"
	secondCredit := debit
	secondCredit.Side = domain.Credit

	broken := map[string][]domain.JournalLine{
		"one line":         {credit},
		"three lines":      {credit, debit, debit},
		"two credits":      {credit, secondCredit},
		"unequal amounts":  {credit, unbalanced},
		"unequal currency": {credit, otherCurrency},
	}
	for name, lines := range broken {
		t.Run(name, func(t *testing.T) {
			_, err := services.BuildTransferResult(entry, lines)
			assert.Equal(t, apperrors.ErrInternal, apperrors.Kind(err))
		})
	}
}
