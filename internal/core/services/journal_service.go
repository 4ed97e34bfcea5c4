package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SscSPs/wallet_ledger_service/internal/apperrors"
	"github.com/SscSPs/wallet_ledger_service/internal/core/domain"
	portsrepo "github.com/SscSPs/wallet_ledger_service/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/wallet_ledger_service/internal/core/ports/services"
	"github.com/SscSPs/wallet_ledger_service/internal/utils/accounting"
)

// journalEngine writes one entry and its two lines. It never touches balances.
type journalEngine struct {
	BaseService
}

// NewJournalEngine creates the journal engine.
func NewJournalEngine() portssvc.JournalEngine {
	return &journalEngine{}
}

var _ portssvc.JournalEngine = (*journalEngine)(nil)

// Post inserts the entry, then a CREDIT line on the source and a DEBIT line on the
// destination. If the idempotency key was committed by another writer in the
// meantime, the existing entry is re-read once and returned with Replayed set.
func (e *journalEngine) Post(ctx context.Context, tx portsrepo.JournalTxStore, req domain.PostingRequest) (*domain.PostResult, error) {
	if err := validatePosting(req); err != nil {
		return nil, err
	}

	logger := e.GetLogger(ctx).With(slog.String("idempotency_key", req.IdempotencyKey))

	outcome, err := tx.InsertEntry(ctx, domain.JournalEntry{
		IdempotencyKey: req.IdempotencyKey,
		Description:    domain.Truncate(req.Description, domain.MaxDescriptionLength),
		ExternalRef:    domain.TruncatePtr(req.ExternalRef, domain.MaxExternalRefLength),
	})
	if err != nil {
		return nil, apperrors.NewInternalError("failed to insert journal entry", err)
	}

	if !outcome.Inserted {
		existing, err := tx.FindEntryByIdempotencyKey(ctx, req.IdempotencyKey)
		if err != nil {
			return nil, apperrors.NewInternalError("idempotency key conflict but entry not readable", err)
		}
		lines, err := tx.FindLinesByEntryID(ctx, existing.ID)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to read lines of existing journal entry", err)
		}
		logger.Info("Idempotent race resolved", slog.Int64("journal_entry_id", existing.ID))
		return &domain.PostResult{Entry: *existing, Lines: lines, Replayed: true}, nil
	}

	entry := outcome.Entry
	lines, err := tx.InsertLines(ctx, []domain.JournalLine{
		{EntryID: entry.ID, AccountID: req.Source.ID, AmountMinor: req.AmountMinor, Side: domain.Credit, Currency: req.Currency},
		{EntryID: entry.ID, AccountID: req.Destination.ID, AmountMinor: req.AmountMinor, Side: domain.Debit, Currency: req.Currency},
	})
	if err != nil {
		return nil, apperrors.NewInternalError("failed to insert journal lines", err)
	}

	logger.Debug("Journal entry posted", slog.Int64("journal_entry_id", entry.ID))
	return &domain.PostResult{Entry: entry, Lines: lines}, nil
}

func validatePosting(req domain.PostingRequest) error {
	switch {
	case req.IdempotencyKey == "":
		return apperrors.NewValidationError("idempotency key is required")
	case req.AmountMinor <= 0:
		return apperrors.NewValidationError("amountMinor must be positive")
	case req.Source.ID == req.Destination.ID:
		return apperrors.NewValidationError(domain.ErrSameAccount.Error())
	case req.Source.Currency != req.Currency || req.Destination.Currency != req.Currency:
		return apperrors.NewValidationError(fmt.Sprintf("posting currency %s does not match accounts (%s, %s)",
			req.Currency, req.Source.Currency, req.Destination.Currency))
	}
	return nil
}

// BuildTransferResult turns persisted lines into a transfer result. Any deviation
// from one CREDIT plus one DEBIT line of equal amount and currency is fatal.
func BuildTransferResult(entry domain.JournalEntry, lines []domain.JournalLine) (*domain.TransferResult, error) {
	debit, credit, err := accounting.ValidateTransferLines(lines)
	if err != nil {
		return nil, apperrors.NewInternalError(fmt.Sprintf("journal entry %d is malformed", entry.ID), err)
	}

	return &domain.TransferResult{
		JournalEntryID: entry.ID,
		FromAccountID:  credit.AccountID,
		ToAccountID:    debit.AccountID,
		AmountMinor:    debit.AmountMinor,
		Currency:       debit.Currency,
		CreatedAt:      entry.CreatedAt.UTC(),
		Description:    entry.Description,
		ExternalRef:    entry.ExternalRef,
	}, nil
}
