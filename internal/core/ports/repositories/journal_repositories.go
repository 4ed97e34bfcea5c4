package repositories

import (
	"context"

	"github.com/SscSPs/wallet_ledger_service/internal/core/domain"
)

// InsertOutcome reports whether InsertEntry created a row.
// Inserted is false when the idempotency key already exists; Entry is then empty.
type InsertOutcome struct {
	Entry    domain.JournalEntry
	Inserted bool
}

// JournalTxStore is the journal side of a unit of work.
type JournalTxStore interface {
	// FindEntryByIdempotencyKey returns apperrors.ErrNotFound when no entry uses the key.
	FindEntryByIdempotencyKey(ctx context.Context, key string) (*domain.JournalEntry, error)

	// InsertEntry inserts the entry unless its idempotency key is taken.
	InsertEntry(ctx context.Context, entry domain.JournalEntry) (InsertOutcome, error)

	// InsertLines inserts the lines of an entry and returns them with their IDs.
	InsertLines(ctx context.Context, lines []domain.JournalLine) ([]domain.JournalLine, error)

	// FindLinesByEntryID returns the lines of an entry ordered by ID.
	FindLinesByEntryID(ctx context.Context, entryID int64) ([]domain.JournalLine, error)
}
