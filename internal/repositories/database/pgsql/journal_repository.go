package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/SscSPs/wallet_ledger_service/internal/apperrors"
	"github.com/SscSPs/wallet_ledger_service/internal/core/domain"
	portsrepo "github.com/SscSPs/wallet_ledger_service/internal/core/ports/repositories"
	"github.com/SscSPs/wallet_ledger_service/internal/models"
	"github.com/SscSPs/wallet_ledger_service/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
)

// pgxTxStore exposes one pgx transaction as a portsrepo.TxStore.
type pgxTxStore struct {
	tx pgx.Tx
}

var _ portsrepo.TxStore = (*pgxTxStore)(nil)

func (s *pgxTxStore) LockAccountForUpdate(ctx context.Context, accountID int64) (*domain.Account, error) {
	return lockAccount(ctx, s.tx, accountID)
}

func (s *pgxTxStore) UpdateAccountBalance(ctx context.Context, accountID int64, balanceMinor int64) error {
	return updateAccountBalance(ctx, s.tx, accountID, balanceMinor)
}

func (s *pgxTxStore) FindEntryByIdempotencyKey(ctx context.Context, key string) (*domain.JournalEntry, error) {
	query := `
		SELECT id, idempotency_key, description, external_ref, created_at
		FROM journal_entries
		WHERE idempotency_key = $1;
	`
	rows, err := s.tx.Query(ctx, query, key)
	if err != nil {
		return nil, fmt.Errorf("failed to query journal entry by idempotency key: %w", err)
	}
	m, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.JournalEntry])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: journal entry with idempotency key %q", apperrors.ErrNotFound, key)
		}
		return nil, fmt.Errorf("failed to scan journal entry: %w", err)
	}
	entry := mapping.ToDomainJournalEntry(m)
	return &entry, nil
}

// InsertEntry relies on ON CONFLICT DO NOTHING so that a duplicate key does not
// abort the surrounding transaction. An empty RETURNING means the key was taken.
func (s *pgxTxStore) InsertEntry(ctx context.Context, entry domain.JournalEntry) (portsrepo.InsertOutcome, error) {
	query := `
		INSERT INTO journal_entries (idempotency_key, description, external_ref)
		VALUES ($1, $2, $3)
		ON CONFLICT (idempotency_key) DO NOTHING
		RETURNING id, idempotency_key, description, external_ref, created_at;
	`
	rows, err := s.tx.Query(ctx, query, entry.IdempotencyKey, entry.Description, entry.ExternalRef)
	if err != nil {
		return portsrepo.InsertOutcome{}, fmt.Errorf("failed to insert journal entry: %w", err)
	}
	m, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.JournalEntry])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return portsrepo.InsertOutcome{Inserted: false}, nil
		}
		return portsrepo.InsertOutcome{}, fmt.Errorf("failed to insert journal entry: %w", err)
	}
	return portsrepo.InsertOutcome{Entry: mapping.ToDomainJournalEntry(m), Inserted: true}, nil
}

func (s *pgxTxStore) InsertLines(ctx context.Context, lines []domain.JournalLine) ([]domain.JournalLine, error) {
	query := `
		INSERT INTO journal_lines (journal_entry_id, account_id, amount_minor, side, currency)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id;
	`
	batch := &pgx.Batch{}
	for _, line := range lines {
		m := mapping.ToModelJournalLine(line)
		batch.Queue(query, m.JournalEntryID, m.AccountID, m.AmountMinor, m.Side, m.Currency)
	}

	br := s.tx.SendBatch(ctx, batch)
	saved := make([]domain.JournalLine, 0, len(lines))
	for _, line := range lines {
		if err := br.QueryRow().Scan(&line.ID); err != nil {
			_ = br.Close()
			return nil, fmt.Errorf("failed to insert journal line for account %d: %w", line.AccountID, err)
		}
		saved = append(saved, line)
	}
	if err := br.Close(); err != nil {
		return nil, fmt.Errorf("failed to close journal line batch: %w", err)
	}
	return saved, nil
}

func (s *pgxTxStore) FindLinesByEntryID(ctx context.Context, entryID int64) ([]domain.JournalLine, error) {
	query := `
		SELECT id, journal_entry_id, account_id, amount_minor, side, currency
		FROM journal_lines
		WHERE journal_entry_id = $1
		ORDER BY id;
	`
	rows, err := s.tx.Query(ctx, query, entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to query lines of journal entry %d: %w", entryID, err)
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.JournalLine])
	if err != nil {
		return nil, fmt.Errorf("failed to scan lines of journal entry %d: %w", entryID, err)
	}
	return mapping.ToDomainJournalLines(ms), nil
}
