package models

import "time"

// JournalEntry is a row of the journal_entries table.
type JournalEntry struct {
	ID             int64     `db:"id"`
	IdempotencyKey string    `db:"idempotency_key"`
	Description    string    `db:"description"`
	ExternalRef    *string   `db:"external_ref"` // Nullable
	CreatedAt      time.Time `db:"created_at"`
}

// JournalLine is a row of the journal_lines table.
type JournalLine struct {
	ID             int64  `db:"id"`
	JournalEntryID int64  `db:"journal_entry_id"`
	AccountID      int64  `db:"account_id"`
	AmountMinor    int64  `db:"amount_minor"`
	Side           string `db:"side"` // DEBIT or CREDIT
	Currency       string `db:"currency"`
}
