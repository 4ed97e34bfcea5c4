package domain

import "time"

// Side is the direction of a journal line.
// A CREDIT line decreases the balance of its account and a DEBIT line increases it.
type Side string

const (
	Debit  Side = "DEBIT"
	Credit Side = "CREDIT"
)

const (
	MaxIdempotencyKeyLength = 80
	MaxDescriptionLength    = 255
	MaxExternalRefLength    = 120
)

// JournalEntry is the header of one posted transfer, unique per idempotency key.
type JournalEntry struct {
	ID             int64     `json:"id"`
	IdempotencyKey string    `json:"idempotencyKey"`
	Description    string    `json:"description"`
	ExternalRef    *string   `json:"externalRef,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
}

// JournalLine is one leg of a journal entry.
type JournalLine struct {
	ID          int64  `json:"id"`
	EntryID     int64  `json:"entryId"`
	AccountID   int64  `json:"accountId"`
	AmountMinor int64  `json:"amountMinor"`
	Side        Side   `json:"side"`
	Currency    string `json:"currency"`
}

// PostingRequest asks the journal engine to move AmountMinor from Source to Destination.
type PostingRequest struct {
	IdempotencyKey string
	Description    string
	ExternalRef    *string
	Source         Account
	Destination    Account
	AmountMinor    int64
	Currency       string
}

// PostResult is the persisted entry with its lines. Replayed is set when another
// writer committed the same idempotency key first; no lines were written in that case.
type PostResult struct {
	Entry    JournalEntry
	Lines    []JournalLine
	Replayed bool
}

// Truncate cuts s to at most max runes.
func Truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}

// TruncatePtr is Truncate for optional values.
func TruncatePtr(s *string, max int) *string {
	if s == nil {
		return nil
	}
	t := Truncate(*s, max)
	return &t
}
