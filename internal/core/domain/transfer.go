package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrSameAccount is returned when a transfer names the same account on both sides.
var ErrSameAccount = errors.New("fromAccountId and toAccountId must be different")

// TransferCommand moves AmountMinor from FromAccountID to ToAccountID exactly once per IdempotencyKey.
type TransferCommand struct {
	IdempotencyKey string
	FromAccountID  int64
	ToAccountID    int64
	AmountMinor    int64
	Currency       string
	Description    string
	ExternalRef    *string
}

// Normalize validates the command and returns a copy with the currency upper-cased
// and free text truncated. The same-account check runs first.
func (c TransferCommand) Normalize() (TransferCommand, error) {
	if c.FromAccountID == c.ToAccountID {
		return c, ErrSameAccount
	}
	key := strings.TrimSpace(c.IdempotencyKey)
	if key == "" {
		return c, errors.New("idempotency key is required")
	}
	if len(key) > MaxIdempotencyKeyLength {
		return c, fmt.Errorf("idempotency key must be at most %d characters", MaxIdempotencyKeyLength)
	}
	if c.AmountMinor <= 0 {
		return c, errors.New("amountMinor must be positive")
	}
	currency, err := NormalizeCurrency(c.Currency)
	if err != nil {
		return c, err
	}

	c.IdempotencyKey = key
	c.Currency = currency
	c.Description = Truncate(c.Description, MaxDescriptionLength)
	c.ExternalRef = TruncatePtr(c.ExternalRef, MaxExternalRefLength)
	return c, nil
}

// TransferResult is built from the persisted journal lines of a transfer.
type TransferResult struct {
	JournalEntryID int64     `json:"journalEntryId"`
	FromAccountID  int64     `json:"fromAccountId"`
	ToAccountID    int64     `json:"toAccountId"`
	AmountMinor    int64     `json:"amountMinor"`
	Currency       string    `json:"currency"`
	CreatedAt      time.Time `json:"createdAt"`
	Description    string    `json:"description"`
	ExternalRef    *string   `json:"externalRef,omitempty"`
}

// MintCommand credits a target account from the dev treasury.
type MintCommand struct {
	IdempotencyKey string
	ToAccountID    int64
	AmountMinor    int64
	Currency       string
}
