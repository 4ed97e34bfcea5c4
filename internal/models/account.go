package models

import "time"

// Account is a row of the accounts table.
type Account struct {
	ID            int64     `db:"id"`
	OwnerID       int64     `db:"owner_id"`
	Currency      string    `db:"currency"`
	BalanceMinor  int64     `db:"balance_minor"`
	AllowNegative bool      `db:"allow_negative"`
	Version       int64     `db:"version"`
	CreatedAt     time.Time `db:"created_at"`
}
