package domain

import (
	"errors"
	"math"
	"time"
)

// ErrInsufficientFunds is returned by Withdraw when the account may not go below zero.
var ErrInsufficientFunds = errors.New("insufficient funds")

// ErrBalanceOverflow is returned when a balance change does not fit in int64.
var ErrBalanceOverflow = errors.New("balance overflow")

// Account holds a balance in integer minor units of a single currency.
type Account struct {
	ID            int64     `json:"id"`
	OwnerID       int64     `json:"ownerId"`
	Currency      string    `json:"currency"`     // ISO-4217, immutable after creation
	BalanceMinor  int64     `json:"balanceMinor"` // Sum of DEBIT lines minus sum of CREDIT lines
	AllowNegative bool      `json:"allowNegative"`
	Version       int64     `json:"version"` // Bumped on every balance change
	CreatedAt     time.Time `json:"createdAt"`
}

// HasFunds reports whether the balance covers amountMinor without going negative.
func (a Account) HasFunds(amountMinor int64) bool {
	return a.BalanceMinor >= amountMinor
}

// Withdraw decreases the balance. Only accounts with AllowNegative may end below zero.
func (a *Account) Withdraw(amountMinor int64) error {
	if amountMinor > 0 && a.BalanceMinor < math.MinInt64+amountMinor {
		return ErrBalanceOverflow
	}
	next := a.BalanceMinor - amountMinor
	if next < 0 && !a.AllowNegative {
		return ErrInsufficientFunds
	}
	a.BalanceMinor = next
	return nil
}

// Deposit increases the balance.
func (a *Account) Deposit(amountMinor int64) error {
	if amountMinor > 0 && a.BalanceMinor > math.MaxInt64-amountMinor {
		return ErrBalanceOverflow
	}
	a.BalanceMinor += amountMinor
	return nil
}
