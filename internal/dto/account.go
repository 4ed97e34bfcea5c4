package dto

import (
	"time"

	"github.com/SscSPs/wallet_ledger_service/internal/core/domain"
	"github.com/SscSPs/wallet_ledger_service/internal/utils"
)

// CreateAccountRequest defines the data needed to create a new account.
type CreateAccountRequest struct {
	OwnerID  *int64 `json:"ownerId" binding:"required"` // Pointer so that owner 0 passes "required"
	Currency string `json:"currency" binding:"required,currency_code"`
}

// AccountResponse defines the data returned for an account.
// Mirrors domain.Account.
type AccountResponse struct {
	ID           int64     `json:"id"`
	OwnerID      int64     `json:"ownerId"`
	Currency     string    `json:"currency"`
	BalanceMinor int64     `json:"balanceMinor"`
	Balance      string    `json:"balance"` // Major units, display only
	Version      int64     `json:"version"`
	CreatedAt    time.Time `json:"createdAt"`
}

// ToAccountResponse converts a domain.Account to AccountResponse DTO
func ToAccountResponse(acc *domain.Account) AccountResponse {
	return AccountResponse{
		ID:           acc.ID,
		OwnerID:      acc.OwnerID,
		Currency:     acc.Currency,
		BalanceMinor: acc.BalanceMinor,
		Balance:      utils.FormatMinorUnits(acc.BalanceMinor, acc.Currency),
		Version:      acc.Version,
		CreatedAt:    acc.CreatedAt.UTC(),
	}
}
