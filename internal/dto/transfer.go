package dto

import (
	"time"

	"github.com/SscSPs/wallet_ledger_service/internal/core/domain"
	"github.com/SscSPs/wallet_ledger_service/internal/utils"
)

// IdempotencyKeyHeader carries the client-chosen key that makes a transfer exactly-once.
const IdempotencyKeyHeader = "Idempotency-Key"

// TransferRequest defines the body of POST /transfers.
type TransferRequest struct {
	FromAccountID int64   `json:"fromAccountId" binding:"required,gt=0"`
	ToAccountID   int64   `json:"toAccountId" binding:"required,gt=0"`
	AmountMinor   int64   `json:"amountMinor" binding:"required,gt=0"`
	Currency      string  `json:"currency" binding:"required,currency_code"`
	Description   *string `json:"description" binding:"omitempty,max=255"`
	ExternalRef   *string `json:"externalRef" binding:"omitempty,max=120"`
}

// ToCommand maps the request onto a transfer command.
func (r TransferRequest) ToCommand(idempotencyKey string) domain.TransferCommand {
	cmd := domain.TransferCommand{
		IdempotencyKey: idempotencyKey,
		FromAccountID:  r.FromAccountID,
		ToAccountID:    r.ToAccountID,
		AmountMinor:    r.AmountMinor,
		Currency:       r.Currency,
		ExternalRef:    r.ExternalRef,
	}
	if r.Description != nil {
		cmd.Description = *r.Description
	}
	return cmd
}

// TransferResponse defines the data returned for a posted or replayed transfer.
type TransferResponse struct {
	JournalEntryID int64     `json:"journalEntryId"`
	FromAccountID  int64     `json:"fromAccountId"`
	ToAccountID    int64     `json:"toAccountId"`
	AmountMinor    int64     `json:"amountMinor"`
	Amount         string    `json:"amount"` // Major units, display only
	Currency       string    `json:"currency"`
	CreatedAt      time.Time `json:"createdAt"`
	Description    string    `json:"description,omitempty"`
	ExternalRef    *string   `json:"externalRef,omitempty"`
}

// ToTransferResponse converts a domain.TransferResult to TransferResponse DTO
func ToTransferResponse(res *domain.TransferResult) TransferResponse {
	return TransferResponse{
		JournalEntryID: res.JournalEntryID,
		FromAccountID:  res.FromAccountID,
		ToAccountID:    res.ToAccountID,
		AmountMinor:    res.AmountMinor,
		Amount:         utils.FormatMinorUnits(res.AmountMinor, res.Currency),
		Currency:       res.Currency,
		CreatedAt:      res.CreatedAt,
		Description:    res.Description,
		ExternalRef:    res.ExternalRef,
	}
}

// MintParams defines the query parameters of POST /dev/treasury/mint.
type MintParams struct {
	ToAccountID int64  `form:"toAccountId" binding:"required,gt=0"`
	AmountMinor int64  `form:"amountMinor" binding:"required,gt=0"`
	Currency    string `form:"currency" binding:"omitempty,currency_code"`
}
