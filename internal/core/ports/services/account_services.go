package services

import (
	"context"

	"github.com/SscSPs/wallet_ledger_service/internal/core/domain"
	"github.com/SscSPs/wallet_ledger_service/internal/dto"
)

// AccountReaderSvc defines read operations for account data
type AccountReaderSvc interface {
	// GetAccountByID retrieves a specific account by its identifier.
	GetAccountByID(ctx context.Context, accountID int64) (*domain.Account, error)
}

// AccountWriterSvc defines write operations for account data
type AccountWriterSvc interface {
	// CreateAccount opens a zero-balance account for an owner in one currency.
	CreateAccount(ctx context.Context, req dto.CreateAccountRequest) (*domain.Account, error)
}

// AccountSvcFacade combines all account-related service interfaces
// This is a facade for clients that need access to all operations
type AccountSvcFacade interface {
	AccountReaderSvc
	AccountWriterSvc
}
