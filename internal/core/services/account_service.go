package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/SscSPs/wallet_ledger_service/internal/apperrors"
	"github.com/SscSPs/wallet_ledger_service/internal/core/domain"
	portsrepo "github.com/SscSPs/wallet_ledger_service/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/wallet_ledger_service/internal/core/ports/services"
	"github.com/SscSPs/wallet_ledger_service/internal/dto"
)

// accountService implements the AccountSvcFacade interface
type accountService struct {
	BaseService
	accountRepo portsrepo.AccountRepositoryFacade
}

// NewAccountService creates a new account service
func NewAccountService(repo portsrepo.AccountRepositoryFacade) portssvc.AccountSvcFacade {
	return &accountService{accountRepo: repo}
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

// CreateAccount opens a zero-balance account. One account per (owner, currency).
func (s *accountService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest) (*domain.Account, error) {
	if req.OwnerID == nil {
		return nil, apperrors.NewValidationError("ownerId is required")
	}
	ownerID := *req.OwnerID

	currency, err := domain.NormalizeCurrency(req.Currency)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	logger := s.GetLogger(ctx).With(slog.Int64("owner_id", ownerID), slog.String("currency", currency))

	if _, err := s.accountRepo.FindAccountByOwnerAndCurrency(ctx, ownerID, currency); err == nil {
		logger.Warn("Account already exists")
		return nil, apperrors.NewConflictError(fmt.Sprintf("Account already exists for owner=%d, currency=%s", ownerID, currency))
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		s.LogError(ctx, err, "Failed to check for existing account")
		return nil, apperrors.NewInternalError("failed to create account", err)
	}

	account, err := s.accountRepo.SaveAccount(ctx, domain.Account{OwnerID: ownerID, Currency: currency})
	if err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			logger.Warn("Account creation lost a race")
			return nil, apperrors.NewConflictError(fmt.Sprintf("Account already exists (race) for owner=%d, currency=%s", ownerID, currency))
		}
		s.LogError(ctx, err, "Failed to save account")
		return nil, apperrors.NewInternalError("failed to create account", err)
	}

	logger.Info("Account created", slog.Int64("account_id", account.ID))
	return account, nil
}

// GetAccountByID retrieves an account by ID.
func (s *accountService) GetAccountByID(ctx context.Context, accountID int64) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("Account not found: %d", accountID))
		}
		s.LogError(ctx, err, "Failed to get account", slog.Int64("account_id", accountID))
		return nil, apperrors.NewInternalError("failed to get account", err)
	}
	return account, nil
}
