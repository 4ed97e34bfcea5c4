package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/wallet_ledger_service/internal/apperrors"
	"github.com/SscSPs/wallet_ledger_service/internal/core/domain"
	portsrepo "github.com/SscSPs/wallet_ledger_service/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/wallet_ledger_service/internal/core/ports/services"
)

// transferService implements the TransferSvcFacade interface
type transferService struct {
	BaseService
	uow     portsrepo.UnitOfWork
	journal portssvc.JournalEngine
	metrics portssvc.LedgerMetrics
}

// TransferServiceOption is a functional option for configuring the transfer service
type TransferServiceOption func(*transferService)

// WithTransferMetrics reports every transfer attempt to m.
func WithTransferMetrics(m portssvc.LedgerMetrics) TransferServiceOption {
	return func(s *transferService) {
		s.metrics = m
	}
}

// NewTransferService creates a new transfer service with the provided options
func NewTransferService(uow portsrepo.UnitOfWork, journal portssvc.JournalEngine, options ...TransferServiceOption) portssvc.TransferSvcFacade {
	svc := &transferService{uow: uow, journal: journal}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.TransferSvcFacade = (*transferService)(nil)

// Transfer moves cmd.AmountMinor from the source to the destination account.
// A repeated idempotency key returns the originally posted result and moves nothing.
func (s *transferService) Transfer(ctx context.Context, cmd domain.TransferCommand) (*domain.TransferResult, error) {
	start := time.Now()
	result, outcome, err := s.transfer(ctx, cmd)
	if s.metrics != nil {
		s.metrics.ObserveTransfer(outcome, time.Since(start).Seconds())
	}
	return result, err
}

func (s *transferService) transfer(ctx context.Context, cmd domain.TransferCommand) (*domain.TransferResult, portssvc.TransferOutcome, error) {
	cmd, err := cmd.Normalize()
	if err != nil {
		return nil, portssvc.OutcomeRejected, apperrors.NewValidationError(err.Error())
	}

	logger := s.GetLogger(ctx).With(
		slog.String("idempotency_key", cmd.IdempotencyKey),
		slog.Int64("from_account_id", cmd.FromAccountID),
		slog.Int64("to_account_id", cmd.ToAccountID),
	)
	logger.Info("Transfer requested", slog.Int64("amount_minor", cmd.AmountMinor), slog.String("currency", cmd.Currency))

	outcome := portssvc.OutcomePosted
	var result *domain.TransferResult

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx portsrepo.TxStore) error {
		existing, err := tx.FindEntryByIdempotencyKey(ctx, cmd.IdempotencyKey)
		if err == nil {
			outcome = portssvc.OutcomeReplayed
			logger.Info("Idempotent hit", slog.Int64("journal_entry_id", existing.ID))
			result, err = resultFromEntry(ctx, tx, *existing)
			return err
		}
		if !errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.NewInternalError("failed to look up idempotency key", err)
		}

		source, dest, err := lockAccountsInOrder(ctx, tx, cmd.FromAccountID, cmd.ToAccountID)
		if err != nil {
			return err
		}

		if err := requireCurrency(source, cmd.Currency, "fromAccountId"); err != nil {
			return err
		}
		if err := requireCurrency(dest, cmd.Currency, "toAccountId"); err != nil {
			return err
		}
		if !source.HasFunds(cmd.AmountMinor) {
			return apperrors.NewValidationError("Insufficient funds")
		}

		posted, err := s.journal.Post(ctx, tx, domain.PostingRequest{
			IdempotencyKey: cmd.IdempotencyKey,
			Description:    cmd.Description,
			ExternalRef:    cmd.ExternalRef,
			Source:         *source,
			Destination:    *dest,
			AmountMinor:    cmd.AmountMinor,
			Currency:       cmd.Currency,
		})
		if err != nil {
			return err
		}
		if posted.Replayed {
			outcome = portssvc.OutcomeRaced
			result, err = BuildTransferResult(posted.Entry, posted.Lines)
			return err
		}

		if err := moveBalance(ctx, tx, source, dest, cmd.AmountMinor); err != nil {
			return err
		}

		result, err = resultFromEntry(ctx, tx, posted.Entry)
		return err
	})
	if err != nil {
		return nil, outcomeForError(err), s.logFailure(logger, err)
	}

	logger.Info("Transfer completed", slog.Int64("journal_entry_id", result.JournalEntryID), slog.String("outcome", string(outcome)))
	return result, outcome, nil
}

func (s *transferService) logFailure(logger *slog.Logger, err error) error {
	switch apperrors.Kind(err) {
	case apperrors.ErrInternal:
		logger.Error("Transfer failed", slog.String("error", err.Error()))
	default:
		logger.Warn("Transfer rejected", slog.String("error", err.Error()))
	}
	return err
}

// lockAccountsInOrder locks both accounts in ascending ID order and returns them as
// (from, to). Every writer uses the same order, so two transfers over the same pair
// can never wait on each other in a cycle.
func lockAccountsInOrder(ctx context.Context, tx portsrepo.AccountTxStore, fromID, toID int64) (*domain.Account, *domain.Account, error) {
	firstID, secondID := fromID, toID
	if secondID < firstID {
		firstID, secondID = secondID, firstID
	}

	first, err := lockAccount(ctx, tx, firstID)
	if err != nil {
		return nil, nil, err
	}
	second, err := lockAccount(ctx, tx, secondID)
	if err != nil {
		return nil, nil, err
	}

	if first.ID == fromID {
		return first, second, nil
	}
	return second, first, nil
}

func lockAccount(ctx context.Context, tx portsrepo.AccountTxStore, accountID int64) (*domain.Account, error) {
	account, err := tx.LockAccountForUpdate(ctx, accountID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("Account not found: %d", accountID))
		}
		return nil, apperrors.NewInternalError(fmt.Sprintf("failed to lock account %d", accountID), err)
	}
	return account, nil
}

func requireCurrency(account *domain.Account, currency, field string) error {
	if account.Currency != currency {
		return apperrors.NewValidationError(fmt.Sprintf("%s has currency %s, expected %s", field, account.Currency, currency))
	}
	return nil
}

// moveBalance applies the posted amount to both locked accounts and persists them.
func moveBalance(ctx context.Context, tx portsrepo.AccountTxStore, source, dest *domain.Account, amountMinor int64) error {
	if err := source.Withdraw(amountMinor); err != nil {
		if errors.Is(err, domain.ErrInsufficientFunds) {
			return apperrors.NewValidationError("Insufficient funds")
		}
		return apperrors.NewValidationError(fmt.Sprintf("account %d: %s", source.ID, err))
	}
	if err := dest.Deposit(amountMinor); err != nil {
		return apperrors.NewValidationError(fmt.Sprintf("account %d: %s", dest.ID, err))
	}

	if err := tx.UpdateAccountBalance(ctx, source.ID, source.BalanceMinor); err != nil {
		return apperrors.NewInternalError(fmt.Sprintf("failed to update balance of account %d", source.ID), err)
	}
	if err := tx.UpdateAccountBalance(ctx, dest.ID, dest.BalanceMinor); err != nil {
		return apperrors.NewInternalError(fmt.Sprintf("failed to update balance of account %d", dest.ID), err)
	}
	return nil
}

// resultFromEntry re-reads the persisted lines of entry and assembles the result.
func resultFromEntry(ctx context.Context, tx portsrepo.JournalTxStore, entry domain.JournalEntry) (*domain.TransferResult, error) {
	lines, err := tx.FindLinesByEntryID(ctx, entry.ID)
	if err != nil {
		return nil, apperrors.NewInternalError(fmt.Sprintf("failed to read lines of journal entry %d", entry.ID), err)
	}
	return BuildTransferResult(entry, lines)
}

func outcomeForError(err error) portssvc.TransferOutcome {
	switch apperrors.Kind(err) {
	case apperrors.ErrNotFound:
		return portssvc.OutcomeNotFound
	case apperrors.ErrValidation, apperrors.ErrConflict:
		return portssvc.OutcomeRejected
	}
	return portssvc.OutcomeFailed
}
