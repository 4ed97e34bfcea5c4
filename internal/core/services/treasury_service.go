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
	"github.com/SscSPs/wallet_ledger_service/internal/platform/config"
	"github.com/google/uuid"
)

// treasuryService funds test accounts. The treasury is an ordinary account; the
// issuer is the only account allowed to go negative and is the source of all minted money.
type treasuryService struct {
	BaseService
	accountRepo portsrepo.AccountRepositoryFacade
	uow         portsrepo.UnitOfWork
	journal     portssvc.JournalEngine
	transfers   portssvc.TransferSvcFacade
	cfg         config.TreasuryConfig
	metrics     portssvc.LedgerMetrics
	newKey      func() string
}

// TreasuryServiceOption is a functional option for configuring the treasury service
type TreasuryServiceOption func(*treasuryService)

// WithTreasuryMetrics reports minted amounts to m.
func WithTreasuryMetrics(m portssvc.LedgerMetrics) TreasuryServiceOption {
	return func(s *treasuryService) {
		s.metrics = m
	}
}

// NewTreasuryService creates the dev treasury minter.
func NewTreasuryService(
	cfg config.TreasuryConfig,
	repos portsrepo.RepositoryProvider,
	journal portssvc.JournalEngine,
	transfers portssvc.TransferSvcFacade,
	options ...TreasuryServiceOption,
) portssvc.TreasurySvcFacade {
	svc := &treasuryService{
		accountRepo: repos.AccountRepo,
		uow:         repos.UnitOfWork,
		journal:     journal,
		transfers:   transfers,
		cfg:         cfg,
		newKey:      uuid.NewString,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.TreasurySvcFacade = (*treasuryService)(nil)

// EnsureFunds returns the treasury account ID after topping it up to requiredMinor.
// The deficit is posted issuer -> treasury through the journal engine.
func (s *treasuryService) EnsureFunds(ctx context.Context, requiredMinor int64) (int64, error) {
	if requiredMinor <= 0 {
		return 0, apperrors.NewValidationError("amountMinor must be positive")
	}
	currency := s.cfg.Currency

	treasury, err := s.findOrCreate(ctx, s.cfg.TreasuryOwnerID, false)
	if err != nil {
		return 0, err
	}
	issuer, err := s.findOrCreate(ctx, s.cfg.IssuerOwnerID, true)
	if err != nil {
		return 0, err
	}

	var minted int64
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx portsrepo.TxStore) error {
		lockedTreasury, lockedIssuer, err := lockAccountsInOrder(ctx, tx, treasury.ID, issuer.ID)
		if err != nil {
			return err
		}
		if lockedTreasury.HasFunds(requiredMinor) {
			return nil
		}

		deficit := requiredMinor - lockedTreasury.BalanceMinor
		posted, err := s.journal.Post(ctx, tx, domain.PostingRequest{
			IdempotencyKey: fmt.Sprintf("DEV-MINT-%s-%s", currency, s.newKey()),
			Description:    fmt.Sprintf("Dev/Test mint %s to treasury", currency),
			Source:         *lockedIssuer,
			Destination:    *lockedTreasury,
			AmountMinor:    deficit,
			Currency:       currency,
		})
		if err != nil {
			return err
		}
		if posted.Replayed {
			return apperrors.NewInternalError("mint idempotency key collided", errors.New(posted.Entry.IdempotencyKey))
		}
		if err := moveBalance(ctx, tx, lockedIssuer, lockedTreasury, deficit); err != nil {
			return err
		}
		minted = deficit
		return nil
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to ensure treasury funds", slog.Int64("required_minor", requiredMinor))
		return 0, err
	}

	if minted > 0 {
		s.LogInfo(ctx, "Minted to treasury",
			slog.Int64("amount_minor", minted),
			slog.String("currency", currency),
			slog.Int64("treasury_id", treasury.ID),
			slog.Int64("issuer_id", issuer.ID))
		if s.metrics != nil {
			s.metrics.ObserveMint(currency, minted)
		}
	}
	return treasury.ID, nil
}

// Mint funds the treasury as needed and then performs an ordinary transfer to the
// target account under the caller's idempotency key.
func (s *treasuryService) Mint(ctx context.Context, cmd domain.MintCommand) (*domain.TransferResult, error) {
	currency := s.cfg.Currency
	if cmd.Currency != "" {
		requested, err := domain.NormalizeCurrency(cmd.Currency)
		if err != nil {
			return nil, apperrors.NewValidationError(err.Error())
		}
		if requested != currency {
			return nil, apperrors.NewValidationError(fmt.Sprintf("dev mint only supports %s, got %s", currency, requested))
		}
	}

	treasuryID, err := s.EnsureFunds(ctx, cmd.AmountMinor)
	if err != nil {
		return nil, err
	}

	externalRef := "dev-mint"
	return s.transfers.Transfer(ctx, domain.TransferCommand{
		IdempotencyKey: cmd.IdempotencyKey,
		FromAccountID:  treasuryID,
		ToAccountID:    cmd.ToAccountID,
		AmountMinor:    cmd.AmountMinor,
		Currency:       currency,
		Description:    "DEV mint " + currency,
		ExternalRef:    &externalRef,
	})
}

// findOrCreate resolves a system account; a lost creation race is settled by re-reading.
func (s *treasuryService) findOrCreate(ctx context.Context, ownerID int64, allowNegative bool) (*domain.Account, error) {
	currency := s.cfg.Currency

	account, err := s.accountRepo.FindAccountByOwnerAndCurrency(ctx, ownerID, currency)
	if err == nil {
		return account, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, apperrors.NewInternalError("failed to look up system account", err)
	}

	account, err = s.accountRepo.SaveAccount(ctx, domain.Account{OwnerID: ownerID, Currency: currency, AllowNegative: allowNegative})
	if err == nil {
		s.LogInfo(ctx, "Created system account", slog.Int64("owner_id", ownerID), slog.Int64("account_id", account.ID))
		return account, nil
	}
	if !errors.Is(err, apperrors.ErrDuplicate) {
		return nil, apperrors.NewInternalError("failed to create system account", err)
	}

	account, err = s.accountRepo.FindAccountByOwnerAndCurrency(ctx, ownerID, currency)
	if err != nil {
		return nil, apperrors.NewInternalError("system account vanished after duplicate insert", err)
	}
	return account, nil
}
