package services

import (
	"context"

	"github.com/SscSPs/wallet_ledger_service/internal/core/domain"
)

// TransferSvcFacade moves money between two accounts exactly once per idempotency key.
type TransferSvcFacade interface {
	Transfer(ctx context.Context, cmd domain.TransferCommand) (*domain.TransferResult, error)
}

// TreasurySvcFacade funds test accounts from a dev treasury. Never wired in production.
type TreasurySvcFacade interface {
	// EnsureFunds tops the treasury up to requiredMinor from the issuer and returns the treasury account ID.
	EnsureFunds(ctx context.Context, requiredMinor int64) (int64, error)

	// Mint ensures treasury funds and transfers them to the target account.
	Mint(ctx context.Context, cmd domain.MintCommand) (*domain.TransferResult, error)
}

// TransferOutcome labels how a transfer attempt finished.
type TransferOutcome string

const (
	OutcomePosted   TransferOutcome = "posted"
	OutcomeReplayed TransferOutcome = "replayed"
	OutcomeRaced    TransferOutcome = "raced"
	OutcomeRejected TransferOutcome = "rejected"
	OutcomeNotFound TransferOutcome = "not_found"
	OutcomeFailed   TransferOutcome = "failed"
)

// LedgerMetrics receives ledger events. Implementations must be safe for concurrent use.
type LedgerMetrics interface {
	ObserveTransfer(outcome TransferOutcome, seconds float64)
	ObserveMint(currency string, amountMinor int64)
}
