package services

import (
	"context"

	"github.com/SscSPs/wallet_ledger_service/internal/core/domain"
	portsrepo "github.com/SscSPs/wallet_ledger_service/internal/core/ports/repositories"
)

// JournalEngine writes balanced two-line journal entries inside a caller's transaction.
type JournalEngine interface {
	Post(ctx context.Context, tx portsrepo.JournalTxStore, req domain.PostingRequest) (*domain.PostResult, error)
}
