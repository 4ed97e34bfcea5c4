package services

import (
	portsrepo "github.com/SscSPs/wallet_ledger_service/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/wallet_ledger_service/internal/core/ports/services"
	"github.com/SscSPs/wallet_ledger_service/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies.
// m may be nil. The treasury minter is only wired outside production.
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, m portssvc.LedgerMetrics) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	journal := NewJournalEngine()

	transferOpts := []TransferServiceOption{}
	treasuryOpts := []TreasuryServiceOption{}
	if m != nil {
		transferOpts = append(transferOpts, WithTransferMetrics(m))
		treasuryOpts = append(treasuryOpts, WithTreasuryMetrics(m))
	}

	container.Account = NewAccountService(repos.AccountRepo)
	container.Transfer = NewTransferService(repos.UnitOfWork, journal, transferOpts...)

	if !cfg.IsProduction {
		container.Treasury = NewTreasuryService(cfg.Treasury, repos, journal, container.Transfer, treasuryOpts...)
	}

	return container
}
