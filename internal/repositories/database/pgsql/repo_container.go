package pgsql

import (
	portsrepo "github.com/SscSPs/wallet_ledger_service/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	accountRepo := newPgxAccountRepository(dbPool)

	return portsrepo.RepositoryProvider{
		AccountRepo: accountRepo,
		UnitOfWork:  &accountRepo.BaseRepository,
	}
}
