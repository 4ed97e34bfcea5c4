package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/SscSPs/wallet_ledger_service/internal/apperrors"
	"github.com/SscSPs/wallet_ledger_service/internal/core/domain"
	portsrepo "github.com/SscSPs/wallet_ledger_service/internal/core/ports/repositories"
	"github.com/SscSPs/wallet_ledger_service/internal/models"
	"github.com/SscSPs/wallet_ledger_service/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const accountColumns = `id, owner_id, currency, balance_minor, allow_negative, version, created_at`

type PgxAccountRepository struct {
	BaseRepository
}

// newPgxAccountRepository creates a new repository for account data.
func newPgxAccountRepository(pool *pgxpool.Pool) *PgxAccountRepository {
	return &PgxAccountRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxAccountRepository implements portsrepo.AccountRepositoryFacade
var _ portsrepo.AccountRepositoryFacade = (*PgxAccountRepository)(nil)

// SaveAccount inserts a new zero-balance account.
func (r *PgxAccountRepository) SaveAccount(ctx context.Context, account domain.Account) (*domain.Account, error) {
	query := `
		INSERT INTO accounts (owner_id, currency, allow_negative)
		VALUES ($1, $2, $3)
		RETURNING ` + accountColumns + `;
	`
	rows, err := r.Pool.Query(ctx, query, account.OwnerID, account.Currency, account.AllowNegative)
	if err != nil {
		return nil, fmt.Errorf("failed to save account for owner %d: %w", account.OwnerID, err)
	}
	saved, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.Account])
	if err != nil {
		if pgErrorCode(err) == pgUniqueViolation {
			return nil, fmt.Errorf("%w: account for owner %d in %s", apperrors.ErrDuplicate, account.OwnerID, account.Currency)
		}
		return nil, fmt.Errorf("failed to save account for owner %d: %w", account.OwnerID, err)
	}

	acc := mapping.ToDomainAccount(saved)
	return &acc, nil
}

// FindAccountByID retrieves an account by its ID.
func (r *PgxAccountRepository) FindAccountByID(ctx context.Context, accountID int64) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE id = $1;`
	return queryAccount(ctx, r.Pool, query, fmt.Sprintf("account %d", accountID), accountID)
}

// FindAccountByOwnerAndCurrency retrieves the account an owner holds in a currency.
func (r *PgxAccountRepository) FindAccountByOwnerAndCurrency(ctx context.Context, ownerID int64, currency string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE owner_id = $1 AND currency = $2;`
	return queryAccount(ctx, r.Pool, query, fmt.Sprintf("account for owner %d in %s", ownerID, currency), ownerID, currency)
}

// lockAccount selects an account with FOR UPDATE. q must be a transaction.
func lockAccount(ctx context.Context, q querier, accountID int64) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE id = $1 FOR UPDATE;`
	return queryAccount(ctx, q, query, fmt.Sprintf("account %d", accountID), accountID)
}

func updateAccountBalance(ctx context.Context, q querier, accountID int64, balanceMinor int64) error {
	query := `UPDATE accounts SET balance_minor = $2, version = version + 1 WHERE id = $1;`
	cmdTag, err := q.Exec(ctx, query, accountID, balanceMinor)
	if err != nil {
		if pgErrorCode(err) == pgCheckViolation {
			return fmt.Errorf("%w: account %d cannot go below zero", apperrors.ErrValidation, accountID)
		}
		return fmt.Errorf("failed to update balance of account %d: %w", accountID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: account %d", apperrors.ErrNotFound, accountID)
	}
	return nil
}

func queryAccount(ctx context.Context, q querier, query string, what string, args ...any) (*domain.Account, error) {
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", what, err)
	}
	m, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.Account])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrNotFound, what)
		}
		return nil, fmt.Errorf("failed to scan %s: %w", what, err)
	}
	acc := mapping.ToDomainAccount(m)
	return &acc, nil
}
