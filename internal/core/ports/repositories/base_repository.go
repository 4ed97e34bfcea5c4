package repositories

import "context"

// TxStore is everything a transfer may touch inside one transaction.
type TxStore interface {
	AccountTxStore
	JournalTxStore
}

// UnitOfWork runs fn inside a single transaction. The transaction commits when fn
// returns nil and rolls back when fn returns an error, panics, or ctx is cancelled.
// Locks taken through the TxStore are held until commit or rollback.
type UnitOfWork interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context, tx TxStore) error) error
}
