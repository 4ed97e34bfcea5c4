package memory

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/SscSPs/wallet_ledger_service/internal/apperrors"
	"github.com/SscSPs/wallet_ledger_service/internal/core/domain"
	portsrepo "github.com/SscSPs/wallet_ledger_service/internal/core/ports/repositories"
)

var errTxClosed = errors.New("transaction already ended")

// storeTx buffers writes until commit. Like pgx.Tx it is not safe for concurrent use.
type storeTx struct {
	store *Store

	held    []int64
	pending map[int64]domain.Account
	entries []domain.JournalEntry
	lines   []domain.JournalLine
	keys    []string
	closed  bool
}

var _ portsrepo.TxStore = (*storeTx)(nil)

func newStoreTx(s *Store) *storeTx {
	return &storeTx{store: s, pending: make(map[int64]domain.Account)}
}

func (t *storeTx) holds(accountID int64) bool {
	for _, id := range t.held {
		if id == accountID {
			return true
		}
	}
	return false
}

func (t *storeTx) LockAccountForUpdate(ctx context.Context, accountID int64) (*domain.Account, error) {
	if t.closed {
		return nil, errTxClosed
	}
	if !t.holds(accountID) {
		t.store.mu.Lock()
		_, exists := t.store.accounts[accountID]
		lock := t.store.rowLock(accountID)
		t.store.mu.Unlock()

		if !exists {
			return nil, fmt.Errorf("%w: account %d", apperrors.ErrNotFound, accountID)
		}

		select {
		case lock <- struct{}{}:
		case <-ctx.Done():
			return nil, fmt.Errorf("waiting for lock on account %d: %w", accountID, ctx.Err())
		}
		t.held = append(t.held, accountID)
	}

	if acc, ok := t.pending[accountID]; ok {
		return &acc, nil
	}
	t.store.mu.Lock()
	acc := t.store.accounts[accountID]
	t.store.mu.Unlock()
	return &acc, nil
}

func (t *storeTx) UpdateAccountBalance(ctx context.Context, accountID int64, balanceMinor int64) error {
	if t.closed {
		return errTxClosed
	}
	if !t.holds(accountID) {
		return fmt.Errorf("account %d is not locked by this transaction", accountID)
	}

	acc, ok := t.pending[accountID]
	if !ok {
		t.store.mu.Lock()
		acc = t.store.accounts[accountID]
		t.store.mu.Unlock()
	}
	if balanceMinor < 0 && !acc.AllowNegative {
		return fmt.Errorf("account %d: negative balance %d violates non-negative constraint", accountID, balanceMinor)
	}

	acc.BalanceMinor = balanceMinor
	acc.Version++
	t.pending[accountID] = acc
	return nil
}

func (t *storeTx) FindEntryByIdempotencyKey(ctx context.Context, key string) (*domain.JournalEntry, error) {
	if t.closed {
		return nil, errTxClosed
	}
	for _, e := range t.entries {
		if e.IdempotencyKey == key {
			entry := e
			return &entry, nil
		}
	}

	t.store.mu.Lock()
	defer t.store.mu.Unlock()
	id, ok := t.store.entryByKey[key]
	if !ok {
		return nil, fmt.Errorf("%w: journal entry with idempotency key %q", apperrors.ErrNotFound, key)
	}
	entry := t.store.entries[id]
	return &entry, nil
}

// InsertEntry waits while another live transaction holds the same key, the way a
// unique index blocks a concurrent insert until the first writer ends.
func (t *storeTx) InsertEntry(ctx context.Context, entry domain.JournalEntry) (portsrepo.InsertOutcome, error) {
	if t.closed {
		return portsrepo.InsertOutcome{}, errTxClosed
	}
	for _, e := range t.entries {
		if e.IdempotencyKey == entry.IdempotencyKey {
			return portsrepo.InsertOutcome{}, nil
		}
	}

	for {
		t.store.mu.Lock()
		if _, exists := t.store.entryByKey[entry.IdempotencyKey]; exists {
			t.store.mu.Unlock()
			return portsrepo.InsertOutcome{}, nil
		}
		if inFlight, ok := t.store.pendingKeys[entry.IdempotencyKey]; ok {
			t.store.mu.Unlock()
			select {
			case <-inFlight:
				continue
			case <-ctx.Done():
				return portsrepo.InsertOutcome{}, fmt.Errorf("waiting for idempotency key %q: %w", entry.IdempotencyKey, ctx.Err())
			}
		}

		t.store.pendingKeys[entry.IdempotencyKey] = make(chan struct{})
		t.store.lastEntryID++
		entry.ID = t.store.lastEntryID
		entry.CreatedAt = t.store.now()
		t.store.mu.Unlock()

		t.keys = append(t.keys, entry.IdempotencyKey)
		t.entries = append(t.entries, entry)
		return portsrepo.InsertOutcome{Entry: entry, Inserted: true}, nil
	}
}

func (t *storeTx) InsertLines(ctx context.Context, lines []domain.JournalLine) ([]domain.JournalLine, error) {
	if t.closed {
		return nil, errTxClosed
	}

	t.store.mu.Lock()
	defer t.store.mu.Unlock()

	saved := make([]domain.JournalLine, 0, len(lines))
	for _, line := range lines {
		if !t.entryVisible(line.EntryID) {
			return nil, fmt.Errorf("journal line references unknown entry %d", line.EntryID)
		}
		if _, ok := t.store.accounts[line.AccountID]; !ok {
			return nil, fmt.Errorf("journal line references unknown account %d", line.AccountID)
		}
		t.store.lastLineID++
		line.ID = t.store.lastLineID
		saved = append(saved, line)
	}
	t.lines = append(t.lines, saved...)
	return saved, nil
}

// entryVisible reports whether this transaction can see the entry. Callers must hold store.mu.
func (t *storeTx) entryVisible(entryID int64) bool {
	for _, e := range t.entries {
		if e.ID == entryID {
			return true
		}
	}
	_, ok := t.store.entries[entryID]
	return ok
}

func (t *storeTx) FindLinesByEntryID(ctx context.Context, entryID int64) ([]domain.JournalLine, error) {
	if t.closed {
		return nil, errTxClosed
	}

	t.store.mu.Lock()
	lines := append([]domain.JournalLine(nil), t.store.lines[entryID]...)
	t.store.mu.Unlock()

	for _, l := range t.lines {
		if l.EntryID == entryID {
			lines = append(lines, l)
		}
	}
	sort.Slice(lines, func(i, j int) bool { return lines[i].ID < lines[j].ID })
	return lines, nil
}

func (t *storeTx) commit() {
	s := t.store
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, acc := range t.pending {
		s.accounts[id] = acc
	}
	for _, e := range t.entries {
		s.entries[e.ID] = e
		s.entryByKey[e.IdempotencyKey] = e.ID
	}
	for _, l := range t.lines {
		s.lines[l.EntryID] = append(s.lines[l.EntryID], l)
	}
	t.release()
}

func (t *storeTx) rollback() {
	t.store.mu.Lock()
	defer t.store.mu.Unlock()
	t.release()
}

// release frees keys and row locks. Callers must hold store.mu.
func (t *storeTx) release() {
	if t.closed {
		return
	}
	for _, key := range t.keys {
		if inFlight, ok := t.store.pendingKeys[key]; ok {
			close(inFlight)
			delete(t.store.pendingKeys, key)
		}
	}
	for _, id := range t.held {
		<-t.store.rowLocks[id]
	}
	t.closed = true
}
