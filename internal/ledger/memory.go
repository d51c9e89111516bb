package ledger

import (
	"context"
	"sync"
)

// Memory is an in-process ledger with the same semantics as the SQL one,
// using one mutex per occurrence key so unrelated occurrences never
// contend. It backs tests and single-node setups without a database.
type Memory struct {
	mu      sync.RWMutex
	entries map[string]*seatEntry
}

type seatEntry struct {
	mu    sync.Mutex
	taken int
}

func NewMemory() *Memory {
	return &Memory{entries: make(map[string]*seatEntry)}
}

func (l *Memory) entry(key string) *seatEntry {
	l.mu.RLock()
	e, ok := l.entries[key]
	l.mu.RUnlock()
	if ok {
		return e
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if e, ok = l.entries[key]; ok {
		return e
	}
	e = &seatEntry{}
	l.entries[key] = e
	return e
}

func (l *Memory) Reserve(_ context.Context, key string, capacity int) error {
	e := l.entry(key)
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.taken >= capacity {
		return ErrFull
	}
	e.taken++
	return nil
}

func (l *Memory) Release(_ context.Context, key string) error {
	l.mu.RLock()
	e, ok := l.entries[key]
	l.mu.RUnlock()
	if !ok {
		return ErrInvariantViolation
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.taken == 0 {
		return ErrInvariantViolation
	}
	e.taken--
	return nil
}

func (l *Memory) SeatsTaken(_ context.Context, key string) (int, error) {
	l.mu.RLock()
	e, ok := l.entries[key]
	l.mu.RUnlock()
	if !ok {
		return 0, nil
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	return e.taken, nil
}

// Reconcile on the in-process ledger has no external booking set to
// recount from; it reports the current counter unchanged.
func (l *Memory) Reconcile(ctx context.Context, key string) (int, error) {
	return l.SeatsTaken(ctx, key)
}
