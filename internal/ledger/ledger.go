// Package ledger tracks seats taken per session occurrence and is the
// single place where the at-most-capacity invariant is enforced. Reserve
// and Release are atomic per occurrence key; unrelated occurrences never
// contend. The counter is a cache of the count of active bookings and can
// always be recomputed from them (Reconcile).
package ledger

import (
	"context"
	"errors"
)

var (
	// ErrFull is the expected business outcome when every seat is taken.
	ErrFull = errors.New("occurrence is full")
	// ErrNotFound means the occurrence was never materialized into the ledger.
	ErrNotFound = errors.New("occurrence not tracked by seat ledger")
	// ErrInvariantViolation signals a bug or a reconciliation gap, such as
	// a release that would drive the counter negative. Callers must halt
	// the offending operation; the ledger never silently corrects itself.
	ErrInvariantViolation = errors.New("seat ledger invariant violation")
)

type Ledger interface {
	// Reserve atomically checks seatsTaken < capacity and increments.
	// Exactly one of two racers for the last seat is granted.
	Reserve(ctx context.Context, key string, capacity int) error
	// Release atomically decrements the counter for the key.
	Release(ctx context.Context, key string) error
	// SeatsTaken returns the current counter; zero for untracked keys.
	SeatsTaken(ctx context.Context, key string) (int, error)
	// Reconcile recomputes the counter from the authoritative set of
	// active bookings and returns the corrected value.
	Reconcile(ctx context.Context, key string) (int, error)
}
