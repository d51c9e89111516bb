package ledger

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemory_ReserveUntilFull(t *testing.T) {
	l := NewMemory()
	ctx := context.Background()

	require.NoError(t, l.Reserve(ctx, "1:2026-01-05", 2))
	require.NoError(t, l.Reserve(ctx, "1:2026-01-05", 2))
	assert.ErrorIs(t, l.Reserve(ctx, "1:2026-01-05", 2), ErrFull)

	taken, err := l.SeatsTaken(ctx, "1:2026-01-05")
	require.NoError(t, err)
	assert.Equal(t, 2, taken)
}

func TestMemory_ReleaseBelowZero(t *testing.T) {
	l := NewMemory()
	ctx := context.Background()

	assert.ErrorIs(t, l.Release(ctx, "1:2026-01-05"), ErrInvariantViolation)

	require.NoError(t, l.Reserve(ctx, "1:2026-01-05", 1))
	require.NoError(t, l.Release(ctx, "1:2026-01-05"))
	assert.ErrorIs(t, l.Release(ctx, "1:2026-01-05"), ErrInvariantViolation)
}

func TestMemory_IndependentKeys(t *testing.T) {
	l := NewMemory()
	ctx := context.Background()

	require.NoError(t, l.Reserve(ctx, "1:2026-01-05", 1))
	assert.ErrorIs(t, l.Reserve(ctx, "1:2026-01-05", 1), ErrFull)

	// A different occurrence is unaffected.
	require.NoError(t, l.Reserve(ctx, "1:2026-01-07", 1))
}

// Exactly capacity reservations are granted no matter how N+K concurrent
// callers interleave.
func TestMemory_ConcurrentReserveGrantsExactlyCapacity(t *testing.T) {
	const capacity = 10
	const callers = 25

	l := NewMemory()
	ctx := context.Background()
	key := "3:2026-01-05"

	var wg sync.WaitGroup
	results := make(chan error, callers)

	start := make(chan struct{})
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			results <- l.Reserve(ctx, key, capacity)
		}()
	}
	close(start)
	wg.Wait()
	close(results)

	granted, rejected := 0, 0
	for err := range results {
		switch {
		case err == nil:
			granted++
		case assert.ErrorIs(t, err, ErrFull):
			rejected++
		}
	}

	assert.Equal(t, capacity, granted)
	assert.Equal(t, callers-capacity, rejected)

	taken, err := l.SeatsTaken(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, capacity, taken)
}

func TestMemory_ConcurrentReserveAndRelease(t *testing.T) {
	const capacity = 5
	l := NewMemory()
	ctx := context.Background()
	key := "9:2026-03-14"

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := l.Reserve(ctx, key, capacity); err == nil {
				_ = l.Release(ctx, key)
			}
		}()
	}
	wg.Wait()

	taken, err := l.SeatsTaken(ctx, key)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, taken, 0)
	assert.LessOrEqual(t, taken, capacity)
}
