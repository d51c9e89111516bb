package availability

import (
	"context"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeatsCache_HitAndMiss(t *testing.T) {
	client, mock := redismock.NewClientMock()
	cache := NewSeatsCache(client)
	ctx := context.Background()

	mock.ExpectGet("availability:seats:3:2026-01-05").SetVal("7")

	taken, ok := cache.Get(ctx, "3:2026-01-05")
	assert.True(t, ok)
	assert.Equal(t, 7, taken)

	mock.ExpectGet("availability:seats:3:2026-01-07").RedisNil()

	_, ok = cache.Get(ctx, "3:2026-01-07")
	assert.False(t, ok)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSeatsCache_CorruptValueIsMiss(t *testing.T) {
	client, mock := redismock.NewClientMock()
	cache := NewSeatsCache(client)

	mock.ExpectGet("availability:seats:3:2026-01-05").SetVal("not-a-number")

	_, ok := cache.Get(context.Background(), "3:2026-01-05")
	assert.False(t, ok)
}

func TestSeatsCache_SetUsesShortTTL(t *testing.T) {
	client, mock := redismock.NewClientMock()
	cache := NewSeatsCache(client)

	mock.ExpectSet("availability:seats:3:2026-01-05", "4", 5*time.Second).SetVal("OK")

	cache.Set(context.Background(), "3:2026-01-05", 4)
	require.NoError(t, mock.ExpectationsWereMet())
}
