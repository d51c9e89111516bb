package availability

import (
	"context"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const seatsCacheTTL = 5 * time.Second

// SeatsCache is a short-TTL snapshot of seat counters for the listing
// surface. Listings may serve slightly stale counts; the accept/reject
// decision in the ledger never reads from here.
type SeatsCache struct {
	client *redis.Client
}

func NewSeatsCache(client *redis.Client) *SeatsCache {
	return &SeatsCache{client: client}
}

func cacheKey(occurrenceKey string) string {
	return "availability:seats:" + occurrenceKey
}

func (c *SeatsCache) Get(ctx context.Context, occurrenceKey string) (int, bool) {
	val, err := c.client.Get(ctx, cacheKey(occurrenceKey)).Result()
	if err != nil {
		return 0, false
	}
	taken, err := strconv.Atoi(val)
	if err != nil {
		return 0, false
	}
	return taken, true
}

func (c *SeatsCache) Set(ctx context.Context, occurrenceKey string, seatsTaken int) {
	c.client.Set(ctx, cacheKey(occurrenceKey), strconv.Itoa(seatsTaken), seatsCacheTTL)
}
