package ports

import (
	"context"
	"errors"
	"fmt"

	"marketplace/internal/core/domain/model/kernel"
)

// ErrCacheMiss is returned by OrderHistoryCache.Get when no entry exists for
// the key. A miss is not a failure; callers fall through to the database.
var ErrCacheMiss = errors.New("cache miss")

// OrderHistoryCacheKey builds the cache key for a customer's order history.
func OrderHistoryCacheKey(customerID kernel.UUID) string {
	return fmt.Sprintf("customer:%s:order-history", customerID)
}

// OrderHistoryCache caches the serialized order history per customer.
// Every order mutation invalidates the owning customer's entry, so the cache
// may lag the database by at most the configured TTL only for reads that race
// a concurrent mutation.
type OrderHistoryCache interface {
	// Get returns the cached payload for the key, or ErrCacheMiss.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores the payload under the key with the cache's configured TTL.
	Set(ctx context.Context, key string, payload []byte) error

	// Invalidate removes the entry for the key. Removing a missing entry is
	// not an error.
	Invalidate(ctx context.Context, key string) error
}
