package queries

import (
	"context"
	"encoding/json"

	"gorm.io/gorm"

	"marketplace/internal/core/ports"
)

// GetOrderHistoryQueryHandler reads the customer's order history through the
// cache. History is the hottest read of the service and changes only on order
// mutations, each of which invalidates the owning customer's entry, so a short
// TTL read-through keeps the database out of most requests.
type GetOrderHistoryQueryHandler struct {
	db    *gorm.DB
	cache ports.OrderHistoryCache
}

// NewGetOrderHistoryQueryHandler creates a handler for order history reads.
func NewGetOrderHistoryQueryHandler(db *gorm.DB, cache ports.OrderHistoryCache) GetOrderHistoryQueryHandler {
	return GetOrderHistoryQueryHandler{db: db, cache: cache}
}

// Handle returns the customer's orders, newest first. A cache failure other
// than a miss falls back to the database rather than failing the read.
func (h GetOrderHistoryQueryHandler) Handle(ctx context.Context,
	query GetOrderHistoryQuery) ([]OrderSummary, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	key := ports.OrderHistoryCacheKey(query.Customer().ID())

	// misses, degraded cache and corrupt entries all fall through to the database
	if cached, err := h.cache.Get(ctx, key); err == nil {
		var summaries []OrderSummary
		if json.Unmarshal(cached, &summaries) == nil {
			return summaries, nil
		}
	}

	summaries, err := queryOrderSummaries(h.db.WithContext(ctx), `
		SELECT `+orderSummaryColumns+`
		FROM orders
		WHERE customer_id = ?
		ORDER BY created_at DESC
	`, query.Customer().ID().Bytes())
	if err != nil {
		return nil, err
	}

	if payload, marshalErr := json.Marshal(summaries); marshalErr == nil {
		_ = h.cache.Set(ctx, key, payload)
	}
	return summaries, nil
}
