package queries

import (
	"context"

	"gorm.io/gorm"

	"marketplace/internal/core/domain/model/order"
)

// GetAvailableOrdersQueryHandler lists the orders waiting for a courier.
// The listing is a snapshot: claims race on the order row itself, not on this
// read, so a listed order may already be gone by the time a courier accepts it.
type GetAvailableOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetAvailableOrdersQueryHandler creates a handler for claimable order reads.
func NewGetAvailableOrdersQueryHandler(db *gorm.DB) GetAvailableOrdersQueryHandler {
	return GetAvailableOrdersQueryHandler{db: db}
}

// Handle returns unassigned orders, oldest first, so waiting customers are
// served in arrival order.
func (h GetAvailableOrdersQueryHandler) Handle(ctx context.Context,
	query GetAvailableOrdersQuery) ([]OrderSummary, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	return queryOrderSummaries(h.db.WithContext(ctx), `
		SELECT `+orderSummaryColumns+`
		FROM orders
		WHERE status = ? AND courier_id IS NULL
		ORDER BY created_at
	`, order.New.String())
}
