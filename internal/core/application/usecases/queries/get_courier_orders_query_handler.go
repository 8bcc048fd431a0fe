package queries

import (
	"context"

	"gorm.io/gorm"

	"marketplace/internal/core/domain/model/order"
)

// GetCourierOrdersQueryHandler lists a courier's own orders.
type GetCourierOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetCourierOrdersQueryHandler creates a handler for courier order reads.
func NewGetCourierOrdersQueryHandler(db *gorm.DB) GetCourierOrdersQueryHandler {
	return GetCourierOrdersQueryHandler{db: db}
}

// Handle returns the courier's orders for the selected scope. Active orders
// come oldest first to match delivery priority; completed ones newest first.
func (h GetCourierOrdersQueryHandler) Handle(ctx context.Context,
	query GetCourierOrdersQuery) ([]OrderSummary, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	db := h.db.WithContext(ctx)
	courierID := query.Courier().ID().Bytes()

	if query.Scope() == CourierOrdersActive {
		return queryOrderSummaries(db, `
			SELECT `+orderSummaryColumns+`
			FROM orders
			WHERE courier_id = ? AND status IN (?, ?)
			ORDER BY assigned_at
		`, courierID, order.Assigned.String(), order.Delivering.String())
	}

	return queryOrderSummaries(db, `
		SELECT `+orderSummaryColumns+`
		FROM orders
		WHERE courier_id = ? AND status = ?
		ORDER BY delivered_at DESC
	`, courierID, order.Delivered.String())
}
