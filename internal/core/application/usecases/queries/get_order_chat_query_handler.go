package queries

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"marketplace/internal/pkg/errs"
)

// GetOrderChatQueryHandler reads the chat channel attached to an order.
// Non-participants get ObjectNotFoundError, the same as for a channel that
// does not exist yet.
type GetOrderChatQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderChatQueryHandler creates a handler for chat channel reads.
func NewGetOrderChatQueryHandler(db *gorm.DB) GetOrderChatQueryHandler {
	return GetOrderChatQueryHandler{db: db}
}

// Handle returns the order's channel when the requester participates in it.
func (h GetOrderChatQueryHandler) Handle(ctx context.Context,
	query GetOrderChatQuery) (GetOrderChatQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderChatQueryResponse{}, err
	}

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			order_id,
			name,
			customer_id,
			courier_id,
			created_at
		FROM chat_channels
		WHERE order_id = ? AND (customer_id = ? OR courier_id = ?)
	`, query.OrderID().Bytes(), query.RequesterID().Bytes(), query.RequesterID().Bytes()).Row()

	var response GetOrderChatQueryResponse
	var id, orderID, customerID, courierID uuid.UUID

	err := row.Scan(&id, &orderID, &response.Name, &customerID, &courierID, &response.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return GetOrderChatQueryResponse{}, errs.NewObjectNotFoundError("chat channel",
			query.OrderID().String())
	}
	if err != nil {
		return GetOrderChatQueryResponse{}, err
	}

	response.ID = id.String()
	response.OrderID = orderID.String()
	response.CustomerID = customerID.String()
	response.CourierID = courierID.String()
	return response, nil
}
