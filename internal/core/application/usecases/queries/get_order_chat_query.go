package queries

import (
	"errors"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/guard"
)

var ErrGetOrderChatQueryIsNotConstructed = errors.New(
	"GetOrderChatQuery must be created via NewGetOrderChatQuery constructor",
)

// GetOrderChatQuery retrieves the chat channel of an order.
// Only the two participants may see it.
type GetOrderChatQuery struct {
	requesterID kernel.UUID
	orderID     kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetOrderChatQuery creates a query for an order's chat channel.
func NewGetOrderChatQuery(requesterID, orderID kernel.UUID) (GetOrderChatQuery, error) {
	query := GetOrderChatQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(requesterID.Validate(), orderID.Validate()); err != nil {
		return GetOrderChatQuery{}, err
	}

	query.requesterID = requesterID
	query.orderID = orderID
	return query, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrderChatQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderChatQueryIsNotConstructed)
}

// RequesterID returns the account asking for the channel.
func (q GetOrderChatQuery) RequesterID() kernel.UUID {
	return q.requesterID
}

// OrderID returns the order whose channel is requested.
func (q GetOrderChatQuery) OrderID() kernel.UUID {
	return q.orderID
}

// GetOrderChatQueryResponse is the chat channel of an order.
type GetOrderChatQueryResponse struct {
	ID         string    `json:"id"`
	OrderID    string    `json:"order_id"`
	Name       string    `json:"name"`
	CustomerID string    `json:"customer_id"`
	CourierID  string    `json:"courier_id"`
	CreatedAt  time.Time `json:"created_at"`
}
