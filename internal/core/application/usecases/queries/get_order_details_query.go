package queries

import (
	"errors"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/guard"
)

var ErrGetOrderDetailsQueryIsNotConstructed = errors.New(
	"GetOrderDetailsQuery must be created via NewGetOrderDetailsQuery constructor",
)

// GetOrderDetailsQuery retrieves one order with its lines. The requester must
// be the order's customer or its assigned courier.
type GetOrderDetailsQuery struct {
	requesterID kernel.UUID
	orderID     kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetOrderDetailsQuery creates a query for a single order.
// The requester is any authenticated account; access is decided against the
// loaded order, not the role.
func NewGetOrderDetailsQuery(requesterID, orderID kernel.UUID) (GetOrderDetailsQuery, error) {
	query := GetOrderDetailsQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(requesterID.Validate(), orderID.Validate()); err != nil {
		return GetOrderDetailsQuery{}, err
	}

	query.requesterID = requesterID
	query.orderID = orderID
	return query, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrderDetailsQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderDetailsQueryIsNotConstructed)
}

// RequesterID returns the account asking for the order.
func (q GetOrderDetailsQuery) RequesterID() kernel.UUID {
	return q.requesterID
}

// OrderID returns the requested order.
func (q GetOrderDetailsQuery) OrderID() kernel.UUID {
	return q.orderID
}

// OrderLineView is one captured line of an order response.
type OrderLineView struct {
	ProductID   string `json:"product_id"`
	ProductName string `json:"product_name"`
	Quantity    int    `json:"quantity"`
	UnitPrice   string `json:"unit_price"`
	LineTotal   string `json:"line_total"`
}

// GetOrderDetailsQueryResponse is one order with its captured lines and the
// full set of lifecycle timestamps.
type GetOrderDetailsQueryResponse struct {
	OrderSummary
	ReceiverPhone     string          `json:"receiver_phone"`
	Description       string          `json:"description,omitempty"`
	CourierID         *string         `json:"courier_id,omitempty"`
	ChatChannelID     *string         `json:"chat_channel_id,omitempty"`
	Lines             []OrderLineView `json:"lines"`
	AssignedAt        *time.Time      `json:"assigned_at,omitempty"`
	DeliveryStartedAt *time.Time      `json:"delivery_started_at,omitempty"`
	CancelledAt       *time.Time      `json:"cancelled_at,omitempty"`
}
