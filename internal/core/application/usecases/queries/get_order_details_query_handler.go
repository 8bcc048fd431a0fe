package queries

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
)

// GetOrderDetailsQueryHandler reads a single order with its captured lines.
// Visibility: the order's customer and its assigned courier. Anyone else gets
// ObjectNotFoundError rather than ForbiddenError, so order ids cannot be probed.
type GetOrderDetailsQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderDetailsQueryHandler creates a handler for order detail reads.
func NewGetOrderDetailsQueryHandler(db *gorm.DB) GetOrderDetailsQueryHandler {
	return GetOrderDetailsQueryHandler{db: db}
}

// Handle returns the order when the requester is a participant.
func (h GetOrderDetailsQueryHandler) Handle(ctx context.Context,
	query GetOrderDetailsQuery) (GetOrderDetailsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderDetailsQueryResponse{}, err
	}

	db := h.db.WithContext(ctx)

	row := db.Raw(`
		SELECT
			id,
			status,
			total,
			mode,
			receiver_name,
			address,
			is_free_delivery,
			rating,
			created_at,
			delivered_at,
			receiver_phone,
			description,
			courier_id,
			chat_channel_id,
			assigned_at,
			delivery_started_at,
			cancelled_at
		FROM orders
		WHERE id = ? AND (customer_id = ? OR courier_id = ?)
	`, query.OrderID().Bytes(), query.RequesterID().Bytes(), query.RequesterID().Bytes()).Row()

	var response GetOrderDetailsQueryResponse
	var id uuid.UUID
	var rating sql.NullInt64
	var deliveredAt, assignedAt, deliveryStartedAt, cancelledAt sql.NullTime
	var description sql.NullString
	var courierID, chatChannelID uuid.NullUUID

	err := row.Scan(
		&id,
		&response.Status,
		&response.Total,
		&response.Mode,
		&response.ReceiverName,
		&response.Address,
		&response.IsFreeDelivery,
		&rating,
		&response.CreatedAt,
		&deliveredAt,
		&response.ReceiverPhone,
		&description,
		&courierID,
		&chatChannelID,
		&assignedAt,
		&deliveryStartedAt,
		&cancelledAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return GetOrderDetailsQueryResponse{}, errs.NewObjectNotFoundError("order", query.OrderID().String())
	}
	if err != nil {
		return GetOrderDetailsQueryResponse{}, err
	}

	response.ID = id.String()
	if rating.Valid {
		value := int(rating.Int64)
		response.Rating = &value
	}
	if deliveredAt.Valid {
		response.DeliveredAt = &deliveredAt.Time
	}
	if assignedAt.Valid {
		response.AssignedAt = &assignedAt.Time
	}
	if deliveryStartedAt.Valid {
		response.DeliveryStartedAt = &deliveryStartedAt.Time
	}
	if cancelledAt.Valid {
		response.CancelledAt = &cancelledAt.Time
	}
	response.Description = description.String
	if courierID.Valid {
		value := courierID.UUID.String()
		response.CourierID = &value
	}
	if chatChannelID.Valid {
		value := chatChannelID.UUID.String()
		response.ChatChannelID = &value
	}

	response.Lines, err = h.loadLines(db, query.OrderID().Bytes())
	if err != nil {
		return GetOrderDetailsQueryResponse{}, err
	}
	return response, nil
}

func (h GetOrderDetailsQueryHandler) loadLines(db *gorm.DB, orderID uuid.UUID) ([]OrderLineView, error) {
	rows, err := db.Raw(`
		SELECT
			ol.product_id,
			p.name,
			ol.quantity,
			ol.unit_price
		FROM order_lines ol
		JOIN products p ON p.id = ol.product_id
		WHERE ol.order_id = ?
		ORDER BY p.name
	`, orderID).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	lines := make([]OrderLineView, 0)
	for rows.Next() {
		var line OrderLineView
		var productID uuid.UUID
		var unitPrice string

		if err = rows.Scan(&productID, &line.ProductName, &line.Quantity, &unitPrice); err != nil {
			return nil, err
		}

		price, priceErr := kernel.MoneyFromString(unitPrice)
		if priceErr != nil {
			return nil, priceErr
		}
		line.ProductID = productID.String()
		line.UnitPrice = price.String()
		line.LineTotal = price.MulInt(line.Quantity).String()
		lines = append(lines, line)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}
	return lines, nil
}
