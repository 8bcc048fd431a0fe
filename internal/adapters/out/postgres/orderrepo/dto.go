// Package orderrepo provides data transfer objects and mapping functions for
// order persistence. The order aggregate maps to the orders table plus one
// row per line in order_lines; lines are written once at checkout and never
// modified afterwards.
package orderrepo

import (
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Status is stored as text so the claim query and the read side can match it
// without knowing the enum encoding.
type OrderDTO struct {
	ID                uuid.UUID       `gorm:"type:uuid;primaryKey"`
	CustomerID        uuid.UUID       `gorm:"type:uuid;index"`
	CourierID         *uuid.UUID      `gorm:"type:uuid;index"`
	ChatChannelID     *uuid.UUID      `gorm:"type:uuid"`
	Status            string          `gorm:"type:varchar(16);index"`
	Total             decimal.Decimal `gorm:"type:numeric(12,2)"`
	Mode              string          `gorm:"type:varchar(16)"`
	ReceiverName      string
	ReceiverPhone     string
	Address           string
	Description       string
	IsFreeDelivery    bool
	Rating            *int
	CreatedAt         time.Time
	AssignedAt        *time.Time
	DeliveryStartedAt *time.Time
	DeliveredAt       *time.Time
	CancelledAt       *time.Time
	Lines             []LineDTO `gorm:"foreignKey:OrderID;references:ID"`
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

// LineDTO represents a single priced line of an order. The unit price is the
// price captured at checkout, independent of later catalog changes.
type LineDTO struct {
	OrderID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	ProductID uuid.UUID `gorm:"type:uuid;primaryKey"`
	Quantity  int
	UnitPrice decimal.Decimal `gorm:"type:numeric(12,2)"`
}

// TableName specifies the database table name for order lines.
func (LineDTO) TableName() string {
	return "order_lines"
}

// fromDomain converts an order domain aggregate to its database representation.
func fromDomain(aggregate *order.Order) OrderDTO {
	var courierID *uuid.UUID
	if id := aggregate.CourierID(); id != nil {
		raw := id.Bytes()
		courierID = &raw
	}

	var chatChannelID *uuid.UUID
	if id := aggregate.ChatChannelID(); id != nil {
		raw := id.Bytes()
		chatChannelID = &raw
	}

	lines := make([]LineDTO, 0, len(aggregate.Lines()))
	for _, line := range aggregate.Lines() {
		lines = append(lines, LineDTO{
			OrderID:   aggregate.ID().Bytes(),
			ProductID: line.ProductID().Bytes(),
			Quantity:  line.Quantity(),
			UnitPrice: line.UnitPrice().Decimal(),
		})
	}

	info := aggregate.DeliveryInfo()
	return OrderDTO{
		ID:                aggregate.ID().Bytes(),
		CustomerID:        aggregate.CustomerID().Bytes(),
		CourierID:         courierID,
		ChatChannelID:     chatChannelID,
		Status:            aggregate.Status().String(),
		Total:             aggregate.Total().Decimal(),
		Mode:              info.Mode().String(),
		ReceiverName:      info.ReceiverName(),
		ReceiverPhone:     info.ReceiverPhone(),
		Address:           info.Address(),
		Description:       info.Description(),
		IsFreeDelivery:    info.IsFreeDelivery(),
		Rating:            aggregate.Rating(),
		CreatedAt:         aggregate.CreatedAt(),
		AssignedAt:        aggregate.AssignedAt(),
		DeliveryStartedAt: aggregate.DeliveryStartedAt(),
		DeliveredAt:       aggregate.DeliveredAt(),
		CancelledAt:       aggregate.CancelledAt(),
		Lines:             lines,
	}
}

// toDomain converts a database DTO to an order domain aggregate.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}

	var courierID *kernel.UUID
	if dto.CourierID != nil {
		value, courierErr := kernel.UUIDFromBytes((*dto.CourierID)[:])
		if courierErr != nil {
			return nil, courierErr
		}
		courierID = &value
	}

	var chatChannelID *kernel.UUID
	if dto.ChatChannelID != nil {
		value, chatErr := kernel.UUIDFromBytes((*dto.ChatChannelID)[:])
		if chatErr != nil {
			return nil, chatErr
		}
		chatChannelID = &value
	}

	status, err := order.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	mode, err := order.ModeFromString(dto.Mode)
	if err != nil {
		return nil, err
	}

	info, err := order.NewDeliveryInfo(mode, dto.ReceiverName, dto.ReceiverPhone,
		dto.Address, dto.Description, dto.IsFreeDelivery)
	if err != nil {
		return nil, err
	}

	lines := make([]order.Line, 0, len(dto.Lines))
	for _, lineDTO := range dto.Lines {
		productID, lineErr := kernel.UUIDFromBytes(lineDTO.ProductID[:])
		if lineErr != nil {
			return nil, lineErr
		}

		unitPrice, lineErr := kernel.NewMoney(lineDTO.UnitPrice)
		if lineErr != nil {
			return nil, lineErr
		}

		line, lineErr := order.NewLine(productID, lineDTO.Quantity, unitPrice)
		if lineErr != nil {
			return nil, lineErr
		}
		lines = append(lines, line)
	}

	return order.RestoreOrder(order.RestoreOrderParams{
		ID:                id,
		CustomerID:        customerID,
		CourierID:         courierID,
		ChatChannelID:     chatChannelID,
		Status:            status,
		Lines:             lines,
		DeliveryInfo:      info,
		Rating:            dto.Rating,
		CreatedAt:         dto.CreatedAt,
		AssignedAt:        dto.AssignedAt,
		DeliveryStartedAt: dto.DeliveryStartedAt,
		DeliveredAt:       dto.DeliveredAt,
		CancelledAt:       dto.CancelledAt,
	})
}
