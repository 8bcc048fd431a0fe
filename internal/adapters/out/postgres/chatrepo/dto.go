// Package chatrepo provides data transfer objects and mapping functions for
// delivery chat channel persistence.
package chatrepo

import (
	"time"

	"marketplace/internal/core/domain/model/chat"
	"marketplace/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// ChannelDTO represents the database structure for chat channels. An order
// has at most one channel, created when a courier claims it.
type ChannelDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID    uuid.UUID `gorm:"type:uuid;uniqueIndex"`
	CustomerID uuid.UUID `gorm:"type:uuid"`
	CourierID  uuid.UUID `gorm:"type:uuid"`
	Name       string
	CreatedAt  time.Time
}

// TableName specifies the database table name for chat channels.
func (ChannelDTO) TableName() string {
	return "chat_channels"
}

// fromDomain converts a chat channel domain entity to its database representation.
func fromDomain(channel *chat.Channel) ChannelDTO {
	return ChannelDTO{
		ID:         channel.ID().Bytes(),
		OrderID:    channel.OrderID().Bytes(),
		CustomerID: channel.CustomerID().Bytes(),
		CourierID:  channel.CourierID().Bytes(),
		Name:       channel.Name(),
		CreatedAt:  channel.CreatedAt(),
	}
}

// toDomain converts a database DTO to a chat channel domain entity.
func toDomain(dto ChannelDTO) (*chat.Channel, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}

	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}

	courierID, err := kernel.UUIDFromBytes(dto.CourierID[:])
	if err != nil {
		return nil, err
	}

	return chat.RestoreChannel(id, orderID, customerID, courierID, dto.Name, dto.CreatedAt)
}
