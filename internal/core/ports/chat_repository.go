package ports

import (
	"context"

	"marketplace/internal/core/domain/model/chat"
	"marketplace/internal/core/domain/model/kernel"
)

// ChatRepository defines the persistence contract for delivery chat channels.
type ChatRepository interface {
	// Add persists a new chat channel. Called inside the assignment
	// transaction so an assigned order and its channel appear atomically.
	Add(ctx context.Context, channel *chat.Channel) error

	// GetByOrder retrieves the channel attached to the given order.
	// Returns ObjectNotFoundError when the order has no channel yet.
	GetByOrder(ctx context.Context, orderID kernel.UUID) (*chat.Channel, error)
}
