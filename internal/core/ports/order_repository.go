// Package ports defines the persistence and infrastructure contracts of the
// application core. Adapters implement these interfaces; use cases depend on
// them, never on concrete drivers.
package ports

import (
	"context"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Add persists a new order aggregate with its line snapshots.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier.
	// Returns ObjectNotFoundError when no such order exists.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetWithLock retrieves an order and locks its row for the duration of the
	// current transaction. Used by mutation paths that must serialize against
	// concurrent status changes.
	GetWithLock(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetForAssignment retrieves an unassigned order in status new and locks it
	// without waiting. When the row is already locked by a concurrent claim, or
	// the order is no longer claimable, it fails fast with ConflictError so the
	// losing courier gets an immediate answer instead of queueing on the lock.
	GetForAssignment(ctx context.Context, id kernel.UUID) (*order.Order, error)
}
