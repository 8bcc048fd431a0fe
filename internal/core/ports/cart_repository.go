package ports

import (
	"context"
	"time"

	"marketplace/internal/core/domain/model/cart"
	"marketplace/internal/core/domain/model/kernel"
)

// CartRepository defines the persistence contract for cart aggregates.
type CartRepository interface {
	// Add persists a new cart aggregate.
	Add(ctx context.Context, aggregate *cart.Cart) error

	// Update persists changes to an existing cart, including line additions,
	// quantity changes, removals and deactivation.
	Update(ctx context.Context, aggregate *cart.Cart) error

	// GetActiveByCustomer retrieves the customer's single active cart.
	// Returns ObjectNotFoundError when the customer has no active cart.
	GetActiveByCustomer(ctx context.Context, customerID kernel.UUID) (*cart.Cart, error)

	// PurgeDeactivatedBefore deletes deactivated carts created before the
	// cutoff and returns how many were removed. Used by the cleanup job.
	PurgeDeactivatedBefore(ctx context.Context, cutoff time.Time) (int64, error)
}
