package ports

import (
	"context"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/product"
)

// ProductRepository defines the read contract for the product catalog.
// The order flow never mutates products: stock and availability are checked
// when a cart line is set, not decremented at checkout.
type ProductRepository interface {
	// Get retrieves a product by its unique identifier.
	// Returns ObjectNotFoundError when no such product exists.
	Get(ctx context.Context, id kernel.UUID) (*product.Product, error)

	// GetByIDs retrieves the products for the given identifiers, keyed by id.
	// Missing ids are simply absent from the result; callers decide whether
	// that is an error.
	GetByIDs(ctx context.Context, ids []kernel.UUID) (map[kernel.UUID]*product.Product, error)
}
