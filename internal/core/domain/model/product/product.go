package product

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var (
	// ErrProductIsNotConstructed is returned when a Product instance was not created
	// through the NewProduct or RestoreProduct factory methods.
	ErrProductIsNotConstructed = errors.New("Product must be created via NewProduct or RestoreProduct constructor")
	// ErrNameIsRequired is returned when attempting to create a product without a name.
	ErrNameIsRequired = errs.NewValueIsRequiredError("name")
	// ErrStockIsNegative is returned when attempting to set a negative stock quantity.
	ErrStockIsNegative = errs.NewValueIsInvalidError("stock quantity cannot be negative")
)

// Product represents a sellable catalog item.
//
// The discounted price is optional; FinalPrice is the discounted price when one
// is set and the original price otherwise. Order lines capture FinalPrice at
// checkout time, so later price changes never affect placed orders.
type Product struct {
	id              kernel.UUID
	name            string
	originalPrice   kernel.Money
	discountedPrice *kernel.Money
	stockQuantity   int
	isAvailable     bool

	guard guard.ConstructorGuard
}

// NewProduct creates an available product without a discount.
func NewProduct(id kernel.UUID, name string, originalPrice kernel.Money, stockQuantity int) (*Product, error) {
	return RestoreProduct(id, name, originalPrice, nil, stockQuantity, true)
}

// RestoreProduct reconstructs a product from persistent storage.
func RestoreProduct(
	id kernel.UUID,
	name string,
	originalPrice kernel.Money,
	discountedPrice *kernel.Money,
	stockQuantity int,
	isAvailable bool,
) (*Product, error) {
	product := &Product{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		product.setID(id),
		product.setName(name),
		product.setStockQuantity(stockQuantity),
	); err != nil {
		return nil, err
	}

	product.originalPrice = originalPrice
	product.discountedPrice = discountedPrice
	product.isAvailable = isAvailable
	return product, nil
}

// Validate ensures the product was created through a constructor.
func (p *Product) Validate() error {
	if p == nil {
		return ErrProductIsNotConstructed
	}
	return p.guard.Validate(ErrProductIsNotConstructed)
}

// ID returns the product's unique identifier.
func (p *Product) ID() kernel.UUID {
	return p.id
}

// Name returns the product name.
func (p *Product) Name() string {
	return p.name
}

// OriginalPrice returns the undiscounted price.
func (p *Product) OriginalPrice() kernel.Money {
	return p.originalPrice
}

// DiscountedPrice returns the discount price, or nil when no discount is active.
func (p *Product) DiscountedPrice() *kernel.Money {
	return p.discountedPrice
}

// FinalPrice returns the price a buyer pays right now: the discounted price if
// one is set, the original price otherwise.
func (p *Product) FinalPrice() kernel.Money {
	if p.discountedPrice != nil {
		return *p.discountedPrice
	}
	return p.originalPrice
}

// StockQuantity returns the units currently in stock.
func (p *Product) StockQuantity() int {
	return p.stockQuantity
}

// IsAvailable reports whether the product can currently be ordered.
func (p *Product) IsAvailable() bool {
	return p.isAvailable
}

func (p *Product) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	p.id = id
	return nil
}

func (p *Product) setName(name string) error {
	if name == "" {
		return ErrNameIsRequired
	}
	p.name = name
	return nil
}

func (p *Product) setStockQuantity(quantity int) error {
	if quantity < 0 {
		return ErrStockIsNegative
	}
	p.stockQuantity = quantity
	return nil
}
