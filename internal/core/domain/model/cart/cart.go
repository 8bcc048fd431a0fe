package cart

import (
	"errors"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/product"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var (
	// ErrCartIsNotConstructed is returned when a Cart instance was not created through
	// the NewCart or RestoreCart factory methods.
	ErrCartIsNotConstructed = errors.New("Cart must be created via NewCart or RestoreCart constructor")
	// ErrCartIsNotActive is returned when mutating a cart that has already been
	// checked out.
	ErrCartIsNotActive = errs.NewConflictError("cart is no longer active")
)

// Cart is the aggregate root for a customer's staging area of product+quantity
// pairs. It is created lazily on first interaction, mutated until checkout, and
// deactivated when an order is placed from it.
//
// Invariants:
//   - At most one line per product.
//   - Line quantities stay within [MinLineQuantity, MaxLineQuantity].
//   - An inactive cart rejects all mutations.
type Cart struct {
	id         kernel.UUID
	customerID kernel.UUID
	isActive   bool
	lines      []Line
	createdAt  time.Time

	guard guard.ConstructorGuard
}

// NewCart creates an empty active cart for a customer.
func NewCart(id, customerID kernel.UUID, now time.Time) (*Cart, error) {
	return RestoreCart(id, customerID, true, nil, now)
}

// RestoreCart reconstructs a cart from persistent storage.
func RestoreCart(id, customerID kernel.UUID, isActive bool, lines []Line, createdAt time.Time) (*Cart, error) {
	cart := &Cart{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cart.setID(id),
		cart.setCustomerID(customerID),
		cart.setLines(lines),
	); err != nil {
		return nil, err
	}

	cart.isActive = isActive
	cart.createdAt = createdAt
	return cart, nil
}

// Validate ensures the cart was created through a constructor.
func (c *Cart) Validate() error {
	if c == nil {
		return ErrCartIsNotConstructed
	}
	return c.guard.Validate(ErrCartIsNotConstructed)
}

// ID returns the cart's unique identifier.
func (c *Cart) ID() kernel.UUID {
	return c.id
}

// CustomerID returns the owner of the cart.
func (c *Cart) CustomerID() kernel.UUID {
	return c.customerID
}

// IsActive reports whether the cart can still be mutated and checked out.
func (c *Cart) IsActive() bool {
	return c.isActive
}

// CreatedAt returns the cart creation time.
func (c *Cart) CreatedAt() time.Time {
	return c.createdAt
}

// Lines returns a copy of the cart lines.
func (c *Cart) Lines() []Line {
	lines := make([]Line, len(c.lines))
	copy(lines, c.lines)
	return lines
}

// IsEmpty reports whether the cart has no lines.
func (c *Cart) IsEmpty() bool {
	return len(c.lines) == 0
}

// Line returns the line for the given product, or false when absent.
func (c *Cart) Line(productID kernel.UUID) (Line, bool) {
	for _, line := range c.lines {
		if line.ProductID().IsEqual(productID) {
			return line, true
		}
	}
	return Line{}, false
}

// UpsertLine sets the quantity of the given product in the cart.
//
// Rules:
//   - quantity must be within [0, MaxLineQuantity];
//   - quantity 0 deletes the line (a no-op when the line is absent);
//   - the product must be available (ProductUnavailableError otherwise);
//   - quantity must not exceed the product stock (InsufficientStockError otherwise);
//   - a missing line with a positive quantity is created.
func (c *Cart) UpsertLine(p *product.Product, quantity int) error {
	if !c.isActive {
		return ErrCartIsNotActive
	}
	if err := p.Validate(); err != nil {
		return err
	}
	if quantity < 0 || quantity > MaxLineQuantity {
		return errs.NewValueIsOutOfRangeError("quantity", quantity, 0, MaxLineQuantity)
	}

	if quantity == 0 {
		c.removeLine(p.ID())
		return nil
	}

	if !p.IsAvailable() {
		return errs.NewProductUnavailableError(p.Name())
	}
	if quantity > p.StockQuantity() {
		return errs.NewInsufficientStockError(p.Name(), p.StockQuantity())
	}

	line, err := NewLine(p.ID(), quantity)
	if err != nil {
		return err
	}

	for i := range c.lines {
		if c.lines[i].ProductID().IsEqual(p.ID()) {
			c.lines[i] = line
			return nil
		}
	}
	c.lines = append(c.lines, line)
	return nil
}

// RemoveLine deletes the line for the given product.
// Fails with ObjectNotFoundError when the product is not in the cart.
func (c *Cart) RemoveLine(productID kernel.UUID) error {
	if !c.isActive {
		return ErrCartIsNotActive
	}
	if err := productID.Validate(); err != nil {
		return err
	}

	if !c.removeLine(productID) {
		return errs.NewObjectNotFoundError("cart line", productID.String())
	}
	return nil
}

// Clear deletes all lines. Clearing an empty cart is a no-op.
func (c *Cart) Clear() {
	c.lines = nil
}

// Deactivate marks the cart as checked out. The cart rejects mutations afterwards.
func (c *Cart) Deactivate() {
	c.isActive = false
}

// Total computes the cart total from the given product set: the sum of
// quantity times final price over all lines. The total is a derived value and
// is never stored on the cart.
// Fails with ObjectNotFoundError when a line's product is missing from products.
func (c *Cart) Total(products map[kernel.UUID]*product.Product) (kernel.Money, error) {
	total := kernel.ZeroMoney()
	for _, line := range c.lines {
		p, ok := products[line.ProductID()]
		if !ok {
			return kernel.Money{}, errs.NewObjectNotFoundError("product", line.ProductID().String())
		}
		total = total.Add(p.FinalPrice().MulInt(line.Quantity()))
	}
	return total, nil
}

func (c *Cart) removeLine(productID kernel.UUID) bool {
	for i := range c.lines {
		if c.lines[i].ProductID().IsEqual(productID) {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
			return true
		}
	}
	return false
}

func (c *Cart) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.id = id
	return nil
}

func (c *Cart) setCustomerID(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return err
	}
	c.customerID = customerID
	return nil
}

func (c *Cart) setLines(lines []Line) error {
	for _, line := range lines {
		if err := line.Validate(); err != nil {
			return err
		}
	}
	c.lines = lines
	return nil
}
