package cart

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

const (
	// MinLineQuantity is the smallest quantity a stored cart line may hold.
	MinLineQuantity = 1
	// MaxLineQuantity is the largest quantity a single cart line may hold.
	MaxLineQuantity = 100
)

// ErrLineIsNotConstructed is returned when a Line was not created via NewLine.
var ErrLineIsNotConstructed = errors.New("Line must be created via NewLine constructor")

// Line is a product reference plus a positive quantity inside a cart.
// A cart holds at most one line per product.
type Line struct {
	productID kernel.UUID
	quantity  int

	guard guard.ConstructorGuard
}

// NewLine creates a cart line. Quantity must be within [MinLineQuantity, MaxLineQuantity].
func NewLine(productID kernel.UUID, quantity int) (Line, error) {
	line := Line{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		line.setProductID(productID),
		line.setQuantity(quantity),
	); err != nil {
		return Line{}, err
	}

	return line, nil
}

// Validate ensures the line was created through the constructor.
func (l Line) Validate() error {
	return l.guard.Validate(ErrLineIsNotConstructed)
}

// ProductID returns the product this line refers to.
func (l Line) ProductID() kernel.UUID {
	return l.productID
}

// Quantity returns the ordered quantity.
func (l Line) Quantity() int {
	return l.quantity
}

func (l *Line) setProductID(productID kernel.UUID) error {
	if err := productID.Validate(); err != nil {
		return err
	}
	l.productID = productID
	return nil
}

func (l *Line) setQuantity(quantity int) error {
	if quantity < MinLineQuantity || quantity > MaxLineQuantity {
		return errs.NewValueIsOutOfRangeError("quantity", quantity, MinLineQuantity, MaxLineQuantity)
	}
	l.quantity = quantity
	return nil
}
