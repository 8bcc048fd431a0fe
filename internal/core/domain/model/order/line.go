package order

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

const (
	// MinLineQuantity is the smallest quantity an order line may hold.
	MinLineQuantity = 1
	// MaxLineQuantity is the largest quantity a single order line may hold.
	MaxLineQuantity = 100
)

// ErrLineIsNotConstructed is returned when a Line was not created via NewLine.
var ErrLineIsNotConstructed = errors.New("Line must be created via NewLine constructor")

// Line is an immutable snapshot of one cart line at checkout time. The unit
// price is captured from the product's final price when the order is placed, so
// later catalog price changes never affect an existing order.
type Line struct {
	productID kernel.UUID
	quantity  int
	unitPrice kernel.Money

	guard guard.ConstructorGuard
}

// NewLine creates an order line with the captured unit price.
func NewLine(productID kernel.UUID, quantity int, unitPrice kernel.Money) (Line, error) {
	line := Line{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		line.setProductID(productID),
		line.setQuantity(quantity),
	); err != nil {
		return Line{}, err
	}

	line.unitPrice = unitPrice
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

// UnitPrice returns the per-unit price captured at checkout.
func (l Line) UnitPrice() kernel.Money {
	return l.unitPrice
}

// Total returns quantity times the captured unit price.
func (l Line) Total() kernel.Money {
	return l.unitPrice.MulInt(l.quantity)
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
