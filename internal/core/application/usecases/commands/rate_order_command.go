package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/account"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var ErrRateOrderCommandIsNotConstructed = errors.New(
	"RateOrderCommand must be created via NewRateOrderCommand constructor",
)

// RateOrderCommand records the owner's rating of a delivered order.
type RateOrderCommand struct { //nolint:recvcheck //using for validation
	customer account.Customer
	orderID  kernel.UUID
	rating   int

	guard guard.ConstructorGuard
}

// NewRateOrderCommand creates a command to rate an order.
func NewRateOrderCommand(customer account.Customer, orderID kernel.UUID, rating int) (RateOrderCommand, error) {
	cmd := RateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setCustomer(customer),
		cmd.setOrderID(orderID),
		cmd.setRating(rating),
	); err != nil {
		return RateOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c RateOrderCommand) Validate() error {
	return c.guard.Validate(ErrRateOrderCommandIsNotConstructed)
}

// Customer returns the acting customer principal.
func (c RateOrderCommand) Customer() account.Customer {
	return c.customer
}

// OrderID returns the order being rated.
func (c RateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Rating returns the rating value.
func (c RateOrderCommand) Rating() int {
	return c.rating
}

func (c *RateOrderCommand) setCustomer(customer account.Customer) error {
	if err := customer.Validate(); err != nil {
		return err
	}
	c.customer = customer
	return nil
}

func (c *RateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *RateOrderCommand) setRating(rating int) error {
	if rating < order.MinRating || rating > order.MaxRating {
		return errs.NewValueIsOutOfRangeError("rating", rating, order.MinRating, order.MaxRating)
	}
	c.rating = rating
	return nil
}
