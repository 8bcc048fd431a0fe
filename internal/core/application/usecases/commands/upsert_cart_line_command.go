package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/account"
	"marketplace/internal/core/domain/model/cart"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var ErrUpsertCartLineCommandIsNotConstructed = errors.New(
	"UpsertCartLineCommand must be created via NewUpsertCartLineCommand constructor",
)

// UpsertCartLineCommand sets the quantity of a product in the customer's cart.
// Quantity 0 removes the line; a missing line with a positive quantity is
// created.
type UpsertCartLineCommand struct { //nolint:recvcheck //using for validation
	customer  account.Customer
	productID kernel.UUID
	quantity  int

	guard guard.ConstructorGuard
}

// NewUpsertCartLineCommand creates a command to set a cart line quantity.
func NewUpsertCartLineCommand(customer account.Customer, productID kernel.UUID,
	quantity int) (UpsertCartLineCommand, error) {
	cmd := UpsertCartLineCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setCustomer(customer),
		cmd.setProductID(productID),
		cmd.setQuantity(quantity),
	); err != nil {
		return UpsertCartLineCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c UpsertCartLineCommand) Validate() error {
	return c.guard.Validate(ErrUpsertCartLineCommandIsNotConstructed)
}

// Customer returns the acting customer principal.
func (c UpsertCartLineCommand) Customer() account.Customer {
	return c.customer
}

// ProductID returns the product whose line is being set.
func (c UpsertCartLineCommand) ProductID() kernel.UUID {
	return c.productID
}

// Quantity returns the requested quantity.
func (c UpsertCartLineCommand) Quantity() int {
	return c.quantity
}

func (c *UpsertCartLineCommand) setCustomer(customer account.Customer) error {
	if err := customer.Validate(); err != nil {
		return err
	}
	c.customer = customer
	return nil
}

func (c *UpsertCartLineCommand) setProductID(productID kernel.UUID) error {
	if err := productID.Validate(); err != nil {
		return err
	}
	c.productID = productID
	return nil
}

func (c *UpsertCartLineCommand) setQuantity(quantity int) error {
	if quantity < 0 || quantity > cart.MaxLineQuantity {
		return errs.NewValueIsOutOfRangeError("quantity", quantity, 0, cart.MaxLineQuantity)
	}
	c.quantity = quantity
	return nil
}
