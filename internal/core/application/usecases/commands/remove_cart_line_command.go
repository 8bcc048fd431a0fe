package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/account"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/guard"
)

var ErrRemoveCartLineCommandIsNotConstructed = errors.New(
	"RemoveCartLineCommand must be created via NewRemoveCartLineCommand constructor",
)

// RemoveCartLineCommand deletes a product line from the customer's cart.
type RemoveCartLineCommand struct { //nolint:recvcheck //using for validation
	customer  account.Customer
	productID kernel.UUID

	guard guard.ConstructorGuard
}

// NewRemoveCartLineCommand creates a command to remove a cart line.
func NewRemoveCartLineCommand(customer account.Customer, productID kernel.UUID) (RemoveCartLineCommand, error) {
	cmd := RemoveCartLineCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setCustomer(customer),
		cmd.setProductID(productID),
	); err != nil {
		return RemoveCartLineCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c RemoveCartLineCommand) Validate() error {
	return c.guard.Validate(ErrRemoveCartLineCommandIsNotConstructed)
}

// Customer returns the acting customer principal.
func (c RemoveCartLineCommand) Customer() account.Customer {
	return c.customer
}

// ProductID returns the product whose line is removed.
func (c RemoveCartLineCommand) ProductID() kernel.UUID {
	return c.productID
}

func (c *RemoveCartLineCommand) setCustomer(customer account.Customer) error {
	if err := customer.Validate(); err != nil {
		return err
	}
	c.customer = customer
	return nil
}

func (c *RemoveCartLineCommand) setProductID(productID kernel.UUID) error {
	if err := productID.Validate(); err != nil {
		return err
	}
	c.productID = productID
	return nil
}
