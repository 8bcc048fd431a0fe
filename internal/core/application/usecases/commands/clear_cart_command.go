package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/account"
	"marketplace/internal/pkg/guard"
)

var ErrClearCartCommandIsNotConstructed = errors.New(
	"ClearCartCommand must be created via NewClearCartCommand constructor",
)

// ClearCartCommand empties the customer's cart.
type ClearCartCommand struct { //nolint:recvcheck //using for validation
	customer account.Customer

	guard guard.ConstructorGuard
}

// NewClearCartCommand creates a command to empty the customer's cart.
func NewClearCartCommand(customer account.Customer) (ClearCartCommand, error) {
	if err := customer.Validate(); err != nil {
		return ClearCartCommand{}, err
	}
	return ClearCartCommand{
		customer: customer,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c ClearCartCommand) Validate() error {
	return c.guard.Validate(ErrClearCartCommandIsNotConstructed)
}

// Customer returns the acting customer principal.
func (c ClearCartCommand) Customer() account.Customer {
	return c.customer
}
