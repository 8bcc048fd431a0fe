package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/account"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var ErrCheckoutCommandIsNotConstructed = errors.New(
	"CheckoutCommand must be created via NewCheckoutCommand constructor",
)

// CheckoutCommand places an order from the customer's active cart.
// The order id is supplied by the caller so retries stay idempotent.
type CheckoutCommand struct { //nolint:recvcheck //using for validation
	customer      account.Customer
	orderID       kernel.UUID
	mode          order.Mode
	receiverName  string
	receiverPhone string
	address       string
	description   string

	guard guard.ConstructorGuard
}

// NewCheckoutCommand creates a command to place an order from the cart.
// The address requirement for delivery mode is enforced by the order
// aggregate, where the rule lives.
func NewCheckoutCommand(customer account.Customer, orderID kernel.UUID, mode order.Mode,
	receiverName, receiverPhone, address, description string) (CheckoutCommand, error) {
	cmd := CheckoutCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setCustomer(customer),
		cmd.setOrderID(orderID),
		cmd.setMode(mode),
		cmd.setReceiverName(receiverName),
		cmd.setReceiverPhone(receiverPhone),
	); err != nil {
		return CheckoutCommand{}, err
	}

	cmd.address = address
	cmd.description = description
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CheckoutCommand) Validate() error {
	return c.guard.Validate(ErrCheckoutCommandIsNotConstructed)
}

// Customer returns the acting customer principal.
func (c CheckoutCommand) Customer() account.Customer {
	return c.customer
}

// OrderID returns the identifier for the new order.
func (c CheckoutCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Mode returns the requested fulfillment mode.
func (c CheckoutCommand) Mode() order.Mode {
	return c.mode
}

// ReceiverName returns the name of the person receiving the order.
func (c CheckoutCommand) ReceiverName() string {
	return c.receiverName
}

// ReceiverPhone returns the contact phone of the receiver.
func (c CheckoutCommand) ReceiverPhone() string {
	return c.receiverPhone
}

// Address returns the delivery address. May be empty for pickup.
func (c CheckoutCommand) Address() string {
	return c.address
}

// Description returns optional instructions for the courier.
func (c CheckoutCommand) Description() string {
	return c.description
}

func (c *CheckoutCommand) setCustomer(customer account.Customer) error {
	if err := customer.Validate(); err != nil {
		return err
	}
	c.customer = customer
	return nil
}

func (c *CheckoutCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *CheckoutCommand) setMode(mode order.Mode) error {
	if err := mode.Validate(); err != nil {
		return err
	}
	c.mode = mode
	return nil
}

func (c *CheckoutCommand) setReceiverName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("receiver name")
	}
	c.receiverName = name
	return nil
}

func (c *CheckoutCommand) setReceiverPhone(phone string) error {
	if phone == "" {
		return errs.NewValueIsRequiredError("receiver phone")
	}
	c.receiverPhone = phone
	return nil
}
