package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/account"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/guard"
)

var ErrStartDeliveryCommandIsNotConstructed = errors.New(
	"StartDeliveryCommand must be created via NewStartDeliveryCommand constructor",
)

// StartDeliveryCommand marks an assigned order as on the way.
type StartDeliveryCommand struct { //nolint:recvcheck //using for validation
	courier account.Courier
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewStartDeliveryCommand creates a command to start a delivery.
func NewStartDeliveryCommand(courier account.Courier, orderID kernel.UUID) (StartDeliveryCommand, error) {
	cmd := StartDeliveryCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setCourier(courier),
		cmd.setOrderID(orderID),
	); err != nil {
		return StartDeliveryCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c StartDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrStartDeliveryCommandIsNotConstructed)
}

// Courier returns the acting courier principal.
func (c StartDeliveryCommand) Courier() account.Courier {
	return c.courier
}

// OrderID returns the order being delivered.
func (c StartDeliveryCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c *StartDeliveryCommand) setCourier(courier account.Courier) error {
	if err := courier.Validate(); err != nil {
		return err
	}
	c.courier = courier
	return nil
}

func (c *StartDeliveryCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}
