// Package chat defines the delivery chat channel opened between a customer and
// the courier when an order is assigned. One channel exists per order, created
// inside the assignment transaction, so an assigned order always has a place to
// coordinate the handover.
package chat

import (
	"errors"
	"fmt"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/guard"
)

// ErrChannelIsNotConstructed is returned when a Channel was not created through
// the NewChannel or RestoreChannel factory methods.
var ErrChannelIsNotConstructed = errors.New("Channel must be created via NewChannel or RestoreChannel constructor")

// Channel is the per-order conversation between the customer and the assigned
// courier. Only those two accounts are participants.
type Channel struct {
	id         kernel.UUID
	orderID    kernel.UUID
	customerID kernel.UUID
	courierID  kernel.UUID
	name       string
	createdAt  time.Time

	guard guard.ConstructorGuard
}

// NewChannel opens a chat channel for the given order between its customer and
// the courier who claimed it.
func NewChannel(id, orderID, customerID, courierID kernel.UUID, now time.Time) (*Channel, error) {
	return RestoreChannel(id, orderID, customerID, courierID,
		fmt.Sprintf("order-%s", orderID), now)
}

// RestoreChannel reconstructs a chat channel from persistent storage.
func RestoreChannel(id, orderID, customerID, courierID kernel.UUID, name string,
	createdAt time.Time) (*Channel, error) {
	ch := &Channel{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		ch.setID(id),
		ch.setOrderID(orderID),
		ch.setCustomerID(customerID),
		ch.setCourierID(courierID),
	); err != nil {
		return nil, err
	}

	ch.name = name
	ch.createdAt = createdAt
	return ch, nil
}

// Validate ensures the channel was created through a constructor.
func (c *Channel) Validate() error {
	if c == nil {
		return ErrChannelIsNotConstructed
	}
	return c.guard.Validate(ErrChannelIsNotConstructed)
}

// ID returns the channel's unique identifier.
func (c *Channel) ID() kernel.UUID {
	return c.id
}

// OrderID returns the order this channel belongs to.
func (c *Channel) OrderID() kernel.UUID {
	return c.orderID
}

// CustomerID returns the customer participant.
func (c *Channel) CustomerID() kernel.UUID {
	return c.customerID
}

// CourierID returns the courier participant.
func (c *Channel) CourierID() kernel.UUID {
	return c.courierID
}

// Name returns the display name of the channel.
func (c *Channel) Name() string {
	return c.name
}

// CreatedAt returns when the channel was opened.
func (c *Channel) CreatedAt() time.Time {
	return c.createdAt
}

// IsParticipant reports whether the given account takes part in the channel.
func (c *Channel) IsParticipant(accountID kernel.UUID) bool {
	return c.customerID.IsEqual(accountID) || c.courierID.IsEqual(accountID)
}

func (c *Channel) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.id = id
	return nil
}

func (c *Channel) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *Channel) setCustomerID(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return err
	}
	c.customerID = customerID
	return nil
}

func (c *Channel) setCourierID(courierID kernel.UUID) error {
	if err := courierID.Validate(); err != nil {
		return err
	}
	c.courierID = courierID
	return nil
}
