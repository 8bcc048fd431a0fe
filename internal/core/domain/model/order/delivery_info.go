package order

import (
	"errors"
	"fmt"

	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

// Mode defines how the customer receives the order.
type Mode string

const (
	// ModePickup means the customer collects the order themselves.
	ModePickup Mode = "pickup"
	// ModeDelivery means a courier brings the order to the given address.
	ModeDelivery Mode = "delivery"
)

// ModeFromString parses a persisted mode name into a Mode.
func ModeFromString(s string) (Mode, error) {
	mode := Mode(s)
	if err := mode.Validate(); err != nil {
		return "", err
	}
	return mode, nil
}

// Validate checks that the mode is one of the defined values.
func (m Mode) Validate() error {
	switch m {
	case ModePickup, ModeDelivery:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("mode",
			fmt.Errorf("%q is not a valid mode", string(m)))
	}
}

// String returns the persisted name of the mode.
func (m Mode) String() string {
	return string(m)
}

// ErrDeliveryInfoIsNotConstructed is returned when a DeliveryInfo was not created via
// NewDeliveryInfo.
var ErrDeliveryInfoIsNotConstructed = errors.New("DeliveryInfo must be created via NewDeliveryInfo constructor")

// DeliveryInfo holds the fulfillment details captured at checkout: who receives
// the order, how, and where. The address is required for delivery and ignored
// for pickup. The free-delivery flag is decided once at checkout from the order
// total and never recomputed.
type DeliveryInfo struct {
	mode           Mode
	receiverName   string
	receiverPhone  string
	address        string
	description    string
	isFreeDelivery bool

	guard guard.ConstructorGuard
}

// NewDeliveryInfo creates the fulfillment details for an order.
// The address is mandatory when mode is delivery; description is optional
// free-form instructions for the courier.
func NewDeliveryInfo(mode Mode, receiverName, receiverPhone, address, description string,
	isFreeDelivery bool) (DeliveryInfo, error) {
	info := DeliveryInfo{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		info.setMode(mode),
		info.setReceiverName(receiverName),
		info.setReceiverPhone(receiverPhone),
	); err != nil {
		return DeliveryInfo{}, err
	}

	if mode == ModeDelivery && address == "" {
		return DeliveryInfo{}, errs.NewValueIsRequiredError("address")
	}

	info.address = address
	info.description = description
	info.isFreeDelivery = isFreeDelivery
	return info, nil
}

// Validate ensures the value was created through the constructor.
func (d DeliveryInfo) Validate() error {
	return d.guard.Validate(ErrDeliveryInfoIsNotConstructed)
}

// Mode returns the fulfillment mode.
func (d DeliveryInfo) Mode() Mode {
	return d.mode
}

// ReceiverName returns the name of the person receiving the order.
func (d DeliveryInfo) ReceiverName() string {
	return d.receiverName
}

// ReceiverPhone returns the contact phone of the receiver.
func (d DeliveryInfo) ReceiverPhone() string {
	return d.receiverPhone
}

// Address returns the delivery address. Empty for pickup orders.
func (d DeliveryInfo) Address() string {
	return d.address
}

// Description returns optional instructions for the courier.
func (d DeliveryInfo) Description() string {
	return d.description
}

// IsFreeDelivery reports whether the delivery fee was waived at checkout.
func (d DeliveryInfo) IsFreeDelivery() bool {
	return d.isFreeDelivery
}

func (d *DeliveryInfo) setMode(mode Mode) error {
	if err := mode.Validate(); err != nil {
		return err
	}
	d.mode = mode
	return nil
}

func (d *DeliveryInfo) setReceiverName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("receiver name")
	}
	d.receiverName = name
	return nil
}

func (d *DeliveryInfo) setReceiverPhone(phone string) error {
	if phone == "" {
		return errs.NewValueIsRequiredError("receiver phone")
	}
	d.receiverPhone = phone
	return nil
}
