package order

import (
	"errors"
	"fmt"
	"time"

	"marketplace/internal/core/domain/model/account"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

const (
	// MinRating is the lowest rating a customer may leave.
	MinRating = 1
	// MaxRating is the highest rating a customer may leave.
	MaxRating = 5
)

var (
	// ErrOrderIsNotConstructed is returned when an Order was not created through
	// the NewOrder or RestoreOrder factory methods.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder constructor")
	// ErrOrderHasNoLines is returned when placing an order without lines.
	ErrOrderHasNoLines = errs.NewValueIsRequiredError("order lines")
)

// Order is the aggregate root of the fulfillment lifecycle. It is created at
// checkout with immutable line snapshots and a captured total, then advances
// through the status state machine as couriers claim and deliver it.
//
// The total is derived from the captured lines and never changes after
// checkout, so cancellation refunds exactly what was charged.
type Order struct {
	id            kernel.UUID
	customerID    kernel.UUID
	courierID     *kernel.UUID
	chatChannelID *kernel.UUID
	status        Status
	lines         []Line
	total         kernel.Money
	deliveryInfo  DeliveryInfo
	rating        *int

	createdAt         time.Time
	assignedAt        *time.Time
	deliveryStartedAt *time.Time
	deliveredAt       *time.Time
	cancelledAt       *time.Time

	guard guard.ConstructorGuard
}

// NewOrder places a new order from the given line snapshots.
//
// The order total is the sum of the line totals. Delivery is free when the
// total reaches freeDeliveryThreshold, regardless of mode; the flag is decided
// here and never recomputed. The order starts in status New with no courier.
func NewOrder(
	id, customerID kernel.UUID,
	lines []Line,
	mode Mode,
	receiverName, receiverPhone, address, description string,
	freeDeliveryThreshold kernel.Money,
	now time.Time,
) (*Order, error) {
	if len(lines) == 0 {
		return nil, ErrOrderHasNoLines
	}

	total := kernel.ZeroMoney()
	for _, line := range lines {
		if err := line.Validate(); err != nil {
			return nil, err
		}
		total = total.Add(line.Total())
	}

	isFreeDelivery := total.GreaterThanOrEqual(freeDeliveryThreshold)
	info, err := NewDeliveryInfo(mode, receiverName, receiverPhone, address, description, isFreeDelivery)
	if err != nil {
		return nil, err
	}

	return RestoreOrder(RestoreOrderParams{
		ID:           id,
		CustomerID:   customerID,
		Status:       New,
		Lines:        lines,
		DeliveryInfo: info,
		CreatedAt:    now,
	})
}

// RestoreOrderParams carries the full persisted state of an order.
type RestoreOrderParams struct {
	ID            kernel.UUID
	CustomerID    kernel.UUID
	CourierID     *kernel.UUID
	ChatChannelID *kernel.UUID
	Status        Status
	Lines         []Line
	DeliveryInfo  DeliveryInfo
	Rating        *int

	CreatedAt         time.Time
	AssignedAt        *time.Time
	DeliveryStartedAt *time.Time
	DeliveredAt       *time.Time
	CancelledAt       *time.Time
}

// RestoreOrder reconstructs an order from persistent storage.
// The total is recomputed from the captured lines.
func RestoreOrder(params RestoreOrderParams) (*Order, error) {
	o := &Order{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(params.ID),
		o.setCustomerID(params.CustomerID),
		o.setStatus(params.Status),
		o.setLines(params.Lines),
		o.setDeliveryInfo(params.DeliveryInfo),
		o.setCourierID(params.CourierID),
		o.setRating(params.Rating),
	); err != nil {
		return nil, err
	}

	if err := params.Status.ValidateCanHaveCourier(params.CourierID != nil); err != nil {
		return nil, err
	}

	o.chatChannelID = params.ChatChannelID
	o.createdAt = params.CreatedAt
	o.assignedAt = params.AssignedAt
	o.deliveryStartedAt = params.DeliveryStartedAt
	o.deliveredAt = params.DeliveredAt
	o.cancelledAt = params.CancelledAt
	return o, nil
}

// Validate ensures the order was created through a constructor.
func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// CustomerID returns the customer who placed the order.
func (o *Order) CustomerID() kernel.UUID {
	return o.customerID
}

// CourierID returns the assigned courier, or nil before assignment.
func (o *Order) CourierID() *kernel.UUID {
	return o.courierID
}

// ChatChannelID returns the chat channel opened at assignment, or nil before it.
func (o *Order) ChatChannelID() *kernel.UUID {
	return o.chatChannelID
}

// Status returns the current lifecycle status.
func (o *Order) Status() Status {
	return o.status
}

// Lines returns a copy of the captured order lines.
func (o *Order) Lines() []Line {
	lines := make([]Line, len(o.lines))
	copy(lines, o.lines)
	return lines
}

// Total returns the order total captured at checkout.
func (o *Order) Total() kernel.Money {
	return o.total
}

// DeliveryInfo returns the fulfillment details captured at checkout.
func (o *Order) DeliveryInfo() DeliveryInfo {
	return o.deliveryInfo
}

// Rating returns the customer's rating, or nil when not rated yet.
func (o *Order) Rating() *int {
	return o.rating
}

// CreatedAt returns the checkout time.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// AssignedAt returns when a courier claimed the order, or nil.
func (o *Order) AssignedAt() *time.Time {
	return o.assignedAt
}

// DeliveryStartedAt returns when the courier started delivering, or nil.
func (o *Order) DeliveryStartedAt() *time.Time {
	return o.deliveryStartedAt
}

// DeliveredAt returns when the order was delivered, or nil.
func (o *Order) DeliveredAt() *time.Time {
	return o.deliveredAt
}

// CancelledAt returns when the order was cancelled, or nil.
func (o *Order) CancelledAt() *time.Time {
	return o.cancelledAt
}

// IsOwnedBy reports whether the given customer placed this order.
func (o *Order) IsOwnedBy(customer account.Customer) bool {
	return o.customerID.IsEqual(customer.ID())
}

// Assign claims the order for the given courier and attaches the chat channel
// opened for the delivery.
//
// Only orders in status New can be claimed; a ConflictError otherwise means a
// concurrent courier won the race or the order left the lifecycle.
func (o *Order) Assign(courier account.Courier, chatChannelID kernel.UUID, now time.Time) error {
	if err := courier.Validate(); err != nil {
		return err
	}
	if err := chatChannelID.Validate(); err != nil {
		return err
	}

	status, err := o.status.Assign()
	if err != nil {
		return err
	}

	courierID := courier.ID()
	o.status = status
	o.courierID = &courierID
	o.chatChannelID = &chatChannelID
	o.assignedAt = &now
	return nil
}

// StartDelivery marks the order as on the way.
// Only the assigned courier may start the delivery.
func (o *Order) StartDelivery(courier account.Courier, now time.Time) error {
	if err := o.checkAssignedCourier(courier); err != nil {
		return err
	}

	status, err := o.status.StartDelivery()
	if err != nil {
		return err
	}

	o.status = status
	o.deliveryStartedAt = &now
	return nil
}

// CompleteDelivery marks the order as delivered.
// Only the assigned courier may complete the delivery.
func (o *Order) CompleteDelivery(courier account.Courier, now time.Time) error {
	if err := o.checkAssignedCourier(courier); err != nil {
		return err
	}

	status, err := o.status.CompleteDelivery()
	if err != nil {
		return err
	}

	o.status = status
	o.deliveredAt = &now
	return nil
}

// Cancel aborts the order on behalf of its owner. Allowed while the order is
// New or Assigned; once delivery starts the order can no longer be cancelled.
// The caller is responsible for refunding Total to the customer.
func (o *Order) Cancel(customer account.Customer, now time.Time) error {
	if err := customer.Validate(); err != nil {
		return err
	}
	if !o.IsOwnedBy(customer) {
		return errs.NewForbiddenError("order belongs to another customer")
	}

	status, err := o.status.Cancel()
	if err != nil {
		return err
	}

	o.status = status
	o.cancelledAt = &now
	return nil
}

// Rate records the owner's rating of a delivered order.
// The rating must be within [MinRating, MaxRating] and can be set only once.
func (o *Order) Rate(customer account.Customer, rating int) error {
	if err := customer.Validate(); err != nil {
		return err
	}
	if !o.IsOwnedBy(customer) {
		return errs.NewForbiddenError("order belongs to another customer")
	}
	if o.status != Delivered {
		return errs.NewConflictErrorWithCause(
			"only delivered orders can be rated",
			fmt.Errorf("status is %s", o.status),
		)
	}
	if o.rating != nil {
		return errs.NewConflictError("order is already rated")
	}
	if rating < MinRating || rating > MaxRating {
		return errs.NewValueIsOutOfRangeError("rating", rating, MinRating, MaxRating)
	}

	o.rating = &rating
	return nil
}

func (o *Order) checkAssignedCourier(courier account.Courier) error {
	if err := courier.Validate(); err != nil {
		return err
	}
	if o.courierID == nil || !o.courierID.IsEqual(courier.ID()) {
		return errs.NewForbiddenError("order is assigned to another courier")
	}
	return nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setCustomerID(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return err
	}
	o.customerID = customerID
	return nil
}

func (o *Order) setCourierID(courierID *kernel.UUID) error {
	if courierID == nil {
		return nil
	}
	if err := courierID.Validate(); err != nil {
		return err
	}
	o.courierID = courierID
	return nil
}

func (o *Order) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	o.status = status
	return nil
}

func (o *Order) setLines(lines []Line) error {
	if len(lines) == 0 {
		return ErrOrderHasNoLines
	}

	total := kernel.ZeroMoney()
	for _, line := range lines {
		if err := line.Validate(); err != nil {
			return err
		}
		total = total.Add(line.Total())
	}

	o.lines = lines
	o.total = total
	return nil
}

func (o *Order) setDeliveryInfo(info DeliveryInfo) error {
	if err := info.Validate(); err != nil {
		return err
	}
	o.deliveryInfo = info
	return nil
}

func (o *Order) setRating(rating *int) error {
	if rating == nil {
		return nil
	}
	if *rating < MinRating || *rating > MaxRating {
		return errs.NewValueIsOutOfRangeError("rating", *rating, MinRating, MaxRating)
	}
	o.rating = rating
	return nil
}
