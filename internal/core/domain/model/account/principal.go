package account

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/guard"
)

var (
	// ErrCustomerIsNotConstructed is returned when a Customer principal was not derived
	// from an account or created via NewCustomer.
	ErrCustomerIsNotConstructed = errors.New("Customer must be created via NewCustomer constructor")
	// ErrCourierIsNotConstructed is returned when a Courier principal was not derived
	// from an account or created via NewCourier.
	ErrCourierIsNotConstructed = errors.New("Courier must be created via NewCourier constructor")
)

// Customer is the capability-typed principal for customer-scoped operations:
// cart mutation, checkout, cancellation, rating, order history.
// Holding a Customer value proves that the role check already happened at the
// boundary, so use cases never re-check role strings.
type Customer struct {
	id    kernel.UUID
	guard guard.ConstructorGuard
}

// NewCustomer creates a customer principal for the given account id.
// Outside tests, principals are normally derived via Account.AsCustomer.
func NewCustomer(id kernel.UUID) (Customer, error) {
	if err := id.Validate(); err != nil {
		return Customer{}, err
	}
	return Customer{id: id, guard: guard.NewConstructorGuard()}, nil
}

// ID returns the account id behind the principal.
func (c Customer) ID() kernel.UUID {
	return c.id
}

// Validate ensures the principal was created through a constructor.
func (c Customer) Validate() error {
	return c.guard.Validate(ErrCustomerIsNotConstructed)
}

// Courier is the capability-typed principal for courier-scoped operations:
// claiming orders, starting and completing deliveries, courier order listings.
type Courier struct {
	id    kernel.UUID
	guard guard.ConstructorGuard
}

// NewCourier creates a courier principal for the given account id.
// Outside tests, principals are normally derived via Account.AsCourier.
func NewCourier(id kernel.UUID) (Courier, error) {
	if err := id.Validate(); err != nil {
		return Courier{}, err
	}
	return Courier{id: id, guard: guard.NewConstructorGuard()}, nil
}

// ID returns the account id behind the principal.
func (c Courier) ID() kernel.UUID {
	return c.id
}

// Validate ensures the principal was created through a constructor.
func (c Courier) Validate() error {
	return c.guard.Validate(ErrCourierIsNotConstructed)
}
