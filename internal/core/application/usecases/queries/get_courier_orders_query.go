package queries

import (
	"errors"
	"fmt"

	"marketplace/internal/core/domain/model/account"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var ErrGetCourierOrdersQueryIsNotConstructed = errors.New(
	"GetCourierOrdersQuery must be created via NewGetCourierOrdersQuery constructor",
)

// CourierOrdersScope selects which part of a courier's workload to list.
type CourierOrdersScope string

const (
	// CourierOrdersActive lists assigned and delivering orders.
	CourierOrdersActive CourierOrdersScope = "active"
	// CourierOrdersCompleted lists delivered orders.
	CourierOrdersCompleted CourierOrdersScope = "completed"
)

// Validate checks that the scope is one of the defined values.
func (s CourierOrdersScope) Validate() error {
	switch s {
	case CourierOrdersActive, CourierOrdersCompleted:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("scope",
			fmt.Errorf("%q is not a valid courier orders scope", string(s)))
	}
}

// GetCourierOrdersQuery retrieves the courier's own orders, either the active
// workload or the finished deliveries.
type GetCourierOrdersQuery struct {
	courier account.Courier
	scope   CourierOrdersScope

	guard guard.ConstructorGuard
}

// NewGetCourierOrdersQuery creates a query for a courier's orders.
func NewGetCourierOrdersQuery(courier account.Courier, scope CourierOrdersScope) (GetCourierOrdersQuery, error) {
	if err := errors.Join(courier.Validate(), scope.Validate()); err != nil {
		return GetCourierOrdersQuery{}, err
	}
	return GetCourierOrdersQuery{
		courier: courier,
		scope:   scope,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetCourierOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetCourierOrdersQueryIsNotConstructed)
}

// Courier returns the acting courier principal.
func (q GetCourierOrdersQuery) Courier() account.Courier {
	return q.courier
}

// Scope returns the selected listing scope.
func (q GetCourierOrdersQuery) Scope() CourierOrdersScope {
	return q.scope
}
