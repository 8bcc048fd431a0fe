package queries

import (
	"errors"

	"marketplace/internal/core/domain/model/account"
	"marketplace/internal/pkg/guard"
)

var ErrGetAvailableOrdersQueryIsNotConstructed = errors.New(
	"GetAvailableOrdersQuery must be created via NewGetAvailableOrdersQuery constructor",
)

// GetAvailableOrdersQuery retrieves unassigned orders a courier can claim.
type GetAvailableOrdersQuery struct {
	courier account.Courier

	guard guard.ConstructorGuard
}

// NewGetAvailableOrdersQuery creates a query for claimable orders.
func NewGetAvailableOrdersQuery(courier account.Courier) (GetAvailableOrdersQuery, error) {
	if err := courier.Validate(); err != nil {
		return GetAvailableOrdersQuery{}, err
	}
	return GetAvailableOrdersQuery{
		courier: courier,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetAvailableOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetAvailableOrdersQueryIsNotConstructed)
}

// Courier returns the acting courier principal.
func (q GetAvailableOrdersQuery) Courier() account.Courier {
	return q.courier
}
