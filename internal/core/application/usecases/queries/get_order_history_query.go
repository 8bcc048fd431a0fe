package queries

import (
	"errors"

	"marketplace/internal/core/domain/model/account"
	"marketplace/internal/pkg/guard"
)

var ErrGetOrderHistoryQueryIsNotConstructed = errors.New(
	"GetOrderHistoryQuery must be created via NewGetOrderHistoryQuery constructor",
)

// GetOrderHistoryQuery retrieves the customer's orders, newest first.
type GetOrderHistoryQuery struct {
	customer account.Customer

	guard guard.ConstructorGuard
}

// NewGetOrderHistoryQuery creates a query for the customer's order history.
func NewGetOrderHistoryQuery(customer account.Customer) (GetOrderHistoryQuery, error) {
	if err := customer.Validate(); err != nil {
		return GetOrderHistoryQuery{}, err
	}
	return GetOrderHistoryQuery{
		customer: customer,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrderHistoryQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderHistoryQueryIsNotConstructed)
}

// Customer returns the acting customer principal.
func (q GetOrderHistoryQuery) Customer() account.Customer {
	return q.customer
}
