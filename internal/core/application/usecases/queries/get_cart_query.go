package queries

import (
	"errors"

	"marketplace/internal/core/domain/model/account"
	"marketplace/internal/pkg/guard"
)

var ErrGetCartQueryIsNotConstructed = errors.New(
	"GetCartQuery must be created via NewGetCartQuery constructor",
)

// GetCartQuery retrieves the customer's active cart with priced lines.
type GetCartQuery struct {
	customer account.Customer

	guard guard.ConstructorGuard
}

// NewGetCartQuery creates a query for the customer's active cart.
func NewGetCartQuery(customer account.Customer) (GetCartQuery, error) {
	if err := customer.Validate(); err != nil {
		return GetCartQuery{}, err
	}
	return GetCartQuery{
		customer: customer,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetCartQuery) Validate() error {
	return q.guard.Validate(ErrGetCartQueryIsNotConstructed)
}

// Customer returns the acting customer principal.
func (q GetCartQuery) Customer() account.Customer {
	return q.customer
}

// CartLineView is one priced line of the cart response. The unit price is the
// catalog's current final price; cart totals are always derived, never stored.
type CartLineView struct {
	ProductID   string `json:"product_id"`
	ProductName string `json:"product_name"`
	Quantity    int    `json:"quantity"`
	UnitPrice   string `json:"unit_price"`
	LineTotal   string `json:"line_total"`
}

// GetCartQueryResponse is the customer's cart with derived totals.
type GetCartQueryResponse struct {
	ID    string         `json:"id"`
	Lines []CartLineView `json:"lines"`
	Total string         `json:"total"`
}
