package queries

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"marketplace/internal/core/domain/model/kernel"
)

// GetCartQueryHandler reads the customer's active cart with current catalog
// prices. A customer without an active cart gets an empty response, matching
// the lazily created write side.
type GetCartQueryHandler struct {
	db *gorm.DB
}

// NewGetCartQueryHandler creates a handler for cart reads.
func NewGetCartQueryHandler(db *gorm.DB) GetCartQueryHandler {
	return GetCartQueryHandler{db: db}
}

// Handle returns the cart lines priced at the catalog's current final prices
// and the derived total.
func (h GetCartQueryHandler) Handle(ctx context.Context, query GetCartQuery) (GetCartQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetCartQueryResponse{}, err
	}

	db := h.db.WithContext(ctx)

	var cartID uuid.UUID
	err := db.Raw(`
		SELECT id
		FROM carts
		WHERE customer_id = ? AND is_active
	`, query.Customer().ID().Bytes()).Row().Scan(&cartID)
	if errors.Is(err, sql.ErrNoRows) || errors.Is(err, gorm.ErrRecordNotFound) {
		return emptyCartResponse(), nil
	}
	if err != nil {
		return GetCartQueryResponse{}, err
	}

	rows, err := db.Raw(`
		SELECT
			p.id,
			p.name,
			cl.quantity,
			COALESCE(p.discounted_price, p.original_price) AS unit_price
		FROM cart_lines cl
		JOIN products p ON p.id = cl.product_id
		WHERE cl.cart_id = ?
		ORDER BY p.name
	`, cartID).Rows()
	if err != nil {
		return GetCartQueryResponse{}, err
	}
	defer rows.Close()

	response := GetCartQueryResponse{
		ID:    cartID.String(),
		Lines: make([]CartLineView, 0),
	}
	total := kernel.ZeroMoney()

	for rows.Next() {
		var productID uuid.UUID
		var name, unitPrice string
		var quantity int

		if err = rows.Scan(&productID, &name, &quantity, &unitPrice); err != nil {
			return GetCartQueryResponse{}, err
		}

		price, priceErr := kernel.MoneyFromString(unitPrice)
		if priceErr != nil {
			return GetCartQueryResponse{}, priceErr
		}
		lineTotal := price.MulInt(quantity)
		total = total.Add(lineTotal)

		response.Lines = append(response.Lines, CartLineView{
			ProductID:   productID.String(),
			ProductName: name,
			Quantity:    quantity,
			UnitPrice:   price.String(),
			LineTotal:   lineTotal.String(),
		})
	}

	if err = rows.Err(); err != nil {
		return GetCartQueryResponse{}, err
	}

	response.Total = total.String()
	return response, nil
}

func emptyCartResponse() GetCartQueryResponse {
	return GetCartQueryResponse{
		Lines: make([]CartLineView, 0),
		Total: kernel.ZeroMoney().String(),
	}
}
