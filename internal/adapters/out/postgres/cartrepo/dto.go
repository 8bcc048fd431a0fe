// Package cartrepo provides data transfer objects and mapping functions for
// cart persistence. A cart maps to the carts table plus one row per line in
// cart_lines; updates replace the line set wholesale since carts are small.
package cartrepo

import (
	"time"

	"marketplace/internal/core/domain/model/cart"
	"marketplace/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// CartDTO represents the database structure for persisting cart aggregates.
type CartDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	CustomerID uuid.UUID `gorm:"type:uuid;index"`
	IsActive   bool      `gorm:"index"`
	CreatedAt  time.Time
	Lines      []LineDTO `gorm:"foreignKey:CartID;references:ID"`
}

// TableName specifies the database table name for cart entities.
func (CartDTO) TableName() string {
	return "carts"
}

// LineDTO represents a single product line of a cart.
type LineDTO struct {
	CartID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	ProductID uuid.UUID `gorm:"type:uuid;primaryKey"`
	Quantity  int
}

// TableName specifies the database table name for cart lines.
func (LineDTO) TableName() string {
	return "cart_lines"
}

// fromDomain converts a cart domain aggregate to its database representation.
func fromDomain(aggregate *cart.Cart) CartDTO {
	lines := make([]LineDTO, 0, len(aggregate.Lines()))
	for _, line := range aggregate.Lines() {
		lines = append(lines, LineDTO{
			CartID:    aggregate.ID().Bytes(),
			ProductID: line.ProductID().Bytes(),
			Quantity:  line.Quantity(),
		})
	}

	return CartDTO{
		ID:         aggregate.ID().Bytes(),
		CustomerID: aggregate.CustomerID().Bytes(),
		IsActive:   aggregate.IsActive(),
		CreatedAt:  aggregate.CreatedAt(),
		Lines:      lines,
	}
}

// toDomain converts a database DTO to a cart domain aggregate.
func toDomain(dto CartDTO) (*cart.Cart, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}

	lines := make([]cart.Line, 0, len(dto.Lines))
	for _, lineDTO := range dto.Lines {
		productID, lineErr := kernel.UUIDFromBytes(lineDTO.ProductID[:])
		if lineErr != nil {
			return nil, lineErr
		}

		line, lineErr := cart.NewLine(productID, lineDTO.Quantity)
		if lineErr != nil {
			return nil, lineErr
		}
		lines = append(lines, line)
	}

	return cart.RestoreCart(id, customerID, dto.IsActive, lines, dto.CreatedAt)
}
