// Package productrepo provides the read-side mapping for the product catalog.
// The order flow never mutates products, so the repository exposes lookups only.
package productrepo

import (
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/product"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductDTO represents the database structure for catalog products.
type ProductDTO struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name            string
	OriginalPrice   decimal.Decimal  `gorm:"type:numeric(12,2)"`
	DiscountedPrice *decimal.Decimal `gorm:"type:numeric(12,2)"`
	StockQuantity   int
	IsAvailable     bool
}

// TableName specifies the database table name for product entities.
func (ProductDTO) TableName() string {
	return "products"
}

// toDomain converts a database DTO to a product domain entity.
func toDomain(dto ProductDTO) (*product.Product, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	originalPrice, err := kernel.NewMoney(dto.OriginalPrice)
	if err != nil {
		return nil, err
	}

	var discountedPrice *kernel.Money
	if dto.DiscountedPrice != nil {
		value, priceErr := kernel.NewMoney(*dto.DiscountedPrice)
		if priceErr != nil {
			return nil, priceErr
		}
		discountedPrice = &value
	}

	return product.RestoreProduct(id, dto.Name, originalPrice, discountedPrice,
		dto.StockQuantity, dto.IsAvailable)
}
