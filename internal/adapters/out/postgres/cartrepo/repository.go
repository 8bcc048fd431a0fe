package cartrepo

import (
	"context"
	"errors"
	"time"

	"marketplace/internal/core/domain/model/cart"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormCartRepository implements CartRepository using GORM.
type GormCartRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormCartRepository creates a new GORM cart repository.
func NewGormCartRepository(db *gorm.DB, tracker aggregateTracker) *GormCartRepository {
	return &GormCartRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new cart with its lines to the database.
func (r *GormCartRepository) Add(ctx context.Context, aggregate *cart.Cart) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing cart to the database, replacing its line set.
// The map form is used for the cart row so deactivation, a transition to
// false, is not skipped as a zero value.
func (r *GormCartRepository) Update(ctx context.Context, aggregate *cart.Cart) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	db := r.db.WithContext(ctx)

	result := db.Model(&CartDTO{}).
		Where("id = ?", dto.ID).
		Updates(map[string]any{"is_active": dto.IsActive})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	if err := db.Where("cart_id = ?", dto.ID).Delete(&LineDTO{}).Error; err != nil {
		return err
	}

	if len(dto.Lines) > 0 {
		if err := db.Create(&dto.Lines).Error; err != nil {
			return err
		}
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// GetActiveByCustomer retrieves the customer's single active cart.
func (r *GormCartRepository) GetActiveByCustomer(ctx context.Context, customerID kernel.UUID) (*cart.Cart, error) {
	if err := customerID.Validate(); err != nil {
		return nil, err
	}

	var dto CartDTO
	err := r.db.WithContext(ctx).
		First(&dto, "customer_id = ? AND is_active", customerID.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("cart", customerID.String())
		}
		return nil, err
	}

	err = r.db.WithContext(ctx).
		Order("product_id").
		Find(&dto.Lines, "cart_id = ?", dto.ID).Error
	if err != nil {
		return nil, err
	}

	return toDomain(dto)
}

// PurgeDeactivatedBefore deletes deactivated carts created before the cutoff
// together with their lines and reports how many carts were removed.
func (r *GormCartRepository) PurgeDeactivatedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	db := r.db.WithContext(ctx)

	stale := db.Model(&CartDTO{}).
		Select("id").
		Where("NOT is_active AND created_at < ?", cutoff)

	if err := db.Where("cart_id IN (?)", stale).Delete(&LineDTO{}).Error; err != nil {
		return 0, err
	}

	result := db.Where("NOT is_active AND created_at < ?", cutoff).Delete(&CartDTO{})
	if result.Error != nil {
		return 0, result.Error
	}

	return result.RowsAffected, nil
}
