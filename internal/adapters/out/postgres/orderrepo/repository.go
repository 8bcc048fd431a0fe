package orderrepo

import (
	"context"
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// lockNotAvailable is the postgres error code returned by FOR UPDATE NOWAIT
// when another transaction holds the row lock.
const lockNotAvailable = "55P03"

// GormOrderRepository implements OrderRepository using GORM.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new order with its lines to the database.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
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

// Update saves an existing order to the database. Lines are written once at
// checkout so only the order row is touched.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("id = ?", dto.ID).
		Omit(clause.Associations).
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves an order by ID.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	return r.get(ctx, id, nil)
}

// GetWithLock retrieves an order and locks its row until the current
// transaction ends.
func (r *GormOrderRepository) GetWithLock(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	return r.get(ctx, id, &clause.Locking{Strength: "UPDATE"})
}

// GetForAssignment retrieves an unassigned order in status new, locking the
// row without waiting. A concurrent claim holding the lock, or an order that
// has already been claimed or cancelled, yields ConflictError immediately so
// the losing courier does not queue behind the winner.
func (r *GormOrderRepository) GetForAssignment(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE", Options: "NOWAIT"}).
		First(&dto, "id = ? AND status = ? AND courier_id IS NULL", id.Bytes(), order.New.String()).Error
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == lockNotAvailable {
			return nil, errs.NewConflictError("order is no longer available")
		}
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, r.claimMissError(ctx, id)
		}
		return nil, err
	}

	if err := r.loadLines(ctx, &dto); err != nil {
		return nil, err
	}

	return toDomain(dto)
}

func (r *GormOrderRepository) get(ctx context.Context, id kernel.UUID, locking *clause.Locking) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	db := r.db.WithContext(ctx)
	if locking != nil {
		db = db.Clauses(*locking)
	}

	var dto OrderDTO
	if err := db.First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, err
	}

	if err := r.loadLines(ctx, &dto); err != nil {
		return nil, err
	}

	return toDomain(dto)
}

// loadLines fetches the order lines separately because the claim and lock
// queries must not spread FOR UPDATE onto the join.
func (r *GormOrderRepository) loadLines(ctx context.Context, dto *OrderDTO) error {
	return r.db.WithContext(ctx).
		Order("product_id").
		Find(&dto.Lines, "order_id = ?", dto.ID).Error
}

// claimMissError distinguishes an order that never existed from one that is
// simply not claimable anymore.
func (r *GormOrderRepository) claimMissError(ctx context.Context, id kernel.UUID) error {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("id = ?", id.Bytes()).
		Count(&count).Error; err != nil {
		return err
	}

	if count == 0 {
		return errs.NewObjectNotFoundError("order", id.String())
	}
	return errs.NewConflictError("order is no longer available")
}
