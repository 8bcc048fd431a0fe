package accountrepo

import (
	"context"
	"errors"

	"marketplace/internal/core/domain/model/account"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormAccountRepository implements AccountRepository using GORM.
type GormAccountRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormAccountRepository creates a new GORM account repository.
func NewGormAccountRepository(db *gorm.DB, tracker aggregateTracker) *GormAccountRepository {
	return &GormAccountRepository{
		db:      db,
		tracker: tracker,
	}
}

// Get retrieves an account by ID.
func (r *GormAccountRepository) Get(ctx context.Context, id kernel.UUID) (*account.Account, error) {
	return r.get(ctx, id, nil)
}

// GetWithLock retrieves an account and locks its row until the current
// transaction ends. Ledger mutations go through this method so concurrent
// balance updates serialize on the row.
func (r *GormAccountRepository) GetWithLock(ctx context.Context, id kernel.UUID) (*account.Account, error) {
	return r.get(ctx, id, &clause.Locking{Strength: "UPDATE"})
}

// Update saves an existing account to the database. The map form keeps a
// balance debited to zero from being skipped as a zero value.
func (r *GormAccountRepository) Update(ctx context.Context, acc *account.Account) error {
	if err := acc.Validate(); err != nil {
		return err
	}

	dto := fromDomain(acc)
	result := r.db.WithContext(ctx).
		Model(&AccountDTO{}).
		Where("id = ?", dto.ID).
		Updates(map[string]any{
			"email":   dto.Email,
			"name":    dto.Name,
			"role":    dto.Role,
			"balance": dto.Balance,
		})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.tracker.TrackAggregate(acc.ID(), acc)
	return nil
}

func (r *GormAccountRepository) get(ctx context.Context, id kernel.UUID, locking *clause.Locking) (*account.Account, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	db := r.db.WithContext(ctx)
	if locking != nil {
		db = db.Clauses(*locking)
	}

	var dto AccountDTO
	if err := db.First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("account", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}
