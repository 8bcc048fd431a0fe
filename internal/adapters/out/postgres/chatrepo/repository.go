package chatrepo

import (
	"context"
	"errors"

	"marketplace/internal/core/domain/model/chat"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormChatRepository implements ChatRepository using GORM.
type GormChatRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormChatRepository creates a new GORM chat channel repository.
func NewGormChatRepository(db *gorm.DB, tracker aggregateTracker) *GormChatRepository {
	return &GormChatRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new chat channel to the database.
func (r *GormChatRepository) Add(ctx context.Context, channel *chat.Channel) error {
	if err := channel.Validate(); err != nil {
		return err
	}

	dto := fromDomain(channel)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(channel.ID(), channel)
	return nil
}

// GetByOrder retrieves the channel attached to the given order.
func (r *GormChatRepository) GetByOrder(ctx context.Context, orderID kernel.UUID) (*chat.Channel, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dto ChannelDTO
	if err := r.db.WithContext(ctx).First(&dto, "order_id = ?", orderID.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("chat channel", orderID.String())
		}
		return nil, err
	}

	return toDomain(dto)
}
