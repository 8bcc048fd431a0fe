package commands

import (
	"context"
	"time"
)

// PurgeCartsCommandHandler deletes old deactivated carts.
// Checked-out carts stay behind as inactive rows; this keeps the table from
// growing without bound.
type PurgeCartsCommandHandler struct {
	uowFactory CartPurgeUoWFactory
}

// NewPurgeCartsCommandHandler creates a handler for cart purges.
func NewPurgeCartsCommandHandler(uowFactory CartPurgeUoWFactory) PurgeCartsCommandHandler {
	return PurgeCartsCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle deletes deactivated carts created before now minus the retention
// period and returns how many rows were removed.
func (h PurgeCartsCommandHandler) Handle(ctx context.Context, cmd PurgeCartsCommand) (int64, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	cutoff := time.Now().UTC().Add(-cmd.Retention())
	purged, err := uow.CartRepository().PurgeDeactivatedBefore(ctx, cutoff)
	if err != nil {
		return 0, err
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	return purged, nil
}
