package commands

import (
	"context"
	"log/slog"

	"marketplace/internal/core/ports"
)

// RateOrderCommandHandler records the owner's rating of a delivered order.
type RateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	cache      ports.OrderHistoryCache
	logger     *slog.Logger
}

// NewRateOrderCommandHandler creates a handler for order ratings.
func NewRateOrderCommandHandler(uowFactory OrderUoWFactory, cache ports.OrderHistoryCache,
	logger *slog.Logger) RateOrderCommandHandler {
	return RateOrderCommandHandler{
		uowFactory: uowFactory,
		cache:      cache,
		logger:     logger,
	}
}

// Handle stores the rating. Only the owner may rate, only delivered orders can
// be rated, and only once.
func (h RateOrderCommandHandler) Handle(ctx context.Context, cmd RateOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()

	o, err := orderRepo.GetWithLock(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if err = o.Rate(cmd.Customer(), cmd.Rating()); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	// the history payload includes the rating
	if err = h.cache.Invalidate(ctx, ports.OrderHistoryCacheKey(cmd.Customer().ID())); err != nil {
		h.logger.WarnContext(ctx, "Order history cache invalidation failed",
			"order_id", o.ID().String(), "error", err)
	}
	return nil
}
