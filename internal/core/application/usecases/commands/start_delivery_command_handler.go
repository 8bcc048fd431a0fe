package commands

import (
	"context"
	"log/slog"
	"time"

	"marketplace/internal/core/ports"
)

// StartDeliveryCommandHandler marks an assigned order as on the way.
type StartDeliveryCommandHandler struct {
	uowFactory OrderUoWFactory
	cache      ports.OrderHistoryCache
	notifier   ports.Notifier
	logger     *slog.Logger
}

// NewStartDeliveryCommandHandler creates a handler for starting deliveries.
func NewStartDeliveryCommandHandler(uowFactory OrderUoWFactory, cache ports.OrderHistoryCache,
	notifier ports.Notifier, logger *slog.Logger) StartDeliveryCommandHandler {
	return StartDeliveryCommandHandler{
		uowFactory: uowFactory,
		cache:      cache,
		notifier:   notifier,
		logger:     logger,
	}
}

// Handle moves the order to delivering and notifies the customer. Only the
// assigned courier may start the delivery.
func (h StartDeliveryCommandHandler) Handle(ctx context.Context, cmd StartDeliveryCommand) error {
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

	if err = o.StartDelivery(cmd.Courier(), time.Now().UTC()); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return err
	}

	customer, err := uow.AccountRepository().Get(ctx, o.CustomerID())
	if err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	// best effort once committed
	if err = h.cache.Invalidate(ctx, ports.OrderHistoryCacheKey(o.CustomerID())); err != nil {
		h.logger.WarnContext(ctx, "Order history cache invalidation failed",
			"order_id", o.ID().String(), "error", err)
	}
	if err = h.notifier.Notify(ctx, customer.Email(), "Your courier is on the way with your order!"); err != nil {
		h.logger.WarnContext(ctx, "Customer notification failed",
			"order_id", o.ID().String(), "error", err)
	}
	return nil
}
