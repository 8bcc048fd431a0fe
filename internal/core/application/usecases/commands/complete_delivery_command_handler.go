package commands

import (
	"context"
	"log/slog"
	"time"

	"marketplace/internal/core/ports"
)

// CompleteDeliveryCommandHandler marks a delivering order as delivered.
type CompleteDeliveryCommandHandler struct {
	uowFactory OrderUoWFactory
	cache      ports.OrderHistoryCache
	notifier   ports.Notifier
	logger     *slog.Logger
}

// NewCompleteDeliveryCommandHandler creates a handler for completing deliveries.
func NewCompleteDeliveryCommandHandler(uowFactory OrderUoWFactory, cache ports.OrderHistoryCache,
	notifier ports.Notifier, logger *slog.Logger) CompleteDeliveryCommandHandler {
	return CompleteDeliveryCommandHandler{
		uowFactory: uowFactory,
		cache:      cache,
		notifier:   notifier,
		logger:     logger,
	}
}

// Handle moves the order to delivered and notifies the customer. Only the
// assigned courier may complete the delivery.
func (h CompleteDeliveryCommandHandler) Handle(ctx context.Context, cmd CompleteDeliveryCommand) error {
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

	if err = o.CompleteDelivery(cmd.Courier(), time.Now().UTC()); err != nil {
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
	if err = h.notifier.Notify(ctx, customer.Email(), "Your order has been delivered! Thank you for choosing us!"); err != nil {
		h.logger.WarnContext(ctx, "Customer notification failed",
			"order_id", o.ID().String(), "error", err)
	}
	return nil
}
