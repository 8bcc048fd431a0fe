package commands

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"marketplace/internal/core/ports"
)

// CancelOrderCommandHandler aborts an order and refunds the customer.
//
// Cancellation is allowed while the order is new or assigned. The refund is
// exactly the order total captured at checkout, credited in the same
// transaction that flips the status, so money and state never diverge.
type CancelOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	cache      ports.OrderHistoryCache
	notifier   ports.Notifier
	logger     *slog.Logger
}

// NewCancelOrderCommandHandler creates a handler for order cancellations.
func NewCancelOrderCommandHandler(uowFactory OrderUoWFactory, cache ports.OrderHistoryCache,
	notifier ports.Notifier, logger *slog.Logger) CancelOrderCommandHandler {
	return CancelOrderCommandHandler{
		uowFactory: uowFactory,
		cache:      cache,
		notifier:   notifier,
		logger:     logger,
	}
}

// Handle cancels the order, refunds its total to the owner's balance and, when
// a courier was already assigned, notifies the courier.
func (h CancelOrderCommandHandler) Handle(ctx context.Context, cmd CancelOrderCommand) error {
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
	accountRepo := uow.AccountRepository()

	o, err := orderRepo.GetWithLock(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if err = o.Cancel(cmd.Customer(), time.Now().UTC()); err != nil {
		return err
	}

	acc, err := accountRepo.GetWithLock(ctx, cmd.Customer().ID())
	if err != nil {
		return err
	}
	acc.Credit(o.Total())
	if err = accountRepo.Update(ctx, acc); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return err
	}

	var courierEmail string
	if o.CourierID() != nil {
		courier, err := accountRepo.Get(ctx, *o.CourierID())
		if err != nil {
			return err
		}
		courierEmail = courier.Email()
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	// best effort once committed
	if err = h.cache.Invalidate(ctx, ports.OrderHistoryCacheKey(cmd.Customer().ID())); err != nil {
		h.logger.WarnContext(ctx, "Order history cache invalidation failed",
			"order_id", o.ID().String(), "error", err)
	}
	if courierEmail != "" {
		if err = h.notifier.Notify(ctx, courierEmail,
			fmt.Sprintf("Order %s was cancelled by the customer", o.ID())); err != nil {
			h.logger.WarnContext(ctx, "Courier notification failed",
				"order_id", o.ID().String(), "error", err)
		}
	}
	return nil
}
