package commands

import (
	"context"
	"log/slog"
	"time"

	"marketplace/internal/core/domain/model/chat"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/ports"
)

// AcceptOrderCommandHandler claims an order for a courier.
//
// The claim is serialized on the order row: the repository locks it without
// waiting, so when two couriers race for the same order exactly one wins and
// the other gets an immediate ConflictError instead of blocking. The chat
// channel between the customer and the courier is created in the same
// transaction as the assignment.
type AcceptOrderCommandHandler struct {
	uowFactory AssignmentUoWFactory
	cache      ports.OrderHistoryCache
	notifier   ports.Notifier
	logger     *slog.Logger
}

// NewAcceptOrderCommandHandler creates a handler for order claims.
func NewAcceptOrderCommandHandler(uowFactory AssignmentUoWFactory, cache ports.OrderHistoryCache,
	notifier ports.Notifier, logger *slog.Logger) AcceptOrderCommandHandler {
	return AcceptOrderCommandHandler{
		uowFactory: uowFactory,
		cache:      cache,
		notifier:   notifier,
		logger:     logger,
	}
}

// Handle assigns the order to the courier, opens the delivery chat channel and
// notifies the customer.
func (h AcceptOrderCommandHandler) Handle(ctx context.Context, cmd AcceptOrderCommand) error {
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

	o, err := orderRepo.GetForAssignment(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	channel, err := chat.NewChannel(kernel.NewUUID(), o.ID(), o.CustomerID(), cmd.Courier().ID(), now)
	if err != nil {
		return err
	}

	if err = o.Assign(cmd.Courier(), channel.ID(), now); err != nil {
		return err
	}

	if err = uow.ChatRepository().Add(ctx, channel); err != nil {
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
	if err = h.notifier.Notify(ctx, customer.Email(), "A courier has been assigned to your order!"); err != nil {
		h.logger.WarnContext(ctx, "Customer notification failed",
			"order_id", o.ID().String(), "error", err)
	}
	return nil
}
