package commands

import (
	"context"
	"log/slog"
	"time"

	"marketplace/internal/core/domain/model/cart"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/errs"
)

// ErrCartIsEmpty is returned when checking out a cart with no lines.
var ErrCartIsEmpty = errs.NewValueIsRequiredError("cart lines")

// CheckoutCommandHandler turns the customer's active cart into an order.
//
// The whole operation is one transaction: line prices are captured from the
// current catalog, the customer's balance is debited by the order total, the
// order is created in status new and the cart is deactivated. If the balance
// does not cover the total nothing is persisted.
type CheckoutCommandHandler struct {
	uowFactory            CheckoutUoWFactory
	cache                 ports.OrderHistoryCache
	freeDeliveryThreshold kernel.Money
	logger                *slog.Logger
}

// NewCheckoutCommandHandler creates a handler for checkouts.
func NewCheckoutCommandHandler(uowFactory CheckoutUoWFactory, cache ports.OrderHistoryCache,
	freeDeliveryThreshold kernel.Money, logger *slog.Logger) CheckoutCommandHandler {
	return CheckoutCommandHandler{
		uowFactory:            uowFactory,
		cache:                 cache,
		freeDeliveryThreshold: freeDeliveryThreshold,
		logger:                logger,
	}
}

// Handle places an order from the customer's active cart.
//
// Availability and stock are re-checked against the catalog at checkout time:
// the cart may be hours old. Prices on the order lines are captured from the
// catalog's final prices as of this moment and never change afterwards.
func (h CheckoutCommandHandler) Handle(ctx context.Context, cmd CheckoutCommand) error {
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

	crt, err := uow.CartRepository().GetActiveByCustomer(ctx, cmd.Customer().ID())
	if err != nil {
		return err
	}
	if crt.IsEmpty() {
		return ErrCartIsEmpty
	}

	lines, err := h.captureLines(ctx, uow.ProductRepository(), crt.Lines())
	if err != nil {
		return err
	}

	o, err := order.NewOrder(cmd.OrderID(), cmd.Customer().ID(), lines,
		cmd.Mode(), cmd.ReceiverName(), cmd.ReceiverPhone(), cmd.Address(), cmd.Description(),
		h.freeDeliveryThreshold, time.Now().UTC())
	if err != nil {
		return err
	}

	accountRepo := uow.AccountRepository()
	acc, err := accountRepo.GetWithLock(ctx, cmd.Customer().ID())
	if err != nil {
		return err
	}
	if err = acc.Debit(o.Total()); err != nil {
		return err
	}
	if err = accountRepo.Update(ctx, acc); err != nil {
		return err
	}

	if err = uow.OrderRepository().Add(ctx, o); err != nil {
		return err
	}

	crt.Deactivate()
	if err = uow.CartRepository().Update(ctx, crt); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	// best effort once committed
	if err = h.cache.Invalidate(ctx, ports.OrderHistoryCacheKey(cmd.Customer().ID())); err != nil {
		h.logger.WarnContext(ctx, "Order history cache invalidation failed",
			"order_id", o.ID().String(), "error", err)
	}
	return nil
}

func (h CheckoutCommandHandler) captureLines(ctx context.Context, productRepo ports.ProductRepository,
	cartLines []cart.Line) ([]order.Line, error) {
	ids := make([]kernel.UUID, 0, len(cartLines))
	for _, line := range cartLines {
		ids = append(ids, line.ProductID())
	}

	products, err := productRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	lines := make([]order.Line, 0, len(cartLines))
	for _, cartLine := range cartLines {
		p, ok := products[cartLine.ProductID()]
		if !ok {
			return nil, errs.NewObjectNotFoundError("product", cartLine.ProductID().String())
		}
		if !p.IsAvailable() {
			return nil, errs.NewProductUnavailableError(p.Name())
		}
		if cartLine.Quantity() > p.StockQuantity() {
			return nil, errs.NewInsufficientStockError(p.Name(), p.StockQuantity())
		}

		line, err := order.NewLine(p.ID(), cartLine.Quantity(), p.FinalPrice())
		if err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}
	return lines, nil
}
