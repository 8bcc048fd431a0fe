package commands

import (
	"context"
	"errors"

	"marketplace/internal/pkg/errs"
)

// ClearCartCommandHandler empties the customer's active cart.
type ClearCartCommandHandler struct {
	uowFactory CartUoWFactory
}

// NewClearCartCommandHandler creates a handler for cart clears.
func NewClearCartCommandHandler(uowFactory CartUoWFactory) ClearCartCommandHandler {
	return ClearCartCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle removes all lines from the customer's active cart. Clearing when the
// customer has no active cart, or an empty one, is a no-op.
func (h ClearCartCommandHandler) Handle(ctx context.Context, cmd ClearCartCommand) error {
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

	cartRepo := uow.CartRepository()

	crt, err := cartRepo.GetActiveByCustomer(ctx, cmd.Customer().ID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	crt.Clear()

	if err = cartRepo.Update(ctx, crt); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
