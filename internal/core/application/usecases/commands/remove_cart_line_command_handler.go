package commands

import (
	"context"
)

// RemoveCartLineCommandHandler removes a single line from the customer's cart.
type RemoveCartLineCommandHandler struct {
	uowFactory CartUoWFactory
}

// NewRemoveCartLineCommandHandler creates a handler for cart line removals.
func NewRemoveCartLineCommandHandler(uowFactory CartUoWFactory) RemoveCartLineCommandHandler {
	return RemoveCartLineCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle removes the product line from the customer's active cart.
// Fails with ObjectNotFoundError when the customer has no active cart or the
// product is not in it.
func (h RemoveCartLineCommandHandler) Handle(ctx context.Context, cmd RemoveCartLineCommand) error {
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
	if err != nil {
		return err
	}

	if err = crt.RemoveLine(cmd.ProductID()); err != nil {
		return err
	}

	if err = cartRepo.Update(ctx, crt); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
