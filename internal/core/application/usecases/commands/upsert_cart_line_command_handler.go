package commands

import (
	"context"
	"errors"
	"time"

	"marketplace/internal/core/domain/model/cart"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
)

// UpsertCartLineCommandHandler applies cart line changes. The customer's cart
// is created lazily on the first line upsert.
type UpsertCartLineCommandHandler struct {
	uowFactory CartUoWFactory
}

// NewUpsertCartLineCommandHandler creates a handler for cart line upserts.
func NewUpsertCartLineCommandHandler(uowFactory CartUoWFactory) UpsertCartLineCommandHandler {
	return UpsertCartLineCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle sets the quantity of the product in the customer's active cart,
// creating the cart when the customer does not have one yet. Availability and
// stock are checked here, at cart time, not at checkout.
func (h UpsertCartLineCommandHandler) Handle(ctx context.Context, cmd UpsertCartLineCommand) error {
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
	productRepo := uow.ProductRepository()

	p, err := productRepo.Get(ctx, cmd.ProductID())
	if err != nil {
		return err
	}

	created := false
	crt, err := cartRepo.GetActiveByCustomer(ctx, cmd.Customer().ID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		crt, err = cart.NewCart(kernel.NewUUID(), cmd.Customer().ID(), time.Now().UTC())
		created = true
	}
	if err != nil {
		return err
	}

	if err = crt.UpsertLine(p, cmd.Quantity()); err != nil {
		return err
	}

	if created {
		err = cartRepo.Add(ctx, crt)
	} else {
		err = cartRepo.Update(ctx, crt)
	}
	if err != nil {
		return err
	}

	return uow.Commit(ctx)
}
