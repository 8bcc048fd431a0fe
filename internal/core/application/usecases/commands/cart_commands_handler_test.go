package commands_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
)

func TestRemoveCartLineCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	customer := mustCustomer(t)
	p := mustProduct(t, "299", 10)
	crt := mustCartWith(t, customer.ID(), p)
	cmd, err := commands.NewRemoveCartLineCommand(customer, p.ID())
	require.NoError(t, err)

	cartRepo := new(MockCartRepository)
	uow := new(MockUnitOfWork)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("CartRepository").Return(cartRepo).Once(),
		cartRepo.On("GetActiveByCustomer", mock.Anything, customer.ID()).Return(crt, nil).Once(),
		cartRepo.On("Update", mock.Anything, crt).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockCartUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewRemoveCartLineCommandHandler(factory)
	require.NoError(t, h.Handle(ctx, cmd))
	require.True(t, crt.IsEmpty())
	uow.AssertExpectations(t)
}

func TestRemoveCartLineCommandHandler_Handle_LineMissing(t *testing.T) {
	ctx := t.Context()
	customer := mustCustomer(t)
	crt := mustCartWith(t, customer.ID())
	cmd, err := commands.NewRemoveCartLineCommand(customer, kernel.NewUUID())
	require.NoError(t, err)

	cartRepo := new(MockCartRepository)
	uow := new(MockUnitOfWork)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("CartRepository").Return(cartRepo).Once(),
		cartRepo.On("GetActiveByCustomer", mock.Anything, customer.ID()).Return(crt, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockCartUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewRemoveCartLineCommandHandler(factory)
	err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
	uow.AssertExpectations(t)
}

func TestClearCartCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	customer := mustCustomer(t)
	p := mustProduct(t, "299", 10)
	crt := mustCartWith(t, customer.ID(), p)
	cmd, err := commands.NewClearCartCommand(customer)
	require.NoError(t, err)

	cartRepo := new(MockCartRepository)
	uow := new(MockUnitOfWork)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("CartRepository").Return(cartRepo).Once(),
		cartRepo.On("GetActiveByCustomer", mock.Anything, customer.ID()).Return(crt, nil).Once(),
		cartRepo.On("Update", mock.Anything, crt).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockCartUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewClearCartCommandHandler(factory)
	require.NoError(t, h.Handle(ctx, cmd))
	require.True(t, crt.IsEmpty())
	uow.AssertExpectations(t)
}

func TestClearCartCommandHandler_Handle_NoActiveCartIsNoOp(t *testing.T) {
	ctx := t.Context()
	customer := mustCustomer(t)
	cmd, err := commands.NewClearCartCommand(customer)
	require.NoError(t, err)

	cartRepo := new(MockCartRepository)
	uow := new(MockUnitOfWork)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("CartRepository").Return(cartRepo).Once(),
		cartRepo.On("GetActiveByCustomer", mock.Anything, customer.ID()).
			Return(nil, errs.NewObjectNotFoundError("cart", customer.ID().String())).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockCartUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewClearCartCommandHandler(factory)
	require.NoError(t, h.Handle(ctx, cmd))
	uow.AssertExpectations(t)
}

func TestPurgeCartsCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewPurgeCartsCommand(7 * 24 * time.Hour)
	require.NoError(t, err)

	cartRepo := new(MockCartRepository)
	uow := new(MockUnitOfWork)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("CartRepository").Return(cartRepo).Once(),
		cartRepo.On("PurgeDeactivatedBefore", mock.Anything, mock.AnythingOfType("time.Time")).
			Return(int64(3), nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockCartPurgeUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewPurgeCartsCommandHandler(factory)
	purged, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	require.Equal(t, int64(3), purged)
	uow.AssertExpectations(t)
}

func TestNewPurgeCartsCommand_InvalidRetention(t *testing.T) {
	_, err := commands.NewPurgeCartsCommand(0)
	require.ErrorIs(t, err, commands.ErrRetentionIsInvalid)
}
