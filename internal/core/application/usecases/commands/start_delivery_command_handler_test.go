package commands_test

import (
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/domain/model/account"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/errs"
)

func TestStartDeliveryCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	courier := mustCourier(t)
	customerID := kernel.NewUUID()
	o := mustAssignedOrder(t, customerID, courier)
	customerAcc := mustAccount(t, customerID, account.RoleCustomer, "0")
	cmd, err := commands.NewStartDeliveryCommand(courier, o.ID())
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	accountRepo := new(MockAccountRepository)
	uow := new(MockUnitOfWork)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("GetWithLock", mock.Anything, o.ID()).Return(o, nil).Once(),
		orderRepo.On("Update", mock.Anything, o).Return(nil).Once(),
		uow.On("AccountRepository").Return(accountRepo).Once(),
		accountRepo.On("Get", mock.Anything, customerID).Return(customerAcc, nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	cache := new(MockOrderHistoryCache)
	cache.On("Invalidate", mock.Anything, ports.OrderHistoryCacheKey(customerID)).Return(nil).Once()
	notifier := new(MockNotifier)
	notifier.On("Notify", mock.Anything, customerAcc.Email(),
		"Your courier is on the way with your order!").Return(nil).Once()

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewStartDeliveryCommandHandler(factory, cache, notifier, testLogger())
	require.NoError(t, h.Handle(ctx, cmd))
	require.Equal(t, order.Delivering, o.Status())
	uow.AssertExpectations(t)
	notifier.AssertExpectations(t)
}

func TestStartDeliveryCommandHandler_Handle_WrongCourier(t *testing.T) {
	ctx := t.Context()
	assignedCourier := mustCourier(t)
	otherCourier := mustCourier(t)
	o := mustAssignedOrder(t, kernel.NewUUID(), assignedCourier)
	cmd, err := commands.NewStartDeliveryCommand(otherCourier, o.ID())
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUnitOfWork)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("GetWithLock", mock.Anything, o.ID()).Return(o, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewStartDeliveryCommandHandler(factory, new(MockOrderHistoryCache), new(MockNotifier), testLogger())
	err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrForbidden)
	require.Equal(t, order.Assigned, o.Status())
	uow.AssertExpectations(t)
}
