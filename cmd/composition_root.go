package cmd

import (
	"log"
	"log/slog"

	"marketplace/internal/adapters/out/postgres"
	"marketplace/internal/adapters/out/postgres/accountrepo"
	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/application/usecases/queries"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/ports"

	"gorm.io/gorm"
)

// CompositionRoot builds the application object graph: command and query
// handlers wired to the postgres unit of work, the history cache and the
// notifier.
type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	cache      ports.OrderHistoryCache
	notifier   ports.Notifier
	logger     *slog.Logger

	freeDeliveryThreshold kernel.Money
}

// NewCompositionRoot creates the composition root from the opened
// infrastructure connections.
func NewCompositionRoot(config Config, gormDB *gorm.DB, cache ports.OrderHistoryCache,
	notifier ports.Notifier, logger *slog.Logger) CompositionRoot {
	threshold, err := kernel.MoneyFromString(config.FreeDeliveryThreshold)
	if err != nil {
		log.Fatalf("invalid free delivery threshold %q: %v", config.FreeDeliveryThreshold, err)
	}

	return CompositionRoot{
		gormDB:                gormDB,
		uowFactory:            postgres.NewGormUnitOfWorkFactory(gormDB),
		cache:                 cache,
		notifier:              notifier,
		logger:                logger,
		freeDeliveryThreshold: threshold,
	}
}

// CreateAccountReader returns a repository for resolving the acting account
// outside of any business transaction, used by the HTTP middleware.
func (c *CompositionRoot) CreateAccountReader() ports.AccountRepository {
	return accountrepo.NewGormAccountRepository(c.gormDB, noopTracker{})
}

func (c *CompositionRoot) CreateUpsertCartLineCommandHandler() commands.UpsertCartLineCommandHandler {
	return commands.NewUpsertCartLineCommandHandler(c.cartUoWFactory())
}

func (c *CompositionRoot) CreateRemoveCartLineCommandHandler() commands.RemoveCartLineCommandHandler {
	return commands.NewRemoveCartLineCommandHandler(c.cartUoWFactory())
}

func (c *CompositionRoot) CreateClearCartCommandHandler() commands.ClearCartCommandHandler {
	return commands.NewClearCartCommandHandler(c.cartUoWFactory())
}

func (c *CompositionRoot) CreateCheckoutCommandHandler() commands.CheckoutCommandHandler {
	var f commands.CheckoutUoWFactory = FuncCheckoutUoWFactory(func() commands.CheckoutUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCheckoutCommandHandler(f, c.cache, c.freeDeliveryThreshold, c.logger)
}

func (c *CompositionRoot) CreateAcceptOrderCommandHandler() commands.AcceptOrderCommandHandler {
	var f commands.AssignmentUoWFactory = FuncAssignmentUoWFactory(func() commands.AssignmentUoW {
		return c.uowFactory.Create()
	})
	return commands.NewAcceptOrderCommandHandler(f, c.cache, c.notifier, c.logger)
}

func (c *CompositionRoot) CreateStartDeliveryCommandHandler() commands.StartDeliveryCommandHandler {
	return commands.NewStartDeliveryCommandHandler(c.orderUoWFactory(), c.cache, c.notifier, c.logger)
}

func (c *CompositionRoot) CreateCompleteDeliveryCommandHandler() commands.CompleteDeliveryCommandHandler {
	return commands.NewCompleteDeliveryCommandHandler(c.orderUoWFactory(), c.cache, c.notifier, c.logger)
}

func (c *CompositionRoot) CreateCancelOrderCommandHandler() commands.CancelOrderCommandHandler {
	return commands.NewCancelOrderCommandHandler(c.orderUoWFactory(), c.cache, c.notifier, c.logger)
}

func (c *CompositionRoot) CreateRateOrderCommandHandler() commands.RateOrderCommandHandler {
	return commands.NewRateOrderCommandHandler(c.orderUoWFactory(), c.cache, c.logger)
}

func (c *CompositionRoot) CreatePurgeCartsCommandHandler() commands.PurgeCartsCommandHandler {
	var f commands.CartPurgeUoWFactory = FuncCartPurgeUoWFactory(func() commands.CartPurgeUoW {
		return c.uowFactory.Create()
	})
	return commands.NewPurgeCartsCommandHandler(f)
}

func (c *CompositionRoot) CreateGetCartQueryHandler() queries.GetCartQueryHandler {
	return queries.NewGetCartQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOrderHistoryQueryHandler() queries.GetOrderHistoryQueryHandler {
	return queries.NewGetOrderHistoryQueryHandler(c.gormDB, c.cache)
}

func (c *CompositionRoot) CreateGetOrderDetailsQueryHandler() queries.GetOrderDetailsQueryHandler {
	return queries.NewGetOrderDetailsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOrderChatQueryHandler() queries.GetOrderChatQueryHandler {
	return queries.NewGetOrderChatQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetAvailableOrdersQueryHandler() queries.GetAvailableOrdersQueryHandler {
	return queries.NewGetAvailableOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetCourierOrdersQueryHandler() queries.GetCourierOrdersQueryHandler {
	return queries.NewGetCourierOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) cartUoWFactory() commands.CartUoWFactory {
	return FuncCartUoWFactory(func() commands.CartUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

// Func adapters turn closures over the concrete unit of work factory into the
// narrow per-handler factory interfaces.

type FuncCartUoWFactory func() commands.CartUoW

func (f FuncCartUoWFactory) Create() commands.CartUoW {
	return f()
}

type FuncCheckoutUoWFactory func() commands.CheckoutUoW

func (f FuncCheckoutUoWFactory) Create() commands.CheckoutUoW {
	return f()
}

type FuncAssignmentUoWFactory func() commands.AssignmentUoW

func (f FuncAssignmentUoWFactory) Create() commands.AssignmentUoW {
	return f()
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncCartPurgeUoWFactory func() commands.CartPurgeUoW

func (f FuncCartPurgeUoWFactory) Create() commands.CartPurgeUoW {
	return f()
}

// noopTracker satisfies the repository tracker outside of a unit of work.
type noopTracker struct{}

func (noopTracker) TrackAggregate(kernel.UUID, any) {}
