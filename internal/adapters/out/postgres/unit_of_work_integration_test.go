package postgres_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	postgresadapter "marketplace/internal/adapters/out/postgres"
	"marketplace/internal/adapters/out/postgres/accountrepo"
	"marketplace/internal/adapters/out/postgres/cartrepo"
	"marketplace/internal/adapters/out/postgres/chatrepo"
	"marketplace/internal/adapters/out/postgres/orderrepo"
	"marketplace/internal/adapters/out/postgres/productrepo"
	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/domain/model/account"
	"marketplace/internal/core/domain/model/cart"
	"marketplace/internal/core/domain/model/chat"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// UnitOfWorkIntegrationTestSuite verifies the GORM-based Unit of Work against
// a real PostgreSQL database, including the checkout and claim transactions
// that span several repositories.
type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	factory   ports.UnitOfWorkFactory
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2)),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	err = db.AutoMigrate(
		&accountrepo.AccountDTO{},
		&productrepo.ProductDTO{},
		&cartrepo.CartDTO{},
		&cartrepo.LineDTO{},
		&orderrepo.OrderDTO{},
		&orderrepo.LineDTO{},
		&chatrepo.ChannelDTO{},
	)
	suite.Require().NoError(err)

	suite.factory = postgresadapter.NewGormUnitOfWorkFactory(db)
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	err := suite.db.Exec(
		"TRUNCATE TABLE accounts, products, carts, cart_lines, orders, order_lines, chat_channels",
	).Error
	suite.Require().NoError(err)
}

func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *UnitOfWorkIntegrationTestSuite) TestFactory_CreatesIsolatedInstances() {
	uow1 := suite.factory.Create()
	uow2 := suite.factory.Create()

	suite.NotSame(uow1, uow2)
	suite.NotNil(uow1.AccountRepository())
	suite.NotNil(uow1.ProductRepository())
	suite.NotNil(uow1.CartRepository())
	suite.NotNil(uow1.OrderRepository())
	suite.NotNil(uow1.ChatRepository())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestTransactionLifecycle() {
	ctx := context.Background()
	uow := suite.factory.Create()

	suite.Require().NoError(uow.Begin(ctx))
	// A second Begin must not open a nested transaction.
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Commit(ctx))

	// Rollback after a successful commit is a no-op, handlers defer it.
	suite.Require().NoError(uow.Rollback(ctx))

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Rollback(ctx))

	suite.Require().Error(uow.Commit(ctx))
}

// TestCheckoutTransaction_Commit writes the order, the debited balance and
// the deactivated cart as one atomic change.
func (suite *UnitOfWorkIntegrationTestSuite) TestCheckoutTransaction_Commit() {
	ctx := context.Background()

	customerID := suite.seedAccount("jane@example.com", "1000.00")
	productID := suite.seedProduct("rice bowl", "299.00", 10)
	testCart := suite.seedActiveCart(ctx, customerID, productID)

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))

	testOrder := suite.buildOrder(customerID, productID, "299.00", 2)
	suite.Require().NoError(uow.OrderRepository().Add(ctx, testOrder))

	acc, err := uow.AccountRepository().GetWithLock(ctx, customerID)
	suite.Require().NoError(err)
	suite.Require().NoError(acc.Debit(testOrder.Total()))
	suite.Require().NoError(uow.AccountRepository().Update(ctx, acc))

	testCart.Deactivate()
	suite.Require().NoError(uow.CartRepository().Update(ctx, testCart))

	suite.Require().NoError(uow.Commit(ctx))

	// All three writes are visible after the commit.
	verify := suite.factory.Create()

	persisted, err := verify.OrderRepository().Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Equal(order.New, persisted.Status())

	balance, err := verify.AccountRepository().Get(ctx, customerID)
	suite.Require().NoError(err)
	suite.Equal("402.00", balance.Balance().String())

	_, err = verify.CartRepository().GetActiveByCustomer(ctx, customerID)
	suite.Require().Error(err)
}

// TestCheckoutTransaction_Rollback leaves no trace of any write.
func (suite *UnitOfWorkIntegrationTestSuite) TestCheckoutTransaction_Rollback() {
	ctx := context.Background()

	customerID := suite.seedAccount("jane@example.com", "1000.00")
	productID := suite.seedProduct("rice bowl", "299.00", 10)
	suite.seedActiveCart(ctx, customerID, productID)

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))

	testOrder := suite.buildOrder(customerID, productID, "299.00", 1)
	suite.Require().NoError(uow.OrderRepository().Add(ctx, testOrder))

	acc, err := uow.AccountRepository().GetWithLock(ctx, customerID)
	suite.Require().NoError(err)
	suite.Require().NoError(acc.Debit(testOrder.Total()))
	suite.Require().NoError(uow.AccountRepository().Update(ctx, acc))

	suite.Require().NoError(uow.Rollback(ctx))

	verify := suite.factory.Create()

	_, err = verify.OrderRepository().Get(ctx, testOrder.ID())
	suite.Require().Error(err)

	balance, err := verify.AccountRepository().Get(ctx, customerID)
	suite.Require().NoError(err)
	suite.Equal("1000.00", balance.Balance().String())

	_, err = verify.CartRepository().GetActiveByCustomer(ctx, customerID)
	suite.Require().NoError(err)
}

// TestClaimTransaction_AssignsOrderAndCreatesChannel covers the courier claim:
// the locked read, the status change and the chat channel commit together.
func (suite *UnitOfWorkIntegrationTestSuite) TestClaimTransaction_AssignsOrderAndCreatesChannel() {
	ctx := context.Background()

	customerID := suite.seedAccount("jane@example.com", "1000.00")
	courierID := suite.seedAccount("max@example.com", "0.00")
	productID := suite.seedProduct("rice bowl", "299.00", 10)

	setup := suite.factory.Create()
	suite.Require().NoError(setup.Begin(ctx))
	testOrder := suite.buildOrder(customerID, productID, "299.00", 1)
	suite.Require().NoError(setup.OrderRepository().Add(ctx, testOrder))
	suite.Require().NoError(setup.Commit(ctx))

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))

	claimed, err := uow.OrderRepository().GetForAssignment(ctx, testOrder.ID())
	suite.Require().NoError(err)

	courier, err := account.NewCourier(courierID)
	suite.Require().NoError(err)

	channel, err := chat.NewChannel(kernel.NewUUID(), claimed.ID(),
		claimed.CustomerID(), courierID, time.Now().UTC())
	suite.Require().NoError(err)

	suite.Require().NoError(claimed.Assign(courier, channel.ID(), time.Now().UTC()))
	suite.Require().NoError(uow.ChatRepository().Add(ctx, channel))
	suite.Require().NoError(uow.OrderRepository().Update(ctx, claimed))
	suite.Require().NoError(uow.Commit(ctx))

	verify := suite.factory.Create()

	assigned, err := verify.OrderRepository().Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Assigned, assigned.Status())
	suite.Require().NotNil(assigned.CourierID())
	suite.Equal(courierID, *assigned.CourierID())

	persistedChannel, err := verify.ChatRepository().GetByOrder(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Equal(channel.ID(), persistedChannel.ID())
	suite.True(persistedChannel.IsParticipant(customerID))
	suite.True(persistedChannel.IsParticipant(courierID))
}

func (suite *UnitOfWorkIntegrationTestSuite) TestConcurrentClaims_ExactlyOneCourierWins() {
	ctx := context.Background()

	customerID := suite.seedAccount("jane@example.com", "1000.00")
	courierOneID := suite.seedAccount("max@example.com", "0.00")
	courierTwoID := suite.seedAccount("lena@example.com", "0.00")
	productID := suite.seedProduct("rice bowl", "299.00", 10)

	setup := suite.factory.Create()
	suite.Require().NoError(setup.Begin(ctx))
	testOrder := suite.buildOrder(customerID, productID, "299.00", 1)
	suite.Require().NoError(setup.OrderRepository().Add(ctx, testOrder))
	suite.Require().NoError(setup.Commit(ctx))

	handler := commands.NewAcceptOrderCommandHandler(
		assignmentUoWFactory{suite.factory}, noopCache{}, noopNotifier{},
		slog.New(slog.NewTextHandler(io.Discard, nil)))

	claim := func(courierID kernel.UUID) error {
		courier, err := account.NewCourier(courierID)
		if err != nil {
			return err
		}
		cmd, err := commands.NewAcceptOrderCommand(courier, testOrder.ID())
		if err != nil {
			return err
		}
		return handler.Handle(ctx, cmd)
	}

	start := make(chan struct{})
	results := make(chan error, 2)
	for _, courierID := range []kernel.UUID{courierOneID, courierTwoID} {
		go func(id kernel.UUID) {
			<-start
			results <- claim(id)
		}(courierID)
	}
	close(start)

	wins := 0
	var losses []error
	for i := 0; i < 2; i++ {
		if err := <-results; err != nil {
			losses = append(losses, err)
		} else {
			wins++
		}
	}

	suite.Equal(1, wins)
	suite.Require().Len(losses, 1)
	suite.ErrorIs(losses[0], errs.ErrConflict)

	verify := suite.factory.Create()
	assigned, err := verify.OrderRepository().Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Assigned, assigned.Status())
	suite.Require().NotNil(assigned.CourierID())

	channel, err := verify.ChatRepository().GetByOrder(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.True(channel.IsParticipant(*assigned.CourierID()))
}

// assignmentUoWFactory narrows the full unit of work to what the claim
// handler declares.
type assignmentUoWFactory struct {
	factory ports.UnitOfWorkFactory
}

func (f assignmentUoWFactory) Create() commands.AssignmentUoW {
	return f.factory.Create()
}

type noopCache struct{}

func (noopCache) Get(context.Context, string) ([]byte, error) { return nil, ports.ErrCacheMiss }
func (noopCache) Set(context.Context, string, []byte) error   { return nil }
func (noopCache) Invalidate(context.Context, string) error    { return nil }

type noopNotifier struct{}

func (noopNotifier) Notify(context.Context, string, string) error { return nil }

func (suite *UnitOfWorkIntegrationTestSuite) TestRepositories_WithoutTransaction_ExecuteDirectly() {
	ctx := context.Background()

	productID := suite.seedProduct("rice bowl", "299.00", 10)

	uow := suite.factory.Create()
	p, err := uow.ProductRepository().Get(ctx, productID)
	suite.Require().NoError(err)
	suite.Equal("rice bowl", p.Name())
	suite.Equal(10, p.StockQuantity())
}

func (suite *UnitOfWorkIntegrationTestSuite) seedAccount(email, balance string) kernel.UUID {
	id := kernel.NewUUID()
	amount, err := decimal.NewFromString(balance)
	suite.Require().NoError(err)

	err = suite.db.Create(&accountrepo.AccountDTO{
		ID:      id.Bytes(),
		Email:   email,
		Name:    email,
		Role:    string(account.RoleCustomer),
		Balance: amount,
	}).Error
	suite.Require().NoError(err)
	return id
}

func (suite *UnitOfWorkIntegrationTestSuite) seedProduct(name, price string, stock int) kernel.UUID {
	id := kernel.NewUUID()
	amount, err := decimal.NewFromString(price)
	suite.Require().NoError(err)

	err = suite.db.Create(&productrepo.ProductDTO{
		ID:            id.Bytes(),
		Name:          name,
		OriginalPrice: amount,
		StockQuantity: stock,
		IsAvailable:   true,
	}).Error
	suite.Require().NoError(err)
	return id
}

func (suite *UnitOfWorkIntegrationTestSuite) seedActiveCart(
	ctx context.Context, customerID, productID kernel.UUID,
) *cart.Cart {
	line, err := cart.NewLine(productID, 1)
	suite.Require().NoError(err)

	testCart, err := cart.RestoreCart(kernel.NewUUID(), customerID, true,
		[]cart.Line{line}, time.Now().UTC())
	suite.Require().NoError(err)

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.CartRepository().Add(ctx, testCart))
	suite.Require().NoError(uow.Commit(ctx))
	return testCart
}

func (suite *UnitOfWorkIntegrationTestSuite) buildOrder(
	customerID, productID kernel.UUID, price string, quantity int,
) *order.Order {
	unitPrice, err := kernel.MoneyFromString(price)
	suite.Require().NoError(err)
	line, err := order.NewLine(productID, quantity, unitPrice)
	suite.Require().NoError(err)

	threshold, err := kernel.MoneyFromString("1000.00")
	suite.Require().NoError(err)

	testOrder, err := order.NewOrder(kernel.NewUUID(), customerID,
		[]order.Line{line}, order.ModeDelivery,
		"Jane Doe", "555-0100", "12 Main St", "",
		threshold, time.Now().UTC())
	suite.Require().NoError(err)
	return testOrder
}

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}
