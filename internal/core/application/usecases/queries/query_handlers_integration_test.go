package queries_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"marketplace/internal/adapters/out/postgres/accountrepo"
	"marketplace/internal/adapters/out/postgres/cartrepo"
	"marketplace/internal/adapters/out/postgres/chatrepo"
	"marketplace/internal/adapters/out/postgres/orderrepo"
	"marketplace/internal/adapters/out/postgres/productrepo"
	"marketplace/internal/core/application/usecases/queries"
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

// nopTracker satisfies the repositories' tracker when seeding test data.
type nopTracker struct{}

func (nopTracker) TrackAggregate(kernel.UUID, any) {}

// memoryCache is an in-memory OrderHistoryCache for exercising the
// read-through path without Redis.
type memoryCache struct {
	mu      sync.Mutex
	entries map[string][]byte
}

func newMemoryCache() *memoryCache {
	return &memoryCache{entries: make(map[string][]byte)}
}

func (c *memoryCache) Get(_ context.Context, key string) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	payload, ok := c.entries[key]
	if !ok {
		return nil, ports.ErrCacheMiss
	}
	return payload, nil
}

func (c *memoryCache) Set(_ context.Context, key string, payload []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = payload
	return nil
}

func (c *memoryCache) Invalidate(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
	return nil
}

// QueryHandlersIntegrationTestSuite exercises the raw SQL read side against
// the schema the repositories write.
type QueryHandlersIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	cache     *memoryCache

	orderRepo *orderrepo.GormOrderRepository
	cartRepo  *cartrepo.GormCartRepository
	chatRepo  *chatrepo.GormChatRepository
}

func (suite *QueryHandlersIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
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

	suite.orderRepo = orderrepo.NewGormOrderRepository(db, nopTracker{})
	suite.cartRepo = cartrepo.NewGormCartRepository(db, nopTracker{})
	suite.chatRepo = chatrepo.NewGormChatRepository(db, nopTracker{})
}

func (suite *QueryHandlersIntegrationTestSuite) SetupTest() {
	err := suite.db.Exec(
		"TRUNCATE TABLE accounts, products, carts, cart_lines, orders, order_lines, chat_channels",
	).Error
	suite.Require().NoError(err)
	suite.cache = newMemoryCache()
}

func (suite *QueryHandlersIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *QueryHandlersIntegrationTestSuite) TestGetCart_NoActiveCart_ReturnsEmptyResponse() {
	handler := queries.NewGetCartQueryHandler(suite.db)

	query, err := queries.NewGetCartQuery(suite.customer())
	suite.Require().NoError(err)

	response, err := handler.Handle(context.Background(), query)
	suite.Require().NoError(err)
	suite.Empty(response.Lines)
	suite.Equal("0.00", response.Total)
}

func (suite *QueryHandlersIntegrationTestSuite) TestGetCart_PricesLinesWithDiscount() {
	ctx := context.Background()
	customer := suite.customer()

	// 100.00 discounted to 80.00, and 50.00 at full price.
	discounted := suite.seedProduct("bento box", "100.00", "80.00")
	fullPrice := suite.seedProduct("miso soup", "50.00", "")

	testCart := suite.seedCart(ctx, customer.ID(), map[kernel.UUID]int{
		discounted: 2,
		fullPrice:  1,
	})

	handler := queries.NewGetCartQueryHandler(suite.db)
	query, err := queries.NewGetCartQuery(customer)
	suite.Require().NoError(err)

	response, err := handler.Handle(ctx, query)
	suite.Require().NoError(err)

	suite.Equal(testCart.ID().String(), response.ID)
	suite.Require().Len(response.Lines, 2)
	suite.Equal("210.00", response.Total)

	byName := make(map[string]queries.CartLineView, len(response.Lines))
	for _, line := range response.Lines {
		byName[line.ProductName] = line
	}
	suite.Equal("80.00", byName["bento box"].UnitPrice)
	suite.Equal(2, byName["bento box"].Quantity)
	suite.Equal("50.00", byName["miso soup"].UnitPrice)
}

func (suite *QueryHandlersIntegrationTestSuite) TestGetOrderHistory_ReturnsNewestFirstAndCaches() {
	ctx := context.Background()
	customer := suite.customer()

	first := suite.seedOrder(ctx, customer.ID(), time.Now().UTC().Add(-2*time.Hour))
	second := suite.seedOrder(ctx, customer.ID(), time.Now().UTC().Add(-time.Hour))
	suite.seedOrder(ctx, kernel.NewUUID(), time.Now().UTC())

	handler := queries.NewGetOrderHistoryQueryHandler(suite.db, suite.cache)
	query, err := queries.NewGetOrderHistoryQuery(customer)
	suite.Require().NoError(err)

	orders, err := handler.Handle(ctx, query)
	suite.Require().NoError(err)

	suite.Require().Len(orders, 2)
	suite.Equal(second.ID().String(), orders[0].ID)
	suite.Equal(first.ID().String(), orders[1].ID)

	// The result is now cached and a repeat read serves it without the DB.
	key := ports.OrderHistoryCacheKey(customer.ID())
	_, err = suite.cache.Get(ctx, key)
	suite.Require().NoError(err)

	cached, err := handler.Handle(ctx, query)
	suite.Require().NoError(err)
	suite.Len(cached, 2)
}

func (suite *QueryHandlersIntegrationTestSuite) TestGetOrderHistory_CorruptCacheEntry_FallsBackToDatabase() {
	ctx := context.Background()
	customer := suite.customer()

	suite.seedOrder(ctx, customer.ID(), time.Now().UTC())
	suite.Require().NoError(
		suite.cache.Set(ctx, ports.OrderHistoryCacheKey(customer.ID()), []byte("{broken")))

	handler := queries.NewGetOrderHistoryQueryHandler(suite.db, suite.cache)
	query, err := queries.NewGetOrderHistoryQuery(customer)
	suite.Require().NoError(err)

	orders, err := handler.Handle(ctx, query)
	suite.Require().NoError(err)
	suite.Len(orders, 1)
}

func (suite *QueryHandlersIntegrationTestSuite) TestGetOrderDetails_ParticipantsSeeOrder() {
	ctx := context.Background()
	customer := suite.customer()
	courier := suite.courier()

	testOrder := suite.seedAssignedOrder(ctx, customer.ID(), courier)

	handler := queries.NewGetOrderDetailsQueryHandler(suite.db)

	for _, requester := range []kernel.UUID{customer.ID(), courier.ID()} {
		query, err := queries.NewGetOrderDetailsQuery(requester, testOrder.ID())
		suite.Require().NoError(err)

		response, err := handler.Handle(ctx, query)
		suite.Require().NoError(err)
		suite.Equal(testOrder.ID().String(), response.ID)
		suite.Equal(order.Assigned.String(), response.Status)
		suite.Require().NotNil(response.CourierID)
		suite.Equal(courier.ID().String(), *response.CourierID)
		suite.Require().Len(response.Lines, 1)
		suite.Equal("299.00", response.Lines[0].UnitPrice)
	}
}

func (suite *QueryHandlersIntegrationTestSuite) TestGetOrderDetails_NonParticipant_ReturnsNotFoundError() {
	ctx := context.Background()

	testOrder := suite.seedOrder(ctx, kernel.NewUUID(), time.Now().UTC())

	handler := queries.NewGetOrderDetailsQueryHandler(suite.db)
	query, err := queries.NewGetOrderDetailsQuery(kernel.NewUUID(), testOrder.ID())
	suite.Require().NoError(err)

	_, err = handler.Handle(ctx, query)
	var notFoundErr *errs.ObjectNotFoundError
	suite.Require().ErrorAs(err, &notFoundErr)
}

func (suite *QueryHandlersIntegrationTestSuite) TestGetOrderChat_ParticipantOnly() {
	ctx := context.Background()
	customer := suite.customer()
	courier := suite.courier()

	testOrder := suite.seedAssignedOrder(ctx, customer.ID(), courier)

	handler := queries.NewGetOrderChatQueryHandler(suite.db)

	query, err := queries.NewGetOrderChatQuery(customer.ID(), testOrder.ID())
	suite.Require().NoError(err)

	response, err := handler.Handle(ctx, query)
	suite.Require().NoError(err)
	suite.Equal(testOrder.ID().String(), response.OrderID)
	suite.Equal(customer.ID().String(), response.CustomerID)
	suite.Equal(courier.ID().String(), response.CourierID)

	query, err = queries.NewGetOrderChatQuery(kernel.NewUUID(), testOrder.ID())
	suite.Require().NoError(err)

	_, err = handler.Handle(ctx, query)
	var notFoundErr *errs.ObjectNotFoundError
	suite.Require().ErrorAs(err, &notFoundErr)
}

func (suite *QueryHandlersIntegrationTestSuite) TestGetAvailableOrders_ListsOnlyUnclaimedNewOrders() {
	ctx := context.Background()

	unclaimed := suite.seedOrder(ctx, kernel.NewUUID(), time.Now().UTC().Add(-time.Minute))
	suite.seedAssignedOrder(ctx, kernel.NewUUID(), suite.courier())

	handler := queries.NewGetAvailableOrdersQueryHandler(suite.db)
	query, err := queries.NewGetAvailableOrdersQuery(suite.courier())
	suite.Require().NoError(err)

	orders, err := handler.Handle(ctx, query)
	suite.Require().NoError(err)
	suite.Require().Len(orders, 1)
	suite.Equal(unclaimed.ID().String(), orders[0].ID)
	suite.Equal(order.New.String(), orders[0].Status)
}

func (suite *QueryHandlersIntegrationTestSuite) TestGetCourierOrders_ActiveAndCompletedScopes() {
	ctx := context.Background()
	courier := suite.courier()

	active := suite.seedAssignedOrder(ctx, kernel.NewUUID(), courier)
	delivered := suite.seedAssignedOrder(ctx, kernel.NewUUID(), courier)
	suite.Require().NoError(delivered.StartDelivery(courier, time.Now().UTC()))
	suite.Require().NoError(delivered.CompleteDelivery(courier, time.Now().UTC()))
	suite.Require().NoError(suite.orderRepo.Update(ctx, delivered))

	// Another courier's workload must not leak in.
	suite.seedAssignedOrder(ctx, kernel.NewUUID(), suite.courier())

	handler := queries.NewGetCourierOrdersQueryHandler(suite.db)

	query, err := queries.NewGetCourierOrdersQuery(courier, queries.CourierOrdersActive)
	suite.Require().NoError(err)
	orders, err := handler.Handle(ctx, query)
	suite.Require().NoError(err)
	suite.Require().Len(orders, 1)
	suite.Equal(active.ID().String(), orders[0].ID)

	query, err = queries.NewGetCourierOrdersQuery(courier, queries.CourierOrdersCompleted)
	suite.Require().NoError(err)
	orders, err = handler.Handle(ctx, query)
	suite.Require().NoError(err)
	suite.Require().Len(orders, 1)
	suite.Equal(delivered.ID().String(), orders[0].ID)
	suite.NotNil(orders[0].DeliveredAt)
}

func (suite *QueryHandlersIntegrationTestSuite) customer() account.Customer {
	customer, err := account.NewCustomer(kernel.NewUUID())
	suite.Require().NoError(err)
	return customer
}

func (suite *QueryHandlersIntegrationTestSuite) courier() account.Courier {
	courier, err := account.NewCourier(kernel.NewUUID())
	suite.Require().NoError(err)
	return courier
}

func (suite *QueryHandlersIntegrationTestSuite) seedProduct(name, price, discounted string) kernel.UUID {
	id := kernel.NewUUID()
	amount, err := decimal.NewFromString(price)
	suite.Require().NoError(err)

	dto := productrepo.ProductDTO{
		ID:            id.Bytes(),
		Name:          name,
		OriginalPrice: amount,
		StockQuantity: 10,
		IsAvailable:   true,
	}
	if discounted != "" {
		value, discErr := decimal.NewFromString(discounted)
		suite.Require().NoError(discErr)
		dto.DiscountedPrice = &value
	}

	suite.Require().NoError(suite.db.Create(&dto).Error)
	return id
}

func (suite *QueryHandlersIntegrationTestSuite) seedCart(
	ctx context.Context, customerID kernel.UUID, quantities map[kernel.UUID]int,
) *cart.Cart {
	lines := make([]cart.Line, 0, len(quantities))
	for productID, quantity := range quantities {
		line, err := cart.NewLine(productID, quantity)
		suite.Require().NoError(err)
		lines = append(lines, line)
	}

	testCart, err := cart.RestoreCart(kernel.NewUUID(), customerID, true, lines, time.Now().UTC())
	suite.Require().NoError(err)
	suite.Require().NoError(suite.cartRepo.Add(ctx, testCart))
	return testCart
}

func (suite *QueryHandlersIntegrationTestSuite) seedOrder(
	ctx context.Context, customerID kernel.UUID, createdAt time.Time,
) *order.Order {
	price, err := kernel.MoneyFromString("299.00")
	suite.Require().NoError(err)
	line, err := order.NewLine(kernel.NewUUID(), 1, price)
	suite.Require().NoError(err)

	threshold, err := kernel.MoneyFromString("1000.00")
	suite.Require().NoError(err)

	testOrder, err := order.NewOrder(kernel.NewUUID(), customerID,
		[]order.Line{line}, order.ModeDelivery,
		"Jane Doe", "555-0100", "12 Main St", "",
		threshold, createdAt)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.orderRepo.Add(ctx, testOrder))
	return testOrder
}

// seedAssignedOrder persists an assigned order together with its chat channel.
func (suite *QueryHandlersIntegrationTestSuite) seedAssignedOrder(
	ctx context.Context, customerID kernel.UUID, courier account.Courier,
) *order.Order {
	testOrder := suite.seedOrder(ctx, customerID, time.Now().UTC())

	channel, err := chat.NewChannel(kernel.NewUUID(), testOrder.ID(),
		customerID, courier.ID(), time.Now().UTC())
	suite.Require().NoError(err)
	suite.Require().NoError(suite.chatRepo.Add(ctx, channel))

	suite.Require().NoError(testOrder.Assign(courier, channel.ID(), time.Now().UTC()))
	suite.Require().NoError(suite.orderRepo.Update(ctx, testOrder))
	return testOrder
}

func TestQueryHandlersIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(QueryHandlersIntegrationTestSuite))
}
