package commands_test

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"marketplace/internal/core/domain/model/account"
	"marketplace/internal/core/domain/model/cart"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/model/product"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func mustMoney(t *testing.T, s string) kernel.Money {
	t.Helper()
	m, err := kernel.MoneyFromString(s)
	require.NoError(t, err)
	return m
}

func mustCustomer(t *testing.T) account.Customer {
	t.Helper()
	customer, err := account.NewCustomer(kernel.NewUUID())
	require.NoError(t, err)
	return customer
}

func mustCourier(t *testing.T) account.Courier {
	t.Helper()
	courier, err := account.NewCourier(kernel.NewUUID())
	require.NoError(t, err)
	return courier
}

func mustAccount(t *testing.T, id kernel.UUID, role account.Role, balance string) *account.Account {
	t.Helper()
	acc, err := account.RestoreAccount(id, "user@example.com", "Test User", role, mustMoney(t, balance))
	require.NoError(t, err)
	return acc
}

func mustProduct(t *testing.T, price string, stock int) *product.Product {
	t.Helper()
	p, err := product.RestoreProduct(kernel.NewUUID(), "Pepperoni Pizza",
		mustMoney(t, price), nil, stock, true)
	require.NoError(t, err)
	return p
}

func mustCartWith(t *testing.T, customerID kernel.UUID, products ...*product.Product) *cart.Cart {
	t.Helper()
	crt, err := cart.NewCart(kernel.NewUUID(), customerID, time.Now().UTC())
	require.NoError(t, err)
	for _, p := range products {
		require.NoError(t, crt.UpsertLine(p, 1))
	}
	return crt
}

func mustNewOrder(t *testing.T, customerID kernel.UUID) *order.Order {
	t.Helper()
	line, err := order.NewLine(kernel.NewUUID(), 2, mustMoney(t, "299"))
	require.NoError(t, err)

	o, err := order.NewOrder(kernel.NewUUID(), customerID, []order.Line{line},
		order.ModeDelivery, "Alice", "+10000000001", "1 Main St", "",
		mustMoney(t, "1000"), time.Now().UTC())
	require.NoError(t, err)
	return o
}

func mustAssignedOrder(t *testing.T, customerID kernel.UUID, courier account.Courier) *order.Order {
	t.Helper()
	o := mustNewOrder(t, customerID)
	require.NoError(t, o.Assign(courier, kernel.NewUUID(), time.Now().UTC()))
	return o
}
