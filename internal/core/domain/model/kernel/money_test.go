package kernel_test

import (
	"testing"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMoney(t *testing.T) {
	t.Run("accepts non-negative amounts", func(t *testing.T) {
		m, err := kernel.NewMoney(decimal.NewFromInt(100))

		require.NoError(t, err)
		assert.Equal(t, "100.00", m.String())
	})

	t.Run("rejects negative amounts", func(t *testing.T) {
		_, err := kernel.NewMoney(decimal.NewFromInt(-1))

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestMoneyFromString(t *testing.T) {
	t.Run("parses decimal strings", func(t *testing.T) {
		m, err := kernel.MoneyFromString("299.50")

		require.NoError(t, err)
		assert.Equal(t, "299.50", m.String())
	})

	t.Run("rejects garbage", func(t *testing.T) {
		_, err := kernel.MoneyFromString("a lot")

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("rejects negative strings", func(t *testing.T) {
		_, err := kernel.MoneyFromString("-5")

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestMoney_Arithmetic(t *testing.T) {
	must := func(s string) kernel.Money {
		m, err := kernel.MoneyFromString(s)
		require.NoError(t, err)
		return m
	}

	t.Run("line totals sum exactly", func(t *testing.T) {
		// 2 x 299 + 1 x 599 = 1197
		total := must("299").MulInt(2).Add(must("599").MulInt(1))

		assert.Equal(t, "1197.00", total.String())
		assert.True(t, total.IsEqual(must("1197")))
	})

	t.Run("subtraction keeps balance non-negative", func(t *testing.T) {
		balance := must("500")

		_, err := balance.Sub(must("1197"))

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("subtraction of covered amount succeeds", func(t *testing.T) {
		balance := must("1500")

		rest, err := balance.Sub(must("1197"))

		require.NoError(t, err)
		assert.Equal(t, "303.00", rest.String())
	})

	t.Run("comparisons", func(t *testing.T) {
		assert.True(t, must("1197").GreaterThanOrEqual(must("1000")))
		assert.True(t, must("500").LessThan(must("1197")))
		assert.True(t, kernel.ZeroMoney().IsZero())
	})
}
