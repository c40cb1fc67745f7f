package domain_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vendasys/vendas_pos_app/internal/core/domain"
)

func newTestCart() *domain.Cart {
	return domain.NewCart("cart-1", time.Now())
}

func productWithStock(id string, price int64, stock int) domain.Product {
	return domain.Product{
		ProductID: id,
		Name:      "Produto " + id,
		SalePrice: decimal.NewFromInt(price),
		StockQty:  stock,
		IsActive:  true,
	}
}

func TestCartStartsEmpty(t *testing.T) {
	cart := newTestCart()
	assert.Equal(t, domain.CartEmpty, cart.Status)
	assert.True(t, cart.Total().IsZero())
}

func TestAddItemMovesCartToBuilding(t *testing.T) {
	cart := newTestCart()
	require.NoError(t, cart.AddItem(productWithStock("a", 500, 10), 2))

	assert.Equal(t, domain.CartBuilding, cart.Status)
	assert.Len(t, cart.Lines, 1)
	assert.True(t, cart.Subtotal().Equal(decimal.NewFromInt(1000)))
}

func TestAddItemMergesExistingLine(t *testing.T) {
	cart := newTestCart()
	require.NoError(t, cart.AddItem(productWithStock("a", 500, 10), 2))
	require.NoError(t, cart.AddItem(productWithStock("a", 500, 10), 3))

	assert.Len(t, cart.Lines, 1)
	assert.Equal(t, 5, cart.Lines[0].Quantity)
}

func TestAddItemRejectsBeyondStockSnapshotWithoutMutating(t *testing.T) {
	cart := newTestCart()
	require.NoError(t, cart.AddItem(productWithStock("a", 500, 3), 3))

	// The snapshot is the ceiling even if the catalog now shows more stock.
	err := cart.AddItem(productWithStock("a", 500, 100), 1)

	require.Error(t, err)
	assert.Equal(t, 3, cart.Lines[0].Quantity)
	assert.Equal(t, 3, cart.Lines[0].StockSnapshot)
}

func TestAddItemSnapshotsPriceOnFirstAdd(t *testing.T) {
	cart := newTestCart()
	require.NoError(t, cart.AddItem(productWithStock("a", 500, 10), 1))

	// A later add at a new catalog price keeps the original unit price.
	require.NoError(t, cart.AddItem(productWithStock("a", 900, 10), 1))

	assert.True(t, cart.Lines[0].UnitPrice.Equal(decimal.NewFromInt(500)))
	assert.True(t, cart.Subtotal().Equal(decimal.NewFromInt(1000)))
}

func TestRemoveLastItemReturnsCartToEmpty(t *testing.T) {
	cart := newTestCart()
	require.NoError(t, cart.AddItem(productWithStock("a", 500, 10), 1))
	require.NoError(t, cart.RemoveItem("a"))

	assert.Equal(t, domain.CartEmpty, cart.Status)
	assert.Empty(t, cart.Lines)
}

func TestSetDiscountRejectsNegative(t *testing.T) {
	cart := newTestCart()
	require.NoError(t, cart.AddItem(productWithStock("a", 500, 10), 1))

	assert.Error(t, cart.SetDiscount(decimal.NewFromInt(-1)))
}

func TestTotalClampsAtZeroWhenDiscountExceedsSubtotal(t *testing.T) {
	cart := newTestCart()
	require.NoError(t, cart.AddItem(productWithStock("a", 500, 10), 1))
	require.NoError(t, cart.SetDiscount(decimal.NewFromInt(800)))

	assert.True(t, cart.Total().IsZero())
}

func TestBeginCommitRejectsEmptyCart(t *testing.T) {
	cart := newTestCart()
	assert.Error(t, cart.BeginCommit())
}

func TestCommitLifecycle(t *testing.T) {
	cart := newTestCart()
	require.NoError(t, cart.AddItem(productWithStock("a", 500, 10), 1))

	require.NoError(t, cart.BeginCommit())
	assert.Equal(t, domain.CartCommitting, cart.Status)

	// No edits while committing.
	assert.Error(t, cart.AddItem(productWithStock("b", 100, 5), 1))
	assert.Error(t, cart.RemoveItem("a"))
	assert.Error(t, cart.Cancel())

	cart.AbortCommit()
	assert.Equal(t, domain.CartBuilding, cart.Status)

	require.NoError(t, cart.BeginCommit())
	cart.Complete()
	assert.Equal(t, domain.CartCompleted, cart.Status)

	// Completed is terminal.
	assert.Error(t, cart.AddItem(productWithStock("a", 500, 10), 1))
	assert.Error(t, cart.Cancel())
}

func TestCancelResetsCart(t *testing.T) {
	cart := newTestCart()
	require.NoError(t, cart.AddItem(productWithStock("a", 500, 10), 2))
	require.NoError(t, cart.SetDiscount(decimal.NewFromInt(100)))

	require.NoError(t, cart.Cancel())

	assert.Equal(t, domain.CartEmpty, cart.Status)
	assert.Empty(t, cart.Lines)
	assert.True(t, cart.Discount.IsZero())
}

func TestComputeTotalClampsAtZero(t *testing.T) {
	items := []domain.SaleLineItem{
		{LineTotal: decimal.NewFromInt(100)},
	}
	total := domain.ComputeTotal(items, decimal.NewFromInt(500))
	assert.True(t, total.IsZero())
}
