package repository

import (
	"context"
	"testing"

	"tofi-shop/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// createTestOrder persists an order with one item for P001 and returns it.
func createTestOrder(t *testing.T, repo OrderRepository, orderNumber string) *model.Order {
	t.Helper()

	ctx := context.Background()
	order := testOrder(orderNumber)

	tx, err := repo.BeginTx(ctx)
	require.NoError(t, err)

	require.NoError(t, repo.CreateOrder(ctx, tx, order))
	require.NoError(t, repo.CreateOrderItems(ctx, tx, []model.OrderItem{
		{
			ID:        uuid.New(),
			OrderID:   order.ID,
			ProductID: "P001",
			Quantity:  1,
			UnitPrice: decimal.RequireFromString("45.90"),
			LineTotal: decimal.RequireFromString("45.90"),
		},
	}))
	require.NoError(t, tx.Commit(ctx))

	return order
}

func TestOrderRepository_CreateAndGet(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	pool, cleanup := setupTestDB(t)
	defer cleanup()

	logger := zerolog.Nop()
	repo := NewOrderRepository(pool, logger)
	ctx := context.Background()

	seedCatalog(t, pool)
	created := createTestOrder(t, repo, "TF-TEST01-AAAAAA")

	t.Run("GetByID round trip", func(t *testing.T) {
		order, items, err := repo.GetByID(ctx, created.ID)

		require.NoError(t, err)
		require.NotNil(t, order)

		assert.Equal(t, created.ID, order.ID)
		assert.Equal(t, "TF-TEST01-AAAAAA", order.OrderNumber)
		assert.Equal(t, model.OrderStatusPending, order.Status)
		assert.Equal(t, model.PaymentStatusPending, order.PaymentStatus)
		assert.Equal(t, model.PaymentMethodTwint, order.PaymentMethod)

		// JSONB addresses survive the round trip
		assert.Equal(t, created.ShippingAddress, order.ShippingAddress)
		assert.Equal(t, created.BillingAddress, order.BillingAddress)

		// Decimal columns keep their exact values
		assert.True(t, order.Subtotal.Equal(decimal.RequireFromString("45.90")))
		assert.True(t, order.MWST.Equal(decimal.RequireFromString("3.53")))
		assert.True(t, order.ShippingCost.Equal(decimal.RequireFromString("9.90")))
		assert.True(t, order.Total.Equal(decimal.RequireFromString("59.33")))

		require.Len(t, items, 1)
		assert.Equal(t, "P001", items[0].ProductID)
		assert.True(t, items[0].UnitPrice.Equal(decimal.RequireFromString("45.90")))
	})

	t.Run("GetByOrderNumber", func(t *testing.T) {
		order, items, err := repo.GetByOrderNumber(ctx, "TF-TEST01-AAAAAA")

		require.NoError(t, err)
		require.NotNil(t, order)
		assert.Equal(t, created.ID, order.ID)
		assert.Len(t, items, 1)
	})

	t.Run("GetByID not found", func(t *testing.T) {
		order, items, err := repo.GetByID(ctx, uuid.New())

		require.NoError(t, err)
		assert.Nil(t, order)
		assert.Nil(t, items)
	})

	t.Run("GetByOrderNumber not found", func(t *testing.T) {
		order, _, err := repo.GetByOrderNumber(ctx, "TF-MISSING-000000")

		require.NoError(t, err)
		assert.Nil(t, order)
	})
}

func TestOrderRepository_DuplicateOrderNumber(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	pool, cleanup := setupTestDB(t)
	defer cleanup()

	logger := zerolog.Nop()
	repo := NewOrderRepository(pool, logger)
	ctx := context.Background()

	seedCatalog(t, pool)
	createTestOrder(t, repo, "TF-TEST02-AAAAAA")

	tx, err := repo.BeginTx(ctx)
	require.NoError(t, err)
	defer tx.Rollback(ctx)

	err = repo.CreateOrder(ctx, tx, testOrder("TF-TEST02-AAAAAA"))

	require.Error(t, err)
}

func TestOrderRepository_RecordPayment(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	pool, cleanup := setupTestDB(t)
	defer cleanup()

	logger := zerolog.Nop()
	repo := NewOrderRepository(pool, logger)
	ctx := context.Background()

	seedCatalog(t, pool)
	created := createTestOrder(t, repo, "TF-TEST03-AAAAAA")

	t.Run("First outcome transitions the order", func(t *testing.T) {
		order, err := repo.RecordPayment(ctx, created.ID, model.PaymentStatusPaid, model.OrderStatusConfirmed)

		require.NoError(t, err)
		require.NotNil(t, order)
		assert.Equal(t, model.PaymentStatusPaid, order.PaymentStatus)
		assert.Equal(t, model.OrderStatusConfirmed, order.Status)
	})

	t.Run("Second outcome matches no pending order", func(t *testing.T) {
		order, err := repo.RecordPayment(ctx, created.ID, model.PaymentStatusFailed, model.OrderStatusCancelled)

		require.NoError(t, err)
		assert.Nil(t, order)

		// First outcome must still be in place
		persisted, _, err := repo.GetByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, model.PaymentStatusPaid, persisted.PaymentStatus)
		assert.Equal(t, model.OrderStatusConfirmed, persisted.Status)
	})

	t.Run("Unknown order matches nothing", func(t *testing.T) {
		order, err := repo.RecordPayment(ctx, uuid.New(), model.PaymentStatusPaid, model.OrderStatusConfirmed)

		require.NoError(t, err)
		assert.Nil(t, order)
	})
}
