package integration

import (
	"context"
	"sync"
	"testing"

	"tofi-shop/internal/delivery"
	"tofi-shop/internal/events"
	"tofi-shop/internal/model"
	"tofi-shop/internal/repository"
	"tofi-shop/internal/service"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newOrderService(testDB *TestDB) (service.OrderService, repository.ProductRepository) {
	logger := zerolog.Nop()
	productRepo := repository.NewProductRepository(testDB.Pool, logger)
	orderRepo := repository.NewOrderRepository(testDB.Pool, logger)
	svc := service.NewOrderService(orderRepo, productRepo, delivery.NopChecker{}, events.NopPublisher{}, nil, logger)
	return svc, productRepo
}

func checkoutRequest(items ...model.OrderItemRequest) *model.OrderRequest {
	address := model.Address{
		Street:       "Bahnhofstrasse",
		StreetNumber: "10",
		ZipCode:      "8001",
		City:         "Zürich",
		Canton:       "ZH",
		Country:      "CH",
		Email:        "anna@example.ch",
	}

	return &model.OrderRequest{
		Items:           items,
		ShippingAddress: address,
		BillingAddress:  address,
		PaymentMethod:   model.PaymentMethodTwint,
	}
}

func TestCheckout_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	testDB := SetupTestDB(t)
	svc, productRepo := newOrderService(testDB)
	ctx := context.Background()

	t.Run("Order persists with computed totals and decremented stock", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		SeedCatalog(t, testDB.Pool)

		resp, err := svc.PlaceOrder(ctx, checkoutRequest(
			model.OrderItemRequest{ProductID: "P001", Quantity: 1},
		))

		require.NoError(t, err)
		assert.Equal(t, "45.90", resp.Order.Subtotal.StringFixed(2))
		assert.Equal(t, "3.53", resp.Order.MWST.StringFixed(2))
		assert.Equal(t, "9.90", resp.Order.ShippingCost.StringFixed(2))
		assert.Equal(t, "59.33", resp.Order.Total.StringFixed(2))

		// The order is readable back through both lookups
		byID, err := svc.GetByID(ctx, resp.Order.ID)
		require.NoError(t, err)
		assert.Equal(t, resp.Order.OrderNumber, byID.Order.OrderNumber)

		byNumber, err := svc.GetByOrderNumber(ctx, resp.Order.OrderNumber)
		require.NoError(t, err)
		assert.Equal(t, resp.Order.ID, byNumber.Order.ID)

		product, err := productRepo.GetByID(ctx, "P001")
		require.NoError(t, err)
		assert.Equal(t, 9, product.Stock)
	})

	t.Run("Free shipping above threshold", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		SeedCatalog(t, testDB.Pool)

		resp, err := svc.PlaceOrder(ctx, checkoutRequest(
			model.OrderItemRequest{ProductID: "P002", Quantity: 2},
		))

		require.NoError(t, err)
		assert.Equal(t, "110.00", resp.Order.Subtotal.StringFixed(2))
		assert.Equal(t, "8.47", resp.Order.MWST.StringFixed(2))
		assert.Equal(t, "0.00", resp.Order.ShippingCost.StringFixed(2))
		assert.Equal(t, "118.47", resp.Order.Total.StringFixed(2))
	})

	t.Run("Out-of-stock product cannot be ordered", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		SeedCatalog(t, testDB.Pool)

		_, err := svc.PlaceOrder(ctx, checkoutRequest(
			model.OrderItemRequest{ProductID: "P003", Quantity: 1},
		))

		var stockErr *model.InsufficientStockError
		require.ErrorAs(t, err, &stockErr)
		assert.Equal(t, 0, stockErr.Available)
	})

	t.Run("Inactive product cannot be ordered", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		SeedCatalog(t, testDB.Pool)

		_, err := svc.PlaceOrder(ctx, checkoutRequest(
			model.OrderItemRequest{ProductID: "P004", Quantity: 1},
		))

		assert.ErrorIs(t, err, model.ErrProductUnavailable)
	})
}

func TestCheckout_ConcurrentOversell(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	testDB := SetupTestDB(t)
	svc, productRepo := newOrderService(testDB)
	ctx := context.Background()

	CleanupDB(t, testDB.Pool)
	SeedCatalog(t, testDB.Pool)

	// P002 has stock 5; two concurrent checkouts want 3 each, so only one
	// can succeed
	const buyers = 2
	errs := make([]error, buyers)
	var wg sync.WaitGroup

	for i := 0; i < buyers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.PlaceOrder(ctx, checkoutRequest(
				model.OrderItemRequest{ProductID: "P002", Quantity: 3},
			))
		}(i)
	}
	wg.Wait()

	successes := 0
	for _, err := range errs {
		if err == nil {
			successes++
		} else {
			var stockErr *model.InsufficientStockError
			assert.ErrorAs(t, err, &stockErr)
		}
	}
	assert.Equal(t, 1, successes)

	// Stock is decremented exactly once and never goes negative
	product, err := productRepo.GetByID(ctx, "P002")
	require.NoError(t, err)
	assert.Equal(t, 2, product.Stock)
}

func TestCheckout_PaymentIdempotency(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	testDB := SetupTestDB(t)
	svc, _ := newOrderService(testDB)
	ctx := context.Background()

	CleanupDB(t, testDB.Pool)
	SeedCatalog(t, testDB.Pool)

	placed, err := svc.PlaceOrder(ctx, checkoutRequest(
		model.OrderItemRequest{ProductID: "P001", Quantity: 1},
	))
	require.NoError(t, err)

	// First outcome transitions the order
	resp, err := svc.RecordPaymentOutcome(ctx, placed.Order.ID, true)
	require.NoError(t, err)
	assert.Equal(t, model.PaymentStatusPaid, resp.Order.PaymentStatus)
	assert.Equal(t, model.OrderStatusConfirmed, resp.Order.Status)

	// Replayed callbacks are rejected, whatever outcome they carry
	_, err = svc.RecordPaymentOutcome(ctx, placed.Order.ID, true)
	assert.ErrorIs(t, err, model.ErrPaymentAlreadyRecorded)

	_, err = svc.RecordPaymentOutcome(ctx, placed.Order.ID, false)
	assert.ErrorIs(t, err, model.ErrPaymentAlreadyRecorded)

	// The first outcome is still in place
	final, err := svc.GetByID(ctx, placed.Order.ID)
	require.NoError(t, err)
	assert.Equal(t, model.PaymentStatusPaid, final.Order.PaymentStatus)
}
