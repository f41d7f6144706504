package service

import (
	"context"

	"tofi-shop/internal/model"

	"github.com/google/uuid"
)

// CatalogService defines read operations for the product catalogue.
type CatalogService interface {
	// ListProducts retrieves active products matching the filter.
	ListProducts(ctx context.Context, filter model.ProductFilter) ([]model.Product, error)

	// GetProduct retrieves a single product by ID. Returns (nil, nil) when
	// the product does not exist.
	GetProduct(ctx context.Context, id string) (*model.Product, error)

	// FeaturedProducts retrieves the newest active products with stock.
	FeaturedProducts(ctx context.Context, limit int) ([]model.Product, error)

	// ListCategories retrieves all categories.
	ListCategories(ctx context.Context) ([]model.Category, error)
}

// OrderService defines operations for placing and tracking orders.
type OrderService interface {
	// PlaceOrder validates availability and stock, computes Swiss VAT and
	// shipping, and persists the order atomically with the stock decrement.
	PlaceOrder(ctx context.Context, req *model.OrderRequest) (*model.OrderResponse, error)

	// RecordPaymentOutcome transitions an order's payment status, guarded so
	// a payment outcome is only recorded once.
	RecordPaymentOutcome(ctx context.Context, orderID uuid.UUID, success bool) (*model.OrderResponse, error)

	// GetByID retrieves an order by its ID with all items and product details.
	GetByID(ctx context.Context, id uuid.UUID) (*model.OrderResponse, error)

	// GetByOrderNumber retrieves an order by its human-readable order number.
	GetByOrderNumber(ctx context.Context, orderNumber string) (*model.OrderResponse, error)
}
