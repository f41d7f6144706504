package repository

import (
	"context"

	"tofi-shop/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// ProductRepository defines the interface for product data access operations.
type ProductRepository interface {
	// List retrieves active products matching the filter.
	List(ctx context.Context, filter model.ProductFilter) ([]model.Product, error)

	// GetByID retrieves a single product by its ID.
	GetByID(ctx context.Context, id string) (*model.Product, error)

	// GetActiveByIDs retrieves the active products among the given IDs.
	// Missing or inactive products are simply absent from the result.
	GetActiveByIDs(ctx context.Context, ids []string) ([]model.Product, error)

	// GetByIDs retrieves products by their IDs regardless of active flag.
	GetByIDs(ctx context.Context, ids []string) ([]model.Product, error)

	// GetFeatured retrieves the newest active products with stock available.
	GetFeatured(ctx context.Context, limit int) ([]model.Product, error)

	// DecrementStock atomically decrements a product's stock within the
	// provided transaction, but only if enough stock remains. It returns
	// false when the conditional update matched no row.
	DecrementStock(ctx context.Context, tx pgx.Tx, productID string, quantity int) (bool, error)

	// GetStock reads a product's current stock within the provided transaction.
	GetStock(ctx context.Context, tx pgx.Tx, productID string) (int, error)
}

// OrderRepository defines the interface for order data access operations.
type OrderRepository interface {
	// BeginTx starts a new database transaction.
	BeginTx(ctx context.Context) (pgx.Tx, error)

	// CreateOrder inserts a new order within the provided transaction.
	CreateOrder(ctx context.Context, tx pgx.Tx, order *model.Order) error

	// CreateOrderItems inserts multiple order items within the provided transaction.
	CreateOrderItems(ctx context.Context, tx pgx.Tx, items []model.OrderItem) error

	// GetByID retrieves an order by its ID along with its items.
	// Returns (nil, nil, nil) when the order does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Order, []model.OrderItem, error)

	// GetByOrderNumber retrieves an order by its human-readable order number.
	GetByOrderNumber(ctx context.Context, orderNumber string) (*model.Order, []model.OrderItem, error)

	// RecordPayment transitions payment status and order status, but only
	// for orders whose payment status is still pending. Returns the updated
	// order, or nil when no pending order matched the ID.
	RecordPayment(ctx context.Context, id uuid.UUID, paymentStatus model.PaymentStatus, status model.OrderStatus) (*model.Order, error)
}

// CategoryRepository defines the interface for category data access operations.
type CategoryRepository interface {
	// List retrieves all categories ordered by name.
	List(ctx context.Context) ([]model.Category, error)
}
