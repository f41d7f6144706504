package repository

import (
	"context"
	"fmt"

	"tofi-shop/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

const orderColumns = "id, order_number, status, payment_method, payment_status, shipping_address, billing_address, subtotal, mwst, shipping_cost, total, notes, created_at, updated_at"

// orderRepository implements the OrderRepository interface using PostgreSQL.
type orderRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewOrderRepository creates a new PostgreSQL-backed order repository.
func NewOrderRepository(pool *pgxpool.Pool, logger zerolog.Logger) OrderRepository {
	return &orderRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "order").Logger(),
	}
}

// BeginTx starts a new database transaction.
func (r *orderRepository) BeginTx(ctx context.Context) (pgx.Tx, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to begin transaction")
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	return tx, nil
}

func scanOrder(row pgx.Row, o *model.Order) error {
	return row.Scan(
		&o.ID, &o.OrderNumber, &o.Status, &o.PaymentMethod, &o.PaymentStatus,
		&o.ShippingAddress, &o.BillingAddress,
		&o.Subtotal, &o.MWST, &o.ShippingCost, &o.Total,
		&o.Notes, &o.CreatedAt, &o.UpdatedAt,
	)
}

// CreateOrder inserts a new order within the provided transaction.
func (r *orderRepository) CreateOrder(ctx context.Context, tx pgx.Tx, order *model.Order) error {
	query := `
		INSERT INTO orders (
			id, order_number, status, payment_method, payment_status,
			shipping_address, billing_address,
			subtotal, mwst, shipping_cost, total, notes,
			created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`

	_, err := tx.Exec(ctx, query,
		order.ID, order.OrderNumber, order.Status, order.PaymentMethod, order.PaymentStatus,
		order.ShippingAddress, order.BillingAddress,
		order.Subtotal, order.MWST, order.ShippingCost, order.Total, order.Notes,
		order.CreatedAt, order.UpdatedAt,
	)
	if err != nil {
		r.logger.Error().
			Err(err).
			Str("order_id", order.ID.String()).
			Str("order_number", order.OrderNumber).
			Msg("failed to create order")
		return fmt.Errorf("failed to create order: %w", err)
	}

	r.logger.Debug().
		Str("order_id", order.ID.String()).
		Str("order_number", order.OrderNumber).
		Msg("order created successfully")

	return nil
}

// CreateOrderItems inserts multiple order items within the provided transaction.
func (r *orderRepository) CreateOrderItems(ctx context.Context, tx pgx.Tx, items []model.OrderItem) error {
	if len(items) == 0 {
		return nil
	}

	query := `
		INSERT INTO order_items (id, order_id, product_id, quantity, unit_price, line_total)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	batch := &pgx.Batch{}
	for _, item := range items {
		batch.Queue(query, item.ID, item.OrderID, item.ProductID, item.Quantity, item.UnitPrice, item.LineTotal)
	}

	results := tx.SendBatch(ctx, batch)
	defer results.Close()

	for i := 0; i < len(items); i++ {
		_, err := results.Exec()
		if err != nil {
			r.logger.Error().
				Err(err).
				Str("order_id", items[i].OrderID.String()).
				Str("product_id", items[i].ProductID).
				Msg("failed to create order item")
			return fmt.Errorf("failed to create order item: %w", err)
		}
	}

	r.logger.Debug().
		Int("count", len(items)).
		Msg("order items created successfully")

	return nil
}

// getBy retrieves an order and its items by an arbitrary unique column.
func (r *orderRepository) getBy(ctx context.Context, column string, value any) (*model.Order, []model.OrderItem, error) {
	orderQuery := fmt.Sprintf("SELECT %s FROM orders WHERE %s = $1", orderColumns, column)

	var order model.Order
	err := scanOrder(r.pool.QueryRow(ctx, orderQuery, value), &order)
	if err != nil {
		if err == pgx.ErrNoRows {
			r.logger.Debug().Str("column", column).Msg("order not found")
			return nil, nil, nil
		}
		r.logger.Error().Err(err).Str("column", column).Msg("failed to query order")
		return nil, nil, fmt.Errorf("failed to query order: %w", err)
	}

	itemsQuery := `
		SELECT id, order_id, product_id, quantity, unit_price, line_total
		FROM order_items
		WHERE order_id = $1
		ORDER BY id
	`

	rows, err := r.pool.Query(ctx, itemsQuery, order.ID)
	if err != nil {
		r.logger.Error().
			Err(err).
			Str("order_id", order.ID.String()).
			Msg("failed to query order items")
		return nil, nil, fmt.Errorf("failed to query order items: %w", err)
	}
	defer rows.Close()

	var items []model.OrderItem
	for rows.Next() {
		var item model.OrderItem
		err := rows.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.Quantity, &item.UnitPrice, &item.LineTotal)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan order item row")
			return nil, nil, fmt.Errorf("failed to scan order item: %w", err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating order item rows")
		return nil, nil, fmt.Errorf("error iterating order items: %w", err)
	}

	return &order, items, nil
}

// GetByID retrieves an order by its ID along with its items.
func (r *orderRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Order, []model.OrderItem, error) {
	return r.getBy(ctx, "id", id)
}

// GetByOrderNumber retrieves an order by its human-readable order number.
func (r *orderRepository) GetByOrderNumber(ctx context.Context, orderNumber string) (*model.Order, []model.OrderItem, error) {
	return r.getBy(ctx, "order_number", orderNumber)
}

// RecordPayment transitions payment status and order status for an order that
// is still awaiting payment. The payment_status guard in the WHERE clause is
// what makes repeated payment callbacks harmless.
func (r *orderRepository) RecordPayment(ctx context.Context, id uuid.UUID, paymentStatus model.PaymentStatus, status model.OrderStatus) (*model.Order, error) {
	query := fmt.Sprintf(`
		UPDATE orders
		SET payment_status = $2, status = $3, updated_at = NOW()
		WHERE id = $1 AND payment_status = $4
		RETURNING %s
	`, orderColumns)

	var order model.Order
	err := scanOrder(r.pool.QueryRow(ctx, query, id, paymentStatus, status, model.PaymentStatusPending), &order)
	if err != nil {
		if err == pgx.ErrNoRows {
			r.logger.Debug().Str("order_id", id.String()).Msg("no pending order matched payment update")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("order_id", id.String()).Msg("failed to record payment")
		return nil, fmt.Errorf("failed to record payment: %w", err)
	}

	r.logger.Info().
		Str("order_id", id.String()).
		Str("payment_status", string(paymentStatus)).
		Str("status", string(status)).
		Msg("payment outcome recorded")

	return &order, nil
}
