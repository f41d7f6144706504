package repository

import (
	"context"
	"testing"
	"time"

	"tofi-shop/internal/database"
	"tofi-shop/internal/model"

	"github.com/google/uuid"
	pgxdecimal "github.com/jackc/pgx-shopspring-decimal"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// setupTestDB creates a PostgreSQL testcontainer and returns a connection pool
// with the schema applied.
func setupTestDB(t *testing.T) (*pgxpool.Pool, func()) {
	t.Helper()

	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("postgres"),
		postgres.WithPassword("postgres"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err)

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	poolConfig, err := pgxpool.ParseConfig(connStr)
	require.NoError(t, err)

	// Same codec registration as database.NewPool, so DECIMAL columns scan
	// into decimal.Decimal
	poolConfig.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		pgxdecimal.Register(conn.TypeMap())
		return nil
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	require.NoError(t, err)

	_, err = pool.Exec(ctx, database.Schema)
	require.NoError(t, err)

	cleanup := func() {
		pool.Close()
		_ = pgContainer.Terminate(ctx)
	}

	return pool, cleanup
}

// seedCatalog inserts a category plus a small set of flower products, one of
// them inactive and one out of stock.
func seedCatalog(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	ctx := context.Background()

	_, err := pool.Exec(ctx,
		"INSERT INTO categories (id, name, slug) VALUES ($1, $2, $3)",
		"bouquets", "Bouquets", "bouquets")
	require.NoError(t, err)

	products := []struct {
		id       string
		name     string
		price    string
		stock    int
		season   string
		region   string
		farmer   string
		isActive bool
	}{
		{"P001", "Alpenrosen Strauss", "45.90", 10, "summer", "wallis", "Bergblumen Meier", true},
		{"P002", "Saisonales Abo", "55.00", 5, "summer", "zuerich", "Hof Brunner", true},
		{"P003", "Wildblumen Mix", "29.50", 0, "spring", "wallis", "Bergblumen Meier", true},
		{"P004", "Trockenblumen Kranz", "89.00", 3, "", "bern", "Atelier Flora", false},
	}

	for _, p := range products {
		_, err := pool.Exec(ctx, `
			INSERT INTO products (id, name, price, stock, category_id, season, region, farmer, is_active)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
			p.id, p.name, decimal.RequireFromString(p.price), p.stock,
			"bouquets", p.season, p.region, p.farmer, p.isActive)
		require.NoError(t, err)
	}
}

// testOrder builds a persistable order with valid addresses and totals.
func testOrder(orderNumber string) *model.Order {
	address := model.Address{
		Street:       "Bahnhofstrasse",
		StreetNumber: "10",
		ZipCode:      "8001",
		City:         "Zürich",
		Canton:       "ZH",
		Country:      "CH",
		Email:        "anna@example.ch",
	}

	now := time.Now().UTC().Truncate(time.Millisecond)
	return &model.Order{
		ID:              uuid.New(),
		OrderNumber:     orderNumber,
		Status:          model.OrderStatusPending,
		PaymentMethod:   model.PaymentMethodTwint,
		PaymentStatus:   model.PaymentStatusPending,
		ShippingAddress: address,
		BillingAddress:  address,
		Subtotal:        decimal.RequireFromString("45.90"),
		MWST:            decimal.RequireFromString("3.53"),
		ShippingCost:    decimal.RequireFromString("9.90"),
		Total:           decimal.RequireFromString("59.33"),
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}
