// Command seed applies the schema and loads a starter catalogue into the
// configured database.
package main

import (
	"context"
	"fmt"
	"os"

	"tofi-shop/internal/config"
	"tofi-shop/internal/database"

	"github.com/shopspring/decimal"
)

type seedProduct struct {
	id          string
	name        string
	description string
	price       string
	stock       int
	categoryID  string
	season      string
	region      string
	farmer      string
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger := config.NewLogger(cfg.Logger)

	ctx := context.Background()
	pool, err := database.NewPool(ctx, cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer pool.Close()

	if _, err := pool.Exec(ctx, database.Schema); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	logger.Info().Msg("schema applied")

	categories := []struct {
		id, name, slug, description string
	}{
		{"bouquets", "Bouquets", "bouquets", "Hand-tied bouquets from Swiss farms"},
		{"subscriptions", "Subscriptions", "subscriptions", "Weekly and monthly flower subscriptions"},
		{"dried", "Dried Flowers", "dried-flowers", "Long-lasting dried arrangements"},
		{"seasonal", "Seasonal", "seasonal", "Whatever the season offers"},
	}

	for _, c := range categories {
		_, err := pool.Exec(ctx, `
			INSERT INTO categories (id, name, slug, description)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (id) DO NOTHING`,
			c.id, c.name, c.slug, c.description)
		if err != nil {
			return fmt.Errorf("failed to seed category %s: %w", c.id, err)
		}
	}
	logger.Info().Int("count", len(categories)).Msg("categories seeded")

	products := []seedProduct{
		{"alpenrosen-strauss", "Alpenrosen Strauss", "Alpine roses picked above 1500m", "45.90", 25, "bouquets", "summer", "wallis", "Bergblumen Meier"},
		{"wildblumen-mix", "Wildblumen Mix", "A loose mix of meadow flowers", "29.50", 40, "bouquets", "spring", "emmental", "Hof Brunner"},
		{"sonnenblumen-bund", "Sonnenblumen Bund", "Ten stems of field-grown sunflowers", "24.00", 30, "bouquets", "summer", "seeland", "Gemuesehof Stutz"},
		{"pfingstrosen-deluxe", "Pfingstrosen Deluxe", "Full peony bouquet, two weeks a year", "68.00", 12, "bouquets", "spring", "thurgau", "Blumenhof Keller"},
		{"saisonales-abo", "Saisonales Abo", "A monthly surprise from the current harvest", "55.00", 100, "subscriptions", "", "", ""},
		{"wochen-abo", "Wochen Abo", "A fresh bouquet every week", "39.00", 100, "subscriptions", "", "", ""},
		{"trockenblumen-kranz", "Trockenblumen Kranz", "Dried flower wreath, lasts a year", "89.00", 8, "dried", "", "bern", "Atelier Flora"},
		{"trockenstrauss-klein", "Trockenstrauss Klein", "Small dried bouquet for the desk", "34.00", 15, "dried", "", "bern", "Atelier Flora"},
		{"herbstzauber", "Herbstzauber", "Dahlias, asters and rose hips", "49.50", 20, "seasonal", "autumn", "zuerich", "Stadtgaertnerei Frei"},
		{"fruehlingsgruss", "Fruehlingsgruss", "Tulips and daffodils from the Seeland", "27.90", 35, "seasonal", "spring", "seeland", "Gemuesehof Stutz"},
	}

	for _, p := range products {
		_, err := pool.Exec(ctx, `
			INSERT INTO products (id, name, description, price, stock, category_id, season, region, farmer)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			ON CONFLICT (id) DO UPDATE SET
				name = EXCLUDED.name,
				description = EXCLUDED.description,
				price = EXCLUDED.price,
				stock = EXCLUDED.stock`,
			p.id, p.name, p.description, decimal.RequireFromString(p.price), p.stock,
			p.categoryID, p.season, p.region, p.farmer)
		if err != nil {
			return fmt.Errorf("failed to seed product %s: %w", p.id, err)
		}
	}
	logger.Info().Int("count", len(products)).Msg("products seeded")

	return nil
}
