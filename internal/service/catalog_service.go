package service

import (
	"context"
	"fmt"
	"time"

	"tofi-shop/internal/cache"
	"tofi-shop/internal/model"
	"tofi-shop/internal/repository"

	"github.com/rs/zerolog"
)

// Cache TTLs for catalogue reads. Short on purpose: stock-changing orders
// invalidate explicitly, everything else may lag by at most the TTL.
const (
	productCacheTTL  = 5 * time.Minute
	featuredCacheTTL = 1 * time.Minute
)

// catalogService implements CatalogService, optionally caching single-product
// and featured reads in Redis.
type catalogService struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
	cache        *cache.Cache // nil when caching is disabled
	logger       zerolog.Logger
}

// NewCatalogService creates a new catalogue service.
func NewCatalogService(
	productRepo repository.ProductRepository,
	categoryRepo repository.CategoryRepository,
	c *cache.Cache,
	logger zerolog.Logger,
) CatalogService {
	return &catalogService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		cache:        c,
		logger:       logger.With().Str("service", "catalog").Logger(),
	}
}

// ListProducts retrieves active products matching the filter. Listings are
// not cached: the filter space is too wide for useful hit rates.
func (s *catalogService) ListProducts(ctx context.Context, filter model.ProductFilter) ([]model.Product, error) {
	products, err := s.productRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list products")
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return products, nil
}

// GetProduct retrieves a single product by ID, consulting the cache first.
func (s *catalogService) GetProduct(ctx context.Context, id string) (*model.Product, error) {
	if s.cache != nil {
		var cached model.Product
		hit, err := s.cache.GetJSON(ctx, cache.ProductKey(id), &cached)
		if err != nil {
			// Cache trouble must never fail a read; fall through to the database.
			s.logger.Warn().Err(err).Str("product_id", id).Msg("cache read failed")
		} else if hit {
			return &cached, nil
		}
	}

	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Str("product_id", id).Msg("failed to get product")
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	if product == nil {
		return nil, nil
	}

	if s.cache != nil {
		if err := s.cache.SetJSON(ctx, cache.ProductKey(id), product, productCacheTTL); err != nil {
			s.logger.Warn().Err(err).Str("product_id", id).Msg("cache write failed")
		}
	}

	return product, nil
}

// FeaturedProducts retrieves the newest active products with stock available.
func (s *catalogService) FeaturedProducts(ctx context.Context, limit int) ([]model.Product, error) {
	if s.cache != nil {
		var cached []model.Product
		hit, err := s.cache.GetJSON(ctx, cache.FeaturedKey, &cached)
		if err != nil {
			s.logger.Warn().Err(err).Msg("cache read failed")
		} else if hit && len(cached) >= limit && limit > 0 {
			return cached[:limit], nil
		}
	}

	products, err := s.productRepo.GetFeatured(ctx, limit)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to get featured products")
		return nil, fmt.Errorf("failed to get featured products: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.SetJSON(ctx, cache.FeaturedKey, products, featuredCacheTTL); err != nil {
			s.logger.Warn().Err(err).Msg("cache write failed")
		}
	}

	return products, nil
}

// ListCategories retrieves all categories.
func (s *catalogService) ListCategories(ctx context.Context) ([]model.Category, error) {
	categories, err := s.categoryRepo.List(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list categories")
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}
