package delivery

import (
	"context"
	"fmt"
	"sync"

	"tofi-shop/internal/model"
	"tofi-shop/internal/swiss"

	"github.com/rs/zerolog"
)

// checker implements Checker over per-carrier zip sets.
type checker struct {
	zipSets []ZipSet
	logger  zerolog.Logger
	// No mutex needed - zip sets are read-only after initialization
}

// CheckerConfig holds configuration for the delivery checker.
type CheckerConfig struct {
	// ZoneFiles is the list of zone coverage files, one per carrier.
	ZoneFiles []string
}

// NewChecker creates a delivery checker, loading all zone files concurrently
// at initialisation time.
func NewChecker(ctx context.Context, cfg CheckerConfig, loader Loader, logger zerolog.Logger) (Checker, error) {
	logger = logger.With().Str("component", "delivery-checker").Logger()

	logger.Info().
		Int("file_count", len(cfg.ZoneFiles)).
		Msg("initialising delivery checker")

	c := &checker{
		zipSets: make([]ZipSet, 0, len(cfg.ZoneFiles)),
		logger:  logger,
	}

	type loadResult struct {
		index int
		set   ZipSet
		err   error
	}

	resultChan := make(chan loadResult, len(cfg.ZoneFiles))
	var wg sync.WaitGroup

	for i, filePath := range cfg.ZoneFiles {
		wg.Add(1)
		go func(index int, path string) {
			defer wg.Done()

			set, err := loader.Load(ctx, path)
			resultChan <- loadResult{
				index: index,
				set:   set,
				err:   err,
			}
		}(i, filePath)
	}

	wg.Wait()
	close(resultChan)

	// Collect results in order
	results := make([]loadResult, len(cfg.ZoneFiles))
	for result := range resultChan {
		results[result.index] = result
	}

	totalZips := 0
	for i, result := range results {
		if result.err != nil {
			logger.Error().
				Err(result.err).
				Str("file", cfg.ZoneFiles[i]).
				Msg("failed to load zone file")
			return nil, fmt.Errorf("failed to load zone file %s: %w", cfg.ZoneFiles[i], result.err)
		}
		c.zipSets = append(c.zipSets, result.set)
		totalZips += result.set.Size()
	}

	logger.Info().
		Int("carriers", len(c.zipSets)).
		Int("total_zips", totalZips).
		Msg("delivery checker initialised successfully")

	return c, nil
}

// Deliverable returns nil if at least one carrier covers the zip code.
func (c *checker) Deliverable(ctx context.Context, zipCode string) error {
	if !swiss.IsValidPostalCode(zipCode) {
		c.logger.Debug().Str("zip", zipCode).Msg("zip code structurally invalid")
		return model.ErrUndeliverableZip
	}

	for _, set := range c.zipSets {
		if set.Contains(zipCode) {
			return nil
		}
	}

	c.logger.Debug().Str("zip", zipCode).Msg("zip code not covered by any carrier")
	return model.ErrUndeliverableZip
}

// Close releases resources held by the checker.
func (c *checker) Close() error {
	// Clear zip sets to allow GC to reclaim memory
	c.zipSets = nil

	c.logger.Info().Msg("delivery checker closed")

	return nil
}
