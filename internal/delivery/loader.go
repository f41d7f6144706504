package delivery

import (
	"bufio"
	"compress/gzip"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// fileLoader implements Loader for reading gzipped zone files from disk.
type fileLoader struct {
	logger zerolog.Logger
}

// NewFileLoader creates a new file-based zone loader.
func NewFileLoader(logger zerolog.Logger) Loader {
	return &fileLoader{
		logger: logger.With().Str("component", "zone-loader").Logger(),
	}
}

// Load reads a gzipped zone file and returns a ZipSet.
// The file is expected to contain one zip code per line.
func (l *fileLoader) Load(ctx context.Context, filePath string) (ZipSet, error) {
	l.logger.Info().Str("file", filePath).Msg("loading zone file")

	file, err := os.Open(filePath)
	if err != nil {
		l.logger.Error().Err(err).Str("file", filePath).Msg("failed to open zone file")
		return nil, fmt.Errorf("failed to open zone file %s: %w", filePath, err)
	}
	defer file.Close()

	gzipReader, err := gzip.NewReader(file)
	if err != nil {
		l.logger.Error().Err(err).Str("file", filePath).Msg("failed to create gzip reader")
		return nil, fmt.Errorf("failed to create gzip reader for %s: %w", filePath, err)
	}
	defer gzipReader.Close()

	return readZipSet(ctx, gzipReader, filePath, l.logger)
}

// readZipSet parses one zip code per line from r into a set. Shared with the
// S3 loader.
func readZipSet(ctx context.Context, r interface{ Read([]byte) (int, error) }, source string, logger zerolog.Logger) (ZipSet, error) {
	// Switzerland has fewer than 10k zip codes, so per-carrier sets stay small.
	set := NewMapZipSet(8192).(*mapZipSet)

	scanner := bufio.NewScanner(r)

	lineCount := 0
	for scanner.Scan() {
		// Check context cancellation periodically
		if lineCount%1000 == 0 {
			select {
			case <-ctx.Done():
				logger.Warn().Str("source", source).Msg("zone loading cancelled")
				return nil, ctx.Err()
			default:
			}
		}

		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			set.Add(line)
			lineCount++
		}
	}

	if err := scanner.Err(); err != nil {
		logger.Error().Err(err).Str("source", source).Msg("error reading zone file")
		return nil, fmt.Errorf("error reading zone file %s: %w", source, err)
	}

	logger.Info().
		Str("source", source).
		Int("zips_loaded", set.Size()).
		Msg("zone file loaded successfully")

	return set, nil
}
