// Package delivery answers whether a Swiss zip code is inside the shop's
// delivery area. Coverage is defined by gzipped zone files (one zip code per
// line, one file per carrier) loaded once at startup.
package delivery

import (
	"context"
)

// Checker decides whether an address can be delivered to.
type Checker interface {
	// Deliverable returns nil if at least one carrier covers the zip code,
	// model.ErrUndeliverableZip otherwise.
	Deliverable(ctx context.Context, zipCode string) error

	// Close releases resources held by the checker.
	Close() error
}

// ZipSet represents one carrier's covered zip codes for fast lookup.
type ZipSet interface {
	// Contains checks if a zip code is covered.
	Contains(zipCode string) bool

	// Size returns the number of zip codes in the set.
	Size() int
}

// Loader defines the interface for loading zone coverage files.
type Loader interface {
	// Load reads a gzipped zone file and returns a ZipSet.
	Load(ctx context.Context, filePath string) (ZipSet, error)
}

// NopChecker treats every zip code as deliverable. Used when zone checking
// is disabled.
type NopChecker struct{}

func (NopChecker) Deliverable(context.Context, string) error { return nil }
func (NopChecker) Close() error                              { return nil }
