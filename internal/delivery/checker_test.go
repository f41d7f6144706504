package delivery

import (
	"context"
	"testing"

	"tofi-shop/internal/model"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChecker_Deliverable(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	dir := t.TempDir()
	postFile := writeZoneFile(t, dir, "post.gz", []string{"8001", "8002", "3000"})
	courierFile := writeZoneFile(t, dir, "courier.gz", []string{"1200", "1201"})

	checker, err := NewChecker(ctx, CheckerConfig{
		ZoneFiles: []string{postFile, courierFile},
	}, NewFileLoader(logger), logger)
	require.NoError(t, err)
	defer checker.Close()

	tests := []struct {
		name        string
		zip         string
		deliverable bool
	}{
		{"Covered by first carrier", "8001", true},
		{"Covered by second carrier", "1201", true},
		{"Not covered by any carrier", "6900", false},
		{"Structurally invalid zip", "abc", false},
		{"Too short", "800", false},
		{"Too long", "80001", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := checker.Deliverable(ctx, tt.zip)

			if tt.deliverable {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, model.ErrUndeliverableZip)
			}
		})
	}
}

func TestNewChecker_LoadFailure(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	dir := t.TempDir()
	goodFile := writeZoneFile(t, dir, "good.gz", []string{"8001"})

	checker, err := NewChecker(ctx, CheckerConfig{
		ZoneFiles: []string{goodFile, "/nonexistent/bad.gz"},
	}, NewFileLoader(logger), logger)

	require.Error(t, err)
	assert.Nil(t, checker)
}

func TestNewChecker_NoZoneFiles(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	checker, err := NewChecker(ctx, CheckerConfig{}, NewFileLoader(logger), logger)
	require.NoError(t, err)
	defer checker.Close()

	// With no carriers configured, nothing is deliverable
	assert.ErrorIs(t, checker.Deliverable(ctx, "8001"), model.ErrUndeliverableZip)
}

func TestNopChecker(t *testing.T) {
	ctx := context.Background()

	checker := NopChecker{}

	assert.NoError(t, checker.Deliverable(ctx, "8001"))
	assert.NoError(t, checker.Deliverable(ctx, "0000"))
	assert.NoError(t, checker.Close())
}
