package storage

import (
	"context"

	"listing-profiler/table"
)

// TableReader is the interface any listings source must satisfy.
type TableReader interface {
	Read(ctx context.Context) (*table.Table, error)
}

// LoadStats describes what a reader had to skip or coerce while loading.
type LoadStats struct {
	Rows          int
	SkippedRows   int
	UnparsedCells int
}
