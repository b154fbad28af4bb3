package models

import "listing-profiler/table"

// Profile is the read-only inspection of a table.
type Profile struct {
	Rows        int
	Cols        int
	Columns     []string
	Head        *table.Table
	Tail        *table.Table
	Info        []table.ColumnInfo
	Numeric     []table.ColumnSummary
	Categorical []table.CategorySummary
	Nulls       []table.NullCount
}

// CleanSummary records what cleaning removed and which columns were
// re-declared as identifiers.
type CleanSummary struct {
	RowsBefore       int
	RowsAfter        int
	MissingRows      int
	DuplicatesBefore int
	DuplicateRows    int
	DuplicatesAfter  int
	NullsAfter       []table.NullCount
	Coerced          []string
}
