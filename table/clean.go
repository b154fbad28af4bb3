package table

import (
	"fmt"
	"strings"
)

// NullCount is the number of missing values in one column.
type NullCount struct {
	Column string
	Count  int
}

// CleanResult reports how many rows Clean removed.
type CleanResult struct {
	MissingRows   int
	DuplicateRows int
}

// NullCounts returns the missing value count of every column, in order.
func (t *Table) NullCounts() []NullCount {
	out := make([]NullCount, len(t.cols))
	for j, c := range t.cols {
		out[j] = NullCount{Column: c.name, Count: c.Len() - c.NonMissing()}
	}
	return out
}

// DuplicateCount returns how many rows repeat an earlier row exactly.
func (t *Table) DuplicateCount() int {
	n := 0
	for _, dup := range t.duplicated() {
		if dup {
			n++
		}
	}
	return n
}

func (t *Table) duplicated() []bool {
	out := make([]bool, t.Len())
	seen := make(map[string]struct{}, t.Len())
	var b strings.Builder
	for i := range out {
		k := t.rowKey(i, &b)
		if _, ok := seen[k]; ok {
			out[i] = true
			continue
		}
		seen[k] = struct{}{}
	}
	return out
}

// DropNA removes every row that has a missing value in any column and
// returns the number of rows removed.
func (t *Table) DropNA() int {
	flags := make([]bool, t.Len())
	removed := 0
	for i := range flags {
		flags[i] = true
		for _, c := range t.cols {
			if c.IsMissing(i) {
				flags[i] = false
				removed++
				break
			}
		}
	}
	t.keep(flags)
	return removed
}

// DropDuplicates removes exact duplicate rows, keeping the first
// occurrence, and returns the number of rows removed.
func (t *Table) DropDuplicates() int {
	dups := t.duplicated()
	flags := make([]bool, len(dups))
	removed := 0
	for i, dup := range dups {
		flags[i] = !dup
		if dup {
			removed++
		}
	}
	t.keep(flags)
	return removed
}

// Clean drops rows with missing values, then exact duplicates. Running it
// on a clean table removes nothing.
func (t *Table) Clean() CleanResult {
	return CleanResult{
		MissingRows:   t.DropNA(),
		DuplicateRows: t.DropDuplicates(),
	}
}

// CoerceTypes turns the named columns into identifier tokens. Numeric
// access to them fails afterwards.
func (t *Table) CoerceTypes(names ...string) error {
	for _, name := range names {
		if _, ok := t.index[name]; !ok {
			return fmt.Errorf("%w: %q", ErrNoColumn, name)
		}
	}
	for _, name := range names {
		t.cols[t.index[name]].asIdentifier()
	}
	return nil
}
