package table

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Schema declares the kind of each named column at load time. Columns the
// schema does not name are inferred from their values.
type Schema map[string]Kind

// Table is a column-major, in-memory dataset. Every column has the same
// length and rows keep their source order.
//
// A Table is owned by whoever created it. Clean, CoerceTypes, DeriveColumn
// and AddColumn mutate the receiver; Filter, Where, Head, Tail, Select and
// Clone always return an independent copy.
type Table struct {
	cols   []*Column
	index  map[string]int
	labels []int
}

// New assembles a table from columns of equal length. Row labels start at 0.
func New(cols ...*Column) (*Table, error) {
	t := &Table{index: make(map[string]int, len(cols))}
	n := -1
	for _, c := range cols {
		if n >= 0 && c.Len() != n {
			return nil, fmt.Errorf("%w: %q has %d rows, want %d", ErrLength, c.name, c.Len(), n)
		}
		n = c.Len()
		if _, dup := t.index[c.name]; dup {
			return nil, fmt.Errorf("table: duplicate column %q", c.name)
		}
		t.index[c.name] = len(t.cols)
		t.cols = append(t.cols, c)
	}
	if n < 0 {
		n = 0
	}
	t.labels = make([]int, n)
	for i := range t.labels {
		t.labels[i] = i
	}
	return t, nil
}

// nullTokens are the cell values read as missing, besides the empty string.
var nullTokens = map[string]struct{}{
	"#N/A": {}, "#N/A N/A": {}, "#NA": {}, "-1.#IND": {}, "-1.#QNAN": {},
	"-NaN": {}, "-nan": {}, "1.#IND": {}, "1.#QNAN": {}, "<NA>": {},
	"N/A": {}, "NA": {}, "NULL": {}, "NaN": {}, "None": {}, "n/a": {},
	"nan": {}, "null": {},
}

// isNullToken reports whether a raw cell value stands for a missing value.
func isNullToken(s string) bool {
	if s == "" {
		return true
	}
	_, ok := nullTokens[s]
	return ok
}

// FromRecords builds a table from a header and string records. Empty cells
// and null tokens such as NA, N/A, null or nan are missing. Cells of a declared numeric column that do not parse are
// stored as missing and counted in the returned int.
func FromRecords(header []string, records [][]string, schema Schema) (*Table, int, error) {
	cols := make([]*Column, len(header))
	bad := 0
	for j, name := range header {
		vals := make([]string, len(records))
		for i, rec := range records {
			if j < len(rec) && !isNullToken(rec[j]) {
				vals[i] = rec[j]
			}
		}

		kind, declared := schema[name]
		if !declared {
			kind = inferKind(vals)
		}
		if kind != Numeric {
			cols[j] = NewText(name, kind, vals)
			continue
		}

		nums := make([]float64, len(vals))
		for i, v := range vals {
			if v == "" {
				nums[i] = math.NaN()
				continue
			}
			f, err := strconv.ParseFloat(v, 64)
			if err != nil {
				nums[i] = math.NaN()
				bad++
				continue
			}
			nums[i] = f
		}
		cols[j] = &Column{name: name, kind: Numeric, nums: nums}
	}
	t, err := New(cols...)
	if err != nil {
		return nil, 0, err
	}
	return t, bad, nil
}

// inferKind returns Numeric when every non-empty value parses as a float.
func inferKind(vals []string) Kind {
	seen := false
	for _, v := range vals {
		if v == "" {
			continue
		}
		seen = true
		if _, err := strconv.ParseFloat(v, 64); err != nil {
			return Categorical
		}
	}
	if !seen {
		return Categorical
	}
	return Numeric
}

// Len returns the number of rows.
func (t *Table) Len() int { return len(t.labels) }

// Shape returns rows and columns.
func (t *Table) Shape() (rows, cols int) { return len(t.labels), len(t.cols) }

// Names returns the column names in order.
func (t *Table) Names() []string {
	out := make([]string, len(t.cols))
	for i, c := range t.cols {
		out[i] = c.name
	}
	return out
}

// Labels returns the source row position of every row.
func (t *Table) Labels() []int { return append([]int(nil), t.labels...) }

// Column looks up a column by name.
func (t *Table) Column(name string) (*Column, error) {
	i, ok := t.index[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNoColumn, name)
	}
	return t.cols[i], nil
}

// Floats returns a copy of a numeric column.
func (t *Table) Floats(name string) ([]float64, error) {
	c, err := t.Column(name)
	if err != nil {
		return nil, err
	}
	return c.Floats()
}

// Row returns the textual values of row i in column order.
func (t *Table) Row(i int) []string {
	out := make([]string, len(t.cols))
	for j, c := range t.cols {
		out[j] = c.Text(i)
	}
	return out
}

// AddColumn appends c, or replaces the column of the same name.
func (t *Table) AddColumn(c *Column) error {
	if c.Len() != t.Len() {
		return fmt.Errorf("%w: %q has %d rows, want %d", ErrLength, c.name, c.Len(), t.Len())
	}
	if i, ok := t.index[c.name]; ok {
		t.cols[i] = c
		return nil
	}
	t.index[c.name] = len(t.cols)
	t.cols = append(t.cols, c)
	return nil
}

// Head returns a copy of the first n rows.
func (t *Table) Head(n int) *Table {
	if n > t.Len() {
		n = t.Len()
	}
	if n < 0 {
		n = 0
	}
	return t.take(seq(0, n))
}

// Tail returns a copy of the last n rows.
func (t *Table) Tail(n int) *Table {
	if n > t.Len() {
		n = t.Len()
	}
	if n < 0 {
		n = 0
	}
	return t.take(seq(t.Len()-n, t.Len()))
}

// Select returns a copy holding only the named columns, in the given order.
func (t *Table) Select(names ...string) (*Table, error) {
	out := &Table{index: make(map[string]int, len(names)), labels: t.Labels()}
	for _, name := range names {
		c, err := t.Column(name)
		if err != nil {
			return nil, err
		}
		out.index[name] = len(out.cols)
		out.cols = append(out.cols, c.clone())
	}
	return out, nil
}

// Clone returns a deep copy.
func (t *Table) Clone() *Table {
	out := &Table{index: make(map[string]int, len(t.cols)), labels: t.Labels()}
	for i, c := range t.cols {
		out.index[c.name] = i
		out.cols = append(out.cols, c.clone())
	}
	return out
}

func (t *Table) take(idx []int) *Table {
	out := &Table{index: make(map[string]int, len(t.cols)), labels: make([]int, len(idx))}
	for j, i := range idx {
		out.labels[j] = t.labels[i]
	}
	for i, c := range t.cols {
		out.index[c.name] = i
		out.cols = append(out.cols, c.take(idx))
	}
	return out
}

// keep retains the rows whose flag is true, in place.
func (t *Table) keep(flags []bool) {
	idx := make([]int, 0, len(flags))
	for i, ok := range flags {
		if ok {
			idx = append(idx, i)
		}
	}
	if len(idx) == len(flags) {
		return
	}
	kept := t.take(idx)
	t.cols = kept.cols
	t.labels = kept.labels
}

func (t *Table) rowKey(i int, b *strings.Builder) string {
	b.Reset()
	for j, c := range t.cols {
		if j > 0 {
			b.WriteByte('\x1f')
		}
		b.WriteString(c.key(i))
	}
	return b.String()
}

func seq(from, to int) []int {
	out := make([]int, 0, to-from)
	for i := from; i < to; i++ {
		out = append(out, i)
	}
	return out
}
