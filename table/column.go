package table

import (
	"math"
	"strconv"
)

// Kind is the semantic type of a column.
type Kind int

const (
	// Numeric columns hold float64 values; NaN marks a missing value.
	Numeric Kind = iota
	// Identifier columns hold opaque tokens such as listing or host ids.
	Identifier
	// Categorical columns hold labels such as a neighbourhood group.
	Categorical
)

func (k Kind) String() string {
	switch k {
	case Numeric:
		return "numeric"
	case Identifier:
		return "identifier"
	case Categorical:
		return "categorical"
	}
	return "unknown"
}

// Column is a named, typed sequence of values. Numeric columns use nums,
// the other kinds use strs together with the missing mask.
type Column struct {
	name    string
	kind    Kind
	nums    []float64
	strs    []string
	missing []bool
}

// NewNumeric builds a numeric column. NaN values are treated as missing.
func NewNumeric(name string, vals []float64) *Column {
	nums := make([]float64, len(vals))
	copy(nums, vals)
	return &Column{name: name, kind: Numeric, nums: nums}
}

// NewText builds an identifier or categorical column. An empty string is
// stored as a missing value.
func NewText(name string, kind Kind, vals []string) *Column {
	if kind == Numeric {
		kind = Categorical
	}
	c := &Column{
		name:    name,
		kind:    kind,
		strs:    make([]string, len(vals)),
		missing: make([]bool, len(vals)),
	}
	for i, v := range vals {
		if v == "" {
			c.missing[i] = true
			continue
		}
		c.strs[i] = v
	}
	return c
}

func (c *Column) Name() string { return c.name }
func (c *Column) Kind() Kind   { return c.kind }

func (c *Column) Len() int {
	if c.kind == Numeric {
		return len(c.nums)
	}
	return len(c.strs)
}

// IsMissing reports whether row i holds no value.
func (c *Column) IsMissing(i int) bool {
	if c.kind == Numeric {
		return math.IsNaN(c.nums[i])
	}
	return c.missing[i]
}

// Float returns the numeric value at row i. ok is false for missing values.
func (c *Column) Float(i int) (v float64, ok bool) {
	if c.kind != Numeric {
		return math.NaN(), false
	}
	v = c.nums[i]
	return v, !math.IsNaN(v)
}

// Text returns the textual form of row i, "" when missing.
func (c *Column) Text(i int) string {
	if c.IsMissing(i) {
		return ""
	}
	if c.kind == Numeric {
		return formatNumber(c.nums[i])
	}
	return c.strs[i]
}

// Floats returns a copy of the column values. It fails for non numeric
// columns so identifiers never take part in arithmetic.
func (c *Column) Floats() ([]float64, error) {
	if c.kind != Numeric {
		return nil, &KindError{Column: c.name, Kind: c.kind}
	}
	out := make([]float64, len(c.nums))
	copy(out, c.nums)
	return out, nil
}

// Present returns the non-missing numeric values in row order.
func (c *Column) Present() ([]float64, error) {
	if c.kind != Numeric {
		return nil, &KindError{Column: c.name, Kind: c.kind}
	}
	out := make([]float64, 0, len(c.nums))
	for _, v := range c.nums {
		if !math.IsNaN(v) {
			out = append(out, v)
		}
	}
	return out, nil
}

// NonMissing counts the rows holding a value.
func (c *Column) NonMissing() int {
	n := 0
	for i := 0; i < c.Len(); i++ {
		if !c.IsMissing(i) {
			n++
		}
	}
	return n
}

// key is an injective encoding of row i used for grouping and duplicate
// detection. Present values are quoted, so they never contain the row
// separator and never equal the missing marker. -0 and 0 share a key.
func (c *Column) key(i int) string {
	if c.IsMissing(i) {
		return missingKey
	}
	if c.kind == Numeric {
		v := c.nums[i]
		if v == 0 {
			v = 0
		}
		return strconv.Quote(strconv.FormatFloat(v, 'g', -1, 64))
	}
	return strconv.Quote(c.strs[i])
}

const missingKey = "NA"

func (c *Column) take(idx []int) *Column {
	out := &Column{name: c.name, kind: c.kind}
	if c.kind == Numeric {
		out.nums = make([]float64, len(idx))
		for j, i := range idx {
			out.nums[j] = c.nums[i]
		}
		return out
	}
	out.strs = make([]string, len(idx))
	out.missing = make([]bool, len(idx))
	for j, i := range idx {
		out.strs[j] = c.strs[i]
		out.missing[j] = c.missing[i]
	}
	return out
}

func (c *Column) clone() *Column {
	out := &Column{name: c.name, kind: c.kind}
	if c.kind == Numeric {
		out.nums = append([]float64(nil), c.nums...)
		return out
	}
	out.strs = append([]string(nil), c.strs...)
	out.missing = append([]bool(nil), c.missing...)
	return out
}

// asIdentifier converts a numeric column into opaque tokens.
func (c *Column) asIdentifier() {
	if c.kind != Numeric {
		c.kind = Identifier
		return
	}
	c.strs = make([]string, len(c.nums))
	c.missing = make([]bool, len(c.nums))
	for i, v := range c.nums {
		if math.IsNaN(v) {
			c.missing[i] = true
			continue
		}
		c.strs[i] = formatNumber(v)
	}
	c.nums = nil
	c.kind = Identifier
}

func formatNumber(v float64) string {
	if v == math.Trunc(v) && math.Abs(v) < 1e15 {
		return strconv.FormatFloat(v, 'f', 0, 64)
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
