package table

import "fmt"

// RowView gives a predicate read access to one row.
type RowView struct {
	t *Table
	i int
}

// Float returns the numeric value of the named column. ok is false when
// the column is missing, not numeric, or has no value on this row.
func (r RowView) Float(name string) (float64, bool) {
	c, err := r.t.Column(name)
	if err != nil {
		return 0, false
	}
	return c.Float(r.i)
}

// Text returns the textual value of the named column.
func (r RowView) Text(name string) string {
	c, err := r.t.Column(name)
	if err != nil {
		return ""
	}
	return c.Text(r.i)
}

// Label returns the source position of the row.
func (r RowView) Label() int { return r.t.labels[r.i] }

// Filter returns a new table with the rows for which keep returns true.
// The receiver is not modified and shares no storage with the result.
func (t *Table) Filter(keep func(RowView) bool) *Table {
	idx := make([]int, 0, t.Len())
	for i := 0; i < t.Len(); i++ {
		if keep(RowView{t: t, i: i}) {
			idx = append(idx, i)
		}
	}
	return t.take(idx)
}

// Op is a numeric comparison.
type Op string

const (
	Less         Op = "<"
	LessEqual    Op = "<="
	Greater      Op = ">"
	GreaterEqual Op = ">="
	Equal        Op = "=="
	NotEqual     Op = "!="
)

func (op Op) apply(a, b float64) (bool, error) {
	switch op {
	case Less:
		return a < b, nil
	case LessEqual:
		return a <= b, nil
	case Greater:
		return a > b, nil
	case GreaterEqual:
		return a >= b, nil
	case Equal:
		return a == b, nil
	case NotEqual:
		return a != b, nil
	}
	return false, fmt.Errorf("table: unknown operator %q", op)
}

// Where filters on a numeric comparison such as price < 1500. Rows with a
// missing value never match.
func (t *Table) Where(name string, op Op, value float64) (*Table, error) {
	c, err := t.Column(name)
	if err != nil {
		return nil, err
	}
	if c.kind != Numeric {
		return nil, &KindError{Column: name, Kind: c.kind}
	}
	if _, err := op.apply(0, value); err != nil {
		return nil, err
	}
	return t.Filter(func(r RowView) bool {
		v, ok := c.Float(r.i)
		if !ok {
			return false
		}
		match, _ := op.apply(v, value)
		return match
	}), nil
}
