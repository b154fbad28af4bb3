package table

import (
	"fmt"
	"math"
)

// DeriveColumn adds (or replaces) a numeric column computed row by row from
// the numeric inputs. fn receives the input values in the order given; a
// missing input is passed as NaN.
func (t *Table) DeriveColumn(name string, inputs []string, fn func(args []float64) float64) error {
	srcs := make([]*Column, len(inputs))
	for k, in := range inputs {
		c, err := t.Column(in)
		if err != nil {
			return fmt.Errorf("derive %q: %w", name, err)
		}
		if c.kind != Numeric {
			return fmt.Errorf("derive %q: %w", name, &KindError{Column: in, Kind: c.kind})
		}
		srcs[k] = c
	}

	vals := make([]float64, t.Len())
	args := make([]float64, len(srcs))
	for i := range vals {
		for k, c := range srcs {
			args[k] = c.nums[i]
		}
		vals[i] = fn(args)
	}
	return t.AddColumn(&Column{name: name, kind: Numeric, nums: vals})
}

// Divide returns num/den, or NaN when the divisor is zero or either value
// is missing.
func Divide(num, den float64) float64 {
	if math.IsNaN(num) || math.IsNaN(den) || den == 0 {
		return math.NaN()
	}
	return num / den
}

// Ratio is a DeriveColumn function dividing the first input by the second.
func Ratio(args []float64) float64 { return Divide(args[0], args[1]) }
