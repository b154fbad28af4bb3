package table

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// CorrMatrix is a square matrix of Pearson correlation coefficients.
type CorrMatrix struct {
	Names  []string
	Values [][]float64
}

// At returns the coefficient between columns i and j.
func (m *CorrMatrix) At(i, j int) float64 { return m.Values[i][j] }

// Correlate computes pairwise Pearson correlations between the named
// numeric columns. Each pair uses the rows where both values are present.
// The diagonal is 1 and the matrix is symmetric; a pair with fewer than two
// shared rows or no variance gets NaN.
func (t *Table) Correlate(names ...string) (*CorrMatrix, error) {
	cols := make([]*Column, len(names))
	for k, name := range names {
		c, err := t.Column(name)
		if err != nil {
			return nil, err
		}
		if c.kind != Numeric {
			return nil, &KindError{Column: name, Kind: c.kind}
		}
		cols[k] = c
	}

	m := &CorrMatrix{Names: append([]string(nil), names...), Values: make([][]float64, len(cols))}
	for i := range m.Values {
		m.Values[i] = make([]float64, len(cols))
		m.Values[i][i] = 1
	}
	for i := 0; i < len(cols); i++ {
		for j := i + 1; j < len(cols); j++ {
			r := pearson(cols[i], cols[j])
			m.Values[i][j] = r
			m.Values[j][i] = r
		}
	}
	return m, nil
}

func pearson(a, b *Column) float64 {
	xs := make([]float64, 0, len(a.nums))
	ys := make([]float64, 0, len(b.nums))
	for i := range a.nums {
		x, y := a.nums[i], b.nums[i]
		if math.IsNaN(x) || math.IsNaN(y) {
			continue
		}
		xs = append(xs, x)
		ys = append(ys, y)
	}
	if len(xs) < 2 {
		return math.NaN()
	}
	r := stat.Correlation(xs, ys, nil)
	if math.IsInf(r, 0) {
		return math.NaN()
	}
	return r
}
