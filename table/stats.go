package table

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// ColumnInfo is one line of the dtype report.
type ColumnInfo struct {
	Column  string
	Kind    Kind
	NonNull int
	Rows    int
}

// ColumnSummary holds the descriptive statistics of a numeric column.
// Missing values are excluded; Std is the sample standard deviation.
type ColumnSummary struct {
	Column string
	Count  int
	Mean   float64
	Std    float64
	Min    float64
	Q25    float64
	Q50    float64
	Q75    float64
	Max    float64
}

// CategorySummary describes a categorical or identifier column.
type CategorySummary struct {
	Column string
	Count  int
	Unique int
	Top    string
	Freq   int
}

// Info returns kind and non-null count per column.
func (t *Table) Info() []ColumnInfo {
	out := make([]ColumnInfo, len(t.cols))
	for j, c := range t.cols {
		out[j] = ColumnInfo{Column: c.name, Kind: c.kind, NonNull: c.NonMissing(), Rows: c.Len()}
	}
	return out
}

// Describe summarises every numeric column.
func (t *Table) Describe() []ColumnSummary {
	var out []ColumnSummary
	for _, c := range t.cols {
		if c.kind != Numeric {
			continue
		}
		vals, _ := c.Present()
		out = append(out, Summarize(c.name, vals))
	}
	return out
}

// Summarize computes count, mean, std, min, quartiles and max of vals.
// With no values every statistic is NaN; with one value Std is NaN.
func Summarize(name string, vals []float64) ColumnSummary {
	s := ColumnSummary{Column: name, Count: len(vals)}
	if len(vals) == 0 {
		nan := math.NaN()
		s.Mean, s.Std, s.Min, s.Q25, s.Q50, s.Q75, s.Max = nan, nan, nan, nan, nan, nan, nan
		return s
	}

	sorted := append([]float64(nil), vals...)
	sort.Float64s(sorted)

	s.Mean = stat.Mean(sorted, nil)
	if len(sorted) > 1 {
		s.Std = stat.StdDev(sorted, nil)
	} else {
		s.Std = math.NaN()
	}
	s.Min = floats.Min(sorted)
	s.Max = floats.Max(sorted)
	s.Q25 = Quantile(sorted, 0.25)
	s.Q50 = Quantile(sorted, 0.50)
	s.Q75 = Quantile(sorted, 0.75)
	return s
}

// Quantile returns the q-th quantile of an ascending slice, interpolating
// linearly between the two closest ranks at position q*(n-1).
func Quantile(sorted []float64, q float64) float64 {
	if len(sorted) == 0 {
		return math.NaN()
	}
	if q <= 0 {
		return sorted[0]
	}
	if q >= 1 {
		return sorted[len(sorted)-1]
	}
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	w := pos - float64(lo)
	return sorted[lo]*(1-w) + sorted[hi]*w
}

// DescribeCategories summarises every non numeric column. Ties for the most
// frequent value go to the value that reached the top count first.
func (t *Table) DescribeCategories() []CategorySummary {
	var out []CategorySummary
	for _, c := range t.cols {
		if c.kind == Numeric {
			continue
		}
		s := CategorySummary{Column: c.name}
		freq := make(map[string]int)
		for i := 0; i < c.Len(); i++ {
			if c.missing[i] {
				continue
			}
			s.Count++
			v := c.strs[i]
			freq[v]++
			if freq[v] > s.Freq {
				s.Top, s.Freq = v, freq[v]
			}
		}
		s.Unique = len(freq)
		out = append(out, s)
	}
	return out
}
