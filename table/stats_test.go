package table

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDescribe(t *testing.T) {
	tbl, err := New(
		NewText("id", Identifier, []string{"1", "2", "3", "4", "5"}),
		NewNumeric("price", []float64{1, 2, 3, 4, math.NaN()}),
	)
	require.NoError(t, err)

	summaries := tbl.Describe()
	require.Len(t, summaries, 1)

	s := summaries[0]
	assert.Equal(t, "price", s.Column)
	assert.Equal(t, 4, s.Count)
	assert.InDelta(t, 2.5, s.Mean, 1e-12)
	assert.InDelta(t, math.Sqrt(5.0/3.0), s.Std, 1e-12)
	assert.Equal(t, 1.0, s.Min)
	assert.InDelta(t, 1.75, s.Q25, 1e-12)
	assert.InDelta(t, 2.5, s.Q50, 1e-12)
	assert.InDelta(t, 3.25, s.Q75, 1e-12)
	assert.Equal(t, 4.0, s.Max)
}

func TestSummarizeEdgeCases(t *testing.T) {
	empty := Summarize("x", nil)
	assert.Zero(t, empty.Count)
	assert.True(t, math.IsNaN(empty.Mean))

	one := Summarize("x", []float64{7})
	assert.Equal(t, 7.0, one.Mean)
	assert.True(t, math.IsNaN(one.Std))
	assert.Equal(t, 7.0, one.Q75)
}

func TestDescribeCategories(t *testing.T) {
	tbl, err := New(NewText("room_type", Categorical, []string{"Private", "Entire", "Private", ""}))
	require.NoError(t, err)

	cats := tbl.DescribeCategories()
	require.Len(t, cats, 1)
	assert.Equal(t, CategorySummary{Column: "room_type", Count: 3, Unique: 2, Top: "Private", Freq: 2}, cats[0])
}

func TestDescribeCategoriesTieGoesToFirstToReachTop(t *testing.T) {
	tbl, err := New(NewText("room_type", Categorical, []string{"a", "b", "b", "a"}))
	require.NoError(t, err)

	cats := tbl.DescribeCategories()
	require.Len(t, cats, 1)
	assert.Equal(t, "b", cats[0].Top)
	assert.Equal(t, 2, cats[0].Freq)
}

func TestInfo(t *testing.T) {
	tbl, err := New(
		NewText("id", Identifier, []string{"1", ""}),
		NewNumeric("price", []float64{1, 2}),
	)
	require.NoError(t, err)

	info := tbl.Info()
	assert.Equal(t, ColumnInfo{Column: "id", Kind: Identifier, NonNull: 1, Rows: 2}, info[0])
	assert.Equal(t, ColumnInfo{Column: "price", Kind: Numeric, NonNull: 2, Rows: 2}, info[1])
}

func TestGroupMean(t *testing.T) {
	tbl, err := New(
		NewText("neighbourhood_group", Categorical, []string{"A", "A", "B"}),
		NewNumeric("price", []float64{100, 200, 300}),
	)
	require.NoError(t, err)

	agg, err := tbl.GroupMean("neighbourhood_group", "price")
	require.NoError(t, err)
	require.Len(t, agg.Groups, 2)

	a, ok := agg.Mean("A")
	require.True(t, ok)
	assert.Equal(t, 150.0, a)
	b, ok := agg.Mean("B")
	require.True(t, ok)
	assert.Equal(t, 300.0, b)
	_, ok = agg.Mean("C")
	assert.False(t, ok)
}

func TestGroupMeanWeightedSumMatchesTotal(t *testing.T) {
	groups := []string{"Manhattan", "Brooklyn", "Queens", "Brooklyn", "", "Manhattan", "Queens", "Bronx"}
	prices := []float64{225, 89, 70.5, 150, 999, math.NaN(), 60, 40}
	tbl, err := New(
		NewText("neighbourhood_group", Categorical, groups),
		NewNumeric("price", prices),
	)
	require.NoError(t, err)

	agg, err := tbl.GroupMean("neighbourhood_group", "price")
	require.NoError(t, err)
	assert.Equal(t, []string{"Bronx", "Brooklyn", "Manhattan", "Queens"}, agg.Levels(0))

	var weighted, total float64
	for _, g := range agg.Groups {
		weighted += float64(g.Count) * g.Mean
	}
	for i, p := range prices {
		if groups[i] != "" && !math.IsNaN(p) {
			total += p
		}
	}
	assert.InDelta(t, total, weighted, 1e-9)

	m, ok := agg.Mean("Manhattan")
	require.True(t, ok)
	assert.Equal(t, 225.0, m)
}

func TestGroupMeanByTwoKeys(t *testing.T) {
	tbl, err := New(
		NewText("neighbourhood_group", Categorical, []string{"A", "A", "B", "A"}),
		NewText("room_type", Categorical, []string{"Private", "Entire", "Private", "Private"}),
		NewNumeric("price", []float64{10, 100, 20, 30}),
	)
	require.NoError(t, err)

	agg, err := tbl.GroupMeanBy("price", "neighbourhood_group", "room_type")
	require.NoError(t, err)
	require.Len(t, agg.Groups, 3)
	assert.Equal(t, "A/Entire", agg.Groups[0].Key())

	v, ok := agg.Mean("A", "Private")
	require.True(t, ok)
	assert.Equal(t, 20.0, v)
	assert.Equal(t, []string{"Entire", "Private"}, agg.Levels(1))
}

func TestGroupMeanByKeepsCompositeKeysApart(t *testing.T) {
	tbl, err := New(
		NewText("a", Categorical, []string{"x\x1fy", "x"}),
		NewText("b", Categorical, []string{"z", "y\x1fz"}),
		NewNumeric("price", []float64{10, 30}),
	)
	require.NoError(t, err)

	agg, err := tbl.GroupMeanBy("price", "a", "b")
	require.NoError(t, err)
	require.Len(t, agg.Groups, 2)

	v, ok := agg.Mean("x", "y\x1fz")
	require.True(t, ok)
	assert.Equal(t, 30.0, v)
}

func TestCorrelate(t *testing.T) {
	tbl, err := New(
		NewNumeric("x", []float64{1, 2, 3, 4, 5}),
		NewNumeric("y", []float64{2, 4.5, 5.5, 8, 11}),
		NewNumeric("z", []float64{5, 4, 3, 2, 1}),
		NewNumeric("flat", []float64{3, 3, 3, 3, 3}),
	)
	require.NoError(t, err)

	m, err := tbl.Correlate("x", "y", "z", "flat")
	require.NoError(t, err)

	n := len(m.Names)
	for i := 0; i < n; i++ {
		assert.Equal(t, 1.0, m.At(i, i))
		for j := 0; j < n; j++ {
			a, b := m.At(i, j), m.At(j, i)
			if math.IsNaN(a) {
				assert.True(t, math.IsNaN(b))
				continue
			}
			assert.Equal(t, a, b)
		}
	}
	assert.InDelta(t, -1.0, m.At(0, 2), 1e-12)
	assert.Greater(t, m.At(0, 1), 0.95)
	assert.True(t, math.IsNaN(m.At(0, 3)))
}

func TestCorrelateRejectsIdentifier(t *testing.T) {
	tbl, err := New(
		NewText("id", Identifier, []string{"1", "2"}),
		NewNumeric("price", []float64{1, 2}),
	)
	require.NoError(t, err)

	_, err = tbl.Correlate("id", "price")
	require.ErrorIs(t, err, ErrNotNumeric)
}
