package table

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// Group is one entry of a GroupAggregate. Count is the number of non-missing
// values that contributed to Mean.
type Group struct {
	Keys  []string
	Count int
	Mean  float64
}

// Key returns the group key joined with "/".
func (g Group) Key() string { return strings.Join(g.Keys, "/") }

// GroupAggregate maps group keys to the mean of a value column. Groups are
// sorted by key.
type GroupAggregate struct {
	By     []string
	Value  string
	Groups []Group
}

// Mean returns the mean for the given key values.
func (a *GroupAggregate) Mean(keys ...string) (float64, bool) {
	for _, g := range a.Groups {
		if equalKeys(g.Keys, keys) {
			return g.Mean, true
		}
	}
	return 0, false
}

// Levels returns the distinct values of the k-th key column, sorted.
func (a *GroupAggregate) Levels(k int) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, g := range a.Groups {
		if _, ok := seen[g.Keys[k]]; ok {
			continue
		}
		seen[g.Keys[k]] = struct{}{}
		out = append(out, g.Keys[k])
	}
	sort.Strings(out)
	return out
}

// GroupMean computes the mean of value for each distinct value of key.
func (t *Table) GroupMean(key, value string) (*GroupAggregate, error) {
	return t.GroupMeanBy(value, key)
}

// GroupMeanBy computes the mean of value for each distinct combination of
// the key columns. Rows with a missing key are skipped and missing values
// are left out of the mean; a group whose values are all missing has a NaN
// mean and a zero count.
func (t *Table) GroupMeanBy(value string, keys ...string) (*GroupAggregate, error) {
	if len(keys) == 0 {
		return nil, fmt.Errorf("table: group mean of %q needs at least one key", value)
	}
	vc, err := t.Column(value)
	if err != nil {
		return nil, err
	}
	if vc.kind != Numeric {
		return nil, &KindError{Column: value, Kind: vc.kind}
	}
	kcs := make([]*Column, len(keys))
	for k, name := range keys {
		if kcs[k], err = t.Column(name); err != nil {
			return nil, err
		}
	}

	type acc struct {
		keys []string
		sum  float64
		n    int
	}
	groups := make(map[string]*acc)
	var b strings.Builder

rows:
	for i := 0; i < t.Len(); i++ {
		b.Reset()
		for k, c := range kcs {
			if c.IsMissing(i) {
				continue rows
			}
			if k > 0 {
				b.WriteByte('\x1f')
			}
			b.WriteString(c.key(i))
		}
		g, ok := groups[b.String()]
		if !ok {
			g = &acc{keys: make([]string, len(kcs))}
			for k, c := range kcs {
				g.keys[k] = c.Text(i)
			}
			groups[b.String()] = g
		}
		if v, ok := vc.Float(i); ok {
			g.sum += v
			g.n++
		}
	}

	out := &GroupAggregate{By: append([]string(nil), keys...), Value: value}
	for _, g := range groups {
		mean := math.NaN()
		if g.n > 0 {
			mean = g.sum / float64(g.n)
		}
		out.Groups = append(out.Groups, Group{Keys: g.keys, Count: g.n, Mean: mean})
	}
	sort.Slice(out.Groups, func(i, j int) bool {
		return lessKeys(out.Groups[i].Keys, out.Groups[j].Keys)
	})
	return out, nil
}

func equalKeys(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func lessKeys(a, b []string) bool {
	for i := range a {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return false
}
