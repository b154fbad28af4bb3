package services

import (
	"fmt"
	"io"
	"math"
	"strings"
	"text/tabwriter"

	"listing-profiler/models"
	"listing-profiler/table"
	"listing-profiler/utils"
)

// InsightService inspects tables and prints the results as console
// reports. With Color unset the output carries no ANSI escapes.
type InsightService struct {
	logger *utils.Logger
	Color  bool
}

func NewInsightService(logger *utils.Logger) *InsightService {
	return &InsightService{logger: logger, Color: true}
}

// Inspect builds the profile of t without modifying it. n is the number of
// head and tail rows kept.
func (s *InsightService) Inspect(t *table.Table, n int) *models.Profile {
	rows, cols := t.Shape()
	p := &models.Profile{
		Rows:        rows,
		Cols:        cols,
		Columns:     t.Names(),
		Head:        t.Head(n),
		Tail:        t.Tail(n),
		Info:        t.Info(),
		Numeric:     t.Describe(),
		Categorical: t.DescribeCategories(),
		Nulls:       t.NullCounts(),
	}
	s.logger.Debug("[insights] Profiled %d rows x %d columns", rows, cols)
	return p
}

func (s *InsightService) paint(code, text string) string {
	if !s.Color {
		return text
	}
	return "\033[" + code + "m" + text + "\033[0m"
}

func (s *InsightService) banner(w io.Writer, title string) {
	sep := strings.Repeat("═", 72)
	fmt.Fprintf(w, "\n%s\n", s.paint("1;35", sep))
	fmt.Fprintf(w, "%s\n", s.paint("1;35", "  "+title))
	fmt.Fprintf(w, "%s\n\n", s.paint("1;35", sep))
}

func (s *InsightService) heading(w io.Writer, title string) {
	fmt.Fprintf(w, "%s\n", s.paint("1;33", "  "+title))
	fmt.Fprintf(w, "  %s\n", strings.Repeat("─", 72))
}

// Print writes the profile: columns, head and tail, dtypes, shape,
// descriptive statistics and null counts.
func (s *InsightService) Print(w io.Writer, p *models.Profile) {
	s.banner(w, "DATASET PROFILE")

	s.heading(w, "Overview")
	fmt.Fprintf(w, "  Rows    : %s\n", s.paint("1", fmt.Sprint(p.Rows)))
	fmt.Fprintf(w, "  Columns : %s\n", s.paint("1", fmt.Sprint(p.Cols)))
	fmt.Fprintf(w, "  Names   : %s\n\n", strings.Join(p.Columns, ", "))

	s.heading(w, fmt.Sprintf("First %d rows", p.Head.Len()))
	s.table(w, p.Head)
	s.heading(w, fmt.Sprintf("Last %d rows", p.Tail.Len()))
	s.table(w, p.Tail)

	s.heading(w, "Column types")
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "  #\tcolumn\tnon-null\tkind")
	for i, c := range p.Info {
		fmt.Fprintf(tw, "  %d\t%s\t%d/%d\t%s\n", i, c.Column, c.NonNull, c.Rows, c.Kind)
	}
	tw.Flush()
	fmt.Fprintln(w)

	s.heading(w, "Numeric summary")
	if len(p.Numeric) == 0 {
		fmt.Fprintf(w, "  No numeric columns\n")
	} else {
		tw = tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
		fmt.Fprintln(tw, "  column\tcount\tmean\tstd\tmin\t25%\t50%\t75%\tmax\t")
		for _, c := range p.Numeric {
			fmt.Fprintf(tw, "  %s\t%d\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t\n", c.Column, c.Count,
				num(c.Mean), num(c.Std), num(c.Min), num(c.Q25), num(c.Q50), num(c.Q75), num(c.Max))
		}
		tw.Flush()
	}
	fmt.Fprintln(w)

	if len(p.Categorical) > 0 {
		s.heading(w, "Categorical summary")
		tw = tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "  column\tcount\tunique\ttop\tfreq")
		for _, c := range p.Categorical {
			fmt.Fprintf(tw, "  %s\t%d\t%d\t%s\t%d\n", c.Column, c.Count, c.Unique, truncate(c.Top, 30), c.Freq)
		}
		tw.Flush()
		fmt.Fprintln(w)
	}

	s.nulls(w, "Missing values", p.Nulls)
}

// PrintCleanSummary writes what cleaning removed.
func (s *InsightService) PrintCleanSummary(w io.Writer, c *models.CleanSummary) {
	s.banner(w, "CLEANING")
	s.heading(w, "Rows")
	fmt.Fprintf(w, "  Before                 : %d\n", c.RowsBefore)
	fmt.Fprintf(w, "  Dropped (missing)      : %s\n", s.paint("1;31", fmt.Sprint(c.MissingRows)))
	fmt.Fprintf(w, "  Duplicates found       : %d\n", c.DuplicatesBefore)
	fmt.Fprintf(w, "  Dropped (duplicates)   : %s\n", s.paint("1;31", fmt.Sprint(c.DuplicateRows)))
	fmt.Fprintf(w, "  Duplicates remaining   : %d\n", c.DuplicatesAfter)
	fmt.Fprintf(w, "  After                  : %s\n", s.paint("1;32", fmt.Sprint(c.RowsAfter)))
	if len(c.Coerced) > 0 {
		fmt.Fprintf(w, "  Identifier columns     : %s\n", strings.Join(c.Coerced, ", "))
	}
	fmt.Fprintln(w)
	s.nulls(w, "Missing values after cleaning", c.NullsAfter)
}

// PrintGroups writes a group mean aggregate with a bar per group scaled to
// the largest mean.
func (s *InsightService) PrintGroups(w io.Writer, title string, agg *table.GroupAggregate) {
	s.heading(w, title)
	if len(agg.Groups) == 0 {
		fmt.Fprintf(w, "  No groups\n\n")
		return
	}
	top := 0.0
	for _, g := range agg.Groups {
		if !math.IsNaN(g.Mean) && g.Mean > top {
			top = g.Mean
		}
	}
	for _, g := range agg.Groups {
		width := 0
		if top > 0 && !math.IsNaN(g.Mean) && g.Mean > 0 {
			width = int(math.Round(30 * g.Mean / top))
		}
		fmt.Fprintf(w, "  %-24s %s %s (n=%d)\n", truncate(g.Key(), 22),
			s.paint("1;32", fmt.Sprintf("%12s", num(g.Mean))), strings.Repeat("█", width), g.Count)
	}
	fmt.Fprintln(w)
}

// PrintTable writes t under a heading.
func (s *InsightService) PrintTable(w io.Writer, title string, t *table.Table) {
	s.heading(w, title)
	s.table(w, t)
}

// PrintCorrelation writes a correlation matrix with two decimals.
func (s *InsightService) PrintCorrelation(w io.Writer, m *table.CorrMatrix) {
	s.heading(w, "Correlation matrix")
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprint(tw, "  \t")
	for _, name := range m.Names {
		fmt.Fprintf(tw, "%s\t", name)
	}
	fmt.Fprintln(tw)
	for i, name := range m.Names {
		fmt.Fprintf(tw, "  %s\t", name)
		for j := range m.Names {
			fmt.Fprintf(tw, "%.2f\t", m.At(i, j))
		}
		fmt.Fprintln(tw)
	}
	tw.Flush()
	fmt.Fprintln(w)
}

func (s *InsightService) nulls(w io.Writer, title string, counts []table.NullCount) {
	s.heading(w, title)
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, n := range counts {
		v := fmt.Sprint(n.Count)
		if n.Count > 0 {
			v = s.paint("1;31", v)
		}
		fmt.Fprintf(tw, "  %s\t%s\n", n.Column, v)
	}
	tw.Flush()
	fmt.Fprintln(w)
}

func (s *InsightService) table(w io.Writer, t *table.Table) {
	if err := t.Format(w); err != nil {
		s.logger.Warn("[insights] Could not format table: %v", err)
	}
	fmt.Fprintln(w)
}

func num(v float64) string {
	if math.IsNaN(v) {
		return "NaN"
	}
	return fmt.Sprintf("%.2f", v)
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}
