package table

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"
)

// Format writes the table as aligned text, one row per line, prefixed with
// the source row label. Missing values print as NaN.
func (t *Table) Format(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintf(tw, "\t%s\t\n", strings.Join(t.Names(), "\t"))
	for i := 0; i < t.Len(); i++ {
		cells := t.Row(i)
		for j, c := range t.cols {
			if c.IsMissing(i) {
				cells[j] = "NaN"
			}
		}
		fmt.Fprintf(tw, "%s\t%s\t\n", strconv.Itoa(t.labels[i]), strings.Join(cells, "\t"))
	}
	return tw.Flush()
}

// String renders the table with Format.
func (t *Table) String() string {
	var b strings.Builder
	_ = t.Format(&b)
	return b.String()
}
