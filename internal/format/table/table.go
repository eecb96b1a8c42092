// Package table lays out rows of cells in aligned columns.
package table

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

type Alignment int

const (
	AlignLeft Alignment = iota
	AlignRight
)

// Format returns the rows padded according to the widest entry in each column.
// Widths are measured in terminal cells, so cells may carry ANSI styling.
func Format(rows [][]string, alignments []Alignment) []string {
	if len(rows) == 0 {
		return nil
	}
	widths := Widths(rows)
	out := make([]string, len(rows))
	for i, row := range rows {
		var b strings.Builder
		for c, cell := range row {
			if c > 0 {
				b.WriteString("  ")
			}
			pad := max(widths[c]-ansi.StringWidth(cell), 0)
			last := c == len(row)-1
			if c < len(alignments) && alignments[c] == AlignRight {
				b.WriteString(strings.Repeat(" ", pad))
				b.WriteString(cell)
			} else {
				b.WriteString(cell)
				if !last {
					b.WriteString(strings.Repeat(" ", pad))
				}
			}
		}
		out[i] = b.String()
	}
	return out
}

// Widths returns the widest cell of every column.
func Widths(rows [][]string) []int {
	var widths []int
	for _, row := range rows {
		for c, cell := range row {
			if c >= len(widths) {
				widths = append(widths, 0)
			}
			widths[c] = max(widths[c], ansi.StringWidth(cell))
		}
	}
	return widths
}
