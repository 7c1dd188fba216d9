package diagram

import (
	"strconv"
	"strings"
)

// RenderASCII renders the diagram as a monospace text grid. The output is
// a pure function of the diagram: equal diagrams produce byte-identical
// text. The grid is an index row, a top border, a centered name row, a
// centered value row when any cell carries a value, and a bottom border.
func RenderASCII(d *Diagram) string {
	widths := make([]int, len(d.Cells))
	for i, c := range d.Cells {
		widths[i] = cellInnerWidth(c)
	}

	var sb strings.Builder
	sb.WriteString(indexRow(d, widths))
	sb.WriteByte('\n')
	sb.WriteString(borderRow(widths))
	sb.WriteByte('\n')
	sb.WriteString(contentRow(d, widths, func(c Cell) string { return c.Name }))
	sb.WriteByte('\n')
	if d.HasValues {
		sb.WriteString(contentRow(d, widths, func(c Cell) string { return c.Value }))
		sb.WriteByte('\n')
	}
	sb.WriteString(borderRow(widths))
	sb.WriteByte('\n')
	return sb.String()
}

// cellInnerWidth is the width between a cell's borders: three columns per
// bit by default, stretched when the name or value would not fit.
func cellInnerWidth(c Cell) int {
	w := 3*int(c.Bits()) - 1
	if n := len(c.Name); n > w {
		w = n
	}
	if n := len(c.Value); n > w {
		w = n
	}
	return w
}

// indexRow places each cell's hi index over its left edge and its lo
// index over its right edge; single-bit cells get one right-aligned index.
func indexRow(d *Diagram, widths []int) string {
	parts := make([]string, len(d.Cells))
	for i, c := range d.Cells {
		hi := strconv.FormatUint(uint64(c.Hi), 10)
		if c.Hi == c.Lo {
			parts[i] = strings.Repeat(" ", widths[i]-len(hi)) + hi
			continue
		}
		lo := strconv.FormatUint(uint64(c.Lo), 10)
		parts[i] = hi + strings.Repeat(" ", widths[i]-len(hi)-len(lo)) + lo
	}
	return " " + strings.Join(parts, " ")
}

func borderRow(widths []int) string {
	var sb strings.Builder
	sb.WriteByte('+')
	for _, w := range widths {
		sb.WriteString(strings.Repeat("-", w))
		sb.WriteByte('+')
	}
	return sb.String()
}

func contentRow(d *Diagram, widths []int, text func(Cell) string) string {
	var sb strings.Builder
	sb.WriteByte('|')
	for i, c := range d.Cells {
		sb.WriteString(center(text(c), widths[i]))
		sb.WriteByte('|')
	}
	return sb.String()
}

func center(s string, w int) string {
	pad := w - len(s)
	left := pad / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", pad-left)
}
