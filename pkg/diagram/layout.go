// Package diagram computes the geometric layout of a bit-field set and
// renders it as ASCII art or PNG images.
package diagram

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/bitdiag/pkg/field"
)

// Cell is one visual cell of a diagram row: a contiguous bit range owned
// by a single field, or a run of uncovered bits (Anon). Value holds the
// display rendering of the cell's value, empty when there is none.
type Cell struct {
	Hi    uint
	Lo    uint
	Name  string
	Value string
	Anon  bool
}

// Bits returns the number of bit columns the cell spans.
func (c Cell) Bits() uint {
	return c.Hi - c.Lo + 1
}

// Diagram is the immutable layout shared by every renderer in a run.
// Cells are ordered most significant first and partition [0, Width-1].
type Diagram struct {
	Width     uint
	Cells     []Cell
	HasValues bool
}

// Layout validates the field set against the diagram width and splits the
// bit positions W-1..0 into visual cells. Uncovered runs of bits become
// anonymous cells. When overlay is non-nil its bits are sliced across
// every cell's span and win over any per-field value.
func Layout(fields field.Set, width uint, overlay *uint64) (*Diagram, error) {
	// The set may arrive pre-resolved from the database rather than the
	// token parser, so it is validated the same way here.
	set, err := field.NewSet(fields, width)
	if err != nil {
		return nil, err
	}
	if overlay != nil && width < 64 && *overlay >= uint64(1)<<width {
		return nil, fmt.Errorf("%w: overlay value 0x%x does not fit in %d bits", field.ErrValueRange, *overlay, width)
	}

	d := &Diagram{Width: width}
	next := 0 // index of the next field, in descending-Hi order
	bit := int(width) - 1
	for bit >= 0 {
		if next < len(set) && int(set[next].Hi) == bit {
			f := set[next]
			next++
			d.Cells = append(d.Cells, fieldCell(f, overlay))
			bit = int(f.Lo) - 1
		} else {
			lo := 0
			if next < len(set) {
				lo = int(set[next].Hi) + 1
			}
			d.Cells = append(d.Cells, gapCell(uint(bit), uint(lo), overlay))
			bit = lo - 1
		}
	}

	for _, c := range d.Cells {
		if c.Value != "" {
			d.HasValues = true
			break
		}
	}
	Logger().Debug("layout complete",
		zap.Uint("width", width),
		zap.Int("cells", len(d.Cells)),
		zap.Bool("overlay", overlay != nil))
	return d, nil
}

func fieldCell(f field.Spec, overlay *uint64) Cell {
	c := Cell{Hi: f.Hi, Lo: f.Lo, Name: f.Name}
	switch {
	case overlay != nil:
		c.Value = formatValue(*overlay>>f.Lo&mask(f.Width()), f.Width())
	case f.HasValue:
		c.Value = formatValue(f.Value, f.Width())
	}
	return c
}

func gapCell(hi, lo uint, overlay *uint64) Cell {
	c := Cell{Hi: hi, Lo: lo, Anon: true}
	if overlay != nil {
		c.Value = formatValue(*overlay>>lo&mask(c.Bits()), c.Bits())
	}
	return c
}

// formatValue renders a cell value for display: fields narrower than a
// nibble as zero-padded binary digits, everything else as hex zero-padded
// to the field's width rounded up to whole nibbles.
func formatValue(v uint64, bits uint) string {
	if bits < 4 {
		return fmt.Sprintf("%0*b", bits, v)
	}
	return fmt.Sprintf("0x%0*x", (bits+3)/4, v)
}

func mask(n uint) uint64 {
	return ^uint64(0) >> (64 - n)
}
