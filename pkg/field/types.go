// Package field models named, positioned, optionally-valued bit fields
// over a fixed-width instruction opcode or system register.
package field

import (
	"fmt"
	"sort"
	"strconv"
)

// Valid diagram widths in bits.
const (
	MinWidth = 8
	MaxWidth = 64
)

// Spec describes a single contiguous bit range [Lo, Hi] within a
// fixed-width subject. Name may be empty (anonymous field). Value is
// only meaningful when HasValue is set.
type Spec struct {
	Name     string
	Hi       uint
	Lo       uint
	Value    uint64
	HasValue bool
}

// Width returns the number of bits the field spans.
func (s Spec) Width() uint {
	return s.Hi - s.Lo + 1
}

// Mask returns the occupancy mask of the field within a 64-bit word.
func (s Spec) Mask() uint64 {
	return maskBits(s.Width()) << s.Lo
}

// String renders the canonical token form of the spec, e.g. "sf[31]",
// "Rn[9:5]=0x5" or "[31:30]=0x3". Parsing the result yields an equal Spec.
func (s Spec) String() string {
	tok := s.Name
	if s.Hi == s.Lo {
		tok += "[" + strconv.FormatUint(uint64(s.Hi), 10) + "]"
	} else {
		tok += "[" + strconv.FormatUint(uint64(s.Hi), 10) + ":" + strconv.FormatUint(uint64(s.Lo), 10) + "]"
	}
	if s.HasValue {
		tok += "=0x" + strconv.FormatUint(s.Value, 16)
	}
	return tok
}

// Validate checks the spec's bit range against the diagram width and,
// when a value is present, that it fits the field's width.
func (s Spec) Validate(width uint) error {
	if s.Hi < s.Lo {
		return fmt.Errorf("%w: %s: hi %d is below lo %d", ErrFieldRange, s, s.Hi, s.Lo)
	}
	if s.Hi >= width {
		return fmt.Errorf("%w: %s: bit %d exceeds %d-bit width", ErrFieldRange, s, s.Hi, width)
	}
	if s.HasValue && s.Value > maskBits(s.Width()) {
		return fmt.Errorf("%w: %s: 0x%x needs more than %d bits", ErrValueRange, s, s.Value, s.Width())
	}
	return nil
}

// Set is an ordered sequence of non-overlapping field specs, sorted by
// descending Hi so the most significant field comes first.
type Set []Spec

// NewSet validates the given specs against the diagram width, checks them
// for pairwise overlap and returns them in canonical descending-Hi order.
// The input slice is not modified.
func NewSet(specs []Spec, width uint) (Set, error) {
	if err := CheckWidth(width); err != nil {
		return nil, err
	}
	set := make(Set, len(specs))
	copy(set, specs)

	var occupied uint64
	for _, s := range set {
		if err := s.Validate(width); err != nil {
			return nil, err
		}
		if occupied&s.Mask() != 0 {
			return nil, fmt.Errorf("%w: %s shares bits with an earlier field", ErrFieldOverlap, s)
		}
		occupied |= s.Mask()
	}

	sort.SliceStable(set, func(i, j int) bool {
		return set[i].Hi > set[j].Hi
	})
	return set, nil
}

// CheckWidth rejects diagram widths other than 8, 16, 32 and 64.
func CheckWidth(width uint) error {
	switch width {
	case 8, 16, 32, 64:
		return nil
	default:
		return fmt.Errorf("%w: invalid diagram width %d (must be 8, 16, 32 or 64)", ErrFieldRange, width)
	}
}

// maskBits returns a mask with the low n bits set, for 1 <= n <= 64.
func maskBits(n uint) uint64 {
	return ^uint64(0) >> (64 - n)
}
