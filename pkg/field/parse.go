package field

import (
	"fmt"
	"regexp"
	"strconv"
)

var tokenRE = regexp.MustCompile(`^([A-Za-z_][A-Za-z0-9_]*)?\[([0-9]+)(?::([0-9]+))?\](?:=(0[xX][0-9a-fA-F]+|[0-9]+))?$`)

// Parse turns raw field tokens of the form "name[hi:lo]=value" into a
// validated Set. The name and "=value" parts are optional, and "[hi]"
// with no colon denotes a single-bit field. Values are decimal or
// 0x-prefixed hexadecimal.
func Parse(tokens []string, width uint) (Set, error) {
	specs := make([]Spec, 0, len(tokens))
	for _, tok := range tokens {
		s, err := ParseToken(tok)
		if err != nil {
			return nil, err
		}
		specs = append(specs, s)
	}
	return NewSet(specs, width)
}

// ParseToken parses a single field token without range-checking it
// against a diagram width.
func ParseToken(tok string) (Spec, error) {
	m := tokenRE.FindStringSubmatch(tok)
	if m == nil {
		return Spec{}, fmt.Errorf("%w: %q does not match name[hi:lo]=value", ErrMalformedSpec, tok)
	}

	hi, err := strconv.ParseUint(m[2], 10, 64)
	if err != nil {
		return Spec{}, fmt.Errorf("%w: %q: bad bit index %q", ErrMalformedSpec, tok, m[2])
	}
	lo := hi
	if m[3] != "" {
		lo, err = strconv.ParseUint(m[3], 10, 64)
		if err != nil {
			return Spec{}, fmt.Errorf("%w: %q: bad bit index %q", ErrMalformedSpec, tok, m[3])
		}
	}
	if hi >= MaxWidth || lo >= MaxWidth {
		return Spec{}, fmt.Errorf("%w: %q: bit index exceeds %d", ErrFieldRange, tok, MaxWidth-1)
	}

	s := Spec{Name: m[1], Hi: uint(hi), Lo: uint(lo)}
	if m[4] != "" {
		v, err := ParseValue(m[4])
		if err != nil {
			return Spec{}, fmt.Errorf("%w: %q: bad value %q", ErrMalformedSpec, tok, m[4])
		}
		s.Value = v
		s.HasValue = true
	}
	return s, nil
}

// ParseValue parses a decimal or 0x-prefixed hexadecimal value literal.
// The base is selected by the prefix alone, so leading zeros do not turn
// a decimal literal into octal.
func ParseValue(lit string) (uint64, error) {
	if len(lit) > 2 && (lit[:2] == "0x" || lit[:2] == "0X") {
		return strconv.ParseUint(lit[2:], 16, 64)
	}
	return strconv.ParseUint(lit, 10, 64)
}
