package field

import "errors"

var (
	ErrMalformedSpec = errors.New("malformed field spec")
	ErrFieldRange    = errors.New("field bit range out of range")
	ErrFieldOverlap  = errors.New("overlapping fields")
	ErrValueRange    = errors.New("value does not fit field width")
)
