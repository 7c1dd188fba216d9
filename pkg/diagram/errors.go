package diagram

import "errors"

var (
	ErrFontLoad   = errors.New("failed to load font")
	ErrImageWrite = errors.New("failed to write image")
)
