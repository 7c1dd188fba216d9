package diagram

import "image/color"

// Scheme selects the foreground/background color pair of a PNG diagram.
type Scheme int

const (
	BlackOnWhite Scheme = iota
	BlackOnTransparent
	WhiteOnBlack
	WhiteOnTransparent
)

// AllSchemes lists every image scheme, in the order "--all" produces them.
func AllSchemes() []Scheme {
	return []Scheme{BlackOnWhite, BlackOnTransparent, WhiteOnBlack, WhiteOnTransparent}
}

// Tag returns the short scheme tag used in output file names.
func (s Scheme) Tag() string {
	switch s {
	case BlackOnWhite:
		return "bow"
	case BlackOnTransparent:
		return "bot"
	case WhiteOnBlack:
		return "wob"
	case WhiteOnTransparent:
		return "wot"
	}
	return "unknown"
}

// Colors returns the scheme's foreground and background colors. A zero
// alpha background means the image is left transparent.
func (s Scheme) Colors() (fg, bg color.NRGBA) {
	black := color.NRGBA{A: 0xFF}
	white := color.NRGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}
	switch s {
	case BlackOnWhite:
		return black, white
	case BlackOnTransparent:
		return black, color.NRGBA{}
	case WhiteOnBlack:
		return white, black
	case WhiteOnTransparent:
		return white, color.NRGBA{}
	}
	return black, white
}

// Target describes one requested PNG artifact: its color scheme, the
// file-name prefix and the directory the file is written into.
type Target struct {
	Scheme Scheme
	Prefix string
	OutDir string
}
