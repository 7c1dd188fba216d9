package diagram

import (
	"fmt"
	"os"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font/gofont/gomono"
)

// LoadFont parses the TTF at path, or the bundled Go Mono face when path
// is empty. The font is loaded once per invocation and is read-only for
// the duration of image rendering.
func LoadFont(path string) (*truetype.Font, error) {
	data := gomono.TTF
	if path != "" {
		var err error
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrFontLoad, path, err)
		}
	}
	fnt, err := truetype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrFontLoad, fontName(path), err)
	}
	return fnt, nil
}

func fontName(path string) string {
	if path == "" {
		return "bundled Go Mono"
	}
	return path
}
