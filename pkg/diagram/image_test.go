package diagram

import (
	"errors"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/golang/freetype/truetype"
)

func loadTestFont(t *testing.T) *truetype.Font {
	t.Helper()
	fnt, err := LoadFont("")
	if err != nil {
		t.Fatalf("LoadFont(bundled): %v", err)
	}
	return fnt
}

func TestLoadFont_Bundled(t *testing.T) {
	if _, err := LoadFont(""); err != nil {
		t.Fatalf("bundled font should always load: %v", err)
	}
}

func TestLoadFont_MissingFile(t *testing.T) {
	_, err := LoadFont(filepath.Join(t.TempDir(), "missing.ttf"))
	if !errors.Is(err, ErrFontLoad) {
		t.Errorf("expected ErrFontLoad, got %v", err)
	}
}

func TestLoadFont_NotAFont(t *testing.T) {
	path := filepath.Join(t.TempDir(), "junk.ttf")
	if err := os.WriteFile(path, []byte("this is not a font"), 0644); err != nil {
		t.Fatal(err)
	}
	_, err := LoadFont(path)
	if !errors.Is(err, ErrFontLoad) {
		t.Errorf("expected ErrFontLoad, got %v", err)
	}
}

func TestRenderPNG_WritesDecodableImage(t *testing.T) {
	set := mustParse(t, []string{"sf[7]", "Rn[6:0]=0x12"}, 8)
	d, err := Layout(set, 8, nil)
	if err != nil {
		t.Fatalf("Layout: %v", err)
	}
	dir := t.TempDir()
	fnt := loadTestFont(t)

	path, err := RenderPNG(d, fnt, Target{Scheme: BlackOnWhite, Prefix: "sample", OutDir: dir})
	if err != nil {
		t.Fatalf("RenderPNG: %v", err)
	}
	if got := filepath.Base(path); got != "sample-bow.png" {
		t.Errorf("file name = %q, want %q", got, "sample-bow.png")
	}

	img := decodePNG(t, path)
	wantW := 2*pxMargin + 8*pxPerBit
	wantH := 2*pxMargin + pxIndexBand + pxNameBand + pxValueBand
	if b := img.Bounds(); b.Dx() != wantW || b.Dy() != wantH {
		t.Errorf("image is %dx%d, want %dx%d", b.Dx(), b.Dy(), wantW, wantH)
	}
}

func TestRenderPNG_SchemeBackgrounds(t *testing.T) {
	set := mustParse(t, []string{"N[7]"}, 8)
	d, err := Layout(set, 8, nil)
	if err != nil {
		t.Fatalf("Layout: %v", err)
	}
	dir := t.TempDir()
	fnt := loadTestFont(t)

	testCases := []struct {
		scheme            Scheme
		wantR, wantA      uint32
		transparentCorner bool
	}{
		{BlackOnWhite, 0xFFFF, 0xFFFF, false},
		{WhiteOnBlack, 0x0000, 0xFFFF, false},
		{BlackOnTransparent, 0, 0, true},
		{WhiteOnTransparent, 0, 0, true},
	}
	for _, tc := range testCases {
		t.Run(tc.scheme.Tag(), func(t *testing.T) {
			path, err := RenderPNG(d, fnt, Target{Scheme: tc.scheme, Prefix: "n", OutDir: dir})
			if err != nil {
				t.Fatalf("RenderPNG: %v", err)
			}
			img := decodePNG(t, path)
			r, _, _, a := img.At(1, 1).RGBA()
			if tc.transparentCorner {
				if a != 0 {
					t.Errorf("corner alpha = %#x, want transparent", a)
				}
				return
			}
			if r != tc.wantR || a != tc.wantA {
				t.Errorf("corner = (r=%#x a=%#x), want (r=%#x a=%#x)", r, a, tc.wantR, tc.wantA)
			}
		})
	}
}

func TestRenderPNG_OverwritesPreviousRun(t *testing.T) {
	set := mustParse(t, []string{"N[7]"}, 8)
	d, err := Layout(set, 8, nil)
	if err != nil {
		t.Fatalf("Layout: %v", err)
	}
	dir := t.TempDir()
	fnt := loadTestFont(t)
	target := Target{Scheme: WhiteOnBlack, Prefix: "n", OutDir: dir}

	first, err := RenderPNG(d, fnt, target)
	if err != nil {
		t.Fatalf("first render: %v", err)
	}
	second, err := RenderPNG(d, fnt, target)
	if err != nil {
		t.Fatalf("second render: %v", err)
	}
	if first != second {
		t.Errorf("path changed between runs: %q vs %q", first, second)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("expected a single output file, found %d", len(entries))
	}
}

func TestRenderPNG_UnwritableDir(t *testing.T) {
	set := mustParse(t, []string{"N[7]"}, 8)
	d, err := Layout(set, 8, nil)
	if err != nil {
		t.Fatalf("Layout: %v", err)
	}
	fnt := loadTestFont(t)
	target := Target{
		Scheme: BlackOnWhite,
		Prefix: "n",
		OutDir: filepath.Join(t.TempDir(), "does", "not", "exist"),
	}
	if _, err := RenderPNG(d, fnt, target); !errors.Is(err, ErrImageWrite) {
		t.Errorf("expected ErrImageWrite, got %v", err)
	}
}

func decodePNG(t *testing.T, path string) image.Image {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open %s: %v", path, err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode %s: %v", path, err)
	}
	return img
}
