package diagram

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"go.uber.org/zap"
	"golang.org/x/image/font"
)

// Pixel geometry of a rendered diagram. Every cell column has a fixed
// width per bit, so diagrams of the same bit width line up exactly.
const (
	pxPerBit    = 48
	pxMargin    = 16
	pxIndexBand = 28
	pxNameBand  = 56
	pxValueBand = 44
	pxStroke    = 2

	ptLabel = 22
	ptIndex = 14
)

// RenderPNG draws the diagram under the target's color scheme and writes
// it to "{prefix}-{scheme}.png" in the target's output directory,
// overwriting any previous run. It returns the written path.
func RenderPNG(d *Diagram, fnt *truetype.Font, t Target) (string, error) {
	imgW := 2*pxMargin + int(d.Width)*pxPerBit
	imgH := 2*pxMargin + pxIndexBand + pxNameBand
	if d.HasValues {
		imgH += pxValueBand
	}

	fg, bg := t.Scheme.Colors()
	dc := gg.NewContext(imgW, imgH)
	if bg.A != 0 {
		dc.SetColor(bg)
		dc.Clear()
	}

	labelFace := truetype.NewFace(fnt, &truetype.Options{Size: ptLabel, DPI: 72, Hinting: font.HintingFull})
	indexFace := truetype.NewFace(fnt, &truetype.Options{Size: ptIndex, DPI: 72, Hinting: font.HintingFull})

	gridTop := float64(pxMargin + pxIndexBand)
	gridBottom := float64(imgH - pxMargin)
	dc.SetColor(fg)
	dc.SetLineWidth(pxStroke)

	// Grid geometry mirrors the ASCII renderer: one box per cell, with a
	// separator between the name and value bands when values are shown.
	dc.DrawRectangle(cellLeft(d, d.Width-1), gridTop, float64(int(d.Width)*pxPerBit), gridBottom-gridTop)
	dc.Stroke()
	for _, c := range d.Cells[1:] {
		x := cellLeft(d, c.Hi)
		dc.DrawLine(x, gridTop, x, gridBottom)
		dc.Stroke()
	}
	if d.HasValues {
		y := gridTop + pxNameBand
		dc.DrawLine(cellLeft(d, d.Width-1), y, cellRight(d, 0), y)
		dc.Stroke()
	}

	indexY := gridTop - 8
	dc.SetFontFace(indexFace)
	for _, c := range d.Cells {
		hi := strconv.FormatUint(uint64(c.Hi), 10)
		if c.Hi == c.Lo {
			dc.DrawStringAnchored(hi, cellCenter(d, c), indexY, 0.5, 0)
			continue
		}
		lo := strconv.FormatUint(uint64(c.Lo), 10)
		dc.DrawStringAnchored(hi, cellLeft(d, c.Hi)+4, indexY, 0, 0)
		dc.DrawStringAnchored(lo, cellRight(d, c.Lo)-4, indexY, 1, 0)
	}

	dc.SetFontFace(labelFace)
	nameY := gridTop + pxNameBand/2
	for _, c := range d.Cells {
		if c.Name != "" {
			dc.DrawStringAnchored(c.Name, cellCenter(d, c), nameY, 0.5, 0.5)
		}
	}
	if d.HasValues {
		valueY := gridTop + pxNameBand + pxValueBand/2
		for _, c := range d.Cells {
			if c.Value != "" {
				dc.DrawStringAnchored(c.Value, cellCenter(d, c), valueY, 0.5, 0.5)
			}
		}
	}

	path := filepath.Join(t.OutDir, fmt.Sprintf("%s-%s.png", t.Prefix, t.Scheme.Tag()))
	if err := writePNG(dc, path); err != nil {
		return "", err
	}
	Logger().Debug("wrote image",
		zap.String("path", path),
		zap.String("scheme", t.Scheme.Tag()),
		zap.Int("width_px", imgW),
		zap.Int("height_px", imgH))
	return path, nil
}

func writePNG(dc *gg.Context, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrImageWrite, path, err)
	}
	if err := dc.EncodePNG(f); err != nil {
		f.Close()
		return fmt.Errorf("%w: %s: %v", ErrImageWrite, path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrImageWrite, path, err)
	}
	return nil
}

// cellLeft is the x coordinate of the left edge of the column holding bit hi.
func cellLeft(d *Diagram, hi uint) float64 {
	return float64(pxMargin + int(d.Width-1-hi)*pxPerBit)
}

// cellRight is the x coordinate of the right edge of the column holding bit lo.
func cellRight(d *Diagram, lo uint) float64 {
	return float64(pxMargin + int(d.Width-lo)*pxPerBit)
}

func cellCenter(d *Diagram, c Cell) float64 {
	return (cellLeft(d, c.Hi) + cellRight(d, c.Lo)) / 2
}
