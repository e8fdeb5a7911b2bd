// Package sheet renders a contact sheet of all glyphs at one size, for
// eyeballing a generated font asset without the target runtime.
package sheet

import (
	"image"
	"image/color"
	"image/draw"
	"image/gif"
	"io"

	"github.com/ericpauley/go-quantize/quantize"

	"github.com/romekit/fontgen/raster"
)

// Rasterizer is the subset of the renderer the sheet needs.
type Rasterizer interface {
	Glyph(c rune, sz raster.Size) (*raster.Raster, error)
}

const columns = 32

// Write renders glyphs into a grid and encodes it as a GIF. Glyphs that
// fail to rasterize leave their cell blank, mirroring their omission
// from the payload.
func Write(w io.Writer, r Rasterizer, glyphs []rune, sz raster.Size) error {
	const pad = 1
	cell := sz.Dim + pad
	cols := columns
	if len(glyphs) < cols {
		cols = len(glyphs)
	}
	if cols == 0 {
		cols = 1
	}
	rows := (len(glyphs) + cols - 1) / cols

	grid := image.NewGray(image.Rect(0, 0, cols*cell, rows*cell))
	draw.Draw(grid, grid.Bounds(), image.White, image.Point{}, draw.Src)

	for i, c := range glyphs {
		rst, err := r.Glyph(c, sz)
		if err != nil {
			continue
		}
		cellRect := image.Rect(0, 0, sz.Dim, sz.Dim).
			Add(image.Pt((i%cols)*cell, (i/cols)*cell))
		draw.Draw(grid, cellRect, rst, image.Point{}, draw.Src)
	}

	q := quantize.MedianCutQuantizer{}
	p := q.Quantize(make([]color.Color, 0, 256), grid)
	paletted := image.NewPaletted(grid.Bounds(), p)
	draw.Draw(paletted, grid.Bounds(), grid, image.Point{}, draw.Src)

	return gif.Encode(w, paletted, nil)
}
