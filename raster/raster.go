// Package raster renders single characters into square grayscale
// rasters using a TrueType font face.
package raster

import (
	"fmt"
	"image"
	"os"

	"github.com/golang/freetype"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Raster is a square 8-bit grayscale image, white background, black
// ink.
type Raster struct{ image.Gray }

func NewRaster(dim int) *Raster {
	r := &Raster{image.Gray{
		Pix:    make([]byte, dim*dim),
		Stride: dim,
		Rect:   image.Rect(0, 0, dim, dim),
	}}
	for i := range r.Pix {
		r.Pix[i] = 0xff
	}
	return r
}

func (r *Raster) Dim() int { return r.Rect.Dx() }

// Renderer rasterizes characters of a single font at multiple sizes.
// Faces are created lazily per size and cached for the renderer's
// lifetime, which is one compilation run.
type Renderer struct {
	font    *truetype.Font
	name    string
	dpi     float64
	hinting font.Hinting
	faces   map[int]font.Face
}

// New returns a renderer for a parsed TrueType font.
func New(fontBytes []byte) (*Renderer, error) {
	f, err := freetype.ParseFont(fontBytes)
	if err != nil {
		return nil, fmt.Errorf("raster: parse font: %w", err)
	}
	return &Renderer{
		font:    f,
		name:    f.Name(truetype.NameIDFontFullName),
		dpi:     72,
		hinting: font.HintingNone,
		faces:   make(map[int]font.Face),
	}, nil
}

// Load reads and parses a TrueType font file.
func Load(path string) (*Renderer, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("raster: %w", err)
	}
	return New(b)
}

// Fallback returns a renderer backed by the built-in fixed 7x13 face,
// usable when no font file is available. All sizes share the one face.
func Fallback() *Renderer {
	return &Renderer{name: "basicfont"}
}

func (r *Renderer) Name() string { return r.name }

func (r *Renderer) face(points int) font.Face {
	if r.font == nil {
		return basicfont.Face7x13
	}
	if f, ok := r.faces[points]; ok {
		return f
	}
	f := truetype.NewFace(r.font, &truetype.Options{
		Size:    float64(points),
		DPI:     r.dpi,
		Hinting: r.hinting,
	})
	r.faces[points] = f
	return f
}

// Glyph renders c at sz into a fresh raster. The glyph is drawn at the
// left edge with its ink box centered vertically. A character the face
// cannot shape is an error; the caller decides whether to skip it.
func (r *Renderer) Glyph(c rune, sz Size) (*Raster, error) {
	face := r.face(sz.Points)
	if _, ok := face.GlyphAdvance(c); !ok {
		return nil, fmt.Errorf("raster: no glyph for %q in %s", c, r.name)
	}

	rst := NewRaster(sz.Dim)
	d := font.Drawer{Dst: rst, Src: image.Black, Face: face}

	b, _ := font.BoundString(face, string(c))
	h := (b.Max.Y - b.Min.Y).Ceil()
	baseline := (sz.Dim-h)/2 - b.Min.Y.Floor()
	d.Dot = fixed.P(0, baseline)
	d.DrawString(string(c))
	return rst, nil
}
