// Package stream assembles packed glyph bitstreams into the binary
// payload consumed by the runtime.
//
// The payload is a flat concatenation of packed glyphs, size-major then
// glyph-major, with no header: it can only be interpreted together with
// the codepage table, depth and size list that produced it.
package stream

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/romekit/fontgen/pixel"
	"github.com/romekit/fontgen/raster"
)

// Rasterizer yields a square grayscale raster for one character at one
// size. Implemented by *raster.Renderer.
type Rasterizer interface {
	Glyph(c rune, sz raster.Size) (*raster.Raster, error)
}

// SizeResult reports what one size's glyph stream contains.
type SizeResult struct {
	Size    raster.Size
	Glyphs  int // glyphs packed into the stream
	Skipped int // glyphs dropped due to rasterization failures
	Bytes   int
}

// Assembler renders and packs every glyph at every configured size.
type Assembler struct {
	Rasterizer Rasterizer
	Sizes      []raster.Size
	Depth      pixel.Depth
	Warn       *log.Logger // nil silences skip warnings
}

func (a *Assembler) warnf(format string, args ...any) {
	if a.Warn != nil {
		a.Warn.Printf(format, args...)
	}
}

// Assemble writes the payload for glyphs to w. Each size's stream is
// accumulated fully before it is written. A glyph whose rasterization
// fails is skipped without substitute bytes, shortening that size's
// stream; the skip is counted in the size's result and warned about,
// never escalated to an error.
func (a *Assembler) Assemble(w io.Writer, glyphs []rune) ([]SizeResult, error) {
	results := make([]SizeResult, 0, len(a.Sizes))
	var buf []byte
	for _, sz := range a.Sizes {
		buf = buf[:0]
		res := SizeResult{Size: sz}
		for _, c := range glyphs {
			rst, err := a.Rasterizer.Glyph(c, sz)
			if err != nil {
				res.Skipped++
				a.warnf("skipping %q at size %d: %v", c, sz.Points, err)
				continue
			}
			buf = pixel.PackRaster(buf, rst.Pix, sz.Dim, a.Depth)
			res.Glyphs++
		}
		res.Bytes = len(buf)
		if _, err := w.Write(buf); err != nil {
			return results, fmt.Errorf("stream: write payload: %w", err)
		}
		results = append(results, res)
	}
	return results, nil
}

// WriteFile assembles the payload into the file at path. On any error
// the partially written file is removed so a truncated payload never
// ships alongside a complete codepage table.
func (a *Assembler) WriteFile(path string, glyphs []rune) ([]SizeResult, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("stream: %w", err)
	}
	results, err := a.Assemble(f, glyphs)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(path)
		return nil, err
	}
	return results, nil
}
