// Package pixel quantizes 8-bit grayscale samples and packs them into
// the sub-byte row bitstream consumed by the runtime renderer.
package pixel

import "fmt"

// Depth is the number of bits encoding one pixel's intensity.
type Depth int

const (
	Depth1 Depth = 1
	Depth2 Depth = 2
	Depth4 Depth = 4
)

func ParseDepth(bits int) (Depth, error) {
	switch bits {
	case 1, 2, 4:
		return Depth(bits), nil
	}
	return 0, fmt.Errorf("pixel: unsupported depth %d, must be 1, 2 or 4", bits)
}

// Quantize maps a grayscale sample (0=black, 255=white) to an intensity
// code: 0 is the lightest bucket, the depth's maximum the darkest.
// Codes never increase as samples get lighter.
func Quantize(sample uint8, d Depth) uint8 {
	switch d {
	case Depth1:
		if sample < 128 {
			return 1
		}
		return 0
	case Depth2:
		switch {
		case sample < 0x44:
			return 3
		case sample < 0x66:
			return 2
		case sample < 0xaa:
			return 1
		}
		return 0
	case Depth4:
		return (255 - sample) >> 4
	}
	return 0
}

// RowBytes returns the packed size of one row of width pixels. Rows pad
// to a byte boundary independently, so a glyph row always starts a
// fresh byte.
func RowBytes(width int, d Depth) int {
	return (width*int(d) + 7) / 8
}

// GlyphBytes returns the packed size of one square glyph of the given
// dimension.
func GlyphBytes(dim int, d Depth) int {
	return dim * RowBytes(dim, d)
}

// PackRow appends one row of intensity codes to buf. Codes accumulate
// into a byte least-significant-bits first; a trailing partial byte is
// flushed rather than carried into the next row.
func PackRow(buf []byte, codes []uint8, d Depth) []byte {
	var acc byte
	var filled int
	for _, c := range codes {
		acc |= c << filled
		filled += int(d)
		if filled >= 8 {
			buf = append(buf, acc)
			acc, filled = 0, 0
		}
	}
	if filled > 0 {
		buf = append(buf, acc)
	}
	return buf
}

// PackRaster quantizes a grayscale raster of the given row width and
// appends its packed rows to buf. The raster's length must be a
// multiple of width.
func PackRaster(buf []byte, pix []uint8, width int, d Depth) []byte {
	codes := make([]uint8, width)
	for y := 0; y < len(pix)/width; y++ {
		row := pix[y*width : (y+1)*width]
		for x, s := range row {
			codes[x] = Quantize(s, d)
		}
		buf = PackRow(buf, codes, d)
	}
	return buf
}
