package raster

import (
	"fmt"
	"strconv"
	"strings"
)

// Size describes one glyph variant: the point size glyphs are rendered
// at and the square dimension of the raster they are packed into. The
// two are usually equal.
type Size struct {
	Points int
	Dim    int
}

// DefaultSizes are the glyph variants produced when none are
// configured.
var DefaultSizes = []Size{{12, 12}, {15, 15}, {20, 20}}

// ParseSizes parses a comma separated list of sizes. Each element is
// either a bare dimension n, meaning n:n, or a render:dim pair.
func ParseSizes(s string) ([]Size, error) {
	var sizes []Size
	for _, field := range strings.Split(s, ",") {
		field = strings.TrimSpace(field)
		points, dim, found := strings.Cut(field, ":")
		p, err := strconv.Atoi(points)
		if err != nil || p <= 0 {
			return nil, fmt.Errorf("raster: invalid size %q", field)
		}
		d := p
		if found {
			if d, err = strconv.Atoi(dim); err != nil || d <= 0 {
				return nil, fmt.Errorf("raster: invalid size %q", field)
			}
		}
		sizes = append(sizes, Size{p, d})
	}
	return sizes, nil
}
