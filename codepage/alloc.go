// Package codepage assigns two-byte runtime character codes to the
// characters of a text corpus and builds the lookup table mapping them
// back to UTF-8.
package codepage

import "errors"

const (
	// FirstID is the identifier assigned to the first admitted character.
	FirstID = 0x8080

	// minLow is the smallest value an identifier's low byte may take.
	// Lower values are reserved so identifiers never collide with
	// single-byte ASCII in the runtime's mixed encoding.
	minLow = 0x80
)

var ErrExhausted = errors.New("codepage: identifier space exhausted")

// Allocator hands out codepage identifiers in allocation order,
// strictly increasing, with the low byte always in [0x80, 0xFF].
type Allocator struct {
	next uint32 // 32 bits so advancing past 0xFFFF is detectable
}

func NewAllocator() *Allocator {
	return &Allocator{next: FirstID}
}

// Next returns the next free identifier. Once the 16-bit space is used
// up it returns ErrExhausted on every call.
func (a *Allocator) Next() (uint16, error) {
	if a.next > 0xFFFF {
		return 0, ErrExhausted
	}
	id := uint16(a.next)
	if a.next&0xFF == 0xFF {
		// Carry into the high byte and restart the low byte at the
		// bottom of the allowed range.
		a.next = a.next&0xFF00 + 0x100 + minLow
	} else {
		a.next++
		if a.next&0xFF == 0x00 {
			a.next += minLow
		}
	}
	return id, nil
}
