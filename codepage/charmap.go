package codepage

import (
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/transform"
)

const (
	rcd = '�' // decoding replacement character
	rce = '?'      // encoding replacement character
)

// Charmap exposes a built table as a character encoding. The encoder
// turns UTF-8 text into the runtime's mixed stream: ASCII bytes pass
// through unchanged, every other mapped rune becomes its two-byte
// identifier, big endian. The reserved low-byte range of the allocator
// is what keeps the two classes disjoint. The decoder reverses the
// mapping.
func (t *Table) Charmap() encoding.Encoding {
	return &charmap{t}
}

type charmap struct{ table *Table }

func (m *charmap) NewDecoder() *encoding.Decoder {
	runes := make(map[uint16]rune, len(m.table.entries))
	for i, e := range m.table.entries {
		runes[e.ID] = m.table.glyphs[i]
	}
	return &encoding.Decoder{Transformer: &decoder{runes: runes}}
}

func (m *charmap) NewEncoder() *encoding.Encoder {
	return &encoding.Encoder{Transformer: &encoder{table: m.table}}
}

type encoder struct{ table *Table }

func (e *encoder) Transform(dst, src []byte, atEOF bool) (nDst, nSrc int, err error) {
	for nSrc < len(src) {
		r, size := utf8.DecodeRune(src[nSrc:])
		if r == utf8.RuneError && size == 1 {
			if !atEOF && !utf8.FullRune(src[nSrc:]) {
				err = transform.ErrShortSrc
				return
			}
		}
		if r < utf8.RuneSelf {
			if nDst >= len(dst) {
				err = transform.ErrShortDst
				return
			}
			dst[nDst] = byte(r)
			nDst++
			nSrc += size
			continue
		}
		id, ok := e.table.Lookup(r)
		if !ok {
			if nDst >= len(dst) {
				err = transform.ErrShortDst
				return
			}
			dst[nDst] = rce
			nDst++
			nSrc += size
			continue
		}
		if nDst+2 > len(dst) {
			err = transform.ErrShortDst
			return
		}
		dst[nDst] = byte(id >> 8)
		dst[nDst+1] = byte(id)
		nDst += 2
		nSrc += size
	}
	return
}

func (e *encoder) Reset() {}

type decoder struct{ runes map[uint16]rune }

func (d *decoder) Transform(dst, src []byte, atEOF bool) (nDst, nSrc int, err error) {
	for nSrc < len(src) {
		c := src[nSrc]
		var r rune
		var size int
		if c < 0x80 {
			r, size = rune(c), 1
		} else {
			if nSrc+2 > len(src) {
				if !atEOF {
					err = transform.ErrShortSrc
					return
				}
				r, size = rcd, 1
			} else {
				id := uint16(c)<<8 | uint16(src[nSrc+1])
				size = 2
				var ok bool
				if r, ok = d.runes[id]; !ok {
					r = rcd
				}
			}
		}
		if utf8.RuneLen(r) > len(dst)-nDst {
			err = transform.ErrShortDst
			return
		}
		nDst += utf8.EncodeRune(dst[nDst:], r)
		nSrc += size
	}
	return
}

func (d *decoder) Reset() {}
