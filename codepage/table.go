package codepage

import (
	"fmt"
	"io"

	"golang.org/x/text/unicode/norm"
)

// IdeographicSpace is exempt from deduplication: the runtime reserves
// one table slot per occurrence so variable-width padding keeps working.
const IdeographicSpace = '　'

// Entry maps one codepage identifier to the character's UTF-8 encoding,
// truncated to three bytes or zero-padded on the right. Truncation is
// lossy for four-byte sequences; the corpus is expected to stay inside
// the BMP.
type Entry struct {
	ID   uint16
	UTF8 [3]byte
}

// String returns the entry as a C initializer, the exact form the
// generated table sources use.
func (e Entry) String() string {
	return fmt.Sprintf("{0x%04x, {0x%02x, 0x%02x, 0x%02x}}",
		e.ID, e.UTF8[0], e.UTF8[1], e.UTF8[2])
}

// Table is the built codepage: entries and glyph runes in allocation
// order. Glyph order and identifier order always coincide; the glyph
// stream is emitted by iterating Glyphs.
type Table struct {
	entries []Entry
	glyphs  []rune
	ids     map[rune]uint16 // first identifier per rune
}

// Build scans corpus in order and allocates one identifier per admitted
// character. The corpus is NFC normalized first so composed and
// decomposed spellings yield a single glyph. Newlines and carriage
// returns are skipped. Every rune is admitted once, except
// IdeographicSpace which is admitted on every occurrence.
func Build(corpus string) (*Table, error) {
	t := &Table{ids: make(map[rune]uint16)}
	alloc := NewAllocator()
	seen := make(map[rune]bool)

	for _, c := range norm.NFC.String(corpus) {
		if c == '\n' || c == '\r' {
			continue
		}
		if c != IdeographicSpace {
			if seen[c] {
				continue
			}
			seen[c] = true
		}
		id, err := alloc.Next()
		if err != nil {
			return nil, err
		}
		var e Entry
		e.ID = id
		copy(e.UTF8[:], string(c))
		t.entries = append(t.entries, e)
		t.glyphs = append(t.glyphs, c)
		if _, ok := t.ids[c]; !ok {
			t.ids[c] = id
		}
	}
	return t, nil
}

// Len returns the number of entries, which is also the glyph count of
// each emitted glyph stream before rasterization failures.
func (t *Table) Len() int { return len(t.entries) }

func (t *Table) Entries() []Entry { return t.entries }

// Glyphs returns the admitted characters in allocation order.
func (t *Table) Glyphs() []rune { return t.glyphs }

// Lookup returns the identifier allocated to the first admission of c.
func (t *Table) Lookup(c rune) (uint16, bool) {
	id, ok := t.ids[c]
	return id, ok
}

// AppendBody appends the table's C initializer body, one indented entry
// per line, suitable for splicing between the braces of an existing
// array declaration.
func (t *Table) AppendBody(buf []byte, indent string) []byte {
	for _, e := range t.entries {
		buf = append(buf, indent...)
		buf = append(buf, e.String()...)
		buf = append(buf, ",\n"...)
	}
	return buf
}

// WriteDecl writes a standalone declaration of the table as a constant
// array named array, dimensioned by the symbolic constant count.
func (t *Table) WriteDecl(w io.Writer, array, count string) error {
	if _, err := fmt.Fprintf(w, "static const chinese_entry %s[%s] = {\n", array, count); err != nil {
		return err
	}
	if _, err := w.Write(t.AppendBody(nil, "    ")); err != nil {
		return err
	}
	_, err := io.WriteString(w, "};\n")
	return err
}
