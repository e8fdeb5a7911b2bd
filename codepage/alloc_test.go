package codepage_test

import (
	"errors"
	"testing"

	"github.com/romekit/fontgen/codepage"
)

// Every high byte from 0x80 to 0xFF carries 0x80 valid low bytes.
const idSpace = 128 * 128

func TestAllocatorSequence(t *testing.T) {
	alloc := codepage.NewAllocator()
	prev := -1
	for i := 0; i < idSpace; i++ {
		id, err := alloc.Next()
		if err != nil {
			t.Fatalf("allocation %d failed: %v", i, err)
		}
		if i == 0 && id != codepage.FirstID {
			t.Fatalf("first id = %#04x, want %#04x", id, codepage.FirstID)
		}
		if int(id) <= prev {
			t.Fatalf("id %#04x not above previous %#04x", id, prev)
		}
		if id&0xff < 0x80 {
			t.Fatalf("id %#04x has reserved low byte", id)
		}
		prev = int(id)
	}
	if prev != 0xffff {
		t.Errorf("last id = %#04x, want 0xffff", prev)
	}
}

func TestAllocatorCarry(t *testing.T) {
	alloc := codepage.NewAllocator()
	carries := map[uint16]uint16{
		0x80ff: 0x8180,
		0x82ff: 0x8380,
	}
	var prev uint16
	for i := 0; i < idSpace; i++ {
		id, err := alloc.Next()
		if err != nil {
			t.Fatal(err)
		}
		if want, ok := carries[prev]; ok && id != want {
			t.Errorf("id after %#04x = %#04x, want %#04x", prev, id, want)
		}
		prev = id
	}
}

func TestAllocatorExhaustion(t *testing.T) {
	alloc := codepage.NewAllocator()
	for i := 0; i < idSpace; i++ {
		if _, err := alloc.Next(); err != nil {
			t.Fatalf("allocation %d failed early: %v", i, err)
		}
	}
	for i := 0; i < 3; i++ {
		if _, err := alloc.Next(); !errors.Is(err, codepage.ErrExhausted) {
			t.Fatalf("got %v, want ErrExhausted", err)
		}
	}
}
