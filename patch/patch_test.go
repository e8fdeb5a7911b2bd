package patch_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/romekit/fontgen/patch"
)

const tableSrc = `#include "image_font.h"

static const chinese_entry codepage_to_utf8[IMAGE_FONT_MULTIBYTE_SIMP_CHINESE_MAX_CHARS] = {
    {0x8080, {0xe4, 0xb8, 0xad}},
    {0x8081, {0xe6, 0x96, 0x87}},
};

static int other[2] = {1, 2};
`

const headerSrc = `#ifndef IMAGE_FONT_H
#define IMAGE_FONT_MULTIBYTE_SIMP_CHINESE_MAX_CHARS 2
#endif
`

func write(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestArraySplice(t *testing.T) {
	path := write(t, "table.c", tableSrc)
	f, err := patch.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	body := "    {0x8080, {0xe5, 0xad, 0x97}},\n"
	if err := f.Array("codepage_to_utf8", []byte(body)); err != nil {
		t.Fatal(err)
	}
	if err := f.Commit(); err != nil {
		t.Fatal(err)
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	s := string(got)
	if !strings.Contains(s, body) {
		t.Error("new body missing after splice")
	}
	if strings.Contains(s, "0xb8, 0xad") {
		t.Error("old body still present after splice")
	}
	// Nested entry braces must not end the splice early.
	if !strings.Contains(s, "static int other[2] = {1, 2};") {
		t.Error("splice damaged the rest of the file")
	}
	if !strings.Contains(s, "codepage_to_utf8[IMAGE_FONT_MULTIBYTE_SIMP_CHINESE_MAX_CHARS] = {") {
		t.Error("declaration head damaged")
	}
}

func TestArrayNotFound(t *testing.T) {
	f, err := patch.Open(write(t, "table.c", tableSrc))
	if err != nil {
		t.Fatal(err)
	}
	if err := f.Array("missing_table", nil); err == nil {
		t.Fatal("expected error for unknown array")
	}
}

func TestConstantDefine(t *testing.T) {
	path := write(t, "image_font.h", headerSrc)
	f, err := patch.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := f.Constant("IMAGE_FONT_MULTIBYTE_SIMP_CHINESE_MAX_CHARS", 1234); err != nil {
		t.Fatal(err)
	}
	if err := f.Commit(); err != nil {
		t.Fatal(err)
	}
	got, _ := os.ReadFile(path)
	want := "#define IMAGE_FONT_MULTIBYTE_SIMP_CHINESE_MAX_CHARS 1234"
	if !strings.Contains(string(got), want) {
		t.Errorf("constant not rewritten:\n%s", got)
	}
}

func TestConstantAssignment(t *testing.T) {
	f, err := patch.Open(write(t, "gen.c", "int max_chars = 7;\n"))
	if err != nil {
		t.Fatal(err)
	}
	if err := f.Constant("max_chars", 42); err != nil {
		t.Fatal(err)
	}
	if err := f.Commit(); err != nil {
		t.Fatal(err)
	}
}

func TestConstantNotFound(t *testing.T) {
	f, err := patch.Open(write(t, "image_font.h", headerSrc))
	if err != nil {
		t.Fatal(err)
	}
	if err := f.Constant("NO_SUCH_CONSTANT", 1); err == nil {
		t.Fatal("expected error for unknown constant")
	}
}

func TestOpenMissing(t *testing.T) {
	if _, err := patch.Open(filepath.Join(t.TempDir(), "nope.c")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestStagingLeavesFileUntouched(t *testing.T) {
	path := write(t, "table.c", tableSrc)
	f, err := patch.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := f.Array("codepage_to_utf8", []byte("    {0x8080, {0x00, 0x00, 0x00}},\n")); err != nil {
		t.Fatal(err)
	}
	// No Commit: the file on disk must still hold the old table.
	got, _ := os.ReadFile(path)
	if string(got) != tableSrc {
		t.Error("Array modified the file before Commit")
	}
}
