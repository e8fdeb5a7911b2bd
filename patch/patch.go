// Package patch rewrites generated C sources in place: the body of a
// named array initializer and the value of a numeric constant. Edits
// are staged on an in-memory copy, so a run can prepare every patch and
// fail on a missing target before any file is touched.
package patch

import (
	"fmt"
	"os"
	"regexp"
)

// File stages edits to one generated source file.
type File struct {
	path string
	data []byte
	mode os.FileMode
}

func Open(path string) (*File, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("patch: %w", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("patch: %w", err)
	}
	return &File{path: path, data: data, mode: fi.Mode().Perm()}, nil
}

// Array replaces the brace-delimited initializer body of the named
// array with body. The body is inserted between the declaration's
// outermost braces; nested braces in the existing body are balanced,
// not matched textually.
func (f *File) Array(name string, body []byte) error {
	re := regexp.MustCompile(`\b` + regexp.QuoteMeta(name) + `\s*\[[^\]]*\]\s*=\s*\{`)
	loc := re.FindIndex(f.data)
	if loc == nil {
		return fmt.Errorf("patch: array %q not found in %s", name, f.path)
	}
	open := loc[1] - 1
	depth, end := 0, -1
	for i := open; i < len(f.data) && end < 0; i++ {
		switch f.data[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				end = i
			}
		}
	}
	if end < 0 {
		return fmt.Errorf("patch: unbalanced braces for array %q in %s", name, f.path)
	}

	patched := make([]byte, 0, len(f.data)+len(body))
	patched = append(patched, f.data[:open+1]...)
	patched = append(patched, '\n')
	patched = append(patched, body...)
	patched = append(patched, f.data[end:]...)
	f.data = patched
	return nil
}

// Constant rewrites the value of a numeric constant, either a
// "#define NAME value" or a "NAME = value" form.
func (f *File) Constant(name string, value int) error {
	for _, pattern := range []string{
		`(#define\s+` + regexp.QuoteMeta(name) + `\s+)\d+`,
		`(\b` + regexp.QuoteMeta(name) + `\s*=\s*)\d+`,
	} {
		re := regexp.MustCompile(pattern)
		if re.Match(f.data) {
			f.data = re.ReplaceAll(f.data, []byte(fmt.Sprintf("${1}%d", value)))
			return nil
		}
	}
	return fmt.Errorf("patch: constant %q not found in %s", name, f.path)
}

// Commit writes the staged contents back to the file.
func (f *File) Commit() error {
	if err := os.WriteFile(f.path, f.data, f.mode); err != nil {
		return fmt.Errorf("patch: %w", err)
	}
	return nil
}
