// Package source loads a Mini-C source file once and answers the
// questions the diagnostics reporter and lexer need about it: what
// line a byte offset falls on, and what that line's text is.
package source

import "os"

// Buffer is a loaded source file: its name, its raw bytes (treated as
// ASCII per spec), and the byte offset each line starts at.
type Buffer struct {
	Name       string
	Bytes      []byte
	lineStarts []int
}

// Load reads filename in full into memory. The returned error, if any,
// is an I/O error the caller reports through pkg/diag; Load itself
// never panics or exits.
func Load(filename string) (*Buffer, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	return New(filename, data), nil
}

// New builds a Buffer directly from in-memory content, used by tests
// and by the CLI's synthesized test program.
func New(filename string, data []byte) *Buffer {
	b := &Buffer{Name: filename, Bytes: data}
	b.lineStarts = []int{0}
	for i, c := range data {
		if c == '\n' {
			b.lineStarts = append(b.lineStarts, i+1)
		}
	}
	return b
}

// Line returns the text of the given 1-based line number, without its
// trailing newline. An out-of-range line returns "".
func (b *Buffer) Line(line int) string {
	if line < 1 || line > len(b.lineStarts) {
		return ""
	}
	start := b.lineStarts[line-1]
	end := len(b.Bytes)
	if line < len(b.lineStarts) {
		end = b.lineStarts[line] - 1
		if end > 0 && end <= len(b.Bytes) && b.Bytes[end-1] == '\r' {
			end--
		}
	}
	if end < start {
		end = start
	}
	return string(b.Bytes[start:end])
}

// LineCount returns the number of lines in the buffer.
func (b *Buffer) LineCount() int { return len(b.lineStarts) }
