// Package diag implements the Diagnostics component: location-anchored
// error/warning/note reporting with a source-line echo and a caret,
// colorized with lipgloss when writing to a terminal.
package diag

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/xplshn/minic/pkg/source"
	"github.com/xplshn/minic/pkg/token"
)

// Level is the severity of a diagnostic.
type Level int

const (
	LevelError Level = iota
	LevelWarning
	LevelNote
)

func (l Level) String() string {
	switch l {
	case LevelError:
		return "error"
	case LevelWarning:
		return "warning"
	case LevelNote:
		return "note"
	default:
		return "diagnostic"
	}
}

var (
	errorStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.AdaptiveColor{Light: "#B00020", Dark: "#FF5F87"})
	warningStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.AdaptiveColor{Light: "#946C00", Dark: "#FFD580"})
	noteStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.AdaptiveColor{Light: "#555555", Dark: "#808080"})
	caretStyle   = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#007030", Dark: "#32CD32"})
)

func styleFor(l Level) lipgloss.Style {
	switch l {
	case LevelError:
		return errorStyle
	case LevelWarning:
		return warningStyle
	default:
		return noteStyle
	}
}

// Diagnostic is one reported message, kept around after emission so
// callers (and cmd/minictest) can inspect what was said without
// re-parsing stderr text.
type Diagnostic struct {
	Level   Level
	Loc     token.Location
	Message string
}

// Reporter is the explicit diagnostics sink threaded through the
// lexer and the parser; the parser also reports the symbol-table
// errors (redeclaration, undeclared use) through it.
type Reporter struct {
	out        io.Writer
	color      bool
	buffers    map[string]*source.Buffer
	errorCount int
	history    []Diagnostic
}

// NewReporter builds a Reporter writing to w. color enables lipgloss
// styling of the level tag and caret.
func NewReporter(w io.Writer, color bool) *Reporter {
	return &Reporter{out: w, color: color, buffers: make(map[string]*source.Buffer)}
}

// Default is a thin package-level reporter writing to stderr. The
// minic and minictest commands do not use it; each builds its own.
var Default = NewReporter(os.Stderr, true)

// AddSource registers a loaded buffer so later diagnostics against
// that file can echo the offending source line.
func (r *Reporter) AddSource(b *source.Buffer) {
	r.buffers[b.Name] = b
}

// ErrorCount returns the number of error()-level diagnostics emitted
// so far. It is monotonically non-decreasing.
func (r *Reporter) ErrorCount() int { return r.errorCount }

// History returns every diagnostic emitted so far, in emission order.
func (r *Reporter) History() []Diagnostic { return r.history }

// Cleanup clears accumulated state, readying the Reporter for reuse.
func (r *Reporter) Cleanup() {
	r.buffers = make(map[string]*source.Buffer)
	r.errorCount = 0
	r.history = nil
}

// Error reports an error at loc and increments the error count.
func (r *Reporter) Error(loc token.Location, format string, args ...interface{}) {
	r.emit(LevelError, loc, format, args...)
}

// Warning reports a warning at loc. Warnings do not affect the error
// count.
func (r *Reporter) Warning(loc token.Location, format string, args ...interface{}) {
	r.emit(LevelWarning, loc, format, args...)
}

// Note reports a note at loc. Notes do not affect the error count.
func (r *Reporter) Note(loc token.Location, format string, args ...interface{}) {
	r.emit(LevelNote, loc, format, args...)
}

func (r *Reporter) emit(level Level, loc token.Location, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	r.history = append(r.history, Diagnostic{Level: level, Loc: loc, Message: msg})
	if level == LevelError {
		r.errorCount++
	}

	filename := loc.File
	if filename == "" {
		filename = "<unknown>"
	}
	tag := level.String() + ":"
	if r.color {
		tag = styleFor(level).Render(tag)
	}
	fmt.Fprintf(r.out, "%s:%d:%d: %s %s\n", filename, loc.Line, loc.Column, tag, msg)

	r.printSourceLine(loc)
}

func (r *Reporter) printSourceLine(loc token.Location) {
	if !loc.IsValid() {
		return
	}
	buf, ok := r.buffers[loc.File]
	if !ok {
		return
	}
	line := buf.Line(loc.Line)
	if line == "" && loc.Line > buf.LineCount() {
		return
	}
	fmt.Fprintf(r.out, "  %s\n", line)

	caret := strings.Repeat(" ", loc.Column-1) + "^"
	if r.color {
		caret = caretStyle.Render(caret)
	}
	fmt.Fprintf(r.out, "  %s\n", caret)
}
