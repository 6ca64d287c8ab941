package report

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/funvibe/patcanon/internal/config"
	"github.com/funvibe/patcanon/internal/diagnostics"
)

const (
	ansiReset  = "\x1b[0m"
	ansiBold   = "\x1b[1m"
	ansiRed    = "\x1b[31m"
	ansiYellow = "\x1b[33m"
	ansiDim    = "\x1b[2m"
)

// Renderer writes diagnostics in a compiler-style one-line format, coloring
// them when the destination is a terminal.
type Renderer struct {
	w     io.Writer
	color bool
}

// NewRenderer detects color support for w. Only *os.File writers that are
// terminals get colors, and NO_COLOR or TERM=dumb turn them off.
func NewRenderer(w io.Writer) *Renderer {
	return &Renderer{w: w, color: colorEnabled(w)}
}

// NewPlainRenderer never emits escape codes.
func NewPlainRenderer(w io.Writer) *Renderer {
	return &Renderer{w: w}
}

func (r *Renderer) Color() bool { return r.color }

func colorEnabled(w io.Writer) bool {
	if _, ok := os.LookupEnv(config.NoColorEnv); ok {
		return false
	}
	if os.Getenv("TERM") == "dumb" {
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func (r *Renderer) paint(code, s string) string {
	if !r.color {
		return s
	}
	return code + s + ansiReset
}

// Diagnostic writes one live diagnostic.
func (r *Renderer) Diagnostic(e *diagnostics.DiagnosticError) error {
	sevColor := ansiRed
	if e.Severity == diagnostics.SeverityWarning {
		sevColor = ansiYellow
	}
	head := r.paint(ansiBold+sevColor, fmt.Sprintf("%s[%s]", e.Severity, e.Code))
	loc := e.File + e.Region.String()
	line := fmt.Sprintf("%s %s: %s %s", loc, head, e.Message(), r.paint(ansiDim, "("+e.Code.Title()+")"))
	if e.OriginalRegion != nil {
		line += r.paint(ansiDim, fmt.Sprintf(" first bound at %s", e.OriginalRegion))
	}
	_, err := fmt.Fprintln(r.w, line)
	return err
}

// Diagnostics writes every diagnostic and a summary line.
func (r *Renderer) Diagnostics(errs []*diagnostics.DiagnosticError) error {
	for _, e := range errs {
		if err := r.Diagnostic(e); err != nil {
			return err
		}
	}
	return r.Summary(len(errs))
}

// Stored writes diagnostics loaded from the store.
func (r *Renderer) Stored(ds []*Diagnostic) error {
	for _, d := range ds {
		sevColor := ansiRed
		if d.Severity == diagnostics.SeverityWarning.String() {
			sevColor = ansiYellow
		}
		head := r.paint(ansiBold+sevColor, fmt.Sprintf("%s[%s]", d.Severity, d.Code))
		line := fmt.Sprintf("%s@%d-%d %s: %s %s", d.File, d.Start, d.End, head, d.Message, r.paint(ansiDim, "["+d.Case+"]"))
		if _, err := fmt.Fprintln(r.w, line); err != nil {
			return err
		}
	}
	return r.Summary(len(ds))
}

func (r *Renderer) Summary(n int) error {
	var err error
	switch n {
	case 0:
		_, err = fmt.Fprintln(r.w, r.paint(ansiBold, "no problems"))
	case 1:
		_, err = fmt.Fprintln(r.w, r.paint(ansiBold, "1 problem"))
	default:
		_, err = fmt.Fprintln(r.w, r.paint(ansiBold, fmt.Sprintf("%d problems", n)))
	}
	return err
}
