package diagnostics

import (
	"sort"
	"strings"
)

// Sink receives problems as they are found. Reporting never fails.
type Sink interface {
	Report(err *DiagnosticError)
}

// Collector is an append-only Sink that keeps everything it is given.
type Collector struct {
	file   string
	errors []*DiagnosticError
}

// NewCollector creates a collector that stamps reports with file when they
// do not carry one.
func NewCollector(file string) *Collector {
	return &Collector{file: file}
}

func (c *Collector) Report(err *DiagnosticError) {
	if err == nil {
		return
	}
	if err.File == "" {
		err.File = c.file
	}
	c.errors = append(c.errors, err)
}

// Errors returns the reports in arrival order.
func (c *Collector) Errors() []*DiagnosticError {
	return c.errors
}

func (c *Collector) Len() int {
	return len(c.errors)
}

func (c *Collector) HasErrors() bool {
	for _, e := range c.errors {
		if e.Severity == SeverityError {
			return true
		}
	}
	return false
}

// Count returns how many reports carry code.
func (c *Collector) Count(code ErrorCode) int {
	n := 0
	for _, e := range c.errors {
		if e.Code == code {
			n++
		}
	}
	return n
}

// Sorted returns the reports ordered by position, then code.
func (c *Collector) Sorted() []*DiagnosticError {
	out := append([]*DiagnosticError(nil), c.errors...)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.File != b.File {
			return a.File < b.File
		}
		if a.Region.Start.Offset != b.Region.Start.Offset {
			return a.Region.Start.Offset < b.Region.Start.Offset
		}
		return a.Code < b.Code
	})
	return out
}

func (c *Collector) String() string {
	var sb strings.Builder
	for _, e := range c.Sorted() {
		sb.WriteString(e.Error())
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Discard is a Sink that drops every report.
var Discard Sink = discard{}

type discard struct{}

func (discard) Report(*DiagnosticError) {}
