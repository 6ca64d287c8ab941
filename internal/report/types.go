package report

import "time"

// Run is one `check` invocation over a unit.
type Run struct {
	ID        int64
	Module    string
	File      string
	CreatedAt time.Time
}

type Diagnostic struct {
	ID            int64
	RunID         int64
	Case          string
	Code          string
	Severity      string
	File          string
	Start         uint32
	End           uint32
	Message       string
	OriginalStart *uint32
	OriginalEnd   *uint32
}

// Binding is one symbol bound by a case's pattern, in source order.
type Binding struct {
	ID      int64
	RunID   int64
	Case    string
	Ordinal int
	Name    string
	Symbol  string
	Start   uint32
	End     uint32
}
