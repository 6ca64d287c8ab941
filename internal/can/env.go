// Package can turns surface patterns into canonical patterns: names become
// symbols, literals become typed values, and every problem is reported to a
// diagnostics sink and left in the tree as a sentinel node.
package can

import (
	"log/slog"

	"github.com/funvibe/patcanon/internal/diagnostics"
	"github.com/funvibe/patcanon/internal/symbols"
)

// Env is the per-module state shared by every canonicalization call of a
// compilation unit. It is not safe for concurrent use.
type Env struct {
	Home     symbols.ModuleID
	IdentIDs *symbols.IdentIDs
	File     string
	Sink     diagnostics.Sink
	Logger   *slog.Logger
}

func NewEnv(home symbols.ModuleID, idents *symbols.IdentIDs, sink diagnostics.Sink, logger *slog.Logger) *Env {
	if sink == nil {
		sink = diagnostics.Discard
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Env{
		Home:     home,
		IdentIDs: idents,
		Sink:     sink,
		Logger:   logger.With("module", home.Short()),
	}
}

// NewModule creates an Env and the module scope sharing its ident table.
func NewModule(name string, exposed []string, sink diagnostics.Sink, logger *slog.Logger) (*Env, *symbols.Scope) {
	home := symbols.ModuleIDFor(name)
	idents := symbols.NewIdentIDs()
	scope := symbols.NewModuleScope(home, idents, exposed)
	return NewEnv(home, idents, sink, logger), scope
}

func (e *Env) problem(err *diagnostics.DiagnosticError) {
	if err.File == "" {
		err.File = e.File
	}
	e.Logger.Debug("problem", "code", err.Code, "region", err.Region)
	e.Sink.Report(err)
}
