package pipeline

import (
	"log/slog"

	"github.com/funvibe/patcanon/internal/abilities"
	"github.com/funvibe/patcanon/internal/can"
	"github.com/funvibe/patcanon/internal/config"
	"github.com/funvibe/patcanon/internal/diagnostics"
	"github.com/funvibe/patcanon/internal/region"
	"github.com/funvibe/patcanon/internal/report"
	"github.com/funvibe/patcanon/internal/symbols"
	"github.com/funvibe/patcanon/internal/typesystem"
)

// Processor is one stage of the pipeline.
type Processor interface {
	Process(ctx *PipelineContext) *PipelineContext
}

// PipelineContext carries a unit through the stages. Errors holds plumbing
// failures (unreadable files, undecodable nodes, storage); language problems
// go to Diagnostics.
type PipelineContext struct {
	FilePath string
	// Source, when set, is used instead of reading FilePath.
	Source []byte
	Logger *slog.Logger

	Unit        *config.Unit
	Env         *can.Env
	Scope       *symbols.Scope
	VarStore    *typesystem.VarStore
	Abilities   *abilities.Store
	Diagnostics *diagnostics.Collector

	Results []*CaseResult

	Store *report.Store
	RunID int64

	Errors []error
}

// CaseResult is the outcome of canonicalizing one case of the unit.
type CaseResult struct {
	Name    string
	Context can.PatternType
	Header  bool

	Pattern  region.Loc[can.Pattern]
	Output   can.Output
	Bindings []can.Binding
	// Diagnostics are the problems reported while this case ran.
	Diagnostics []*diagnostics.DiagnosticError

	skipped bool
}

// Skipped reports whether the case never reached canonicalization.
func (r *CaseResult) Skipped() bool { return r.skipped }

func NewContext(filePath string, logger *slog.Logger) *PipelineContext {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &PipelineContext{FilePath: filePath, Logger: logger}
}

func (ctx *PipelineContext) fail(err error) {
	ctx.Logger.Error("pipeline", "file", ctx.FilePath, "error", err)
	ctx.Errors = append(ctx.Errors, err)
}

// HasProblems reports whether any stage failed or any diagnostic was reported.
func (ctx *PipelineContext) HasProblems() bool {
	return len(ctx.Errors) > 0 || (ctx.Diagnostics != nil && ctx.Diagnostics.Len() > 0)
}
