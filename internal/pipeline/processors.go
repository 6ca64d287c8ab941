package pipeline

import (
	"fmt"
	"os"

	"github.com/funvibe/patcanon/internal/abilities"
	"github.com/funvibe/patcanon/internal/ast"
	"github.com/funvibe/patcanon/internal/can"
	"github.com/funvibe/patcanon/internal/config"
	"github.com/funvibe/patcanon/internal/diagnostics"
	"github.com/funvibe/patcanon/internal/region"
	"github.com/funvibe/patcanon/internal/report"
	"github.com/funvibe/patcanon/internal/symbols"
	"github.com/funvibe/patcanon/internal/typesystem"
)

// LoadProcessor reads and validates the unit file.
type LoadProcessor struct{}

func (lp *LoadProcessor) Process(ctx *PipelineContext) *PipelineContext {
	if ctx.Unit != nil {
		return ctx
	}
	data := ctx.Source
	if data == nil {
		var err error
		if data, err = os.ReadFile(ctx.FilePath); err != nil {
			ctx.fail(fmt.Errorf("reading unit %s: %w", ctx.FilePath, err))
			return ctx
		}
	}
	unit, err := config.ParseUnit(data, ctx.FilePath)
	if err != nil {
		ctx.fail(err)
		return ctx
	}
	ctx.Unit = unit
	ctx.Logger.Debug("unit loaded", "module", unit.Module, "cases", len(unit.Cases))
	return ctx
}

// ScopeProcessor builds the module environment: pre-bound values, ability
// members and type definitions.
type ScopeProcessor struct{}

func (sp *ScopeProcessor) Process(ctx *PipelineContext) *PipelineContext {
	unit := ctx.Unit
	if unit == nil {
		return ctx
	}

	ctx.Diagnostics = diagnostics.NewCollector(unit.File)
	env, scope := can.NewModule(unit.Module, unit.Exposed, ctx.Diagnostics, ctx.Logger)
	env.File = unit.File
	ctx.Env, ctx.Scope = env, scope
	ctx.VarStore = typesystem.NewVarStore()
	ctx.Abilities = abilities.NewStore()

	for _, b := range unit.Bound {
		if _, shadow := scope.Introduce(b.Name, b.RegionOf()); shadow != nil {
			ctx.fail(fmt.Errorf("bound name %s declared twice", b.Name))
		}
	}

	for _, name := range unit.AbilityNames() {
		ability := symbols.NewSymbol(env.Home, env.IdentIDs.GetOrInsert(name))
		for _, member := range unit.Abilities[name] {
			sym, shadow := scope.Introduce(member, region.Zero())
			if shadow != nil {
				ctx.fail(fmt.Errorf("ability member %s of %s is already bound", member, name))
				continue
			}
			ctx.Abilities.RegisterMember(ability, sym)
		}
	}

	addTypes := func(kind typesystem.AliasKind, decls []config.TypeDecl) {
		for _, d := range decls {
			def, err := d.Def(kind, ctx.VarStore)
			if err != nil {
				ctx.fail(fmt.Errorf("type %s: %w", d.Name, err))
				continue
			}
			scope.AddAlias(def)
		}
	}
	addTypes(typesystem.Opaque, unit.Opaques)
	addTypes(typesystem.Structural, unit.Aliases)

	ctx.Logger.Debug("scope ready",
		"bound", len(unit.Bound),
		"ability_members", ctx.Abilities.Len(),
		"types", len(unit.Opaques)+len(unit.Aliases))
	return ctx
}

// CanonicalizeProcessor decodes and canonicalizes every case. Top-level
// definitions share the module scope; every other context gets a child
// scope of its own.
type CanonicalizeProcessor struct{}

func (cp *CanonicalizeProcessor) Process(ctx *PipelineContext) *PipelineContext {
	if ctx.Env == nil {
		return ctx
	}
	decoder := ast.NewDecoder()

	for i := range ctx.Unit.Cases {
		c := &ctx.Unit.Cases[i]
		result := &CaseResult{Name: c.Name, Header: c.Header}
		ctx.Results = append(ctx.Results, result)

		pt, err := can.ParsePatternType(c.Context)
		if err != nil {
			result.skipped = true
			ctx.fail(fmt.Errorf("case %s: %w", c.Name, err))
			continue
		}
		result.Context = pt

		loc, err := decoder.Pattern(&c.Pattern)
		if err != nil {
			result.skipped = true
			ctx.fail(fmt.Errorf("case %s: %w", c.Name, err))
			continue
		}

		scope := caseScope(ctx.Scope, pt)
		before := ctx.Diagnostics.Len()
		if c.Header {
			result.Output, result.Pattern = can.CanonicalizeDefHeaderPattern(ctx.Env, ctx.VarStore, scope, ctx.Abilities, pt, loc.Value, loc.Region)
		} else {
			result.Output, result.Pattern = can.CanonicalizePattern(ctx.Env, ctx.VarStore, scope, pt, loc.Value, loc.Region)
		}
		result.Diagnostics = append([]*diagnostics.DiagnosticError(nil), ctx.Diagnostics.Errors()[before:]...)

		ctx.Logger.Debug("case canonicalized",
			"case", c.Name,
			"context", pt.Key(),
			"bound", result.Output.References.BoundSymbols.Size(),
			"problems", len(result.Diagnostics))
	}
	return ctx
}

func caseScope(module *symbols.Scope, pt can.PatternType) *symbols.Scope {
	switch pt {
	case can.DefExpr:
		return module.Enter(symbols.ScopeBlock)
	case can.FunctionArg:
		return module.Enter(symbols.ScopeFunction)
	case can.WhenBranch:
		return module.Enter(symbols.ScopeBranch)
	}
	return module
}

// ExtractProcessor lists the bindings of every canonicalized case.
type ExtractProcessor struct{}

func (ep *ExtractProcessor) Process(ctx *PipelineContext) *PipelineContext {
	for _, r := range ctx.Results {
		if r.skipped {
			continue
		}
		r.Bindings = can.BindingsFromPatterns([]region.Loc[can.Pattern]{r.Pattern})
	}
	return ctx
}

// StoreProcessor persists the run when a store is attached.
type StoreProcessor struct{}

func (sp *StoreProcessor) Process(ctx *PipelineContext) *PipelineContext {
	if ctx.Store == nil || ctx.Unit == nil {
		return ctx
	}
	runID, err := ctx.Store.SaveRun(ctx.Unit.Module, ctx.Unit.File)
	if err != nil {
		ctx.fail(err)
		return ctx
	}
	ctx.RunID = runID

	for _, r := range ctx.Results {
		if err := ctx.Store.SaveDiagnostics(runID, r.Name, r.Diagnostics); err != nil {
			ctx.fail(fmt.Errorf("case %s: %w", r.Name, err))
			continue
		}
		rows := make([]report.Binding, 0, len(r.Bindings))
		for _, b := range r.Bindings {
			name, _ := ctx.Env.IdentIDs.Name(b.Symbol.Ident)
			rows = append(rows, report.Binding{
				Name:   name,
				Symbol: b.Symbol.String(),
				Start:  b.Region.Start.Offset,
				End:    b.Region.End.Offset,
			})
		}
		if err := ctx.Store.SaveBindings(runID, r.Name, rows); err != nil {
			ctx.fail(fmt.Errorf("case %s: %w", r.Name, err))
		}
	}
	ctx.Logger.Info("run stored", "run", runID, "cases", len(ctx.Results))
	return ctx
}
