package can

import (
	"strings"

	"github.com/funvibe/patcanon/internal/ast"
	"github.com/funvibe/patcanon/internal/diagnostics"
	"github.com/funvibe/patcanon/internal/num"
	"github.com/funvibe/patcanon/internal/region"
	"github.com/funvibe/patcanon/internal/symbols"
	"github.com/funvibe/patcanon/internal/typesystem"
)

// Expr is a canonical expression. Patterns only need expressions for the
// defaults of optional record fields.
type Expr interface {
	canonicalExpr()
}

type Var struct {
	Symbol symbols.Symbol
}

type Num struct {
	Var   typesystem.TVar
	Text  string
	Value num.IntValue
	Bound num.NumericBound
}

type Int struct {
	Var          typesystem.TVar
	PrecisionVar typesystem.TVar
	Text         string
	Value        num.IntValue
	Bound        num.IntBound
}

type Float struct {
	Var          typesystem.TVar
	PrecisionVar typesystem.TVar
	Text         string
	Value        float64
	Bound        num.FloatBound
}

// StrSegment is literal text or, when Interpolation is set, an embedded expression.
type StrSegment struct {
	Text          string
	Interpolation *region.Loc[Expr]
}

type Str struct {
	Segments []StrSegment
}

type Tag struct {
	Var    typesystem.TVar
	ExtVar typesystem.TVar
	Name   string
}

type Call struct {
	Var  typesystem.TVar
	Fn   region.Loc[Expr]
	Args []region.Loc[Expr]
}

type List struct {
	ElemVar typesystem.TVar
	Items   []region.Loc[Expr]
}

type RecordField struct {
	Var   typesystem.TVar
	Label string
	Value region.Loc[Expr]
}

type Record struct {
	Var    typesystem.TVar
	Fields []RecordField
}

// RuntimeError stands in for an expression that was reported as a problem.
type RuntimeError struct {
	Code   diagnostics.ErrorCode
	Region region.Region
}

func (*Var) canonicalExpr()          {}
func (*Num) canonicalExpr()          {}
func (*Int) canonicalExpr()          {}
func (*Float) canonicalExpr()        {}
func (*Str) canonicalExpr()          {}
func (*Tag) canonicalExpr()          {}
func (*Call) canonicalExpr()         {}
func (*List) canonicalExpr()         {}
func (*Record) canonicalExpr()       {}
func (*RuntimeError) canonicalExpr() {}

type exprCanonicalizer struct {
	env    *Env
	vs     *typesystem.VarStore
	scope  *symbols.Scope
	output Output
}

// CanonicalizeExpr resolves the names of expr against scope. Lookups are
// recorded in the output; unresolved names become RuntimeError nodes.
func CanonicalizeExpr(env *Env, vs *typesystem.VarStore, scope *symbols.Scope, r region.Region, expr ast.Expr) (region.Loc[Expr], Output) {
	c := &exprCanonicalizer{env: env, vs: vs, scope: scope, output: NewOutput()}
	e := c.expr(expr, r)
	return region.At(r, e), c.output
}

func (c *exprCanonicalizer) sub(loc region.Loc[ast.Expr]) region.Loc[Expr] {
	return region.At(loc.Region, c.expr(loc.Value, loc.Region))
}

func (c *exprCanonicalizer) expr(expr ast.Expr, r region.Region) Expr {
	switch e := expr.(type) {
	case *ast.Var:
		return c.lookup(e, r)

	case *ast.Num:
		parsed, err := num.FinishParsingNum(e.Text)
		if err != nil {
			return c.runtimeError(diagnostics.NewError(diagnostics.ErrC003, r, "int"))
		}
		switch parsed.Kind {
		case num.Int:
			return &Int{Var: c.vs.Fresh(), PrecisionVar: c.vs.Fresh(), Text: e.Text, Value: parsed.Int, Bound: parsed.IntBound}
		case num.Float:
			return &Float{Var: c.vs.Fresh(), PrecisionVar: c.vs.Fresh(), Text: e.Text, Value: parsed.Float, Bound: parsed.FloatBound}
		}
		return &Num{Var: c.vs.Fresh(), Text: e.Text, Value: parsed.Int, Bound: parsed.NumBound}

	case *ast.Float:
		text, value, bound, err := num.FinishParsingFloat(e.Text)
		if err != nil {
			return c.runtimeError(diagnostics.NewError(diagnostics.ErrC003, r, "float"))
		}
		return &Float{Var: c.vs.Fresh(), PrecisionVar: c.vs.Fresh(), Text: text, Value: value, Bound: bound}

	case *ast.Str:
		return c.str(e.Literal)

	case *ast.Tag:
		return &Tag{Var: c.vs.Fresh(), ExtVar: c.vs.Fresh(), Name: e.Name}

	case *ast.Call:
		fn := c.sub(e.Fn)
		if v, ok := fn.Value.(*Var); ok {
			c.output.References.Calls.Insert(v.Symbol)
		}
		args := make([]region.Loc[Expr], 0, len(e.Args))
		for _, arg := range e.Args {
			args = append(args, c.sub(arg))
		}
		return &Call{Var: c.vs.Fresh(), Fn: fn, Args: args}

	case *ast.List:
		items := make([]region.Loc[Expr], 0, len(e.Items))
		for _, item := range e.Items {
			items = append(items, c.sub(item))
		}
		return &List{ElemVar: c.vs.Fresh(), Items: items}

	case *ast.Record:
		fields := make([]RecordField, 0, len(e.Fields))
		for _, f := range e.Fields {
			value := c.sub(f.Value)
			fields = append(fields, RecordField{Var: c.vs.Fresh(), Label: f.Label, Value: value})
		}
		return &Record{Var: c.vs.Fresh(), Fields: fields}

	case *ast.MalformedExpr:
		return c.runtimeError(diagnostics.NewError(diagnostics.ErrC010, r, e.Text))
	}
	return c.runtimeError(diagnostics.NewError(diagnostics.ErrC010, r, "expression"))
}

func (c *exprCanonicalizer) lookup(v *ast.Var, r region.Region) Expr {
	name := v.Name
	if v.ModuleName != "" {
		name = v.ModuleName + "." + v.Name
	} else if sym, ok := c.scope.Lookup(v.Name); ok {
		c.output.References.ValueLookups.Insert(sym)
		return &Var{Symbol: sym}
	}
	return c.runtimeError(diagnostics.NewError(diagnostics.ErrC011, r, name))
}

func (c *exprCanonicalizer) str(literal ast.StrLiteral) Expr {
	var lines [][]ast.StrSegment
	switch l := literal.(type) {
	case *ast.PlainLine:
		return &Str{Segments: []StrSegment{{Text: l.Text}}}
	case *ast.Line:
		lines = [][]ast.StrSegment{l.Segments}
	case *ast.Block:
		lines = l.Lines
	}

	var segments []StrSegment
	var sb strings.Builder
	flush := func() {
		if sb.Len() > 0 {
			segments = append(segments, StrSegment{Text: sb.String()})
			sb.Reset()
		}
	}
	for _, line := range lines {
		for _, segment := range line {
			switch s := segment.(type) {
			case *ast.Plaintext:
				sb.WriteString(s.Text)
			case *ast.EscapedChar:
				sb.WriteRune(unescapeChar(s.Char))
			case *ast.Unicode:
				ch, ok := decodeUnicode(s.Digits.Value)
				if !ok {
					return c.runtimeError(diagnostics.NewError(diagnostics.ErrC012, s.Digits.Region, s.Digits.Value))
				}
				sb.WriteRune(ch)
			case *ast.Interpolated:
				flush()
				interp := c.sub(s.Expr)
				segments = append(segments, StrSegment{Interpolation: &interp})
			}
		}
	}
	flush()
	return &Str{Segments: segments}
}

func (c *exprCanonicalizer) runtimeError(err *diagnostics.DiagnosticError) Expr {
	c.env.problem(err)
	return &RuntimeError{Code: err.Code, Region: err.Region}
}
