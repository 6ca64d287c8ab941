package prettyprinter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/funvibe/patcanon/internal/ast"
	"github.com/funvibe/patcanon/internal/can"
	"github.com/funvibe/patcanon/internal/diagnostics"
	"github.com/funvibe/patcanon/internal/region"
	"github.com/funvibe/patcanon/internal/symbols"
	"github.com/funvibe/patcanon/internal/typesystem"
)

func canonicalize(t *testing.T, env *can.Env, scope *symbols.Scope, src string) can.Pattern {
	t.Helper()
	loc, err := ast.DecodePattern([]byte(src))
	require.NoError(t, err)
	_, p := can.CanonicalizePattern(env, typesystem.NewVarStore(), scope, can.WhenBranch, loc.Value, loc.Region)
	return p.Value
}

func TestPrintCanonicalPatterns(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"identifier", "x", "x#0"},
		{"nested tags", "{kind: apply, tag: Foo, args: [x, {kind: apply, tag: Bar, args: [y]}, _]}", "Foo x#0 (Bar y#1) _"},
		{"bare tag", "{kind: apply, tag: Foo, args: [Bar]}", "Foo Bar"},
		{"private tag", "'@Secret'", "@Secret#0"},
		{"record", "{kind: record, fields: [x, {kind: required, label: y, guard: Z}, {kind: optional, label: z, default: \"5\"}]}", "{ x#0, y: Z, z#2 ? 5 }"},
		{"empty record", "{kind: record, fields: []}", "{}"},
		{"int", "{kind: num, text: \"42u8\"}", "42u8"},
		{"float", "{kind: float, text: \"1.5\"}", "1.5"},
		{"char", "{kind: char, text: \"a\"}", "'a'"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env, scope := can.NewModule("Test", nil, diagnostics.NewCollector("t.yaml"), nil)
			p := canonicalize(t, env, scope, tt.src)
			assert.Equal(t, tt.want, ForEnv(env).Pattern(p))
		})
	}
}

func TestPrintOpaqueAndShadow(t *testing.T) {
	env, scope := can.NewModule("Test", nil, diagnostics.NewCollector("t.yaml"), nil)
	scope.AddAlias(typesystem.AliasDef{Name: "Age", Kind: typesystem.Opaque, Actual: typesystem.TCon{Name: "U8"}})
	scope.Introduce("x", region.New(0, 1))

	pp := ForEnv(env)
	assert.Equal(t, "$Age#0 n#2", pp.Pattern(canonicalize(t, env, scope, "{kind: apply, tag: $Age, args: [n]}")))
	assert.Equal(t, "<shadowed x@4-5 as x#3>", pp.Pattern(canonicalize(t, env, scope, "{kind: ident, name: x, region: [4, 5]}")))
	assert.Equal(t, "<opaque not in scope $Missing>", pp.Pattern(canonicalize(t, env, scope, "{kind: apply, tag: $Missing, args: [m]}")))
}

func TestPrintSentinels(t *testing.T) {
	pp := NewPatternPrinter(symbols.ModuleIDFor("Test"), symbols.NewIdentIDs())

	assert.Equal(t, "<malformed int @3-7>", pp.Pattern(&can.MalformedPattern{
		Problem: can.MalformedProblem{Kind: can.MalformedInt}, Region: region.New(3, 7),
	}))
	assert.Equal(t, "<malformed hex @0-4>", pp.Pattern(&can.MalformedPattern{
		Problem: can.MalformedProblem{Kind: can.MalformedBase, Base: ast.BaseHex}, Region: region.New(0, 4),
	}))
	assert.Equal(t, "<unsupported @1-2>", pp.Pattern(&can.UnsupportedPattern{Region: region.New(1, 2)}))
	assert.Equal(t, `"a\nb"`, pp.Pattern(&can.StrLiteral{Value: "a\nb"}))
	assert.Equal(t, "<???>", pp.Pattern(nil))
}

func TestPrintForeignSymbol(t *testing.T) {
	pp := NewPatternPrinter(symbols.ModuleIDFor("Test"), symbols.NewIdentIDs())
	foreign := symbols.NewSymbol(symbols.ModuleIDFor("Other"), 3)
	assert.Equal(t, foreign.String(), pp.Symbol(foreign))
}

func TestPrintExpressions(t *testing.T) {
	idents := symbols.NewIdentIDs()
	home := symbols.ModuleIDFor("Test")
	f := symbols.NewSymbol(home, idents.Add("f"))
	pp := NewPatternPrinter(home, idents)

	call := &can.Call{
		Fn: region.At[can.Expr](region.Zero(), &can.Var{Symbol: f}),
		Args: []region.Loc[can.Expr]{
			region.At[can.Expr](region.Zero(), &can.Int{Text: "1"}),
			region.At[can.Expr](region.Zero(), &can.List{Items: []region.Loc[can.Expr]{
				region.At[can.Expr](region.Zero(), &can.Tag{Name: "A"}),
				region.At[can.Expr](region.Zero(), &can.Tag{Name: "B"}),
			}}),
		},
	}
	assert.Equal(t, "f#0 1 [A, B]", pp.Expr(call))

	name := region.At[can.Expr](region.Zero(), &can.Var{Symbol: f})
	str := &can.Str{Segments: []can.StrSegment{{Text: "hi "}, {Interpolation: &name}}}
	assert.Equal(t, `"hi \(f#0)"`, pp.Expr(str))

	rec := &can.Record{Fields: []can.RecordField{{Label: "a", Value: region.At[can.Expr](region.Zero(), call)}}}
	assert.Equal(t, "{ a: f#0 1 [A, B] }", pp.Expr(rec))

	assert.Equal(t, "<error C011 @2-5>", pp.Expr(&can.RuntimeError{Code: diagnostics.ErrC011, Region: region.New(2, 5)}))
}
