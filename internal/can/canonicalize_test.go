package can

import (
	"fmt"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/funvibe/patcanon/internal/abilities"
	"github.com/funvibe/patcanon/internal/ast"
	"github.com/funvibe/patcanon/internal/diagnostics"
	"github.com/funvibe/patcanon/internal/region"
	"github.com/funvibe/patcanon/internal/symbols"
	"github.com/funvibe/patcanon/internal/typesystem"
)

type fixture struct {
	env   *Env
	scope *symbols.Scope
	vs    *typesystem.VarStore
	sink  *diagnostics.Collector
}

// newFixture builds a module scope with the opaques Age (no parameters) and
// Id a, and the structural alias Pair.
func newFixture(t *testing.T) *fixture {
	t.Helper()
	sink := diagnostics.NewCollector("test.yaml")
	env, scope := NewModule("Test", nil, sink, nil)
	vs := typesystem.NewVarStore()

	a := vs.Fresh()
	ls := vs.Fresh()
	scope.AddAlias(typesystem.AliasDef{Name: "Age", Kind: typesystem.Opaque, Actual: typesystem.TCon{Name: "U8"}})
	scope.AddAlias(typesystem.AliasDef{
		Name:          "Id",
		Kind:          typesystem.Opaque,
		TypeVars:      []typesystem.NamedVar{{Name: "a", Var: a}},
		LambdaSetVars: []typesystem.LambdaSet{{Type: ls}},
		Actual: typesystem.TTagUnion{Tags: map[string][]typesystem.Type{
			"Id": {typesystem.TCon{Name: "U64"}, a},
		}},
	})
	scope.AddAlias(typesystem.AliasDef{Name: "Pair", Kind: typesystem.Structural, Region: region.New(500, 510)})

	return &fixture{env: env, scope: scope, vs: vs, sink: sink}
}

func (f *fixture) canon(t *testing.T, pt PatternType, src string) (Output, region.Loc[Pattern]) {
	t.Helper()
	loc, err := ast.DecodePattern([]byte(src))
	require.NoError(t, err)
	return CanonicalizePattern(f.env, f.vs, f.scope, pt, loc.Value, loc.Region)
}

func (f *fixture) codes() []string {
	var out []string
	for _, e := range f.sink.Errors() {
		out = append(out, string(e.Code))
	}
	return out
}

func kindName(p Pattern) string {
	return strings.TrimPrefix(fmt.Sprintf("%T", p), "*can.")
}

type contextCase struct {
	Name    string            `yaml:"name"`
	Pattern yaml.Node         `yaml:"pattern"`
	Expect  map[string]string `yaml:"expect"`
}

func TestPatternContexts(t *testing.T) {
	data, err := os.ReadFile("testdata/contexts.yaml")
	require.NoError(t, err)
	var cases []contextCase
	require.NoError(t, yaml.Unmarshal(data, &cases))
	require.NotEmpty(t, cases)

	for _, tc := range cases {
		for key, want := range tc.Expect {
			t.Run(tc.Name+"/"+key, func(t *testing.T) {
				pt, err := ParsePatternType(key)
				require.NoError(t, err)

				node := tc.Pattern
				loc, err := ast.NewDecoder().Pattern(&node)
				require.NoError(t, err)

				f := newFixture(t)
				_, got := CanonicalizePattern(f.env, f.vs, f.scope, pt, loc.Value, loc.Region)
				require.NotNil(t, got.Value)
				assert.Equal(t, loc.Region, got.Region)

				fields := strings.Fields(want)
				assert.Equal(t, fields[0], kindName(got.Value))
				if len(fields) > 1 {
					assert.Equal(t, fields[1:], f.codes())
				} else {
					assert.Empty(t, f.codes())
				}
			})
		}
	}
}

func TestIdentifierBindsSymbol(t *testing.T) {
	f := newFixture(t)
	out, got := f.canon(t, DefExpr, `x`)

	ident, ok := got.Value.(*Identifier)
	require.True(t, ok)
	assert.True(t, out.References.BoundSymbols.Contains(ident.Symbol))
	sym, found := f.scope.Lookup("x")
	require.True(t, found)
	assert.Equal(t, ident.Symbol, sym)
}

func TestShadowLaw(t *testing.T) {
	f := newFixture(t)
	_, first := f.canon(t, DefExpr, `{kind: ident, name: x, region: [0, 1]}`)
	out, second := f.canon(t, DefExpr, `{kind: ident, name: x, region: [10, 11]}`)

	firstSym := first.Value.(*Identifier).Symbol
	shadowed, ok := second.Value.(*Shadowed)
	require.True(t, ok)
	assert.Equal(t, []string{"C001"}, f.codes())
	assert.NotEqual(t, firstSym, shadowed.NewSymbol)
	assert.Equal(t, region.New(0, 1), shadowed.OriginalRegion)
	assert.Equal(t, region.At(region.New(10, 11), "x"), shadowed.Shadow)
	assert.True(t, out.References.BoundSymbols.Contains(shadowed.NewSymbol))

	assert.Equal(t, []symbols.Symbol{shadowed.NewSymbol}, SymbolsFromPattern(second.Value))
	sym, _ := f.scope.Lookup("x")
	assert.Equal(t, shadowed.NewSymbol, sym)

	diag := f.sink.Errors()[0]
	require.NotNil(t, diag.OriginalRegion)
	assert.Equal(t, region.New(0, 1), *diag.OriginalRegion)
	assert.Equal(t, "test.yaml", diag.File)
}

func TestScenarioRecordWithGuard(t *testing.T) {
	f := newFixture(t)
	out, got := f.canon(t, WhenBranch, `{kind: record, fields: [x, {kind: required, label: y, guard: {kind: apply, tag: Just, args: [z]}}]}`)
	assert.Empty(t, f.codes())

	rec, ok := got.Value.(*RecordDestructure)
	require.True(t, ok)
	require.Len(t, rec.Destructs, 2)

	x := rec.Destructs[0].Value
	assert.Equal(t, "x", x.Label)
	assert.IsType(t, &Required{}, x.Kind)

	y := rec.Destructs[1].Value
	assert.Equal(t, "y", y.Label)
	guard, ok := y.Kind.(*Guard)
	require.True(t, ok)
	tag, ok := guard.Pattern.Value.(*AppliedTag)
	require.True(t, ok)
	assert.Equal(t, GlobalTagName("Just"), tag.TagName)
	z := tag.Arguments[0].Pattern.Value.(*Identifier).Symbol

	assert.ElementsMatch(t, []symbols.Symbol{x.Symbol, z}, SymbolSetFromPattern(rec).Slice())
	assert.ElementsMatch(t, []symbols.Symbol{x.Symbol, z}, out.References.BoundSymbols.Slice())
	assert.NotContains(t, SymbolsFromPattern(rec), y.Symbol)
	assert.False(t, f.scope.IsDefined("y"), "a guarded label is not bound")
}

func TestGuardLabelBoundOnlyWhenGuardNamesIt(t *testing.T) {
	f := newFixture(t)
	_, got := f.canon(t, WhenBranch, `{kind: record, fields: [{kind: required, label: y, guard: y}]}`)
	rec := got.Value.(*RecordDestructure)
	guard := rec.Destructs[0].Value.Kind.(*Guard)
	inner := guard.Pattern.Value.(*Identifier).Symbol

	syms := SymbolsFromPattern(rec)
	assert.Equal(t, []symbols.Symbol{inner}, syms)
	assert.NotEqual(t, rec.Destructs[0].Value.Symbol, inner)
}

func TestScenarioTagWithRepeatedArgument(t *testing.T) {
	f := newFixture(t)
	out, got := f.canon(t, WhenBranch, `{kind: apply, tag: Foo, args: [a, a]}`)
	assert.Equal(t, []string{"C001"}, f.codes())

	tag, ok := got.Value.(*AppliedTag)
	require.True(t, ok)
	require.Len(t, tag.Arguments, 2)

	a1, ok := tag.Arguments[0].Pattern.Value.(*Identifier)
	require.True(t, ok)
	a2, ok := tag.Arguments[1].Pattern.Value.(*Shadowed)
	require.True(t, ok)
	assert.Equal(t, tag.Arguments[0].Pattern.Region, a2.OriginalRegion)
	assert.Equal(t, "a", a2.Shadow.Value)

	assert.ElementsMatch(t, []symbols.Symbol{a1.Symbol, a2.NewSymbol}, SymbolSetFromPattern(tag).Slice())
	assert.Equal(t, 2, out.References.BoundSymbols.Size())
}

func TestScenarioUnderscoreInDefinition(t *testing.T) {
	f := newFixture(t)
	_, got := f.canon(t, TopLevelDef, `_`)
	assert.IsType(t, &UnsupportedPattern{}, got.Value)
	assert.Equal(t, 1, f.sink.Count(diagnostics.ErrC008))
	assert.Equal(t, 1, f.sink.Len())
}

func TestScenarioInterpolationInString(t *testing.T) {
	f := newFixture(t)
	loc, err := ast.DecodePattern([]byte(`{kind: str, lines: [["abc"], ["d", {interp: name}, "e"]]}`))
	require.NoError(t, err)
	block := loc.Value.(*ast.StrLiteralPattern).Literal.(*ast.Block)
	interpRegion := block.Lines[1][1].(*ast.Interpolated).Expr.Region

	_, got := CanonicalizePattern(f.env, f.vs, f.scope, WhenBranch, loc.Value, loc.Region)
	unsupported, ok := got.Value.(*UnsupportedPattern)
	require.True(t, ok)
	assert.Equal(t, interpRegion, unsupported.Region)
	assert.Equal(t, []string{"C009"}, f.codes())
}

func TestStringFlattening(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"plain", `{kind: str, text: "hi there"}`, "hi there"},
		{"segments", `{kind: str, segments: ["a", {escaped: "n"}, "b", {escaped: "\""}]}`, "a\nb\""},
		{"unicode", `{kind: str, segments: ["x", {unicode: "1F600"}]}`, "x\U0001F600"},
		{"block", `{kind: str, lines: [["one"], ["two", {escaped: "t"}]]}`, "onetwo\t"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			_, got := f.canon(t, WhenBranch, tt.src)
			str, ok := got.Value.(*StrLiteral)
			require.True(t, ok, "got %T", got.Value)
			assert.Equal(t, tt.want, str.Value)
			assert.Empty(t, f.codes())
		})
	}
}

func TestCharLiteralLaw(t *testing.T) {
	tests := []struct {
		text    string
		want    rune
		problem MalformedKind
		ok      bool
	}{
		{text: "a", want: 'a', ok: true},
		{text: "é", want: 'é', ok: true},
		{text: `\t`, want: '\t', ok: true},
		{text: `\u(41)`, want: 'A', ok: true},
		{text: "", problem: EmptySingleQuote},
		{text: "ab", problem: MultipleCharsInSingleQuote},
		{text: `\u(zz)`, problem: MalformedUnicodeEscape},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			f := newFixture(t)
			_, got := CanonicalizePattern(f.env, f.vs, f.scope, WhenBranch, &ast.SingleQuote{Text: tt.text}, region.New(0, 3))
			if tt.ok {
				sq, ok := got.Value.(*SingleQuote)
				require.True(t, ok, "got %T", got.Value)
				assert.Equal(t, tt.want, sq.Char)
				return
			}
			m, ok := got.Value.(*MalformedPattern)
			require.True(t, ok, "got %T", got.Value)
			assert.Equal(t, tt.problem, m.Problem.Kind)
			assert.Equal(t, 1, f.sink.Len())
		})
	}
}

func TestTagVariablesFollowArguments(t *testing.T) {
	f := newFixture(t)
	base := f.vs.Peek()
	_, got := f.canon(t, WhenBranch, `{kind: apply, tag: Foo, args: [a, b]}`)
	tag := got.Value.(*AppliedTag)

	assert.Equal(t, base+1, tag.Arguments[0].Var.ID)
	assert.Equal(t, base+2, tag.Arguments[1].Var.ID)
	assert.Equal(t, base+3, tag.WholeVar.ID)
	assert.Equal(t, base+4, tag.ExtVar.ID)
}

func TestPrivateTagsAreInterned(t *testing.T) {
	f := newFixture(t)
	_, first := f.canon(t, WhenBranch, `"@Secret"`)
	_, second := f.canon(t, WhenBranch, `{kind: apply, tag: "@Secret", args: [x]}`)

	a := first.Value.(*AppliedTag).TagName
	b := second.Value.(*AppliedTag).TagName
	assert.Equal(t, PrivateTag, a.Kind)
	assert.Equal(t, a, b)
	assert.Equal(t, f.env.Home, a.Private.Module)
}

func TestUnwrappedOpaqueIsFreshPerSite(t *testing.T) {
	f := newFixture(t)
	out1, first := f.canon(t, FunctionArg, `{kind: apply, tag: $Id, args: [who]}`)
	out2, second := f.canon(t, FunctionArg, `{kind: apply, tag: $Id, args: [whom]}`)
	require.Empty(t, f.codes())

	o1 := first.Value.(*UnwrappedOpaque)
	o2 := second.Value.(*UnwrappedOpaque)
	idEntry, ok := f.scope.LookupType("Id")
	require.True(t, ok)
	assert.Equal(t, idEntry.Symbol, o1.Opaque)

	require.Len(t, o1.TypeArguments, 1)
	require.Len(t, o2.TypeArguments, 1)
	assert.Equal(t, "a", o1.TypeArguments[0].Name)
	assert.NotEqual(t, o1.TypeArguments[0].Type, o2.TypeArguments[0].Type)
	assert.NotEqual(t, o1.LambdaSetVariables[0].Type, o2.LambdaSetVariables[0].Type)
	assert.Equal(t, "[ Id U64 "+o1.TypeArguments[0].Type.String()+" ]", o1.SpecializedDefType.String())

	for _, out := range []Output{out1, out2} {
		assert.True(t, out.References.ReferencedTypeDefs.Contains(idEntry.Symbol))
		assert.True(t, out.References.TypeLookups.Contains(idEntry.Symbol))
	}

	who := o1.Argument.Pattern.Value.(*Identifier).Symbol
	assert.Equal(t, []symbols.Symbol{o1.Opaque, who}, SymbolsFromPattern(o1))
}

func TestOpaqueArityIgnoresScope(t *testing.T) {
	for _, src := range []string{
		`{kind: apply, tag: $Age, args: [a, b, c]}`,
		`{kind: apply, tag: $Nope, args: [a, b]}`,
	} {
		f := newFixture(t)
		_, got := f.canon(t, WhenBranch, src)
		assert.IsType(t, &UnsupportedPattern{}, got.Value, src)
		assert.Equal(t, []string{"C007"}, f.codes(), src)
	}

	f := newFixture(t)
	_, got := CanonicalizePattern(f.env, f.vs, f.scope, WhenBranch, &ast.Apply{
		Tag: region.At[ast.Pattern](region.New(0, 4), &ast.OpaqueRef{Name: "Age"}),
	}, region.New(0, 4))
	assert.IsType(t, &UnsupportedPattern{}, got.Value)
	assert.Equal(t, []string{"C005"}, f.codes())
}

func TestNegativeBaseLiteral(t *testing.T) {
	f := newFixture(t)
	_, got := f.canon(t, WhenBranch, `{kind: base, base: hex, digits: ff, negative: true}`)
	lit, ok := got.Value.(*IntLiteral)
	require.True(t, ok)
	assert.Equal(t, "-255", lit.Text)
	assert.Equal(t, "-255", lit.Value.String())
}

func TestDefHeaderSpecializesAbilityMember(t *testing.T) {
	f := newFixture(t)
	hash, shadow := f.scope.Introduce("hash", region.New(900, 904))
	require.Nil(t, shadow)
	store := abilities.NewStore()
	store.RegisterMember(f.scope.Ignore("Hash"), hash)

	out, got := CanonicalizeDefHeaderPattern(f.env, f.vs, f.scope, store, TopLevelDef, &ast.Identifier{Name: "hash"}, region.New(0, 4))
	spec, ok := got.Value.(*AbilityMemberSpecialization)
	require.True(t, ok)
	assert.Equal(t, hash, spec.Specializes)
	assert.NotEqual(t, hash, spec.Ident)
	assert.Empty(t, f.codes())
	assert.True(t, out.References.BoundSymbols.Contains(spec.Ident))
	assert.Equal(t, []symbols.Symbol{spec.Ident, hash}, SymbolsFromPattern(spec))

	_, got = CanonicalizeDefHeaderPattern(f.env, f.vs, f.scope, store, TopLevelDef, &ast.Identifier{Name: "fresh"}, region.New(5, 10))
	assert.IsType(t, &Identifier{}, got.Value)

	f.scope.Introduce("plain", region.New(20, 25))
	_, got = CanonicalizeDefHeaderPattern(f.env, f.vs, f.scope, store, TopLevelDef, &ast.Identifier{Name: "plain"}, region.New(30, 35))
	assert.IsType(t, &Shadowed{}, got.Value)
	assert.Equal(t, []string{"C001"}, f.codes())

	_, got = CanonicalizeDefHeaderPattern(f.env, f.vs, f.scope, store, TopLevelDef, &ast.Underscore{}, region.New(40, 41))
	assert.IsType(t, &UnsupportedPattern{}, got.Value)
}

func TestDefHeaderSeesThroughSpaces(t *testing.T) {
	f := newFixture(t)
	hash, _ := f.scope.Introduce("hash", region.New(900, 904))
	store := abilities.NewStore()
	store.RegisterMember(f.scope.Ignore("Hash"), hash)

	header := &ast.SpaceBefore{Inner: &ast.SpaceAfter{Inner: &ast.Identifier{Name: "hash"}}}
	_, got := CanonicalizeDefHeaderPattern(f.env, f.vs, f.scope, store, TopLevelDef, header, region.New(0, 6))
	spec, ok := got.Value.(*AbilityMemberSpecialization)
	require.True(t, ok)
	assert.Equal(t, hash, spec.Specializes)
	assert.Empty(t, f.codes())
}

func TestOptionalFieldDefaultSeesEarlierFields(t *testing.T) {
	f := newFixture(t)
	out, got := f.canon(t, FunctionArg, `{kind: record, fields: [x, {kind: optional, label: y, default: {kind: call, fn: inc, args: [x]}}]}`)
	assert.Equal(t, []string{"C011"}, f.codes(), "inc is not in scope")

	rec := got.Value.(*RecordDestructure)
	x := rec.Destructs[0].Value.Symbol
	y := rec.Destructs[1].Value
	opt, ok := y.Kind.(*Optional)
	require.True(t, ok)
	call := opt.Default.Value.(*Call)
	assert.IsType(t, &RuntimeError{}, call.Fn.Value)
	assert.Equal(t, &Var{Symbol: x}, call.Args[0].Value)

	assert.True(t, out.References.ValueLookups.Contains(x))
	assert.ElementsMatch(t, []symbols.Symbol{x, y.Symbol}, out.References.BoundSymbols.Slice())
	assert.True(t, f.scope.IsDefined("y"))
}

func TestDestructureKeepsLastShadow(t *testing.T) {
	f := newFixture(t)
	f.scope.Introduce("a", region.New(100, 101))
	f.scope.Introduce("b", region.New(102, 103))

	out, got := f.canon(t, WhenBranch, `{kind: record, fields: [a, c, {kind: optional, label: b, default: "1"}]}`)
	shadowed, ok := got.Value.(*Shadowed)
	require.True(t, ok)
	assert.Equal(t, "b", shadowed.Shadow.Value)
	assert.Equal(t, region.New(102, 103), shadowed.OriginalRegion)
	assert.Equal(t, []string{"C001", "C001"}, f.codes())

	c, _ := f.scope.Lookup("c")
	a, _ := f.scope.Lookup("a")
	assert.True(t, out.References.BoundSymbols.Contains(c))
	assert.True(t, out.References.BoundSymbols.Contains(a))
	assert.True(t, out.References.BoundSymbols.Contains(shadowed.NewSymbol))
}

func TestRepeatedArgumentsAtSameRegionReportEachConflict(t *testing.T) {
	f := newFixture(t)
	arg := func() region.Loc[ast.Pattern] { return region.At[ast.Pattern](region.Zero(), &ast.Identifier{Name: "a"}) }
	apply := &ast.Apply{
		Tag:  region.At[ast.Pattern](region.Zero(), &ast.GlobalTag{Name: "Foo"}),
		Args: []region.Loc[ast.Pattern]{arg(), arg(), arg()},
	}

	_, got := CanonicalizePattern(f.env, f.vs, f.scope, WhenBranch, apply, region.Zero())
	tag, ok := got.Value.(*AppliedTag)
	require.True(t, ok)
	require.Len(t, tag.Arguments, 3)
	assert.IsType(t, &Identifier{}, tag.Arguments[0].Pattern.Value)
	assert.IsType(t, &Shadowed{}, tag.Arguments[1].Pattern.Value)
	assert.IsType(t, &Shadowed{}, tag.Arguments[2].Pattern.Value)
	assert.Equal(t, 2, f.sink.Count(diagnostics.ErrC001))
}

func TestDestructureWithUnexpectedField(t *testing.T) {
	f := newFixture(t)
	rec := &ast.RecordDestructure{Fields: []region.Loc[ast.Pattern]{
		region.At[ast.Pattern](region.New(1, 2), &ast.Identifier{Name: "x"}),
		region.At[ast.Pattern](region.New(4, 5), &ast.GlobalTag{Name: "Y"}),
	}}

	out, got := CanonicalizePattern(f.env, f.vs, f.scope, WhenBranch, rec, region.New(0, 6))
	malformed, ok := got.Value.(*MalformedPattern)
	require.True(t, ok)
	assert.Equal(t, MalformedUnknown, malformed.Problem.Kind)
	assert.Equal(t, region.New(4, 5), malformed.Region)
	assert.Equal(t, []string{"C010"}, f.codes())

	x, _ := f.scope.Lookup("x")
	assert.True(t, out.References.BoundSymbols.Contains(x))
}

func TestRecordVariablesOrder(t *testing.T) {
	f := newFixture(t)
	base := f.vs.Peek()
	_, got := f.canon(t, WhenBranch, `{kind: record, fields: [x]}`)
	rec := got.Value.(*RecordDestructure)
	assert.Equal(t, base+1, rec.ExtVar.ID)
	assert.Equal(t, base+2, rec.WholeVar.ID)
	assert.Equal(t, base+3, rec.Destructs[0].Value.Var.ID)
}

func TestTotality(t *testing.T) {
	inputs := []ast.Pattern{
		&ast.Identifier{Name: "x"},
		&ast.GlobalTag{Name: "A"},
		&ast.PrivateTag{Name: "@B"},
		&ast.OpaqueRef{Name: "Age"},
		&ast.Apply{Tag: region.At[ast.Pattern](region.Zero(), &ast.Underscore{})},
		&ast.FloatLiteral{Text: "nope"},
		&ast.NumLiteral{Text: ""},
		&ast.NonBase10Literal{Digits: "", Base: ast.BaseBinary},
		&ast.StrLiteralPattern{Literal: &ast.Line{}},
		&ast.SingleQuote{Text: `\`},
		&ast.Underscore{},
		&ast.RecordDestructure{Fields: []region.Loc[ast.Pattern]{region.At[ast.Pattern](region.Zero(), &ast.GlobalTag{Name: "X"})}},
		&ast.RequiredField{Label: "l", Guard: region.At[ast.Pattern](region.Zero(), &ast.Identifier{Name: "g"})},
		&ast.OptionalField{Label: "o", Default: region.At[ast.Expr](region.Zero(), &ast.Num{Text: "1"})},
		&ast.SpaceBefore{Inner: &ast.Underscore{}},
		&ast.Malformed{Text: "?"},
		&ast.MalformedIdent{Text: "A.b", Problem: ast.BadIdentQualifiedTag},
		&ast.QualifiedIdentifier{ModuleName: "M", Ident: "x"},
	}
	for _, pt := range []PatternType{TopLevelDef, DefExpr, FunctionArg, WhenBranch} {
		for _, in := range inputs {
			f := newFixture(t)
			assert.NotPanics(t, func() {
				_, got := CanonicalizePattern(f.env, f.vs, f.scope, pt, in, region.New(0, 1))
				assert.NotNil(t, got.Value)
			}, "%T in %s", in, pt)
		}
	}
}

func TestParsePatternType(t *testing.T) {
	for _, pt := range []PatternType{TopLevelDef, DefExpr, FunctionArg, WhenBranch} {
		got, err := ParsePatternType(pt.Key())
		require.NoError(t, err)
		assert.Equal(t, pt, got)
	}
	_, err := ParsePatternType("lambda")
	assert.Error(t, err)
}
