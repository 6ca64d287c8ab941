package can

import (
	"strconv"
	"strings"

	"github.com/funvibe/patcanon/internal/ast"
	"github.com/funvibe/patcanon/internal/diagnostics"
	"github.com/funvibe/patcanon/internal/num"
	"github.com/funvibe/patcanon/internal/region"
	"github.com/funvibe/patcanon/internal/symbols"
	"github.com/funvibe/patcanon/internal/typesystem"
)

type canonicalizer struct {
	env         *Env
	vs          *typesystem.VarStore
	scope       *symbols.Scope
	patternType PatternType
	output      Output
}

// CanonicalizePattern binds the names of pattern in scope and returns the
// canonical pattern located at r. It never fails: problems are reported to
// env.Sink and replaced by sentinel nodes.
func CanonicalizePattern(env *Env, vs *typesystem.VarStore, scope *symbols.Scope, patternType PatternType, pattern ast.Pattern, r region.Region) (Output, region.Loc[Pattern]) {
	c := &canonicalizer{env: env, vs: vs, scope: scope, patternType: patternType, output: NewOutput()}
	p := c.pattern(pattern, r)
	return c.output, region.At(r, p)
}

// CanonicalizeDefHeaderPattern is CanonicalizePattern for the pattern of a
// definition header. A plain identifier that rebinds an ability member
// becomes an AbilityMemberSpecialization.
func CanonicalizeDefHeaderPattern(env *Env, vs *typesystem.VarStore, scope *symbols.Scope, abilities symbols.AbilityMembers, patternType PatternType, pattern ast.Pattern, r region.Region) (Output, region.Loc[Pattern]) {
	ident, ok := ast.StripSpaces(pattern).(*ast.Identifier)
	if !ok {
		return CanonicalizePattern(env, vs, scope, patternType, pattern, r)
	}

	c := &canonicalizer{env: env, vs: vs, scope: scope, patternType: patternType, output: NewOutput()}
	sym, specializes, shadow := scope.IntroduceOrShadowAbilityMember(ident.Name, r, abilities)
	if shadow != nil {
		return c.output, region.At(r, c.shadowed(shadow))
	}
	c.output.References.BoundSymbols.Insert(sym)
	if specializes == nil {
		return c.output, region.At[Pattern](r, &Identifier{Symbol: sym})
	}
	env.Logger.Debug("ability member specialization", "name", ident.Name, "symbol", sym, "specializes", *specializes)
	return c.output, region.At[Pattern](r, &AbilityMemberSpecialization{Ident: sym, Specializes: *specializes})
}

// sub canonicalizes a child pattern with the same context, merging its output.
func (c *canonicalizer) sub(loc region.Loc[ast.Pattern]) region.Loc[Pattern] {
	out, p := CanonicalizePattern(c.env, c.vs, c.scope, c.patternType, loc.Value, loc.Region)
	c.output.Union(out)
	return p
}

func (c *canonicalizer) pattern(pattern ast.Pattern, r region.Region) Pattern {
	switch p := pattern.(type) {
	case *ast.Identifier:
		sym, shadow := c.scope.Introduce(p.Name, r)
		if shadow != nil {
			return c.shadowed(shadow)
		}
		c.output.References.BoundSymbols.Insert(sym)
		return &Identifier{Symbol: sym}

	case *ast.GlobalTag:
		return c.appliedTag(GlobalTagName(p.Name), nil)

	case *ast.PrivateTag:
		return c.appliedTag(c.privateTagName(p.Name), nil)

	case *ast.OpaqueRef:
		c.env.problem(diagnostics.NewError(diagnostics.ErrC005, r, "$"+p.Name))
		return &UnsupportedPattern{Region: r}

	case *ast.Apply:
		return c.apply(p, r)

	case *ast.FloatLiteral:
		if c.patternType != WhenBranch {
			return c.unsupported("float", r)
		}
		text, value, bound, err := num.FinishParsingFloat(p.Text)
		if err != nil {
			return c.malformed(MalformedProblem{Kind: MalformedFloat}, r)
		}
		return &FloatLiteral{Var: c.vs.Fresh(), PrecisionVar: c.vs.Fresh(), Text: text, Value: value, Bound: bound}

	case *ast.NumLiteral:
		if c.patternType != WhenBranch {
			return c.unsupported("number", r)
		}
		parsed, err := num.FinishParsingNum(p.Text)
		if err != nil {
			return c.malformed(MalformedProblem{Kind: MalformedInt}, r)
		}
		return c.numPattern(p.Text, parsed)

	case *ast.NonBase10Literal:
		if c.patternType != WhenBranch {
			return c.unsupported(p.Base.String()+" number", r)
		}
		return c.baseLiteral(p, r)

	case *ast.StrLiteralPattern:
		if c.patternType != WhenBranch {
			return c.unsupported("string", r)
		}
		return c.flattenStr(p.Literal)

	case *ast.SingleQuote:
		if c.patternType != WhenBranch {
			return c.unsupported("character", r)
		}
		return c.singleQuote(p, r)

	case *ast.Underscore:
		if c.patternType == WhenBranch || c.patternType == FunctionArg {
			return &Underscore{}
		}
		c.env.problem(diagnostics.NewError(diagnostics.ErrC008, r, c.patternType))
		return &UnsupportedPattern{Region: r}

	case *ast.SpaceBefore:
		return c.pattern(p.Inner, r)

	case *ast.SpaceAfter:
		return c.pattern(p.Inner, r)

	case *ast.RecordDestructure:
		return c.recordDestructure(p, r)

	case *ast.RequiredField, *ast.OptionalField:
		return c.malformed(MalformedProblem{Kind: MalformedUnknown}, r)

	case *ast.Malformed:
		return c.malformed(MalformedProblem{Kind: MalformedUnknown}, r)

	case *ast.MalformedIdent:
		return c.malformed(MalformedProblem{Kind: MalformedBadIdent, BadIdent: p.Problem}, r)

	case *ast.QualifiedIdentifier:
		return c.malformed(MalformedProblem{Kind: MalformedQualifiedIdentifier}, r)
	}
	return c.malformed(MalformedProblem{Kind: MalformedUnknown}, r)
}

func (c *canonicalizer) privateTagName(name string) TagName {
	id := c.env.IdentIDs.GetOrInsert(name)
	return PrivateTagName(symbols.NewSymbol(c.env.Home, id))
}

// appliedTag mints the whole and extension variables after the arguments.
func (c *canonicalizer) appliedTag(name TagName, args []PatternArg) Pattern {
	wholeVar := c.vs.Fresh()
	extVar := c.vs.Fresh()
	return &AppliedTag{WholeVar: wholeVar, ExtVar: extVar, TagName: name, Arguments: args}
}

func (c *canonicalizer) apply(p *ast.Apply, r region.Region) Pattern {
	args := make([]PatternArg, 0, len(p.Args))
	for _, arg := range p.Args {
		canArg := c.sub(arg)
		args = append(args, PatternArg{Var: c.vs.Fresh(), Pattern: canArg})
	}

	switch head := ast.StripSpaces(p.Tag.Value).(type) {
	case *ast.GlobalTag:
		return c.appliedTag(GlobalTagName(head.Name), args)
	case *ast.PrivateTag:
		return c.appliedTag(c.privateTagName(head.Name), args)
	case *ast.OpaqueRef:
		return c.unwrapOpaque(head.Name, p.Tag.Region, args, r)
	}
	return c.malformed(MalformedProblem{Kind: MalformedUnknown}, r)
}

func (c *canonicalizer) unwrapOpaque(name string, nameRegion region.Region, args []PatternArg, r region.Region) Pattern {
	switch {
	case len(args) == 0:
		c.env.problem(diagnostics.NewError(diagnostics.ErrC005, r, "$"+name))
		return &UnsupportedPattern{Region: r}
	case len(args) > 1:
		c.env.problem(diagnostics.NewError(diagnostics.ErrC007, r, "$"+name, len(args)))
		return &UnsupportedPattern{Region: r}
	}

	entry, lookupErr := c.scope.LookupOpaqueRef(name, nameRegion)
	if lookupErr != nil {
		c.env.problem(diagnostics.NewError(diagnostics.ErrC006, nameRegion, name))
		return &OpaqueNotInScope{Name: region.At(nameRegion, name)}
	}

	typeArgs, lambdaSets, specialized := typesystem.FreshenOpaque(c.vs, entry.Def)
	c.output.References.ReferencedTypeDefs.Insert(entry.Symbol)
	c.output.References.TypeLookups.Insert(entry.Symbol)
	c.env.Logger.Debug("unwrap opaque", "name", name, "symbol", entry.Symbol, "type", specialized)

	return &UnwrappedOpaque{
		WholeVar:           c.vs.Fresh(),
		Opaque:             entry.Symbol,
		Argument:           args[0],
		SpecializedDefType: specialized,
		TypeArguments:      typeArgs,
		LambdaSetVariables: lambdaSets,
	}
}

func (c *canonicalizer) numPattern(text string, parsed num.ParsedNum) Pattern {
	switch parsed.Kind {
	case num.Int:
		return &IntLiteral{Var: c.vs.Fresh(), PrecisionVar: c.vs.Fresh(), Text: text, Value: parsed.Int, Bound: parsed.IntBound}
	case num.Float:
		return &FloatLiteral{Var: c.vs.Fresh(), PrecisionVar: c.vs.Fresh(), Text: text, Value: parsed.Float, Bound: parsed.FloatBound}
	}
	return &NumLiteral{Var: c.vs.Fresh(), Text: text, Value: parsed.Int, Bound: parsed.NumBound}
}

func (c *canonicalizer) baseLiteral(p *ast.NonBase10Literal, r region.Region) Pattern {
	value, bound, err := num.FinishParsingBase(p.Digits, p.Base, p.IsNegative)
	if err != nil {
		return c.malformed(MalformedProblem{Kind: MalformedBase, Base: p.Base}, r)
	}
	if p.IsNegative {
		// A value at full U128 width has no negation in any integer type.
		if value, err = value.Neg(); err != nil {
			return c.malformed(MalformedProblem{Kind: MalformedInt}, r)
		}
	}
	return &IntLiteral{Var: c.vs.Fresh(), PrecisionVar: c.vs.Fresh(), Text: value.String(), Value: value, Bound: bound}
}

// flattenStr joins the segments of every line into one string. An
// interpolation anywhere turns the whole literal into UnsupportedPattern.
func (c *canonicalizer) flattenStr(literal ast.StrLiteral) Pattern {
	var lines [][]ast.StrSegment
	switch l := literal.(type) {
	case *ast.PlainLine:
		return &StrLiteral{Value: l.Text}
	case *ast.Line:
		lines = [][]ast.StrSegment{l.Segments}
	case *ast.Block:
		lines = l.Lines
	}

	var sb strings.Builder
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
					c.env.problem(diagnostics.NewError(diagnostics.ErrC012, s.Digits.Region, s.Digits.Value))
					return &MalformedPattern{Problem: MalformedProblem{Kind: MalformedUnicodeEscape}, Region: s.Digits.Region}
				}
				sb.WriteRune(ch)
			case *ast.Interpolated:
				c.env.problem(diagnostics.NewError(diagnostics.ErrC009, s.Expr.Region))
				return &UnsupportedPattern{Region: s.Expr.Region}
			}
		}
	}
	return &StrLiteral{Value: sb.String()}
}

func (c *canonicalizer) singleQuote(p *ast.SingleQuote, r region.Region) Pattern {
	ch, count, problem := decodeCharLiteral(p.Text)
	switch problem {
	case charEmpty:
		c.env.problem(diagnostics.NewError(diagnostics.ErrC004, r, "none"))
		return &MalformedPattern{Problem: MalformedProblem{Kind: EmptySingleQuote}, Region: r}
	case charMultiple:
		c.env.problem(diagnostics.NewError(diagnostics.ErrC004, r, strconv.Itoa(count)))
		return &MalformedPattern{Problem: MalformedProblem{Kind: MultipleCharsInSingleQuote}, Region: r}
	case charBadEscape:
		c.env.problem(diagnostics.NewError(diagnostics.ErrC012, r, p.Text))
		return &MalformedPattern{Problem: MalformedProblem{Kind: MalformedUnicodeEscape}, Region: r}
	}
	return &SingleQuote{Char: ch}
}

// recordDestructure processes every field even after a problem so that each
// one is reported; the last problem replaces the result.
func (c *canonicalizer) recordDestructure(p *ast.RecordDestructure, r region.Region) Pattern {
	extVar := c.vs.Fresh()
	wholeVar := c.vs.Fresh()
	destructs := make([]region.Loc[RecordDestruct], 0, len(p.Fields))
	var erroneous Pattern

	for _, field := range p.Fields {
		switch f := ast.StripSpaces(field.Value).(type) {
		case *ast.Identifier:
			sym, shadow := c.scope.Introduce(f.Name, field.Region)
			if shadow != nil {
				erroneous = c.shadowed(shadow)
				continue
			}
			c.output.References.BoundSymbols.Insert(sym)
			destructs = append(destructs, region.At(field.Region, RecordDestruct{
				Var:    c.vs.Fresh(),
				Label:  f.Name,
				Symbol: sym,
				Kind:   &Required{},
			}))

		case *ast.RequiredField:
			sym := c.scope.Ignore(f.Label)
			guard := c.sub(f.Guard)
			fieldVar := c.vs.Fresh()
			destructs = append(destructs, region.At(field.Region, RecordDestruct{
				Var:    fieldVar,
				Label:  f.Label,
				Symbol: sym,
				Kind:   &Guard{Var: c.vs.Fresh(), Pattern: guard},
			}))

		case *ast.OptionalField:
			sym, shadow := c.scope.Introduce(f.Label, field.Region)
			if shadow != nil {
				erroneous = c.shadowed(shadow)
				continue
			}
			def, exprOutput := CanonicalizeExpr(c.env, c.vs, c.scope, f.Default.Region, f.Default.Value)
			c.output.References.BoundSymbols.Insert(sym)
			c.output.Union(exprOutput)
			fieldVar := c.vs.Fresh()
			destructs = append(destructs, region.At(field.Region, RecordDestruct{
				Var:    fieldVar,
				Label:  f.Label,
				Symbol: sym,
				Kind:   &Optional{Var: c.vs.Fresh(), Default: def},
			}))

		default:
			erroneous = c.malformed(MalformedProblem{Kind: MalformedUnknown}, field.Region)
		}
	}

	if erroneous != nil {
		return erroneous
	}
	return &RecordDestructure{WholeVar: wholeVar, ExtVar: extVar, Destructs: destructs}
}

// shadowed reports a collision and returns the sentinel. The new symbol is
// bound regardless, so it counts as a bound symbol.
func (c *canonicalizer) shadowed(shadow *symbols.ShadowError) Pattern {
	c.env.problem(diagnostics.NewError(diagnostics.ErrC001, shadow.Shadow.Region, shadow.Shadow.Value).WithOriginal(shadow.OriginalRegion))
	c.env.Logger.Debug("shadowed", "name", shadow.Shadow.Value, "original", shadow.OriginalRegion, "symbol", shadow.NewSymbol)
	c.output.References.BoundSymbols.Insert(shadow.NewSymbol)
	return &Shadowed{OriginalRegion: shadow.OriginalRegion, Shadow: shadow.Shadow, NewSymbol: shadow.NewSymbol}
}

func (c *canonicalizer) unsupported(what string, r region.Region) Pattern {
	c.env.problem(diagnostics.NewError(diagnostics.ErrC002, r, what, c.patternType))
	return &UnsupportedPattern{Region: r}
}

func (c *canonicalizer) malformed(problem MalformedProblem, r region.Region) Pattern {
	var err *diagnostics.DiagnosticError
	switch problem.Kind {
	case MalformedInt, MalformedFloat, MalformedBase:
		err = diagnostics.NewError(diagnostics.ErrC003, r, problem.String())
	default:
		err = diagnostics.NewError(diagnostics.ErrC010, r, problem.String())
	}
	c.env.problem(err)
	return &MalformedPattern{Problem: problem, Region: r}
}
