package can

import (
	"github.com/funvibe/patcanon/internal/ast"
	"github.com/funvibe/patcanon/internal/num"
	"github.com/funvibe/patcanon/internal/region"
	"github.com/funvibe/patcanon/internal/symbols"
	"github.com/funvibe/patcanon/internal/typesystem"
)

// Pattern is a canonical pattern node. Sentinel variants (Shadowed,
// OpaqueNotInScope, UnsupportedPattern, MalformedPattern) stand in for
// patterns that were reported as problems.
type Pattern interface {
	canonicalPattern()
}

type Identifier struct {
	Symbol symbols.Symbol
}

type TagKind int

const (
	GlobalTag TagKind = iota
	PrivateTag
)

// TagName is either a global tag name or a private tag's interned symbol.
type TagName struct {
	Kind    TagKind
	Global  string
	Private symbols.Symbol
}

func GlobalTagName(name string) TagName {
	return TagName{Kind: GlobalTag, Global: name}
}

func PrivateTagName(sym symbols.Symbol) TagName {
	return TagName{Kind: PrivateTag, Private: sym}
}

// PatternArg is a sub-pattern with the type variable of its position.
type PatternArg struct {
	Var     typesystem.TVar
	Pattern region.Loc[Pattern]
}

type AppliedTag struct {
	WholeVar  typesystem.TVar
	ExtVar    typesystem.TVar
	TagName   TagName
	Arguments []PatternArg
}

// UnwrappedOpaque matches `$Name arg`. TypeArguments and SpecializedDefType
// are the opaque's definition instantiated with fresh variables for this site.
type UnwrappedOpaque struct {
	WholeVar           typesystem.TVar
	Opaque             symbols.Symbol
	Argument           PatternArg
	SpecializedDefType typesystem.Type
	TypeArguments      []typesystem.TypeArg
	LambdaSetVariables []typesystem.LambdaSet
}

type RecordDestructure struct {
	WholeVar  typesystem.TVar
	ExtVar    typesystem.TVar
	Destructs []region.Loc[RecordDestruct]
}

type RecordDestruct struct {
	Var    typesystem.TVar
	Label  string
	Symbol symbols.Symbol
	Kind   DestructKind
}

// DestructKind is Required, Optional or Guard.
type DestructKind interface {
	destructKind()
}

// Required binds the field label.
type Required struct{}

// Optional binds the field label and falls back to Default when the field is absent.
type Optional struct {
	Var     typesystem.TVar
	Default region.Loc[Expr]
}

// Guard matches the field against Pattern; the label itself is not bound.
type Guard struct {
	Var     typesystem.TVar
	Pattern region.Loc[Pattern]
}

func (*Required) destructKind() {}
func (*Optional) destructKind() {}
func (*Guard) destructKind()    {}

// NumLiteral is a literal that may still become an integer or a fraction.
type NumLiteral struct {
	Var   typesystem.TVar
	Text  string
	Value num.IntValue
	Bound num.NumericBound
}

type IntLiteral struct {
	Var          typesystem.TVar
	PrecisionVar typesystem.TVar
	Text         string
	Value        num.IntValue
	Bound        num.IntBound
}

type FloatLiteral struct {
	Var          typesystem.TVar
	PrecisionVar typesystem.TVar
	Text         string
	Value        float64
	Bound        num.FloatBound
}

type StrLiteral struct {
	Value string
}

type SingleQuote struct {
	Char rune
}

type Underscore struct{}

// AbilityMemberSpecialization is a definition header that implements an
// ability member for a concrete type.
type AbilityMemberSpecialization struct {
	Ident       symbols.Symbol
	Specializes symbols.Symbol
}

// Shadowed replaces a binding that collided with a visible name. NewSymbol
// is still bound.
type Shadowed struct {
	OriginalRegion region.Region
	Shadow         region.Loc[string]
	NewSymbol      symbols.Symbol
}

type OpaqueNotInScope struct {
	Name region.Loc[string]
}

type UnsupportedPattern struct {
	Region region.Region
}

type MalformedKind int

const (
	MalformedInt MalformedKind = iota
	MalformedFloat
	MalformedBase
	MalformedUnknown
	MalformedQualifiedIdentifier
	MalformedBadIdent
	EmptySingleQuote
	MultipleCharsInSingleQuote
	MalformedUnicodeEscape
)

var malformedKindNames = map[MalformedKind]string{
	MalformedInt:                 "int",
	MalformedFloat:               "float",
	MalformedBase:                "base",
	MalformedUnknown:             "unknown",
	MalformedQualifiedIdentifier: "qualified identifier",
	MalformedBadIdent:            "bad identifier",
	EmptySingleQuote:             "empty single quote",
	MultipleCharsInSingleQuote:   "multiple chars in single quote",
	MalformedUnicodeEscape:       "unicode escape",
}

func (k MalformedKind) String() string {
	return malformedKindNames[k]
}

// MalformedProblem says why a pattern could not be canonicalized. Base and
// BadIdent are set for MalformedBase and MalformedBadIdent.
type MalformedProblem struct {
	Kind     MalformedKind
	Base     ast.Base
	BadIdent ast.BadIdent
}

func (p MalformedProblem) String() string {
	switch p.Kind {
	case MalformedBase:
		return p.Base.String()
	case MalformedBadIdent:
		return "bad identifier (" + p.BadIdent.String() + ")"
	}
	return p.Kind.String()
}

type MalformedPattern struct {
	Problem MalformedProblem
	Region  region.Region
}

func (*Identifier) canonicalPattern()                  {}
func (*AppliedTag) canonicalPattern()                  {}
func (*UnwrappedOpaque) canonicalPattern()             {}
func (*RecordDestructure) canonicalPattern()           {}
func (*NumLiteral) canonicalPattern()                  {}
func (*IntLiteral) canonicalPattern()                  {}
func (*FloatLiteral) canonicalPattern()                {}
func (*StrLiteral) canonicalPattern()                  {}
func (*SingleQuote) canonicalPattern()                 {}
func (*Underscore) canonicalPattern()                  {}
func (*AbilityMemberSpecialization) canonicalPattern() {}
func (*Shadowed) canonicalPattern()                    {}
func (*OpaqueNotInScope) canonicalPattern()            {}
func (*UnsupportedPattern) canonicalPattern()          {}
func (*MalformedPattern) canonicalPattern()            {}
