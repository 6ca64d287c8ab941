// Package ast holds the surface syntax trees the parser hands to canonicalization.
//
// Every node is paired with a source region by its parent (region.Loc), so the
// nodes themselves carry no position information.
package ast

import "github.com/funvibe/patcanon/internal/region"

// Pattern is a surface pattern node.
type Pattern interface {
	patternNode()
}

// Identifier: x
type Identifier struct {
	Name string
}

// GlobalTag: Foo
type GlobalTag struct {
	Name string
}

// PrivateTag: @Foo (module-private constructor)
type PrivateTag struct {
	Name string
}

// OpaqueRef: $Age (a reference to an opaque type's wrapper constructor)
type OpaqueRef struct {
	Name string
}

// Apply: Foo a b, $Age n
// Tag is always a GlobalTag, PrivateTag or OpaqueRef when produced by the parser.
type Apply struct {
	Tag  region.Loc[Pattern]
	Args []region.Loc[Pattern]
}

// FloatLiteral: 1.5, 1.5f32
type FloatLiteral struct {
	Text string
}

// NumLiteral: 42, -7, 42u8
type NumLiteral struct {
	Text string
}

// Base is the radix of a NonBase10Literal.
type Base int

const (
	BaseHex Base = iota
	BaseOctal
	BaseBinary
	BaseDecimal
)

func (b Base) Radix() int {
	switch b {
	case BaseHex:
		return 16
	case BaseOctal:
		return 8
	case BaseBinary:
		return 2
	default:
		return 10
	}
}

func (b Base) String() string {
	switch b {
	case BaseHex:
		return "hex"
	case BaseOctal:
		return "octal"
	case BaseBinary:
		return "binary"
	default:
		return "decimal"
	}
}

// NonBase10Literal: 0xFF, -0b101. Digits excludes the prefix and the sign.
type NonBase10Literal struct {
	Digits     string
	Base       Base
	IsNegative bool
}

// StrLiteralPattern: "abc"
type StrLiteralPattern struct {
	Literal StrLiteral
}

// SingleQuote: 'a'. Text is the raw content between the quotes.
type SingleQuote struct {
	Text string
}

// Underscore: _ or _name
type Underscore struct {
	Name string
}

// RecordDestructure: { x, y: Foo z, w ? 0 }
type RecordDestructure struct {
	Fields []region.Loc[Pattern]
}

// RequiredField: y: <guard>. Only valid inside RecordDestructure.
type RequiredField struct {
	Label string
	Guard region.Loc[Pattern]
}

// OptionalField: w ? <default>. Only valid inside RecordDestructure.
type OptionalField struct {
	Label   string
	Default region.Loc[Expr]
}

// SpaceBefore wraps a pattern preceded by whitespace or comments.
type SpaceBefore struct {
	Inner    Pattern
	Comments []string
}

// SpaceAfter wraps a pattern followed by whitespace or comments.
type SpaceAfter struct {
	Inner    Pattern
	Comments []string
}

// Malformed is a parse error placeholder for an unrecognized pattern.
type Malformed struct {
	Text string
}

// BadIdent classifies why an identifier failed to parse.
type BadIdent int

const (
	BadIdentStart BadIdent = iota
	BadIdentSpace
	BadIdentUnderscore
	BadIdentQualifiedTag
	BadIdentWeirdAccessor
	BadIdentWeirdDotAccess
	BadIdentWeirdDotQualified
	BadIdentStrayDot
	BadIdentBadPrivateTag
	BadIdentBadOpaqueRef
)

var badIdentNames = map[BadIdent]string{
	BadIdentStart:             "start",
	BadIdentSpace:             "space",
	BadIdentUnderscore:        "underscore",
	BadIdentQualifiedTag:      "qualified_tag",
	BadIdentWeirdAccessor:     "weird_accessor",
	BadIdentWeirdDotAccess:    "weird_dot_access",
	BadIdentWeirdDotQualified: "weird_dot_qualified",
	BadIdentStrayDot:          "stray_dot",
	BadIdentBadPrivateTag:     "bad_private_tag",
	BadIdentBadOpaqueRef:      "bad_opaque_ref",
}

func (b BadIdent) String() string {
	if s, ok := badIdentNames[b]; ok {
		return s
	}
	return "unknown"
}

// ParseBadIdent is the inverse of BadIdent.String.
func ParseBadIdent(s string) (BadIdent, bool) {
	for k, v := range badIdentNames {
		if v == s {
			return k, true
		}
	}
	return 0, false
}

// MalformedIdent is an identifier the parser could not make sense of.
type MalformedIdent struct {
	Text    string
	Problem BadIdent
}

// QualifiedIdentifier: Module.name, which cannot bind anything in a pattern.
type QualifiedIdentifier struct {
	ModuleName string
	Ident      string
}

func (*Identifier) patternNode()          {}
func (*GlobalTag) patternNode()           {}
func (*PrivateTag) patternNode()          {}
func (*OpaqueRef) patternNode()           {}
func (*Apply) patternNode()               {}
func (*FloatLiteral) patternNode()        {}
func (*NumLiteral) patternNode()          {}
func (*NonBase10Literal) patternNode()    {}
func (*StrLiteralPattern) patternNode()   {}
func (*SingleQuote) patternNode()         {}
func (*Underscore) patternNode()          {}
func (*RecordDestructure) patternNode()   {}
func (*RequiredField) patternNode()       {}
func (*OptionalField) patternNode()       {}
func (*SpaceBefore) patternNode()         {}
func (*SpaceAfter) patternNode()          {}
func (*Malformed) patternNode()           {}
func (*MalformedIdent) patternNode()      {}
func (*QualifiedIdentifier) patternNode() {}

// StripSpaces removes any whitespace wrappers around p.
func StripSpaces(p Pattern) Pattern {
	for {
		switch w := p.(type) {
		case *SpaceBefore:
			p = w.Inner
		case *SpaceAfter:
			p = w.Inner
		default:
			return p
		}
	}
}
