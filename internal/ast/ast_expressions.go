package ast

import "github.com/funvibe/patcanon/internal/region"

// Expr is a surface expression node. Patterns only embed expressions in
// optional-field defaults and string interpolations.
type Expr interface {
	expressionNode()
}

// Var: x, Module.x
type Var struct {
	ModuleName string
	Name       string
}

// Num: 42
type Num struct {
	Text string
}

// Float: 1.5
type Float struct {
	Text string
}

// Str: "abc"
type Str struct {
	Literal StrLiteral
}

// Tag: Foo
type Tag struct {
	Name string
}

// Call: f a b
type Call struct {
	Fn   region.Loc[Expr]
	Args []region.Loc[Expr]
}

// List: [a, b]
type List struct {
	Items []region.Loc[Expr]
}

// RecordField is a single `label: value` entry of a Record expression.
type RecordField struct {
	Label string
	Value region.Loc[Expr]
}

// Record: { a: 1, b: x }
type Record struct {
	Fields []RecordField
}

// MalformedExpr is a parse error placeholder for an expression.
type MalformedExpr struct {
	Text string
}

func (*Var) expressionNode()           {}
func (*Num) expressionNode()           {}
func (*Float) expressionNode()         {}
func (*Str) expressionNode()           {}
func (*Tag) expressionNode()           {}
func (*Call) expressionNode()          {}
func (*List) expressionNode()          {}
func (*Record) expressionNode()        {}
func (*MalformedExpr) expressionNode() {}

// --- String literals ---

// StrLiteral is one of PlainLine, Line or Block.
type StrLiteral interface {
	strLiteral()
}

// PlainLine is a single-line literal without escapes or interpolation.
type PlainLine struct {
	Text string
}

// Line is a single-line literal made of segments.
type Line struct {
	Segments []StrSegment
}

// Block is a multi-line literal; each line is a list of segments.
type Block struct {
	Lines [][]StrSegment
}

func (*PlainLine) strLiteral() {}
func (*Line) strLiteral()      {}
func (*Block) strLiteral()     {}

// StrSegment is one of Plaintext, EscapedChar, Unicode or Interpolated.
type StrSegment interface {
	strSegment()
}

// Plaintext is a run of literal characters.
type Plaintext struct {
	Text string
}

// EscapedChar is a backslash escape; Char is the character after the backslash.
type EscapedChar struct {
	Char rune
}

// Unicode is a \u(...) escape; Digits holds the hex digits between the parens.
type Unicode struct {
	Digits region.Loc[string]
}

// Interpolated is a $(expr) segment.
type Interpolated struct {
	Expr region.Loc[Expr]
}

func (*Plaintext) strSegment()    {}
func (*EscapedChar) strSegment()  {}
func (*Unicode) strSegment()      {}
func (*Interpolated) strSegment() {}
