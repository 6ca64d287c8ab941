package prettyprinter

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/funvibe/patcanon/internal/can"
	"github.com/funvibe/patcanon/internal/region"
	"github.com/funvibe/patcanon/internal/symbols"
)

// --- Pattern Printer (Output looks like source code, symbols carry their ids) ---

// PatternPrinter renders canonical patterns and expressions. Home-module
// symbols print as name#id; foreign symbols print in their qualified form.
type PatternPrinter struct {
	buf    bytes.Buffer
	home   symbols.ModuleID
	idents *symbols.IdentIDs
}

func NewPatternPrinter(home symbols.ModuleID, idents *symbols.IdentIDs) *PatternPrinter {
	return &PatternPrinter{home: home, idents: idents}
}

// ForEnv builds a printer that resolves names through env's ident table.
func ForEnv(env *can.Env) *PatternPrinter {
	return NewPatternPrinter(env.Home, env.IdentIDs)
}

func (p *PatternPrinter) write(s string) {
	p.buf.WriteString(s)
}

// Pattern renders a single pattern.
func (p *PatternPrinter) Pattern(pat can.Pattern) string {
	p.buf.Reset()
	p.printPattern(pat, false)
	return p.buf.String()
}

// Expr renders a single expression.
func (p *PatternPrinter) Expr(e can.Expr) string {
	p.buf.Reset()
	p.printExpr(e, false)
	return p.buf.String()
}

// Symbol renders one symbol the way patterns show it.
func (p *PatternPrinter) Symbol(sym symbols.Symbol) string {
	if sym.Module == p.home && p.idents != nil {
		if name, ok := p.idents.Name(sym.Ident); ok {
			return name + "#" + strconv.FormatUint(uint64(sym.Ident), 10)
		}
	}
	return sym.String()
}

// Symbols renders a list of symbols separated by ", ".
func (p *PatternPrinter) Symbols(syms []symbols.Symbol) string {
	parts := make([]string, len(syms))
	for i, s := range syms {
		parts[i] = p.Symbol(s)
	}
	return strings.Join(parts, ", ")
}

func (p *PatternPrinter) tagName(t can.TagName) string {
	if t.Kind == can.PrivateTag {
		return p.Symbol(t.Private)
	}
	return t.Global
}

// printPattern prints pat. nested is set for argument positions, where
// applications need parentheses.
func (p *PatternPrinter) printPattern(pat can.Pattern, nested bool) {
	switch x := pat.(type) {
	case nil:
		p.write("<???>")

	case *can.Identifier:
		p.write(p.Symbol(x.Symbol))

	case *can.AppliedTag:
		needParens := nested && len(x.Arguments) > 0
		if needParens {
			p.write("(")
		}
		p.write(p.tagName(x.TagName))
		for _, arg := range x.Arguments {
			p.write(" ")
			p.printPattern(arg.Pattern.Value, true)
		}
		if needParens {
			p.write(")")
		}

	case *can.UnwrappedOpaque:
		if nested {
			p.write("(")
		}
		p.write("$" + p.Symbol(x.Opaque) + " ")
		p.printPattern(x.Argument.Pattern.Value, true)
		if nested {
			p.write(")")
		}

	case *can.RecordDestructure:
		p.printRecord(x)

	case *can.NumLiteral:
		p.write(x.Text)
	case *can.IntLiteral:
		p.write(x.Text)
	case *can.FloatLiteral:
		p.write(x.Text)
	case *can.StrLiteral:
		p.write(strconv.Quote(x.Value))
	case *can.SingleQuote:
		p.write(strconv.QuoteRune(x.Char))
	case *can.Underscore:
		p.write("_")

	case *can.AbilityMemberSpecialization:
		p.write(p.Symbol(x.Ident) + " specializes " + p.Symbol(x.Specializes))

	case *can.Shadowed:
		p.write("<shadowed " + x.Shadow.Value + x.Shadow.Region.String() + " as " + p.Symbol(x.NewSymbol) + ">")
	case *can.OpaqueNotInScope:
		p.write("<opaque not in scope $" + x.Name.Value + ">")
	case *can.UnsupportedPattern:
		p.write("<unsupported " + x.Region.String() + ">")
	case *can.MalformedPattern:
		p.write("<malformed " + x.Problem.String() + " " + x.Region.String() + ">")

	default:
		p.write("<???>")
	}
}

func (p *PatternPrinter) printRecord(r *can.RecordDestructure) {
	if len(r.Destructs) == 0 {
		p.write("{}")
		return
	}
	p.write("{ ")
	for i, d := range r.Destructs {
		if i > 0 {
			p.write(", ")
		}
		switch k := d.Value.Kind.(type) {
		case *can.Guard:
			p.write(d.Value.Label + ": ")
			p.printPattern(k.Pattern.Value, false)
		case *can.Optional:
			p.write(p.Symbol(d.Value.Symbol) + " ? ")
			p.printExpr(k.Default.Value, false)
		default:
			p.write(p.Symbol(d.Value.Symbol))
		}
	}
	p.write(" }")
}

func (p *PatternPrinter) printExpr(e can.Expr, nested bool) {
	switch x := e.(type) {
	case nil:
		p.write("<???>")
	case *can.Var:
		p.write(p.Symbol(x.Symbol))
	case *can.Num:
		p.write(x.Text)
	case *can.Int:
		p.write(x.Text)
	case *can.Float:
		p.write(x.Text)
	case *can.Str:
		p.printStr(x)
	case *can.Tag:
		p.write(x.Name)
	case *can.Call:
		if nested {
			p.write("(")
		}
		p.printExpr(x.Fn.Value, true)
		for _, arg := range x.Args {
			p.write(" ")
			p.printExpr(arg.Value, true)
		}
		if nested {
			p.write(")")
		}
	case *can.List:
		p.write("[")
		p.printExprList(x.Items)
		p.write("]")
	case *can.Record:
		if len(x.Fields) == 0 {
			p.write("{}")
			return
		}
		p.write("{ ")
		for i, f := range x.Fields {
			if i > 0 {
				p.write(", ")
			}
			p.write(f.Label + ": ")
			p.printExpr(f.Value.Value, false)
		}
		p.write(" }")
	case *can.RuntimeError:
		p.write("<error " + string(x.Code) + " " + x.Region.String() + ">")
	default:
		p.write("<???>")
	}
}

func (p *PatternPrinter) printExprList(items []region.Loc[can.Expr]) {
	for i, item := range items {
		if i > 0 {
			p.write(", ")
		}
		p.printExpr(item.Value, false)
	}
}

func (p *PatternPrinter) printStr(s *can.Str) {
	p.write(`"`)
	for _, seg := range s.Segments {
		if seg.Interpolation != nil {
			p.write(`\(`)
			p.printExpr(seg.Interpolation.Value, false)
			p.write(")")
			continue
		}
		quoted := strconv.Quote(seg.Text)
		p.write(quoted[1 : len(quoted)-1])
	}
	p.write(`"`)
}
