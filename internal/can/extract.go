package can

import (
	"github.com/hashicorp/go-set/v3"

	"github.com/funvibe/patcanon/internal/region"
	"github.com/funvibe/patcanon/internal/symbols"
)

// SymbolsFromPattern lists the symbols a pattern introduces, in source order.
// A specialization contributes both its own symbol and the member it
// specializes; a guarded record field contributes only its guard's symbols.
func SymbolsFromPattern(p Pattern) []symbols.Symbol {
	var out []symbols.Symbol
	symbolsFromPattern(p, &out)
	return out
}

// SymbolSetFromPattern is SymbolsFromPattern as a set.
func SymbolSetFromPattern(p Pattern) *set.Set[symbols.Symbol] {
	return set.From(SymbolsFromPattern(p))
}

func symbolsFromPattern(p Pattern, out *[]symbols.Symbol) {
	switch p := p.(type) {
	case *Identifier:
		*out = append(*out, p.Symbol)
	case *Shadowed:
		*out = append(*out, p.NewSymbol)
	case *AbilityMemberSpecialization:
		*out = append(*out, p.Ident, p.Specializes)
	case *AppliedTag:
		for _, arg := range p.Arguments {
			symbolsFromPattern(arg.Pattern.Value, out)
		}
	case *UnwrappedOpaque:
		*out = append(*out, p.Opaque)
		symbolsFromPattern(p.Argument.Pattern.Value, out)
	case *RecordDestructure:
		for _, d := range p.Destructs {
			if guard, ok := d.Value.Kind.(*Guard); ok {
				symbolsFromPattern(guard.Pattern.Value, out)
				continue
			}
			*out = append(*out, d.Value.Symbol)
		}
	}
}

// Binding pairs a bound symbol with the region of the pattern that owns it.
type Binding struct {
	Symbol symbols.Symbol
	Region region.Region
}

// BindingsFromPatterns lists the bindings of several patterns in order.
// An unwrapped opaque lists its argument's bindings before its own.
func BindingsFromPatterns(patterns []region.Loc[Pattern]) []Binding {
	var out []Binding
	for _, loc := range patterns {
		addBindings(loc.Region, loc.Value, &out)
	}
	return out
}

func addBindings(r region.Region, p Pattern, out *[]Binding) {
	switch p := p.(type) {
	case *Identifier:
		*out = append(*out, Binding{Symbol: p.Symbol, Region: r})
	case *Shadowed:
		*out = append(*out, Binding{Symbol: p.NewSymbol, Region: r})
	case *AbilityMemberSpecialization:
		*out = append(*out, Binding{Symbol: p.Ident, Region: r})
	case *AppliedTag:
		for _, arg := range p.Arguments {
			addBindings(arg.Pattern.Region, arg.Pattern.Value, out)
		}
	case *UnwrappedOpaque:
		addBindings(p.Argument.Pattern.Region, p.Argument.Pattern.Value, out)
		*out = append(*out, Binding{Symbol: p.Opaque, Region: r})
	case *RecordDestructure:
		for _, d := range p.Destructs {
			if guard, ok := d.Value.Kind.(*Guard); ok {
				addBindings(guard.Pattern.Region, guard.Pattern.Value, out)
				continue
			}
			*out = append(*out, Binding{Symbol: d.Value.Symbol, Region: d.Region})
		}
	}
}
