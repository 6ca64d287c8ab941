package symbols

import (
	"fmt"

	"github.com/funvibe/patcanon/internal/region"
)

// Symbol is a resolved, module-qualified binding identity. Two binding sites
// with the same surface name always get different symbols.
type Symbol struct {
	Module ModuleID
	Ident  IdentID
}

func NewSymbol(home ModuleID, ident IdentID) Symbol {
	return Symbol{Module: home, Ident: ident}
}

func (s Symbol) String() string {
	return fmt.Sprintf("%s.%d", s.Module.Short(), s.Ident)
}

// Compare orders symbols by module then ident id, for deterministic output.
func (s Symbol) Compare(other Symbol) int {
	if c := compareUUID(s.Module, other.Module); c != 0 {
		return c
	}
	switch {
	case s.Ident < other.Ident:
		return -1
	case s.Ident > other.Ident:
		return 1
	}
	return 0
}

func compareUUID(a, b ModuleID) int {
	for i := range a.id {
		if a.id[i] != b.id[i] {
			if a.id[i] < b.id[i] {
				return -1
			}
			return 1
		}
	}
	return 0
}

// Binding is what a scope remembers about a name.
type Binding struct {
	Symbol Symbol
	Region region.Region
}

// ShadowError reports that a name was introduced while another binding with
// the same name was visible. NewSymbol is bound anyway and replaces the old
// binding for the rest of the scope.
type ShadowError struct {
	OriginalRegion region.Region
	Shadow         region.Loc[string]
	NewSymbol      Symbol
}

func (e *ShadowError) Error() string {
	return fmt.Sprintf("%q shadows the binding at %s", e.Shadow.Value, e.OriginalRegion)
}

// OpaqueLookupError reports an `$Name` reference that does not resolve to an
// opaque type in scope.
type OpaqueLookupError struct {
	Name           string
	Region         region.Region
	OpaquesInScope []string
	// DeclRegion is set when Name resolves to a structural alias instead.
	DeclRegion *region.Region
}

func (e *OpaqueLookupError) Error() string {
	if e.DeclRegion != nil {
		return fmt.Sprintf("%s is a structural alias declared at %s, not an opaque type", e.Name, *e.DeclRegion)
	}
	return fmt.Sprintf("opaque type %s is not in scope", e.Name)
}
