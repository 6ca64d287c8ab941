package can

import (
	"slices"

	"github.com/hashicorp/go-set/v3"

	"github.com/funvibe/patcanon/internal/symbols"
)

// References records which symbols a canonicalized node binds or mentions.
type References struct {
	BoundSymbols       *set.Set[symbols.Symbol]
	ValueLookups       *set.Set[symbols.Symbol]
	ReferencedTypeDefs *set.Set[symbols.Symbol]
	TypeLookups        *set.Set[symbols.Symbol]
	Calls              *set.Set[symbols.Symbol]
}

func NewReferences() References {
	return References{
		BoundSymbols:       set.New[symbols.Symbol](0),
		ValueLookups:       set.New[symbols.Symbol](0),
		ReferencedTypeDefs: set.New[symbols.Symbol](0),
		TypeLookups:        set.New[symbols.Symbol](0),
		Calls:              set.New[symbols.Symbol](0),
	}
}

// Union adds every reference of other to r.
func (r *References) Union(other References) {
	insertAll(r.BoundSymbols, other.BoundSymbols)
	insertAll(r.ValueLookups, other.ValueLookups)
	insertAll(r.ReferencedTypeDefs, other.ReferencedTypeDefs)
	insertAll(r.TypeLookups, other.TypeLookups)
	insertAll(r.Calls, other.Calls)
}

func insertAll(dst, src *set.Set[symbols.Symbol]) {
	for sym := range src.Items() {
		dst.Insert(sym)
	}
}

// Output accumulates what canonicalizing a node produced besides the node.
// Merging with Union is order independent; NewOutput is its identity.
type Output struct {
	References References
}

func NewOutput() Output {
	return Output{References: NewReferences()}
}

func (o *Output) Union(other Output) {
	o.References.Union(other.References)
}

// Sorted returns the members of s in symbol order.
func Sorted(s *set.Set[symbols.Symbol]) []symbols.Symbol {
	out := s.Slice()
	slices.SortFunc(out, symbols.Symbol.Compare)
	return out
}
