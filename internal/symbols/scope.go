package symbols

import (
	"sort"

	"github.com/funvibe/patcanon/internal/region"
	"github.com/funvibe/patcanon/internal/typesystem"
)

type ScopeType int

const (
	ScopeModule ScopeType = iota
	ScopeFunction
	ScopeBlock
	ScopeBranch
)

func (t ScopeType) String() string {
	switch t {
	case ScopeModule:
		return "module"
	case ScopeFunction:
		return "function"
	case ScopeBlock:
		return "block"
	case ScopeBranch:
		return "branch"
	}
	return "unknown"
}

// AbilityMembers answers whether a symbol is declared as an ability member.
type AbilityMembers interface {
	IsAbilityMember(sym Symbol) bool
}

// TypeEntry is a type definition visible in scope.
type TypeEntry struct {
	Symbol Symbol
	Def    typesystem.AliasDef
}

// Scope maps value names to symbols and type names to definitions. Child
// scopes share the module's ident tables and see every outer binding.
type Scope struct {
	home      ModuleID
	idents    *IdentIDs
	exposed   map[string]IdentID
	values    map[string]Binding
	types     map[string]TypeEntry
	outer     *Scope
	scopeType ScopeType
}

// NewModuleScope creates the top-level scope of a module. Exposed names are
// interned first so that binding them later reuses their public ids.
func NewModuleScope(home ModuleID, idents *IdentIDs, exposed []string) *Scope {
	s := &Scope{
		home:      home,
		idents:    idents,
		exposed:   make(map[string]IdentID, len(exposed)),
		values:    make(map[string]Binding),
		types:     make(map[string]TypeEntry),
		scopeType: ScopeModule,
	}
	for _, name := range exposed {
		s.exposed[name] = idents.GetOrInsert(name)
	}
	return s
}

// Enter opens a child scope of the given kind.
func (s *Scope) Enter(scopeType ScopeType) *Scope {
	return &Scope{
		home:      s.home,
		idents:    s.idents,
		exposed:   s.exposed,
		values:    make(map[string]Binding),
		types:     make(map[string]TypeEntry),
		outer:     s,
		scopeType: scopeType,
	}
}

func (s *Scope) Home() ModuleID          { return s.home }
func (s *Scope) IdentIDs() *IdentIDs     { return s.idents }
func (s *Scope) Outer() *Scope           { return s.outer }
func (s *Scope) ScopeType() ScopeType    { return s.scopeType }
func (s *Scope) IsExposed(n string) bool { _, ok := s.exposed[n]; return ok }

// FindWithScope returns the visible binding for name and the scope that holds it.
func (s *Scope) FindWithScope(name string) (Binding, *Scope, bool) {
	for cur := s; cur != nil; cur = cur.outer {
		if b, ok := cur.values[name]; ok {
			return b, cur, true
		}
	}
	return Binding{}, nil, false
}

// Find returns the visible binding for name.
func (s *Scope) Find(name string) (Binding, bool) {
	b, _, ok := s.FindWithScope(name)
	return b, ok
}

func (s *Scope) IsDefined(name string) bool {
	_, ok := s.Find(name)
	return ok
}

func (s *Scope) IsDefinedLocally(name string) bool {
	_, ok := s.values[name]
	return ok
}

// Lookup resolves a value reference.
func (s *Scope) Lookup(name string) (Symbol, bool) {
	b, ok := s.Find(name)
	return b.Symbol, ok
}

// Introduce binds name at r. When another binding of name is visible, a new
// symbol is still minted and bound, and the collision is returned.
func (s *Scope) Introduce(name string, r region.Region) (Symbol, *ShadowError) {
	if original, ok := s.Find(name); ok {
		sym := s.bind(name, s.idents.Add(name), r)
		return sym, &ShadowError{
			OriginalRegion: original.Region,
			Shadow:         region.At(r, name),
			NewSymbol:      sym,
		}
	}
	if id, ok := s.exposed[name]; ok {
		return s.bind(name, id, r), nil
	}
	return s.bind(name, s.idents.Add(name), r), nil
}

// IntroduceOrShadowAbilityMember is Introduce for definition headers: a
// collision with an ability member is a specialization, not a shadow. The
// second result is the member being specialized.
func (s *Scope) IntroduceOrShadowAbilityMember(name string, r region.Region, abilities AbilityMembers) (Symbol, *Symbol, *ShadowError) {
	original, ok := s.Find(name)
	if ok && abilities != nil && abilities.IsAbilityMember(original.Symbol) {
		sym := s.bind(name, s.idents.Add(name), r)
		specializes := original.Symbol
		return sym, &specializes, nil
	}
	sym, shadow := s.Introduce(name, r)
	return sym, nil, shadow
}

// Ignore mints a symbol for name without binding it.
func (s *Scope) Ignore(name string) Symbol {
	return NewSymbol(s.home, s.idents.Add(name))
}

func (s *Scope) bind(name string, id IdentID, r region.Region) Symbol {
	sym := NewSymbol(s.home, id)
	s.values[name] = Binding{Symbol: sym, Region: r}
	return sym
}

// AddAlias registers a type definition (structural or opaque) under its name.
func (s *Scope) AddAlias(def typesystem.AliasDef) Symbol {
	sym := NewSymbol(s.home, s.idents.GetOrInsert(def.Name))
	s.types[def.Name] = TypeEntry{Symbol: sym, Def: def}
	return sym
}

// LookupType finds a type definition by name through the scope chain.
func (s *Scope) LookupType(name string) (TypeEntry, bool) {
	for cur := s; cur != nil; cur = cur.outer {
		if e, ok := cur.types[name]; ok {
			return e, true
		}
	}
	return TypeEntry{}, false
}

// LookupOpaqueRef resolves the name of an `$Name` reference. Only opaque
// definitions qualify.
func (s *Scope) LookupOpaqueRef(name string, r region.Region) (TypeEntry, *OpaqueLookupError) {
	entry, ok := s.LookupType(name)
	if ok && entry.Def.Kind == typesystem.Opaque {
		return entry, nil
	}
	lookupErr := &OpaqueLookupError{
		Name:           name,
		Region:         r,
		OpaquesInScope: s.opaqueNames(),
	}
	if ok {
		declRegion := entry.Def.Region
		lookupErr.DeclRegion = &declRegion
	}
	return TypeEntry{}, lookupErr
}

func (s *Scope) opaqueNames() []string {
	seen := make(map[string]bool)
	var names []string
	for cur := s; cur != nil; cur = cur.outer {
		for name, e := range cur.types {
			if e.Def.Kind == typesystem.Opaque && !seen[name] {
				seen[name] = true
				names = append(names, name)
			}
		}
	}
	sort.Strings(names)
	return names
}

// GetAllNames returns every visible value name, sorted.
func (s *Scope) GetAllNames() []string {
	seen := make(map[string]bool)
	var names []string
	for cur := s; cur != nil; cur = cur.outer {
		for name := range cur.values {
			if !seen[name] {
				seen[name] = true
				names = append(names, name)
			}
		}
	}
	sort.Strings(names)
	return names
}

// NameOf returns the source name of a home-module symbol.
func (s *Scope) NameOf(sym Symbol) (string, bool) {
	if sym.Module != s.home {
		return "", false
	}
	return s.idents.Name(sym.Ident)
}
