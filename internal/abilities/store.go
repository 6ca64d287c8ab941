// Package abilities holds the ability-member registry consulted when a
// definition header rebinds a member name.
package abilities

import (
	"sort"

	"github.com/funvibe/patcanon/internal/symbols"
)

// Store maps ability members to the ability that declares them. It is filled
// while loading a unit and only read during canonicalization.
type Store struct {
	memberOf map[symbols.Symbol]symbols.Symbol
	members  map[symbols.Symbol][]symbols.Symbol
}

func NewStore() *Store {
	return &Store{
		memberOf: make(map[symbols.Symbol]symbols.Symbol),
		members:  make(map[symbols.Symbol][]symbols.Symbol),
	}
}

// RegisterMember declares member as part of ability. Registering the same
// member twice is a no-op.
func (s *Store) RegisterMember(ability, member symbols.Symbol) {
	if _, ok := s.memberOf[member]; ok {
		return
	}
	s.memberOf[member] = ability
	s.members[ability] = append(s.members[ability], member)
}

func (s *Store) IsAbilityMember(sym symbols.Symbol) bool {
	if s == nil {
		return false
	}
	_, ok := s.memberOf[sym]
	return ok
}

// AbilityOf returns the ability declaring member.
func (s *Store) AbilityOf(member symbols.Symbol) (symbols.Symbol, bool) {
	ability, ok := s.memberOf[member]
	return ability, ok
}

// Members returns the members of ability in id order.
func (s *Store) Members(ability symbols.Symbol) []symbols.Symbol {
	out := append([]symbols.Symbol(nil), s.members[ability]...)
	sort.Slice(out, func(i, j int) bool { return out[i].Compare(out[j]) < 0 })
	return out
}

func (s *Store) Len() int {
	return len(s.memberOf)
}
