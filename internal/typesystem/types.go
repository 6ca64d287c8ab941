package typesystem

import (
	"fmt"
	"sort"
	"strings"
)

// Type is the interface for all types in our system.
type Type interface {
	String() string
	Apply(Subst) Type
	FreeTypeVariables() []TVar
}

// TVar represents a type variable placeholder, resolved later by inference.
type TVar struct {
	ID uint32
}

func (t TVar) String() string {
	return fmt.Sprintf("t%d", t.ID)
}

func (t TVar) Apply(s Subst) Type {
	if replacement, ok := s[t]; ok {
		// Substitutions built here never chain, so a single lookup is enough.
		return replacement
	}
	return t
}

func (t TVar) FreeTypeVariables() []TVar {
	return []TVar{t}
}

// TCon is a named type constant or constructor (Str, U64, List).
type TCon struct {
	Name string
}

func (t TCon) String() string            { return t.Name }
func (t TCon) Apply(Subst) Type          { return t }
func (t TCon) FreeTypeVariables() []TVar { return nil }

// TApp is a type constructor applied to arguments (List a).
type TApp struct {
	Constructor Type
	Args        []Type
}

func (t TApp) String() string {
	parts := make([]string, 0, len(t.Args)+1)
	parts = append(parts, t.Constructor.String())
	for _, a := range t.Args {
		parts = append(parts, wrap(a))
	}
	return strings.Join(parts, " ")
}

func (t TApp) Apply(s Subst) Type {
	args := make([]Type, len(t.Args))
	for i, a := range t.Args {
		args[i] = a.Apply(s)
	}
	return TApp{Constructor: t.Constructor.Apply(s), Args: args}
}

func (t TApp) FreeTypeVariables() []TVar {
	vars := t.Constructor.FreeTypeVariables()
	for _, a := range t.Args {
		vars = append(vars, a.FreeTypeVariables()...)
	}
	return uniqueTVars(vars)
}

// TFunc is a function type; LambdaSet is the closure set placeholder.
type TFunc struct {
	Params     []Type
	ReturnType Type
	LambdaSet  Type
}

func (t TFunc) String() string {
	params := make([]string, len(t.Params))
	for i, p := range t.Params {
		params[i] = wrap(p)
	}
	arrow := "->"
	if t.LambdaSet != nil {
		arrow = "-" + t.LambdaSet.String() + "->"
	}
	return fmt.Sprintf("%s %s %s", strings.Join(params, ", "), arrow, t.ReturnType.String())
}

func (t TFunc) Apply(s Subst) Type {
	params := make([]Type, len(t.Params))
	for i, p := range t.Params {
		params[i] = p.Apply(s)
	}
	var ls Type
	if t.LambdaSet != nil {
		ls = t.LambdaSet.Apply(s)
	}
	return TFunc{Params: params, ReturnType: t.ReturnType.Apply(s), LambdaSet: ls}
}

func (t TFunc) FreeTypeVariables() []TVar {
	var vars []TVar
	for _, p := range t.Params {
		vars = append(vars, p.FreeTypeVariables()...)
	}
	vars = append(vars, t.ReturnType.FreeTypeVariables()...)
	if t.LambdaSet != nil {
		vars = append(vars, t.LambdaSet.FreeTypeVariables()...)
	}
	return uniqueTVars(vars)
}

// TRecord is a record type with an optional extension variable.
type TRecord struct {
	Fields map[string]Type
	Ext    Type
}

func (t TRecord) String() string {
	keys := sortedKeys(t.Fields)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s : %s", k, t.Fields[k].String())
	}
	s := "{ " + strings.Join(parts, ", ") + " }"
	if t.Ext != nil {
		s += t.Ext.String()
	}
	return s
}

func (t TRecord) Apply(s Subst) Type {
	fields := make(map[string]Type, len(t.Fields))
	for k, v := range t.Fields {
		fields[k] = v.Apply(s)
	}
	var ext Type
	if t.Ext != nil {
		ext = t.Ext.Apply(s)
	}
	return TRecord{Fields: fields, Ext: ext}
}

func (t TRecord) FreeTypeVariables() []TVar {
	var vars []TVar
	for _, k := range sortedKeys(t.Fields) {
		vars = append(vars, t.Fields[k].FreeTypeVariables()...)
	}
	if t.Ext != nil {
		vars = append(vars, t.Ext.FreeTypeVariables()...)
	}
	return uniqueTVars(vars)
}

// TTagUnion is a tag union [Foo a, Bar]ext.
type TTagUnion struct {
	Tags map[string][]Type
	Ext  Type
}

func (t TTagUnion) String() string {
	keys := make([]string, 0, len(t.Tags))
	for k := range t.Tags {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		args := []string{k}
		for _, a := range t.Tags[k] {
			args = append(args, wrap(a))
		}
		parts[i] = strings.Join(args, " ")
	}
	s := "[ " + strings.Join(parts, ", ") + " ]"
	if t.Ext != nil {
		s += t.Ext.String()
	}
	return s
}

func (t TTagUnion) Apply(s Subst) Type {
	tags := make(map[string][]Type, len(t.Tags))
	for k, args := range t.Tags {
		newArgs := make([]Type, len(args))
		for i, a := range args {
			newArgs[i] = a.Apply(s)
		}
		tags[k] = newArgs
	}
	var ext Type
	if t.Ext != nil {
		ext = t.Ext.Apply(s)
	}
	return TTagUnion{Tags: tags, Ext: ext}
}

func (t TTagUnion) FreeTypeVariables() []TVar {
	keys := make([]string, 0, len(t.Tags))
	for k := range t.Tags {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var vars []TVar
	for _, k := range keys {
		for _, a := range t.Tags[k] {
			vars = append(vars, a.FreeTypeVariables()...)
		}
	}
	if t.Ext != nil {
		vars = append(vars, t.Ext.FreeTypeVariables()...)
	}
	return uniqueTVars(vars)
}

// Subst maps type variables to their replacements.
type Subst map[TVar]Type

// Compose returns s1 after s2: applying the result equals applying s2 then s1.
func (s1 Subst) Compose(s2 Subst) Subst {
	out := make(Subst, len(s1)+len(s2))
	for k, v := range s2 {
		out[k] = v.Apply(s1)
	}
	for k, v := range s1 {
		if _, ok := out[k]; !ok {
			out[k] = v
		}
	}
	return out
}

func uniqueTVars(vars []TVar) []TVar {
	seen := make(map[TVar]bool, len(vars))
	out := vars[:0:0]
	for _, v := range vars {
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	return out
}

func sortedKeys(m map[string]Type) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func wrap(t Type) string {
	switch t.(type) {
	case TApp, TFunc:
		return "(" + t.String() + ")"
	}
	return t.String()
}
