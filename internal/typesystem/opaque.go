package typesystem

import "github.com/funvibe/patcanon/internal/region"

// LambdaSet is the placeholder for an inferred set of closures; here it is
// only ever a variable to be freshened.
type LambdaSet struct {
	Type Type
}

// NamedVar is a named, universally-quantified type parameter (the `a` in `Id a := ...`).
type NamedVar struct {
	Name string
	Var  TVar
}

// TypeArg pairs a type parameter name with the type it is instantiated to at one use site.
type TypeArg struct {
	Name string
	Type Type
}

// AliasKind distinguishes structural aliases from opaque types.
type AliasKind int

const (
	Structural AliasKind = iota
	Opaque
)

func (k AliasKind) String() string {
	if k == Opaque {
		return "opaque"
	}
	return "structural"
}

// AliasDef is a type definition registered in scope. Opaque definitions are
// the ones an `$Name arg` pattern may unwrap.
type AliasDef struct {
	Name          string
	Kind          AliasKind
	TypeVars      []NamedVar
	LambdaSetVars []LambdaSet
	Actual        Type
	Region        region.Region
}

// FreshenOpaque instantiates every quantified variable and lambda-set
// placeholder of def with fresh variables, so that each use site gets
// independent type variables. The returned specialized type is def.Actual
// with the substitution applied.
func FreshenOpaque(vs *VarStore, def AliasDef) ([]TypeArg, []LambdaSet, Type) {
	subst := make(Subst, len(def.TypeVars)+len(def.LambdaSetVars))

	typeArgs := make([]TypeArg, 0, len(def.TypeVars))
	for _, nv := range def.TypeVars {
		fresh := vs.Fresh()
		subst[nv.Var] = fresh
		typeArgs = append(typeArgs, TypeArg{Name: nv.Name, Type: fresh})
	}

	lambdaSets := make([]LambdaSet, 0, len(def.LambdaSetVars))
	for _, ls := range def.LambdaSetVars {
		fresh := vs.Fresh()
		if tv, ok := ls.Type.(TVar); ok {
			subst[tv] = fresh
		}
		lambdaSets = append(lambdaSets, LambdaSet{Type: fresh})
	}

	var specialized Type
	if def.Actual != nil {
		specialized = def.Actual.Apply(subst)
	}
	return typeArgs, lambdaSets, specialized
}
