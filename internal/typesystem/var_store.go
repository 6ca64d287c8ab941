package typesystem

// VarStore mints fresh type variables. It is owned by a single compilation
// unit and threaded explicitly through canonicalization; it is not safe for
// concurrent use.
type VarStore struct {
	next uint32
}

// NewVarStore creates a store whose first variable is t1.
func NewVarStore() *VarStore {
	return &VarStore{}
}

// NewVarStoreFrom creates a store that continues after the given variable id,
// e.g. when a unit resumes after its builtins were seeded.
func NewVarStoreFrom(last uint32) *VarStore {
	return &VarStore{next: last}
}

// Fresh generates a fresh type variable with a unique id.
func (vs *VarStore) Fresh() TVar {
	vs.next++
	return TVar{ID: vs.next}
}

// Peek returns the id of the last minted variable (0 if none).
func (vs *VarStore) Peek() uint32 {
	return vs.next
}
