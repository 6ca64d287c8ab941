package symbols

// IdentID is a module-local identifier id.
type IdentID uint32

// IdentIDs is the identifier interning table of one module. Every binding site
// gets its own id (Add); names that must be stable across uses, such as
// private tags and type names, are interned (GetOrInsert).
type IdentIDs struct {
	byName map[string]IdentID
	names  []string
}

func NewIdentIDs() *IdentIDs {
	return &IdentIDs{byName: make(map[string]IdentID)}
}

// Add always allocates a new id for name. Later Get calls see the newest id.
func (ids *IdentIDs) Add(name string) IdentID {
	id := IdentID(len(ids.names))
	ids.names = append(ids.names, name)
	ids.byName[name] = id
	return id
}

// GetOrInsert returns the existing id for name, allocating one if needed.
func (ids *IdentIDs) GetOrInsert(name string) IdentID {
	if id, ok := ids.byName[name]; ok {
		return id
	}
	return ids.Add(name)
}

func (ids *IdentIDs) Get(name string) (IdentID, bool) {
	id, ok := ids.byName[name]
	return id, ok
}

// Name returns the identifier text for id.
func (ids *IdentIDs) Name(id IdentID) (string, bool) {
	if int(id) >= len(ids.names) {
		return "", false
	}
	return ids.names[id], true
}

func (ids *IdentIDs) Len() int {
	return len(ids.names)
}
