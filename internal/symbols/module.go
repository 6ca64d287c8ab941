package symbols

import (
	"github.com/google/uuid"
)

// moduleNamespace roots the name-based module ids, so the same module name
// maps to the same ModuleID in every compilation.
var moduleNamespace = uuid.MustParse("6f4b1c2e-8a57-4d0b-9c3e-2f7d5a1e9b40")

// ModuleID identifies a compilation unit. It is comparable and cheap to copy.
type ModuleID struct {
	id uuid.UUID
}

// ModuleIDFor returns the stable id of a named module.
func ModuleIDFor(name string) ModuleID {
	return ModuleID{id: uuid.NewSHA1(moduleNamespace, []byte(name))}
}

// NewAnonymousModuleID returns a fresh id for an unnamed unit (a REPL line, a test snippet).
func NewAnonymousModuleID() ModuleID {
	return ModuleID{id: uuid.New()}
}

// ParseModuleID reads back the String form of a ModuleID.
func ParseModuleID(s string) (ModuleID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return ModuleID{}, err
	}
	return ModuleID{id: id}, nil
}

func (m ModuleID) IsZero() bool {
	return m.id == uuid.Nil
}

func (m ModuleID) String() string {
	return m.id.String()
}

// Short is the first eight hex digits, enough to tell modules apart in dumps.
func (m ModuleID) Short() string {
	return m.id.String()[:8]
}
