package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode"

	"gopkg.in/yaml.v3"

	"github.com/funvibe/patcanon/internal/region"
	"github.com/funvibe/patcanon/internal/typesystem"
)

// Unit describes one compilation unit: the module the patterns live in, the
// names and types already in scope, and the pattern cases to canonicalize.
type Unit struct {
	// Module is the home module name. Symbols minted for the unit belong to it.
	Module string `yaml:"module"`

	// File is the source file name stamped on diagnostics. Defaults to the
	// unit file's base name.
	File string `yaml:"file,omitempty"`

	// Exposed lists the module's public names.
	Exposed []string `yaml:"exposed,omitempty"`

	// Bound are values already in scope before any case runs.
	Bound []BoundName `yaml:"bound,omitempty"`

	// Abilities maps an ability name to its member names. Members are bound
	// in the module scope and registered in the ability store.
	Abilities map[string][]string `yaml:"abilities,omitempty"`

	Opaques []TypeDecl `yaml:"opaques,omitempty"`
	Aliases []TypeDecl `yaml:"aliases,omitempty"`

	Cases []Case `yaml:"patterns"`
}

// BoundName is a pre-bound value.
type BoundName struct {
	Name   string   `yaml:"name"`
	Region []uint32 `yaml:"region,omitempty"`
}

// TypeDecl declares an opaque type or a structural alias:
//
//	- name: Id
//	  vars: [a]
//	  lambda_sets: 1
//	  actual: "[Id U64 a]"
type TypeDecl struct {
	Name       string   `yaml:"name"`
	Vars       []string `yaml:"vars,omitempty"`
	LambdaSets int      `yaml:"lambda_sets,omitempty"`
	Actual     string   `yaml:"actual,omitempty"`
	Region     []uint32 `yaml:"region,omitempty"`
}

// Case is one pattern to canonicalize. Pattern stays a raw node so the
// surface decoder can see line numbers and explicit regions.
type Case struct {
	Name    string    `yaml:"name"`
	Context string    `yaml:"context"`
	Header  bool      `yaml:"header,omitempty"`
	Pattern yaml.Node `yaml:"pattern"`
}

// LoadUnit reads and parses a unit file.
func LoadUnit(path string) (*Unit, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading unit %s: %w", path, err)
	}
	return ParseUnit(data, path)
}

// ParseUnit parses unit content from bytes.
// The path argument is used for error messages and the default file name.
func ParseUnit(data []byte, path string) (*Unit, error) {
	var u Unit
	if err := yaml.Unmarshal(data, &u); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if err := u.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	u.setDefaults(path)
	return &u, nil
}

// Validate checks the unit for semantic errors.
func (u *Unit) Validate() error {
	if u.Module == "" {
		return fmt.Errorf("module is required")
	}
	if len(u.Cases) == 0 {
		return fmt.Errorf("no patterns defined")
	}

	for i, b := range u.Bound {
		if !isValueName(b.Name) {
			return fmt.Errorf("bound[%d]: %q is not a value name", i, b.Name)
		}
		if _, err := parseRegion(b.Region); err != nil {
			return fmt.Errorf("bound[%d]: %w", i, err)
		}
	}

	for _, ability := range sortedKeys(u.Abilities) {
		for j, m := range u.Abilities[ability] {
			if !isValueName(m) {
				return fmt.Errorf("abilities.%s[%d]: %q is not a value name", ability, j, m)
			}
		}
	}

	seenTypes := make(map[string]string)
	check := func(section string, decls []TypeDecl) error {
		for i, d := range decls {
			if !isTypeName(d.Name) {
				return fmt.Errorf("%s[%d]: %q is not a type name", section, i, d.Name)
			}
			if prev, ok := seenTypes[d.Name]; ok {
				return fmt.Errorf("%s[%d]: type %s already declared in %s", section, i, d.Name, prev)
			}
			seenTypes[d.Name] = section
			if d.LambdaSets < 0 {
				return fmt.Errorf("%s[%d]: lambda_sets must not be negative", section, i)
			}
			if _, err := parseRegion(d.Region); err != nil {
				return fmt.Errorf("%s[%d]: %w", section, i, err)
			}
			if _, err := d.Def(typesystem.Opaque, typesystem.NewVarStore()); err != nil {
				return fmt.Errorf("%s[%d]: %w", section, i, err)
			}
		}
		return nil
	}
	if err := check("opaques", u.Opaques); err != nil {
		return err
	}
	if err := check("aliases", u.Aliases); err != nil {
		return err
	}

	seenCases := make(map[string]int)
	for i, c := range u.Cases {
		if c.Name != "" {
			if prev, ok := seenCases[c.Name]; ok {
				return fmt.Errorf("patterns[%d]: name %q already used by patterns[%d]", i, c.Name, prev)
			}
			seenCases[c.Name] = i
		}
		if !IsContextKey(c.Context) {
			return fmt.Errorf("patterns[%d]: unknown context %q", i, c.Context)
		}
		if c.Pattern.Kind == 0 {
			return fmt.Errorf("patterns[%d]: pattern is required", i)
		}
	}
	return nil
}

func (u *Unit) setDefaults(path string) {
	if u.File == "" {
		u.File = filepath.Base(path)
	}
	for i := range u.Cases {
		if u.Cases[i].Name == "" {
			u.Cases[i].Name = fmt.Sprintf("case%d", i+1)
		}
	}
}

// AbilityNames returns the declared abilities in a stable order.
func (u *Unit) AbilityNames() []string {
	return sortedKeys(u.Abilities)
}

// RegionOf returns the declared region of a bound name, or the zero region.
func (b BoundName) RegionOf() region.Region {
	r, _ := parseRegion(b.Region)
	return r
}

// Def builds the type definition for d. Type variables are minted from vs in
// declaration order, then one variable per lambda set.
func (d TypeDecl) Def(kind typesystem.AliasKind, vs *typesystem.VarStore) (typesystem.AliasDef, error) {
	def := typesystem.AliasDef{Name: d.Name, Kind: kind}
	def.Region, _ = parseRegion(d.Region)

	vars := make(map[string]typesystem.TVar, len(d.Vars))
	for _, name := range d.Vars {
		if _, dup := vars[name]; dup {
			return def, fmt.Errorf("type variable %s declared twice", name)
		}
		tv := vs.Fresh()
		vars[name] = tv
		def.TypeVars = append(def.TypeVars, typesystem.NamedVar{Name: name, Var: tv})
	}
	for range d.LambdaSets {
		def.LambdaSetVars = append(def.LambdaSetVars, typesystem.LambdaSet{Type: vs.Fresh()})
	}

	if strings.TrimSpace(d.Actual) != "" {
		actual, err := typesystem.ParseType(d.Actual, vs, vars)
		if err != nil {
			return def, err
		}
		def.Actual = actual
	}
	return def, nil
}

// IsContextKey reports whether key names a pattern context.
func IsContextKey(key string) bool {
	switch key {
	case TopLevelDefKey, DefExprKey, FunctionArgKey, WhenBranchKey:
		return true
	}
	return false
}

func parseRegion(r []uint32) (region.Region, error) {
	switch len(r) {
	case 0:
		return region.Zero(), nil
	case 2:
		if r[1] < r[0] {
			return region.Region{}, fmt.Errorf("region end %d before start %d", r[1], r[0])
		}
		return region.New(r[0], r[1]), nil
	}
	return region.Region{}, fmt.Errorf("region must be [start, end]")
}

func isValueName(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		if i == 0 && !unicode.IsLower(r) {
			return false
		}
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_' {
			return false
		}
	}
	return true
}

func isTypeName(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		if i == 0 && !unicode.IsUpper(r) {
			return false
		}
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

func sortedKeys(m map[string][]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
