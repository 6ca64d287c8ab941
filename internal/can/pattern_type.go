package can

import (
	"fmt"

	"github.com/funvibe/patcanon/internal/config"
)

// PatternType is the syntactic position a pattern appears in. It decides
// which pattern forms are legal.
type PatternType int

const (
	TopLevelDef PatternType = iota
	DefExpr
	FunctionArg
	WhenBranch
)

var patternTypeKeys = map[PatternType]string{
	TopLevelDef: config.TopLevelDefKey,
	DefExpr:     config.DefExprKey,
	FunctionArg: config.FunctionArgKey,
	WhenBranch:  config.WhenBranchKey,
}

// Key is the configuration spelling of the pattern type.
func (t PatternType) Key() string {
	return patternTypeKeys[t]
}

func (t PatternType) String() string {
	switch t {
	case TopLevelDef:
		return "top-level definitions"
	case DefExpr:
		return "definitions"
	case FunctionArg:
		return "function arguments"
	case WhenBranch:
		return "when branches"
	}
	return "unknown context"
}

// ParsePatternType reads a configuration key such as "when_branch".
func ParsePatternType(key string) (PatternType, error) {
	for t, k := range patternTypeKeys {
		if k == key {
			return t, nil
		}
	}
	return 0, fmt.Errorf("unknown pattern context %q", key)
}
