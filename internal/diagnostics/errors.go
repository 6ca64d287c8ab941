package diagnostics

import (
	"fmt"

	"github.com/funvibe/patcanon/internal/region"
)

type ErrorCode string

// Canonicalization errors (C).
const (
	ErrC001 ErrorCode = "C001" // shadowing conflict
	ErrC002 ErrorCode = "C002" // pattern not allowed in this context
	ErrC003 ErrorCode = "C003" // malformed numeric literal
	ErrC004 ErrorCode = "C004" // malformed char literal
	ErrC005 ErrorCode = "C005" // opaque reference not applied
	ErrC006 ErrorCode = "C006" // opaque type not in scope
	ErrC007 ErrorCode = "C007" // opaque applied to more than one argument
	ErrC008 ErrorCode = "C008" // underscore in definition
	ErrC009 ErrorCode = "C009" // interpolation in pattern
	ErrC010 ErrorCode = "C010" // unrecognized identifier syntax
	ErrC011 ErrorCode = "C011" // lookup failed
	ErrC012 ErrorCode = "C012" // invalid unicode escape
)

var errorTemplates = map[ErrorCode]string{
	ErrC001: "%s shadows an existing binding",
	ErrC002: "%s patterns are not allowed in %s",
	ErrC003: "malformed %s literal",
	ErrC004: "char literal must contain exactly one character, found %s",
	ErrC005: "opaque %s must be applied to exactly one argument",
	ErrC006: "opaque type %s is not in scope",
	ErrC007: "opaque %s is applied to %d arguments, expected exactly one",
	ErrC008: "underscore pattern is not allowed in %s",
	ErrC009: "string interpolation is not allowed in patterns",
	ErrC010: "unrecognized identifier syntax: %s",
	ErrC011: "%s is not defined",
	ErrC012: "invalid unicode escape \\u(%s)",
}

// Title is the short name of the problem class, used by renderers and storage.
func (c ErrorCode) Title() string {
	switch c {
	case ErrC001:
		return "shadowing"
	case ErrC002:
		return "unsupported pattern"
	case ErrC003:
		return "malformed literal"
	case ErrC004:
		return "malformed char"
	case ErrC005:
		return "opaque not applied"
	case ErrC006:
		return "opaque not in scope"
	case ErrC007:
		return "opaque applied to multiple args"
	case ErrC008:
		return "underscore in definition"
	case ErrC009:
		return "interpolation in pattern"
	case ErrC010:
		return "unrecognized identifier"
	case ErrC011:
		return "lookup failed"
	case ErrC012:
		return "invalid unicode escape"
	}
	return "unknown"
}

type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
)

func (s Severity) String() string {
	if s == SeverityWarning {
		return "warning"
	}
	return "error"
}

// DiagnosticError is one reported problem with its location.
type DiagnosticError struct {
	Code     ErrorCode
	Region   region.Region
	File     string
	Severity Severity
	Args     []interface{}
	// OriginalRegion points at the earlier binding for shadowing problems.
	OriginalRegion *region.Region
}

func NewError(code ErrorCode, r region.Region, args ...interface{}) *DiagnosticError {
	return &DiagnosticError{
		Code:     code,
		Region:   r,
		Severity: SeverityError,
		Args:     args,
	}
}

func NewWarning(code ErrorCode, r region.Region, args ...interface{}) *DiagnosticError {
	e := NewError(code, r, args...)
	e.Severity = SeverityWarning
	return e
}

// WithOriginal attaches the region of the binding a shadow collided with.
func (e *DiagnosticError) WithOriginal(r region.Region) *DiagnosticError {
	e.OriginalRegion = &r
	return e
}

// Message renders the code's template with the error's arguments.
func (e *DiagnosticError) Message() string {
	tmpl, ok := errorTemplates[e.Code]
	if !ok {
		return fmt.Sprint(e.Args...)
	}
	return fmt.Sprintf(tmpl, e.Args...)
}

func (e *DiagnosticError) Error() string {
	loc := e.Region.String()
	if e.File != "" {
		loc = e.File + loc
	}
	msg := fmt.Sprintf("%s[%s] at %s: %s", e.Severity, e.Code, loc, e.Message())
	if e.OriginalRegion != nil {
		msg += fmt.Sprintf(" (first bound at %s)", e.OriginalRegion)
	}
	return msg
}
