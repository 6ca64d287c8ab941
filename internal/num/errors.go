package num

import "fmt"

type ErrorKind int

const (
	InvalidDigit ErrorKind = iota
	TooLarge
	Empty
	BadSuffix
	InvalidFloat
)

func (k ErrorKind) String() string {
	switch k {
	case InvalidDigit:
		return "invalid digit"
	case TooLarge:
		return "too large"
	case Empty:
		return "empty literal"
	case BadSuffix:
		return "bad suffix"
	case InvalidFloat:
		return "invalid float"
	}
	return "unknown"
}

// LiteralError describes why literal text could not be classified.
type LiteralError struct {
	Kind ErrorKind
	Text string
	Err  error
}

func (e *LiteralError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("literal %q: %s: %v", e.Text, e.Kind, e.Err)
	}
	return fmt.Sprintf("literal %q: %s", e.Text, e.Kind)
}

func (e *LiteralError) Unwrap() error {
	return e.Err
}
