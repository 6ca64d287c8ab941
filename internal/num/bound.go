package num

import (
	"fmt"
	"math/big"
)

// IntValue is an integer literal value. Values up to I128's maximum are held
// as signed; larger ones (up to U128's maximum) are marked Unsigned.
type IntValue struct {
	Unsigned bool
	Value    *big.Int
}

var (
	i128Min = I128.Min()
	i128Max = I128.Max()
	u128Max = U128.Max()
)

func newIntValue(v *big.Int) IntValue {
	return IntValue{Unsigned: v.Cmp(i128Max) > 0, Value: v}
}

// Neg returns -v. Only signed values can be negated.
func (v IntValue) Neg() (IntValue, error) {
	if v.Unsigned {
		return IntValue{}, &LiteralError{Kind: TooLarge, Text: "-" + v.String()}
	}
	return IntValue{Value: new(big.Int).Neg(v.Value)}, nil
}

func (v IntValue) String() string {
	if v.Value == nil {
		return "0"
	}
	return v.Value.String()
}

type IntBoundKind int

const (
	IntBoundNone IntBoundKind = iota
	IntBoundExact
	IntBoundAtLeast
)

// IntBound constrains the integer type of a literal.
type IntBound struct {
	Kind  IntBoundKind
	Sign  SignDemand
	Width IntWidth
}

func ExactInt(w IntWidth) IntBound {
	return IntBound{Kind: IntBoundExact, Width: w}
}

func AtLeastInt(sign SignDemand, w IntWidth) IntBound {
	return IntBound{Kind: IntBoundAtLeast, Sign: sign, Width: w}
}

func (b IntBound) String() string {
	switch b.Kind {
	case IntBoundExact:
		return b.Width.String()
	case IntBoundAtLeast:
		return fmt.Sprintf(">=%s(%s)", b.Width, b.Sign)
	}
	return "none"
}

// FloatBound constrains the fractional type of a literal.
type FloatBound struct {
	Exact bool
	Width FloatWidth
}

func ExactFloat(w FloatWidth) FloatBound {
	return FloatBound{Exact: true, Width: w}
}

func (b FloatBound) String() string {
	if b.Exact {
		return b.Width.String()
	}
	return "none"
}

type NumericBoundKind int

const (
	NumBoundNone NumericBoundKind = iota
	NumBoundAtLeastIntOrFloat
)

// NumericBound constrains a literal that may still become an int or a float.
type NumericBound struct {
	Kind  NumericBoundKind
	Sign  SignDemand
	Width IntWidth
}

func (b NumericBound) String() string {
	if b.Kind == NumBoundAtLeastIntOrFloat {
		return fmt.Sprintf(">=%s(%s)|frac", b.Width, b.Sign)
	}
	return "none"
}
