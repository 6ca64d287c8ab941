// Package num classifies numeric literal text into typed values together with
// the width bounds later used to pick a numeric type.
package num

import "math/big"

type IntWidth int

const (
	U8 IntWidth = iota
	U16
	U32
	U64
	U128
	I8
	I16
	I32
	I64
	I128
	Nat
)

var intWidthNames = map[IntWidth]string{
	U8: "U8", U16: "U16", U32: "U32", U64: "U64", U128: "U128",
	I8: "I8", I16: "I16", I32: "I32", I64: "I64", I128: "I128",
	Nat: "Nat",
}

func (w IntWidth) String() string {
	if name, ok := intWidthNames[w]; ok {
		return name
	}
	return "?"
}

func (w IntWidth) Signed() bool {
	return w >= I8 && w <= I128
}

func (w IntWidth) Bits() uint {
	switch w {
	case U8, I8:
		return 8
	case U16, I16:
		return 16
	case U32, I32:
		return 32
	case U64, I64, Nat:
		return 64
	}
	return 128
}

// Min is the smallest value representable at this width.
func (w IntWidth) Min() *big.Int {
	if !w.Signed() {
		return new(big.Int)
	}
	return new(big.Int).Neg(new(big.Int).Lsh(big.NewInt(1), w.Bits()-1))
}

// Max is the largest value representable at this width.
func (w IntWidth) Max() *big.Int {
	bits := w.Bits()
	if w.Signed() {
		bits--
	}
	max := new(big.Int).Lsh(big.NewInt(1), bits)
	return max.Sub(max, big.NewInt(1))
}

// Fits reports whether v lies within the width's range.
func (w IntWidth) Fits(v *big.Int) bool {
	return v.Cmp(w.Min()) >= 0 && v.Cmp(w.Max()) <= 0
}

type FloatWidth int

const (
	Dec FloatWidth = iota
	F32
	F64
)

func (w FloatWidth) String() string {
	switch w {
	case Dec:
		return "Dec"
	case F32:
		return "F32"
	case F64:
		return "F64"
	}
	return "?"
}

// SignDemand records whether a literal needs a signed type.
type SignDemand int

const (
	NoDemand SignDemand = iota
	Signed
)

func (s SignDemand) String() string {
	if s == Signed {
		return "signed"
	}
	return "any"
}

var (
	unsignedLadder = []IntWidth{U8, U16, U32, U64, U128}
	signedLadder   = []IntWidth{I8, I16, I32, I64, I128}
)

// lowerBound picks the narrowest width holding v: unsigned widths for
// non-negative values, signed widths otherwise.
func lowerBound(v *big.Int) (SignDemand, IntWidth) {
	if v.Sign() < 0 {
		for _, w := range signedLadder {
			if w.Fits(v) {
				return Signed, w
			}
		}
		return Signed, I128
	}
	for _, w := range unsignedLadder {
		if w.Fits(v) {
			return NoDemand, w
		}
	}
	return NoDemand, U128
}
