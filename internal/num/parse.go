package num

import (
	"math/big"
	"strconv"
	"strings"

	"github.com/funvibe/patcanon/internal/ast"
)

type ParsedKind int

const (
	UnknownNum ParsedKind = iota
	Int
	Float
)

// ParsedNum is the classification of a decimal literal. Only the fields for
// its Kind are meaningful.
type ParsedNum struct {
	Kind       ParsedKind
	Int        IntValue
	NumBound   NumericBound
	IntBound   IntBound
	Float      float64
	FloatBound FloatBound
}

var intSuffixes = map[string]IntWidth{
	"u8": U8, "u16": U16, "u32": U32, "u64": U64, "u128": U128,
	"i8": I8, "i16": I16, "i32": I32, "i64": I64, "i128": I128,
	"nat": Nat,
}

var floatSuffixes = map[string]FloatWidth{
	"dec": Dec, "f32": F32, "f64": F64,
}

// splitSuffix separates a trailing width suffix from literal text.
func splitSuffix(text string, allowFloat bool) (body, suffix string) {
	best := ""
	for s := range intSuffixes {
		if strings.HasSuffix(text, s) && len(s) > len(best) {
			best = s
		}
	}
	if allowFloat {
		for s := range floatSuffixes {
			if strings.HasSuffix(text, s) && len(s) > len(best) {
				best = s
			}
		}
	}
	return text[:len(text)-len(best)], best
}

func isFloatText(body string) bool {
	return strings.ContainsAny(body, ".eE")
}

// FinishParsingNum classifies decimal literal text such as "42", "-7i8",
// "1_000" or "3.5f32".
func FinishParsingNum(text string) (ParsedNum, error) {
	body, suffix := splitSuffix(text, true)
	if isFloatText(body) {
		if _, ok := intSuffixes[suffix]; ok {
			return ParsedNum{}, &LiteralError{Kind: BadSuffix, Text: text}
		}
		_, f, bound, err := FinishParsingFloat(text)
		if err != nil {
			return ParsedNum{}, err
		}
		return ParsedNum{Kind: Float, Float: f, FloatBound: bound}, nil
	}

	v, err := parseDigits(text, body, 10)
	if err != nil {
		return ParsedNum{}, err
	}

	if fw, ok := floatSuffixes[suffix]; ok {
		f, _ := new(big.Float).SetInt(v).Float64()
		return ParsedNum{Kind: Float, Float: f, FloatBound: ExactFloat(fw)}, nil
	}
	if iw, ok := intSuffixes[suffix]; ok {
		if !iw.Fits(v) {
			return ParsedNum{}, &LiteralError{Kind: TooLarge, Text: text}
		}
		return ParsedNum{Kind: Int, Int: newIntValue(v), IntBound: ExactInt(iw)}, nil
	}
	sign, width := lowerBound(v)
	return ParsedNum{
		Kind:     UnknownNum,
		Int:      newIntValue(v),
		NumBound: NumericBound{Kind: NumBoundAtLeastIntOrFloat, Sign: sign, Width: width},
	}, nil
}

// FinishParsingFloat classifies fractional literal text. The returned text
// has the width suffix removed.
func FinishParsingFloat(text string) (string, float64, FloatBound, error) {
	body, suffix := splitSuffix(text, true)
	if _, ok := intSuffixes[suffix]; ok {
		return "", 0, FloatBound{}, &LiteralError{Kind: BadSuffix, Text: text}
	}
	clean := strings.ReplaceAll(body, "_", "")
	if clean == "" || clean == "-" {
		return "", 0, FloatBound{}, &LiteralError{Kind: Empty, Text: text}
	}
	for _, r := range clean {
		if !strings.ContainsRune("0123456789.eE+-", r) {
			return "", 0, FloatBound{}, &LiteralError{Kind: InvalidFloat, Text: text}
		}
	}
	f, err := strconv.ParseFloat(clean, 64)
	if err != nil {
		return "", 0, FloatBound{}, &LiteralError{Kind: InvalidFloat, Text: text, Err: err}
	}
	bound := FloatBound{}
	if fw, ok := floatSuffixes[suffix]; ok {
		bound = ExactFloat(fw)
	}
	return body, f, bound, nil
}

// FinishParsingBase classifies the digits of a hex, octal or binary literal
// (the text after the 0x/0o/0b prefix). The magnitude is returned
// unnegated; isNegative only affects the bound. A magnitude above I128's
// maximum comes back Unsigned, which callers must not negate.
func FinishParsingBase(digits string, base ast.Base, isNegative bool) (IntValue, IntBound, error) {
	body, suffix := splitSuffix(digits, false)
	v, err := parseDigits(digits, body, base.Radix())
	if err != nil {
		return IntValue{}, IntBound{}, err
	}
	if v.Sign() < 0 {
		return IntValue{}, IntBound{}, &LiteralError{Kind: InvalidDigit, Text: digits}
	}

	if iw, ok := intSuffixes[suffix]; ok {
		signed := v
		if isNegative {
			signed = new(big.Int).Neg(v)
		}
		if !iw.Fits(signed) {
			return IntValue{}, IntBound{}, &LiteralError{Kind: TooLarge, Text: digits}
		}
		return newIntValue(v), ExactInt(iw), nil
	}

	signed := v
	if isNegative {
		signed = new(big.Int).Neg(v)
	}
	sign, width := lowerBound(signed)
	return newIntValue(v), AtLeastInt(sign, width), nil
}

// parseDigits reads an optionally negative run of digits with `_` separators.
func parseDigits(text, body string, radix int) (*big.Int, error) {
	clean := strings.ReplaceAll(body, "_", "")
	neg := strings.HasPrefix(clean, "-")
	digits := strings.TrimPrefix(clean, "-")
	if digits == "" {
		return nil, &LiteralError{Kind: Empty, Text: text}
	}
	if strings.ContainsAny(digits[:1], "+-") {
		return nil, &LiteralError{Kind: InvalidDigit, Text: text}
	}
	v, ok := new(big.Int).SetString(digits, radix)
	if !ok {
		return nil, &LiteralError{Kind: InvalidDigit, Text: text}
	}
	if neg {
		v.Neg(v)
	}
	if v.Cmp(i128Min) < 0 || v.Cmp(u128Max) > 0 {
		return nil, &LiteralError{Kind: TooLarge, Text: text}
	}
	return v, nil
}
