package can

import (
	"strconv"
	"unicode/utf8"
)

// unescapeChar maps the character after a backslash to the character it denotes.
func unescapeChar(c rune) rune {
	switch c {
	case 'n':
		return '\n'
	case 't':
		return '\t'
	case 'r':
		return '\r'
	}
	// \\, \", \' and \$ stand for themselves.
	return c
}

// decodeUnicode reads the hex digits of a \u(...) escape.
func decodeUnicode(digits string) (rune, bool) {
	if len(digits) == 0 || len(digits) > 6 {
		return 0, false
	}
	v, err := strconv.ParseUint(digits, 16, 32)
	if err != nil {
		return 0, false
	}
	r := rune(v)
	if !utf8.ValidRune(r) {
		return 0, false
	}
	return r, true
}

type charProblem int

const (
	charOK charProblem = iota
	charEmpty
	charMultiple
	charBadEscape
)

// decodeCharLiteral decodes the text between single quotes. It reports how
// many characters the text stood for when that is not exactly one.
func decodeCharLiteral(text string) (rune, int, charProblem) {
	var decoded []rune
	runes := []rune(text)
	for i := 0; i < len(runes); i++ {
		if runes[i] != '\\' || i+1 == len(runes) {
			decoded = append(decoded, runes[i])
			continue
		}
		i++
		if runes[i] != 'u' || i+1 == len(runes) || runes[i+1] != '(' {
			decoded = append(decoded, unescapeChar(runes[i]))
			continue
		}
		end := i + 2
		for end < len(runes) && runes[end] != ')' {
			end++
		}
		if end == len(runes) {
			return 0, 0, charBadEscape
		}
		r, ok := decodeUnicode(string(runes[i+2 : end]))
		if !ok {
			return 0, 0, charBadEscape
		}
		decoded = append(decoded, r)
		i = end
	}
	switch len(decoded) {
	case 0:
		return 0, 0, charEmpty
	case 1:
		return decoded[0], 1, charOK
	}
	return 0, len(decoded), charMultiple
}
