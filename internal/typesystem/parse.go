package typesystem

import (
	"fmt"
	"strings"
	"unicode"
)

// ParseType reads the small annotation syntax used by unit configuration:
//
//	U64            constant
//	a              type variable (looked up in vars, minted from vs when new)
//	List a         application
//	(List a)       grouping
//	[Id U64 a, X]  closed tag union
//
// Fresh variables for unknown lowercase names are added to vars.
func ParseType(text string, vs *VarStore, vars map[string]TVar) (Type, error) {
	p := &typeParser{toks: tokenizeType(text), vs: vs, vars: vars}
	t, err := p.application()
	if err != nil {
		return nil, fmt.Errorf("parse type %q: %w", text, err)
	}
	if p.pos != len(p.toks) {
		return nil, fmt.Errorf("parse type %q: unexpected %q", text, p.toks[p.pos])
	}
	return t, nil
}

type typeParser struct {
	toks []string
	pos  int
	vs   *VarStore
	vars map[string]TVar
}

func tokenizeType(s string) []string {
	var toks []string
	var cur strings.Builder
	flush := func() {
		if cur.Len() > 0 {
			toks = append(toks, cur.String())
			cur.Reset()
		}
	}
	for _, r := range s {
		switch {
		case unicode.IsSpace(r):
			flush()
		case strings.ContainsRune("()[],", r):
			flush()
			toks = append(toks, string(r))
		default:
			cur.WriteRune(r)
		}
	}
	flush()
	return toks
}

func (p *typeParser) peek() string {
	if p.pos < len(p.toks) {
		return p.toks[p.pos]
	}
	return ""
}

func (p *typeParser) application() (Type, error) {
	head, err := p.atom()
	if err != nil {
		return nil, err
	}
	var args []Type
	for {
		switch p.peek() {
		case "", ")", "]", ",":
			if len(args) == 0 {
				return head, nil
			}
			return TApp{Constructor: head, Args: args}, nil
		}
		arg, err := p.atom()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
	}
}

func (p *typeParser) atom() (Type, error) {
	tok := p.peek()
	switch tok {
	case "":
		return nil, fmt.Errorf("unexpected end of type")
	case "(":
		p.pos++
		t, err := p.application()
		if err != nil {
			return nil, err
		}
		if p.peek() != ")" {
			return nil, fmt.Errorf("expected )")
		}
		p.pos++
		return t, nil
	case "[":
		p.pos++
		return p.tagUnion()
	case ")", "]", ",":
		return nil, fmt.Errorf("unexpected %q", tok)
	}
	p.pos++
	if unicode.IsUpper([]rune(tok)[0]) {
		return TCon{Name: tok}, nil
	}
	if v, ok := p.vars[tok]; ok {
		return v, nil
	}
	v := p.vs.Fresh()
	p.vars[tok] = v
	return v, nil
}

func (p *typeParser) tagUnion() (Type, error) {
	tags := make(map[string][]Type)
	for p.peek() != "]" {
		name := p.peek()
		if name == "" || !unicode.IsUpper([]rune(name)[0]) {
			return nil, fmt.Errorf("expected tag name, got %q", name)
		}
		p.pos++
		var args []Type
		for p.peek() != "," && p.peek() != "]" {
			arg, err := p.atom()
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
		}
		tags[name] = args
		if p.peek() == "," {
			p.pos++
		}
	}
	p.pos++
	return TTagUnion{Tags: tags}, nil
}
