package ast

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/funvibe/patcanon/internal/region"
	"gopkg.in/yaml.v3"
)

// ErrBadNode is returned (wrapped) when a YAML node does not describe a surface tree.
var ErrBadNode = errors.New("malformed surface node")

// Decoder turns YAML documents into located surface trees.
//
// Nodes without an explicit `region: [start, end]` get synthetic, distinct
// regions assigned in document order; composite nodes cover their children.
type Decoder struct {
	cursor uint32
}

func NewDecoder() *Decoder {
	return &Decoder{}
}

// DecodePattern parses a YAML-encoded surface pattern.
func DecodePattern(src []byte) (region.Loc[Pattern], error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(src, &doc); err != nil {
		return region.Loc[Pattern]{}, fmt.Errorf("decode pattern: %w", err)
	}
	return NewDecoder().Pattern(&doc)
}

// DecodeExpr parses a YAML-encoded surface expression.
func DecodeExpr(src []byte) (region.Loc[Expr], error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(src, &doc); err != nil {
		return region.Loc[Expr]{}, fmt.Errorf("decode expression: %w", err)
	}
	return NewDecoder().Expr(&doc)
}

func badNode(n *yaml.Node, format string, args ...interface{}) error {
	return fmt.Errorf("line %d: %s: %w", n.Line, fmt.Sprintf(format, args...), ErrBadNode)
}

func unwrapDocument(n *yaml.Node) *yaml.Node {
	for n != nil && (n.Kind == yaml.DocumentNode || n.Kind == yaml.AliasNode) {
		if n.Kind == yaml.AliasNode {
			n = n.Alias
			continue
		}
		if len(n.Content) == 0 {
			return nil
		}
		n = n.Content[0]
	}
	return n
}

// field returns the value node for key in a mapping, or nil.
func field(n *yaml.Node, key string) *yaml.Node {
	if n.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(n.Content); i += 2 {
		if n.Content[i].Value == key {
			return n.Content[i+1]
		}
	}
	return nil
}

func stringField(n *yaml.Node, key string) string {
	if v := field(n, key); v != nil && v.Kind == yaml.ScalarNode {
		return v.Value
	}
	return ""
}

func (d *Decoder) explicitRegion(n *yaml.Node) (region.Region, bool, error) {
	r := field(n, "region")
	if r == nil {
		return region.Region{}, false, nil
	}
	if r.Kind != yaml.SequenceNode || len(r.Content) != 2 {
		return region.Region{}, false, badNode(r, "region must be [start, end]")
	}
	start, err := strconv.ParseUint(r.Content[0].Value, 10, 32)
	if err != nil {
		return region.Region{}, false, badNode(r, "region start: %v", err)
	}
	end, err := strconv.ParseUint(r.Content[1].Value, 10, 32)
	if err != nil {
		return region.Region{}, false, badNode(r, "region end: %v", err)
	}
	if end < start {
		return region.Region{}, false, badNode(r, "region end before start")
	}
	if uint32(end) >= d.cursor {
		d.cursor = uint32(end) + 1
	}
	return region.New(uint32(start), uint32(end)), true, nil
}

// span finishes a node whose synthetic region started at start.
func (d *Decoder) span(start uint32, width int) region.Region {
	end := d.cursor
	if w := start + uint32(width); w > end {
		end = w
	}
	if end == start {
		end++
	}
	d.cursor = end + 1
	return region.New(start, end)
}

// Pattern decodes a single pattern node.
func (d *Decoder) Pattern(n *yaml.Node) (region.Loc[Pattern], error) {
	n = unwrapDocument(n)
	if n == nil {
		return region.Loc[Pattern]{}, fmt.Errorf("empty document: %w", ErrBadNode)
	}
	explicit, hasRegion, err := d.explicitRegion(n)
	if err != nil {
		return region.Loc[Pattern]{}, err
	}
	start := d.cursor
	p, width, err := d.pattern(n)
	if err != nil {
		return region.Loc[Pattern]{}, err
	}
	if hasRegion {
		return region.At(explicit, p), nil
	}
	return region.At(d.span(start, width), p), nil
}

func (d *Decoder) patterns(n *yaml.Node) ([]region.Loc[Pattern], error) {
	if n == nil {
		return nil, nil
	}
	if n.Kind != yaml.SequenceNode {
		return nil, badNode(n, "expected a list of patterns")
	}
	out := make([]region.Loc[Pattern], 0, len(n.Content))
	for _, item := range n.Content {
		p, err := d.Pattern(item)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

// sugarPattern decodes the scalar shorthand for names.
func sugarPattern(s string) Pattern {
	switch {
	case strings.HasPrefix(s, "_"):
		return &Underscore{Name: strings.TrimPrefix(s, "_")}
	case strings.HasPrefix(s, "@"):
		return &PrivateTag{Name: s}
	case strings.HasPrefix(s, "$"):
		return &OpaqueRef{Name: strings.TrimPrefix(s, "$")}
	}
	if r, _ := utf8.DecodeRuneInString(s); unicode.IsUpper(r) {
		return &GlobalTag{Name: s}
	}
	return &Identifier{Name: s}
}

func (d *Decoder) pattern(n *yaml.Node) (Pattern, int, error) {
	if n.Kind == yaml.ScalarNode {
		return sugarPattern(n.Value), len(n.Value), nil
	}
	if n.Kind != yaml.MappingNode {
		return nil, 0, badNode(n, "pattern must be a scalar or a mapping")
	}
	kind := stringField(n, "kind")
	switch kind {
	case "ident":
		name := stringField(n, "name")
		return &Identifier{Name: name}, len(name), nil
	case "tag":
		name := stringField(n, "name")
		return &GlobalTag{Name: name}, len(name), nil
	case "private_tag":
		name := stringField(n, "name")
		if !strings.HasPrefix(name, "@") {
			name = "@" + name
		}
		return &PrivateTag{Name: name}, len(name), nil
	case "opaque":
		name := strings.TrimPrefix(stringField(n, "name"), "$")
		return &OpaqueRef{Name: name}, len(name) + 1, nil
	case "apply":
		tagNode := field(n, "tag")
		if tagNode == nil {
			return nil, 0, badNode(n, "apply needs a tag")
		}
		tag, err := d.Pattern(tagNode)
		if err != nil {
			return nil, 0, err
		}
		args, err := d.patterns(field(n, "args"))
		if err != nil {
			return nil, 0, err
		}
		return &Apply{Tag: tag, Args: args}, 0, nil
	case "float":
		text := stringField(n, "text")
		return &FloatLiteral{Text: text}, len(text), nil
	case "num":
		text := stringField(n, "text")
		return &NumLiteral{Text: text}, len(text), nil
	case "base":
		base, err := parseBase(n, stringField(n, "base"))
		if err != nil {
			return nil, 0, err
		}
		digits := stringField(n, "digits")
		negative := stringField(n, "negative") == "true"
		return &NonBase10Literal{Digits: digits, Base: base, IsNegative: negative}, len(digits) + 2, nil
	case "str":
		lit, width, err := d.strLiteral(n)
		if err != nil {
			return nil, 0, err
		}
		return &StrLiteralPattern{Literal: lit}, width, nil
	case "char":
		text := stringField(n, "text")
		return &SingleQuote{Text: text}, len(text) + 2, nil
	case "underscore":
		name := stringField(n, "name")
		return &Underscore{Name: name}, len(name) + 1, nil
	case "record":
		fields, err := d.patterns(field(n, "fields"))
		if err != nil {
			return nil, 0, err
		}
		return &RecordDestructure{Fields: fields}, 2, nil
	case "required":
		guardNode := field(n, "guard")
		if guardNode == nil {
			return nil, 0, badNode(n, "required field needs a guard")
		}
		guard, err := d.Pattern(guardNode)
		if err != nil {
			return nil, 0, err
		}
		return &RequiredField{Label: stringField(n, "label"), Guard: guard}, 0, nil
	case "optional":
		defNode := field(n, "default")
		if defNode == nil {
			return nil, 0, badNode(n, "optional field needs a default")
		}
		def, err := d.Expr(defNode)
		if err != nil {
			return nil, 0, err
		}
		return &OptionalField{Label: stringField(n, "label"), Default: def}, 0, nil
	case "space_before", "space_after":
		innerNode := field(n, "inner")
		if innerNode == nil {
			return nil, 0, badNode(n, "%s needs an inner pattern", kind)
		}
		inner, width, err := d.pattern(unwrapDocument(innerNode))
		if err != nil {
			return nil, 0, err
		}
		comments := scalarList(field(n, "comments"))
		if kind == "space_before" {
			return &SpaceBefore{Inner: inner, Comments: comments}, width, nil
		}
		return &SpaceAfter{Inner: inner, Comments: comments}, width, nil
	case "malformed":
		text := stringField(n, "text")
		return &Malformed{Text: text}, len(text), nil
	case "malformed_ident":
		text := stringField(n, "text")
		problem, ok := ParseBadIdent(stringField(n, "problem"))
		if !ok {
			return nil, 0, badNode(n, "unknown identifier problem %q", stringField(n, "problem"))
		}
		return &MalformedIdent{Text: text, Problem: problem}, len(text), nil
	case "qualified":
		mod, ident := stringField(n, "module"), stringField(n, "ident")
		return &QualifiedIdentifier{ModuleName: mod, Ident: ident}, len(mod) + len(ident) + 1, nil
	case "":
		return nil, 0, badNode(n, "pattern mapping without kind")
	default:
		return nil, 0, badNode(n, "unknown pattern kind %q", kind)
	}
}

func parseBase(n *yaml.Node, s string) (Base, error) {
	switch strings.ToLower(s) {
	case "hex", "16", "x":
		return BaseHex, nil
	case "octal", "8", "o":
		return BaseOctal, nil
	case "binary", "2", "b":
		return BaseBinary, nil
	case "decimal", "10":
		return BaseDecimal, nil
	}
	return 0, badNode(n, "unknown base %q", s)
}

func scalarList(n *yaml.Node) []string {
	if n == nil || n.Kind != yaml.SequenceNode {
		return nil
	}
	out := make([]string, 0, len(n.Content))
	for _, c := range n.Content {
		out = append(out, c.Value)
	}
	return out
}

func (d *Decoder) strLiteral(n *yaml.Node) (StrLiteral, int, error) {
	if segs := field(n, "segments"); segs != nil {
		line, width, err := d.segments(segs)
		if err != nil {
			return nil, 0, err
		}
		return &Line{Segments: line}, width, nil
	}
	if lines := field(n, "lines"); lines != nil {
		if lines.Kind != yaml.SequenceNode {
			return nil, 0, badNode(lines, "lines must be a list")
		}
		block := &Block{}
		total := 0
		for _, l := range lines.Content {
			line, width, err := d.segments(l)
			if err != nil {
				return nil, 0, err
			}
			block.Lines = append(block.Lines, line)
			total += width + 1
		}
		return block, total, nil
	}
	text := stringField(n, "text")
	return &PlainLine{Text: text}, len(text) + 2, nil
}

func (d *Decoder) segments(n *yaml.Node) ([]StrSegment, int, error) {
	if n.Kind != yaml.SequenceNode {
		return nil, 0, badNode(n, "segments must be a list")
	}
	var out []StrSegment
	width := 0
	for _, s := range n.Content {
		if s.Kind == yaml.ScalarNode {
			d.cursor += uint32(len(s.Value))
			out = append(out, &Plaintext{Text: s.Value})
			width += len(s.Value)
			continue
		}
		switch {
		case field(s, "escaped") != nil:
			r, _ := utf8.DecodeRuneInString(stringField(s, "escaped"))
			d.cursor += 2
			out = append(out, &EscapedChar{Char: r})
			width += 2
		case field(s, "unicode") != nil:
			digits := stringField(s, "unicode")
			r, ok, err := d.explicitRegion(s)
			if err != nil {
				return nil, 0, err
			}
			if !ok {
				r = d.span(d.cursor, len(digits))
			}
			out = append(out, &Unicode{Digits: region.At(r, digits)})
			width += len(digits) + 4
		case field(s, "interp") != nil:
			expr, err := d.Expr(field(s, "interp"))
			if err != nil {
				return nil, 0, err
			}
			out = append(out, &Interpolated{Expr: expr})
			width += int(expr.Region.Len()) + 3
		default:
			return nil, 0, badNode(s, "unknown string segment")
		}
	}
	return out, width, nil
}

// Expr decodes a single expression node.
func (d *Decoder) Expr(n *yaml.Node) (region.Loc[Expr], error) {
	n = unwrapDocument(n)
	if n == nil {
		return region.Loc[Expr]{}, fmt.Errorf("empty document: %w", ErrBadNode)
	}
	explicit, hasRegion, err := d.explicitRegion(n)
	if err != nil {
		return region.Loc[Expr]{}, err
	}
	start := d.cursor
	e, width, err := d.expr(n)
	if err != nil {
		return region.Loc[Expr]{}, err
	}
	if hasRegion {
		return region.At(explicit, e), nil
	}
	return region.At(d.span(start, width), e), nil
}

func sugarExpr(s string) Expr {
	if _, err := strconv.ParseInt(s, 10, 64); err == nil {
		return &Num{Text: s}
	}
	if _, err := strconv.ParseFloat(s, 64); err == nil {
		return &Float{Text: s}
	}
	if r, _ := utf8.DecodeRuneInString(s); unicode.IsUpper(r) && !strings.Contains(s, ".") {
		return &Tag{Name: s}
	}
	if i := strings.LastIndex(s, "."); i > 0 {
		return &Var{ModuleName: s[:i], Name: s[i+1:]}
	}
	return &Var{Name: s}
}

func (d *Decoder) exprs(n *yaml.Node) ([]region.Loc[Expr], error) {
	if n == nil {
		return nil, nil
	}
	if n.Kind != yaml.SequenceNode {
		return nil, badNode(n, "expected a list of expressions")
	}
	out := make([]region.Loc[Expr], 0, len(n.Content))
	for _, item := range n.Content {
		e, err := d.Expr(item)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}

func (d *Decoder) expr(n *yaml.Node) (Expr, int, error) {
	if n.Kind == yaml.ScalarNode {
		return sugarExpr(n.Value), len(n.Value), nil
	}
	if n.Kind != yaml.MappingNode {
		return nil, 0, badNode(n, "expression must be a scalar or a mapping")
	}
	switch kind := stringField(n, "kind"); kind {
	case "var":
		name := stringField(n, "name")
		return &Var{ModuleName: stringField(n, "module"), Name: name}, len(name), nil
	case "num":
		text := stringField(n, "text")
		return &Num{Text: text}, len(text), nil
	case "float":
		text := stringField(n, "text")
		return &Float{Text: text}, len(text), nil
	case "str":
		lit, width, err := d.strLiteral(n)
		if err != nil {
			return nil, 0, err
		}
		return &Str{Literal: lit}, width, nil
	case "tag":
		name := stringField(n, "name")
		return &Tag{Name: name}, len(name), nil
	case "call":
		fnNode := field(n, "fn")
		if fnNode == nil {
			return nil, 0, badNode(n, "call needs fn")
		}
		fn, err := d.Expr(fnNode)
		if err != nil {
			return nil, 0, err
		}
		args, err := d.exprs(field(n, "args"))
		if err != nil {
			return nil, 0, err
		}
		return &Call{Fn: fn, Args: args}, 0, nil
	case "list":
		items, err := d.exprs(field(n, "items"))
		if err != nil {
			return nil, 0, err
		}
		return &List{Items: items}, 2, nil
	case "record":
		fieldsNode := field(n, "fields")
		rec := &Record{}
		if fieldsNode != nil {
			if fieldsNode.Kind != yaml.MappingNode {
				return nil, 0, badNode(fieldsNode, "record fields must be a mapping")
			}
			for i := 0; i+1 < len(fieldsNode.Content); i += 2 {
				v, err := d.Expr(fieldsNode.Content[i+1])
				if err != nil {
					return nil, 0, err
				}
				rec.Fields = append(rec.Fields, RecordField{Label: fieldsNode.Content[i].Value, Value: v})
			}
		}
		return rec, 2, nil
	case "malformed":
		text := stringField(n, "text")
		return &MalformedExpr{Text: text}, len(text), nil
	default:
		return nil, 0, badNode(n, "unknown expression kind %q", kind)
	}
}
