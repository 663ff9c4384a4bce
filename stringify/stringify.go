// Package stringify renders the ast data model back to canonical CSS text
// (spec.md §4.7).
package stringify

import (
	"strconv"
	"strings"

	"github.com/mdoderlein/cssisect/ast"
)

// Union renders a full comma-separated selector list.
func Union(u ast.Union) string {
	parts := make([]string, len(u))
	for i, chain := range u {
		parts[i] = Chain(chain)
	}
	return strings.Join(parts, ", ")
}

// Chain renders a single combinator chain, left to right. Combinator on
// entry i describes the relation from entry i to entry i+1 (ast.Chain), so
// the separator printed before entry i comes from entry i-1's Combinator.
func Chain(c ast.Chain) string {
	var b strings.Builder
	for i, entry := range c {
		if i > 0 {
			switch c[i-1].Combinator {
			case ast.CombinatorChild:
				b.WriteString(" > ")
			default:
				b.WriteString(" ")
			}
		}
		b.WriteString(SiblingGroup(entry.Group))
	}
	return b.String()
}

// SiblingGroup renders a sibling group, members joined by " ~ ".
func SiblingGroup(g ast.SiblingGroup) string {
	parts := make([]string, len(g))
	for i, s := range g {
		parts[i] = Compound(s)
	}
	return strings.Join(parts, " ~ ")
}

// Compound renders a single SelectorState in canonical component order:
// type, ::pseudo-element, .class*, [attr]*, :pseudo-class*, #id*.
func Compound(s ast.SelectorState) string {
	var b strings.Builder

	if s.Type != "" {
		b.WriteString(s.Type)
	}
	if s.PseudoElement != "" {
		b.WriteString("::")
		b.WriteString(s.PseudoElement)
	}

	var classes, ids []string
	var attrs []ast.AttributeAssertion
	for _, a := range s.Attributes {
		switch {
		case a.Key == "class" && a.Operator == ast.AttrInclude && a.CaseSensitive:
			classes = append(classes, a.Value)
		case a.Key == "id" && a.Operator == ast.AttrEquals && a.CaseSensitive:
			ids = append(ids, a.Value)
		default:
			attrs = append(attrs, a)
		}
	}

	for _, c := range classes {
		b.WriteString(".")
		b.WriteString(c)
	}
	for _, a := range attrs {
		b.WriteString(Attribute(a))
	}
	for _, pc := range s.PseudoClasses {
		b.WriteString(":")
		b.WriteString(pc.Name)
		if pc.Argument != "" {
			b.WriteString("(")
			b.WriteString(pc.Argument)
			b.WriteString(")")
		}
	}
	for _, id := range ids {
		b.WriteString("#")
		b.WriteString(id)
	}

	out := b.String()
	if out == "" {
		return "*"
	}
	return out
}

// Attribute renders a single attribute assertion as "[k]" or "[k op v]" /
// "[k op v i]", quoting v so it round-trips through the tokenizer.
func Attribute(a ast.AttributeAssertion) string {
	if a.Operator == ast.AttrExists {
		return "[" + a.Key + "]"
	}
	var b strings.Builder
	b.WriteString("[")
	b.WriteString(a.Key)
	b.WriteString(a.Operator.String())
	b.WriteString(quoteValue(a.Value))
	if !a.CaseSensitive {
		b.WriteString(" i")
	}
	b.WriteString("]")
	return b.String()
}

// quoteValue chooses the narrowest quoting that still round-trips: unquoted
// when safe, single-quoted, or double-quoted when the value itself contains
// a single quote.
func quoteValue(v string) string {
	if isSafeUnquoted(v) {
		return v
	}
	if !strings.ContainsRune(v, '\'') {
		return "'" + v + "'"
	}
	return strconv.Quote(v)
}

func isSafeUnquoted(v string) bool {
	if v == "" {
		return false
	}
	for i, r := range v {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
		case r > 127:
			// non-ASCII identifiers are legal CSS but not worth the extra
			// escaping rules here; quote defensively.
			return false
		default:
			return false
		}
		if i == 0 && v[0] >= '0' && v[0] <= '9' {
			return false
		}
	}
	return true
}
