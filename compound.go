package cssisect

import (
	"github.com/mdoderlein/cssisect/ast"
	"github.com/mdoderlein/cssisect/attrisect"
)

// intersectCompound intersects two compound selectors component-wise (spec.md
// §4.5), reducing shared attribute keys with the attribute intersector.
func intersectCompound(a, b ast.SelectorState) (ast.SelectorState, bool) {
	out := ast.SelectorState{}

	switch {
	case a.Universal():
		out.Type = b.Type
	case b.Universal():
		out.Type = a.Type
	case a.Type != b.Type:
		return ast.SelectorState{}, false
	default:
		out.Type = a.Type
	}

	switch {
	case a.PseudoElement == "":
		out.PseudoElement = b.PseudoElement
	case b.PseudoElement == "":
		out.PseudoElement = a.PseudoElement
	case a.PseudoElement != b.PseudoElement:
		return ast.SelectorState{}, false
	default:
		out.PseudoElement = a.PseudoElement
	}

	out.PseudoClasses = unionPseudoClasses(a.PseudoClasses, b.PseudoClasses)

	attrs, ok := intersectAttributes(a.Attributes, b.Attributes)
	if !ok {
		return ast.SelectorState{}, false
	}
	out.Attributes = attrs

	return out, true
}

func unionPseudoClasses(a, b []ast.PseudoClass) []ast.PseudoClass {
	out := make([]ast.PseudoClass, 0, len(a)+len(b))
	seen := make(map[ast.PseudoClass]bool, len(a)+len(b))
	for _, pc := range a {
		if !seen[pc] {
			seen[pc] = true
			out = append(out, pc)
		}
	}
	for _, pc := range b {
		if !seen[pc] {
			seen[pc] = true
			out = append(out, pc)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// intersectAttributes groups the attribute assertions of both compounds by
// key and reduces each group with the attribute intersector.
func intersectAttributes(a, b []ast.AttributeAssertion) ([]ast.AttributeAssertion, bool) {
	order := make([]string, 0, len(a)+len(b))
	byKey := make(map[string][]ast.AttributeAssertion, len(a)+len(b))
	add := func(assertions []ast.AttributeAssertion) {
		for _, assertion := range assertions {
			if _, ok := byKey[assertion.Key]; !ok {
				order = append(order, assertion.Key)
			}
			byKey[assertion.Key] = append(byKey[assertion.Key], assertion)
		}
	}
	add(a)
	add(b)

	var out []ast.AttributeAssertion
	for _, key := range order {
		reduced, ok := attrisect.Intersect(key, byKey[key])
		if !ok {
			return nil, false
		}
		out = append(out, reduced...)
	}
	return out, true
}
