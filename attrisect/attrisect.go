// Package attrisect implements the attribute intersector (spec.md §4.4): the
// hardest subsystem of cssisect. Given one or more attribute assertions that
// share the same key, it returns a minimal equivalent conjunction, or
// reports that the conjunction is unsatisfiable.
package attrisect

import (
	"strings"

	"github.com/mdoderlein/cssisect/ast"
)

// Intersect reduces a list of AttributeAssertions that all share the same
// Key to an equivalent minimal conjunction, or (nil, false) if the
// conjunction can never be satisfied. The input order does not affect the
// resulting set of constraints, only (when several representatives are
// equivalent) which literal casing survives in the output.
func Intersect(key string, in []ast.AttributeAssertion) ([]ast.AttributeAssertion, bool) {
	if len(in) == 0 {
		return nil, true
	}

	// (a) Existence elimination.
	assertions := dropRedundantExistence(in)
	if len(assertions) == 0 {
		return []ast.AttributeAssertion{{Key: key, Operator: ast.AttrExists}}, true
	}
	if allExistence(assertions) {
		return []ast.AttributeAssertion{assertions[0]}, true
	}

	st := newState(key)
	for _, a := range assertions {
		switch a.Operator {
		case ast.AttrEquals:
			if !st.addEquals(a) {
				return nil, false
			}
		case ast.AttrInclude:
			st.addToken(a)
		case ast.AttrDash:
			if !st.addAnchor(&st.pipedSensitive, &st.pipedInsensitive, pipedPred, a) {
				return nil, false
			}
		case ast.AttrPrefix:
			if !st.addAnchor(&st.prefixSensitive, &st.prefixInsensitive, prefixPred, a) {
				return nil, false
			}
		case ast.AttrSuffix:
			if !st.addAnchor(&st.suffixSensitive, &st.suffixInsensitive, suffixPred, a) {
				return nil, false
			}
		case ast.AttrSubstr:
			if !st.addSubstr(a) {
				return nil, false
			}
		}
	}

	st.reconcileEquality()
	if !st.reconcileAnchorsAgainstEquality() {
		return nil, false
	}
	if !st.reconcilePrefixAndPiped() {
		return nil, false
	}
	if !st.reconcileSubstrAgainstEquality() {
		return nil, false
	}

	return st.result(), true
}

// --- (a) existence -----------------------------------------------------

func allExistence(in []ast.AttributeAssertion) bool {
	for _, a := range in {
		if a.Operator != ast.AttrExists {
			return false
		}
	}
	return true
}

func dropRedundantExistence(in []ast.AttributeAssertion) []ast.AttributeAssertion {
	hasOperator := false
	for _, a := range in {
		if a.Operator != ast.AttrExists {
			hasOperator = true
			break
		}
	}
	if !hasOperator {
		return in
	}
	out := make([]ast.AttributeAssertion, 0, len(in))
	for _, a := range in {
		if a.Operator != ast.AttrExists {
			out = append(out, a)
		}
	}
	return out
}

// --- shared anchoring predicates ----------------------------------------

func prefixPred(anchor, v string) bool { return strings.HasPrefix(v, anchor) }
func suffixPred(anchor, v string) bool { return strings.HasSuffix(v, anchor) }
func pipedPred(anchor, v string) bool  { return v == anchor || strings.HasPrefix(v, anchor+"-") }
