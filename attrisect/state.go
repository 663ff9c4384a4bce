package attrisect

import (
	"strings"

	"github.com/mdoderlein/cssisect/ast"
)

// state accumulates the surviving constraints for a single attribute key
// while folding in each incoming assertion. It is a pure accumulator: every
// method either mutates st and returns true, or returns false to signal ⊥
// (st is then discarded by the caller).
type state struct {
	key string

	sensitiveEq   *string
	insensitiveEq *string

	prefixSensitive, prefixInsensitive *string
	suffixSensitive, suffixInsensitive *string
	pipedSensitive, pipedInsensitive   *string

	sensitiveIncludes   []string
	insensitiveIncludes []string

	tokens []ast.AttributeAssertion // ~=, deduplicated by (value, caseSensitive)
}

func newState(key string) *state {
	return &state{key: key}
}

// --- (b) equality --------------------------------------------------------

func (st *state) addEquals(a ast.AttributeAssertion) bool {
	if a.CaseSensitive {
		if st.sensitiveEq != nil && *st.sensitiveEq != a.Value {
			return false
		}
		if st.insensitiveEq != nil && !strings.EqualFold(a.Value, *st.insensitiveEq) {
			return false
		}
		v := a.Value
		st.sensitiveEq = &v
		return true
	}

	if st.insensitiveEq != nil && !strings.EqualFold(a.Value, *st.insensitiveEq) {
		return false
	}
	if st.sensitiveEq != nil && !strings.EqualFold(a.Value, *st.sensitiveEq) {
		return false
	}
	if st.insensitiveEq == nil {
		v := a.Value
		st.insensitiveEq = &v
	}
	return true
}

// reconcileEquality drops the case-insensitive equality value once a
// case-sensitive one is established: it is subsumed (spec.md §4.4(b)).
func (st *state) reconcileEquality() {
	if st.sensitiveEq != nil {
		st.insensitiveEq = nil
	}
}

// --- (c) anchoring (^=, $=, |=) ------------------------------------------

// addAnchor folds an incoming ^=/$=/|= assertion into the sensitive or
// insensitive slot for its operator, keeping the most specific of any that
// compete (spec.md §4.4(c)).
func (st *state) addAnchor(sensitive, insensitive **string, pred func(anchor, v string) bool, a ast.AttributeAssertion) bool {
	if a.CaseSensitive {
		return foldMostSpecific(sensitive, a.Value, pred)
	}
	return foldMostSpecific(insensitive, a.Value, foldedPred(pred))
}

// foldMostSpecific updates *slot to the more specific of *slot and v under
// pred, where pred(anchor, candidate) reports whether candidate already
// satisfies anchor's constraint (i.e. candidate is at least as specific).
// Returns false if neither value satisfies the other's constraint.
func foldMostSpecific(slot **string, v string, pred func(anchor, v string) bool) bool {
	if *slot == nil {
		*slot = &v
		return true
	}
	cur := **slot
	switch {
	case pred(cur, v):
		*slot = &v
	case pred(v, cur):
		// cur already satisfies v's constraint; keep cur.
	default:
		return false
	}
	return true
}

func foldedPred(pred func(anchor, v string) bool) func(anchor, v string) bool {
	return func(anchor, v string) bool {
		return pred(strings.ToLower(anchor), strings.ToLower(v))
	}
}

// reconcileAnchorsAgainstEquality drops each anchor once an equality value
// is fixed, after checking the equality value still satisfies it (spec.md
// §4.4(c) final paragraph).
func (st *state) reconcileAnchorsAgainstEquality() bool {
	if st.sensitiveEq == nil && st.insensitiveEq == nil {
		return true
	}
	check := func(sensitive, insensitive *string, pred func(anchor, v string) bool) bool {
		if st.sensitiveEq != nil {
			if sensitive != nil && !pred(*sensitive, *st.sensitiveEq) {
				return false
			}
			if insensitive != nil && !foldedPred(pred)(*insensitive, *st.sensitiveEq) {
				return false
			}
		} else if st.insensitiveEq != nil {
			if sensitive != nil && !foldedPred(pred)(*sensitive, *st.insensitiveEq) {
				return false
			}
			if insensitive != nil && !foldedPred(pred)(*insensitive, *st.insensitiveEq) {
				return false
			}
		}
		return true
	}
	if !check(st.prefixSensitive, st.prefixInsensitive, prefixPred) {
		return false
	}
	if !check(st.suffixSensitive, st.suffixInsensitive, suffixPred) {
		return false
	}
	if !check(st.pipedSensitive, st.pipedInsensitive, pipedPred) {
		return false
	}
	// A case-sensitive equality value pins the attribute exactly; every
	// weaker anchor is now implied and dropped. A case-insensitive equality
	// value only implies the case-insensitive anchors, so case-sensitive
	// anchors are kept alongside it.
	st.prefixInsensitive, st.suffixInsensitive, st.pipedInsensitive = nil, nil, nil
	if st.sensitiveEq != nil {
		st.prefixSensitive, st.suffixSensitive, st.pipedSensitive = nil, nil, nil
	}
	return true
}

// reconcilePrefixAndPiped applies the ^= / |= cross-constraint of spec.md
// §4.4(e): when both are present, one must already imply the other, and the
// weaker one is dropped.
func (st *state) reconcilePrefixAndPiped() bool {
	reconcile := func(prefix, piped **string) bool {
		if *prefix == nil || *piped == nil {
			return true
		}
		p, w := **prefix, **piped
		switch {
		case prefixPred(p, w):
			// w (piped) already implies the ^= rule (w starts with p, or
			// equals it): ^= is the weaker constraint.
			*prefix = nil
		case pipedPred(w, p):
			// p (^=) already implies the |= rule: |= is the weaker
			// constraint.
			*piped = nil
		default:
			return false
		}
		return true
	}
	if !reconcile(&st.prefixSensitive, &st.pipedSensitive) {
		return false
	}
	return reconcile(&st.prefixInsensitive, &st.pipedInsensitive)
}

// --- (d) contains (*=) ----------------------------------------------------

func (st *state) addSubstr(a ast.AttributeAssertion) bool {
	if a.CaseSensitive {
		st.sensitiveIncludes = foldIncludes(st.sensitiveIncludes, a.Value, strings.Contains)
		return true
	}
	// Rejected outright if an existing sensitive include already (folded)
	// covers it.
	for _, e := range st.sensitiveIncludes {
		if strings.Contains(strings.ToLower(e), strings.ToLower(a.Value)) {
			return true
		}
	}
	st.insensitiveIncludes = foldIncludes(st.insensitiveIncludes, a.Value, func(e, v string) bool {
		return strings.Contains(strings.ToLower(e), strings.ToLower(v))
	})
	return true
}

// foldIncludes folds v into set: drop v if some existing entry already
// contains it (v is redundant), else replace any existing entry that v
// contains (v is stricter), else append v.
func foldIncludes(set []string, v string, contains func(e, v string) bool) []string {
	for _, e := range set {
		if contains(e, v) {
			return set
		}
	}
	out := make([]string, 0, len(set)+1)
	added := false
	for _, e := range set {
		if contains(v, e) {
			if !added {
				out = append(out, v)
				added = true
			}
			continue
		}
		out = append(out, e)
	}
	if !added {
		out = append(out, v)
	}
	return out
}

// reconcileSubstrAgainstEquality validates every *= include against the
// fixed equality value (if any) and drops the includes once validated —
// they contribute nothing beyond what equality already pins down. Under a
// case-insensitive equality alone, case-sensitive includes are kept, since
// the equality does not fix their letter case.
func (st *state) reconcileSubstrAgainstEquality() bool {
	if st.sensitiveEq == nil && st.insensitiveEq == nil {
		return true
	}
	for _, e := range st.sensitiveIncludes {
		if st.sensitiveEq != nil && !strings.Contains(*st.sensitiveEq, e) {
			return false
		}
		if st.sensitiveEq == nil && st.insensitiveEq != nil &&
			!strings.Contains(strings.ToLower(*st.insensitiveEq), strings.ToLower(e)) {
			return false
		}
	}
	for _, e := range st.insensitiveIncludes {
		if st.sensitiveEq != nil && !strings.Contains(strings.ToLower(*st.sensitiveEq), strings.ToLower(e)) {
			return false
		}
		if st.sensitiveEq == nil && st.insensitiveEq != nil &&
			!strings.Contains(strings.ToLower(*st.insensitiveEq), strings.ToLower(e)) {
			return false
		}
	}
	if st.sensitiveEq != nil {
		st.sensitiveIncludes = nil
	}
	st.insensitiveIncludes = nil
	return true
}

// --- (f) token match (~=) -------------------------------------------------

func (st *state) addToken(a ast.AttributeAssertion) {
	for _, t := range st.tokens {
		if t.Value == a.Value && t.CaseSensitive == a.CaseSensitive {
			return
		}
	}
	st.tokens = append(st.tokens, a)
}

// --- assembly --------------------------------------------------------------

func (st *state) result() []ast.AttributeAssertion {
	var out []ast.AttributeAssertion
	add := func(op ast.AttrOperator, v *string, sensitive bool) {
		if v != nil {
			out = append(out, ast.AttributeAssertion{Key: st.key, Operator: op, Value: *v, CaseSensitive: sensitive})
		}
	}

	add(ast.AttrEquals, st.sensitiveEq, true)
	add(ast.AttrEquals, st.insensitiveEq, false)
	add(ast.AttrPrefix, st.prefixSensitive, true)
	add(ast.AttrPrefix, st.prefixInsensitive, false)
	add(ast.AttrSuffix, st.suffixSensitive, true)
	add(ast.AttrSuffix, st.suffixInsensitive, false)
	add(ast.AttrDash, st.pipedSensitive, true)
	add(ast.AttrDash, st.pipedInsensitive, false)

	for _, v := range st.sensitiveIncludes {
		out = append(out, ast.AttributeAssertion{Key: st.key, Operator: ast.AttrSubstr, Value: v, CaseSensitive: true})
	}
	for _, v := range st.insensitiveIncludes {
		out = append(out, ast.AttributeAssertion{Key: st.key, Operator: ast.AttrSubstr, Value: v, CaseSensitive: false})
	}

	out = append(out, st.tokens...)

	if len(out) == 0 {
		out = append(out, ast.AttributeAssertion{Key: st.key, Operator: ast.AttrExists})
	}
	return out
}
