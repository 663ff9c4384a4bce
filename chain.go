package cssisect

import (
	"github.com/mdoderlein/cssisect/ast"
	"github.com/mdoderlein/cssisect/stringify"
)

// universalAncestor is the padding entry used to align chains of different
// length (spec.md §4.6): "any element, reached via descendant combinator"
// asserts nothing once the subject side already satisfies a tighter relation.
func universalAncestor() ast.ChainEntry {
	return ast.ChainEntry{
		Combinator: ast.CombinatorDescendant,
		Group:      ast.SiblingGroup{ast.SelectorState{Type: "*"}},
	}
}

// intersectChains aligns two chains by length and intersects them entry by
// entry, right to left from the subject (spec.md §4.6). It returns every
// canonical linearization as a separate ast.Chain (to be rendered as
// comma-separated alternatives by the caller), or ok=false if unsatisfiable.
func intersectChains(a, b ast.Chain) ([]ast.Chain, bool) {
	a, b = padChains(a, b)

	n := len(a)
	entries := make([]ast.ChainEntry, 0, n*2)

	i := n - 1
	for i >= 0 {
		left := a[i]
		right := b[i]

		if i == n-1 {
			group, ok := intersectSiblingGroups(left.Group, right.Group)
			if !ok {
				return nil, false
			}
			entries = append(entries, ast.ChainEntry{Combinator: ast.CombinatorSubject, Group: group})
			i--
			continue
		}

		switch {
		case left.Combinator == ast.CombinatorChild && right.Combinator == ast.CombinatorChild:
			group, ok := intersectSiblingGroups(left.Group, right.Group)
			if !ok {
				return nil, false
			}
			entries = append(entries, ast.ChainEntry{Combinator: ast.CombinatorChild, Group: group})

		// ancestor ∩ ancestor: the two ancestors need not coincide, so both
		// compounds survive independently as separate descendant entries
		// rather than being intersected together (spec.md §4.6).
		case left.Combinator == ast.CombinatorDescendant && right.Combinator == ast.CombinatorDescendant:
			entries = append(entries,
				ast.ChainEntry{Combinator: ast.CombinatorDescendant, Group: left.Group},
				ast.ChainEntry{Combinator: ast.CombinatorDescendant, Group: right.Group},
			)

		// parent ∩ ancestor: rewritten as two entries, preserving which side
		// carried the tighter (child) relation (spec.md §4.6). Appended here
		// in subject-to-ancestor order so the final reverseEntries leaves
		// the ancestor-side entry to the left of the parent-side entry.
		case left.Combinator == ast.CombinatorChild && right.Combinator == ast.CombinatorDescendant:
			entries = append(entries,
				ast.ChainEntry{Combinator: ast.CombinatorChild, Group: left.Group},
				ast.ChainEntry{Combinator: ast.CombinatorDescendant, Group: right.Group},
			)

		case left.Combinator == ast.CombinatorDescendant && right.Combinator == ast.CombinatorChild:
			entries = append(entries,
				ast.ChainEntry{Combinator: ast.CombinatorChild, Group: right.Group},
				ast.ChainEntry{Combinator: ast.CombinatorDescendant, Group: left.Group},
			)
		}
		i--
	}

	reverseEntries(entries)
	chain := ast.Chain(entries)
	chain = pruneUniversalDescendants(chain)

	swaps := adjacentDescendantSwaps(chain)
	return linearize(chain, swaps), true
}

// padChains left-pads the shorter chain with universal descendant entries so
// both have equal length, preserving that the last entry in each is its
// subject.
func padChains(a, b ast.Chain) (ast.Chain, ast.Chain) {
	for len(a) < len(b) {
		a = append(ast.Chain{universalAncestor()}, a...)
	}
	for len(b) < len(a) {
		b = append(ast.Chain{universalAncestor()}, b...)
	}
	return a, b
}

// intersectSiblingGroups intersects only the subject (last) sibling of each
// group via the compound intersector; the remaining, preceding siblings of
// both groups are appended unchanged (a sibling of b that renders the same as
// one already taken from a is not repeated), since the sibling relation is
// commutative and a union of sibling constraints is sound (spec.md §4.6
// point 2). The structurer builds sibling groups in source order with the
// matched element last (structure.buildSiblingGroup), so the subject here
// must likewise be the last element of each group, not the first.
func intersectSiblingGroups(a, b ast.SiblingGroup) (ast.SiblingGroup, bool) {
	subject, ok := intersectCompound(a[len(a)-1], b[len(b)-1])
	if !ok {
		return nil, false
	}
	out := make(ast.SiblingGroup, 0, len(a)+len(b)-1)
	out = append(out, a[:len(a)-1]...)
	for _, s := range b[:len(b)-1] {
		dup := false
		for _, e := range out {
			if stringify.Compound(e) == stringify.Compound(s) {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, s)
		}
	}
	out = append(out, subject)
	return out, true
}

func reverseEntries(s []ast.ChainEntry) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}

// pruneUniversalDescendants drops non-subject entries that assert only "some
// ancestor exists" with no further constraint: they are always true of any
// element with at least one ancestor and contribute nothing (spec.md §4.6,
// and consistent with the universal-selector identity law).
func pruneUniversalDescendants(c ast.Chain) ast.Chain {
	out := make(ast.Chain, 0, len(c))
	for i, entry := range c {
		last := i == len(c)-1
		if !last && entry.Combinator == ast.CombinatorDescendant && isPlainUniversalGroup(entry.Group) {
			continue
		}
		out = append(out, entry)
	}
	return out
}

func isPlainUniversalGroup(g ast.SiblingGroup) bool {
	if len(g) != 1 {
		return false
	}
	s := g[0]
	return s.Universal() && s.PseudoElement == "" && len(s.PseudoClasses) == 0 && len(s.Attributes) == 0
}

// adjacentDescendantSwaps finds each adjacent pair of non-subject entries
// that both use the descendant combinator: their relative order is
// interchangeable, since neither is anchored to the other by a tighter
// relation (spec.md §4.6 canonical linearization).
func adjacentDescendantSwaps(c ast.Chain) []int {
	var idx []int
	for i := 0; i+1 < len(c); i++ {
		right := c[i+1]
		if right.Combinator == ast.CombinatorSubject {
			continue // never swap into the subject slot
		}
		if c[i].Combinator == ast.CombinatorDescendant && right.Combinator == ast.CombinatorDescendant {
			idx = append(idx, i)
		}
	}
	return idx
}

// linearize enumerates the 2^n adjacent-swap choices (spec.md §4.6) and
// returns the distinct chains they produce.
func linearize(c ast.Chain, swapIdx []int) []ast.Chain {
	if len(swapIdx) == 0 {
		return []ast.Chain{c}
	}
	seen := make(map[string]bool)
	var out []ast.Chain
	for mask := 0; mask < (1 << len(swapIdx)); mask++ {
		candidate := make(ast.Chain, len(c))
		copy(candidate, c)
		for bit, idx := range swapIdx {
			if mask&(1<<bit) != 0 {
				candidate[idx], candidate[idx+1] = candidate[idx+1], candidate[idx]
			}
		}
		key := chainShape(candidate)
		if !seen[key] {
			seen[key] = true
			out = append(out, candidate)
		}
	}
	return out
}

// chainShape is a cheap structural fingerprint used only to dedupe
// linearizations; it need not be a full serialization.
func chainShape(c ast.Chain) string {
	s := ""
	for _, e := range c {
		s += e.Combinator.String() + "|"
		for _, st := range e.Group {
			s += st.Type + "#"
			for _, a := range st.Attributes {
				s += a.Key + string(rune(a.Operator)) + a.Value + "/"
			}
			s += ";"
		}
		s += "||"
	}
	return s
}
