// Package cssisect computes the intersection of CSS selector strings: given
// two or more selectors, it derives a single selector string (or "" when
// none) matching exactly those elements that every input would have matched.
//
// The library is pure and synchronous. It performs no I/O, holds no shared
// state between calls, and is safe to call concurrently from multiple
// goroutines with no coordination.
package cssisect

import (
	"github.com/mdoderlein/cssisect/ast"
	selerrors "github.com/mdoderlein/cssisect/errors"
	"github.com/mdoderlein/cssisect/stringify"
	"github.com/mdoderlein/cssisect/structure"
	"github.com/mdoderlein/cssisect/token"
)

// Intersect derives the CSS selector matching the intersection of the
// elements matched by each input selector. With a single argument, it
// returns the selector unchanged (after a parse/stringify round trip). With
// N ≥ 2 arguments, the result equals the binary intersection of the first
// with the intersection of the rest; intersection is associative and
// commutative, so the fold order does not affect the result set.
//
// A "" result means the intersection is provably empty: it is not an error.
func Intersect(selectors ...string) (string, error) {
	if len(selectors) == 0 {
		return "", &selerrors.SelectorError{Message: "intersect requires at least one selector"}
	}

	unions := make([]ast.Union, len(selectors))
	for i, s := range selectors {
		toks, err := token.Tokenize(s)
		if err != nil {
			return "", err
		}
		u, err := structure.Build(toks, s)
		if err != nil {
			return "", err
		}
		unions[i] = u
	}

	result := unions[len(unions)-1]
	for i := len(unions) - 2; i >= 0; i-- {
		result = intersectUnions(unions[i], result)
	}

	return stringify.Union(result), nil
}

// intersectUnions distributes chain intersection over both unions: an
// element matches the result iff it matches some chain from a and some
// chain from b, so every satisfiable (chainA, chainB) pairing contributes
// its alternatives to the output union.
func intersectUnions(a, b ast.Union) ast.Union {
	var out ast.Union
	for _, ca := range a {
		for _, cb := range b {
			chains, ok := intersectChains(ca, cb)
			if ok {
				out = append(out, chains...)
			}
		}
	}
	return out
}
