// Package structure turns a flat token sequence into the ast.Union data
// model: split on commas into union branches, split each branch on
// combinators into a Chain of sibling groups, and lift each compound token
// run into an ast.SelectorState.
package structure

import (
	"github.com/mdoderlein/cssisect/ast"
	"github.com/mdoderlein/cssisect/token"
)

// Build converts a flat token sequence into an ast.Union. Each comma
// branch becomes one ast.Chain, read so the rightmost compound is the
// subject (ast.Chain.Subject). An empty branch (e.g. a trailing comma)
// is unsatisfiable and contributes nothing to the union (spec.md §4.2),
// rather than being an error.
func Build(tokens []token.Token, selectorStr string) (ast.Union, error) {
	branches := splitOnComma(tokens)

	union := make(ast.Union, 0, len(branches))
	for _, branch := range branches {
		if len(branch) == 0 {
			continue
		}
		chain, err := buildChain(branch, selectorStr)
		if err != nil {
			return nil, err
		}
		union = append(union, chain)
	}
	return union, nil
}

func splitOnComma(tokens []token.Token) [][]token.Token {
	var branches [][]token.Token
	var current []token.Token
	for _, tok := range tokens {
		if tok.Type == token.Comma {
			branches = append(branches, current)
			current = nil
			continue
		}
		current = append(current, tok)
	}
	branches = append(branches, current)
	return branches
}

// buildChain walks a comma-free token run right-to-left, opening a new
// ChainEntry on '>' (child) or ' ' (descendant), and appending a sibling
// slot to the current entry's group on '+'/'~' (sibling, collapsed).
func buildChain(tokens []token.Token, selectorStr string) (ast.Chain, error) {
	// Split the run, right to left, on combinator tokens. runs[i] is the
	// compound token run that sat to the right of combinators[i] and to the
	// left of combinators[i-1] (runs[0] is the subject, with no combinator
	// to its right).
	var runs [][]token.Token
	var combinators []string // combinators[i] separates runs[i] from runs[i+1]

	start := len(tokens)
	for i := len(tokens) - 1; i >= 0; i-- {
		if tokens[i].Type == token.Combinator && isEntrySplit(tokens[i].Content) {
			runs = append(runs, tokens[i+1:start])
			combinators = append(combinators, tokens[i].Content)
			start = i
		}
	}
	runs = append(runs, tokens[0:start])

	// runs/combinators were appended right-to-left; reverse to left-to-right
	// so runs[0] is leftmost (outermost ancestor) and runs[last] is the
	// subject.
	reverseRuns(runs)
	reverseStrings(combinators)

	groups := make([]ast.SiblingGroup, len(runs))
	for i, run := range runs {
		group, err := buildSiblingGroup(run, selectorStr)
		if err != nil {
			return nil, err
		}
		groups[i] = group
	}

	chain := make(ast.Chain, len(groups))
	for i, group := range groups {
		entry := ast.ChainEntry{Group: group, Combinator: ast.CombinatorSubject}
		if i < len(groups)-1 {
			switch combinators[i] {
			case ">":
				entry.Combinator = ast.CombinatorChild
			default: // " "; "+" and "~" never split entries (see buildSiblingGroup)
				entry.Combinator = ast.CombinatorDescendant
			}
		}
		chain[i] = entry
	}
	return chain, nil
}

// buildSiblingGroup splits a compound run on sibling combinators ('+'/'~',
// deliberately merged per the collapsed sibling relation) into one
// SelectorState per sibling slot.
func buildSiblingGroup(tokens []token.Token, selectorStr string) (ast.SiblingGroup, error) {
	var group ast.SiblingGroup
	var current []token.Token
	for _, tok := range tokens {
		if tok.Type == token.Combinator && (tok.Content == "+" || tok.Content == "~") {
			state, err := buildCompound(current, selectorStr)
			if err != nil {
				return nil, err
			}
			group = append(group, state)
			current = nil
			continue
		}
		current = append(current, tok)
	}
	state, err := buildCompound(current, selectorStr)
	if err != nil {
		return nil, err
	}
	group = append(group, state)
	return group, nil
}

// isEntrySplit reports whether a combinator separates two distinct
// ChainEntry groups (descendant/child) rather than two siblings within the
// same group (collapsed '+'/'~').
func isEntrySplit(content string) bool {
	return content == " " || content == ">"
}

func reverseRuns(s [][]token.Token) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}

func reverseStrings(s []string) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}
