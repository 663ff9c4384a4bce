package structure

import (
	"github.com/mdoderlein/cssisect/ast"
	"github.com/mdoderlein/cssisect/errors"
	"github.com/mdoderlein/cssisect/token"
)

// buildCompound lifts a run of non-combinator, non-comma tokens into an
// ast.SelectorState (spec.md §4.3).
func buildCompound(tokens []token.Token, selectorStr string) (ast.SelectorState, error) {
	var state ast.SelectorState

	for _, tok := range tokens {
		switch tok.Type {
		case token.Name:
			if state.Type != "" && state.Type != tok.Name {
				if state.Type != "*" && tok.Name != "*" {
					return ast.SelectorState{}, &errors.SelectorError{
						Selector: selectorStr,
						Message:  "conflicting type selectors " + state.Type + " and " + tok.Name,
					}
				}
			}
			if state.Type == "" || state.Type == "*" {
				state.Type = tok.Name
			}

		case token.ID:
			state.Attributes = append(state.Attributes, ast.AttributeAssertion{
				Key: "id", Operator: ast.AttrEquals, Value: tok.Name, CaseSensitive: true,
			})

		case token.Class:
			state.Attributes = append(state.Attributes, ast.AttributeAssertion{
				Key: "class", Operator: ast.AttrInclude, Value: tok.Name, CaseSensitive: true,
			})

		case token.Attribute:
			sensitive := true
			if tok.CaseSensitive != nil {
				sensitive = *tok.CaseSensitive
			}
			op := ast.AttrExists
			if tok.Operator != "" {
				op = attrOp(tok.Operator)
			}
			state.Attributes = append(state.Attributes, ast.AttributeAssertion{
				Key: tok.Name, Operator: op, Value: tok.Value, CaseSensitive: sensitive,
			})

		case token.PseudoClass:
			state.PseudoClasses = append(state.PseudoClasses, ast.PseudoClass{Name: tok.Name, Argument: tok.Argument})

		case token.PseudoElement:
			if state.PseudoElement != "" && state.PseudoElement != tok.Name {
				return ast.SelectorState{}, &errors.SelectorError{
					Selector: selectorStr,
					Message:  "conflicting pseudo-elements ::" + state.PseudoElement + " and ::" + tok.Name,
				}
			}
			state.PseudoElement = tok.Name

		default:
			return ast.SelectorState{}, &errors.SelectorError{Selector: selectorStr, Message: "unexpected token in compound selector"}
		}
	}

	return state, nil
}

// attrOp maps a tokenizer-produced operator spelling to its AttrOperator.
// The tokenizer only ever emits one of these six spellings (or ""), so
// there is no failure case to report here.
func attrOp(op string) ast.AttrOperator {
	switch op {
	case "=":
		return ast.AttrEquals
	case "~=":
		return ast.AttrInclude
	case "|=":
		return ast.AttrDash
	case "^=":
		return ast.AttrPrefix
	case "$=":
		return ast.AttrSuffix
	case "*=":
		return ast.AttrSubstr
	default:
		return ast.AttrExists
	}
}
