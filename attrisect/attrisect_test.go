package attrisect

import (
	"testing"

	"github.com/mdoderlein/cssisect/ast"
)

func eq(key, value string, sensitive bool) ast.AttributeAssertion {
	return ast.AttributeAssertion{Key: key, Operator: ast.AttrEquals, Value: value, CaseSensitive: sensitive}
}

func prefix(key, value string, sensitive bool) ast.AttributeAssertion {
	return ast.AttributeAssertion{Key: key, Operator: ast.AttrPrefix, Value: value, CaseSensitive: sensitive}
}

func piped(key, value string, sensitive bool) ast.AttributeAssertion {
	return ast.AttributeAssertion{Key: key, Operator: ast.AttrDash, Value: value, CaseSensitive: sensitive}
}

func TestIntersectExistence(t *testing.T) {
	out, ok := Intersect("data-x", []ast.AttributeAssertion{
		{Key: "data-x", Operator: ast.AttrExists},
		{Key: "data-x", Operator: ast.AttrExists},
	})
	if !ok || len(out) != 1 || out[0].Operator != ast.AttrExists {
		t.Fatalf("Intersect() = %+v, %v", out, ok)
	}
}

func TestIntersectExistenceDroppedByOperator(t *testing.T) {
	out, ok := Intersect("href", []ast.AttributeAssertion{
		{Key: "href", Operator: ast.AttrExists},
		eq("href", "x", true),
	})
	if !ok || len(out) != 1 || out[0] != eq("href", "x", true) {
		t.Fatalf("Intersect() = %+v, %v", out, ok)
	}
}

// scenario 4: intersect("[x='Foo' i]", "[x='foo']") -> "[x='foo']"
func TestIntersectEqualityCaseFold(t *testing.T) {
	out, ok := Intersect("x", []ast.AttributeAssertion{
		eq("x", "Foo", false),
		eq("x", "foo", true),
	})
	if !ok {
		t.Fatal("expected satisfiable")
	}
	if len(out) != 1 || out[0] != eq("x", "foo", true) {
		t.Fatalf("Intersect() = %+v, want single [x='foo']", out)
	}
}

func TestIntersectEqualityConflict(t *testing.T) {
	_, ok := Intersect("x", []ast.AttributeAssertion{
		eq("x", "foo", true),
		eq("x", "bar", true),
	})
	if ok {
		t.Fatal("expected unsatisfiable")
	}
}

// scenario 5: intersect("[x^='ab']", "[x^='abc']") -> "[x^='abc']"
func TestIntersectPrefixMostSpecific(t *testing.T) {
	out, ok := Intersect("x", []ast.AttributeAssertion{
		prefix("x", "ab", true),
		prefix("x", "abc", true),
	})
	if !ok || len(out) != 1 || out[0] != prefix("x", "abc", true) {
		t.Fatalf("Intersect() = %+v, %v", out, ok)
	}
}

func TestIntersectPrefixIncompatible(t *testing.T) {
	_, ok := Intersect("x", []ast.AttributeAssertion{
		prefix("x", "ab", true),
		prefix("x", "zz", true),
	})
	if ok {
		t.Fatal("expected unsatisfiable")
	}
}

// scenario 6: intersect("[x|='en']", "[x|='en-US']") -> "[x|='en-US']"
func TestIntersectPipedMostSpecific(t *testing.T) {
	out, ok := Intersect("x", []ast.AttributeAssertion{
		piped("x", "en", true),
		piped("x", "en-US", true),
	})
	if !ok || len(out) != 1 || out[0] != piped("x", "en-US", true) {
		t.Fatalf("Intersect() = %+v, %v", out, ok)
	}
}

func TestIntersectTokenDedup(t *testing.T) {
	out, ok := Intersect("class", []ast.AttributeAssertion{
		{Key: "class", Operator: ast.AttrInclude, Value: "x", CaseSensitive: true},
		{Key: "class", Operator: ast.AttrInclude, Value: "x", CaseSensitive: true},
		{Key: "class", Operator: ast.AttrInclude, Value: "y", CaseSensitive: true},
	})
	if !ok || len(out) != 2 {
		t.Fatalf("Intersect() = %+v, %v, want 2 distinct tokens", out, ok)
	}
}

// scenario 3: intersect("[href^='https://']", "[href^='https://example']")
func TestIntersectPrefixScenario3(t *testing.T) {
	out, ok := Intersect("href", []ast.AttributeAssertion{
		prefix("href", "https://", true),
		prefix("href", "https://example", true),
	})
	if !ok || len(out) != 1 || out[0] != prefix("href", "https://example", true) {
		t.Fatalf("Intersect() = %+v, %v", out, ok)
	}
}

func TestIntersectSubstringAntichain(t *testing.T) {
	out, ok := Intersect("href", []ast.AttributeAssertion{
		{Key: "href", Operator: ast.AttrSubstr, Value: "foo", CaseSensitive: true},
		{Key: "href", Operator: ast.AttrSubstr, Value: "foobar", CaseSensitive: true},
		{Key: "href", Operator: ast.AttrSubstr, Value: "baz", CaseSensitive: true},
	})
	if !ok {
		t.Fatal("expected satisfiable")
	}
	// "foo" is redundant once "foobar" is present (foobar implies foo), "baz"
	// is unrelated and survives alongside it.
	if len(out) != 2 {
		t.Fatalf("Intersect() = %+v, want 2 surviving substrings", out)
	}
}
