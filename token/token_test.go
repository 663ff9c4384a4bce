package token

import "testing"

func boolPtr(b bool) *bool { return &b }

func TestTokenizeSimple(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []Token
	}{
		{
			name:  "tag",
			input: "div",
			want:  []Token{{Type: Name, Name: "div", Content: "div"}},
		},
		{
			name:  "universal",
			input: "*",
			want:  []Token{{Type: Name, Name: "*", Content: "*"}},
		},
		{
			name:  "id",
			input: "#main",
			want:  []Token{{Type: ID, Name: "main", Content: "#main"}},
		},
		{
			name:  "class",
			input: ".active",
			want:  []Token{{Type: Class, Name: "active", Content: ".active"}},
		},
		{
			name:  "compound",
			input: "div.active#x",
			want: []Token{
				{Type: Name, Name: "div", Content: "div"},
				{Type: Class, Name: "active", Content: ".active"},
				{Type: ID, Name: "x", Content: "#x"},
			},
		},
		{
			name:  "descendant combinator",
			input: "div p",
			want: []Token{
				{Type: Name, Name: "div", Content: "div"},
				{Type: Combinator, Content: " "},
				{Type: Name, Name: "p", Content: "p"},
			},
		},
		{
			name:  "child combinator with spaces",
			input: "div > p",
			want: []Token{
				{Type: Name, Name: "div", Content: "div"},
				{Type: Combinator, Content: ">"},
				{Type: Name, Name: "p", Content: "p"},
			},
		},
		{
			name:  "comma",
			input: "a, b",
			want: []Token{
				{Type: Name, Name: "a", Content: "a"},
				{Type: Comma, Content: ","},
				{Type: Name, Name: "b", Content: "b"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Tokenize(tt.input)
			if err != nil {
				t.Fatalf("Tokenize(%q) error: %v", tt.input, err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("Tokenize(%q) = %+v, want %+v", tt.input, got, tt.want)
			}
			for i := range got {
				if got[i].Type != tt.want[i].Type || got[i].Name != tt.want[i].Name || got[i].Content != tt.want[i].Content {
					t.Errorf("token %d = %+v, want %+v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestTokenizeAttribute(t *testing.T) {
	tests := []struct {
		name          string
		input         string
		wantOp        string
		wantValue     string
		wantSensitive *bool
	}{
		{"exists", "[disabled]", "", "", nil},
		{"equals quoted", `[href="foo"]`, "=", "foo", nil},
		{"equals single quoted", "[href='foo']", "=", "foo", nil},
		{"equals unquoted", "[href=foo]", "=", "foo", nil},
		{"includes", "[class~=foo]", "~=", "foo", nil},
		{"dash", "[lang|=en]", "|=", "en", nil},
		{"prefix", "[href^=http]", "^=", "http", nil},
		{"suffix", "[href$=.pdf]", "$=", ".pdf", nil},
		{"substring", "[href*=example]", "*=", "example", nil},
		{"case insensitive", "[href=foo i]", "=", "foo", boolPtr(false)},
		{"case sensitive explicit", "[href=foo s]", "=", "foo", boolPtr(true)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			toks, err := Tokenize(tt.input)
			if err != nil {
				t.Fatalf("Tokenize(%q) error: %v", tt.input, err)
			}
			if len(toks) != 1 || toks[0].Type != Attribute {
				t.Fatalf("Tokenize(%q) = %+v, want single attribute token", tt.input, toks)
			}
			tok := toks[0]
			if tok.Operator != tt.wantOp {
				t.Errorf("operator = %q, want %q", tok.Operator, tt.wantOp)
			}
			if tok.Value != tt.wantValue {
				t.Errorf("value = %q, want %q", tok.Value, tt.wantValue)
			}
			if tt.wantSensitive == nil {
				if tok.CaseSensitive != nil {
					t.Errorf("CaseSensitive = %v, want nil", *tok.CaseSensitive)
				}
			} else {
				if tok.CaseSensitive == nil || *tok.CaseSensitive != *tt.wantSensitive {
					t.Errorf("CaseSensitive = %v, want %v", tok.CaseSensitive, *tt.wantSensitive)
				}
			}
		})
	}
}

func TestTokenizePseudo(t *testing.T) {
	tests := []struct {
		name         string
		input        string
		wantType     Type
		wantName     string
		wantArgument string
	}{
		{"pseudo-class", ":hover", PseudoClass, "hover", ""},
		{"pseudo-class with arg", ":nth-child(2n+1)", PseudoClass, "nth-child", "2n+1"},
		{"pseudo-element double colon", "::before", PseudoElement, "before", ""},
		{"legacy pseudo-element single colon", ":before", PseudoElement, "before", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			toks, err := Tokenize(tt.input)
			if err != nil {
				t.Fatalf("Tokenize(%q) error: %v", tt.input, err)
			}
			if len(toks) != 1 {
				t.Fatalf("Tokenize(%q) = %+v, want single token", tt.input, toks)
			}
			tok := toks[0]
			if tok.Type != tt.wantType {
				t.Errorf("type = %v, want %v", tok.Type, tt.wantType)
			}
			if tok.Name != tt.wantName {
				t.Errorf("name = %q, want %q", tok.Name, tt.wantName)
			}
			if tok.Argument != tt.wantArgument {
				t.Errorf("argument = %q, want %q", tok.Argument, tt.wantArgument)
			}
		})
	}
}

func TestTokenizeSiblingCombinators(t *testing.T) {
	toks, err := Tokenize("a + b ~ c")
	if err != nil {
		t.Fatalf("Tokenize error: %v", err)
	}
	wantContents := []string{"a", "+", "b", "~", "c"}
	if len(toks) != len(wantContents) {
		t.Fatalf("got %d tokens, want %d: %+v", len(toks), len(wantContents), toks)
	}
	for i, want := range wantContents {
		if toks[i].Content != want {
			t.Errorf("token %d content = %q, want %q", i, toks[i].Content, want)
		}
	}
}
