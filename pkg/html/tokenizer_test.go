package html

import "testing"

func TestTokenizer_SimpleStartTag(t *testing.T) {
	tokenizer := NewTokenizer("<textarea>")
	token, err := tokenizer.NextToken()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if token.Type != TokenStartTag {
		t.Errorf("expected TokenStartTag, got %v", token.Type)
	}
	if token.TagName != "textarea" {
		t.Errorf("expected tag name 'textarea', got '%s'", token.TagName)
	}
}

func TestTokenizer_TagWithAttributes(t *testing.T) {
	tokenizer := NewTokenizer(`<textarea style="max-height: 40px" id="main" rows=3 disabled>`)
	token, err := tokenizer.NextToken()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	tests := map[string]string{
		"style":    "max-height: 40px",
		"id":       "main",
		"rows":     "3",
		"disabled": "",
	}
	for name, want := range tests {
		if got, ok := token.Attributes[name]; !ok || got != want {
			t.Errorf("attribute %s = %q (present %v), want %q", name, got, ok, want)
		}
	}
}

func TestTokenizer_SkipsCommentsAndDoctype(t *testing.T) {
	tokenizer := NewTokenizer("<!DOCTYPE html><!-- note --><p>")
	token, err := tokenizer.NextToken()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if token.Type != TokenStartTag || token.TagName != "p" {
		t.Errorf("expected start tag 'p', got %+v", token)
	}
}

func TestTokenizer_SelfClosing(t *testing.T) {
	tokenizer := NewTokenizer("<br/>")
	token, _ := tokenizer.NextToken()
	if !token.SelfClosing {
		t.Error("expected SelfClosing for <br/>")
	}
}

func TestTokenizer_ReadRawUntil(t *testing.T) {
	tokenizer := NewTokenizer("<textarea>a < b\n  c</TEXTAREA><p>")
	if _, err := tokenizer.NextToken(); err != nil {
		t.Fatal(err)
	}
	raw := tokenizer.ReadRawUntil("textarea")
	if raw != "a < b\n  c" {
		t.Errorf("raw = %q", raw)
	}
	next, _ := tokenizer.NextToken()
	if next.TagName != "p" {
		t.Errorf("expected <p> after raw text, got %+v", next)
	}
}

func TestTokenizer_UnterminatedTag(t *testing.T) {
	tokenizer := NewTokenizer(`<div id="x"`)
	if _, err := tokenizer.NextToken(); err == nil {
		t.Error("expected error for unterminated tag")
	}
}

func TestNormalizeWhitespace(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"a   b", "a b"},
		{"  a\n\tb ", " a b "},
		{"word", "word"},
	}
	for _, tt := range tests {
		if got := normalizeWhitespace(tt.in); got != tt.want {
			t.Errorf("normalizeWhitespace(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
