package wlexer

import (
	"testing"

	"github.com/wandlelang/wandle/internal/token"
)

func TestNextWordClassifiesKind(t *testing.T) {
	cases := []struct {
		in   string
		want token.Kind
	}{
		{"class", token.KEYWORD},
		{"sync", token.KEYWORD},
		{"Foo", token.TYPE},
		{"foo", token.IDENT},
		{"foo_bar", token.IDENT},
	}
	for _, c := range cases {
		l := New(c.in)
		tok := l.NextWord()
		if tok.Lexeme != c.in {
			t.Errorf("NextWord(%q) lexeme = %q", c.in, tok.Lexeme)
		}
		if tok.Kind != c.want {
			t.Errorf("NextWord(%q) kind = %v, want %v", c.in, tok.Kind, c.want)
		}
	}
}

func TestNextTypeGenericInstantiation(t *testing.T) {
	l := New("Pair/Int,Str rest")
	tok := l.NextType()
	if tok.Lexeme != "Pair/Int,Str" {
		t.Fatalf("got %q, want %q", tok.Lexeme, "Pair/Int,Str")
	}
}

func TestNextCapsStopsAtLowercase(t *testing.T) {
	l := New("TK rest")
	tok := l.NextCaps()
	if tok.Lexeme != "TK" {
		t.Fatalf("got %q, want %q", tok.Lexeme, "TK")
	}
}

func TestPeekLiteralDoesNotConsume(t *testing.T) {
	l := New("  { body }")
	if !l.PeekLiteral("{") {
		t.Fatal("expected PeekLiteral to find '{'")
	}
	tok, ok := l.Literal("{")
	if !ok || tok.Kind != token.LBRACE {
		t.Fatalf("expected Literal(\"{\") to succeed with LBRACE, got %+v, %v", tok, ok)
	}
}

func TestLiteralFailsOnMismatch(t *testing.T) {
	l := New("notbrace")
	if _, ok := l.Literal("{"); ok {
		t.Fatal("expected Literal to fail when the literal isn't present")
	}
}

func TestAtEOFSkipsTrailingSpace(t *testing.T) {
	l := New("   \n\t  ")
	if !l.AtEOF() {
		t.Fatal("expected AtEOF on whitespace-only input")
	}
}

func TestLineColumnTracking(t *testing.T) {
	l := New("class Foo.\nclass Bar.")
	l.NextWord() // class
	tok := l.NextWord()
	if tok.Lexeme != "Foo" || tok.Line != 1 {
		t.Fatalf("expected Foo on line 1, got %+v", tok)
	}
	l.Literal(".")
	tok = l.NextWord()
	if tok.Lexeme != "class" || tok.Line != 2 {
		t.Fatalf("expected second 'class' on line 2, got %+v", tok)
	}
}
