package wparser

import (
	"testing"

	"github.com/wandlelang/wandle/internal/diagnostics"
)

func TestParseEmptySource(t *testing.T) {
	root, err := Parse("")
	if err != nil {
		t.Fatalf("unexpected error: %s", err.Error())
	}
	if root.RuleName() != "_grammar" {
		t.Fatalf("expected root rule _grammar, got %q", root.RuleName())
	}
}

func TestParseClassStub(t *testing.T) {
	root, err := Parse("class Foo.")
	if err != nil {
		t.Fatalf("unexpected error: %s", err.Error())
	}
	kids := root.Children()
	if len(kids) != 2 { // _class_gram + EOF
		t.Fatalf("expected 2 children, got %d", len(kids))
	}
	if kids[0].RuleName() != "_class_gram" {
		t.Fatalf("expected _class_gram, got %q", kids[0].RuleName())
	}
}

func TestParseClassWithInheritanceAndBlock(t *testing.T) {
	_, err := Parse(`
class Base { sync Void ping(); }
class Derived is Base { sync Void ping(); async Foo other(Foo f); }
`)
	if err != nil {
		t.Fatalf("unexpected error: %s", err.Error())
	}
}

func TestParseGenericDeclaration(t *testing.T) {
	_, err := Parse("generic Pair K,V { K first; V second; }")
	if err != nil {
		t.Fatalf("unexpected error: %s", err.Error())
	}
}

func TestParseSingleAndFlow(t *testing.T) {
	_, err := Parse(`
single helper {
    sync Void greet() { note{hi} }
}
flow main {
    Void y = helper.greet();
    return void;
}
`)
	if err != nil {
		t.Fatalf("unexpected error: %s", err.Error())
	}
}

func TestParseMalformedSyntax(t *testing.T) {
	_, err := Parse("this is not wandle at all")
	if err == nil || err.Code != diagnostics.ErrMalformedSyntax {
		t.Fatalf("expected ErrMalformedSyntax, got %v", err)
	}
}

func TestParseAsyncVarSet(t *testing.T) {
	_, err := Parse(`
single s {
    async Void go() { note{n} }
}
flow main {
    Void y << s.go();
}
`)
	if err != nil {
		t.Fatalf("unexpected error: %s", err.Error())
	}
}

func TestParseMissingClosingBrace(t *testing.T) {
	_, err := Parse("class Foo { sync Void ping();")
	if err == nil || err.Code != diagnostics.ErrMalformedSyntax {
		t.Fatalf("expected ErrMalformedSyntax for unterminated block, got %v", err)
	}
}
