package resolver

import (
	"testing"

	"github.com/wandlelang/wandle/internal/diagnostics"
	"github.com/wandlelang/wandle/internal/model"
	"github.com/wandlelang/wandle/internal/token"
)

func newTestModel() *model.Model {
	return model.New()
}

func TestResolveSpecificClass(t *testing.T) {
	m := newTestModel()
	want := m.DeclareClass("Foo", false)
	got, err := Resolve(m, "Foo", token.Token{})
	if err != nil {
		t.Fatalf("unexpected error: %s", err.Error())
	}
	if got != want {
		t.Fatalf("got handle %d, want %d", got, want)
	}
}

func TestResolveThroughOneAlias(t *testing.T) {
	m := newTestModel()
	ch := m.DeclareClass("Foo", false)
	m.DeclareAlias("Bar", "Foo", token.Token{})
	got, err := Resolve(m, "Bar", token.Token{})
	if err != nil {
		t.Fatalf("unexpected error: %s", err.Error())
	}
	if got != ch {
		t.Fatalf("alias did not resolve to the target class")
	}
}

func TestResolveUnknownType(t *testing.T) {
	m := newTestModel()
	_, err := Resolve(m, "NoSuchType", token.Token{})
	if err == nil || err.Code != diagnostics.ErrUnknownType {
		t.Fatalf("expected ErrUnknownType, got %v", err)
	}
}

func TestMaterializeGeneric(t *testing.T) {
	m := newTestModel()
	intH := m.DeclareClass("Int", false)
	gh := m.DeclareGeneric("Pair", []string{"K", "V"})
	g := m.Generic(gh)
	g.Members = []model.MemberTemplate{
		{IsFunc: false, FieldType: "K", Name: "first", Ready: true},
		{IsFunc: false, FieldType: "V", Name: "second", Ready: true},
	}

	ch, err := Resolve(m, "Pair/Int,Int", token.Token{})
	if err != nil {
		t.Fatalf("unexpected error: %s", err.Error())
	}
	cl := m.Class(ch)
	if cl.Name != "Pair/Int,Int" {
		t.Fatalf("expected materialized class named Pair/Int,Int, got %q", cl.Name)
	}
	firstH, ok := cl.Objects["first"]
	if !ok {
		t.Fatal("expected materialized class to have a 'first' field")
	}
	if m.Object(firstH).ClassH != intH {
		t.Fatal("expected 'first' field to resolve to Int")
	}

	// A second reference to the same instantiation string must hit the
	// already-materialized class rather than re-materializing it.
	again, err := Resolve(m, "Pair/Int,Int", token.Token{})
	if err != nil {
		t.Fatalf("unexpected error on second resolve: %s", err.Error())
	}
	if again != ch {
		t.Fatalf("expected the same handle on re-resolution, got a new one")
	}
	if len(g.Instances) != 1 {
		t.Fatalf("expected exactly one recorded instance, got %d", len(g.Instances))
	}
}

func TestMaterializeArityMismatch(t *testing.T) {
	m := newTestModel()
	m.DeclareClass("Int", false)
	m.DeclareGeneric("Pair", []string{"K", "V"})

	_, err := Resolve(m, "Pair/Int", token.Token{})
	if err == nil || err.Code != diagnostics.ErrArityMismatch {
		t.Fatalf("expected ErrArityMismatch, got %v", err)
	}
}

func TestRetrofitAllBackfillsEarlyInstance(t *testing.T) {
	m := newTestModel()
	intH := m.DeclareClass("Int", false)
	gh := m.DeclareGeneric("Box", []string{"T"})

	// Materialize before the generic's members are populated, mirroring a
	// forward reference encountered mid pass-2.
	ch, err := Resolve(m, "Box/Int", token.Token{})
	if err != nil {
		t.Fatalf("unexpected error: %s", err.Error())
	}
	if len(m.Class(ch).Objects) != 0 {
		t.Fatal("expected no members before the generic itself is populated")
	}

	g := m.Generic(gh)
	g.Members = []model.MemberTemplate{
		{IsFunc: false, FieldType: "T", Name: "value", Ready: true},
	}

	if err := RetrofitAll(m, token.Token{}); err != nil {
		t.Fatalf("unexpected retrofit error: %s", err.Error())
	}
	oh, ok := m.Class(ch).Objects["value"]
	if !ok {
		t.Fatal("expected retrofit to backfill the 'value' field")
	}
	if m.Object(oh).ClassH != intH {
		t.Fatal("expected retrofitted field to resolve to Int")
	}
}
