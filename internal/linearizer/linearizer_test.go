package linearizer

import (
	"testing"

	"github.com/wandlelang/wandle/internal/diagnostics"
	"github.com/wandlelang/wandle/internal/model"
	"github.com/wandlelang/wandle/internal/token"
)

func declareStubFunc(m *model.Model, name string, container model.ClassHandle) model.FunctionHandle {
	return m.NewFunction(model.Sync, name, m.VoidClass, nil, nil, model.ClassContainer(container))
}

func declareStubAsyncFunc(m *model.Model, name string, container model.ClassHandle) model.FunctionHandle {
	return m.NewFunction(model.Async, name, m.VoidClass, nil, nil, model.ClassContainer(container))
}

func TestLinearizeSimpleInheritance(t *testing.T) {
	m := model.New()
	base := m.DeclareClass("Base", false)
	declareStubFunc(m, "ping", base)
	derived := m.DeclareClass("Derived", false)
	m.Class(derived).Parents = []string{"Base"}

	if err := Linearize(m, token.Token{}); err != nil {
		t.Fatalf("unexpected error: %s", err.Error())
	}

	der := m.Class(derived)
	baseFh := m.Class(base).Sync["ping"]
	derFh, ok := der.Sync["ping"]
	if !ok {
		t.Fatal("expected Derived to inherit 'ping'")
	}
	if derFh != baseFh {
		t.Fatal("expected Derived.ping to reference Base's Function handle, not a copy")
	}
}

func TestLinearizeChildOverridesParent(t *testing.T) {
	m := model.New()
	base := m.DeclareClass("Base", false)
	declareStubFunc(m, "ping", base)
	derived := m.DeclareClass("Derived", false)
	m.Class(derived).Parents = []string{"Base"}
	ownFh := declareStubFunc(m, "ping", derived)

	if err := Linearize(m, token.Token{}); err != nil {
		t.Fatalf("unexpected error: %s", err.Error())
	}
	if m.Class(derived).Sync["ping"] != ownFh {
		t.Fatal("expected the child's own 'ping' to mask the parent's")
	}
}

func TestLinearizeMultipleInheritance(t *testing.T) {
	m := model.New()
	a := m.DeclareClass("A", false)
	declareStubFunc(m, "fromA", a)
	b := m.DeclareClass("B", false)
	declareStubFunc(m, "fromB", b)
	c := m.DeclareClass("C", false)
	m.Class(c).Parents = []string{"A", "B"}

	if err := Linearize(m, token.Token{}); err != nil {
		t.Fatalf("unexpected error: %s", err.Error())
	}
	cl := m.Class(c)
	if _, ok := cl.Sync["fromA"]; !ok {
		t.Error("expected C to inherit fromA")
	}
	if _, ok := cl.Sync["fromB"]; !ok {
		t.Error("expected C to inherit fromB")
	}
}

// A child's own sync member must mask a parent's async member of the
// same name, and vice versa: name shadowing spans both member
// categories, not just one.
func TestLinearizeChildOverridesParentAcrossSyncAsync(t *testing.T) {
	m := model.New()
	base := m.DeclareClass("Base", false)
	declareStubAsyncFunc(m, "beep", base)
	derived := m.DeclareClass("Derived", false)
	m.Class(derived).Parents = []string{"Base"}
	ownFh := declareStubFunc(m, "beep", derived)

	if err := Linearize(m, token.Token{}); err != nil {
		t.Fatalf("unexpected error: %s", err.Error())
	}
	der := m.Class(derived)
	if der.Sync["beep"] != ownFh {
		t.Fatal("expected the child's own sync 'beep' to mask the parent's async 'beep'")
	}
	if _, ok := der.Async["beep"]; ok {
		t.Fatal("expected 'beep' to not also appear in Derived's Async map")
	}
}

func TestLinearizeCycleFails(t *testing.T) {
	m := model.New()
	a := m.DeclareClass("A", false)
	b := m.DeclareClass("B", false)
	m.Class(a).Parents = []string{"B"}
	m.Class(b).Parents = []string{"A"}

	err := Linearize(m, token.Token{})
	if err == nil || err.Code != diagnostics.ErrInheritanceCycle {
		t.Fatalf("expected ErrInheritanceCycle, got %v", err)
	}
}

func TestLinearizeUnknownParent(t *testing.T) {
	m := model.New()
	a := m.DeclareClass("A", false)
	m.Class(a).Parents = []string{"NoSuchClass"}

	err := Linearize(m, token.Token{})
	if err == nil || err.Code != diagnostics.ErrUnknownType {
		t.Fatalf("expected ErrUnknownType, got %v", err)
	}
}
