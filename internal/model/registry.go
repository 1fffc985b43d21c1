package model

import (
	"github.com/google/uuid"

	"github.com/wandlelang/wandle/internal/token"
)

// RootKind tags what occupies a name in the flat root namespace, for the
// duplicate-name check across classes, generics, singles, flows, and
// aliases.
type RootKind int

const (
	RootClass RootKind = iota
	RootGeneric
	RootAlias
	RootFlow
	RootSingle
)

// New builds an empty Model with the built-in Void class and its sole
// instance, void, already seeded.
func New() *Model {
	m := &Model{
		ClassByName:   map[string]ClassHandle{},
		GenericByName: map[string]GenericHandle{},
		Aliases:       map[string]string{},
		AliasTok:      map[string]token.Token{},
		Flows:         map[string]FunctionHandle{},
		RootObjects:   map[string]ObjectHandle{},
		Singles:       map[string]ClassHandle{},
		BuildID:       uuid.New(),
	}
	m.VoidClass = m.addClass(Class{
		Name:      "Void",
		Async:     map[string]FunctionHandle{},
		Sync:      map[string]FunctionHandle{},
		Objects:   map[string]ObjectHandle{},
		Container: RootContainer,
	})
	m.ClassByName["Void"] = m.VoidClass
	m.VoidObject = m.addObject(Object{ClassH: m.VoidClass, Ready: true})
	m.RootObjects["void"] = m.VoidObject
	return m
}

func (m *Model) addClass(c Class) ClassHandle {
	m.Classes = append(m.Classes, c)
	return ClassHandle(len(m.Classes) - 1)
}

func (m *Model) addGeneric(g Generic) GenericHandle {
	m.Generics = append(m.Generics, g)
	return GenericHandle(len(m.Generics) - 1)
}

func (m *Model) addFunction(f Function) FunctionHandle {
	m.Functions = append(m.Functions, f)
	return FunctionHandle(len(m.Functions) - 1)
}

func (m *Model) addObject(o Object) ObjectHandle {
	m.Objects = append(m.Objects, o)
	return ObjectHandle(len(m.Objects) - 1)
}

// Class, Generic, Function, and Object return mutable pointers into the
// arena so callers (the walker, resolver, linearizer, and checker) can
// populate members in place as each pass progresses.
func (m *Model) Class(h ClassHandle) *Class       { return &m.Classes[h] }
func (m *Model) Generic(h GenericHandle) *Generic { return &m.Generics[h] }
func (m *Model) Function(h FunctionHandle) *Function { return &m.Functions[h] }
func (m *Model) Object(h ObjectHandle) *Object     { return &m.Objects[h] }

// RootNameExists reports whether name already occupies a slot in the flat
// root namespace (classes, generics, singles, flows, and aliases share
// one namespace). ok is false if the name is free.
func (m *Model) RootNameExists(name string) (kind RootKind, placeholder bool, ok bool) {
	if h, found := m.ClassByName[name]; found {
		if _, isSingle := m.Singles[name]; isSingle {
			return RootSingle, false, true
		}
		return RootClass, m.Classes[h].Placeholder, true
	}
	if _, found := m.GenericByName[name]; found {
		return RootGeneric, false, true
	}
	if _, found := m.Aliases[name]; found {
		return RootAlias, false, true
	}
	if _, found := m.Flows[name]; found {
		return RootFlow, false, true
	}
	return 0, false, false
}

// DeclareClass creates a fresh, empty Class at root scope and registers
// its name. Callers must have already checked RootNameExists.
func (m *Model) DeclareClass(name string, placeholder bool) ClassHandle {
	h := m.addClass(Class{
		Name:        name,
		Async:       map[string]FunctionHandle{},
		Sync:        map[string]FunctionHandle{},
		Objects:     map[string]ObjectHandle{},
		Placeholder: placeholder,
		Container:   RootContainer,
	})
	m.ClassByName[name] = h
	return h
}

// DeclareGeneric creates a fresh, empty Generic and registers its name
// plus a placeholder Class for every template parameter.
func (m *Model) DeclareGeneric(name string, params []string) GenericHandle {
	h := m.addGeneric(Generic{
		Name:   name,
		Params: append([]string(nil), params...),
	})
	m.GenericByName[name] = h
	for _, p := range params {
		if _, exists := m.ClassByName[p]; !exists {
			m.DeclareClass(p, true)
		}
	}
	return h
}

// DeclareAlias records name -> target in the alias table; resolved at
// lookup time, one level of indirection only. tok is kept for
// positioning the alias-validation pass's diagnostic.
func (m *Model) DeclareAlias(name, target string, tok token.Token) {
	m.Aliases[name] = target
	m.AliasTok[name] = tok
}

// DeclareFlow creates an empty async, no-parameter, Void-returning
// Function and registers it under name in the flow table.
func (m *Model) DeclareFlow(name string) FunctionHandle {
	h := m.addFunction(Function{
		Kind:      Async,
		ReturnH:   m.VoidClass,
		Name:      name,
		Container: RootContainer,
	})
	m.Flows[name] = h
	return h
}

// DeclareSingle creates the backing "Single|<name>" Class together with
// its prebuilt, eagerly-ready Object. The object is registered under the
// surface name so `<name>.<member>` resolves uniformly through the
// lookup chain.
func (m *Model) DeclareSingle(name string) (ClassHandle, ObjectHandle) {
	className := "Single|" + name
	ch := m.DeclareClass(className, false)
	oh := m.addObject(Object{ClassH: ch, Ready: true})
	m.Singles[name] = ch
	m.RootObjects[name] = oh
	return ch, oh
}

// NewFunction allocates a Function under the given container and
// registers it on that container's member map (the Container field must
// already name a Class; flows are created through DeclareFlow instead).
func (m *Model) NewFunction(kind FuncKind, name string, returnH ClassHandle, params []Parameter, bodyNode tree.Node, container ContainerRef) FunctionHandle {
	h := m.addFunction(Function{
		Kind:      kind,
		ReturnH:   returnH,
		Name:      name,
		Params:    params,
		BodyNode:  bodyNode,
		Container: container,
	})
	if container.Kind == ContainerClass {
		cl := &m.Classes[container.ClassH]
		if kind == Async {
			cl.Async[name] = h
		} else {
			cl.Sync[name] = h
		}
	}
	return h
}

// NewObject allocates an Object of the given class under container and
// registers it on the container's object map.
func (m *Model) NewObject(classH ClassHandle, name string, ready bool, container ContainerRef) ObjectHandle {
	h := m.addObject(Object{ClassH: classH, Ready: ready})
	if container.Kind == ContainerClass {
		m.Classes[container.ClassH].Objects[name] = h
	}
	return h
}

// SyncMember resolves name as a sync Function on container. Flows are
// async-only, so SyncMember never matches at root scope.
func (m *Model) SyncMember(c ContainerRef, name string) (FunctionHandle, bool) {
	if c.Kind != ContainerClass {
		return 0, false
	}
	h, ok := m.Classes[c.ClassH].Sync[name]
	return h, ok
}

// AsyncMember resolves name as an async Function on container. At root
// scope this is exactly the flow table.
func (m *Model) AsyncMember(c ContainerRef, name string) (FunctionHandle, bool) {
	if c.Kind == ContainerRoot {
		h, ok := m.Flows[name]
		return h, ok
	}
	h, ok := m.Classes[c.ClassH].Async[name]
	return h, ok
}

// ObjectMember resolves name as an Object field on container. At root
// scope this is the RootObjects table (singles and void).
func (m *Model) ObjectMember(c ContainerRef, name string) (ObjectHandle, bool) {
	if c.Kind == ContainerRoot {
		h, ok := m.RootObjects[name]
		return h, ok
	}
	h, ok := m.Classes[c.ClassH].Objects[name]
	return h, ok
}

// ClassOf returns the handle of the root-level Class registered under
// name, and whether one exists. The checker's dotref resolution does not
// call it: a bare class name is not resolvable as the first token of a
// path.
func (m *Model) ClassOf(name string) (ClassHandle, bool) {
	h, ok := m.ClassByName[name]
	return h, ok
}
