// Package model is the root registry: a container holding the four
// Wandle name spaces (specific classes, generics, aliases, flows) plus
// the instance-tracking tables the generic materializer needs for
// retrofit.
//
// The original Python keeps cyclic references between an Object, its
// Class, and the Model so any of the three can navigate back to any
// other. This package instead gives every Class, Generic, Function, and
// Object a stable integer handle in a contiguous slice inside *Model;
// cross-links are handles, not pointers, in the style of funxy's
// internal/symbols arena-backed symbol table.
package model

import (
	"github.com/google/uuid"

	"github.com/wandlelang/wandle/internal/token"
	"github.com/wandlelang/wandle/internal/tree"
)

// ClassHandle, GenericHandle, FunctionHandle, and ObjectHandle index into
// the corresponding slice on *Model. InvalidHandle marks "no value yet".
type ClassHandle int
type GenericHandle int
type FunctionHandle int
type ObjectHandle int

const InvalidHandle = -1

// FuncKind distinguishes a Function's calling convention.
type FuncKind int

const (
	Sync FuncKind = iota
	Async
)

func (k FuncKind) String() string {
	if k == Async {
		return "async"
	}
	return "sync"
}

// ContainerKind tags which arena a ContainerRef points into. The source's
// three ad-hoc dispatch methods (get_sync, get_async, get_class) are
// replaced by this explicit variant. A Generic is never a Function or
// Object's container: its members are unresolved MemberTemplates until
// materialization produces a real Class, so only the root and a Class
// ever appear here.
type ContainerKind int

const (
	ContainerRoot ContainerKind = iota
	ContainerClass
)

// ContainerRef names the enclosing scope of a Function or Object: either
// the model root or a Class (including a Single's backing class, or a
// Class derived from a Generic).
type ContainerRef struct {
	Kind   ContainerKind
	ClassH ClassHandle
}

var RootContainer = ContainerRef{Kind: ContainerRoot}

func ClassContainer(h ClassHandle) ContainerRef {
	return ContainerRef{Kind: ContainerClass, ClassH: h}
}

// Parameter is a (class, name) pair.
type Parameter struct {
	ClassH ClassHandle
	Name   string
}

// Class is a named specific type: either written directly by the user,
// produced by generic materialization, a template-parameter placeholder
// introduced when a Generic is declared, or the backing class of a
// Single (named "Single|<name>").
type Class struct {
	Name        string
	Parents     []string     // parent names as written; resolved during linearization
	ParentsH    []ClassHandle
	Async       map[string]FunctionHandle
	Sync        map[string]FunctionHandle
	Objects     map[string]ObjectHandle
	Placeholder bool
	Container   ContainerRef
}

// MemberTemplate is one member of a Generic, kept as unresolved type
// strings because a template parameter (e.g. "T") is not itself a
// concrete argument until an instantiation like "G/Int" supplies one —
// resolution happens only when the generic materializer clones this
// template onto a derived Class.
type MemberTemplate struct {
	IsFunc bool

	// Function fields.
	Kind       FuncKind
	ReturnType string
	ParamTypes []string
	ParamNames []string
	BodyNode   tree.Node // nil for a stub member (no implementation to check)

	// Object fields.
	FieldType string
	Ready     bool

	Name string
}

// Generic is a parameterized class template; it is never itself a type,
// only a source for Class instances produced by the resolver's generic
// materializer.
type Generic struct {
	Name      string
	Params    []string // ordered, single capitalized tokens
	Members   []MemberTemplate
	Instances []ClassHandle // every derived Class, kept for retrofit when new members arrive late
}

// Function is a callable member: a class method, a Single method, or a
// root-level flow (an Async Function with no parameters whose return
// class is Void). BodyNode carries the unchecked parse-tree body through
// to the walker's body pass; it is nil for a stub member, which the body
// checker then has nothing to validate.
type Function struct {
	Kind      FuncKind
	ReturnH   ClassHandle
	Name      string
	Params    []Parameter
	Body      []Statement
	BodyNode  tree.Node
	Container ContainerRef
}

// Object is an instance-typed named member (a field, a flow-local
// variable, or a Single's prebuilt instance). Member lookup always goes
// through ClassH to the owning Class's maps, so a generic retrofit that
// refills a derived Class's maps in place is visible to every Object of
// that class without any per-object bookkeeping. Readiness here is the
// class-wide default; per-function readiness tracking during body
// checking is an overlay kept in internal/checker, not here, so marking
// one call's local binding ready never leaks into another call sharing
// the same underlying Object.
type Object struct {
	ClassH ClassHandle
	Ready  bool
}

// StmtKind tags a Statement variant.
type StmtKind int

const (
	StmtNote StmtKind = iota
	StmtSyncVarNull
	StmtSyncVarReady
	StmtSyncCopyOrCall
	StmtAsyncCall
	StmtReturn
)

// Statement is a single checked body statement. Not every field is
// meaningful for every Kind; the comment on each field lists the Kinds
// that set it.
type Statement struct {
	Kind StmtKind

	Text string // StmtNote

	ClassH  ClassHandle // StmtSyncVarNull/Ready, StmtSyncCopyOrCall, StmtAsyncCall, StmtReturn
	LHSName string      // StmtSyncVarNull/Ready, and the declare-and-call forms of StmtSyncCopyOrCall/StmtAsyncCall: the declared local name

	LHSRef []string // StmtSyncCopyOrCall/StmtAsyncCall with an existing target: dotted path, as written
	RHSRef []string // StmtSyncCopyOrCall/StmtAsyncCall/StmtReturn: dotted path, as written
}

// Model is the root registry: the arena plus the four name spaces.
type Model struct {
	BuildID uuid.UUID

	Classes   []Class
	Generics  []Generic
	Functions []Function
	Objects   []Object

	ClassByName   map[string]ClassHandle
	GenericByName map[string]GenericHandle
	Aliases       map[string]string
	AliasTok      map[string]token.Token // position of each alias decl, for diagnostics
	Flows         map[string]FunctionHandle

	// RootObjects holds every root-level named Object: today that is
	// exactly the prebuilt instance of every Single and the seeded
	// void. Declared local variables inside a function body are NOT
	// registered here; they live only in the checker's local scope.
	RootObjects map[string]ObjectHandle
	Singles     map[string]ClassHandle

	VoidClass  ClassHandle
	VoidObject ObjectHandle
}
