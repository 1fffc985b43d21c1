package checker

import (
	"github.com/wandlelang/wandle/internal/diagnostics"
	"github.com/wandlelang/wandle/internal/model"
	"github.com/wandlelang/wandle/internal/token"
)

// localVar is a binding in a function's local scope: a declared
// parameter, `self`, or a variable introduced by a `_cb_var_*`
// statement. Every local var gets a real model.Object in the arena
// (created with model.RootContainer so it never leaks into any Class's
// field map); its readiness lives in this scope's overlay, never on the
// shared Object itself, so marking one call's binding ready can't leak
// readiness into another call over the same underlying class field.
type localVar struct {
	objH   model.ObjectHandle
	classH model.ClassHandle
}

// scope is the chained lookup structure for one function body: one
// fresh layer per function, falling back to the function's enclosing
// container and then to the model root.
type scope struct {
	m         *model.Model
	vars      map[string]localVar
	container model.ContainerRef
	overlay   map[model.ObjectHandle]bool
}

func newScope(m *model.Model, f *model.Function) *scope {
	sc := &scope{
		m:         m,
		vars:      map[string]localVar{},
		container: f.Container,
		overlay:   map[model.ObjectHandle]bool{},
	}
	if f.Container.Kind == model.ContainerClass {
		oh := m.NewObject(f.Container.ClassH, "self", true, model.RootContainer)
		sc.vars["self"] = localVar{objH: oh, classH: f.Container.ClassH}
		sc.overlay[oh] = true
	}
	for _, p := range f.Params {
		oh := m.NewObject(p.ClassH, p.Name, true, model.RootContainer)
		sc.vars[p.Name] = localVar{objH: oh, classH: p.ClassH}
		sc.overlay[oh] = true
	}
	return sc
}

// declare introduces a new local variable bound to a fresh Object of
// classH, starting unready unless ready is true (the `!` suffix form).
func (sc *scope) declare(name string, classH model.ClassHandle, ready bool) model.ObjectHandle {
	oh := sc.m.NewObject(classH, name, ready, model.RootContainer)
	sc.vars[name] = localVar{objH: oh, classH: classH}
	sc.overlay[oh] = ready
	return oh
}

func (sc *scope) ready(r resolved) bool {
	if v, ok := sc.overlay[r.objH]; ok {
		return v
	}
	return sc.m.Object(r.objH).Ready
}

func (sc *scope) setReady(r resolved) {
	sc.overlay[r.objH] = true
}

// resKind tags what a dotref step landed on.
type resKind int

const (
	resObject resKind = iota
	resSyncFunc
	resAsyncFunc
)

type resolved struct {
	kind   resKind
	classH model.ClassHandle // resObject: the object's class
	objH   model.ObjectHandle
	funcH  model.FunctionHandle
}

// resolveSync walks a dotref left to right, requesting the synchronous
// member of the current context at each step. Every step but the last
// must land on an Object, since only an Object carries further members
// to navigate into.
func (sc *scope) resolveSync(dotref []string, tok token.Token) (resolved, *diagnostics.Error) {
	cur, err := sc.lookupFirst(dotref[0], tok, false)
	if err != nil {
		return resolved{}, err
	}
	for _, name := range dotref[1:] {
		if cur.kind != resObject {
			return resolved{}, diagnostics.New(diagnostics.ErrWrongKind, tok,
				"cannot navigate through %q: not an object", name)
		}
		next, err := sc.memberLookup(model.ClassContainer(cur.classH), name, tok, false)
		if err != nil {
			return resolved{}, err
		}
		cur = next
	}
	return cur, nil
}

// resolveAsync applies resolveSync to every token but the last, then
// requests the async member for the last token.
func (sc *scope) resolveAsync(dotref []string, tok token.Token) (resolved, *diagnostics.Error) {
	last := dotref[len(dotref)-1]
	if len(dotref) == 1 {
		return sc.lookupFirst(last, tok, true)
	}
	ctx, err := sc.resolveSync(dotref[:len(dotref)-1], tok)
	if err != nil {
		return resolved{}, err
	}
	if ctx.kind != resObject {
		return resolved{}, diagnostics.New(diagnostics.ErrWrongKind, tok,
			"cannot navigate through %q: not an object", last)
	}
	return sc.memberLookup(model.ClassContainer(ctx.classH), last, tok, true)
}

// lookupFirst resolves dotref[0] (or a length-1 async ref) against the
// local scope, then the enclosing container, then the model root.
func (sc *scope) lookupFirst(name string, tok token.Token, wantAsync bool) (resolved, *diagnostics.Error) {
	if !wantAsync {
		if lv, ok := sc.vars[name]; ok {
			return resolved{kind: resObject, classH: lv.classH, objH: lv.objH}, nil
		}
	}
	if r, found, err := sc.tryContainer(sc.container, name, tok, wantAsync); err != nil {
		return resolved{}, err
	} else if found {
		return r, nil
	}
	if sc.container.Kind != model.ContainerRoot {
		if r, found, err := sc.tryContainer(model.RootContainer, name, tok, wantAsync); err != nil {
			return resolved{}, err
		} else if found {
			return r, nil
		}
	}
	return resolved{}, diagnostics.New(diagnostics.ErrUnknownName, tok, "unknown name %q", name)
}

// memberLookup resolves name as a member of an already-resolved Object's
// class, with no further scope-chain fallback (only lookupFirst falls
// back past the immediate context).
func (sc *scope) memberLookup(c model.ContainerRef, name string, tok token.Token, wantAsync bool) (resolved, *diagnostics.Error) {
	if r, found, err := sc.tryContainer(c, name, tok, wantAsync); err != nil {
		return resolved{}, err
	} else if found {
		return r, nil
	}
	return resolved{}, diagnostics.New(diagnostics.ErrUnknownName, tok, "unknown name %q", name)
}

// tryContainer looks for name on container c. When wantAsync is false, a
// name that resolves only to an async member is a hard Wrong-kind error
// rather than a miss, and symmetrically for wantAsync true against a
// sync-only member: stepping into a scope that only exposes the other
// calling convention is always an error, never a silent fallthrough.
func (sc *scope) tryContainer(c model.ContainerRef, name string, tok token.Token, wantAsync bool) (resolved, bool, *diagnostics.Error) {
	if wantAsync {
		if fh, ok := sc.m.AsyncMember(c, name); ok {
			return resolved{kind: resAsyncFunc, funcH: fh}, true, nil
		}
		if _, ok := sc.m.SyncMember(c, name); ok {
			return resolved{}, true, diagnostics.New(diagnostics.ErrWrongKind, tok,
				"%q is sync, async lookup not permitted here", name)
		}
		if oh, ok := sc.m.ObjectMember(c, name); ok {
			return resolved{kind: resObject, classH: sc.m.Object(oh).ClassH, objH: oh}, true, nil
		}
		return resolved{}, false, nil
	}
	if fh, ok := sc.m.SyncMember(c, name); ok {
		return resolved{kind: resSyncFunc, funcH: fh}, true, nil
	}
	if oh, ok := sc.m.ObjectMember(c, name); ok {
		return resolved{kind: resObject, classH: sc.m.Object(oh).ClassH, objH: oh}, true, nil
	}
	if _, ok := sc.m.AsyncMember(c, name); ok {
		return resolved{}, true, diagnostics.New(diagnostics.ErrWrongKind, tok,
			"%q is async, sync lookup not permitted here", name)
	}
	return resolved{}, false, nil
}
