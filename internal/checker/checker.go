// Package checker is the body checker: the semantic core that walks a
// Function's statement list, resolving every dotref through the
// local-scope chain in scope.go, type-checking each form, and enforcing
// the definite-return rule.
package checker

import (
	"github.com/wandlelang/wandle/internal/diagnostics"
	"github.com/wandlelang/wandle/internal/model"
	"github.com/wandlelang/wandle/internal/resolver"
	"github.com/wandlelang/wandle/internal/token"
	"github.com/wandlelang/wandle/internal/tree"
)

// CheckFunction type-checks f's body in place, appending a model.Statement
// for every statement node and failing fatally on the first error.
func CheckFunction(m *model.Model, fh model.FunctionHandle) *diagnostics.Error {
	f := m.Function(fh)
	if f.BodyNode == nil {
		return nil
	}
	sc := newScope(m, f)
	sawReturn := false

	kids := f.BodyNode.Children()
	for _, stmt := range kids[1 : len(kids)-1] {
		ret, err := checkStatement(m, sc, f, stmt)
		if err != nil {
			return err
		}
		f.Body = append(f.Body, ret.stmt)
		if ret.isReturn {
			sawReturn = true
		}
	}

	if f.ReturnH != m.VoidClass && !sawReturn {
		return diagnostics.New(diagnostics.ErrMissingReturn, f.BodyNode.Token(),
			"function %q must return a value of type %q", f.Name, m.Class(f.ReturnH).Name)
	}
	return nil
}

type stmtResult struct {
	stmt     model.Statement
	isReturn bool
}

func checkStatement(m *model.Model, sc *scope, f *model.Function, n tree.Node) (stmtResult, *diagnostics.Error) {
	switch n.RuleName() {
	case "_cb_note":
		return checkNote(n), nil
	case "_cb_return":
		return checkReturn(m, sc, f, n)
	case "_cb_var_stub":
		return checkVarStub(m, sc, n, false)
	case "_cb_var_ready":
		return checkVarStub(m, sc, n, true)
	case "_cb_var_sync_set":
		return checkVarSet(m, sc, n, false)
	case "_cb_var_async_set":
		return checkVarSet(m, sc, n, true)
	case "_cb_sync_copy":
		return checkSyncCopy(m, sc, n)
	case "_cb_sync_from":
		return checkSyncFrom(m, sc, n)
	case "_cb_async_from":
		return checkAsyncFrom(m, sc, n)
	default:
		return stmtResult{}, diagnostics.New(diagnostics.ErrMalformedSyntax, n.Token(),
			"unrecognized statement %q", n.RuleName())
	}
}

// checkNote concatenates the note body's word tokens space-separated,
// matching the original's simple token-join behavior.
func checkNote(n tree.Node) stmtResult {
	kids := n.Children()
	words := kids[2 : len(kids)-1]
	text := ""
	for i, w := range words {
		if i > 0 {
			text += " "
		}
		text += w.Value()
	}
	return stmtResult{stmt: model.Statement{Kind: model.StmtNote, Text: text}}
}

func checkReturn(m *model.Model, sc *scope, f *model.Function, n tree.Node) (stmtResult, *diagnostics.Error) {
	refNode := tree.Child(n, 1)
	path := tree.DotRefTokens(refNode)
	r, err := sc.resolveSync(path, refNode.Token())
	if err != nil {
		return stmtResult{}, err
	}
	if r.kind != resObject {
		return stmtResult{}, diagnostics.New(diagnostics.ErrWrongKind, refNode.Token(),
			"return value must be an object")
	}
	if r.classH != f.ReturnH {
		return stmtResult{}, diagnostics.New(diagnostics.ErrTypeMismatch, refNode.Token(),
			"return type %q does not match declared return type %q", m.Class(r.classH).Name, m.Class(f.ReturnH).Name)
	}
	return stmtResult{
		stmt:     model.Statement{Kind: model.StmtReturn, ClassH: r.classH, RHSRef: path},
		isReturn: true,
	}, nil
}

// checkVarStub handles `_cb_var_stub` (ready=false) and `_cb_var_ready`
// (ready=true): `Type name;` / `Type name!`.
func checkVarStub(m *model.Model, sc *scope, n tree.Node, ready bool) (stmtResult, *diagnostics.Error) {
	ctypeTok := tree.Child(n, 0).Token()
	nameTok := tree.Child(n, 1).Token()
	classH, err := resolveTypeName(m, ctypeTok.Lexeme, ctypeTok)
	if err != nil {
		return stmtResult{}, err
	}
	if err := requireFreeLocal(sc, nameTok); err != nil {
		return stmtResult{}, err
	}
	sc.declare(nameTok.Lexeme, classH, ready)
	kind := model.StmtSyncVarNull
	if ready {
		kind = model.StmtSyncVarReady
	}
	return stmtResult{stmt: model.Statement{Kind: kind, ClassH: classH, LHSName: nameTok.Lexeme}}, nil
}

// checkVarSet handles `_cb_var_sync_set` / `_cb_var_async_set`: a var
// stub combined with the corresponding sync or async call, type-checking
// both the declared type and the call in one statement.
func checkVarSet(m *model.Model, sc *scope, n tree.Node, async bool) (stmtResult, *diagnostics.Error) {
	ctypeTok := tree.Child(n, 0).Token()
	nameTok := tree.Child(n, 1).Token()
	rhsNode := tree.Child(n, 3)
	argsNode := tree.Child(n, 4)

	declH, err := resolveTypeName(m, ctypeTok.Lexeme, ctypeTok)
	if err != nil {
		return stmtResult{}, err
	}
	if err := requireFreeLocal(sc, nameTok); err != nil {
		return stmtResult{}, err
	}

	rhsPath := tree.DotRefTokens(rhsNode)
	var rhs resolved
	if async {
		rhs, err = sc.resolveAsync(rhsPath, rhsNode.Token())
	} else {
		rhs, err = sc.resolveSync(rhsPath, rhsNode.Token())
	}
	if err != nil {
		return stmtResult{}, err
	}
	wantKind := resSyncFunc
	if async {
		wantKind = resAsyncFunc
	}
	if rhs.kind != wantKind {
		return stmtResult{}, diagnostics.New(diagnostics.ErrWrongKind, rhsNode.Token(),
			"%q is not callable in this context", rhsPath[len(rhsPath)-1])
	}

	fn := m.Function(rhs.funcH)
	if err := checkArgs(m, sc, fn, argsNode, !async); err != nil {
		return stmtResult{}, err
	}
	if fn.ReturnH != declH {
		return stmtResult{}, diagnostics.New(diagnostics.ErrTypeMismatch, nameTok,
			"declared type %q does not match call return type %q", ctypeTok.Lexeme, m.Class(fn.ReturnH).Name)
	}

	oh := sc.declare(nameTok.Lexeme, declH, false)
	kind := model.StmtSyncCopyOrCall
	if async {
		kind = model.StmtAsyncCall
	} else {
		sc.setReady(resolved{kind: resObject, classH: declH, objH: oh})
	}
	return stmtResult{stmt: model.Statement{
		Kind: kind, ClassH: declH, LHSName: nameTok.Lexeme, RHSRef: rhsPath,
	}}, nil
}

func checkSyncCopy(m *model.Model, sc *scope, n tree.Node) (stmtResult, *diagnostics.Error) {
	lhsNode := tree.Child(n, 0)
	rhsNode := tree.Child(n, 2)
	lhsPath := tree.DotRefTokens(lhsNode)
	rhsPath := tree.DotRefTokens(rhsNode)

	lhs, err := sc.resolveSync(lhsPath, lhsNode.Token())
	if err != nil {
		return stmtResult{}, err
	}
	rhs, err := sc.resolveSync(rhsPath, rhsNode.Token())
	if err != nil {
		return stmtResult{}, err
	}
	if lhs.kind != resObject {
		return stmtResult{}, diagnostics.New(diagnostics.ErrWrongKind, lhsNode.Token(),
			"assignment target must be an object")
	}
	if rhs.kind != resObject {
		return stmtResult{}, diagnostics.New(diagnostics.ErrWrongKind, rhsNode.Token(),
			"assignment source must be an object")
	}
	if lhs.classH != m.VoidClass && lhs.classH != rhs.classH {
		return stmtResult{}, diagnostics.New(diagnostics.ErrTypeMismatch, rhsNode.Token(),
			"cannot assign %q to %q", m.Class(rhs.classH).Name, m.Class(lhs.classH).Name)
	}
	if lhs.classH != m.VoidClass {
		sc.setReady(lhs)
	}
	return stmtResult{stmt: model.Statement{
		Kind: model.StmtSyncCopyOrCall, ClassH: lhs.classH, LHSRef: lhsPath, RHSRef: rhsPath,
	}}, nil
}

func checkSyncFrom(m *model.Model, sc *scope, n tree.Node) (stmtResult, *diagnostics.Error) {
	lhsNode := tree.Child(n, 0)
	rhsNode := tree.Child(n, 2)
	argsNode := tree.Child(n, 3)
	lhsPath := tree.DotRefTokens(lhsNode)
	rhsPath := tree.DotRefTokens(rhsNode)

	lhs, err := sc.resolveSync(lhsPath, lhsNode.Token())
	if err != nil {
		return stmtResult{}, err
	}
	if lhs.kind != resObject {
		return stmtResult{}, diagnostics.New(diagnostics.ErrWrongKind, lhsNode.Token(),
			"assignment target must be an object")
	}
	rhs, err := sc.resolveSync(rhsPath, rhsNode.Token())
	if err != nil {
		return stmtResult{}, err
	}
	if rhs.kind != resSyncFunc {
		return stmtResult{}, diagnostics.New(diagnostics.ErrWrongKind, rhsNode.Token(),
			"%q is not a synchronous call", rhsPath[len(rhsPath)-1])
	}
	fn := m.Function(rhs.funcH)
	if err := checkArgs(m, sc, fn, argsNode, true); err != nil {
		return stmtResult{}, err
	}
	if lhs.classH != m.VoidClass && lhs.classH != fn.ReturnH {
		return stmtResult{}, diagnostics.New(diagnostics.ErrTypeMismatch, rhsNode.Token(),
			"call returns %q, assignment target is %q", m.Class(fn.ReturnH).Name, m.Class(lhs.classH).Name)
	}
	if lhs.classH != m.VoidClass {
		sc.setReady(lhs)
	}
	return stmtResult{stmt: model.Statement{
		Kind: model.StmtSyncCopyOrCall, ClassH: lhs.classH, LHSRef: lhsPath, RHSRef: rhsPath,
	}}, nil
}

func checkAsyncFrom(m *model.Model, sc *scope, n tree.Node) (stmtResult, *diagnostics.Error) {
	lhsNode := tree.Child(n, 0)
	rhsNode := tree.Child(n, 2)
	argsNode := tree.Child(n, 3)
	lhsPath := tree.DotRefTokens(lhsNode)
	rhsPath := tree.DotRefTokens(rhsNode)

	lhs, err := sc.resolveSync(lhsPath, lhsNode.Token())
	if err != nil {
		return stmtResult{}, err
	}
	if lhs.kind != resObject {
		return stmtResult{}, diagnostics.New(diagnostics.ErrWrongKind, lhsNode.Token(),
			"assignment target must be an object")
	}
	rhs, err := sc.resolveAsync(rhsPath, rhsNode.Token())
	if err != nil {
		return stmtResult{}, err
	}
	if rhs.kind != resAsyncFunc {
		return stmtResult{}, diagnostics.New(diagnostics.ErrWrongKind, rhsNode.Token(),
			"%q is not an asynchronous call", rhsPath[len(rhsPath)-1])
	}
	fn := m.Function(rhs.funcH)
	if err := checkArgs(m, sc, fn, argsNode, false); err != nil {
		return stmtResult{}, err
	}
	if lhs.classH != m.VoidClass && lhs.classH != fn.ReturnH {
		return stmtResult{}, diagnostics.New(diagnostics.ErrTypeMismatch, rhsNode.Token(),
			"call returns %q, assignment target is %q", m.Class(fn.ReturnH).Name, m.Class(lhs.classH).Name)
	}
	// LHS is NOT marked ready: the asynchronous result is not yet present.
	return stmtResult{stmt: model.Statement{
		Kind: model.StmtAsyncCall, ClassH: lhs.classH, LHSRef: lhsPath, RHSRef: rhsPath,
	}}, nil
}

// checkArgs validates a call's argument list against fn's declared
// parameters: arity, per-argument sync resolution, type match, and
// (requireReady) readiness.
func checkArgs(m *model.Model, sc *scope, fn *model.Function, argsNode tree.Node, requireReady bool) *diagnostics.Error {
	argNodes := tree.ParamListRefs(argsNode)
	if len(argNodes) != len(fn.Params) {
		return diagnostics.New(diagnostics.ErrArityMismatch, argsNode.Token(),
			"%q expects %d argument(s), got %d", fn.Name, len(fn.Params), len(argNodes))
	}
	for i, argNode := range argNodes {
		path := tree.DotRefTokens(argNode)
		r, err := sc.resolveSync(path, argNode.Token())
		if err != nil {
			return err
		}
		param := fn.Params[i]
		if r.kind != resObject {
			return diagnostics.New(diagnostics.ErrWrongKind, argNode.Token(),
				"argument %d must be an object", i+1)
		}
		if r.classH != param.ClassH {
			return diagnostics.New(diagnostics.ErrTypeMismatch, argNode.Token(),
				"argument %d has type %q, expected %q", i+1, m.Class(r.classH).Name, m.Class(param.ClassH).Name)
		}
		if requireReady && r.classH != m.VoidClass && !sc.ready(r) {
			return diagnostics.New(diagnostics.ErrNotReady, argNode.Token(),
				"argument %d (%q) is not ready", i+1, path[len(path)-1])
		}
	}
	return nil
}

// resolveTypeName resolves a var declaration's type name the same way
// any other type string resolves, including a generic instantiation
// written inline in a body, e.g. `List/Int name;`.
func resolveTypeName(m *model.Model, name string, tok token.Token) (model.ClassHandle, *diagnostics.Error) {
	return resolver.Resolve(m, name, tok)
}

func requireFreeLocal(sc *scope, nameTok token.Token) *diagnostics.Error {
	if _, exists := sc.vars[nameTok.Lexeme]; exists {
		return diagnostics.New(diagnostics.ErrDuplicateName, nameTok, "duplicate local name %q", nameTok.Lexeme)
	}
	return nil
}
