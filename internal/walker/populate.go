package walker

import (
	"github.com/wandlelang/wandle/internal/diagnostics"
	"github.com/wandlelang/wandle/internal/model"
	"github.com/wandlelang/wandle/internal/resolver"
	"github.com/wandlelang/wandle/internal/token"
	"github.com/wandlelang/wandle/internal/tree"
)

// populatePass is the second declaration pass: fill in the member tables
// stubbed in the first. A Class or Single resolves its member types
// immediately (generics referenced here materialize lazily); a Generic
// instead records each member as an unresolved model.MemberTemplate,
// since its own template parameters are not concrete classes yet.
func populatePass(m *model.Model, decls []tree.Node) *diagnostics.Error {
	for _, decl := range decls {
		var err *diagnostics.Error
		switch decl.RuleName() {
		case "_class_gram":
			err = populateClass(m, decl)
		case "_generic_gram":
			err = populateGeneric(m, decl)
		case "_single_gram":
			err = populateSingle(m, decl)
		case "_flow_gram":
			err = populateFlow(m, decl)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func populateClass(m *model.Model, decl tree.Node) *diagnostics.Error {
	inner := tree.Child(decl, 0)
	var block tree.Node
	switch inner.RuleName() {
	case "_class_base_impl":
		block = tree.Child(inner, 2)
	case "_class_inh_impl":
		block = tree.Child(inner, 4)
	default:
		return nil // stub form: no member block
	}
	nameTok := tree.Child(inner, 1).Token()
	ch := m.ClassByName[nameTok.Lexeme]
	return populateMembers(m, block, model.ClassContainer(ch))
}

func populateSingle(m *model.Model, decl tree.Node) *diagnostics.Error {
	inner := tree.Child(decl, 0)
	if inner.RuleName() != "_single_impl" {
		return nil
	}
	nameTok := tree.Child(inner, 1).Token()
	ch := m.Singles[nameTok.Lexeme]
	block := tree.Child(inner, 2)
	return populateMembers(m, block, model.ClassContainer(ch))
}

func populateFlow(m *model.Model, decl tree.Node) *diagnostics.Error {
	inner := tree.Child(decl, 0)
	if inner.RuleName() != "_flow_impl" {
		return nil
	}
	nameTok := tree.Child(inner, 1).Token()
	body := tree.Child(inner, 2)
	fh := m.Flows[nameTok.Lexeme]
	m.Function(fh).BodyNode = body
	return nil
}

// populateMembers resolves and registers every member of a `_cgs_block`
// node directly onto container, a concrete Class (or a Single's backing
// class).
func populateMembers(m *model.Model, block tree.Node, container model.ContainerRef) *diagnostics.Error {
	for _, member := range blockMembers(block) {
		pm := parseMember(member)
		if pm.isFunc {
			returnH, err := resolver.Resolve(m, pm.returnType, pm.tok)
			if err != nil {
				return err
			}
			params, err := resolveParams(m, pm)
			if err != nil {
				return err
			}
			m.NewFunction(pm.kind, pm.name, returnH, params, pm.bodyNode, container)
		} else {
			fieldH, err := resolver.Resolve(m, pm.fieldType, pm.tok)
			if err != nil {
				return err
			}
			m.NewObject(fieldH, pm.name, pm.ready, container)
		}
	}
	return nil
}

func populateGeneric(m *model.Model, decl tree.Node) *diagnostics.Error {
	inner := tree.Child(decl, 0)
	if inner.RuleName() != "_generic_impl" {
		return nil
	}
	nameTok := tree.Child(inner, 1).Token()
	gh := m.GenericByName[nameTok.Lexeme]
	g := m.Generic(gh)
	block := tree.Child(inner, 3)
	for _, member := range blockMembers(block) {
		pm := parseMember(member)
		mt := model.MemberTemplate{
			IsFunc:     pm.isFunc,
			Kind:       pm.kind,
			ReturnType: pm.returnType,
			ParamTypes: pm.paramTypes,
			ParamNames: pm.paramNames,
			BodyNode:   pm.bodyNode,
			FieldType:  pm.fieldType,
			Ready:      pm.ready,
			Name:       pm.name,
		}
		g.Members = append(g.Members, mt)
	}
	return nil
}

// blockMembers returns a `_cgs_block` node's member children, dropping
// the surrounding `{`/`}` terminals.
func blockMembers(block tree.Node) []tree.Node {
	kids := block.Children()
	if len(kids) < 2 {
		return nil
	}
	return kids[1 : len(kids)-1]
}

// parsedMember is the generic shape every one of the six member rules
// reduces to, shared between concrete population (which resolves type
// strings right away) and generic population (which keeps them raw).
type parsedMember struct {
	isFunc bool
	tok    token.Token
	name   string

	kind       model.FuncKind
	returnType string
	paramTypes []string
	paramNames []string
	bodyNode   tree.Node

	fieldType string
	ready     bool
}

func parseMember(n tree.Node) parsedMember {
	switch n.RuleName() {
	case "_cgs_async_stub", "_cgs_async_impl", "_cgs_sync_stub", "_cgs_sync_impl":
		kind := model.Sync
		hasBody := n.RuleName() == "_cgs_async_impl" || n.RuleName() == "_cgs_sync_impl"
		if n.RuleName() == "_cgs_async_stub" || n.RuleName() == "_cgs_async_impl" {
			kind = model.Async
		}
		rtypeTok := tree.Child(n, 1).Token()
		nameTok := tree.Child(n, 2).Token()
		sig := tree.Child(n, 3)
		pairs := sigPairs(sig)
		paramTypes := make([]string, len(pairs))
		paramNames := make([]string, len(pairs))
		for i, pr := range pairs {
			paramTypes[i] = tree.Child(pr, 0).Value()
			paramNames[i] = tree.Child(pr, 1).Value()
		}
		var body tree.Node
		if hasBody {
			body = tree.Child(n, 4)
		}
		return parsedMember{
			isFunc: true, tok: nameTok, name: nameTok.Lexeme,
			kind: kind, returnType: rtypeTok.Lexeme,
			paramTypes: paramTypes, paramNames: paramNames, bodyNode: body,
		}

	default: // _cgs_var_stub, _cgs_var_ready
		ctypeTok := tree.Child(n, 0).Token()
		nameTok := tree.Child(n, 1).Token()
		return parsedMember{
			isFunc: false, tok: nameTok, name: nameTok.Lexeme,
			fieldType: ctypeTok.Lexeme, ready: n.RuleName() == "_cgs_var_ready",
		}
	}
}

// sigPairs extracts the `_normal_sig_pair` children from a `_method_sig`
// node, dropping the surrounding parens and commas.
func sigPairs(sig tree.Node) []tree.Node {
	kids := sig.Children()
	if len(kids) < 2 {
		return nil
	}
	inner := kids[1 : len(kids)-1]
	out := make([]tree.Node, 0, (len(inner)+1)/2)
	for _, k := range inner {
		if k.RuleName() == "_normal_sig_pair" {
			out = append(out, k)
		}
	}
	return out
}

func resolveParams(m *model.Model, pm parsedMember) ([]model.Parameter, *diagnostics.Error) {
	params := make([]model.Parameter, len(pm.paramTypes))
	for i, pt := range pm.paramTypes {
		ph, err := resolver.Resolve(m, pt, pm.tok)
		if err != nil {
			return nil, err
		}
		params[i] = model.Parameter{ClassH: ph, Name: pm.paramNames[i]}
	}
	return params, nil
}
