// Package resolver implements the type resolver and the generic
// materializer: turning a type string — possibly aliased, possibly a
// generic instantiation like "List/Effect" — into a concrete
// model.ClassHandle, instantiating generics lazily the first time one
// of their instantiations is referenced.
package resolver

import (
	"strings"

	"github.com/wandlelang/wandle/internal/diagnostics"
	"github.com/wandlelang/wandle/internal/model"
	"github.com/wandlelang/wandle/internal/token"
)

// Resolve applies one level of alias indirection, then the
// specific-class table, then (for a "G/A1,...,An" string) the generic
// materializer. tok is used only to position a failure diagnostic.
func Resolve(m *model.Model, typeStr string, tok token.Token) (model.ClassHandle, *diagnostics.Error) {
	if target, ok := m.Aliases[typeStr]; ok {
		typeStr = target
	}
	if h, ok := m.ClassByName[typeStr]; ok {
		return h, nil
	}
	if idx := strings.IndexByte(typeStr, '/'); idx >= 0 {
		genericName := typeStr[:idx]
		args := strings.Split(typeStr[idx+1:], ",")
		return Materialize(m, genericName, typeStr, args, tok)
	}
	return 0, diagnostics.New(diagnostics.ErrUnknownType, tok, "unknown type %q", typeStr)
}

// Materialize validates arity, clones genericName's members substituting
// template-parameter names with the supplied concrete argument strings,
// and registers the result under typeStr in the specific-class table.
func Materialize(m *model.Model, genericName, typeStr string, args []string, tok token.Token) (model.ClassHandle, *diagnostics.Error) {
	gh, ok := m.GenericByName[genericName]
	if !ok {
		return 0, diagnostics.New(diagnostics.ErrUnknownType, tok, "unknown generic %q", genericName)
	}
	g := m.Generic(gh)
	if len(args) != len(g.Params) {
		return 0, diagnostics.New(diagnostics.ErrArityMismatch, tok,
			"generic %q expects %d type argument(s), got %d", genericName, len(g.Params), len(args))
	}

	subst := make(map[string]string, len(g.Params))
	for i, p := range g.Params {
		subst[p] = args[i]
	}

	ch := m.DeclareClass(typeStr, false)
	if err := materializeMembers(m, gh, ch, subst, tok); err != nil {
		return 0, err
	}
	g = m.Generic(gh)
	g.Instances = append(g.Instances, ch)
	return ch, nil
}

// RetrofitAll re-runs materialization for every generic instance built so
// far, against each generic's current (now fully populated) member list.
// A type reference encountered earlier in the populate pass may have
// materialized an instance before its generic's own block had been
// fully walked, leaving it with an incomplete member set; this pass
// fixes every such instance up once the generic itself is complete.
func RetrofitAll(m *model.Model, tok token.Token) *diagnostics.Error {
	for gh := range m.Generics {
		g := m.Generic(model.GenericHandle(gh))
		for _, ch := range g.Instances {
			cl := m.Class(ch)
			name, args := splitInstanceName(cl.Name)
			subst := make(map[string]string, len(g.Params))
			for i, p := range g.Params {
				if i < len(args) {
					subst[p] = args[i]
				}
			}
			_ = name
			cl.Async = map[string]model.FunctionHandle{}
			cl.Sync = map[string]model.FunctionHandle{}
			cl.Objects = map[string]model.ObjectHandle{}
			if err := materializeMembers(m, model.GenericHandle(gh), ch, subst, tok); err != nil {
				return err
			}
		}
	}
	return nil
}

func splitInstanceName(name string) (generic string, args []string) {
	idx := strings.IndexByte(name, '/')
	if idx < 0 {
		return name, nil
	}
	return name[:idx], strings.Split(name[idx+1:], ",")
}

func materializeMembers(m *model.Model, gh model.GenericHandle, ch model.ClassHandle, subst map[string]string, tok token.Token) *diagnostics.Error {
	g := m.Generic(gh)
	for _, mt := range g.Members {
		if mt.IsFunc {
			rh, err := Resolve(m, substOne(mt.ReturnType, subst), tok)
			if err != nil {
				return err
			}
			params := make([]model.Parameter, len(mt.ParamTypes))
			for i, pt := range mt.ParamTypes {
				ph, err := Resolve(m, substOne(pt, subst), tok)
				if err != nil {
					return err
				}
				params[i] = model.Parameter{ClassH: ph, Name: mt.ParamNames[i]}
			}
			m.NewFunction(mt.Kind, mt.Name, rh, params, mt.BodyNode, model.ClassContainer(ch))
		} else {
			fh, err := Resolve(m, substOne(mt.FieldType, subst), tok)
			if err != nil {
				return err
			}
			m.NewObject(fh, mt.Name, mt.Ready, model.ClassContainer(ch))
		}
	}
	return nil
}

// substOne substitutes typeStr only when it is an exact match for a
// template-parameter name. A nested generic reference such as "List/T"
// is left literal — it is re-resolved lazily, the same way any other
// generic instantiation string is.
func substOne(typeStr string, subst map[string]string) string {
	if repl, ok := subst[typeStr]; ok {
		return repl
	}
	return typeStr
}
