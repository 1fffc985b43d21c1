// Package walker implements the three-pass declaration walker: stubs, an
// alias-validation intermission, populate, a generic-materialization-
// plus-inheritance intermission, then bodies. It is the direct analogue
// of funxy's internal/analyzer multi-pass processor
// (Naming/Headers/Instances/Bodies) and of wandle_model_build's own
// three-pass structure in the original.
package walker

import (
	"sort"
	"strings"

	"github.com/wandlelang/wandle/internal/diagnostics"
	"github.com/wandlelang/wandle/internal/linearizer"
	"github.com/wandlelang/wandle/internal/model"
	"github.com/wandlelang/wandle/internal/resolver"
	"github.com/wandlelang/wandle/internal/token"
	"github.com/wandlelang/wandle/internal/tree"
)

// Walk drives the three passes over root (a "_grammar" node) into a
// freshly seeded Model and returns it once every pass has succeeded.
func Walk(root tree.Node) (*model.Model, *diagnostics.Error) {
	m := model.New()
	decls := topDecls(root)

	if err := stubPass(m, decls); err != nil {
		return nil, err
	}
	if err := validateAliases(m); err != nil {
		return nil, err
	}
	if err := populatePass(m, decls); err != nil {
		return nil, err
	}
	if err := resolver.RetrofitAll(m, root.Token()); err != nil {
		return nil, err
	}
	if err := linearizer.Linearize(m, root.Token()); err != nil {
		return nil, err
	}
	if err := bodiesPass(m); err != nil {
		return nil, err
	}
	return m, nil
}

// topDecls returns root's children with the trailing EOF terminal
// dropped (it carries no rule name and nothing to walk).
func topDecls(root tree.Node) []tree.Node {
	kids := root.Children()
	out := make([]tree.Node, 0, len(kids))
	for _, k := range kids {
		if k.RuleName() == "" {
			continue
		}
		out = append(out, k)
	}
	return out
}

// validateAliases implements the alias-validation intermission: every
// alias target must resolve to a known class via the resolver, which
// includes materializing a generic instantiation such as "List/Effect"
// the first time it is named — but the target string itself is never
// re-dereferenced through the alias table (aliases do not chain). Names
// are checked in sorted order so a source with more than one bad alias
// always reports the same one, keeping repeated runs over the same
// input deterministic.
func validateAliases(m *model.Model) *diagnostics.Error {
	names := make([]string, 0, len(m.Aliases))
	for name := range m.Aliases {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		target := m.Aliases[name]
		tok := m.AliasTok[name]
		if _, ok := m.ClassByName[target]; ok {
			continue
		}
		idx := strings.IndexByte(target, '/')
		if idx < 0 {
			return diagnostics.New(diagnostics.ErrInvalidAlias, tok,
				"alias %q targets unknown class %q", name, target)
		}
		genericName := target[:idx]
		args := strings.Split(target[idx+1:], ",")
		if _, err := resolver.Materialize(m, genericName, target, args, tok); err != nil {
			return err
		}
	}
	return nil
}

// declareOrPromote registers name as a Class, or — if name already
// occupies a placeholder Class slot from an earlier generic declaration
// — promotes that placeholder in place. A duplicate name is only
// tolerated when the existing entry is such a placeholder; any other
// collision fails fatally.
func declareOrPromote(m *model.Model, name string, tok token.Token) (model.ClassHandle, *diagnostics.Error) {
	kind, placeholder, exists := m.RootNameExists(name)
	if !exists {
		return m.DeclareClass(name, false), nil
	}
	if kind == model.RootClass && placeholder {
		h := m.ClassByName[name]
		m.Class(h).Placeholder = false
		return h, nil
	}
	return 0, diagnostics.New(diagnostics.ErrDuplicateName, tok, "duplicate name %q", name)
}

func requireFreeName(m *model.Model, name string, tok token.Token) *diagnostics.Error {
	if _, _, exists := m.RootNameExists(name); exists {
		return diagnostics.New(diagnostics.ErrDuplicateName, tok, "duplicate name %q", name)
	}
	return nil
}

// sepListNames extracts the name tokens from an interleaved
// name/comma/name/... list node such as `_class_inh_list` or
// `_csep_caps`.
func sepListNames(n tree.Node) []string {
	kids := n.Children()
	out := make([]string, 0, (len(kids)+1)/2)
	for _, k := range kids {
		if k.Value() == "," {
			continue
		}
		out = append(out, k.Value())
	}
	return out
}
