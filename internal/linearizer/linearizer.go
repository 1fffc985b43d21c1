// Package linearizer implements the inheritance linearizer: a
// topological, round-based propagation of unmasked parent members into
// their children, grounded on wandle_model.py's
// build_class_inheritance_hierarchy.
package linearizer

import (
	"github.com/wandlelang/wandle/internal/diagnostics"
	"github.com/wandlelang/wandle/internal/model"
	"github.com/wandlelang/wandle/internal/token"
)

// Linearize resolves every Class's Parents into ParentsH, then walks the
// graph round by round: a class becomes ready once every parent is done,
// at which point each parent's unmasked async/sync/object members are
// inserted into the child (a reference, not a copy). Classes with no
// parents are ready, and therefore done, immediately. If convergence
// leaves any class undone, the remainder forms a cycle and Linearize
// fails fatally.
func Linearize(m *model.Model, tok token.Token) *diagnostics.Error {
	n := len(m.Classes)
	for i := 0; i < n; i++ {
		cl := m.Class(model.ClassHandle(i))
		if len(cl.Parents) > 0 && cl.ParentsH == nil {
			cl.ParentsH = make([]model.ClassHandle, len(cl.Parents))
			for j, pname := range cl.Parents {
				ph, ok := m.ClassByName[pname]
				if !ok {
					return diagnostics.New(diagnostics.ErrUnknownType, tok,
						"unknown parent class %q for %q", pname, cl.Name)
				}
				cl.ParentsH[j] = ph
			}
		}
	}

	done := make([]bool, n)
	var ready []model.ClassHandle
	for i := 0; i < n; i++ {
		if len(m.Classes[i].Parents) == 0 {
			ready = append(ready, model.ClassHandle(i))
		}
	}

	doneCount := 0
	for len(ready) > 0 {
		for _, ch := range ready {
			cl := m.Class(ch)
			declared := make(map[string]bool, len(cl.Async)+len(cl.Sync)+len(cl.Objects))
			for name := range cl.Async {
				declared[name] = true
			}
			for name := range cl.Sync {
				declared[name] = true
			}
			for name := range cl.Objects {
				declared[name] = true
			}
			for _, ph := range cl.ParentsH {
				parent := m.Class(ph)
				for name, fh := range parent.Async {
					if !declared[name] {
						cl.Async[name] = fh
						declared[name] = true
					}
				}
				for name, fh := range parent.Sync {
					if !declared[name] {
						cl.Sync[name] = fh
						declared[name] = true
					}
				}
				for name, oh := range parent.Objects {
					if !declared[name] {
						cl.Objects[name] = oh
						declared[name] = true
					}
				}
			}
			done[ch] = true
		}
		doneCount += len(ready)

		var next []model.ClassHandle
		for i := 0; i < n; i++ {
			if done[i] || len(m.Classes[i].ParentsH) == 0 {
				continue
			}
			allDone := true
			for _, ph := range m.Classes[i].ParentsH {
				if !done[ph] {
					allDone = false
					break
				}
			}
			if allDone {
				next = append(next, model.ClassHandle(i))
			}
		}
		ready = next
	}

	if doneCount != n {
		return diagnostics.New(diagnostics.ErrInheritanceCycle, tok, "inheritance cycle detected")
	}
	return nil
}
