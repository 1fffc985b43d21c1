package walker

import (
	"github.com/wandlelang/wandle/internal/checker"
	"github.com/wandlelang/wandle/internal/diagnostics"
	"github.com/wandlelang/wandle/internal/model"
)

// bodiesPass is the third declaration pass. Every Function — a class or
// single method, a flow, or a generic-materialized clone — already
// carries its own BodyNode by this point, so checking every Function in
// the arena is equivalent to walking the tree a third time looking for
// `_cb_grammar` nodes: Function.Container already records what the
// current top of stack would have been at that point in the walk.
func bodiesPass(m *model.Model) *diagnostics.Error {
	for fh := range m.Functions {
		if err := checker.CheckFunction(m, model.FunctionHandle(fh)); err != nil {
			return err
		}
	}
	return nil
}
