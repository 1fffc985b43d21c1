// Package pipeline chains the Wandle toolchain's stages — comment
// stripping, parsing, and semantic analysis — behind one shared context,
// in the style of funxy's internal/pipeline (itself used by
// pkg/cli/entry.go to chain its own lexer/parser/analyzer processors).
//
// Unlike funxy, which keeps running every processor so an LSP session can
// collect parse AND semantic diagnostics in one pass, every Wandle error
// is fatal and aborts the whole pass on first failure, so Run stops at
// the first processor that leaves an error on the context.
package pipeline

import (
	"github.com/wandlelang/wandle/internal/diagnostics"
	"github.com/wandlelang/wandle/internal/model"
	"github.com/wandlelang/wandle/internal/tree"
)

// Context carries the in-progress state of a single source file through
// every pipeline stage.
type Context struct {
	FilePath string

	Source   string // raw, as read from disk
	Stripped string // after internal/commentstrip

	Tree  tree.Node
	Model *model.Model

	Err *diagnostics.Error
}

// NewContext seeds a Context with raw source text, ready for the first
// processor.
func NewContext(source string) *Context {
	return &Context{Source: source}
}

// Processor is one pipeline stage. It must be safe to call with a context
// that already carries an error (Run never does, but a caller assembling
// its own sequence outside Run might).
type Processor interface {
	Process(ctx *Context) *Context
}

// Pipeline is an ordered sequence of Processors.
type Pipeline struct {
	processors []Processor
}

// New builds a Pipeline from an ordered processor list.
func New(processors ...Processor) *Pipeline {
	return &Pipeline{processors: processors}
}

// Run executes every stage in order, stopping as soon as one leaves ctx.Err
// set.
func (p *Pipeline) Run(ctx *Context) *Context {
	for _, proc := range p.processors {
		if ctx.Err != nil {
			break
		}
		ctx = proc.Process(ctx)
	}
	return ctx
}
