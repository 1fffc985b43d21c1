package wparser

import "github.com/wandlelang/wandle/internal/pipeline"

// Processor is the parsing pipeline stage: turns ctx.Stripped into
// ctx.Tree, recording a malformed-syntax error on ctx.Err instead of
// returning one, so it composes with pipeline.Pipeline.Run.
type Processor struct{}

func (Processor) Process(ctx *pipeline.Context) *pipeline.Context {
	root, err := Parse(ctx.Stripped)
	if err != nil {
		ctx.Err = err
		return ctx
	}
	ctx.Tree = root
	return ctx
}
