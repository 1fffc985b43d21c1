package walker

import "github.com/wandlelang/wandle/internal/pipeline"

// Processor is the semantic-analysis pipeline stage: drives the
// three-pass walk over ctx.Tree into ctx.Model.
type Processor struct{}

func (Processor) Process(ctx *pipeline.Context) *pipeline.Context {
	if ctx.Err != nil || ctx.Tree == nil {
		return ctx
	}
	m, err := Walk(ctx.Tree)
	if err != nil {
		ctx.Err = err
		return ctx
	}
	ctx.Model = m
	return ctx
}
