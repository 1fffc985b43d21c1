package commentstrip

import "github.com/wandlelang/wandle/internal/pipeline"

// Processor is the comment-stripping pipeline stage, run before the
// lexer ever sees the source text.
type Processor struct{}

func (Processor) Process(ctx *pipeline.Context) *pipeline.Context {
	ctx.Stripped = Strip(ctx.Source)
	return ctx
}
