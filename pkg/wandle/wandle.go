// Package wandle is the library surface over the semantic analyzer: one
// public entry point that takes Wandle source text and returns a
// validated Model, wrapping the full comment-strip -> parse -> walk
// pipeline so a caller never has to wire the stages by hand. In the
// style of funxy's pkg/cli/entry.go and pkg/embed/vm.go, which both wrap
// internal/pipeline behind a small public API rather than exposing the
// stage packages directly.
package wandle

import (
	"os"

	"github.com/wandlelang/wandle/internal/commentstrip"
	"github.com/wandlelang/wandle/internal/diagnostics"
	"github.com/wandlelang/wandle/internal/model"
	"github.com/wandlelang/wandle/internal/pipeline"
	"github.com/wandlelang/wandle/internal/prettyprinter"
	"github.com/wandlelang/wandle/internal/token"
	"github.com/wandlelang/wandle/internal/walker"
	"github.com/wandlelang/wandle/internal/wparser"
)

// Error is the single fatal-error kind produced by every stage, re-
// exported so callers outside this module never need to import
// internal/diagnostics directly.
type Error = diagnostics.Error

// Model is the validated intermediate representation built from a
// Wandle source file.
type Model = model.Model

// BuildSource runs the full pipeline — comment stripping, parsing, and
// the three-pass semantic walk — over raw Wandle DSL source text and
// returns a validated Model, or the first fatal error encountered.
func BuildSource(src string) (*Model, *Error) {
	ctx := pipeline.NewContext(src)
	p := pipeline.New(
		commentstrip.Processor{},
		wparser.Processor{},
		walker.Processor{},
	)
	ctx = p.Run(ctx)
	if ctx.Err != nil {
		return nil, ctx.Err
	}
	return ctx.Model, nil
}

// BuildFile reads path and calls BuildSource. Existence/file-type checks
// beyond a plain read error are the CLI layer's job.
func BuildFile(path string) (*Model, *Error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, diagnostics.New(diagnostics.ErrMalformedSyntax, token.Token{}, "%s", err.Error())
	}
	return BuildSource(string(data))
}

// PrettyPrint renders m back to Wandle DSL source.
func PrettyPrint(m *Model) string {
	return prettyprinter.Print(m)
}
