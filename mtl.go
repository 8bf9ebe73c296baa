// Package mtl is the engine's package-level API (spec.md §6): parse a
// template string once, then render it against any number of files and
// a provider registry.
package mtl

import (
	"context"
	"log/slog"

	"github.com/mtlang/mtl/ast"
	"github.com/mtlang/mtl/eval"
	"github.com/mtlang/mtl/parse"
	"github.com/mtlang/mtl/provider"
)

// Parse parses template into a Program, or a SyntaxError (see mtlerr).
func Parse(template string) (ast.Program, error) {
	return parse.Parse("", template)
}

// ParseFile is Parse, attributing parser error positions to filename.
func ParseFile(filename, template string) (ast.Program, error) {
	return parse.Parse(filename, template)
}

// Render evaluates prog against file using reg, returning the rendered
// ordered list of strings.
func Render(ctx context.Context, prog ast.Program, file provider.FileHandle, reg *provider.Registry) ([]string, error) {
	return eval.New(reg, slog.Default()).Render(ctx, prog, file)
}

// RenderString parses template and renders it against file in one call.
func RenderString(ctx context.Context, template string, file provider.FileHandle, reg *provider.Registry) ([]string, error) {
	return eval.New(reg, slog.Default()).RenderString(ctx, "", template, file)
}

// NewRegistry returns an empty provider registry, ready for Register
// calls (spec.md §4.4).
func NewRegistry() *provider.Registry {
	return provider.NewRegistry()
}
