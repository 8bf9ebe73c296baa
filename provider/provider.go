// Package provider defines the dispatch contract pluggable metadata
// providers implement (spec.md §4.4, §6), and the namespace registry
// that routes a field to one. The engine only ever sees an
// already-populated *Registry; discovery of third-party providers is a
// host concern (package pluginhost).
package provider

import (
	"context"

	"github.com/mtlang/mtl/ast"
)

// FileHandle is the opaque handle identifying the current input
// artifact (spec.md §3). The engine never performs I/O itself; every
// file-metadata field call goes through the host's implementation of
// this interface.
type FileHandle interface {
	// Path returns a host-meaningful identifier for the file, used by
	// the filepath builtin field and passed on to plugin providers.
	Path() string
}

// EvalFunc lets a provider evaluate an MTL sub-template against the
// same context it was called with — the "eval-callback" of spec.md §6,
// needed by format/strftime/strip.
type EvalFunc func(ctx context.Context, prog ast.Program) ([]string, error)

// VarBinder exposes the render's variable scope to the builtin "var"
// field, which is the only provider that ever mutates it; every other
// provider only ever needs Lookup, if anything.
type VarBinder interface {
	Bind(name string, value []string)
	Lookup(name string) ([]string, bool)
}

// Provider resolves fields for one or more namespaces. A provider may
// decline to handle a (field, attributes) pair by returning
// ok == false, allowing the registry to try the next provider
// registered for the same namespace before giving up with
// mtlerr.UnknownField.
type Provider interface {
	// Namespaces lists the namespace strings this provider claims.
	// "" is the no-namespace builtin slot.
	Namespaces() []string

	// Resolve dispatches one field lookup. req.Field is the subfield name
	// (spec.md's "subfield" — for no-namespace fields this is the bare
	// field name, e.g. "size"). req.Attrs is the dot-chain of attributes
	// following the field. req.Default is the statement's default
	// sub-template AST, handed to providers (like strftime/format/var/strip)
	// whose syntax uses it as a payload rather than a fallback value; it
	// is nil when the statement had no default clause. consumedDefault
	// must be true when the provider used def as its payload, telling
	// the evaluator to skip phase 9's default-substitution.
	Resolve(ctx context.Context, req Request) (values []string, consumedDefault, ok bool, err error)
}

// Request bundles one field resolution's inputs.
type Request struct {
	Namespace string
	Field     string
	Attrs     []string
	Default   ast.Program
	File      FileHandle
	Eval      EvalFunc
	Vars      VarBinder
}

// Versioned is optionally implemented by a Provider to declare the
// engine API version it was built against, gating registration per
// DESIGN.md's Masterminds/semver usage.
type Versioned interface {
	APIVersion() string
}
