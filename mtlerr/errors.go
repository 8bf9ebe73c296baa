// Package mtlerr defines MTL's error taxonomy (spec.md §7): SyntaxError
// from the parser, and the evaluation-time error kinds returned by the
// evaluator and provider registry. Every kind is built with samber/oops
// so errors carry structured context (offset/position, namespace,
// field, a trace id for correlating concurrent per-file renders) instead
// of opaque fmt.Errorf strings, and remain errors.Is/errors.As
// compatible with the sentinel Kind values below.
package mtlerr

import (
	"fmt"

	"github.com/alecthomas/participle/v2/lexer"
	"github.com/samber/oops"
)

// Kind identifies one of the taxonomy's error kinds, for errors.Is
// checks against the Kind field of a *Error.
type Kind string

const (
	KindSyntax          Kind = "syntax_error"
	KindUnknownField    Kind = "unknown_field"
	KindUnknownFilter   Kind = "unknown_filter"
	KindBadFilterArg    Kind = "bad_filter_arg"
	KindCoercion        Kind = "coercion"
	KindUnboundVariable Kind = "unbound_variable"
	KindProviderError   Kind = "provider_error"
)

// Error is the common shape for every MTL error kind. Cause carries the
// oops-annotated wrapped error used for structured logging; Error()
// renders a concise, human-readable message.
type Error struct {
	Kind  Kind
	Cause error
}

func (e *Error) Error() string { return e.Cause.Error() }
func (e *Error) Unwrap() error { return e.Cause }

// Is supports errors.Is(err, mtlerr.ErrSyntax) style sentinel checks by
// comparing Kind, not identity.
func (e *Error) Is(target error) bool {
	other, ok := target.(*Error)
	if !ok {
		return false
	}
	return other.Kind == "" || other.Kind == e.Kind
}

func builder(kind Kind, traceID string) oops.OopsErrorBuilder {
	b := oops.Code(string(kind))
	if traceID != "" {
		b = b.With("trace_id", traceID)
	}
	return b
}

// Syntax builds a SyntaxError(offset, reason) per spec.md §7.
func Syntax(pos lexer.Position, reason string) error {
	return &Error{
		Kind: KindSyntax,
		Cause: builder(KindSyntax, "").
			With("offset", pos.Offset).
			With("line", pos.Line).
			With("column", pos.Column).
			Errorf("syntax error at %s: %s", pos, reason),
	}
}

// UnknownField builds an UnknownField(namespace, subfield) error.
func UnknownField(traceID, namespace, field string) error {
	return &Error{
		Kind: KindUnknownField,
		Cause: builder(KindUnknownField, traceID).
			With("namespace", namespace).
			With("field", field).
			Errorf("no provider resolved namespace %q field %q", namespace, field),
	}
}

// UnknownFilter builds an UnknownFilter(name) error.
func UnknownFilter(traceID, name string) error {
	return &Error{
		Kind: KindUnknownFilter,
		Cause: builder(KindUnknownFilter, traceID).
			With("filter", name).
			Errorf("unknown filter %q", name),
	}
}

// BadFilterArg builds a BadFilterArg(name, reason) error.
func BadFilterArg(traceID, name, reason string) error {
	return &Error{
		Kind: KindBadFilterArg,
		Cause: builder(KindBadFilterArg, traceID).
			With("filter", name).
			Errorf("bad argument to filter %q: %s", name, reason),
	}
}

// Coercion builds a Coercion(type, value) error.
func Coercion(traceID, typ, value string) error {
	return &Error{
		Kind: KindCoercion,
		Cause: builder(KindCoercion, traceID).
			With("type", typ).
			With("value", value).
			Errorf("cannot coerce %q to %s", value, typ),
	}
}

// UnboundVariable builds an UnboundVariable(name) error.
func UnboundVariable(traceID, name string) error {
	return &Error{
		Kind: KindUnboundVariable,
		Cause: builder(KindUnboundVariable, traceID).
			With("variable", name).
			Errorf("unbound variable %%%s", name),
	}
}

// ProviderError builds a ProviderError(namespace, inner) error.
func ProviderError(traceID, namespace string, inner error) error {
	return &Error{
		Kind: KindProviderError,
		Cause: builder(KindProviderError, traceID).
			With("namespace", namespace).
			Wrapf(inner, "provider %q failed", namespace),
	}
}

// sentinel kinds for errors.Is(err, mtlerr.ErrSyntax)-style matching
// against just the Kind, ignoring Cause.
var (
	ErrSyntax          = &Error{Kind: KindSyntax}
	ErrUnknownField    = &Error{Kind: KindUnknownField}
	ErrUnknownFilter   = &Error{Kind: KindUnknownFilter}
	ErrBadFilterArg    = &Error{Kind: KindBadFilterArg}
	ErrCoercion        = &Error{Kind: KindCoercion}
	ErrUnboundVariable = &Error{Kind: KindUnboundVariable}
	ErrProviderError   = &Error{Kind: KindProviderError}
)

var _ fmt.Stringer = Kind("")

func (k Kind) String() string { return string(k) }
