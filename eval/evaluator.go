// Package eval implements MTL's evaluator (spec.md §4.2): it walks a
// parsed Program and, statement by statement, drives the fixed
// nine-phase pipeline (resolve, filter, find/replace, conditional,
// in-place, combine, boolean substitution, default substitution) to
// produce the final ordered list of strings.
package eval

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/mtlang/mtl/ast"
	"github.com/mtlang/mtl/filter"
	"github.com/mtlang/mtl/mtlerr"
	"github.com/mtlang/mtl/parse"
	"github.com/mtlang/mtl/provider"
)

// Evaluator renders parsed MTL programs against a provider registry.
// One Evaluator is normally shared across every file a host processes;
// all per-render state (variables, the provider cache, the trace id)
// lives in the renderState built fresh by Render/RenderString.
type Evaluator struct {
	Registry *provider.Registry
	Logger   *slog.Logger
}

// New builds an Evaluator dispatching through reg. A nil logger falls
// back to slog.Default().
func New(reg *provider.Registry, logger *slog.Logger) *Evaluator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Evaluator{Registry: reg, Logger: logger}
}

// RenderString parses template and renders it against file in one call.
func (e *Evaluator) RenderString(ctx context.Context, filename, template string, file provider.FileHandle) ([]string, error) {
	prog, err := parse.Parse(filename, template)
	if err != nil {
		return nil, err
	}
	return e.Render(ctx, prog, file)
}

// Render evaluates prog against file, returning the rendered list.
// Bindings created by {var:...} are visible to later statements in this
// call only (spec.md §4.5); a fresh Render call starts with empty
// variable state.
func (e *Evaluator) Render(ctx context.Context, prog ast.Program, file provider.FileHandle) ([]string, error) {
	traceID := ulid.Make().String()
	ctx = provider.WithTodayCache(ctx)
	rs := &renderState{
		ctx:     ctx,
		ev:      e,
		file:    file,
		vars:    NewScope(),
		cache:   newProviderCache(),
		traceID: traceID,
	}
	out, err := rs.evalProgram(prog)
	if err != nil {
		e.Logger.LogAttrs(ctx, slog.LevelDebug, "render failed",
			slog.String("trace_id", traceID), slog.String("error", err.Error()))
		return nil, err
	}
	return out, nil
}

// renderState carries the mutable state of a single top-level render:
// bound variables, the memoized provider lookups, and the file/registry
// every statement dispatches against.
type renderState struct {
	ctx     context.Context
	ev      *Evaluator
	file    provider.FileHandle
	vars    *Scope
	cache   *providerCache
	traceID string
}

// evalProgram walks prog's nodes in order, concatenating each node's
// rendered list into the result. Cancellation is checked once per node,
// not mid-statement (spec.md §5): a statement's own modifier chain
// always finishes once started.
func (rs *renderState) evalProgram(prog ast.Program) ([]string, error) {
	var out []string
	for _, node := range prog {
		select {
		case <-rs.ctx.Done():
			return nil, rs.ctx.Err()
		default:
		}
		switch n := node.(type) {
		case *ast.Literal:
			out = append(out, n.Text)
		case *ast.Statement:
			vs, err := rs.evalStatement(n)
			if err != nil {
				return nil, err
			}
			out = append(out, vs...)
		}
	}
	return out, nil
}

// evalCallback adapts renderState into the provider.EvalFunc providers
// like format/strftime/var use to render their default-as-payload
// sub-template.
func (rs *renderState) evalCallback(_ context.Context, prog ast.Program) ([]string, error) {
	return rs.evalProgram(prog)
}

// evalStatement runs the fixed nine-phase pipeline of spec.md §4.2 over
// one statement.
func (rs *renderState) evalStatement(stmt *ast.Statement) ([]string, error) {
	values, consumedDefault, err := rs.resolveField(stmt)
	if err != nil {
		return nil, err
	}

	values, err = rs.applyFilters(stmt, values)
	if err != nil {
		return nil, err
	}

	values, err = rs.applyReplacements(stmt, values)
	if err != nil {
		return nil, err
	}

	boolResult, err := rs.evalConditional(stmt, values)
	if err != nil {
		return nil, err
	}

	if stmt.InPlace {
		values = []string{strings.Join(values, stmt.Delim)}
	}

	if stmt.HasCombine {
		combined, err := rs.evalProgram(stmt.Combine)
		if err != nil {
			return nil, err
		}
		values = append(values, combined...)
	}

	if stmt.HasTrue {
		if stmt.Conditional == nil {
			boolResult = len(values) > 0
		}
		if boolResult {
			values, err = rs.evalProgram(stmt.True)
		} else if stmt.HasDefault {
			values, err = rs.evalProgram(stmt.Default)
		} else {
			values = []string{"_"}
		}
		if err != nil {
			return nil, err
		}
		return values, nil
	}

	if !consumedDefault && len(values) == 0 {
		if stmt.HasDefault {
			values, err = rs.evalProgram(stmt.Default)
			if err != nil {
				return nil, err
			}
		} else {
			values = []string{"_"}
		}
	}

	return values, nil
}

// resolveField implements phase 1. A bare "{%NAME}" statement (no
// namespace, no attributes, field token literally "%NAME") is
// special-cased to read the variable scope instead of dispatching
// through the provider registry — the wrapped form of spec.md §4.4's
// "%NAME ... usable as a field". Every other statement dispatches
// through the registry, memoized per render unless it carries a default
// clause (a default-as-payload provider must see the real Default
// program on every call, not a cached result from a different payload).
func (rs *renderState) resolveField(stmt *ast.Statement) ([]string, bool, error) {
	if stmt.Namespace == "" && len(stmt.Attributes) == 0 && strings.HasPrefix(stmt.Field, "%") {
		return rs.lookupVariable(stmt.Field)
	}

	cacheable := !stmt.HasDefault && !isVolatile(stmt.Namespace, stmt.Field)
	if cacheable {
		if hit, ok := rs.cache.get(stmt.Namespace, stmt.Field, stmt.Attributes); ok {
			return hit.values, hit.consumedDefault, nil
		}
	}

	var def ast.Program
	if stmt.HasDefault {
		def = stmt.Default
	}
	req := provider.Request{
		Namespace: stmt.Namespace,
		Field:     stmt.Field,
		Attrs:     stmt.Attributes,
		Default:   def,
		File:      rs.file,
		Eval:      rs.evalCallback,
		Vars:      rs.vars,
	}
	values, consumedDefault, err := rs.ev.Registry.Resolve(rs.ctx, rs.traceID, req)
	if err != nil {
		return nil, false, err
	}

	if cacheable {
		rs.cache.put(stmt.Namespace, stmt.Field, stmt.Attributes, cachedResolve{values: values, consumedDefault: consumedDefault})
	}
	return values, consumedDefault, nil
}

// isVolatile reports whether a (namespace, field) pair must re-evaluate
// on every reference within a render rather than being memoized by the
// provider cache. "now" is the one such field (spec.md §9): unlike
// "today", which is deliberately sticky for the whole render via
// provider.Today's context-carried cache, "now" returns a fresh
// timestamp at each evaluation, so the provider cache — scoped to the
// same render — must never short-circuit a second {now} read.
func isVolatile(namespace, field string) bool {
	return namespace == "" && field == "now"
}

// lookupVariable resolves "%NAME" (or the literal "%%") as a field.
func (rs *renderState) lookupVariable(token string) ([]string, bool, error) {
	if token == "%%" {
		return []string{"%"}, false, nil
	}
	name := token[1:]
	v, ok := rs.vars.Lookup(name)
	if !ok {
		return nil, false, mtlerr.UnboundVariable(rs.traceID, name)
	}
	return v, false, nil
}

// applyFilters implements phase 2: the left-to-right filter pipeline.
// A filter's string argument, when present, is the filter's own
// sub-template rendered and flattened by concatenation.
func (rs *renderState) applyFilters(stmt *ast.Statement, values []string) ([]string, error) {
	for _, fc := range stmt.Filters {
		arg := ""
		if fc.HasArg {
			argValues, err := rs.evalProgram(fc.Arg)
			if err != nil {
				return nil, err
			}
			arg = strings.Join(argValues, "")
		}
		out, err := filter.Apply(rs.traceID, fc.Name, values, arg)
		if err != nil {
			return nil, err
		}
		values = out
	}
	return values, nil
}

// applyReplacements implements phase 3. Both sides of each pair may
// themselves contain "%NAME"/"%%" references (spec.md §4.4), expanded
// once per statement before the per-element substitution loop, since
// variable bindings never change mid-statement.
func (rs *renderState) applyReplacements(stmt *ast.Statement, values []string) ([]string, error) {
	if len(stmt.Replacements) == 0 {
		return values, nil
	}
	type pair struct{ find, replace string }
	pairs := make([]pair, len(stmt.Replacements))
	for i, r := range stmt.Replacements {
		find, err := rs.expandPercent(r.Find)
		if err != nil {
			return nil, err
		}
		replace, err := rs.expandPercent(r.Replace)
		if err != nil {
			return nil, err
		}
		pairs[i] = pair{find, replace}
	}
	out := make([]string, len(values))
	for i, v := range values {
		for _, p := range pairs {
			v = strings.ReplaceAll(v, p.find, p.replace)
		}
		out[i] = v
	}
	return out, nil
}

// expandPercent substitutes raw "%NAME" and "%%" occurrences in literal
// replacement text. It is deliberately not applied to generic template
// literal text (outside find/replace blocks), so strftime format
// strings like "%Y-%m-%d" pass through untouched elsewhere; this is the
// one place spec.md §4.4's unwrapped "%NAME in literal text" rule
// applies.
func (rs *renderState) expandPercent(text string) (string, error) {
	if !strings.ContainsRune(text, '%') {
		return text, nil
	}
	var b strings.Builder
	r := []rune(text)
	for i := 0; i < len(r); i++ {
		if r[i] != '%' {
			b.WriteRune(r[i])
			continue
		}
		if i+1 < len(r) && r[i+1] == '%' {
			b.WriteRune('%')
			i++
			continue
		}
		j := i + 1
		for j < len(r) && isIdentRune(r[j]) {
			j++
		}
		if j == i+1 {
			b.WriteRune('%')
			continue
		}
		name := string(r[i+1 : j])
		v, ok := rs.vars.Lookup(name)
		if !ok {
			return "", mtlerr.UnboundVariable(rs.traceID, name)
		}
		b.WriteString(strings.Join(v, ""))
		i = j - 1
	}
	return b.String(), nil
}

func isIdentRune(r rune) bool {
	return r == '_' ||
		(r >= 'a' && r <= 'z') ||
		(r >= 'A' && r <= 'Z') ||
		(r >= '0' && r <= '9')
}

// evalConditional implements phase 4. A conditional's own absence
// short-circuits to (false, nil) — phase 7/9 then decide purely on
// list emptiness.
func (rs *renderState) evalConditional(stmt *ast.Statement, values []string) (bool, error) {
	if stmt.Conditional == nil {
		return false, nil
	}
	cond := stmt.Conditional

	valueList, err := rs.evalProgram(cond.Value)
	if err != nil {
		return false, err
	}
	var candidates []string
	for _, v := range valueList {
		candidates = append(candidates, strings.Split(v, "|")...)
	}

	match := false
	for _, elem := range values {
		for _, cand := range candidates {
			if compare(cond.Op, elem, cand) {
				match = true
				break
			}
		}
		if match {
			break
		}
	}
	if cond.Negate {
		match = !match
	}
	return match, nil
}
