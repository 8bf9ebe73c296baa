// Package filter implements the MTL filter catalog (spec.md §4.3).
// Every filter is a pure function over an ordered list of strings,
// dispatched by name through a table built at init time — the same
// named-transform-dispatch shape stencil's executor.applyTransform
// uses, generalized from four string transforms to the full catalog.
package filter

import (
	"sort"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/mtlang/mtl/mtlerr"
)

// Func is one filter's implementation. arg is the (already rendered and
// flattened) string argument for filters that take one; it is "" for
// filters that don't.
type Func func(list []string, arg string) ([]string, error)

// takesArg marks which filters consume the string argument built from
// their parenthesized MTL sub-template (spec.md §4.2 phase 2).
var takesArg = map[string]bool{
	"split": true, "chop": true, "chomp": true,
	"append": true, "prepend": true, "appends": true, "prepends": true,
	"remove": true, "slice": true, "sslice": true, "join": true,
}

// TakesArg reports whether filter name consumes a string argument.
func TakesArg(name string) bool { return takesArg[name] }

var caser = cases.Title(language.Und)

var table = map[string]Func{
	"lower": perElement(func(s string) string { return cases.Lower(language.Und).String(s) }),
	"upper": perElement(func(s string) string { return cases.Upper(language.Und).String(s) }),
	"strip": perElement(strings.TrimSpace),
	"titlecase": perElement(func(s string) string { return caser.String(s) }),
	"capitalize": perElement(capitalize),

	"braces":   perElement(func(s string) string { return "{" + s + "}" }),
	"parens":   perElement(func(s string) string { return "(" + s + ")" }),
	"brackets": perElement(func(s string) string { return "[" + s + "]" }),

	"split":    filterSplit,
	"autosplit": filterAutosplit,

	"chop":  filterChop,
	"chomp": filterChomp,

	"sort":    filterSort,
	"rsort":   filterRsort,
	"reverse": filterReverse,
	"uniq":    filterUniq,

	"join": filterJoin,

	"append":   filterAppend,
	"prepend":  filterPrepend,
	"appends":  filterAppends,
	"prepends": filterPrepends,
	"remove":   filterRemove,

	"slice":  filterSlice,
	"sslice": filterSslice,
}

// Apply runs filter name over list with the given (already rendered)
// string argument, returning mtlerr.UnknownFilter if name isn't in the
// catalog.
func Apply(traceID, name string, list []string, arg string) ([]string, error) {
	fn, ok := table[name]
	if !ok {
		return nil, mtlerr.UnknownFilter(traceID, name)
	}
	out, err := fn(list, arg)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func perElement(f func(string) string) Func {
	return func(list []string, _ string) ([]string, error) {
		out := make([]string, len(list))
		for i, s := range list {
			out[i] = f(s)
		}
		return out, nil
	}
}

func capitalize(s string) string {
	s = strings.ToLower(s)
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}

func filterSplit(list []string, arg string) ([]string, error) {
	var out []string
	for _, s := range list {
		out = append(out, strings.Split(s, arg)...)
	}
	return out, nil
}

func filterAutosplit(list []string, _ string) ([]string, error) {
	var out []string
	for _, s := range list {
		for _, part := range strings.FieldsFunc(s, func(r rune) bool {
			return r == ',' || r == ';' || unicode.IsSpace(r)
		}) {
			out = append(out, part)
		}
	}
	return out, nil
}

func parseFilterInt(traceID, name, arg string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(arg))
	if err != nil {
		return 0, mtlerr.BadFilterArg(traceID, name, "argument is not an integer: "+arg)
	}
	return n, nil
}

func filterChop(list []string, arg string) ([]string, error) {
	n, err := parseFilterInt("", "chop", arg)
	if err != nil {
		return nil, err
	}
	out := make([]string, len(list))
	for i, s := range list {
		r := []rune(s)
		if n >= len(r) {
			out[i] = ""
			continue
		}
		if n < 0 {
			n = 0
		}
		out[i] = string(r[:len(r)-n])
	}
	return out, nil
}

func filterChomp(list []string, arg string) ([]string, error) {
	n, err := parseFilterInt("", "chomp", arg)
	if err != nil {
		return nil, err
	}
	out := make([]string, len(list))
	for i, s := range list {
		r := []rune(s)
		if n >= len(r) {
			out[i] = ""
			continue
		}
		if n < 0 {
			n = 0
		}
		out[i] = string(r[n:])
	}
	return out, nil
}

func filterSort(list []string, _ string) ([]string, error) {
	out := append([]string(nil), list...)
	sort.Strings(out)
	return out, nil
}

func filterRsort(list []string, _ string) ([]string, error) {
	out := append([]string(nil), list...)
	sort.Sort(sort.Reverse(sort.StringSlice(out)))
	return out, nil
}

func filterReverse(list []string, _ string) ([]string, error) {
	out := make([]string, len(list))
	for i, s := range list {
		out[len(list)-1-i] = s
	}
	return out, nil
}

func filterUniq(list []string, _ string) ([]string, error) {
	seen := make(map[string]bool, len(list))
	var out []string
	for _, s := range list {
		if seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out, nil
}

func filterJoin(list []string, arg string) ([]string, error) {
	return []string{strings.Join(list, arg)}, nil
}

func filterAppend(list []string, arg string) ([]string, error) {
	return append(append([]string(nil), list...), arg), nil
}

func filterPrepend(list []string, arg string) ([]string, error) {
	return append([]string{arg}, list...), nil
}

func filterAppends(list []string, arg string) ([]string, error) {
	out := make([]string, len(list))
	for i, s := range list {
		out[i] = s + arg
	}
	return out, nil
}

func filterPrepends(list []string, arg string) ([]string, error) {
	out := make([]string, len(list))
	for i, s := range list {
		out[i] = arg + s
	}
	return out, nil
}

func filterRemove(list []string, arg string) ([]string, error) {
	var out []string
	for _, s := range list {
		if s == arg {
			continue
		}
		out = append(out, s)
	}
	return out, nil
}

// parseRange parses a python-style "a:b:c" slice spec, any component
// optional, negatives and negative step supported.
func parseRange(spec string) (start, stop *int, step int, err error) {
	step = 1
	parts := strings.Split(spec, ":")
	parse := func(s string) (*int, error) {
		s = strings.TrimSpace(s)
		if s == "" {
			return nil, nil
		}
		n, err := strconv.Atoi(s)
		if err != nil {
			return nil, err
		}
		return &n, nil
	}
	var perr error
	if len(parts) > 0 {
		start, perr = parse(parts[0])
		if perr != nil {
			return nil, nil, 0, perr
		}
	}
	if len(parts) > 1 {
		stop, perr = parse(parts[1])
		if perr != nil {
			return nil, nil, 0, perr
		}
	}
	if len(parts) > 2 {
		sp, perr := parse(parts[2])
		if perr != nil {
			return nil, nil, 0, perr
		}
		if sp != nil {
			if *sp == 0 {
				return nil, nil, 0, strconv.ErrSyntax
			}
			step = *sp
		}
	}
	return start, stop, step, nil
}

// resolveRange applies python slicing semantics for a sequence of
// length n, returning the list of indices to take, in order.
func resolveRange(n int, start, stop *int, step int) []int {
	norm := func(i, n int) int {
		if i < 0 {
			i += n
		}
		return i
	}
	var lo, hi int
	if step > 0 {
		lo, hi = 0, n
		if start != nil {
			lo = clamp(norm(*start, n), 0, n)
		}
		if stop != nil {
			hi = clamp(norm(*stop, n), 0, n)
		}
		var idx []int
		for i := lo; i < hi; i += step {
			idx = append(idx, i)
		}
		return idx
	}
	lo, hi = n-1, -1
	if start != nil {
		lo = clamp(norm(*start, n), -1, n-1)
	}
	if stop != nil {
		hi = clamp(norm(*stop, n), -1, n-1)
	}
	var idx []int
	for i := lo; i > hi; i += step {
		idx = append(idx, i)
	}
	return idx
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func filterSlice(list []string, arg string) ([]string, error) {
	start, stop, step, err := parseRange(arg)
	if err != nil {
		return nil, mtlerr.BadFilterArg("", "slice", "malformed range: "+arg)
	}
	idx := resolveRange(len(list), start, stop, step)
	out := make([]string, len(idx))
	for i, j := range idx {
		out[i] = list[j]
	}
	return out, nil
}

func filterSslice(list []string, arg string) ([]string, error) {
	start, stop, step, err := parseRange(arg)
	if err != nil {
		return nil, mtlerr.BadFilterArg("", "sslice", "malformed range: "+arg)
	}
	out := make([]string, len(list))
	for i, s := range list {
		r := []rune(s)
		idx := resolveRange(len(r), start, stop, step)
		rr := make([]rune, len(idx))
		for j, k := range idx {
			rr[j] = r[k]
		}
		out[i] = string(rr)
	}
	return out, nil
}
