package eval

import (
	"strconv"
	"strings"

	"github.com/mtlang/mtl/ast"
)

// compare evaluates one conditional operator between a field element and
// a candidate value. Open question (2) resolved per spec.md §9: == and
// != compare as strings, with a numeric fast-path for the ordering
// operators when both sides parse as numbers.
func compare(op ast.ConditionalOp, elem, cand string) bool {
	switch op {
	case ast.OpContains:
		return strings.Contains(elem, cand)
	case ast.OpMatches:
		return elem == cand
	case ast.OpStartsWith:
		return strings.HasPrefix(elem, cand)
	case ast.OpEndsWith:
		return strings.HasSuffix(elem, cand)
	case ast.OpEQ:
		return elem == cand
	case ast.OpNE:
		return elem != cand
	case ast.OpLT, ast.OpLE, ast.OpGT, ast.OpGE:
		if a, b, ok := bothNumeric(elem, cand); ok {
			return compareNumeric(op, a, b)
		}
		a, b := numericFallback(elem, cand)
		return compareNumeric(op, a, b)
	}
	return false
}

func bothNumeric(a, b string) (float64, float64, bool) {
	af, aerr := strconv.ParseFloat(strings.TrimSpace(a), 64)
	bf, berr := strconv.ParseFloat(strings.TrimSpace(b), 64)
	if aerr != nil || berr != nil {
		return 0, 0, false
	}
	return af, bf, true
}

func compareNumeric(op ast.ConditionalOp, a, b float64) bool {
	switch op {
	case ast.OpLT:
		return a < b
	case ast.OpLE:
		return a <= b
	case ast.OpGT:
		return a > b
	case ast.OpGE:
		return a >= b
	}
	return false
}

// numericFallback compares lexicographically when either side isn't
// numeric, by mapping the ordering to 0/1 on the string comparison.
func numericFallback(a, b string) (float64, float64) {
	if a < b {
		return 0, 1
	}
	if a > b {
		return 1, 0
	}
	return 0, 0
}
