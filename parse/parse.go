// Package parse implements the hand-written recursive-descent parser
// for MTL (spec.md §4.1, §9). It deliberately does not use a
// parser-generator/struct-tag grammar (see DESIGN.md): each modifier
// clause of a statement recurses into the same statement grammar with a
// different terminator set chosen by the caller, which a declarative
// PEG grammar has no hook for.
package parse

import (
	"sort"

	"github.com/alecthomas/participle/v2/lexer"
	"github.com/mtlang/mtl/ast"
	"github.com/mtlang/mtl/lex"
	"github.com/mtlang/mtl/mtlerr"
)

// isIdentRune is the character class for field/subfield/attribute/filter
// names: letters, digits, underscore. Punctuation-field names and
// provider namespaces are always simple identifiers of this shape.
func isIdentRune(r rune) bool {
	return r == '_' ||
		(r >= 'a' && r <= 'z') ||
		(r >= 'A' && r <= 'Z') ||
		(r >= '0' && r <= '9')
}

// operator is one recognized conditional operator, together with its
// literal spelling for longest-match scanning.
type operator struct {
	text string
	op   ast.ConditionalOp
}

// operatorsByLength is the recognized operator set, longest-spelling
// first, so "<=" is tried before "<" etc. (spec.md §4.1 step 6).
var operatorsByLength = func() []operator {
	ops := []operator{
		{"contains", ast.OpContains},
		{"matches", ast.OpMatches},
		{"startswith", ast.OpStartsWith},
		{"endswith", ast.OpEndsWith},
		{"<=", ast.OpLE},
		{">=", ast.OpGE},
		{"==", ast.OpEQ},
		{"!=", ast.OpNE},
		{"<", ast.OpLT},
		{">", ast.OpGT},
	}
	sort.SliceStable(ops, func(i, j int) bool { return len(ops[i].text) > len(ops[j].text) })
	return ops
}()

// Parse parses template, a full MTL template string, into a Program.
func Parse(filename, template string) (ast.Program, error) {
	p := &parser{sc: lex.New(filename, template)}
	prog, err := p.parseProgram(lex.Terms())
	if err != nil {
		return nil, err
	}
	if !p.sc.Eof() {
		return nil, mtlerr.Syntax(p.sc.Pos(), "trailing input after template")
	}
	return prog, nil
}

type parser struct {
	sc *lex.Scanner
}

// parseProgram scans literal runs and statements until EOF or a rune in
// stop is seen at the top level (i.e. outside any nested "{...}"). It
// does not consume the terminator; the caller does, since only the
// caller knows whether it is a ")" closing a filter arg or the "}"
// closing the enclosing statement.
func (p *parser) parseProgram(stop lex.TermSet) (ast.Program, error) {
	var prog ast.Program
	for {
		r, ok := p.sc.Peek()
		if !ok {
			if len(stop) > 0 {
				return nil, mtlerr.Syntax(p.sc.Pos(), "unterminated template: expected terminator, got end of input")
			}
			return prog, nil
		}
		if stop[r] {
			return prog, nil
		}
		if r == '{' {
			pos := p.sc.Pos()
			p.sc.Next()
			stmt, err := p.parseStatement(pos)
			if err != nil {
				return nil, err
			}
			prog = append(prog, stmt)
			continue
		}
		pos := p.sc.Pos()
		text := p.scanLiteralRun(stop)
		prog = append(prog, &ast.Literal{Position: pos, Text: text})
	}
}

// scanLiteralRun reads raw text until "{" or a rune in stop, without
// consuming either.
func (p *parser) scanLiteralRun(stop lex.TermSet) string {
	var buf []rune
	for {
		r, ok := p.sc.Peek()
		if !ok || r == '{' || stop[r] {
			break
		}
		p.sc.Next()
		buf = append(buf, r)
	}
	return string(buf)
}

// delimHardStop is the set of runes that can never appear inside a
// "delim+" prefix or a bare field name: every structural sigil except
// ",", which a delimiter is free to use (spec.md §8 scenario 2 uses
// exactly "," as a delimiter).
var delimHardStop = lex.Terms(':', '.', '|', '[', ' ', '&', '?', '}')

// scanAheadForPlus looks ahead from the current position, without
// consuming anything, for whichever comes first: a literal '+' or a
// rune in delimHardStop. It reports the number of runes before a '+'
// and true only when '+' comes first.
func (p *parser) scanAheadForPlus() (n int, found bool) {
	for i := 0; ; i++ {
		r, ok := p.sc.PeekAt(i)
		if !ok {
			return 0, false
		}
		if r == '+' {
			return i, true
		}
		if delimHardStop[r] {
			return 0, false
		}
	}
}

// fieldStop is the stop set for raw identifier-ish tokens (field name,
// subfield, attribute, filter name): every modifier sigil plus the
// space that introduces a conditional, plus the statement terminator.
var fieldStop = lex.Terms(':', '.', '|', '[', ' ', '&', '?', ',', '}')

// subfieldStop is fieldStop without ':'. The grammar recognizes only one
// namespace/field split (spec.md §3); a second colon, as in the builtin
// format provider's "{format:int:%05d,...}", is part of the field token
// itself, left for that provider to split.
var subfieldStop = lex.Terms('.', '|', '[', ' ', '&', '?', ',', '}')

// filterNameStop additionally stops at "(" for a filter argument list.
var filterNameStop = lex.Terms(':', '.', '|', '[', ' ', '&', '?', ',', '}', '(')

// parseStatement parses one statement's body; the opening "{" has
// already been consumed, pos is its position.
func (p *parser) parseStatement(pos lexer.Position) (*ast.Statement, error) {
	stmt := &ast.Statement{}
	stmt.Position = pos

	// A leading "delim+" prefix may itself contain characters (like ",")
	// that are ordinary field-name terminators everywhere else, so
	// whether one is present has to be decided by lookahead before any
	// text is consumed: scan ahead for whichever comes first, a literal
	// '+' or one of the characters that can never appear inside a delim
	// or a field name (":" "." "|" "[" " " "&" "?" "}"). Only if '+'
	// comes first is the scanned span a delimiter.
	if n, found := p.scanAheadForPlus(); found {
		var buf []rune
		for i := 0; i < n; i++ {
			r, _ := p.sc.Next()
			buf = append(buf, r)
		}
		p.sc.Next() // consume '+'
		stmt.Delim = string(buf)
		stmt.InPlace = true
	}

	token0 := p.sc.ScanRawUntil(fieldStop)
	if token0 == "" {
		return nil, mtlerr.Syntax(p.sc.Pos(), "missing field name")
	}
	stmt.Field = token0

	if r, ok := p.sc.Peek(); ok && r == ':' {
		p.sc.Next()
		stmt.Namespace = stmt.Field
		stmt.Field = p.sc.ScanRawUntil(subfieldStop)
	}

	for {
		r, ok := p.sc.Peek()
		if !ok || r != '.' {
			break
		}
		p.sc.Next()
		attr := p.sc.ScanRawUntil(fieldStop)
		if attr == "" {
			return nil, mtlerr.Syntax(p.sc.Pos(), "missing attribute name after '.'")
		}
		stmt.Attributes = append(stmt.Attributes, attr)
	}

	for {
		r, ok := p.sc.Peek()
		if !ok || r != '|' {
			break
		}
		p.sc.Next()
		fc, err := p.parseFilterCall()
		if err != nil {
			return nil, err
		}
		stmt.Filters = append(stmt.Filters, fc)
	}

	if r, ok := p.sc.Peek(); ok && r == '[' {
		p.sc.Next()
		reps, err := p.parseReplacements()
		if err != nil {
			return nil, err
		}
		stmt.Replacements = reps
	}

	if r, ok := p.sc.Peek(); ok && r == ' ' {
		cond, err := p.parseConditional()
		if err != nil {
			return nil, err
		}
		stmt.Conditional = cond
	}

	combineStop := lex.Terms('&', '?', ',', '}')
	if r, ok := p.sc.Peek(); ok && r == '&' {
		p.sc.Next()
		combine, err := p.parseProgram(combineStop)
		if err != nil {
			return nil, err
		}
		stmt.Combine = combine
		stmt.HasCombine = true
		if r, ok := p.sc.Peek(); ok && r == '&' {
			return nil, mtlerr.Syntax(p.sc.Pos(), "multiple top-level '&' combine clauses in one statement")
		}
	}

	if r, ok := p.sc.Peek(); ok && r == '?' {
		p.sc.Next()
		trueProg, err := p.parseProgram(lex.Terms(',', '}'))
		if err != nil {
			return nil, err
		}
		stmt.True = trueProg
		stmt.HasTrue = true
	}

	if r, ok := p.sc.Peek(); ok && r == ',' {
		p.sc.Next()
		defProg, err := p.parseProgram(lex.Terms('}'))
		if err != nil {
			return nil, err
		}
		stmt.Default = defProg
		stmt.HasDefault = true
	}

	r, ok := p.sc.Peek()
	if !ok || r != '}' {
		return nil, mtlerr.Syntax(p.sc.Pos(), "unterminated statement: expected '}'")
	}
	p.sc.Next()

	return stmt, nil
}

func (p *parser) parseFilterCall() (ast.FilterCall, error) {
	pos := p.sc.Pos()
	name := p.sc.ScanRawUntil(filterNameStop)
	if name == "" {
		return ast.FilterCall{}, mtlerr.Syntax(pos, "missing filter name after '|'")
	}
	fc := ast.FilterCall{Position: pos, Name: name}
	if r, ok := p.sc.Peek(); ok && r == '(' {
		p.sc.Next()
		arg, err := p.parseProgram(lex.Terms(')'))
		if err != nil {
			return ast.FilterCall{}, err
		}
		r, ok := p.sc.Peek()
		if !ok || r != ')' {
			return ast.FilterCall{}, mtlerr.Syntax(p.sc.Pos(), "unterminated filter argument: expected ')'")
		}
		p.sc.Next()
		fc.HasArg = true
		fc.Arg = arg
	}
	return fc, nil
}

// replacementTextStop is the stop set for a raw find/replace literal:
// "," separates find from replace, "|" separates pairs, "]" ends the
// block. A literal "|" can never appear inside a find/replace literal
// (spec.md §3 invariants); {var} is the documented escape.
var replacementTextStop = lex.Terms(',', '|', ']')

func (p *parser) parseReplacements() ([]ast.Replacement, error) {
	var reps []ast.Replacement
	for {
		find := p.sc.ScanRawUntil(replacementTextStop)
		r, ok := p.sc.Peek()
		if !ok || r != ',' {
			return nil, mtlerr.Syntax(p.sc.Pos(), "expected ',' between find and replace")
		}
		p.sc.Next()
		replace := p.sc.ScanRawUntil(replacementTextStop)
		reps = append(reps, ast.Replacement{Find: find, Replace: replace})

		r, ok = p.sc.Peek()
		if !ok {
			return nil, mtlerr.Syntax(p.sc.Pos(), "unterminated replacement block: expected ']'")
		}
		if r == '|' {
			p.sc.Next()
			continue
		}
		if r == ']' {
			p.sc.Next()
			return reps, nil
		}
		return nil, mtlerr.Syntax(p.sc.Pos(), "unexpected character in replacement block")
	}
}

// parseConditional parses the " (not )?OP VALUE" clause. The current
// rune is the leading space (not yet consumed).
func (p *parser) parseConditional() (*ast.Conditional, error) {
	startPos := p.sc.Pos()
	p.sc.Next() // consume the single marker space

	cond := &ast.Conditional{}
	if p.sc.HasPrefix("not ") {
		cond.Negate = true
		p.sc.Consume("not ")
	}

	op, ok := p.matchOperator()
	if !ok {
		return nil, mtlerr.Syntax(startPos, "expected conditional operator after space")
	}
	cond.Op = op

	if r, ok := p.sc.Peek(); !ok || r != ' ' {
		return nil, mtlerr.Syntax(p.sc.Pos(), "expected space after conditional operator")
	}
	p.sc.Next()

	value, err := p.parseProgram(lex.Terms('&', '?', ',', '}'))
	if err != nil {
		return nil, err
	}
	if len(value) == 0 {
		return nil, mtlerr.Syntax(p.sc.Pos(), "conditional clause without a value")
	}
	cond.Value = value
	return cond, nil
}

func (p *parser) matchOperator() (ast.ConditionalOp, bool) {
	for _, o := range operatorsByLength {
		if p.sc.HasPrefix(o.text) {
			// word operators must not be a prefix of a longer identifier
			if isWordOperator(o.text) {
				if r, ok := p.sc.PeekAt(len([]rune(o.text))); ok && isIdentRune(r) {
					continue
				}
			}
			p.sc.Consume(o.text)
			return o.op, true
		}
	}
	return "", false
}

func isWordOperator(s string) bool {
	return len(s) > 0 && isIdentRune(rune(s[0]))
}
