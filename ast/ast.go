// Package ast defines the typed tree produced by parsing an MTL template
// string: an ordered sequence of literal runs and statements, each
// statement carrying its modifier chain in the fixed syntactic order the
// language defines.
//
// "Parse, not validate" — by the time a Program exists, every statement
// already has a well-formed shape; the evaluator never has to reject a
// malformed modifier chain, only resolve fields and apply the modifiers
// that are present.
package ast

import "github.com/alecthomas/participle/v2/lexer"

// Node is either a Literal or a Statement.
type Node interface {
	node()
	Pos() lexer.Position
}

// Program is a parsed MTL template: an ordered sequence of nodes.
type Program []Node

// Literal is a run of raw text between statements.
type Literal struct {
	Position lexer.Position
	Text     string
}

func (*Literal) node() {}

// Pos returns the literal's source position.
func (l *Literal) Pos() lexer.Position { return l.Position }

// Statement is a single {...} expression with its modifier chain, in the
// fixed order: delim+ field(:subfield)(.attr)* (|filter)* ([find,replace]) (
// conditional)? (&combine)? (?true)? (,default)?
type Statement struct {
	Position lexer.Position

	// Delim is the text captured before a leading "+"; only meaningful
	// when InPlace is true.
	Delim string
	// InPlace records whether the statement opened with "+" (or
	// "delim+"), requesting the in-place join of phase 5.
	InPlace bool

	// Namespace is the identifier before ":" (empty when the statement
	// has no colon — e.g. {size}, {comma} — in which case Field alone
	// names the builtin no-namespace field).
	Namespace string
	// Field is the identifier after ":" when Namespace is set (e.g.
	// "title" in {audio:title}), or the whole field token when there
	// is no namespace (e.g. "size" in {size}).
	Field string

	// Attributes is the dot-chain of accessors following the field,
	// e.g. {created.year} -> ["year"], {f.parent.name} -> ["parent","name"].
	Attributes []string

	// Filters is the left-to-right filter pipeline.
	Filters []FilterCall

	// Replacements is the single [find,replace(|find,replace)*] block,
	// applied in order to every element of the list.
	Replacements []Replacement

	// Conditional is the " OP VALUE" clause, if present.
	Conditional *Conditional

	// Combine is the "&combine-template" sub-program, if present.
	Combine Program
	// True and Default are the "?true-template" and ",default-template"
	// sub-programs. HasCombine/HasTrue/HasDefault distinguish an
	// absent clause from a present-but-empty one.
	HasCombine bool
	True       Program
	HasTrue    bool
	Default    Program
	HasDefault bool
}

func (*Statement) node() {}

// Pos returns the statement's source position.
func (s *Statement) Pos() lexer.Position { return s.Position }

// FilterCall is one "|name" or "|name(arg)" segment. Arg is nil when the
// filter takes no argument; when present it is itself an MTL sub-program,
// per spec.md §4.1 step 4.
type FilterCall struct {
	Position lexer.Position
	Name     string
	HasArg   bool
	Arg      Program
}

// Replacement is one "find,replace" pair inside a [...] block. Both
// sides are literal text, already parsed — never re-evaluated as MTL.
type Replacement struct {
	Find    string
	Replace string
}

// ConditionalOp enumerates the comparison operators MTL recognizes.
// Longest-match-wins ordering is enforced by the lexer/parser, not by
// the order these constants are declared in.
type ConditionalOp string

const (
	OpContains   ConditionalOp = "contains"
	OpMatches    ConditionalOp = "matches"
	OpStartsWith ConditionalOp = "startswith"
	OpEndsWith   ConditionalOp = "endswith"
	OpLE         ConditionalOp = "<="
	OpGE         ConditionalOp = ">="
	OpLT         ConditionalOp = "<"
	OpGT         ConditionalOp = ">"
	OpEQ         ConditionalOp = "=="
	OpNE         ConditionalOp = "!="
)

// Conditional is the " (not )?OP VALUE" clause of a statement.
type Conditional struct {
	Negate bool
	Op     ConditionalOp
	// Value is the value-template, parsed as MTL; its rendered output
	// is split on "|" to obtain candidate values (spec.md §4.2 phase 4).
	Value Program
}
