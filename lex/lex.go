// Package lex provides the rune scanner the parser package builds on.
//
// MTL's grammar is context-sensitive in a way a flat token table doesn't
// capture well: a statement's modifier clauses each need to be scanned
// up to a terminator set chosen by the caller (spec.md §9's "the parser
// passes the current terminator set down the recursion"), and nested
// "{...}" statements inside those clauses must be consumed whole before
// the enclosing clause's terminator search resumes. Scanner exposes the
// small set of primitives that makes that possible; it does not itself
// know about MTL's grammar (that's package parse's job). Position
// bookkeeping follows the same (filename, offset, line, column) shape
// participle's lexer.Position uses, so parser errors carry positions
// in the same idiom the teacher's own .lift tooling does.
package lex

import (
	"github.com/alecthomas/participle/v2/lexer"
)

// Scanner is a rune-at-a-time cursor over an MTL template string.
type Scanner struct {
	filename string
	runes    []rune
	pos      int // index into runes
	offset   int // byte offset of runes[pos]
	line     int
	col      int
}

// New builds a Scanner over src, attributing positions to filename.
func New(filename, src string) *Scanner {
	return &Scanner{
		filename: filename,
		runes:    []rune(src),
		line:     1,
		col:      1,
	}
}

// Pos returns the current position, suitable for embedding in an AST
// node or a SyntaxError.
func (s *Scanner) Pos() lexer.Position {
	return lexer.Position{
		Filename: s.filename,
		Offset:   s.offset,
		Line:     s.line,
		Column:   s.col,
	}
}

// Eof reports whether the scanner has no more runes.
func (s *Scanner) Eof() bool {
	return s.pos >= len(s.runes)
}

// Peek returns the current rune without consuming it. ok is false at EOF.
func (s *Scanner) Peek() (r rune, ok bool) {
	if s.Eof() {
		return 0, false
	}
	return s.runes[s.pos], true
}

// PeekAt returns the rune n positions ahead of the cursor (0 == Peek).
func (s *Scanner) PeekAt(n int) (r rune, ok bool) {
	i := s.pos + n
	if i < 0 || i >= len(s.runes) {
		return 0, false
	}
	return s.runes[i], true
}

// Next consumes and returns the current rune.
func (s *Scanner) Next() (r rune, ok bool) {
	r, ok = s.Peek()
	if !ok {
		return 0, false
	}
	s.pos++
	s.offset += len(string(r))
	if r == '\n' {
		s.line++
		s.col = 1
	} else {
		s.col++
	}
	return r, true
}

// HasPrefix reports whether the unconsumed input starts with p.
func (s *Scanner) HasPrefix(p string) bool {
	pr := []rune(p)
	if s.pos+len(pr) > len(s.runes) {
		return false
	}
	for i, r := range pr {
		if s.runes[s.pos+i] != r {
			return false
		}
	}
	return true
}

// Consume advances past p, which must already be confirmed present via
// HasPrefix; it panics (a programmer error, not a user-facing one) if
// the prefix doesn't match.
func (s *Scanner) Consume(p string) {
	for range []rune(p) {
		if _, ok := s.Next(); !ok {
			panic("lex: Consume past EOF")
		}
	}
}

// TermSet is a small set of terminator runes a scan should stop before.
type TermSet map[rune]bool

// Terms builds a TermSet from the given runes.
func Terms(rs ...rune) TermSet {
	t := make(TermSet, len(rs))
	for _, r := range rs {
		t[r] = true
	}
	return t
}

// ScanRawUntil reads runes verbatim (no nested-brace awareness) until it
// sees EOF or a rune in stop, returning the accumulated text without
// consuming the stop rune. Used for raw segments that are never
// re-parsed as MTL: field/subfield/attribute/filter names, and
// find/replace literals.
func (s *Scanner) ScanRawUntil(stop TermSet) string {
	var buf []rune
	for {
		r, ok := s.Peek()
		if !ok || stop[r] {
			break
		}
		s.Next()
		buf = append(buf, r)
	}
	return string(buf)
}
