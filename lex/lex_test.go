package lex

import "testing"

func TestScannerPeekNext(t *testing.T) {
	s := New("t", "ab")
	r, ok := s.Peek()
	if !ok || r != 'a' {
		t.Fatalf("Peek() = %q, %v; want 'a', true", r, ok)
	}
	r, ok = s.Next()
	if !ok || r != 'a' {
		t.Fatalf("Next() = %q, %v; want 'a', true", r, ok)
	}
	r, ok = s.Peek()
	if !ok || r != 'b' {
		t.Fatalf("Peek() after Next() = %q, %v; want 'b', true", r, ok)
	}
	if _, ok := s.PeekAt(5); ok {
		t.Fatalf("PeekAt(5) ok = true; want false at EOF")
	}
}

func TestScannerHasPrefixConsume(t *testing.T) {
	s := New("t", "not foo")
	if !s.HasPrefix("not ") {
		t.Fatalf("HasPrefix(%q) = false; want true", "not ")
	}
	s.Consume("not ")
	rest := s.ScanRawUntil(Terms())
	if rest != "foo" {
		t.Fatalf("remaining = %q; want %q", rest, "foo")
	}
}

func TestScanRawUntilStopsAtTerminator(t *testing.T) {
	s := New("t", "abc:def")
	got := s.ScanRawUntil(Terms(':'))
	if got != "abc" {
		t.Fatalf("ScanRawUntil = %q; want %q", got, "abc")
	}
	r, ok := s.Peek()
	if !ok || r != ':' {
		t.Fatalf("terminator not left unconsumed: Peek() = %q, %v", r, ok)
	}
}

func TestScannerPositionTracksLineColumn(t *testing.T) {
	s := New("t", "a\nb")
	s.Next()
	s.Next()
	pos := s.Pos()
	if pos.Line != 2 || pos.Column != 1 {
		t.Fatalf("Pos() after newline = line %d col %d; want line 2 col 1", pos.Line, pos.Column)
	}
}

func TestEof(t *testing.T) {
	s := New("t", "")
	if !s.Eof() {
		t.Fatalf("Eof() on empty source = false; want true")
	}
}
