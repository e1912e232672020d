package linescan

import (
	"errors"
	"io"
	"strings"
	"testing"
)

func TestReadLineKeepsNewlines(t *testing.T) {
	r := NewReader(strings.NewReader("a\nbb\nccc"))
	want := []string{"a\n", "bb\n", "ccc"}
	for i, w := range want {
		got, err := r.ReadLine()
		if err != nil {
			t.Fatalf("line %d: unexpected error: %v", i, err)
		}
		if got != w {
			t.Fatalf("line %d: expected %q, got %q", i, w, got)
		}
	}
	if _, err := r.ReadLine(); err != io.EOF {
		t.Fatalf("expected io.EOF, got %v", err)
	}
	if r.Line() != 3 {
		t.Fatalf("expected line 3, got %d", r.Line())
	}
}

func TestPeekAndUnread(t *testing.T) {
	r := NewReader(strings.NewReader("first\nsecond\n"))
	p, err := r.Peek()
	if err != nil || p != "first\n" {
		t.Fatalf("unexpected peek: %q %v", p, err)
	}
	if r.Offset() != 0 || r.Line() != 0 {
		t.Fatalf("peek must not move the cursor, offset=%d line=%d", r.Offset(), r.Line())
	}
	l, _ := r.ReadLine()
	if l != "first\n" {
		t.Fatalf("expected first line after peek, got %q", l)
	}
	if err := r.Unread(l); err != nil {
		t.Fatalf("unexpected unread error: %v", err)
	}
	if err := r.Unread("x\n"); !errors.Is(err, ErrPushbackFull) {
		t.Fatalf("expected ErrPushbackFull, got %v", err)
	}
	l, _ = r.ReadLine()
	l2, _ := r.ReadLine()
	if l != "first\n" || l2 != "second\n" {
		t.Fatalf("unexpected lines %q %q", l, l2)
	}
	if r.Offset() != int64(len("first\nsecond\n")) {
		t.Fatalf("unexpected offset %d", r.Offset())
	}
}

func TestLineError(t *testing.T) {
	sentinel := errors.New("boom")
	r := NewReader(strings.NewReader("bad line\n"))
	l, _ := r.ReadLine()
	err := r.Wrap(l, sentinel)
	if !errors.Is(err, sentinel) {
		t.Fatalf("expected wrapped sentinel, got %v", err)
	}
	var le *LineError
	if !errors.As(err, &le) || le.Line != 1 {
		t.Fatalf("expected LineError on line 1, got %#v", err)
	}
	if !strings.Contains(err.Error(), `"bad line"`) {
		t.Fatalf("expected trimmed text in message, got %s", err.Error())
	}
}

func TestIsBlankAndTrim(t *testing.T) {
	if !IsBlank(" \t\r\n") {
		t.Fatalf("expected whitespace line to be blank")
	}
	if IsBlank(" x\n") {
		t.Fatalf("expected non-blank")
	}
	if Trim("abc\r\n") != "abc" {
		t.Fatalf("unexpected trim result %q", Trim("abc\r\n"))
	}
}
