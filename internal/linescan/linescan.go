package linescan

// Package linescan provides the forward-only line reader shared by the record
// parsers. Lines keep their trailing newline so consumers that accumulate
// free text preserve line breaks. One line can be pushed back, which is all
// the look-ahead the supported formats need.

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrPushbackFull is returned by Unread when a line is already pending.
var ErrPushbackFull = errors.New("linescan: pushback slot already in use")

// LineError attaches the offending line to a parse error.
type LineError struct {
	Line int
	Text string
	Err  error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("line %d: %v: %q", e.Line, e.Err, Trim(e.Text))
}

func (e *LineError) Unwrap() error { return e.Err }

// Reader reads newline-delimited text one line at a time.
type Reader struct {
	br      *bufio.Reader
	pending *string
	line    int
	offset  int64
	err     error
}

// NewReader wraps r.
func NewReader(r io.Reader) *Reader {
	return &Reader{br: bufio.NewReader(r)}
}

// ReadLine returns the next line including its trailing newline. The final
// line of a stream may lack one. io.EOF is returned once nothing is left.
func (r *Reader) ReadLine() (string, error) {
	if r.pending != nil {
		s := *r.pending
		r.pending = nil
		r.line++
		r.offset += int64(len(s))
		return s, nil
	}
	if r.err != nil {
		return "", r.err
	}
	s, err := r.br.ReadString('\n')
	if err != nil {
		r.err = err
		if s == "" {
			return "", err
		}
	}
	r.line++
	r.offset += int64(len(s))
	return s, nil
}

// Peek returns the next line without consuming it.
func (r *Reader) Peek() (string, error) {
	s, err := r.ReadLine()
	if err != nil {
		return "", err
	}
	if err := r.Unread(s); err != nil {
		return "", err
	}
	return s, nil
}

// Unread pushes line back so the next ReadLine returns it again.
func (r *Reader) Unread(line string) error {
	if r.pending != nil {
		return ErrPushbackFull
	}
	r.pending = &line
	r.line--
	r.offset -= int64(len(line))
	return nil
}

// Line is the number of the most recently returned line.
func (r *Reader) Line() int { return r.line }

// Offset is the byte offset of the next unread byte.
func (r *Reader) Offset() int64 { return r.offset }

// Wrap builds a LineError for the most recently read line.
func (r *Reader) Wrap(line string, err error) error {
	return &LineError{Line: r.line, Text: line, Err: err}
}

// IsBlank reports whether line holds only whitespace.
func IsBlank(line string) bool {
	return strings.TrimSpace(line) == ""
}

// Trim removes a trailing line terminator.
func Trim(line string) string {
	return strings.TrimRight(line, "\r\n")
}
