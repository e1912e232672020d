package prodoc

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/chapmanb/biosqlweb/internal/linescan"
)

var (
	// ErrMalformedLine is returned when a line does not have the shape its
	// position in the entry requires.
	ErrMalformedLine = errors.New("prodoc: malformed line")
	// ErrUnnumberedReference is returned for a reference continuation line
	// that follows no numbered reference.
	ErrUnnumberedReference = errors.New("prodoc: unnumbered reference line")
	// ErrUnexpectedEOF is returned when input ends inside an entry.
	ErrUnexpectedEOF = errors.New("prodoc: unexpected end of input")
)

// Consumer receives scanner events in input order.
type Consumer interface {
	Consume(Event) error
}

// Scanner walks PRODOC entries line by line.
type Scanner struct{}

// Feed scans every entry of lr, skipping blank lines between entries.
func (s *Scanner) Feed(lr *linescan.Reader, c Consumer) error {
	for {
		more, err := skipBlank(lr)
		if err != nil || !more {
			return err
		}
		if err := s.ScanRecord(lr, c); err != nil {
			return err
		}
	}
}

// skipBlank consumes blank lines and reports whether anything is left.
func skipBlank(lr *linescan.Reader) (bool, error) {
	for {
		line, err := lr.Peek()
		if err == io.EOF {
			return false, nil
		}
		if err != nil {
			return false, err
		}
		if !linescan.IsBlank(line) {
			return true, nil
		}
		if _, err := lr.ReadLine(); err != nil {
			return false, err
		}
	}
}

// ScanRecord scans exactly one entry, from its accession line to {END}.
func (s *Scanner) ScanRecord(lr *linescan.Reader, c Consumer) error {
	if err := c.Consume(StartRecord{}); err != nil {
		return err
	}
	if err := readAndCall(lr, c, "{PDOC", func(l string) Event { return Accession{Line: l} }); err != nil {
		return err
	}
	for {
		ok, err := attemptReadAndCall(lr, c, "{PS", func(l string) Event { return PrositeRefLine{Line: l} })
		if err != nil {
			return err
		}
		if !ok {
			break
		}
	}
	if err := readAndCall(lr, c, "{BEGIN}", noEvent); err != nil {
		return err
	}
	if err := scanText(lr, c); err != nil {
		return err
	}
	if err := scanRefs(lr, c); err != nil {
		return err
	}
	if err := scanCopyright(lr, c); err != nil {
		return err
	}
	if err := readAndCall(lr, c, "{END}", noEvent); err != nil {
		return err
	}
	return c.Consume(EndRecord{})
}

func noEvent(l string) Event { return NoEvent{Line: l} }

// isRefHeader matches "[nn] " reference headers.
func isRefHeader(line string) bool {
	return len(line) >= 5 && line[0] == '[' && line[3] == ']' && line[4] == ' '
}

func scanText(lr *linescan.Reader, c Consumer) error {
	for {
		line, err := safeReadLine(lr)
		if err != nil {
			return err
		}
		if isRefHeader(line) || strings.HasPrefix(line, "{END}") {
			return lr.Unread(line)
		}
		if err := c.Consume(Text{Line: line}); err != nil {
			return lr.Wrap(line, err)
		}
	}
}

func scanRefs(lr *linescan.Reader, c Consumer) error {
	for {
		line, err := safeReadLine(lr)
		if err != nil {
			return err
		}
		if strings.HasPrefix(line, "{END}") || linescan.IsBlank(line) {
			return lr.Unread(line)
		}
		if err := c.Consume(ReferenceLine{Line: line}); err != nil {
			return lr.Wrap(line, err)
		}
	}
}

// scanCopyright absorbs the optional boxed copyright notice some entries
// carry after their references.
func scanCopyright(lr *linescan.Reader, c Consumer) error {
	if err := readWhileBlank(lr, c); err != nil {
		return err
	}
	ok, err := attemptReadAndCall(lr, c, "+----", noEvent)
	if err != nil {
		return err
	}
	if ok {
		for {
			line, err := safeReadLine(lr)
			if err != nil {
				return err
			}
			if strings.HasPrefix(line, "+----") {
				if err := c.Consume(NoEvent{Line: line}); err != nil {
					return err
				}
				break
			}
			if err := c.Consume(NoEvent{Line: line}); err != nil {
				return err
			}
		}
	}
	return readWhileBlank(lr, c)
}

func readWhileBlank(lr *linescan.Reader, c Consumer) error {
	for {
		line, err := lr.Peek()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		if !linescan.IsBlank(line) {
			return nil
		}
		line, _ = lr.ReadLine()
		if err := c.Consume(NoEvent{Line: line}); err != nil {
			return err
		}
	}
}

func safeReadLine(lr *linescan.Reader) (string, error) {
	line, err := lr.ReadLine()
	if err == io.EOF {
		return "", ErrUnexpectedEOF
	}
	return line, err
}

// readAndCall reads one line that must start with prefix.
func readAndCall(lr *linescan.Reader, c Consumer, prefix string, mk func(string) Event) error {
	line, err := safeReadLine(lr)
	if err != nil {
		return err
	}
	if !strings.HasPrefix(line, prefix) {
		return lr.Wrap(line, fmt.Errorf("%w: expected line starting with %q", ErrMalformedLine, prefix))
	}
	if err := c.Consume(mk(line)); err != nil {
		return lr.Wrap(line, err)
	}
	return nil
}

// attemptReadAndCall consumes the next line only if it starts with prefix.
func attemptReadAndCall(lr *linescan.Reader, c Consumer, prefix string, mk func(string) Event) (bool, error) {
	line, err := lr.Peek()
	if err == io.EOF {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if !strings.HasPrefix(line, prefix) {
		return false, nil
	}
	return true, readAndCall(lr, c, prefix, mk)
}
