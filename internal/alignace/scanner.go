// Package alignace parses AlignACE motif-discovery reports and CompareACE
// scores.
//
// A Scanner turns each report line into an Event and hands it to a
// Consumer; RecordConsumer builds a Record from those events and Parse wires
// the two together.
package alignace

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/chapmanb/biosqlweb/internal/linescan"
)

var (
	// ErrUnrecognizedLine is returned for a line matching no rule.
	ErrUnrecognizedLine = errors.New("alignace: unrecognized line")
	// ErrMalformedLine is returned for a recognized line whose content
	// cannot be used.
	ErrMalformedLine = errors.New("alignace: malformed line")
	// ErrUnexpectedEOF is returned when the report ends before its header.
	ErrUnexpectedEOF = errors.New("alignace: unexpected end of report")
)

// Consumer receives scanner events in input order.
type Consumer interface {
	Consume(Event) error
}

// Scanner classifies AlignACE report lines.
type Scanner struct{}

// Feed reads r to exhaustion, passing one event per line to c. The first two
// lines are always the version and the command line.
func (s *Scanner) Feed(r io.Reader, c Consumer) error {
	lr := linescan.NewReader(r)
	for _, mk := range []func(string) Event{
		func(l string) Event { return Version{Text: linescan.Trim(l)} },
		func(l string) Event { return CommandLine{Text: linescan.Trim(l)} },
	} {
		line, err := lr.ReadLine()
		if err == io.EOF {
			return ErrUnexpectedEOF
		}
		if err != nil {
			return err
		}
		if err := c.Consume(mk(line)); err != nil {
			return lr.Wrap(line, err)
		}
	}
	for {
		line, err := lr.ReadLine()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		ev, err := Classify(line)
		if err != nil {
			return lr.Wrap(line, err)
		}
		if err := c.Consume(ev); err != nil {
			return lr.Wrap(line, err)
		}
	}
}

// Classify maps a report body line to its event. Rules are tried in order
// and the first match wins.
func Classify(line string) (Event, error) {
	line = linescan.Trim(line)
	switch {
	case linescan.IsBlank(line):
		return NoEvent{}, nil
	case strings.HasPrefix(line, "Para"):
		return Parameters{}, nil
	case strings.HasPrefix(line, "#"):
		fields := strings.Split(line, "\t")
		if len(fields) < 2 {
			return nil, fmt.Errorf("%w: sequence line without a name", ErrMalformedLine)
		}
		return Sequence{Name: fields[1]}, nil
	case strings.Contains(line, "="):
		name, value, _ := strings.Cut(line, "=")
		return Parameter{Name: strings.TrimSpace(name), Value: strings.TrimSpace(value)}, nil
	case strings.HasPrefix(line, "Input"):
		return Sequences{}, nil
	case strings.HasPrefix(line, "Motif"):
		return MotifStart{Label: strings.TrimSpace(line)}, nil
	case strings.HasPrefix(line, "MAP"):
		fields := strings.Fields(line)
		score, err := strconv.ParseFloat(fields[len(fields)-1], 64)
		if err != nil {
			return nil, fmt.Errorf("%w: score: %v", ErrMalformedLine, err)
		}
		return MotifScore{Score: score}, nil
	case len(strings.Split(line, "\t")) == 4:
		return parseHit(line)
	case strings.Contains(line, "*"):
		return MotifMask{Mask: line}, nil
	}
	return nil, ErrUnrecognizedLine
}

func parseHit(line string) (Event, error) {
	fields := strings.Split(line, "\t")
	var nums [3]int
	for i, f := range fields[1:] {
		n, err := strconv.Atoi(strings.TrimSpace(f))
		if err != nil {
			return nil, fmt.Errorf("%w: motif hit: %v", ErrMalformedLine, err)
		}
		nums[i] = n
	}
	return MotifHit{
		Site:     strings.TrimSpace(fields[0]),
		SeqIndex: nums[0],
		Position: nums[1],
		Strand:   nums[2],
	}, nil
}
