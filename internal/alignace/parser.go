package alignace

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/chapmanb/biosqlweb/internal/linescan"
)

// Parser composes a Scanner with a fresh RecordConsumer per call.
type Parser struct {
	Scanner Scanner
}

// Parse reads a complete AlignACE report. On error no record is returned.
func (p *Parser) Parse(r io.Reader) (*Record, error) {
	c := NewRecordConsumer()
	if err := p.Scanner.Feed(r, c); err != nil {
		return nil, err
	}
	return c.Record(), nil
}

// Parse reads a complete AlignACE report from r.
func Parse(r io.Reader) (*Record, error) {
	var p Parser
	return p.Parse(r)
}

// ParseCompareScore reads CompareACE output, whose first line ends with the
// similarity score of the two compared motifs.
func ParseCompareScore(r io.Reader) (float64, error) {
	lr := linescan.NewReader(r)
	line, err := lr.ReadLine()
	if err == io.EOF {
		return 0, ErrUnexpectedEOF
	}
	if err != nil {
		return 0, err
	}
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return 0, lr.Wrap(line, fmt.Errorf("%w: empty score line", ErrMalformedLine))
	}
	score, err := strconv.ParseFloat(fields[len(fields)-1], 64)
	if err != nil {
		return 0, lr.Wrap(line, fmt.Errorf("%w: %v", ErrMalformedLine, err))
	}
	return score, nil
}
