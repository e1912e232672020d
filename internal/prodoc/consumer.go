package prodoc

import (
	"fmt"
	"strings"
	"unicode"
)

// RecordConsumer builds Records from scanner events. The current record and
// the current reference act as cursors.
type RecordConsumer struct {
	data *Record
	ref  *Reference
}

// NewRecordConsumer returns a consumer with no record started.
func NewRecordConsumer() *RecordConsumer {
	return &RecordConsumer{}
}

// Record returns the most recently started record.
func (c *RecordConsumer) Record() *Record { return c.data }

// Consume implements Consumer.
func (c *RecordConsumer) Consume(ev Event) error {
	switch e := ev.(type) {
	case StartRecord:
		c.data = &Record{}
		c.ref = nil
	case EndRecord:
		c.clean()
	case Accession:
		return c.accession(e.Line)
	case PrositeRefLine:
		return c.prositeRef(e.Line)
	case Text:
		c.data.Text += e.Line
	case ReferenceLine:
		return c.reference(e.Line)
	case NoEvent:
	default:
		return fmt.Errorf("prodoc: unhandled event %T", ev)
	}
	return nil
}

func bracketed(line string) (string, error) {
	line = strings.TrimRightFunc(line, unicode.IsSpace)
	if len(line) < 2 || line[0] != '{' || line[len(line)-1] != '}' {
		return "", fmt.Errorf("%w: expected a {...} line", ErrMalformedLine)
	}
	return line[1 : len(line)-1], nil
}

func (c *RecordConsumer) accession(line string) error {
	acc, err := bracketed(line)
	if err != nil {
		return err
	}
	if !strings.HasPrefix(acc, "PDOC") {
		return fmt.Errorf("%w: invalid accession %q", ErrMalformedLine, acc)
	}
	c.data.Accession = acc
	return nil
}

func (c *RecordConsumer) prositeRef(line string) error {
	body, err := bracketed(line)
	if err != nil {
		return err
	}
	parts := strings.Split(body, "; ")
	if len(parts) != 2 {
		return fmt.Errorf("%w: expected {accession; name}", ErrMalformedLine)
	}
	c.data.PrositeRefs = append(c.data.PrositeRefs, PrositeRef{Accession: parts[0], Name: parts[1]})
	return nil
}

func (c *RecordConsumer) reference(line string) error {
	switch {
	case len(line) >= 4 && line[0] == '[' && line[3] == ']':
		ref := &Reference{Number: strings.TrimSpace(line[1:3])}
		if line[1] == 'E' {
			ref.Citation = strings.TrimSpace(line[4:])
		} else {
			ref.Authors = strings.TrimSpace(line[4:])
		}
		c.ref = ref
		c.data.References = append(c.data.References, ref)
	case strings.HasPrefix(line, "    "):
		if c.ref == nil {
			return ErrUnnumberedReference
		}
		if len(line) > 5 {
			c.ref.Citation += line[5:]
		} else {
			c.ref.Citation += "\n"
		}
	default:
		return fmt.Errorf("%w: unrecognized reference line", ErrMalformedLine)
	}
	return nil
}

// clean trims trailing whitespace left by multi-line accumulation.
func (c *RecordConsumer) clean() {
	c.data.Text = strings.TrimRightFunc(c.data.Text, unicode.IsSpace)
	for _, ref := range c.data.References {
		ref.Citation = strings.TrimRightFunc(ref.Citation, unicode.IsSpace)
		ref.Authors = strings.TrimRightFunc(ref.Authors, unicode.IsSpace)
	}
}
