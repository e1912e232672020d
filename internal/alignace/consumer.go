package alignace

import (
	"fmt"

	"github.com/chapmanb/biosqlweb/internal/motif"
)

// Record is the content of one AlignACE report.
type Record struct {
	Version        string
	CommandLine    string
	Parameters     map[string]string
	ParameterOrder []string
	Sequences      []string
	Motifs         []*motif.Motif
}

// RecordConsumer builds a Record from scanner events.
type RecordConsumer struct {
	rec     *Record
	current *motif.Motif
	inParam bool
	inSeqs  bool
}

// NewRecordConsumer returns a consumer holding an empty record.
func NewRecordConsumer() *RecordConsumer {
	return &RecordConsumer{rec: &Record{}}
}

// Record returns the record built so far.
func (c *RecordConsumer) Record() *Record { return c.rec }

// Consume implements Consumer.
func (c *RecordConsumer) Consume(ev Event) error {
	switch e := ev.(type) {
	case Version:
		c.rec.Version = e.Text
	case CommandLine:
		c.rec.CommandLine = e.Text
	case NoEvent:
	case Parameters:
		c.rec.Parameters = make(map[string]string)
		c.rec.ParameterOrder = nil
		c.inParam = true
	case Parameter:
		if !c.inParam {
			return fmt.Errorf("%w: parameter %q outside the parameter section", ErrMalformedLine, e.Name)
		}
		if _, seen := c.rec.Parameters[e.Name]; !seen {
			c.rec.ParameterOrder = append(c.rec.ParameterOrder, e.Name)
		}
		c.rec.Parameters[e.Name] = e.Value
	case Sequences:
		c.rec.Sequences = []string{}
		c.inSeqs = true
	case Sequence:
		if !c.inSeqs {
			return fmt.Errorf("%w: sequence %q outside the input section", ErrMalformedLine, e.Name)
		}
		c.rec.Sequences = append(c.rec.Sequences, e.Name)
	case MotifStart:
		c.current = motif.New()
		c.rec.Motifs = append(c.rec.Motifs, c.current)
	case MotifHit:
		if c.current == nil {
			return fmt.Errorf("%w: motif hit before any motif", ErrMalformedLine)
		}
		if err := c.current.AddInstance(e.Site); err != nil {
			return err
		}
	case MotifScore:
		if c.current == nil {
			return fmt.Errorf("%w: score before any motif", ErrMalformedLine)
		}
		c.current.SetScore(e.Score)
	case MotifMask:
		if c.current == nil {
			return fmt.Errorf("%w: mask before any motif", ErrMalformedLine)
		}
		if err := c.current.SetMask(e.Mask); err != nil {
			return err
		}
	default:
		return fmt.Errorf("alignace: unhandled event %T", ev)
	}
	return nil
}
