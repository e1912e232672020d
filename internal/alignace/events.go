package alignace

// Event is one classified line of an AlignACE report. The set of event
// types is closed; consumers switch over all of them.
type Event interface {
	event()
}

// Version is the first line of a report.
type Version struct{ Text string }

// CommandLine is the second line of a report.
type CommandLine struct{ Text string }

// NoEvent is a blank line.
type NoEvent struct{}

// Parameters opens the parameter section.
type Parameters struct{}

// Parameter is a single "name = value" line.
type Parameter struct{ Name, Value string }

// Sequences opens the input sequence section.
type Sequences struct{}

// Sequence names one input sequence.
type Sequence struct{ Name string }

// MotifStart opens a new motif block.
type MotifStart struct{ Label string }

// MotifHit is one aligned site of the current motif.
type MotifHit struct {
	Site     string
	SeqIndex int
	Position int
	Strand   int
}

// MotifScore is the MAP score of the current motif.
type MotifScore struct{ Score float64 }

// MotifMask marks the significant columns of the current motif.
type MotifMask struct{ Mask string }

func (Version) event()     {}
func (CommandLine) event() {}
func (NoEvent) event()     {}
func (Parameters) event()  {}
func (Parameter) event()   {}
func (Sequences) event()   {}
func (Sequence) event()    {}
func (MotifStart) event()  {}
func (MotifHit) event()    {}
func (MotifScore) event()  {}
func (MotifMask) event()   {}
