package prodoc

// Event is one step of scanning a documentation entry.
type Event interface {
	event()
}

// StartRecord opens a new entry.
type StartRecord struct{}

// EndRecord closes the current entry.
type EndRecord struct{}

// Accession is the {PDOCnnnnn} line.
type Accession struct{ Line string }

// PrositeRefLine is a {PSnnnnn; NAME} line.
type PrositeRefLine struct{ Line string }

// Text is one line of free text.
type Text struct{ Line string }

// ReferenceLine is a reference header or continuation line.
type ReferenceLine struct{ Line string }

// NoEvent is a line that carries no data, such as {BEGIN} or the copyright
// box.
type NoEvent struct{ Line string }

func (StartRecord) event()    {}
func (EndRecord) event()      {}
func (Accession) event()      {}
func (PrositeRefLine) event() {}
func (Text) event()           {}
func (ReferenceLine) event()  {}
func (NoEvent) event()        {}
