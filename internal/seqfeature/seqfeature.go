// Package seqfeature models annotated sequence features and their locations.
//
// Coordinates follow the zero-based, half-open convention: the GenBank
// location 1..10 has start 0 and end 10. A feature whose location joins
// several regions keeps one sub-feature per region.
package seqfeature

import (
	"fmt"
	"strings"

	"github.com/biogo/biogo/alphabet"
	"github.com/biogo/biogo/seq/linear"
)

// PosKind says how exact a position is.
type PosKind int

const (
	Exact   PosKind = iota
	Before          // <n
	After           // >n
	Between         // n^m, a site between two bases
	Within          // (n.m), somewhere inside a range
)

// Position is one end of a location.
type Position struct {
	Kind PosKind
	Pos  int
	Ext  int
}

func (p Position) String() string {
	switch p.Kind {
	case Before:
		return fmt.Sprintf("<%d", p.Pos)
	case After:
		return fmt.Sprintf(">%d", p.Pos)
	case Between:
		return fmt.Sprintf("%d^%d", p.Pos, p.Pos+p.Ext)
	case Within:
		return fmt.Sprintf("(%d.%d)", p.Pos, p.Pos+p.Ext)
	}
	return fmt.Sprintf("%d", p.Pos)
}

// Fuzzy reports whether the position is anything but exact.
func (p Position) Fuzzy() bool { return p.Kind != Exact }

// Location spans Start to End.
type Location struct {
	Start Position
	End   Position
}

func (l Location) String() string {
	return fmt.Sprintf("[%s:%s]", l.Start, l.End)
}

// SeqFeature is one annotated feature. Strand is nil when unknown.
type SeqFeature struct {
	ID          string
	Type        string
	Location    Location
	Strand      *int
	Qualifiers  map[string][]string
	SubFeatures []*SeqFeature
}

// Strand returns a pointer to s, for building features by hand.
func Strand(s int) *int { return &s }

// New builds a feature from a GenBank style location string.
func New(typ, location string, quals map[string][]string) (*SeqFeature, error) {
	parts, compound, err := ParseLocation(location)
	if err != nil {
		return nil, err
	}
	if quals == nil {
		quals = make(map[string][]string)
	}
	f := &SeqFeature{Type: typ, Qualifiers: quals}
	if !compound {
		f.Location = parts[0].Location
		f.Strand = Strand(parts[0].Strand)
		return f, nil
	}

	strand := parts[0].Strand
	start, end := parts[0].Start, parts[0].End
	for _, p := range parts {
		f.SubFeatures = append(f.SubFeatures, &SeqFeature{
			Type:       typ,
			Location:   p.Location,
			Strand:     Strand(p.Strand),
			Qualifiers: make(map[string][]string),
		})
		if p.Strand != strand {
			strand = 0
		}
		if p.Start.Pos < start.Pos {
			start = p.Start
		}
		if p.End.Pos > end.Pos {
			end = p.End
		}
	}
	f.Location = Location{Start: start, End: end}
	if strand != 0 {
		f.Strand = Strand(strand)
	}
	return f, nil
}

// Qualifier returns the first value stored under key.
func (f *SeqFeature) Qualifier(key string) (string, bool) {
	v := f.Qualifiers[key]
	if len(v) == 0 {
		return "", false
	}
	return v[0], true
}

// Extract cuts the feature out of seq, joining sub-features in order and
// reverse-complementing minus strand regions. Parts of a complemented join
// are already stored in transcription order.
func (f *SeqFeature) Extract(seq string) (string, error) {
	if len(f.SubFeatures) == 0 {
		return extract(seq, f.Location, f.Strand)
	}
	var b strings.Builder
	for _, sub := range f.SubFeatures {
		s, err := extract(seq, sub.Location, sub.Strand)
		if err != nil {
			return "", err
		}
		b.WriteString(s)
	}
	return b.String(), nil
}

func extract(seq string, loc Location, strand *int) (string, error) {
	start, end := loc.Start.Pos, loc.End.Pos
	if loc.Start.Kind == Between {
		return "", nil
	}
	if start < 0 || end > len(seq) || start > end {
		return "", fmt.Errorf("seqfeature: location %s outside sequence of length %d", loc, len(seq))
	}
	s := seq[start:end]
	if strand != nil && *strand == -1 {
		s = ReverseComplement(s)
	}
	return s, nil
}

// ReverseComplement returns the reverse complement of a DNA string, IUPAC
// ambiguity codes included. Letters outside that alphabet are kept as they
// are, in reversed position.
func ReverseComplement(s string) string {
	rc := linear.NewSeq("", alphabet.BytesToLetters([]byte(s)), alphabet.DNAredundant)
	rc.RevComp()
	out := alphabet.LettersToBytes(rc.Seq)
	for i, b := range out {
		if b == 0xff {
			out[i] = s[len(s)-1-i]
		}
	}
	return string(out)
}
