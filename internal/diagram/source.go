package diagram

import (
	"fmt"

	"github.com/chapmanb/biosqlweb/internal/seqfeature"
)

// Source is what a Feature is built from.
type Source interface {
	FeatureType() string
	// FeatureStrand returns false when the strand is unknown.
	FeatureStrand() (int, bool)
	FeatureQualifiers() map[string][]string
	// Boundaries returns the start and end exactly as the source prints
	// them, fuzzy markers included.
	Boundaries() (start, end fmt.Stringer)
	SubSources() []Source
}

// FromSeqFeature adapts a parsed feature to Source.
func FromSeqFeature(f *seqfeature.SeqFeature) Source {
	return seqFeatureSource{f}
}

type seqFeatureSource struct {
	f *seqfeature.SeqFeature
}

func (s seqFeatureSource) FeatureType() string { return s.f.Type }

func (s seqFeatureSource) FeatureStrand() (int, bool) {
	if s.f.Strand == nil {
		return 0, false
	}
	return *s.f.Strand, true
}

func (s seqFeatureSource) FeatureQualifiers() map[string][]string { return s.f.Qualifiers }

func (s seqFeatureSource) Boundaries() (start, end fmt.Stringer) {
	return s.f.Location.Start, s.f.Location.End
}

func (s seqFeatureSource) SubSources() []Source {
	if len(s.f.SubFeatures) == 0 {
		return nil
	}
	out := make([]Source, len(s.f.SubFeatures))
	for i, sub := range s.f.SubFeatures {
		out[i] = seqFeatureSource{sub}
	}
	return out
}

// SeqFeature returns the wrapped feature of a Source built by
// FromSeqFeature.
func SeqFeature(src Source) (*seqfeature.SeqFeature, bool) {
	s, ok := src.(seqFeatureSource)
	if !ok {
		return nil, false
	}
	return s.f, true
}
