package diagram

import (
	"fmt"

	"github.com/chapmanb/biosqlweb/internal/genbank"
)

// Settings holds the options shared by every feature of a record.
type Settings struct {
	DefaultColor   string
	NameQualifiers []string
	ShowHidden     bool
}

// Skipped is a feature FromRecord left out. Err is nil when the feature was
// only hidden.
type Skipped struct {
	ID   string
	Type string
	Err  error
}

// FromRecord normalizes every feature of rec. Features are named
// <record>_<n> by their one-based position in the record. A feature that
// cannot be normalized, or is hidden while s.ShowHidden is off, is reported
// in the second result instead.
func FromRecord(rec *genbank.Record, s Settings) ([]*Feature, []Skipped) {
	opts := []Option{WithTranslator(NewColorTranslator())}
	if s.DefaultColor != "" {
		opts = append(opts, WithColor(s.DefaultColor))
	}
	if len(s.NameQualifiers) > 0 {
		opts = append(opts, WithNameQualifiers(s.NameQualifiers...))
	}

	var (
		out     []*Feature
		skipped []Skipped
	)
	for i, sf := range rec.Features {
		id := fmt.Sprintf("%s_%d", rec.Name, i+1)
		f, err := New(FromSeqFeature(sf), append(opts[:len(opts):len(opts)], WithID(id))...)
		if err != nil {
			skipped = append(skipped, Skipped{ID: id, Type: sf.Type, Err: err})
			continue
		}
		if f.Hide && !s.ShowHidden {
			skipped = append(skipped, Skipped{ID: id, Type: sf.Type})
			continue
		}
		out = append(out, f)
	}
	return out, skipped
}
