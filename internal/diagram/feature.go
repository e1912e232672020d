// Package diagram turns annotated sequence features into drawable features
// with resolved coordinates, strand, name and color.
package diagram

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"

	"github.com/charmbracelet/lipgloss"
)

// ErrMalformedCoordinate is returned when a boundary is not a number once
// its markers are stripped.
var ErrMalformedCoordinate = errors.New("diagram: malformed coordinate")

// CoordinateError names the boundary that could not be read.
type CoordinateError struct {
	Boundary string
	Err      error
}

func (e *CoordinateError) Error() string {
	return fmt.Sprintf("%v: %q", e.Err, e.Boundary)
}

func (e *CoordinateError) Unwrap() error { return e.Err }

// DefaultColor is the fill of features that carry no color of their own.
const DefaultColor lipgloss.Color = "#90EE90"

// DefaultNameQualifiers is the order in which qualifiers are tried when
// naming a feature.
func DefaultNameQualifiers() []string {
	return []string{"gene", "label", "name", "locus_tag", "product"}
}

// Span is one drawn region.
type Span struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Feature is a normalized, drawable feature. Fields of the underlying
// source are reached through Source.
type Feature struct {
	ID        string `json:"id,omitempty"`
	Locations []Span `json:"locations"`
	Start     int    `json:"start"`
	End       int    `json:"end"`
	Strand    int    `json:"strand"`
	Type      string `json:"type"`
	Name      string `json:"name"`
	Hide      bool   `json:"hide"`

	Color            lipgloss.Color `json:"color"`
	Sigil            string         `json:"sigil"`
	ArrowheadLength  float64        `json:"arrowhead_length"`
	ArrowshaftHeight float64        `json:"arrowshaft_height"`
	NameQualifiers   []string       `json:"-"`

	Label         bool           `json:"label"`
	LabelFont     string         `json:"label_font"`
	LabelSize     int            `json:"label_size"`
	LabelColor    lipgloss.Color `json:"label_color"`
	LabelAngle    float64        `json:"label_angle"`
	LabelPosition string         `json:"label_position"`

	src        Source
	translator *ColorTranslator
}

// Option adjusts a Feature before its source is normalized.
type Option func(*Feature) error

// WithID sets the feature ID.
func WithID(id string) Option {
	return func(f *Feature) error {
		f.ID = id
		return nil
	}
}

// WithColor sets the fill color. A color qualifier on the source wins.
func WithColor(c any) Option {
	return func(f *Feature) error { return f.SetColor(c) }
}

// WithLabel turns labelling on.
func WithLabel() Option {
	return func(f *Feature) error {
		f.Label = true
		return nil
	}
}

// WithNameQualifiers replaces the name preference list.
func WithNameQualifiers(keys ...string) Option {
	return func(f *Feature) error {
		f.NameQualifiers = append([]string(nil), keys...)
		return nil
	}
}

// WithTranslator uses t instead of a fresh ColorTranslator.
func WithTranslator(t *ColorTranslator) Option {
	return func(f *Feature) error {
		f.translator = t
		return nil
	}
}

// New builds a Feature from src. It fails without a partial result when
// any boundary is not numeric or the color qualifier is unknown.
func New(src Source, opts ...Option) (*Feature, error) {
	f := &Feature{
		Color:            DefaultColor,
		Sigil:            "BOX",
		ArrowheadLength:  1.0,
		ArrowshaftHeight: 0.4,
		NameQualifiers:   DefaultNameQualifiers(),
		LabelFont:        "Helvetica",
		LabelSize:        6,
		LabelColor:       "#000000",
		LabelAngle:       45,
		LabelPosition:    "start",
		src:              src,
	}
	for _, opt := range opts {
		if err := opt(f); err != nil {
			return nil, err
		}
	}
	if f.translator == nil {
		f.translator = NewColorTranslator()
	}
	if err := f.normalize(); err != nil {
		return nil, err
	}
	return f, nil
}

// Source returns the object the feature was built from.
func (f *Feature) Source() Source { return f.src }

// SetColor translates c and makes it the fill color.
func (f *Feature) SetColor(c any) error {
	if f.translator == nil {
		f.translator = NewColorTranslator()
	}
	color, err := f.translator.Translate(c)
	if err != nil {
		return err
	}
	f.Color = color
	return nil
}

func (f *Feature) normalize() error {
	sources := f.src.SubSources()
	if len(sources) == 0 {
		sources = []Source{f.src}
	}

	var locations []Span
	lo, hi := math.MaxInt, math.MinInt
	hide := false
	for _, s := range sources {
		startB, endB := s.Boundaries()
		start, end := startB.String(), endB.String()
		if strings.Contains(start, "^") {
			hide = true
			start, end, _ = strings.Cut(start, "^")
		}
		a, err := coordinate(start, strings.TrimLeftFunc)
		if err != nil {
			return err
		}
		b, err := coordinate(end, strings.TrimFunc)
		if err != nil {
			return err
		}
		locations = append(locations, Span{Start: a, End: b})
		lo = min(lo, a, b)
		hi = max(hi, a, b)
	}

	typ := f.src.FeatureType()
	strand, ok := f.src.FeatureStrand()
	if !ok {
		strand = 0
	}
	quals := f.src.FeatureQualifiers()
	color := f.Color
	if v := quals["color"]; len(v) > 0 {
		c, err := f.translator.Artemis(v[0])
		if err != nil {
			return err
		}
		color = c
	}
	name := typ
	for _, key := range f.NameQualifiers {
		if v := quals[key]; len(v) > 0 {
			name = v[0]
			break
		}
	}

	f.Locations = locations
	f.Start, f.End = lo, hi
	f.Hide = f.Hide || hide
	f.Strand = strand
	f.Type = typ
	f.Color = color
	f.Name = name
	return nil
}

func notDigit(r rune) bool { return !unicode.IsDigit(r) }

func coordinate(s string, trim func(string, func(rune) bool) string) (int, error) {
	n, err := strconv.Atoi(trim(s, notDigit))
	if err != nil {
		return 0, &CoordinateError{Boundary: s, Err: ErrMalformedCoordinate}
	}
	return n, nil
}
