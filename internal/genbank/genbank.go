// Package genbank reads GenBank flat files into records carrying parsed
// feature tables.
package genbank

import (
	"errors"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/chapmanb/biosqlweb/internal/linescan"
	"github.com/chapmanb/biosqlweb/internal/seqfeature"
)

var (
	ErrMalformedLine = errors.New("genbank: malformed line")
	ErrUnexpectedEOF = errors.New("genbank: unexpected end of input")
)

// Record is one LOCUS entry.
type Record struct {
	Name         string                   `json:"name"`
	Length       int                      `json:"length"`
	MoleculeType string                   `json:"molecule_type,omitempty"`
	Topology     string                   `json:"topology,omitempty"`
	Division     string                   `json:"division,omitempty"`
	Date         string                   `json:"date,omitempty"`
	Definition   string                   `json:"definition,omitempty"`
	Accession    string                   `json:"accession,omitempty"`
	Version      string                   `json:"version,omitempty"`
	Features     []*seqfeature.SeqFeature `json:"-"`
	Sequence     string                   `json:"-"`
}

const (
	keyWidth     = 12
	featureKeyAt = 5
	featureValAt = 21
)

var (
	datePattern     = regexp.MustCompile(`^\d{2}-[A-Z]{3}-\d{4}$`)
	divisionPattern = regexp.MustCompile(`^[A-Z]{3}$`)
)

// Reader yields GenBank records one at a time.
type Reader struct {
	lr  *linescan.Reader
	err error
}

func NewReader(r io.Reader) *Reader {
	return &Reader{lr: linescan.NewReader(r)}
}

// Read returns the next record, or io.EOF once the stream is exhausted.
// Errors are sticky.
func (r *Reader) Read() (*Record, error) {
	if r.err != nil {
		return nil, r.err
	}
	rec, err := r.read()
	if err != nil {
		r.err = err
		return nil, err
	}
	return rec, nil
}

// ReadAll reads every record of r.
func ReadAll(r io.Reader) ([]*Record, error) {
	rd := NewReader(r)
	var out []*Record
	for {
		rec, err := rd.Read()
		if err == io.EOF {
			return out, nil
		}
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
}

func (r *Reader) next() (string, error) {
	line, err := r.lr.ReadLine()
	if err == io.EOF {
		return "", ErrUnexpectedEOF
	}
	return line, err
}

func (r *Reader) read() (*Record, error) {
	var line string
	for {
		l, err := r.lr.ReadLine()
		if err != nil {
			return nil, err
		}
		if !linescan.IsBlank(l) {
			line = l
			break
		}
	}
	if !strings.HasPrefix(line, "LOCUS") {
		return nil, r.lr.Wrap(line, ErrMalformedLine)
	}
	rec := &Record{}
	if err := parseLocus(rec, line); err != nil {
		return nil, r.lr.Wrap(line, err)
	}

	lastKey := ""
	for {
		line, err := r.next()
		if err != nil {
			return nil, err
		}
		text := linescan.Trim(line)
		switch {
		case text == "//":
			return rec, nil
		case strings.HasPrefix(text, "FEATURES"):
			if err := r.readFeatures(rec); err != nil {
				return nil, err
			}
			lastKey = ""
		case strings.HasPrefix(text, "ORIGIN"):
			if err := r.readSequence(rec); err != nil {
				return nil, err
			}
		case strings.TrimSpace(text) == "":
		case text[0] == ' ':
			if lastKey == "DEFINITION" {
				rec.Definition += " " + strings.TrimSpace(text)
			}
		default:
			key, val := splitKeyword(text)
			lastKey = key
			switch key {
			case "DEFINITION":
				rec.Definition = val
			case "ACCESSION":
				if f := strings.Fields(val); len(f) > 0 {
					rec.Accession = f[0]
				}
			case "VERSION":
				if f := strings.Fields(val); len(f) > 0 {
					rec.Version = f[0]
				}
			}
		}
	}
}

func splitKeyword(text string) (key, val string) {
	if len(text) <= keyWidth {
		return strings.TrimSpace(text), ""
	}
	return strings.TrimSpace(text[:keyWidth]), strings.TrimSpace(text[keyWidth:])
}

func parseLocus(rec *Record, line string) error {
	fields := strings.Fields(linescan.Trim(line))[1:]
	if len(fields) == 0 {
		return ErrMalformedLine
	}
	rec.Name = fields[0]
	rest := fields[1:]
	if len(rest) >= 2 && (rest[1] == "bp" || rest[1] == "aa") {
		n, err := strconv.Atoi(rest[0])
		if err != nil {
			return ErrMalformedLine
		}
		rec.Length = n
		rest = rest[2:]
	}
	for _, f := range rest {
		switch {
		case datePattern.MatchString(f):
			rec.Date = f
		case f == "linear" || f == "circular":
			rec.Topology = f
		case rec.MoleculeType == "":
			rec.MoleculeType = f
		case divisionPattern.MatchString(f):
			rec.Division = f
		}
	}
	return nil
}

type pendingFeature struct {
	key      string
	location strings.Builder
	quals    map[string][]string
	qual     string
	value    strings.Builder
	inQual   bool
	line     int
	text     string
}

func (p *pendingFeature) openQuote() bool {
	v := p.value.String()
	if !strings.HasPrefix(v, `"`) {
		return false
	}
	return len(v) == 1 || !strings.HasSuffix(v, `"`) || strings.Count(v, `"`)%2 == 1
}

func (p *pendingFeature) flushQual() {
	if !p.inQual {
		return
	}
	v := p.value.String()
	if strings.HasPrefix(v, `"`) && strings.HasSuffix(v, `"`) && len(v) >= 2 {
		v = strings.ReplaceAll(v[1:len(v)-1], `""`, `"`)
	}
	p.quals[p.qual] = append(p.quals[p.qual], v)
	p.inQual = false
	p.value.Reset()
}

func (r *Reader) finish(rec *Record, p *pendingFeature) error {
	if p == nil {
		return nil
	}
	p.flushQual()
	f, err := seqfeature.New(p.key, p.location.String(), p.quals)
	if err != nil {
		return &linescan.LineError{Line: p.line, Text: p.text, Err: err}
	}
	rec.Features = append(rec.Features, f)
	return nil
}

func (r *Reader) readFeatures(rec *Record) error {
	var cur *pendingFeature
	for {
		line, err := r.next()
		if err != nil {
			return err
		}
		text := linescan.Trim(line)
		if text != "" && text[0] != ' ' {
			if err := r.lr.Unread(line); err != nil {
				return err
			}
			return r.finish(rec, cur)
		}
		if strings.TrimSpace(text) == "" {
			continue
		}
		if len(text) > featureKeyAt && text[featureKeyAt] != ' ' && strings.TrimSpace(text[:featureKeyAt]) == "" {
			if err := r.finish(rec, cur); err != nil {
				return err
			}
			if len(text) < featureValAt {
				return r.lr.Wrap(line, ErrMalformedLine)
			}
			cur = &pendingFeature{
				key:   strings.TrimSpace(text[featureKeyAt:featureValAt]),
				quals: make(map[string][]string),
				line:  r.lr.Line(),
				text:  line,
			}
			cur.location.WriteString(strings.TrimSpace(text[featureValAt:]))
			continue
		}
		if cur == nil || len(text) <= featureValAt || strings.TrimSpace(text[:featureValAt]) != "" {
			return r.lr.Wrap(line, ErrMalformedLine)
		}
		val := strings.TrimSpace(text[featureValAt:])
		switch {
		case cur.inQual && cur.openQuote():
			if cur.qual != "translation" {
				cur.value.WriteByte(' ')
			}
			cur.value.WriteString(val)
		case strings.HasPrefix(val, "/"):
			cur.flushQual()
			name, v, hasValue := strings.Cut(val[1:], "=")
			cur.qual = name
			cur.inQual = true
			if hasValue {
				cur.value.WriteString(v)
			}
		case cur.inQual:
			cur.value.WriteByte(' ')
			cur.value.WriteString(val)
		default:
			cur.location.WriteString(val)
		}
	}
}

func (r *Reader) readSequence(rec *Record) error {
	var b strings.Builder
	for {
		line, err := r.next()
		if err != nil {
			return err
		}
		if strings.HasPrefix(line, "//") {
			rec.Sequence = b.String()
			return r.lr.Unread(line)
		}
		for _, c := range line {
			switch {
			case c >= 'a' && c <= 'z':
				b.WriteRune(c - 'a' + 'A')
			case c >= 'A' && c <= 'Z':
				b.WriteRune(c)
			}
		}
	}
}
