package fasta

// Package fasta reads and writes FASTA text for the records the parsers
// produce, on top of biogo's FASTA reader and writer.

import (
	"fmt"
	"io"
	"strings"

	"github.com/biogo/biogo/alphabet"
	seqfasta "github.com/biogo/biogo/io/seqio/fasta"
	"github.com/biogo/biogo/seq/linear"

	"github.com/chapmanb/biosqlweb/internal/genbank"
	"github.com/chapmanb/biosqlweb/internal/motif"
)

// DefaultWidth is the line width used when Write is given zero.
const DefaultWidth = 60

// Record represents a single FASTA record (header and sequence).
type Record struct {
	Header   string `json:"header"`
	Sequence string `json:"sequence"`
}

// Parse reads FASTA records from r. The header is the identifier and the
// description joined by one space.
func Parse(r io.Reader) ([]Record, error) {
	rd := seqfasta.NewReader(r, linear.NewSeq("", nil, alphabet.DNA))
	var records []Record
	for {
		s, err := rd.Read()
		if err == io.EOF {
			return records, nil
		}
		if err != nil {
			return nil, err
		}
		ls := s.(*linear.Seq)
		header := ls.ID
		if ls.Desc != "" {
			header += " " + ls.Desc
		}
		records = append(records, Record{Header: header, Sequence: string(alphabet.LettersToBytes(ls.Seq))})
	}
}

// Write writes recs to w, wrapping sequence lines at width.
func Write(w io.Writer, recs []Record, width int) error {
	if width <= 0 {
		width = DefaultWidth
	}
	fw := seqfasta.NewWriter(w, width)
	for _, r := range recs {
		id, desc, _ := strings.Cut(r.Header, " ")
		s := linear.NewSeq(id, alphabet.BytesToLetters([]byte(r.Sequence)), alphabet.DNA)
		s.Desc = desc
		if _, err := fw.Write(s); err != nil {
			return fmt.Errorf("write %s: %w", id, err)
		}
	}
	return nil
}

// FromMotif returns one record per motif instance, named prefix_N.
func FromMotif(m *motif.Motif, prefix string) []Record {
	sites := m.Sites()
	out := make([]Record, len(sites))
	for i, s := range sites {
		out[i] = Record{Header: fmt.Sprintf("%s_%d", prefix, i+1), Sequence: s}
	}
	return out
}

// FromGenBank returns the whole sequence of rec when no types are given.
// Otherwise it returns the extracted sequence of every feature whose type is
// listed.
func FromGenBank(rec *genbank.Record, types ...string) ([]Record, error) {
	if len(types) == 0 {
		header := rec.Name
		if rec.Accession != "" {
			header = rec.Accession
		}
		if rec.Definition != "" {
			header += " " + rec.Definition
		}
		return []Record{{Header: header, Sequence: rec.Sequence}}, nil
	}
	want := make(map[string]bool, len(types))
	for _, t := range types {
		want[t] = true
	}
	var out []Record
	for i, f := range rec.Features {
		if !want[f.Type] {
			continue
		}
		s, err := f.Extract(rec.Sequence)
		if err != nil {
			return nil, err
		}
		id := fmt.Sprintf("%s_%d", rec.Name, i+1)
		for _, key := range []string{"locus_tag", "gene", "label"} {
			if v, ok := f.Qualifier(key); ok {
				id = v
				break
			}
		}
		out = append(out, Record{Header: fmt.Sprintf("%s %s %s", id, f.Type, f.Location), Sequence: s})
	}
	return out, nil
}
