package fasta

import (
	"bytes"
	"strings"
	"testing"

	"github.com/chapmanb/biosqlweb/internal/genbank"
	"github.com/chapmanb/biosqlweb/internal/motif"
	"github.com/chapmanb/biosqlweb/internal/seqfeature"
)

func TestParseFastaSimple(t *testing.T) {
	input := ">seq1\nATGC\n>seq2 desc\nGGTT\n"
	recs, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("expected 2 records, got %d", len(recs))
	}
	if recs[0].Header != "seq1" || recs[0].Sequence != "ATGC" {
		t.Fatalf("unexpected first record: %+v", recs[0])
	}
	if recs[1].Header != "seq2 desc" || recs[1].Sequence != "GGTT" {
		t.Fatalf("unexpected second record: %+v", recs[1])
	}
}

func TestWriteWraps(t *testing.T) {
	var buf bytes.Buffer
	recs := []Record{{Header: "s1 first one", Sequence: "ACGTACGTAC"}}
	if err := Write(&buf, recs, 4); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := ">s1 first one\nACGT\nACGT\nAC\n"
	if buf.String() != want {
		t.Fatalf("expected %q, got %q", want, buf.String())
	}
	back, err := Parse(&buf)
	if err != nil || len(back) != 1 || back[0] != recs[0] {
		t.Fatalf("unexpected reparse %+v %v", back, err)
	}
}

func TestFromMotif(t *testing.T) {
	m := motif.New()
	for _, s := range []string{"ACGT", "AGGT"} {
		if err := m.AddInstance(s); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	recs := FromMotif(m, "motif1")
	if len(recs) != 2 || recs[1].Header != "motif1_2" || recs[1].Sequence != "AGGT" {
		t.Fatalf("unexpected records %+v", recs)
	}
}

func TestFromGenBank(t *testing.T) {
	cds, err := seqfeature.New("CDS", "complement(3..6)", map[string][]string{"gene": {"abc"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	rec := &genbank.Record{Name: "X", Accession: "X1", Definition: "test", Sequence: "AACCGGTT", Features: []*seqfeature.SeqFeature{cds}}

	whole, err := FromGenBank(rec)
	if err != nil || len(whole) != 1 || whole[0].Header != "X1 test" {
		t.Fatalf("unexpected whole record %+v %v", whole, err)
	}
	feats, err := FromGenBank(rec, "CDS")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(feats) != 1 || feats[0].Sequence != "CCGG" || !strings.HasPrefix(feats[0].Header, "abc CDS") {
		t.Fatalf("unexpected feature records %+v", feats)
	}
}

func TestFromGenBankMinusStrandJoin(t *testing.T) {
	cds, err := seqfeature.New("CDS", "complement(join(1..3,7..9))", map[string][]string{"locus_tag": {"b0001"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	rec := &genbank.Record{Name: "X", Sequence: "AAACCCGGGTTT", Features: []*seqfeature.SeqFeature{cds}}
	feats, err := FromGenBank(rec, "CDS")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(feats) != 1 || feats[0].Sequence != "CCCTTT" || !strings.HasPrefix(feats[0].Header, "b0001 CDS") {
		t.Fatalf("unexpected feature records %+v", feats)
	}
}
