package genbank

import (
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/chapmanb/biosqlweb/internal/linescan"
)

const sample = `LOCUS       SCU49845     60 bp    DNA     linear   PLN 21-JUN-1999
DEFINITION  Saccharomyces cerevisiae TCP1-beta gene, partial cds, and Axl2p
            (AXL2) gene, complete cds.
ACCESSION   U49845
VERSION     U49845.1  GI:1293613
KEYWORDS    .
FEATURES             Location/Qualifiers
     source          1..60
                     /organism="Saccharomyces cerevisiae"
                     /db_xref="taxon:4932"
     gene            <1..>30
                     /gene="TCP1"
     CDS             join(1..10,
                     21..30)
                     /gene="TCP1"
                     /note="a long note that wraps
                     onto a second line"
                     /translation="MSSIYN
                     GISTSG"
     misc_feature    complement(40..50)
                     /label=thing
                     /pseudo
ORIGIN
        1 gatcctccat atacaacggt atctccacct caggtttaga tctcaacaac ggaaccattg
//
`

func TestReadRecord(t *testing.T) {
	recs, err := ReadAll(strings.NewReader(sample + "\n" + sample))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("expected 2 records, got %d", len(recs))
	}
	r := recs[0]
	if r.Name != "SCU49845" || r.Length != 60 || r.MoleculeType != "DNA" || r.Topology != "linear" || r.Division != "PLN" || r.Date != "21-JUN-1999" {
		t.Fatalf("unexpected locus fields %+v", r)
	}
	if r.Definition != "Saccharomyces cerevisiae TCP1-beta gene, partial cds, and Axl2p (AXL2) gene, complete cds." {
		t.Fatalf("unexpected definition %q", r.Definition)
	}
	if r.Accession != "U49845" || r.Version != "U49845.1" {
		t.Fatalf("unexpected accession/version %q %q", r.Accession, r.Version)
	}
	if len(r.Sequence) != 60 || !strings.HasPrefix(r.Sequence, "GATCCTCCAT") {
		t.Fatalf("unexpected sequence %q", r.Sequence)
	}
	if len(r.Features) != 4 {
		t.Fatalf("expected 4 features, got %d", len(r.Features))
	}

	cds := r.Features[2]
	if cds.Type != "CDS" || len(cds.SubFeatures) != 2 {
		t.Fatalf("unexpected CDS %+v", cds)
	}
	if v, _ := cds.Qualifier("translation"); v != "MSSIYNGISTSG" {
		t.Fatalf("expected translation joined without spaces, got %q", v)
	}
	if v, _ := cds.Qualifier("note"); v != "a long note that wraps onto a second line" {
		t.Fatalf("unexpected note %q", v)
	}

	misc := r.Features[3]
	if *misc.Strand != -1 {
		t.Fatalf("expected minus strand, got %d", *misc.Strand)
	}
	if v, _ := misc.Qualifier("label"); v != "thing" {
		t.Fatalf("unexpected label %q", v)
	}
	if v, ok := misc.Qualifier("pseudo"); !ok || v != "" {
		t.Fatalf("expected empty flag qualifier, got %q %v", v, ok)
	}
	if got := r.Features[1].Location.Start.String(); got != "<0" {
		t.Fatalf("unexpected fuzzy start %q", got)
	}
}

func TestReaderEOF(t *testing.T) {
	rd := NewReader(strings.NewReader(sample))
	if _, err := rd.Read(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := 0; i < 2; i++ {
		if _, err := rd.Read(); err != io.EOF {
			t.Fatalf("expected io.EOF, got %v", err)
		}
	}
}

func TestTruncatedRecord(t *testing.T) {
	bad := strings.TrimSuffix(sample, "//\n")
	if _, err := ReadAll(strings.NewReader(bad)); !errors.Is(err, ErrUnexpectedEOF) {
		t.Fatalf("expected ErrUnexpectedEOF, got %v", err)
	}
}

func TestNotALocusLine(t *testing.T) {
	_, err := ReadAll(strings.NewReader("ID   something\n"))
	var le *linescan.LineError
	if !errors.As(err, &le) || le.Line != 1 || !errors.Is(err, ErrMalformedLine) {
		t.Fatalf("expected malformed line 1, got %v", err)
	}
}

func TestBadFeatureLocation(t *testing.T) {
	bad := strings.Replace(sample, "complement(40..50)", "complement(40..", 1)
	_, err := ReadAll(strings.NewReader(bad))
	var le *linescan.LineError
	if !errors.As(err, &le) || le.Line != 20 {
		t.Fatalf("expected location error on line 20, got %v", err)
	}
}
