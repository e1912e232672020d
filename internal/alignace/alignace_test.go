package alignace

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/chapmanb/biosqlweb/internal/linescan"
)

const report = "AlignACE 4.0 05/13/04\n" +
	"./AlignACE -i test.fa -numcols 10\n" +
	"Parameter values:\n" +
	"\texpect = 10\n" +
	"\tgcback = 0.38\n" +
	"\tminpass = 200\n" +
	"\n" +
	"Input sequences:\n" +
	"#0\tSEQ1; M: CTCAATCGTAGA at 52\n" +
	"#1\tSEQ2; M: CTCAATCGTAGA at 172\n" +
	"\n" +
	"Motif 1\n" +
	"TCTACGATTG\t0\t51\t1\n" +
	"TCTACGATTG\t1\t171\t1\n" +
	"**** *****\n" +
	"MAP Score: 57.9079\n" +
	"\n" +
	"Motif 2\n" +
	"GCGAAC\t0\t10\t0\n" +
	"GCGTAC\t1\t20\t1\n" +
	"GCGAAC\t0\t30\t1\n" +
	"******\n" +
	"MAP Score: 12.5\n"

func TestParseReport(t *testing.T) {
	rec, err := Parse(strings.NewReader(report))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Version != "AlignACE 4.0 05/13/04" {
		t.Fatalf("unexpected version %q", rec.Version)
	}
	if rec.CommandLine != "./AlignACE -i test.fa -numcols 10" {
		t.Fatalf("unexpected command line %q", rec.CommandLine)
	}
	if rec.Parameters["gcback"] != "0.38" || len(rec.Parameters) != 3 {
		t.Fatalf("unexpected parameters %v", rec.Parameters)
	}
	if !reflect.DeepEqual(rec.ParameterOrder, []string{"expect", "gcback", "minpass"}) {
		t.Fatalf("unexpected parameter order %v", rec.ParameterOrder)
	}
	if len(rec.Sequences) != 2 || rec.Sequences[1] != "SEQ2; M: CTCAATCGTAGA at 172" {
		t.Fatalf("unexpected sequences %v", rec.Sequences)
	}
	if len(rec.Motifs) != 2 {
		t.Fatalf("expected 2 motifs, got %d", len(rec.Motifs))
	}
	if n := len(rec.Motifs[0].Instances); n != 2 {
		t.Fatalf("expected 2 instances in motif 1, got %d", n)
	}
	if n := len(rec.Motifs[1].Instances); n != 3 {
		t.Fatalf("expected 3 instances in motif 2, got %d", n)
	}
	if rec.Motifs[0].Score != 57.9079 || !rec.Motifs[0].HasScore {
		t.Fatalf("unexpected score %v", rec.Motifs[0].Score)
	}
	if rec.Motifs[0].Mask[4] || !rec.Motifs[0].Mask[5] {
		t.Fatalf("unexpected mask %v", rec.Motifs[0].Mask)
	}
	if rec.Motifs[1].Sites()[1] != "GCGTAC" {
		t.Fatalf("unexpected sites %v", rec.Motifs[1].Sites())
	}
}

type recordingConsumer struct{ events []Event }

func (r *recordingConsumer) Consume(ev Event) error {
	r.events = append(r.events, ev)
	return nil
}

func TestMotifCountsMatchEvents(t *testing.T) {
	var s Scanner
	rc := &recordingConsumer{}
	if err := s.Feed(strings.NewReader(report), rc); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	rec, err := Parse(strings.NewReader(report))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	motifs, hits := 0, []int{}
	for _, ev := range rc.events {
		switch ev.(type) {
		case MotifStart:
			motifs++
			hits = append(hits, 0)
		case MotifHit:
			hits[len(hits)-1]++
		}
	}
	if motifs != len(rec.Motifs) {
		t.Fatalf("expected %d motifs, got %d", motifs, len(rec.Motifs))
	}
	for i, m := range rec.Motifs {
		if len(m.Instances) != hits[i] {
			t.Fatalf("motif %d: expected %d instances, got %d", i, hits[i], len(m.Instances))
		}
	}
	if _, ok := rc.events[0].(Version); !ok {
		t.Fatalf("expected first event to be Version, got %T", rc.events[0])
	}
	if _, ok := rc.events[1].(CommandLine); !ok {
		t.Fatalf("expected second event to be CommandLine, got %T", rc.events[1])
	}
}

func TestClassifyPriority(t *testing.T) {
	cases := []struct {
		line string
		want Event
	}{
		{"   \n", NoEvent{}},
		{"Parameter values:\n", Parameters{}},
		{"#3\tchrI\n", Sequence{Name: "chrI"}},
		{"\tseed = 1227623309\n", Parameter{Name: "seed", Value: "1227623309"}},
		{"Input sequences:\n", Sequences{}},
		{"Motif 7\n", MotifStart{Label: "Motif 7"}},
		{"MAP Score: 3.25\n", MotifScore{Score: 3.25}},
		{"ACGT\t2\t40\t0\n", MotifHit{Site: "ACGT", SeqIndex: 2, Position: 40, Strand: 0}},
		{" ** *\n", MotifMask{Mask: " ** *"}},
	}
	for _, c := range cases {
		got, err := Classify(c.line)
		if err != nil {
			t.Fatalf("%q: unexpected error: %v", c.line, err)
		}
		if !reflect.DeepEqual(got, c.want) {
			t.Fatalf("%q: expected %#v, got %#v", c.line, c.want, got)
		}
	}
}

func TestUnrecognizedLineIsFatal(t *testing.T) {
	bad := strings.Replace(report, "Motif 2\n", "garbage here\n", 1)
	rec, err := Parse(strings.NewReader(bad))
	if rec != nil {
		t.Fatalf("expected no record on failure")
	}
	if !errors.Is(err, ErrUnrecognizedLine) {
		t.Fatalf("expected ErrUnrecognizedLine, got %v", err)
	}
	var le *linescan.LineError
	if !errors.As(err, &le) || le.Line != 18 {
		t.Fatalf("expected error on line 18, got %v", err)
	}
}

func TestHitBeforeMotif(t *testing.T) {
	in := "v\ncmd\nACGT\t0\t1\t1\n"
	if _, err := Parse(strings.NewReader(in)); !errors.Is(err, ErrMalformedLine) {
		t.Fatalf("expected ErrMalformedLine, got %v", err)
	}
}

func TestTruncatedHeader(t *testing.T) {
	if _, err := Parse(strings.NewReader("AlignACE 4.0\n")); !errors.Is(err, ErrUnexpectedEOF) {
		t.Fatalf("expected ErrUnexpectedEOF, got %v", err)
	}
}

func TestParseIsDeterministic(t *testing.T) {
	a, err := Parse(strings.NewReader(report))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := Parse(strings.NewReader(report))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("expected identical records from identical input")
	}
}

func TestParseCompareScore(t *testing.T) {
	got, err := ParseCompareScore(strings.NewReader("0.896421\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 0.896421 {
		t.Fatalf("expected 0.896421, got %v", got)
	}
	if _, err := ParseCompareScore(strings.NewReader("score: n/a\n")); !errors.Is(err, ErrMalformedLine) {
		t.Fatalf("expected ErrMalformedLine, got %v", err)
	}
}
