package main

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/chapmanb/biosqlweb/internal/alignace"
	"github.com/chapmanb/biosqlweb/internal/config"
	"github.com/chapmanb/biosqlweb/internal/diagram"
	"github.com/chapmanb/biosqlweb/internal/fasta"
	"github.com/chapmanb/biosqlweb/internal/genbank"
	"github.com/chapmanb/biosqlweb/internal/prodoc"
)

const (
	formatAlignACE   = "alignace"
	formatCompareACE = "compareace"
	formatProdoc     = "prodoc"
	formatGenBank    = "genbank"
	formatFASTA      = "fasta"
)

// detectFormat guesses the input format from the file extension.
func detectFormat(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".gb", ".gbk", ".genbank":
		return formatGenBank, nil
	case ".doc", ".prodoc":
		return formatProdoc, nil
	case ".ace", ".aln":
		return formatAlignACE, nil
	case ".cmp":
		return formatCompareACE, nil
	case ".fa", ".fasta", ".fna":
		return formatFASTA, nil
	}
	return "", fmt.Errorf("cannot tell the format of %q; use -format", path)
}

type motifView struct {
	Index     int      `json:"index"`
	Score     *float64 `json:"score,omitempty"`
	Consensus string   `json:"consensus"`
	Mask      string   `json:"mask,omitempty"`
	Sites     []string `json:"sites"`
}

type alignaceView struct {
	Version     string            `json:"version"`
	CommandLine string            `json:"command_line"`
	Parameters  map[string]string `json:"parameters"`
	Sequences   []string          `json:"sequences"`
	Motifs      []motifView       `json:"motifs"`
}

func viewAlignACE(rec *alignace.Record) alignaceView {
	v := alignaceView{
		Version:     rec.Version,
		CommandLine: rec.CommandLine,
		Parameters:  rec.Parameters,
		Sequences:   rec.Sequences,
	}
	for i, m := range rec.Motifs {
		mv := motifView{Index: i + 1, Consensus: m.Consensus(), Sites: m.Sites()}
		if m.HasScore {
			s := m.Score
			mv.Score = &s
		}
		if m.Mask != nil {
			var b strings.Builder
			for _, on := range m.Mask {
				if on {
					b.WriteByte('*')
				} else {
					b.WriteByte(' ')
				}
			}
			mv.Mask = b.String()
		}
		v.Motifs = append(v.Motifs, mv)
	}
	return v
}

func alignaceFasta(rec *alignace.Record) []fasta.Record {
	var out []fasta.Record
	for i, m := range rec.Motifs {
		out = append(out, fasta.FromMotif(m, fmt.Sprintf("motif%d", i+1))...)
	}
	return out
}

type genbankView struct {
	*genbank.Record
	Features []*diagram.Feature `json:"features"`
	Skipped  int                `json:"skipped,omitempty"`
}

// normalizeFeatures builds drawable features for rec. A feature that cannot
// be normalized is logged and counted, not fatal for the record.
func normalizeFeatures(rec *genbank.Record, cfg *config.Config, logger *log.Logger) ([]*diagram.Feature, int) {
	feats, skipped := diagram.FromRecord(rec, cfg.Diagram())
	for _, s := range skipped {
		if s.Err != nil {
			logger.Warn("skipping feature", "record", rec.Name, "id", s.ID, "type", s.Type, "err", s.Err)
		} else {
			logger.Debug("hiding feature with between-base location", "id", s.ID)
		}
	}
	return feats, len(skipped)
}

// convert parses r in the given format and returns the value to encode as
// JSON and, when wanted, the FASTA records to export.
func convert(format string, r io.Reader, cfg *config.Config, logger *log.Logger) (any, []fasta.Record, error) {
	switch format {
	case formatAlignACE:
		rec, err := alignace.Parse(r)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("parsed alignace report", "motifs", len(rec.Motifs), "sequences", len(rec.Sequences))
		return viewAlignACE(rec), alignaceFasta(rec), nil
	case formatCompareACE:
		score, err := alignace.ParseCompareScore(r)
		if err != nil {
			return nil, nil, err
		}
		return map[string]float64{"score": score}, nil, nil
	case formatProdoc:
		recs, err := prodoc.ReadAll(r)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("parsed prodoc entries", "records", len(recs))
		return recs, nil, nil
	case formatGenBank:
		recs, err := genbank.ReadAll(r)
		if err != nil {
			return nil, nil, err
		}
		views := make([]genbankView, 0, len(recs))
		var seqs []fasta.Record
		for _, rec := range recs {
			feats, skipped := normalizeFeatures(rec, cfg, logger)
			views = append(views, genbankView{Record: rec, Features: feats, Skipped: skipped})
			whole, err := fasta.FromGenBank(rec)
			if err != nil {
				return nil, nil, err
			}
			seqs = append(seqs, whole...)
			logger.Info("parsed genbank record", "name", rec.Name, "features", len(feats), "skipped", skipped)
		}
		return views, seqs, nil
	case formatFASTA:
		recs, err := fasta.Parse(r)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("parsed fasta records", "records", len(recs))
		return recs, recs, nil
	}
	return nil, nil, fmt.Errorf("unknown format %q", format)
}
