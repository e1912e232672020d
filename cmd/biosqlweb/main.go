package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"gopkg.in/cheggaaa/pb.v1"

	"github.com/chapmanb/biosqlweb/internal/config"
	"github.com/chapmanb/biosqlweb/internal/diagram"
	"github.com/chapmanb/biosqlweb/internal/fasta"
	"github.com/chapmanb/biosqlweb/internal/prodoc"
)

// version is the program version. It can be overridden at build time with -ldflags "-X main.version=..."
var version = "0.1.0"

func main() {
	inputFlag := flag.String("in", "", "input file path")
	formatFlag := flag.String("format", "", "input format: alignace, compareace, prodoc, genbank or fasta (default: from extension)")
	outputFlag := flag.String("out", "", "output JSON file path (default: stdout)")
	configFlag := flag.String("config", "", "path to config.json (optional)")
	fastaFlag := flag.String("fasta", "", "also write sequences as FASTA to this path")
	indexFlag := flag.Bool("index", false, "build a PRODOC index of -in at index_path")
	lookupFlag := flag.String("lookup", "", "print the PRODOC entry with this accession from index_path")
	dryRun := flag.Bool("dry-run", false, "parse and report without writing outputs")
	verbose := flag.Bool("verbose", false, "enable verbose (debug) logging")
	versionFlag := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *versionFlag {
		fmt.Println("biosqlweb", version)
		return
	}

	cfg, err := config.LoadConfig(*configFlag)
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}
	// flags override config when provided
	if *inputFlag != "" {
		cfg.Input = *inputFlag
	}
	if *formatFlag != "" {
		cfg.Format = *formatFlag
	}
	if *outputFlag != "" {
		cfg.OutputJSON = *outputFlag
	}
	if cfg.IndexPath == "" && cfg.Input != "" {
		cfg.IndexPath = cfg.Input + ".idx"
	}

	logger, closeLog, lerr := newLogger(cfg.LogFile)
	defer closeLog()
	if lerr != nil {
		logger.Warn("log_file specified but could not be opened; logging to stderr only", "path", cfg.LogFile, "err", lerr)
	}
	if *verbose {
		logger.SetLevel(log.DebugLevel)
	} else {
		level, ok := levelFor(cfg.LogLevel)
		logger.SetLevel(level)
		if !ok {
			logger.Warn("unknown log_level in config.json, defaulting to info", "provided", cfg.LogLevel)
		}
	}
	logger.Debug("loaded config", "input", cfg.Input, "format", cfg.Format, "output_json", cfg.OutputJSON, "index_path", cfg.IndexPath, "show_hidden", cfg.ShowHidden)

	if cfg.DefaultColor != "" {
		if _, err := diagram.NewColorTranslator().Translate(cfg.DefaultColor); err != nil {
			logger.Fatal("bad default_color", "value", cfg.DefaultColor, "err", err)
		}
	}

	switch {
	case *lookupFlag != "":
		lookup(logger, cfg, *lookupFlag)
	case *indexFlag:
		buildIndex(logger, cfg, *dryRun)
	default:
		run(logger, cfg, *fastaFlag, *dryRun)
	}
}

func run(logger *log.Logger, cfg *config.Config, fastaPath string, dryRun bool) {
	if cfg.Input == "" {
		logger.Fatal("no input file; use -in or set input in config.json")
	}
	format := cfg.Format
	if format == "" {
		f, err := detectFormat(cfg.Input)
		if err != nil {
			logger.Fatal("unknown input format", "err", err)
		}
		format = f
	}
	in, err := os.Open(cfg.Input)
	if err != nil {
		logger.Fatal("failed to open input", "path", cfg.Input, "err", err)
	}
	defer in.Close()

	logger.Info("parsing", "path", cfg.Input, "format", format)
	value, seqs, err := convert(format, in, cfg, logger)
	if err != nil {
		logger.Fatal("parse failed", "path", cfg.Input, "format", format, "err", err)
	}

	if dryRun {
		logger.Info("dry-run: would write output JSON", "path", cfg.OutputJSON)
		if fastaPath != "" {
			logger.Info("dry-run: would write FASTA", "path", fastaPath, "records", len(seqs))
		}
		return
	}
	if err := writeJSON(cfg.OutputJSON, value); err != nil {
		logger.Fatal("failed to write output JSON", "path", cfg.OutputJSON, "err", err)
	}
	if cfg.OutputJSON != "" {
		logger.Info("wrote output JSON", "path", cfg.OutputJSON)
	}
	if fastaPath != "" {
		if len(seqs) == 0 {
			logger.Warn("no sequences to export for this format", "format", format)
			return
		}
		f, err := os.Create(fastaPath)
		if err != nil {
			logger.Fatal("failed to create FASTA output", "path", fastaPath, "err", err)
		}
		defer f.Close()
		if err := fasta.Write(f, seqs, fasta.DefaultWidth); err != nil {
			logger.Fatal("failed to write FASTA", "path", fastaPath, "err", err)
		}
		logger.Info("wrote FASTA", "path", fastaPath, "records", len(seqs))
	}
}

// writeJSON writes v indented to path, or to stdout when path is "" or "-".
func writeJSON(path string, v any) error {
	var w io.Writer = os.Stdout
	if path != "" && path != "-" {
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func buildIndex(logger *log.Logger, cfg *config.Config, dryRun bool) {
	if cfg.Input == "" {
		logger.Fatal("no input file to index; use -in")
	}
	fi, err := os.Stat(cfg.Input)
	if err != nil {
		logger.Fatal("cannot stat input", "path", cfg.Input, "err", err)
	}
	if dryRun {
		logger.Info("dry-run: would index", "path", cfg.Input, "index", cfg.IndexPath, "bytes", fi.Size())
		return
	}
	bar := pb.New64(fi.Size())
	bar.SetUnits(pb.U_BYTES)
	bar.Output = os.Stderr
	bar.Start()
	n, err := prodoc.BuildIndex(cfg.Input, cfg.IndexPath, prodoc.ByAccession, func(off int64) { bar.Set64(off) })
	bar.Finish()
	if err != nil {
		logger.Fatal("index build failed", "path", cfg.Input, "err", err)
	}
	logger.Info("built index", "path", cfg.IndexPath, "entries", n)
}

func lookup(logger *log.Logger, cfg *config.Config, key string) {
	d, err := prodoc.OpenDictionary(cfg.IndexPath, cfg.IndexCacheSize)
	if err != nil {
		logger.Fatal("cannot open index", "path", cfg.IndexPath, "err", err)
	}
	defer d.Close()
	rec, err := d.Get(key)
	if err != nil {
		logger.Fatal("lookup failed", "key", key, "err", err)
	}
	logger.Debug("found entry", "key", key, "source", d.Source())
	if err := writeJSON(cfg.OutputJSON, rec); err != nil {
		logger.Fatal("failed to write output JSON", "err", err)
	}
}
