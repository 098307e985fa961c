package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/jward/treeline"
	"github.com/jward/treeline/internal/config"
	"github.com/jward/treeline/internal/render"
)

var (
	flagFormat    string
	flagBaseline  string
	flagStaged    bool
	flagNoDiff    bool
	flagLanguages []string
	flagMaxFiles  int
	flagMaxDefs   int
	flagWorkers   int
	flagOut       string
)

var scanCmd = &cobra.Command{
	Use:   "scan [path]",
	Short: "Inventory a source tree",
	Long:  "Parses source files under the given path (default: current directory) and prints the definition inventory, annotated with changes against the git baseline when available.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runScan,
}

func init() {
	registerScanFlags()
}

func registerScanFlags() {
	f := scanCmd.Flags()
	f.StringVar(&flagFormat, "format", "", "output format: yaml|text")
	f.StringVar(&flagBaseline, "baseline", "", "git ref to diff against (default HEAD)")
	f.BoolVar(&flagStaged, "staged", false, "compare the index instead of the working tree")
	f.BoolVar(&flagNoDiff, "no-diff", false, "skip diff annotation entirely")
	f.StringSliceVar(&flagLanguages, "languages", nil, "comma-separated language filter (e.g. go,typescript)")
	f.IntVar(&flagMaxFiles, "max-files", 0, "file ceiling; scans over it return empty")
	f.IntVar(&flagMaxDefs, "max-defs", 0, "max definitions shown per file")
	f.IntVar(&flagWorkers, "workers", 0, "worker pool size (default: CPU count)")
	f.StringVar(&flagOut, "out", "", "write output to a file instead of stdout")
}

func runScan(cmd *cobra.Command, args []string) error {
	start := time.Now()

	cfg, err := config.Load(flagConfig)
	if err != nil {
		return err
	}
	applyFlags(cmd, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	root, err := resolveTargetDir(args)
	if err != nil {
		return err
	}

	opts := []treeline.Option{
		treeline.WithMaxFiles(cfg.MaxFiles),
		treeline.WithWorkers(cfg.Workers),
	}
	if flagNoDiff || !cfg.Diff {
		opts = append(opts, treeline.WithoutDiff())
	} else {
		opts = append(opts, treeline.WithBaseline(cfg.Baseline, flagStaged))
	}
	if len(cfg.Languages) > 0 {
		langs := make([]treeline.Language, len(cfg.Languages))
		for i, l := range cfg.Languages {
			langs[i] = treeline.Language(l)
		}
		opts = append(opts, treeline.WithLanguages(langs...))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	inv, err := treeline.New(opts...).Scan(ctx, root)
	if err != nil {
		if errors.Is(err, treeline.ErrTooManyFiles) {
			fmt.Fprintf(os.Stderr, "Skipped: %s\n", err)
			return nil
		}
		return err
	}

	out, closeOut, err := openOutput()
	if err != nil {
		return err
	}
	defer closeOut()

	switch cfg.Format {
	case "text":
		render.Text(out, inv, render.Options{MaxDefs: cfg.MaxDefs})
	default:
		data, err := render.YAML(inv, render.Options{MaxDefs: cfg.MaxDefs})
		if err != nil {
			return err
		}
		if _, err := out.Write(data); err != nil {
			return err
		}
	}

	defs := 0
	for _, f := range inv.Files {
		defs += len(f.Definitions)
	}
	fmt.Fprintf(os.Stderr, "Scanned %s files, %s definitions in %s",
		humanize.Comma(int64(len(inv.Files))),
		humanize.Comma(int64(defs)),
		time.Since(start).Round(time.Millisecond),
	)
	if !inv.DiffAvailable && !flagNoDiff && cfg.Diff {
		fmt.Fprint(os.Stderr, " (no diff data)")
	}
	fmt.Fprintln(os.Stderr)

	return nil
}

// applyFlags lets explicitly set flags override file/env configuration.
func applyFlags(cmd *cobra.Command, cfg *config.Config) {
	if cmd.Flags().Changed("format") {
		cfg.Format = flagFormat
	}
	if cmd.Flags().Changed("baseline") {
		cfg.Baseline = flagBaseline
	}
	if cmd.Flags().Changed("languages") {
		cfg.Languages = flagLanguages
	}
	if cmd.Flags().Changed("max-files") {
		cfg.MaxFiles = flagMaxFiles
	}
	if cmd.Flags().Changed("max-defs") {
		cfg.MaxDefs = flagMaxDefs
	}
	if cmd.Flags().Changed("workers") {
		cfg.Workers = flagWorkers
	}
}

// resolveTargetDir returns the absolute path of the directory to scan.
func resolveTargetDir(args []string) (string, error) {
	dir := "."
	if len(args) > 0 {
		dir = args[0]
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolving path %q: %w", dir, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return "", fmt.Errorf("directory not found: %s", abs)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("not a directory: %s", abs)
	}
	return abs, nil
}

func openOutput() (io.Writer, func(), error) {
	if flagOut == "" {
		return os.Stdout, func() {}, nil
	}
	f, err := os.Create(flagOut)
	if err != nil {
		return nil, nil, fmt.Errorf("creating %s: %w", flagOut, err)
	}
	return f, func() { f.Close() }, nil
}
