package treeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/jward/treeline/internal/describe"
	"github.com/jward/treeline/internal/discover"
	"github.com/jward/treeline/internal/extract"
	"github.com/jward/treeline/internal/gitdiff"
	"github.com/jward/treeline/internal/lang"
)

// DefaultMaxFiles is the scan-level file ceiling. It is enforced before any
// parsing begins so worst-case latency stays bounded.
const DefaultMaxFiles = 10000

// maxWorkers caps the pool: parsing is CPU-bound and the I/O is local disk
// reads, so tens of workers is plenty.
const maxWorkers = 32

// ErrTooManyFiles is returned by Scan when the tree exceeds the file
// ceiling; the accompanying Inventory is empty.
var ErrTooManyFiles = discover.ErrTooManyFiles

// Engine orchestrates a scan: file discovery, one up-front diff collection,
// and parallel per-file parse + extract + attribute.
type Engine struct {
	grammars  *lang.Grammars
	languages map[lang.Language]bool // nil means all languages
	maxFiles  int
	workers   int
	baseline  *gitdiff.Baseline // nil disables diff annotation
}

// Option configures an Engine.
type Option func(*Engine)

// WithLanguages restricts which languages the Engine will process.
func WithLanguages(languages ...Language) Option {
	return func(e *Engine) {
		e.languages = make(map[lang.Language]bool, len(languages))
		for _, l := range languages {
			e.languages[l] = true
		}
	}
}

// WithMaxFiles overrides the file ceiling. Zero or negative disables it.
func WithMaxFiles(n int) Option {
	return func(e *Engine) { e.maxFiles = n }
}

// WithWorkers overrides the worker pool size.
func WithWorkers(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.workers = n
		}
	}
}

// WithBaseline enables diff annotation against ref. When staged is true the
// index is compared instead of the working tree.
func WithBaseline(ref string, staged bool) Option {
	return func(e *Engine) { e.baseline = &gitdiff.Baseline{Ref: ref, Staged: staged} }
}

// WithoutDiff disables diff annotation entirely. Definition extraction is
// identical either way; only the annotations disappear.
func WithoutDiff() Option {
	return func(e *Engine) { e.baseline = nil }
}

// New creates an Engine. By default it compares against HEAD, ceilings at
// DefaultMaxFiles, and sizes the pool from the CPU count.
func New(opts ...Option) *Engine {
	e := &Engine{
		grammars: lang.NewGrammars(),
		maxFiles: DefaultMaxFiles,
		workers:  min(runtime.NumCPU(), maxWorkers),
		baseline: &gitdiff.Baseline{Ref: "HEAD"},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Scan inventories the tree rooted at root. The scan degrades rather than
// aborts: files that fail to parse are absent from the result, and a failed
// baseline comparison yields an inventory without diff annotations. The one
// hard stop is the file ceiling, which returns an empty Inventory alongside
// ErrTooManyFiles.
func (e *Engine) Scan(ctx context.Context, root string) (*Inventory, error) {
	paths, err := discover.Files(root, e.maxFiles)
	if err != nil {
		if errors.Is(err, discover.ErrTooManyFiles) {
			return &Inventory{}, err
		}
		return nil, fmt.Errorf("discover files: %w", err)
	}

	// Collect diff data once, before per-file work begins. The two maps
	// are read-only from here on, so workers share them without locking.
	var diff *gitdiff.Diff
	if e.baseline != nil {
		if d, diffErr := gitdiff.Collect(root, *e.baseline); diffErr == nil {
			diff = d
		}
		// Collection failures (not a repository, no baseline, git
		// absent) degrade to "no diff annotations".
	}

	reports := e.scanFiles(ctx, root, paths, diff)

	sort.Slice(reports, func(i, j int) bool { return reports[i].Path < reports[j].Path })

	return &Inventory{Files: reports, DiffAvailable: diff != nil}, ctx.Err()
}

// scanFiles runs per-file work across the pool. Each worker owns one parser
// (parsers are not goroutine-safe; the shared grammar cache is).
func (e *Engine) scanFiles(ctx context.Context, root string, paths []string, diff *gitdiff.Diff) []FileReport {
	numWorkers := min(e.workers, len(paths))
	if numWorkers < 1 {
		numWorkers = 1
	}

	workCh := make(chan string, len(paths))
	for _, p := range paths {
		workCh <- p
	}
	close(workCh)

	resultCh := make(chan *FileReport, len(paths))

	var wg sync.WaitGroup
	for i := 0; i < numWorkers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			parser := sitter.NewParser()
			for path := range workCh {
				// Cancellation stops new per-file tasks; the file
				// being parsed is allowed to finish.
				if ctx.Err() != nil {
					continue
				}
				resultCh <- e.scanFile(ctx, parser, root, path, diff)
			}
		}()
	}

	go func() {
		wg.Wait()
		close(resultCh)
	}()

	var reports []FileReport
	for r := range resultCh {
		if r != nil {
			reports = append(reports, *r)
		}
	}
	return reports
}

// scanFile processes one file. A nil return means the file is skipped:
// unsupported, filtered out, unreadable, or unparseable. All are normal
// outcomes, never errors.
func (e *Engine) scanFile(ctx context.Context, parser *sitter.Parser, root, path string, diff *gitdiff.Diff) *FileReport {
	content, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(path)))
	if err != nil {
		return nil
	}

	language, ok := lang.Detect(path, content)
	if !ok {
		return e.markdownReport(path, content, diff)
	}
	if e.languages != nil && !e.languages[language] {
		return nil
	}

	grammar, err := e.grammars.Get(language)
	if err != nil {
		return nil
	}
	parser.SetLanguage(grammar)

	tree, err := parser.ParseCtx(ctx, nil, content)
	if err != nil {
		return nil // parse failure skips the file, scan continues
	}
	defer tree.Close()

	defs := extract.File(tree.RootNode(), language, content)

	report := &FileReport{
		Path:        path,
		Language:    string(language),
		Description: describe.Source(language, content),
		Definitions: defs,
	}
	e.annotate(report, path, diff)
	return report
}

// markdownReport surfaces Markdown files with a description only; other
// unsupported files are omitted from the inventory.
func (e *Engine) markdownReport(path string, content []byte, diff *gitdiff.Diff) *FileReport {
	ext := strings.ToLower(filepath.Ext(path))
	if ext != ".md" && ext != ".markdown" {
		return nil
	}
	desc := describe.Markdown(content)
	if desc == "" {
		return nil
	}
	report := &FileReport{Path: path, Language: "markdown", Description: desc}
	e.annotate(report, path, diff)
	return report
}

// annotate attaches file stats and per-definition diffs. A path may have
// stats but no hunks (binary files, renames); both lookups are independent.
func (e *Engine) annotate(report *FileReport, path string, diff *gitdiff.Diff) {
	if diff == nil {
		return
	}
	key := gitdiff.NormalizePath(path)
	if stats, ok := diff.Stats[key]; ok {
		report.Stats = &stats
	}
	gitdiff.Attribute(report.Definitions, diff.Files[key])
}
