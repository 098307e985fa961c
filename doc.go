// Package treeline turns a source tree into a compact inventory: per-file
// descriptions plus the interesting top-level definitions (functions,
// types, constants) with line ranges, visibility, and, when a git baseline
// is available, which definitions changed.
//
// # Pipeline
//
// A scan runs in three phases:
//
//  1. Discover: list candidate files via git ls-files (or a filesystem
//     walk), enforcing a hard file ceiling before any parsing begins.
//
//  2. Diff: collect the baseline comparison once (aggregate per-file
//     counts from numstat, hunk lists from a zero-context diff) into
//     two read-only maps shared across workers. Any git failure degrades
//     to "no diff annotations"; it never blocks extraction.
//
//  3. Extract: parse each file with tree-sitter across a bounded worker
//     pool, walk the root's immediate children through the language's
//     capability record, and attribute intersecting hunks to each
//     definition's line range.
//
// # Usage
//
// Create an Engine and scan a directory:
//
//	e := treeline.New(treeline.WithBaseline("HEAD", false))
//	inv, err := e.Scan(context.Background(), "path/to/project")
//	if err != nil { ... }
//	for _, f := range inv.Files {
//		fmt.Println(f.Path, len(f.Definitions))
//	}
//
// Per-language behavior lives entirely in capability records (see
// internal/lang); adding a language means adding one table, never touching
// extraction logic.
package treeline
