// Package gitdiff collects working-tree diffs against a baseline ref and
// attributes them to extracted definitions. Collection shells out to git the
// same way file discovery does; any failure degrades to "no diff data" so
// diff annotation never blocks plain extraction.
package gitdiff

import (
	"bytes"
	"fmt"
	"os/exec"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
)

// Hunk is one contiguous change region from a unified diff. Line numbers
// are 1-based in the respective file versions. Hunks are collected with
// zero context lines, so NewCount is exactly the added lines and OldCount
// exactly the deleted lines.
type Hunk struct {
	OldStart int
	OldCount int
	NewStart int
	NewCount int
}

// FileDiff is the ordered hunk list for one changed file, keyed by its
// slash-normalized path relative to the repository root.
type FileDiff struct {
	Path  string
	Hunks []Hunk
}

// FileStats are aggregate added/deleted counts for a file. They come from
// numstat, not from hunk arithmetic: context lines and binary markers make
// hunk-based summation unreliable.
type FileStats struct {
	Added   int `yaml:"added"`
	Deleted int `yaml:"deleted"`
}

// Diff holds both diff views for one scan, read-only after collection.
// A path may have stats but no hunks (binary files, renames); callers must
// tolerate a missing FileDiff.
type Diff struct {
	Stats map[string]FileStats
	Files map[string]*FileDiff
}

// Baseline names the prior tree version to compare against: a ref (commit,
// branch, tag) and optionally the index instead of the working tree.
type Baseline struct {
	Ref    string
	Staged bool
}

// Collect runs both diff passes against the baseline. Errors (not a
// repository, no such ref, git not installed) are returned for the caller
// to degrade on; a nil *Diff with nil error never occurs.
func Collect(repoRoot string, b Baseline) (*Diff, error) {
	stats, err := collectStats(repoRoot, b)
	if err != nil {
		return nil, err
	}
	files, err := collectHunks(repoRoot, b)
	if err != nil {
		return nil, err
	}
	return &Diff{Stats: stats, Files: files}, nil
}

func gitDiff(repoRoot string, b Baseline, extra ...string) ([]byte, error) {
	args := []string{"diff", "--no-color"}
	args = append(args, extra...)
	if b.Staged {
		args = append(args, "--cached")
	}
	if b.Ref != "" {
		args = append(args, b.Ref)
	}
	cmd := exec.Command("git", args...)
	cmd.Dir = repoRoot
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("git %s: %w: %s", strings.Join(args, " "), err, strings.TrimSpace(stderr.String()))
	}
	return stdout.Bytes(), nil
}

// collectStats parses `git diff --numstat`: one line per file with added
// count, deleted count, and path, tab-separated. Binary files report "-"
// for both counts and keep a zero-stats entry so callers still see them
// as changed.
func collectStats(repoRoot string, b Baseline) (map[string]FileStats, error) {
	out, err := gitDiff(repoRoot, b, "--numstat")
	if err != nil {
		return nil, err
	}
	return parseNumstat(string(out)), nil
}

func parseNumstat(out string) map[string]FileStats {
	stats := make(map[string]FileStats)
	for _, line := range strings.Split(out, "\n") {
		if line == "" {
			continue
		}
		fields := strings.SplitN(line, "\t", 3)
		if len(fields) != 3 {
			continue
		}
		added, _ := strconv.Atoi(fields[0]) // "-" parses to 0 for binary files
		deleted, _ := strconv.Atoi(fields[1])
		stats[normalizePath(renameTarget(fields[2]))] = FileStats{Added: added, Deleted: deleted}
	}
	return stats
}

var hunkHeaderRe = regexp.MustCompile(`^@@ -(\d+)(?:,(\d+))? \+(\d+)(?:,(\d+))? @@`)

// collectHunks parses `git diff --unified=0` hunk headers. Paths come from
// the +++ lines; files deleted relative to the baseline have no new side
// and are skipped (the extractor never sees them either).
func collectHunks(repoRoot string, b Baseline) (map[string]*FileDiff, error) {
	out, err := gitDiff(repoRoot, b, "--unified=0")
	if err != nil {
		return nil, err
	}
	return parseUnified(string(out)), nil
}

func parseUnified(out string) map[string]*FileDiff {
	files := make(map[string]*FileDiff)
	var current *FileDiff

	for _, line := range strings.Split(out, "\n") {
		switch {
		case strings.HasPrefix(line, "+++ "):
			target := strings.TrimSpace(line[4:])
			if target == "/dev/null" {
				current = nil
				continue
			}
			path := normalizePath(strings.TrimPrefix(target, "b/"))
			current = &FileDiff{Path: path}
			files[path] = current
		case strings.HasPrefix(line, "@@"):
			if current == nil {
				continue
			}
			m := hunkHeaderRe.FindStringSubmatch(line)
			if m == nil {
				continue
			}
			current.Hunks = append(current.Hunks, Hunk{
				OldStart: atoiDefault(m[1], 0),
				OldCount: atoiDefault(m[2], 1),
				NewStart: atoiDefault(m[3], 0),
				NewCount: atoiDefault(m[4], 1),
			})
		}
	}
	return files
}

func atoiDefault(s string, def int) int {
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}

// renameTarget resolves numstat rename notation to the new path. Both the
// brace form "dir/{old => new}/f.go" and the bare form "old.go => new.go"
// appear in numstat output.
func renameTarget(path string) string {
	if !strings.Contains(path, " => ") {
		return path
	}
	open := strings.Index(path, "{")
	closeIdx := strings.Index(path, "}")
	if open >= 0 && closeIdx > open {
		segment := path[open+1 : closeIdx]
		parts := strings.SplitN(segment, " => ", 2)
		newSeg := parts[len(parts)-1]
		joined := path[:open] + newSeg + path[closeIdx+1:]
		return strings.ReplaceAll(joined, "//", "/")
	}
	parts := strings.SplitN(path, " => ", 2)
	return parts[len(parts)-1]
}

// normalizePath keys diff lookups by slash-separated relative paths so they
// succeed regardless of how the caller's path was constructed.
func normalizePath(p string) string {
	p = filepath.ToSlash(p)
	return strings.TrimPrefix(p, "./")
}

// NormalizePath is the exported form used by callers building lookup keys.
func NormalizePath(p string) string {
	return normalizePath(p)
}
