// Package discover lists the candidate files for a scan. Inside a git
// repository it uses git ls-files so .gitignore is respected for free;
// otherwise it walks the filesystem, honoring a root .gitignore and
// skipping the usual dependency and cache directories.
package discover

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"

	ignore "github.com/sabhiram/go-gitignore"
)

// ErrTooManyFiles is returned when the tree exceeds the file ceiling. The
// ceiling is enforced before any parsing begins so worst-case latency stays
// bounded; callers short-circuit to an empty result.
var ErrTooManyFiles = errors.New("too many files")

var skipDirs = map[string]bool{
	"node_modules": true,
	"vendor":       true,
	"__pycache__":  true,
}

// Files returns slash-normalized paths relative to root, sorted, at most
// maxFiles of them. maxFiles <= 0 means no ceiling.
func Files(root string, maxFiles int) ([]string, error) {
	paths, err := gitListFiles(root)
	if err != nil {
		// Not a git repo or git not available; fall back to walk.
		paths, err = walkListFiles(root)
		if err != nil {
			return nil, err
		}
	}

	if maxFiles > 0 && len(paths) > maxFiles {
		return nil, fmt.Errorf("%w: %d files, ceiling %d", ErrTooManyFiles, len(paths), maxFiles)
	}

	sort.Strings(paths)
	return paths, nil
}

// gitListFiles uses git ls-files to discover tracked and untracked (but not
// ignored) files under root.
func gitListFiles(root string) ([]string, error) {
	// --cached: tracked files, --others: untracked files,
	// --exclude-standard: respect .gitignore, .git/info/exclude, global excludes.
	cmd := exec.Command("git", "ls-files", "--cached", "--others", "--exclude-standard")
	cmd.Dir = root
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("git ls-files: %w", err)
	}

	var paths []string
	for _, line := range strings.Split(stdout.String(), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		// ls-files reports deleted-but-tracked paths too; only keep
		// files that exist in the working tree.
		if _, err := os.Stat(filepath.Join(root, line)); err != nil {
			continue
		}
		paths = append(paths, filepath.ToSlash(line))
	}
	return paths, nil
}

// walkListFiles discovers files by walking the filesystem, used as a
// fallback when git is not available. Skips hidden directories and the
// skipDirs set, and honors a .gitignore at the root.
func walkListFiles(root string) ([]string, error) {
	gi := loadGitignore(root)

	var paths []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, relErr := filepath.Rel(root, path)
		if relErr != nil || rel == "." {
			return nil
		}
		if d.IsDir() {
			name := d.Name()
			if strings.HasPrefix(name, ".") || skipDirs[name] {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.HasPrefix(d.Name(), ".") {
			return nil
		}
		if d.Type()&os.ModeSymlink != 0 {
			return nil
		}
		rel = filepath.ToSlash(rel)
		if gi != nil && gi.MatchesPath(rel) {
			return nil
		}
		paths = append(paths, rel)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk directory: %w", err)
	}
	return paths, nil
}

func loadGitignore(root string) *ignore.GitIgnore {
	gi, err := ignore.CompileIgnoreFile(filepath.Join(root, ".gitignore"))
	if err != nil {
		return nil
	}
	return gi
}
