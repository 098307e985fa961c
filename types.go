package treeline

import (
	"github.com/jward/treeline/internal/extract"
	"github.com/jward/treeline/internal/gitdiff"
	"github.com/jward/treeline/internal/lang"
)

// Public type aliases for the internal types that appear in scan results.
// These are Go type aliases (=), identical to the internal types at
// compile time, so no conversion is needed anywhere.

type Definition = extract.Definition
type DefinitionKind = extract.DefinitionKind
type DefinitionDiff = extract.DefinitionDiff
type DiffStatus = extract.DiffStatus
type Visibility = lang.Visibility
type Language = lang.Language
type FileStats = gitdiff.FileStats
type Hunk = gitdiff.Hunk
type FileDiff = gitdiff.FileDiff
type Baseline = gitdiff.Baseline

const (
	KindFunction  = extract.KindFunction
	KindAggregate = extract.KindAggregate
	KindTrait     = extract.KindTrait
	KindAlias     = extract.KindAlias
	KindEnum      = extract.KindEnum
	KindConst     = extract.KindConst

	StatusAdded   = extract.StatusAdded
	StatusUpdated = extract.StatusUpdated

	Public  = lang.Public
	Private = lang.Private

	Go         = lang.Go
	JavaScript = lang.JavaScript
	TypeScript = lang.TypeScript
	Python     = lang.Python
	Rust       = lang.Rust
	C          = lang.C
	CPP        = lang.CPP
	Java       = lang.Java
	Ruby       = lang.Ruby
	PHP        = lang.PHP
)

// FileReport is one file's slice of the inventory. Stats is nil when the
// file is unchanged relative to the baseline or no diff data exists.
type FileReport struct {
	Path        string
	Language    string
	Description string
	Definitions []Definition
	Stats       *FileStats
}

// Inventory is the result of one scan: per-file reports sorted by path.
// DiffAvailable reports whether the baseline comparison succeeded; when
// false, no report carries diff data.
type Inventory struct {
	Files         []FileReport
	DiffAvailable bool
}
