package gitdiff

import (
	"github.com/jward/treeline/internal/extract"
)

// Attribute annotates each definition with a DefinitionDiff when its line
// range intersects the file's hunks. Ranges use new-file line numbers: the
// extractor parsed the same content git used as the diff's new side, so
// hunk NewStart values already reflect any shift from earlier hunks and no
// compensation is needed.
//
// Hunks arrive sorted by position, so a single forward sweep suffices;
// the sweep never re-scans from the start for a later definition.
func Attribute(defs []extract.Definition, fd *FileDiff) {
	if fd == nil || len(fd.Hunks) == 0 {
		return
	}

	i := 0
	for di := range defs {
		d := &defs[di]

		// Skip hunks entirely before this definition. Definitions are
		// emitted in top-level child order, so start lines never
		// decrease and i only moves forward.
		for i < len(fd.Hunks) && hunkLast(fd.Hunks[i]) < d.StartLine {
			i++
		}

		var added, deleted, coveredByAdds int
		pureAdd := true

		for j := i; j < len(fd.Hunks); j++ {
			h := fd.Hunks[j]
			if h.NewStart > d.EndLine {
				break
			}
			if !overlaps(h, d.StartLine, d.EndLine) {
				continue
			}

			if h.NewCount > 0 {
				// Clip the added contribution to the overlap; a
				// hunk straddling the boundary only contributes
				// its overlapping portion.
				lo := max(h.NewStart, d.StartLine)
				hi := min(h.NewStart+h.NewCount-1, d.EndLine)
				added += hi - lo + 1
				if h.OldCount == 0 {
					coveredByAdds += hi - lo + 1
				} else {
					pureAdd = false
				}
			} else {
				// Pure deletion inside the body.
				pureAdd = false
			}

			// Deleted lines have no new-file positions to clip
			// against; the hunk-local total is the documented
			// approximation.
			deleted += h.OldCount
		}

		if added == 0 && deleted == 0 {
			continue
		}

		status := extract.StatusUpdated
		if pureAdd && coveredByAdds == d.EndLine-d.StartLine+1 {
			status = extract.StatusAdded
		}
		d.Diff = &extract.DefinitionDiff{Status: status, Added: added, Deleted: deleted}
	}
}

// hunkLast is the last new-file line a hunk touches. A pure deletion has an
// empty new range; it is treated as the single anchor line NewStart.
func hunkLast(h Hunk) int {
	if h.NewCount == 0 {
		return h.NewStart
	}
	return h.NewStart + h.NewCount - 1
}

// overlaps reports whether a hunk's new-side range intersects [start, end].
// Deletion hunks intersect when their anchor line falls inside the range.
func overlaps(h Hunk, start, end int) bool {
	if h.NewCount == 0 {
		return h.NewStart >= start && h.NewStart <= end
	}
	return h.NewStart <= end && h.NewStart+h.NewCount-1 >= start
}
