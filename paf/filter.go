package paf

import (
	"sync"

	"github.com/zeebo/wyhash"
)

// DefaultInternalMatchThreshold is minimap2's classic contained/internal
// distance threshold, in bases (spec §4.4 item 3). It is not exposed on
// Config; unlike OverlapThreshold (the estimator's OT term) it has no
// CLI-surface equivalent in spec.md §6.
const DefaultInternalMatchThreshold = 1000

// Filter applies the overlap-quality chain from spec §4.4, in order:
// self-alignment, duplicate pair, internal/contained match, overhang
// ratio. Records surviving the chain should be passed to an OverlapCounts.
type Filter struct {
	// RemoveInternal enables the internal/contained-match rule (step 3).
	RemoveInternal bool
	// InternalMatchThreshold overrides DefaultInternalMatchThreshold if
	// non-zero.
	InternalMatchThreshold int
	// MaxOverhangRatio bounds step 4, which always runs.
	MaxOverhangRatio float64
	// DedupPairs collapses a (query, target) overlap reported more than
	// once, in either order, to its first occurrence. All-vs-all
	// alignment can report both A→B and B→A. Both strategies in package
	// lrge enable it.
	DedupPairs bool

	mu   sync.Mutex
	seen map[uint64]struct{}
}

// Keep reports whether rec should be counted as a genuine overlap, running
// the full predicate chain. Safe for concurrent use when DedupPairs is set;
// the chain is otherwise side-effect free.
func (f *Filter) Keep(rec Record) bool {
	if rec.QueryName == rec.TargetName {
		return false
	}

	if f.DedupPairs {
		f.mu.Lock()
		if f.seen == nil {
			f.seen = make(map[uint64]struct{})
		}
		key := pairKey(rec.QueryName, rec.TargetName)
		_, dup := f.seen[key]
		if !dup {
			f.seen[key] = struct{}{}
		}
		f.mu.Unlock()
		if dup {
			return false
		}
	}

	if f.RemoveInternal {
		threshold := f.InternalMatchThreshold
		if threshold == 0 {
			threshold = DefaultInternalMatchThreshold
		}
		if isInternalContainedMatch(rec, threshold) {
			return false
		}
	}

	if isOverhangExcessive(rec, f.MaxOverhangRatio) {
		return false
	}

	return true
}

// pairKey hashes an unordered pair of read names to a single key, ordering
// the two names first so (a, b) and (b, a) collide.
func pairKey(a, b string) uint64 {
	if a > b {
		a, b = b, a
	}
	const seed = 1
	h := wyhash.HashString(a, seed)
	return wyhash.HashString(b, h)
}

type matchClass int

const (
	classNeither matchClass = iota
	classContained
	classInternal
)

// classify implements minimap2's classic per-side rule: a side is
// "internal" when both its start offset and its end overhang exceed the
// threshold, "contained" when both are at or below it.
func classify(start, end, length, threshold int) matchClass {
	left := start
	right := length - end
	switch {
	case left > threshold && right > threshold:
		return classInternal
	case left <= threshold && right <= threshold:
		return classContained
	default:
		return classNeither
	}
}

// isInternalContainedMatch drops a record when one side is contained and
// the other internal (spec §4.4 item 3).
func isInternalContainedMatch(r Record, threshold int) bool {
	q := classify(r.QueryStart, r.QueryEnd, r.QueryLen, threshold)
	t := classify(r.TargetStart, r.TargetEnd, r.TargetLen, threshold)
	return (q == classContained && t == classInternal) || (q == classInternal && t == classContained)
}

// isOverhangExcessive implements spec §4.4 item 4 literally: no strand
// distinction, unlike minimap2's own internal overhang heuristic, since
// PAF coordinates are already reported in the orientation this formula
// expects.
func isOverhangExcessive(r Record, ratio float64) bool {
	overhang := min(r.QueryStart, r.TargetStart) + min(r.QueryLen-r.QueryEnd, r.TargetLen-r.TargetEnd)
	return float64(overhang) > ratio*float64(r.BlockLen)
}
