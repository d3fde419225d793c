// Package tree turns an ordered hierarchical list into display prefixes
// that make the nesting visible. It knows nothing about quantities or
// key paths; structure comes entirely from a caller-supplied predicate.
package tree

import "strings"

// Prefixes computes one prefix string per row. A row's parent is the
// most recent preceding row for which isParentOf(candidate, row) holds.
// Top-level rows get an empty prefix; each deeper row gets a branch
// glyph preceded by one continuation column per intermediate ancestor,
// so the full nesting can be reconstructed from the prefixes alone.
//
// Rows must arrive in pre-order: a parent precedes its first child and
// all of a node's descendants appear contiguously before the next
// sibling. Aggregate rows are emitted in exactly that order; callers
// with other sources must sort first.
func Prefixes[T any](rows []T, isParentOf func(parent, child T) bool) []string {
	parent := make([]int, len(rows))
	for i := range rows {
		parent[i] = -1
		for j := i - 1; j >= 0; j-- {
			if isParentOf(rows[j], rows[i]) {
				parent[i] = j
				break
			}
		}
	}

	// hasNext[i]: some later row shares i's parent, so i is not the
	// last of its siblings and its branch line continues downward.
	hasNext := make([]bool, len(rows))
	for i := range rows {
		for k := i + 1; k < len(rows); k++ {
			if parent[k] == parent[i] {
				hasNext[i] = true
				break
			}
		}
	}

	out := make([]string, len(rows))
	for i := range rows {
		if parent[i] < 0 {
			out[i] = ""
			continue
		}
		var chain []int
		for a := parent[i]; a >= 0; a = parent[a] {
			chain = append(chain, a)
		}
		// chain runs child-to-root; columns are written top-down and the
		// root-level ancestor contributes none.
		var b strings.Builder
		for k := len(chain) - 2; k >= 0; k-- {
			if hasNext[chain[k]] {
				b.WriteString("│  ")
			} else {
				b.WriteString("   ")
			}
		}
		if hasNext[i] {
			b.WriteString("├─ ")
		} else {
			b.WriteString("└─ ")
		}
		out[i] = b.String()
	}
	return out
}
