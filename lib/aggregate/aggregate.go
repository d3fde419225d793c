// Package aggregate reduces a flat list of tagged quantity observations
// into an ordered tree of per-group sums, one row per group at every
// depth of the grouping hierarchy.
package aggregate

import (
	"sort"
	"strings"

	"github.com/kubealloc/lib/quantity"
)

// UsageKind classifies what a quantity observation measures.
type UsageKind int

const (
	UsageLimit UsageKind = iota
	UsageRequested
	UsageAllocatable
)

// Location records where an observation was taken. Fields are optional;
// an empty string means the dimension does not apply.
type Location struct {
	NodeName      string
	Namespace     string
	PodName       string
	ContainerName string
}

// Observation is a single tagged quantity reading. Observations are
// immutable once constructed; the aggregator only reads them.
type Observation struct {
	Kind     string
	Quantity quantity.Qty
	Usage    UsageKind
	Location Location
}

// Accumulator holds the per-usage-kind sums for one group. The zero
// value is an empty accumulator.
type Accumulator struct {
	Limit       quantity.Qty
	Requested   quantity.Qty
	Allocatable quantity.Qty
}

// Free returns the remaining allocatable capacity: allocatable minus the
// larger of limit and requested, floored at zero. Capacity exactly equal
// to usage reports zero free, and over-commit never goes negative.
func (a Accumulator) Free() quantity.Qty {
	used := a.Requested
	if a.Limit.Cmp(a.Requested) > 0 {
		used = a.Limit
	}
	if a.Allocatable.Cmp(used) > 0 {
		return a.Allocatable.Sub(used)
	}
	return quantity.Qty{}
}

// Row is one node of the grouping tree: the full key path identifying
// the group and the sums over every observation routed to it.
type Row struct {
	Path  []string
	Usage Accumulator
}

// IsParentOf reports whether r sits exactly one level above other in the
// grouping tree: r's path is one component shorter and a prefix of
// other's.
func (r Row) IsParentOf(other Row) bool {
	if len(r.Path)+1 != len(other.Path) {
		return false
	}
	for i, p := range r.Path {
		if other.Path[i] != p {
			return false
		}
	}
	return true
}

// KeyFunc maps an observation to its group label for one dimension.
// Key functions must be pure, total and deterministic: return "" for
// missing data rather than failing.
type KeyFunc func(Observation) string

// Aggregate partitions the observations by each key function in turn
// and returns one row per group at every depth, parents emitted before
// their children. Rows come back sorted lexicographically over path
// components; a parent path is a strict prefix of its descendants' so
// the sort keeps the pre-order intact. Aggregate itself never fails.
func Aggregate(obs []Observation, keys []KeyFunc) []Row {
	rows := groupByDepth(obs, nil, keys)
	sort.Slice(rows, func(i, j int) bool {
		return comparePaths(rows[i].Path, rows[j].Path) < 0
	})
	return rows
}

func groupByDepth(obs []Observation, prefix []string, keys []KeyFunc) []Row {
	if len(keys) == 0 {
		return nil
	}
	groups := make(map[string][]Observation)
	for _, o := range obs {
		k := keys[0](o)
		groups[k] = append(groups[k], o)
	}
	var rows []Row
	for key, members := range groups {
		path := append(append([]string{}, prefix...), key)
		rows = append(rows, Row{Path: path, Usage: sumByUsage(members)})
		rows = append(rows, groupByDepth(members, path, keys[1:])...)
	}
	return rows
}

func sumByUsage(obs []Observation) Accumulator {
	var acc Accumulator
	for _, o := range obs {
		switch o.Usage {
		case UsageLimit:
			acc.Limit = acc.Limit.Add(o.Quantity)
		case UsageRequested:
			acc.Requested = acc.Requested.Add(o.Quantity)
		case UsageAllocatable:
			acc.Allocatable = acc.Allocatable.Add(o.Quantity)
		}
	}
	return acc
}

func comparePaths(a, b []string) int {
	for i := 0; i < len(a) && i < len(b); i++ {
		if c := strings.Compare(a[i], b[i]); c != 0 {
			return c
		}
	}
	return len(a) - len(b)
}
