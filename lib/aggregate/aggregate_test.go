package aggregate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kubealloc/lib/quantity"
)

func obs(kind, node, qty string, usage UsageKind) Observation {
	return Observation{
		Kind:     kind,
		Quantity: quantity.MustParse(qty),
		Usage:    usage,
		Location: Location{NodeName: node},
	}
}

func TestAggregateOrderAndSums(t *testing.T) {
	observations := []Observation{
		obs("cpu", "n2", "1", UsageRequested),
		obs("cpu", "n1", "2", UsageRequested),
		obs("mem", "n1", "1Gi", UsageRequested),
	}
	rows := Aggregate(observations, []KeyFunc{ByResourceKind, ByNodeName})

	require.Len(t, rows, 5)
	assert.Equal(t, []string{"cpu"}, rows[0].Path)
	assert.Equal(t, []string{"cpu", "n1"}, rows[1].Path)
	assert.Equal(t, []string{"cpu", "n2"}, rows[2].Path)
	assert.Equal(t, []string{"mem"}, rows[3].Path)
	assert.Equal(t, []string{"mem", "n1"}, rows[4].Path)

	assert.Equal(t, 0, rows[0].Usage.Requested.Cmp(quantity.MustParse("3")))
	assert.Equal(t, 0, rows[1].Usage.Requested.Cmp(quantity.MustParse("2")))
	assert.Equal(t, 0, rows[2].Usage.Requested.Cmp(quantity.MustParse("1")))
	assert.Equal(t, 0, rows[3].Usage.Requested.Cmp(quantity.MustParse("1Gi")))
}

func TestAggregateRoutesByUsageKind(t *testing.T) {
	observations := []Observation{
		obs("cpu", "n1", "4", UsageAllocatable),
		obs("cpu", "n1", "1", UsageRequested),
		obs("cpu", "n1", "2", UsageLimit),
	}
	rows := Aggregate(observations, []KeyFunc{ByResourceKind})

	require.Len(t, rows, 1)
	acc := rows[0].Usage
	assert.Equal(t, 0, acc.Allocatable.Cmp(quantity.MustParse("4")))
	assert.Equal(t, 0, acc.Requested.Cmp(quantity.MustParse("1")))
	assert.Equal(t, 0, acc.Limit.Cmp(quantity.MustParse("2")))
	assert.Equal(t, 0, acc.Free().Cmp(quantity.MustParse("2")))
}

// The sum over the deepest groups must equal the root group's sum for
// every usage kind: nothing lost, nothing double counted.
func TestAggregateCompleteness(t *testing.T) {
	observations := []Observation{
		obs("cpu", "n1", "250m", UsageRequested),
		obs("cpu", "n1", "750m", UsageRequested),
		obs("cpu", "n2", "1", UsageRequested),
		obs("cpu", "n3", "2Ki", UsageRequested),
	}
	rows := Aggregate(observations, []KeyFunc{ByResourceKind, ByNodeName})
	require.Len(t, rows, 4)

	var leafTotal quantity.Qty
	for _, row := range rows {
		if len(row.Path) == 2 {
			leafTotal = leafTotal.Add(row.Usage.Requested)
		}
	}
	assert.Equal(t, 0, leafTotal.Cmp(rows[0].Usage.Requested))
}

func TestAggregateEmptyInputs(t *testing.T) {
	assert.Empty(t, Aggregate(nil, []KeyFunc{ByResourceKind}))
	assert.Empty(t, Aggregate([]Observation{obs("cpu", "n1", "1", UsageRequested)}, nil))
}

func TestAggregateMissingKeyGroupsUnderEmptyLabel(t *testing.T) {
	observations := []Observation{
		obs("cpu", "", "1", UsageRequested),
		obs("cpu", "n1", "1", UsageRequested),
	}
	rows := Aggregate(observations, []KeyFunc{ByResourceKind, ByNodeName})

	require.Len(t, rows, 3)
	assert.Equal(t, []string{"cpu", ""}, rows[1].Path)
	assert.Equal(t, []string{"cpu", "n1"}, rows[2].Path)
}

func TestFreeFloorsAtZero(t *testing.T) {
	cases := []struct {
		name                       string
		limit, requested, alloc    string
		want                       string
	}{
		{"headroom", "1", "2", "4", "2"},
		{"limit dominates", "3", "1", "4", "1"},
		{"exactly used", "2", "4", "4", "0"},
		{"over-commit", "8", "6", "4", "0"},
		{"no allocatable", "1", "1", "0", "0"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			acc := Accumulator{
				Limit:       quantity.MustParse(tc.limit),
				Requested:   quantity.MustParse(tc.requested),
				Allocatable: quantity.MustParse(tc.alloc),
			}
			assert.Equal(t, 0, acc.Free().Cmp(quantity.MustParse(tc.want)))
		})
	}
}

func TestFreeOnZeroAccumulator(t *testing.T) {
	var acc Accumulator
	assert.True(t, acc.Free().IsZero())
}

func TestIsParentOf(t *testing.T) {
	parent := Row{Path: []string{"cpu"}}
	child := Row{Path: []string{"cpu", "n1"}}
	grandchild := Row{Path: []string{"cpu", "n1", "pod-a"}}
	other := Row{Path: []string{"mem", "n1"}}

	assert.True(t, parent.IsParentOf(child))
	assert.True(t, child.IsParentOf(grandchild))
	assert.False(t, parent.IsParentOf(grandchild))
	assert.False(t, parent.IsParentOf(other))
	assert.False(t, child.IsParentOf(parent))
}

func TestKeysFor(t *testing.T) {
	keys, err := KeysFor([]string{"resource", "node", "namespace", "pod"})
	require.NoError(t, err)
	assert.Len(t, keys, 4)

	_, err = KeysFor([]string{"resource", "container-ship"})
	assert.Error(t, err)
}
