package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kubealloc/lib/aggregate"
	"github.com/kubealloc/lib/quantity"
)

func TestBuildCapacityRows(t *testing.T) {
	observations := []aggregate.Observation{
		{Kind: "cpu", Quantity: quantity.MustParse("4"), Usage: aggregate.UsageAllocatable, Location: aggregate.Location{NodeName: "n1"}},
		{Kind: "cpu", Quantity: quantity.MustParse("1"), Usage: aggregate.UsageRequested, Location: aggregate.Location{NodeName: "n1"}},
		{Kind: "cpu", Quantity: quantity.MustParse("2"), Usage: aggregate.UsageLimit, Location: aggregate.Location{NodeName: "n1"}},
		{Kind: "cpu", Quantity: quantity.MustParse("4"), Usage: aggregate.UsageAllocatable, Location: aggregate.Location{NodeName: "n2"}},
	}
	keys, err := aggregate.KeysFor([]string{"resource", "node"})
	require.NoError(t, err)

	rows := BuildCapacityRows(aggregate.Aggregate(observations, keys))
	require.Len(t, rows, 3)

	root := rows[0]
	assert.Equal(t, []string{"cpu"}, root.Path)
	assert.Equal(t, "cpu", root.Label)
	assert.Equal(t, "", root.Prefix)
	assert.Equal(t, "1.0", root.Requested)
	assert.Equal(t, "2.0", root.Limit)
	assert.Equal(t, "8.0", root.Allocatable)
	assert.Equal(t, "6.0", root.Free)
	assert.InDelta(t, 12.5, root.RequestedPercent, 1e-9)
	assert.InDelta(t, 25.0, root.LimitPercent, 1e-9)

	n1 := rows[1]
	assert.Equal(t, []string{"cpu", "n1"}, n1.Path)
	assert.Equal(t, "n1", n1.Label)
	assert.Equal(t, "├─ ", n1.Prefix)
	assert.Equal(t, "2.0", n1.Free)

	n2 := rows[2]
	assert.Equal(t, "└─ ", n2.Prefix)
	assert.Equal(t, "0.0", n2.Requested)
	assert.InDelta(t, 0.0, n2.RequestedPercent, 1e-9)
	assert.Equal(t, "4.0", n2.Free)
}

func TestBuildCapacityRowsEmpty(t *testing.T) {
	assert.Empty(t, BuildCapacityRows(nil))
}
