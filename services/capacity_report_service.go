package services

import (
	"context"
	"fmt"
	"time"

	"github.com/kubealloc/dto"
	"github.com/kubealloc/lib/aggregate"
	"github.com/kubealloc/lib/tree"
)

// DefaultGroupBy is the grouping used when the caller does not pick one.
var DefaultGroupBy = []string{"resource", "node"}

// CapacityReportService assembles the hierarchical capacity report:
// collect observations, aggregate them along the grouping dimensions,
// then shape the rows for display.
type CapacityReportService struct{}

// NewCapacityReportService creates a new capacity report service
func NewCapacityReportService() *CapacityReportService {
	return &CapacityReportService{}
}

// GetCapacityReport builds the report for the given grouping dimensions
// (resource, node, namespace, pod). An empty groupBy falls back to
// DefaultGroupBy; a non-empty namespace narrows pod observations.
func (s *CapacityReportService) GetCapacityReport(ctx context.Context, groupBy []string, namespace string) (dto.CapacityReportResponse, error) {
	if len(groupBy) == 0 {
		groupBy = DefaultGroupBy
	}
	keys, err := aggregate.KeysFor(groupBy)
	if err != nil {
		return dto.CapacityReportResponse{}, err
	}

	collector := NewResourceCollectorService()
	observations, err := collector.CollectObservations(ctx, namespace)
	if err != nil {
		return dto.CapacityReportResponse{}, fmt.Errorf("failed to collect observations: %v", err)
	}

	rows := aggregate.Aggregate(observations, keys)

	return dto.CapacityReportResponse{
		GroupBy:     groupBy,
		Namespace:   namespace,
		Rows:        BuildCapacityRows(rows),
		GeneratedAt: time.Now().UTC(),
	}, nil
}

// BuildCapacityRows shapes aggregate rows for display: tree prefixes
// from the structural parent relation, display-scaled quantities, and
// requested/limit percentages of allocatable.
func BuildCapacityRows(rows []aggregate.Row) []dto.CapacityRow {
	prefixes := tree.Prefixes(rows, func(parent, child aggregate.Row) bool {
		return parent.IsParentOf(child)
	})

	out := make([]dto.CapacityRow, 0, len(rows))
	for i, row := range rows {
		label := ""
		if len(row.Path) > 0 {
			label = row.Path[len(row.Path)-1]
		}
		out = append(out, dto.CapacityRow{
			Path:             row.Path,
			Label:            label,
			Prefix:           prefixes[i],
			Requested:        row.Usage.Requested.AdjustedScale(),
			RequestedPercent: row.Usage.Requested.PercentageOf(row.Usage.Allocatable),
			Limit:            row.Usage.Limit.AdjustedScale(),
			LimitPercent:     row.Usage.Limit.PercentageOf(row.Usage.Allocatable),
			Allocatable:      row.Usage.Allocatable.AdjustedScale(),
			Free:             row.Usage.Free().AdjustedScale(),
		})
	}
	return out
}
