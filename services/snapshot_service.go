package services

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/kubealloc/dto"
	"github.com/kubealloc/models"
	"github.com/kubealloc/repositories"
)

// SnapshotService stores and retrieves capacity report snapshots so
// operators can compare allocation over time.
type SnapshotService struct {
	repo *repositories.SnapshotRepository
}

// NewSnapshotService creates a new snapshot service
func NewSnapshotService() *SnapshotService {
	return &SnapshotService{repo: repositories.NewSnapshotRepository()}
}

// SaveReport persists the given report and returns the stored snapshot
func (s *SnapshotService) SaveReport(report dto.CapacityReportResponse) (models.ReportSnapshot, error) {
	rows, err := json.Marshal(report.Rows)
	if err != nil {
		return models.ReportSnapshot{}, fmt.Errorf("failed to encode report rows: %v", err)
	}

	snapshot := models.ReportSnapshot{
		GroupBy:   strings.Join(report.GroupBy, ","),
		Namespace: report.Namespace,
		Rows:      string(rows),
	}
	return s.repo.Create(snapshot)
}

// Recent lists the most recent snapshots, newest first, without row payloads
func (s *SnapshotService) Recent(limit int) (dto.SnapshotListResponse, error) {
	snapshots, err := s.repo.FindRecent(limit)
	if err != nil {
		return dto.SnapshotListResponse{}, err
	}

	summaries := make([]dto.SnapshotSummary, 0, len(snapshots))
	for _, snapshot := range snapshots {
		summaries = append(summaries, dto.SnapshotSummary{
			ID:        snapshot.ID,
			GroupBy:   snapshot.GroupBy,
			Namespace: snapshot.Namespace,
			CreatedAt: snapshot.CreatedAt,
		})
	}
	return dto.SnapshotListResponse{Snapshots: summaries}, nil
}

// Get returns one stored snapshot with its full row payload
func (s *SnapshotService) Get(id string) (models.ReportSnapshot, error) {
	return s.repo.FindByID(id)
}
