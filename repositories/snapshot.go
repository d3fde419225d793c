package repositories

import (
	"github.com/kubealloc/database"
	"github.com/kubealloc/models"
)

// SnapshotRepository handles database operations for report snapshots
type SnapshotRepository struct{}

// NewSnapshotRepository creates a new snapshot repository instance
func NewSnapshotRepository() *SnapshotRepository {
	return &SnapshotRepository{}
}

// Create inserts a new snapshot into the database
func (r *SnapshotRepository) Create(snapshot models.ReportSnapshot) (models.ReportSnapshot, error) {
	result := database.DB.Create(&snapshot)
	return snapshot, result.Error
}

// FindRecent retrieves the most recent snapshots, newest first
func (r *SnapshotRepository) FindRecent(limit int) ([]models.ReportSnapshot, error) {
	var snapshots []models.ReportSnapshot
	result := database.DB.Order("created_at DESC").Limit(limit).Find(&snapshots)
	return snapshots, result.Error
}

// FindByID retrieves a snapshot by its ID
func (r *SnapshotRepository) FindByID(id string) (models.ReportSnapshot, error) {
	var snapshot models.ReportSnapshot
	result := database.DB.First(&snapshot, "id = ?", id)
	return snapshot, result.Error
}

// Delete removes a snapshot from the database (soft delete)
func (r *SnapshotRepository) Delete(id string) error {
	result := database.DB.Delete(&models.ReportSnapshot{}, "id = ?", id)
	return result.Error
}
