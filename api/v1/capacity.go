package v1

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/kubealloc/services"
)

func groupByFromQuery(c *gin.Context) []string {
	raw := c.Query("groupBy")
	if raw == "" {
		return nil
	}
	return strings.Split(raw, ",")
}

// GetCapacityReport returns the hierarchical capacity report for the
// cluster, grouped by the dimensions in the groupBy query parameter
func GetCapacityReport(c *gin.Context) {
	reportService := services.NewCapacityReportService()

	report, err := reportService.GetCapacityReport(c.Request.Context(), groupByFromQuery(c), c.Query("namespace"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to build capacity report: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, report)
}

// CreateCapacitySnapshot builds a fresh report and stores it
func CreateCapacitySnapshot(c *gin.Context) {
	reportService := services.NewCapacityReportService()

	report, err := reportService.GetCapacityReport(c.Request.Context(), groupByFromQuery(c), c.Query("namespace"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to build capacity report: " + err.Error(),
		})
		return
	}

	snapshot, err := services.NewSnapshotService().SaveReport(report)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to save snapshot: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, snapshot)
}

// ListCapacitySnapshots lists stored snapshots, newest first
func ListCapacitySnapshots(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil || limit < 1 {
		limit = 20
	}

	snapshots, err := services.NewSnapshotService().Recent(limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to list snapshots: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, snapshots)
}

// GetCapacitySnapshot returns one stored snapshot with its rows
func GetCapacitySnapshot(c *gin.Context) {
	snapshot, err := services.NewSnapshotService().Get(c.Param("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Snapshot not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to get snapshot: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, snapshot)
}
