package dto

import "time"

// CapacityRow is one line of the capacity report: a group in the
// resource hierarchy with its summed usage figures, already scaled for
// display.
type CapacityRow struct {
	Path             []string `json:"path"`
	Label            string   `json:"label"`
	Prefix           string   `json:"prefix"`
	Requested        string   `json:"requested"`
	RequestedPercent float64  `json:"requestedPercent"`
	Limit            string   `json:"limit"`
	LimitPercent     float64  `json:"limitPercent"`
	Allocatable      string   `json:"allocatable"`
	Free             string   `json:"free"`
}

// CapacityReportResponse represents the response for the capacity report API
type CapacityReportResponse struct {
	GroupBy     []string      `json:"groupBy"`
	Namespace   string        `json:"namespace,omitempty"`
	Rows        []CapacityRow `json:"rows"`
	GeneratedAt time.Time     `json:"generatedAt"`
}

// SnapshotListResponse represents the response for the snapshot history API
type SnapshotListResponse struct {
	Snapshots []SnapshotSummary `json:"snapshots"`
}

// SnapshotSummary describes one stored report without its row payload
type SnapshotSummary struct {
	ID        string    `json:"id"`
	GroupBy   string    `json:"groupBy"`
	Namespace string    `json:"namespace,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}
