package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ReportSnapshot is a stored capacity report, kept so allocation can be
// compared over time
type ReportSnapshot struct {
	ID        string         `json:"id" gorm:"primaryKey;type:uuid"`
	GroupBy   string         `json:"groupBy" gorm:"type:varchar(100)"`
	Namespace string         `json:"namespace"`
	Rows      string         `json:"rows" gorm:"type:jsonb"`
	CreatedAt time.Time      `json:"createdAt"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

// BeforeCreate assigns a fresh ID when the caller did not set one
func (s *ReportSnapshot) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}
