// Package domain contains core types for learning progress tracking.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

// Progress tracks how far a user got through an offering's material.
// One row per (user, offering) pair.
type Progress struct {
	ID                snowflake.ID   `json:"id" gorm:"primaryKey"`
	UserID            snowflake.ID   `json:"user_id" gorm:"column:user_id;not null;uniqueIndex:ux_learning_progress_user_offering"`
	OfferingID        snowflake.ID   `json:"offering_id" gorm:"column:offering_id;not null;uniqueIndex:ux_learning_progress_user_offering"`
	CompletionPercent int            `json:"completion_percent" gorm:"column:completion_percent;not null;default:0"`
	Materials         datatypes.JSON `json:"materials,omitempty" gorm:"type:json"`
	LastAccessedAt    time.Time      `json:"last_accessed_at" gorm:"column:last_accessed_at;not null;default:CURRENT_TIMESTAMP"`
	CreatedAt         time.Time      `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt         time.Time      `json:"updated_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (Progress) TableName() string { return "learning_progress" }

// Summary aggregates a user's progress across all offerings.
type Summary struct {
	Courses        int `json:"courses"`
	AveragePercent int `json:"average_percent"`
}
