// Package domain contains core types for mentor sessions and
// schedules.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Session statuses.
const (
	SessionScheduled = "scheduled"
	SessionCompleted = "completed"
	SessionCancelled = "cancelled"
)

// Session is a booked mentoring appointment tied to a schedule slot.
type Session struct {
	ID         snowflake.ID  `json:"id" gorm:"primaryKey"`
	MentorID   snowflake.ID  `json:"mentor_id" gorm:"column:mentor_id;not null;index"`
	StudentID  snowflake.ID  `json:"student_id" gorm:"column:student_id;not null;index"`
	OfferingID *snowflake.ID `json:"offering_id,omitempty" gorm:"column:offering_id"`
	SlotID     snowflake.ID  `json:"slot_id" gorm:"column:slot_id;not null"`
	Date       time.Time     `json:"date" gorm:"not null"`
	Duration   int           `json:"duration" gorm:"not null"` // minutes
	Status     string        `json:"status" gorm:"type:text;not null;default:'scheduled'"`
	Feedback   *string       `json:"feedback,omitempty" gorm:"type:text"`
	CreatedAt  time.Time     `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt  time.Time     `json:"updated_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (Session) TableName() string { return "mentor_sessions" }

// Slot is one bookable window in a mentor's schedule. Available flips
// to false when booked and back when the session is cancelled.
type Slot struct {
	ID        snowflake.ID `json:"id" gorm:"primaryKey"`
	MentorID  snowflake.ID `json:"mentor_id" gorm:"column:mentor_id;not null;index"`
	Date      time.Time    `json:"date" gorm:"not null"`
	StartTime string       `json:"start_time" gorm:"column:start_time;type:text;not null"` // "15:04"
	EndTime   string       `json:"end_time" gorm:"column:end_time;type:text;not null"`
	Available bool         `json:"available" gorm:"not null;default:true"`
	CreatedAt time.Time    `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time    `json:"updated_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (Slot) TableName() string { return "mentor_schedule_slots" }
