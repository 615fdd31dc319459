// Package domain contains core types for user notifications and
// calendar entries.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Notification types written by system events.
const (
	TypeApproval = "APPROVAL"
	TypeOrder    = "ORDER"
	TypeBooking  = "BOOKING"
	TypeGeneral  = "GENERAL"
)

type Notification struct {
	ID        snowflake.ID  `json:"id" gorm:"primaryKey"`
	UserID    snowflake.ID  `json:"user_id" gorm:"column:user_id;not null;index"`
	Title     string        `json:"title" gorm:"type:text;not null"`
	Content   string        `json:"content,omitempty" gorm:"type:text"`
	Type      string        `json:"type" gorm:"type:text;not null;default:'GENERAL'"`
	Read      bool          `json:"read" gorm:"not null;default:false"`
	RelatedID *snowflake.ID `json:"related_id,omitempty" gorm:"column:related_id"`
	CreatedAt time.Time     `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (Notification) TableName() string { return "notifications" }

// Calendar entry types.
const (
	CalendarTicket  = "TICKET"
	CalendarSession = "SESSION"
	CalendarCustom  = "CUSTOM"
)

type CalendarEvent struct {
	ID        snowflake.ID  `json:"id" gorm:"primaryKey"`
	UserID    snowflake.ID  `json:"user_id" gorm:"column:user_id;not null;index"`
	Title     string        `json:"title" gorm:"type:text;not null"`
	Date      time.Time     `json:"date" gorm:"not null"`
	EndDate   *time.Time    `json:"end_date,omitempty" gorm:"column:end_date"`
	Type      string        `json:"type" gorm:"type:text;not null;default:'CUSTOM'"`
	RelatedID *snowflake.ID `json:"related_id,omitempty" gorm:"column:related_id"`
	Notes     string        `json:"notes,omitempty" gorm:"type:text"`
	CreatedAt time.Time     `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time     `json:"updated_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (CalendarEvent) TableName() string { return "calendar_events" }
