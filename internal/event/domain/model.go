// Package domain contains core types for events.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Event types.
const (
	TypeTEDx     = "TEDX"
	TypeWorkshop = "WORKSHOP"
)

// ValidType reports whether eventType is a known event type.
func ValidType(eventType string) bool {
	return eventType == TypeTEDx || eventType == TypeWorkshop
}

// Event is a dated happening with paid tickets. A nil OrganizationID
// marks a platform-run event.
type Event struct {
	ID             snowflake.ID  `json:"id" gorm:"primaryKey"`
	Name           string        `json:"name" gorm:"type:text;not null"`
	Description    string        `json:"description,omitempty" gorm:"type:text"`
	Date           time.Time     `json:"date" gorm:"not null;index"`
	Location       string        `json:"location,omitempty" gorm:"type:text"`
	TicketPrice    int64         `json:"ticket_price" gorm:"column:ticket_price;not null"`
	Type           string        `json:"type" gorm:"type:text;not null"`
	OrganizationID *snowflake.ID `json:"organization_id,omitempty" gorm:"column:organization_id;index"`
	Approved       bool          `json:"approved" gorm:"not null;default:false"`
	CreatedBy      snowflake.ID  `json:"created_by" gorm:"column:created_by;not null"`
	CreatedAt      time.Time     `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt      time.Time     `json:"updated_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (Event) TableName() string { return "events" }
