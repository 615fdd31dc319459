// Package domain contains core types for the offering catalog.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

// Offering categories describe how the paid service is delivered.
const (
	CategoryOptional   = "optional"
	CategoryOnsite     = "onsite"
	CategoryPostOnsite = "post_onsite"
)

// ValidCategory reports whether category is a known delivery category.
func ValidCategory(category string) bool {
	switch category {
	case CategoryOptional, CategoryOnsite, CategoryPostOnsite:
		return true
	default:
		return false
	}
}

// Offering is a paid service listed on the platform. A nil OrganizationID
// marks a platform-owned offering.
type Offering struct {
	ID             snowflake.ID   `json:"id" gorm:"primaryKey"`
	Name           string         `json:"name" gorm:"type:text;not null"`
	Description    string         `json:"description,omitempty" gorm:"type:text"`
	Price          int64          `json:"price" gorm:"not null"`
	Category       string         `json:"category" gorm:"type:text;not null"`
	Features       datatypes.JSON `json:"features,omitempty" gorm:"type:json"`
	OrganizationID *snowflake.ID  `json:"organization_id,omitempty" gorm:"column:organization_id;index"`
	Approved       bool           `json:"approved" gorm:"not null;default:false"`
	CreatedBy      snowflake.ID   `json:"created_by" gorm:"column:created_by;not null"`
	CreatedAt      time.Time      `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt      time.Time      `json:"updated_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (Offering) TableName() string { return "offerings" }
