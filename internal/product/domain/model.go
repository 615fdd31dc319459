// Package domain contains core types for the merchandise catalog.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

// Product is a physical merchandise item. Stock never goes below zero;
// decrements happen through guarded updates.
type Product struct {
	ID             snowflake.ID   `json:"id" gorm:"primaryKey"`
	Name           string         `json:"name" gorm:"type:text;not null"`
	Description    string         `json:"description,omitempty" gorm:"type:text"`
	Price          int64          `json:"price" gorm:"not null"`
	Images         datatypes.JSON `json:"images,omitempty" gorm:"type:json"`
	Stock          int            `json:"stock" gorm:"not null;default:0"`
	Category       string         `json:"category,omitempty" gorm:"type:text"`
	OrganizationID *snowflake.ID  `json:"organization_id,omitempty" gorm:"column:organization_id;index"`
	Approved       bool           `json:"approved" gorm:"not null;default:false"`
	CreatedBy      snowflake.ID   `json:"created_by" gorm:"column:created_by;not null"`
	CreatedAt      time.Time      `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt      time.Time      `json:"updated_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (Product) TableName() string { return "products" }
