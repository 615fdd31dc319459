// Package domain contains core types for service purchases.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Purchase statuses.
const (
	StatusActive    = "active"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

// ServicePurchase records a user buying an offering. The (user,
// offering) pair is unique: the database index is the arbiter when two
// purchases race.
type ServicePurchase struct {
	ID          snowflake.ID  `json:"id" gorm:"primaryKey"`
	UserID      snowflake.ID  `json:"user_id" gorm:"column:user_id;not null;uniqueIndex:ux_service_purchases_user_offering"`
	OfferingID  snowflake.ID  `json:"offering_id" gorm:"column:offering_id;not null;uniqueIndex:ux_service_purchases_user_offering"`
	Status      string        `json:"status" gorm:"type:text;not null;default:'active'"`
	Progress    int           `json:"progress" gorm:"not null;default:0"`
	WorkspaceID *snowflake.ID `json:"workspace_id,omitempty" gorm:"column:workspace_id"`
	CreatedAt   time.Time     `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt   time.Time     `json:"updated_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (ServicePurchase) TableName() string { return "service_purchases" }
