// Package domain contains core types for the organization service.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Organization tiers. The tier drives the platform commission rate.
const (
	TierVIP      = "VIP"
	TierStandard = "STANDARD"
)

// ValidTier reports whether tier is a known organization tier.
func ValidTier(tier string) bool {
	return tier == TierVIP || tier == TierStandard
}

// Organization is a partner group that lists offerings, events and
// products on the platform. New organizations start unapproved and stay
// invisible to buyers until an admin approves them.
type Organization struct {
	ID          snowflake.ID `json:"id" gorm:"primaryKey"`
	Name        string       `json:"name" gorm:"type:text;not null;uniqueIndex:ux_organizations_name"`
	Slug        string       `json:"slug" gorm:"type:text;not null;uniqueIndex:ux_organizations_slug"`
	Description string       `json:"description,omitempty" gorm:"type:text"`
	LogoURL     string       `json:"logo_url,omitempty" gorm:"column:logo_url;type:text"`
	Website     string       `json:"website,omitempty" gorm:"type:text"`
	Tier        string       `json:"tier" gorm:"type:text;not null;default:'STANDARD'"`
	Approved    bool         `json:"approved" gorm:"not null;default:false"`
	OwnerID     snowflake.ID `json:"owner_id" gorm:"column:owner_id;not null;index"`
	CreatedAt   time.Time    `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt   time.Time    `json:"updated_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (Organization) TableName() string { return "organizations" }

// Member links a user to an organization. Membership itself is subject
// to approval by the organization owner or an admin.
type Member struct {
	ID             snowflake.ID `json:"id" gorm:"primaryKey"`
	OrganizationID snowflake.ID `json:"organization_id" gorm:"column:organization_id;not null;uniqueIndex:ux_members_org_user"`
	UserID         snowflake.ID `json:"user_id" gorm:"column:user_id;not null;uniqueIndex:ux_members_org_user"`
	Role           string       `json:"role" gorm:"type:text;not null;default:'MEMBER'"`
	Approved       bool         `json:"approved" gorm:"not null;default:false"`
	CreatedAt      time.Time    `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt      time.Time    `json:"updated_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (Member) TableName() string { return "organization_members" }
