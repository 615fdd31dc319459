// Package domain contains core types for the auth service.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Platform roles. Role gates what a user may do; Occupation is the
// self-described field collected at registration and has no bearing on
// permissions.
const (
	RoleUser    = "USER"
	RoleAdmin   = "ADMIN"
	RolePartner = "PARTNER"
	RoleMentor  = "MENTOR"
)

// ValidRole reports whether role is one of the platform roles.
func ValidRole(role string) bool {
	switch role {
	case RoleUser, RoleAdmin, RolePartner, RoleMentor:
		return true
	default:
		return false
	}
}

// User represents an account holder.
type User struct {
	ID              snowflake.ID `json:"id" gorm:"primaryKey"`
	Email           string       `json:"email" gorm:"type:text;not null;uniqueIndex:ux_users_email"`
	PasswordHash    string       `json:"-" gorm:"type:text;not null"`
	DisplayName     string       `json:"display_name" gorm:"type:text;not null"`
	Phone           string       `json:"phone,omitempty" gorm:"type:text"`
	Role            string       `json:"role" gorm:"type:text;not null;default:'USER'"`
	Occupation      string       `json:"occupation,omitempty" gorm:"type:text"`
	OrgName         string       `json:"org_name,omitempty" gorm:"column:org_name;type:text"`
	EmailVerifiedAt *time.Time   `json:"email_verified_at,omitempty" gorm:"column:email_verified_at"`
	CreatedAt       time.Time    `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt       time.Time    `json:"updated_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (User) TableName() string { return "users" }

// Session represents a persisted login session.
type Session struct {
	ID               snowflake.ID `gorm:"primaryKey"`
	UserID           snowflake.ID `gorm:"column:user_id;not null;index"`
	SessionTokenHash string       `gorm:"column:session_token_hash;type:text;not null;uniqueIndex"`
	UserAgent        string       `gorm:"column:user_agent;type:text"`
	IPAddress        string       `gorm:"column:ip_address;type:text"`
	ExpiresAt        time.Time    `gorm:"column:expires_at;not null;index"`
	RevokedAt        *time.Time   `gorm:"column:revoked_at"`
	CreatedAt        time.Time    `gorm:"column:created_at;not null;default:CURRENT_TIMESTAMP"`
	LastSeenAt       time.Time    `gorm:"column:last_seen_at;not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (Session) TableName() string { return "sessions" }

// EmailVerification holds a pending email-verification token.
type EmailVerification struct {
	ID        snowflake.ID `gorm:"primaryKey"`
	UserID    snowflake.ID `gorm:"column:user_id;not null;index"`
	Token     string       `gorm:"type:text;not null;uniqueIndex"`
	ExpiresAt time.Time    `gorm:"column:expires_at;not null"`
	UsedAt    *time.Time   `gorm:"column:used_at"`
	CreatedAt time.Time    `gorm:"column:created_at;not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (EmailVerification) TableName() string { return "email_verifications" }
