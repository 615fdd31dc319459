package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
)

type Service interface {
	Register(ctx context.Context, req RegisterRequest) (*RegisterResult, error)
	Login(ctx context.Context, req LoginRequest) (*LoginResult, error)
	Logout(ctx context.Context, rawToken string) error
	Authenticate(ctx context.Context, rawToken string) (*Session, error)
	ChangePassword(ctx context.Context, userID snowflake.ID, currentPassword, newPassword string) error
	VerifyEmail(ctx context.Context, token string) error
	SetRole(ctx context.Context, userID snowflake.ID, role string) error
	GetUser(ctx context.Context, userID snowflake.ID) (*User, error)
}

type RegisterRequest struct {
	Email       string
	Password    string
	DisplayName string
	Phone       string
	Occupation  string
	OrgName     string
}

// RegisterResult carries the created user and the raw verification token.
// The stored token is single-use and expires after 48 hours.
type RegisterResult struct {
	User              *User
	VerificationToken string
}

type LoginRequest struct {
	Email     string
	Password  string
	UserAgent string
	IPAddress string
}

type LoginResult struct {
	User      *User
	RawToken  string
	ExpiresAt time.Time
	SessionID snowflake.ID
}
