// Package seed bootstraps the default admin account for self-hosted
// installs.
package seed

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	authdomain "github.com/tedxmekong/stagehub/internal/auth/domain"
	"github.com/tedxmekong/stagehub/internal/auth/password"
	"gorm.io/gorm"
)

const (
	defaultAdminEmail    = "admin@stagehub.local"
	defaultAdminPassword = "admin"
	defaultAdminDisplay  = "StageHub Admin"
)

// EnsureDefaultAdmin creates the default admin user when no account
// with the default email exists. The account is pre-verified so the
// first login works without an outbound mail provider.
func EnsureDefaultAdmin(db *gorm.DB) error {
	if db == nil {
		return errors.New("seed database handle is required")
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		return err
	}

	ctx := context.Background()
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var user authdomain.User
		err := tx.WithContext(ctx).
			Where("email = ?", defaultAdminEmail).
			First(&user).Error
		if err == nil {
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		hashed, err := password.Hash(defaultAdminPassword)
		if err != nil {
			return err
		}
		now := time.Now().UTC()
		user = authdomain.User{
			ID:              node.Generate(),
			Email:           strings.ToLower(defaultAdminEmail),
			PasswordHash:    hashed,
			DisplayName:     defaultAdminDisplay,
			Role:            authdomain.RoleAdmin,
			EmailVerifiedAt: &now,
			CreatedAt:       now,
			UpdatedAt:       now,
		}
		return tx.WithContext(ctx).Create(&user).Error
	})
}
