package service

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"net/mail"
	"net/url"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/google/uuid"
	"github.com/tedxmekong/stagehub/internal/auth/domain"
	"github.com/tedxmekong/stagehub/internal/auth/password"
	"github.com/tedxmekong/stagehub/internal/config"
	"github.com/tedxmekong/stagehub/internal/providers/email"
	"go.uber.org/zap"
)

const (
	sessionTokenBytes = 32
	sessionTTL        = 7 * 24 * time.Hour
	verificationTTL   = 48 * time.Hour

	minPasswordLength = 6
)

type Service struct {
	log           *zap.Logger
	repo          domain.Repository
	sessionRepo   domain.SessionRepository
	verifications domain.VerificationRepository
	genID         *snowflake.Node
	mailer        email.Provider
	baseURL       string
}

func New(log *zap.Logger, repo domain.Repository, sessionRepo domain.SessionRepository, verifications domain.VerificationRepository, genID *snowflake.Node, mailer email.Provider, cfg config.Config) domain.Service {
	return &Service{
		log:           log.Named("auth.service"),
		repo:          repo,
		sessionRepo:   sessionRepo,
		verifications: verifications,
		genID:         genID,
		mailer:        mailer,
		baseURL:       cfg.BaseURL,
	}
}

func (s *Service) Register(ctx context.Context, req domain.RegisterRequest) (*domain.RegisterResult, error) {
	email, err := normalizeEmail(req.Email)
	if err != nil {
		return nil, domain.ErrInvalidEmail
	}
	if len(strings.TrimSpace(req.Password)) < minPasswordLength {
		return nil, domain.ErrWeakPassword
	}

	if _, err := s.repo.FindByEmail(ctx, email); err == nil {
		return nil, domain.ErrUserExists
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	hashed, err := password.Hash(req.Password)
	if err != nil {
		return nil, err
	}

	displayName := strings.TrimSpace(req.DisplayName)
	if displayName == "" {
		displayName = defaultDisplayName(email)
	}
	user := &domain.User{
		ID:           s.genID.Generate(),
		Email:        email,
		PasswordHash: hashed,
		DisplayName:  displayName,
		Phone:        strings.TrimSpace(req.Phone),
		Role:         domain.RoleUser,
		Occupation:   strings.TrimSpace(req.Occupation),
		OrgName:      strings.TrimSpace(req.OrgName),
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	token := uuid.NewString()
	verification := &domain.EmailVerification{
		ID:        s.genID.Generate(),
		UserID:    user.ID,
		Token:     token,
		ExpiresAt: time.Now().UTC().Add(verificationTTL),
	}
	if err := s.verifications.CreateVerification(ctx, verification); err != nil {
		return nil, err
	}

	s.sendVerificationMail(ctx, user, token)

	return &domain.RegisterResult{User: user, VerificationToken: token}, nil
}

// sendVerificationMail delivers the verify link. The account is already
// committed, so delivery failures are logged and never fail the
// registration.
func (s *Service) sendVerificationMail(ctx context.Context, user *domain.User, token string) {
	link := s.baseURL + "/auth/verify?token=" + url.QueryEscape(token)
	msg := email.VerificationMessage(user.Email, user.DisplayName, link)
	if err := s.mailer.Send(ctx, msg); err != nil {
		s.log.Warn("verification mail failed",
			zap.Int64("user_id", int64(user.ID)),
			zap.Error(err),
		)
	}
}

func (s *Service) Login(ctx context.Context, req domain.LoginRequest) (*domain.LoginResult, error) {
	email, err := normalizeEmail(req.Email)
	if err != nil {
		return nil, domain.ErrInvalidCredentials
	}
	if strings.TrimSpace(req.Password) == "" {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if !password.Verify(req.Password, user.PasswordHash) {
		return nil, domain.ErrInvalidCredentials
	}

	rawToken, err := newSessionToken()
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	session := &domain.Session{
		ID:               s.genID.Generate(),
		UserID:           user.ID,
		SessionTokenHash: hashToken(rawToken),
		UserAgent:        strings.TrimSpace(req.UserAgent),
		IPAddress:        strings.TrimSpace(req.IPAddress),
		ExpiresAt:        now.Add(sessionTTL),
		CreatedAt:        now,
		LastSeenAt:       now,
	}
	if err := s.sessionRepo.CreateSession(ctx, session); err != nil {
		return nil, err
	}

	return &domain.LoginResult{
		User:      user,
		RawToken:  rawToken,
		ExpiresAt: session.ExpiresAt,
		SessionID: session.ID,
	}, nil
}

func (s *Service) Logout(ctx context.Context, rawToken string) error {
	token := strings.TrimSpace(rawToken)
	if token == "" {
		return domain.ErrInvalidSession
	}

	session, err := s.sessionRepo.GetSessionByTokenHash(ctx, hashToken(token))
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			return domain.ErrInvalidSession
		}
		return err
	}

	return s.sessionRepo.RevokeSession(ctx, session.ID, time.Now().UTC())
}

func (s *Service) Authenticate(ctx context.Context, rawToken string) (*domain.Session, error) {
	token := strings.TrimSpace(rawToken)
	if token == "" {
		return nil, domain.ErrInvalidSession
	}

	session, err := s.sessionRepo.GetSessionByTokenHash(ctx, hashToken(token))
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			return nil, domain.ErrInvalidSession
		}
		return nil, err
	}

	now := time.Now().UTC()
	if session.RevokedAt != nil {
		return nil, domain.ErrSessionRevoked
	}
	if now.After(session.ExpiresAt) {
		return nil, domain.ErrSessionExpired
	}

	if err := s.sessionRepo.UpdateLastSeen(ctx, session.ID, now); err != nil {
		return nil, err
	}

	return session, nil
}

func (s *Service) ChangePassword(ctx context.Context, userID snowflake.ID, currentPassword, newPassword string) error {
	if len(strings.TrimSpace(newPassword)) < minPasswordLength {
		return domain.ErrWeakPassword
	}

	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if !password.Verify(currentPassword, user.PasswordHash) {
		return domain.ErrInvalidCredentials
	}

	hashed, err := password.Hash(newPassword)
	if err != nil {
		return err
	}

	return s.repo.UpdateFields(ctx, userID, map[string]any{
		"password_hash": hashed,
		"updated_at":    time.Now().UTC(),
	})
}

func (s *Service) VerifyEmail(ctx context.Context, token string) error {
	trimmed := strings.TrimSpace(token)
	if trimmed == "" {
		return domain.ErrInvalidToken
	}

	verification, err := s.verifications.GetVerificationByToken(ctx, trimmed)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	if verification.UsedAt != nil || now.After(verification.ExpiresAt) {
		return domain.ErrInvalidToken
	}

	if err := s.verifications.MarkVerificationUsed(ctx, verification.ID, now); err != nil {
		return err
	}

	return s.repo.UpdateFields(ctx, verification.UserID, map[string]any{
		"email_verified_at": now,
		"updated_at":        now,
	})
}

func (s *Service) SetRole(ctx context.Context, userID snowflake.ID, role string) error {
	if !domain.ValidRole(role) {
		return domain.ErrInvalidRole
	}
	if _, err := s.repo.FindByID(ctx, userID); err != nil {
		return err
	}
	return s.repo.UpdateFields(ctx, userID, map[string]any{
		"role":       role,
		"updated_at": time.Now().UTC(),
	})
}

func (s *Service) GetUser(ctx context.Context, userID snowflake.ID) (*domain.User, error) {
	return s.repo.FindByID(ctx, userID)
}

func normalizeEmail(raw string) (string, error) {
	email := strings.ToLower(strings.TrimSpace(raw))
	if email == "" {
		return "", domain.ErrInvalidEmail
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return "", domain.ErrInvalidEmail
	}
	return email, nil
}

func defaultDisplayName(email string) string {
	if at := strings.Index(email, "@"); at > 0 {
		return email[:at]
	}
	return email
}

func newSessionToken() (string, error) {
	buf := make([]byte, sessionTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

func hashToken(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}
