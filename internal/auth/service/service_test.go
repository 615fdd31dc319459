package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/tedxmekong/stagehub/internal/auth/domain"
	"github.com/tedxmekong/stagehub/internal/auth/repository"
	"github.com/tedxmekong/stagehub/internal/config"
	"github.com/tedxmekong/stagehub/internal/providers/email"
	"github.com/tedxmekong/stagehub/pkg/db"
	"go.uber.org/zap"
)

// recordingMailer captures outbound mail for assertions.
type recordingMailer struct {
	sent []email.Message
}

func (m *recordingMailer) Send(_ context.Context, msg email.Message) error {
	m.sent = append(m.sent, msg)
	return nil
}

func newTestService(t *testing.T) domain.Service {
	t.Helper()
	svc, _ := newTestServiceWithMailer(t)
	return svc
}

func newTestServiceWithMailer(t *testing.T) (domain.Service, *recordingMailer) {
	t.Helper()

	conn, err := db.NewTest()
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := conn.AutoMigrate(&domain.User{}, &domain.Session{}, &domain.EmailVerification{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		t.Fatalf("snowflake node: %v", err)
	}

	mailer := &recordingMailer{}
	cfg := config.Config{BaseURL: "http://stagehub.test"}
	users, sessions, verifications := repository.New(conn)
	return New(zap.NewNop(), users, sessions, verifications, node, mailer, cfg), mailer
}

func TestRegisterLoginRoundTrip(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	reg, err := svc.Register(ctx, domain.RegisterRequest{
		Email:       "Speaker@Example.COM",
		Password:    "s3cret-pass",
		DisplayName: "Linh Tran",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if reg.User.Email != "speaker@example.com" {
		t.Fatalf("email not normalized: %q", reg.User.Email)
	}
	if reg.User.PasswordHash == "s3cret-pass" {
		t.Fatal("password stored in clear")
	}
	if reg.VerificationToken == "" {
		t.Fatal("expected a verification token")
	}

	login, err := svc.Login(ctx, domain.LoginRequest{Email: "speaker@example.com", Password: "s3cret-pass"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if login.RawToken == "" {
		t.Fatal("expected a session token")
	}

	session, err := svc.Authenticate(ctx, login.RawToken)
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	if session.UserID != reg.User.ID {
		t.Fatalf("session bound to wrong user: got %d want %d", session.UserID, reg.User.ID)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, domain.RegisterRequest{Email: "a@b.co", Password: "correct-horse"}); err != nil {
		t.Fatalf("register: %v", err)
	}

	_, err := svc.Login(ctx, domain.LoginRequest{Email: "a@b.co", Password: "wrong"})
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected invalid credentials, got %v", err)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, domain.RegisterRequest{Email: "dup@b.co", Password: "first-pass"}); err != nil {
		t.Fatalf("register: %v", err)
	}

	_, err := svc.Register(ctx, domain.RegisterRequest{Email: "DUP@b.co", Password: "second-pass"})
	if !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected user exists, got %v", err)
	}
}

func TestRegisterWeakPassword(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Register(context.Background(), domain.RegisterRequest{Email: "weak@b.co", Password: "short"})
	if !errors.Is(err, domain.ErrWeakPassword) {
		t.Fatalf("expected weak password, got %v", err)
	}
}

func TestLogoutRevokesSession(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, domain.RegisterRequest{Email: "out@b.co", Password: "logout-pass"}); err != nil {
		t.Fatalf("register: %v", err)
	}
	login, err := svc.Login(ctx, domain.LoginRequest{Email: "out@b.co", Password: "logout-pass"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	if err := svc.Logout(ctx, login.RawToken); err != nil {
		t.Fatalf("logout: %v", err)
	}

	_, err = svc.Authenticate(ctx, login.RawToken)
	if !errors.Is(err, domain.ErrSessionRevoked) {
		t.Fatalf("expected revoked session, got %v", err)
	}
}

func TestVerifyEmail(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	reg, err := svc.Register(ctx, domain.RegisterRequest{Email: "verify@b.co", Password: "verify-pass"})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	if err := svc.VerifyEmail(ctx, reg.VerificationToken); err != nil {
		t.Fatalf("verify: %v", err)
	}

	user, err := svc.GetUser(ctx, reg.User.ID)
	if err != nil {
		t.Fatalf("get user: %v", err)
	}
	if user.EmailVerifiedAt == nil {
		t.Fatal("expected email_verified_at to be set")
	}

	// Single use.
	if err := svc.VerifyEmail(ctx, reg.VerificationToken); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected invalid token on reuse, got %v", err)
	}
}

func TestRegisterSendsVerificationMail(t *testing.T) {
	svc, mailer := newTestServiceWithMailer(t)
	ctx := context.Background()

	reg, err := svc.Register(ctx, domain.RegisterRequest{Email: "new@b.co", Password: "verify-pass"})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	if len(mailer.sent) != 1 {
		t.Fatalf("expected one mail, got %d", len(mailer.sent))
	}
	msg := mailer.sent[0]
	if msg.To != "new@b.co" {
		t.Fatalf("mail sent to %q", msg.To)
	}
	link := "http://stagehub.test/auth/verify?token=" + reg.VerificationToken
	if !strings.Contains(msg.Body, link) {
		t.Fatalf("mail body missing verify link %q:\n%s", link, msg.Body)
	}

	// The mailed token completes verification.
	if err := svc.VerifyEmail(ctx, reg.VerificationToken); err != nil {
		t.Fatalf("verify with mailed token: %v", err)
	}
}

func TestUserRepositoryDuplicateEmail(t *testing.T) {
	conn, err := db.NewTest()
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := conn.AutoMigrate(&domain.User{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	users, _, _ := repository.New(conn)
	ctx := context.Background()

	first := &domain.User{ID: 1, Email: "race@b.co", PasswordHash: "x", DisplayName: "a", Role: domain.RoleUser}
	if err := users.Create(ctx, first); err != nil {
		t.Fatalf("create: %v", err)
	}

	// A concurrent registration that slips past the lookup must still
	// surface as a conflict, not a bare driver error.
	second := &domain.User{ID: 2, Email: "race@b.co", PasswordHash: "y", DisplayName: "b", Role: domain.RoleUser}
	if err := users.Create(ctx, second); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}
