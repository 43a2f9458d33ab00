package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/casewise/case-management-api/internal/core/domain"
	"github.com/casewise/case-management-api/internal/core/ports"
)

// dummyHash absorbs a bcrypt comparison when the username is unknown, so
// a miss costs the same as a mismatch and response timing cannot be used
// to enumerate usernames.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("not-a-real-password"), bcrypt.DefaultCost)

// AuthService implements login, logout, and token refresh.
type AuthService struct {
	users  ports.UserRepository
	tokens ports.TokenService
	audit  ports.AuditSink
	log    zerolog.Logger
}

func NewAuthService(users ports.UserRepository, tokens ports.TokenService, audit ports.AuditSink, log zerolog.Logger) *AuthService {
	return &AuthService{users: users, tokens: tokens, audit: audit, log: log}
}

// Login verifies the credentials and mints a token pair. Unknown
// usernames, wrong passwords, and deactivated accounts all fail with
// domain.ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, username, password string) (*ports.LoginResult, error) {
	if username == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
		return nil, domain.ErrInvalidCredentials
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil || !user.IsActive {
		return nil, domain.ErrInvalidCredentials
	}

	pair, err := s.tokens.Issue(user)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("username", user.Username).Msg("login")
	s.record(domain.AuditLogin, user.Username, "")

	return &ports.LoginResult{Tokens: pair, User: user}, nil
}

// Logout revokes the refresh token when one was supplied. It never
// fails: the client removes its copy of the token regardless.
func (s *AuthService) Logout(ctx context.Context, refreshToken string) {
	if refreshToken != "" {
		_ = s.tokens.Revoke(ctx, refreshToken)
	}
	s.record(domain.AuditLogout, "", "")
}

// Refresh mints a new access token from a valid refresh token.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	access, err := s.tokens.Refresh(ctx, refreshToken)
	if err != nil {
		return "", err
	}
	s.record(domain.AuditRefresh, "", "")
	return access, nil
}

func (s *AuthService) record(action, actor, subject string) {
	if s.audit == nil {
		return
	}
	if actor == "" {
		actor = "anonymous"
	}
	s.audit.Enqueue(domain.AuditEvent{
		Actor:     actor,
		Action:    action,
		Subject:   subject,
		CreatedAt: time.Now().UTC(),
	})
}
