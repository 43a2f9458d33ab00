package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/casewise/case-management-api/internal/core/domain"
	"github.com/casewise/case-management-api/internal/core/ports"
)

const (
	tokenTypeAccess  = "access"
	tokenTypeRefresh = "refresh"

	defaultAccessTTL  = 15 * time.Minute
	defaultRefreshTTL = 7 * 24 * time.Hour
)

// sessionClaims are the claims carried by both token kinds. TokenType
// prevents a refresh token from authenticating a request and vice versa.
type sessionClaims struct {
	jwt.RegisteredClaims
	TokenType string `json:"token_type"`
	Username  string `json:"username"`
}

// TokenService implements HS256 token issuance, validation, refresh, and
// revocation. Access tokens are stateless; revocation only applies to
// refresh tokens and is recorded in the blacklist.
type TokenService struct {
	users      ports.UserRepository
	blacklist  ports.TokenBlacklist
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	log        zerolog.Logger
}

func NewTokenService(users ports.UserRepository, blacklist ports.TokenBlacklist, secret string, accessTTL, refreshTTL time.Duration, log zerolog.Logger) *TokenService {
	if accessTTL <= 0 {
		accessTTL = defaultAccessTTL
	}
	if refreshTTL <= 0 {
		refreshTTL = defaultRefreshTTL
	}
	return &TokenService{
		users:      users,
		blacklist:  blacklist,
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		log:        log,
	}
}

// Issue mints an access/refresh pair bound to the user's id.
func (s *TokenService) Issue(user *domain.User) (domain.TokenPair, error) {
	access, err := s.sign(user, tokenTypeAccess, s.accessTTL)
	if err != nil {
		return domain.TokenPair{}, err
	}
	refresh, err := s.sign(user, tokenTypeRefresh, s.refreshTTL)
	if err != nil {
		return domain.TokenPair{}, err
	}
	return domain.TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

func (s *TokenService) sign(user *domain.User, tokenType string, ttl time.Duration) (string, error) {
	now := time.Now().UTC()
	claims := sessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		TokenType: tokenType,
		Username:  user.Username,
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(s.secret)
}

// ValidateAccess verifies the token and resolves its subject to a live
// user record. A deleted or deactivated account fails the same way.
func (s *TokenService) ValidateAccess(ctx context.Context, token string) (*domain.User, error) {
	claims, err := s.parse(token, tokenTypeAccess)
	if err != nil {
		return nil, err
	}
	return s.resolveSubject(ctx, claims.Subject)
}

// Refresh verifies the refresh token, rejects blacklisted ones, and mints
// a new access token for the same identity.
func (s *TokenService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	claims, err := s.parse(refreshToken, tokenTypeRefresh)
	if err != nil {
		return "", err
	}

	revoked, err := s.blacklist.Contains(ctx, hashToken(refreshToken))
	if err != nil {
		return "", err
	}
	if revoked {
		return "", domain.ErrTokenRevoked
	}

	user, err := s.resolveSubject(ctx, claims.Subject)
	if err != nil {
		return "", err
	}
	return s.sign(user, tokenTypeAccess, s.accessTTL)
}

// Revoke blacklists the refresh token until its natural expiry. Malformed
// or already-expired tokens are ignored; the caller discards its copy no
// matter what, so revocation always reports success.
func (s *TokenService) Revoke(ctx context.Context, refreshToken string) error {
	claims, err := s.parse(refreshToken, tokenTypeRefresh)
	if err != nil {
		return nil
	}

	ttl := time.Until(claims.ExpiresAt.Time)
	if ttl <= 0 {
		return nil
	}
	if err := s.blacklist.Add(ctx, hashToken(refreshToken), ttl); err != nil {
		s.log.Warn().Err(err).Msg("failed to blacklist refresh token")
	}
	return nil
}

func (s *TokenService) parse(token, wantType string) (*sessionClaims, error) {
	claims := &sessionClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domain.ErrExpiredToken
		}
		return nil, domain.ErrInvalidToken
	}
	if !parsed.Valid || claims.TokenType != wantType || claims.ExpiresAt == nil {
		return nil, domain.ErrInvalidToken
	}
	return claims, nil
}

func (s *TokenService) resolveSubject(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrUnknownIdentity
		}
		return nil, err
	}
	if !user.IsActive {
		return nil, domain.ErrUnknownIdentity
	}
	return user, nil
}

// hashToken returns the hex SHA-256 of the raw token, so the blacklist
// never stores usable token material.
func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
