package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/devconnect/social-network/internal/core/domain"
)

// DefaultTokenTTL matches the expiry window the API has always used.
const DefaultTokenTTL = 100 * time.Hour

// TokenService issues and verifies HS256 tokens carrying a user identity claim
// of the shape {"user":{"id":...}}.
type TokenService struct {
	secret string
	ttl    time.Duration
}

func NewTokenService(secret string, ttl time.Duration) *TokenService {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &TokenService{secret: secret, ttl: ttl}
}

// Issue signs a token for userID expiring after the configured TTL.
func (s *TokenService) Issue(userID string) (string, error) {
	if s.secret == "" {
		return "", errors.New("token: signing secret not configured")
	}

	claims := jwt.MapClaims{
		"user": map[string]any{"id": userID},
		"exp":  time.Now().Add(s.ttl).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.secret))
}

// Verify checks signature and expiry and returns the embedded user id.
// All failures collapse into domain.ErrTokenInvalid: a caller cannot tell an
// expired token from a malformed or forged one.
func (s *TokenService) Verify(token string) (string, error) {
	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(s.secret), nil
	})
	if err != nil || !tkn.Valid {
		return "", domain.ErrTokenInvalid
	}

	user, ok := claims["user"].(map[string]any)
	if !ok {
		return "", domain.ErrTokenInvalid
	}
	id, ok := user["id"].(string)
	if !ok || id == "" {
		return "", domain.ErrTokenInvalid
	}
	return id, nil
}
