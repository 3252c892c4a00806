package service

import (
	"context"
	"crypto/md5"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/devconnect/social-network/internal/core/domain"
	"github.com/devconnect/social-network/internal/core/ports"
)

const minPasswordLen = 6

// LoginLimiter abstracts the failed-login throttle (Redis).
type LoginLimiter interface {
	TooManyFailures(ctx context.Context, email string) (bool, error)
	RecordFailure(ctx context.Context, email string) error
	Reset(ctx context.Context, email string) error
}

// AuthService implements registration, login, and identity lookup.
type AuthService struct {
	users   ports.UserRepository
	tokens  ports.TokenIssuer
	limiter LoginLimiter
	log     zerolog.Logger
}

func NewAuthService(users ports.UserRepository, tokens ports.TokenIssuer, limiter LoginLimiter, log zerolog.Logger) *AuthService {
	return &AuthService{users: users, tokens: tokens, limiter: limiter, log: log}
}

// Register creates an account with a bcrypt-hashed password and a gravatar
// avatar derived from the email, and returns the user plus a signed token.
func (s *AuthService) Register(ctx context.Context, name, email, password string) (*domain.User, string, error) {
	if name == "" || email == "" || len(password) < minPasswordLen {
		return nil, "", domain.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", err
	}

	user := &domain.User{
		Name:         name,
		Email:        strings.ToLower(strings.TrimSpace(email)),
		PasswordHash: string(hash),
		Avatar:       gravatarURL(email),
		CreatedAt:    time.Now().UTC(),
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, "", err
	}

	token, err := s.tokens.Issue(created.ID)
	if err != nil {
		return nil, "", err
	}

	s.log.Info().Str("user_id", created.ID).Msg("user registered")

	return created, token, nil
}

// Login exchanges credentials for a token. Unknown email and wrong password
// are indistinguishable to the caller; repeated failures per email are
// throttled through the limiter.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	if email == "" || password == "" {
		return "", domain.ErrInvalidCredentials
	}
	email = strings.ToLower(strings.TrimSpace(email))

	blocked, err := s.limiter.TooManyFailures(ctx, email)
	if err != nil {
		s.log.Warn().Err(err).Msg("login limiter unavailable, continuing")
	} else if blocked {
		return "", domain.ErrTooManyAttempts
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if err == domain.ErrUserNotFound {
			s.recordFailure(ctx, email)
			return "", domain.ErrInvalidCredentials
		}
		return "", err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		s.recordFailure(ctx, email)
		return "", domain.ErrInvalidCredentials
	}

	if err := s.limiter.Reset(ctx, email); err != nil {
		s.log.Warn().Err(err).Msg("failed to reset login failures")
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return "", err
	}

	return token, nil
}

// CurrentUser resolves the authenticated user id to its full record.
func (s *AuthService) CurrentUser(ctx context.Context, userID string) (*domain.User, error) {
	return s.users.FindByID(ctx, userID)
}

func (s *AuthService) recordFailure(ctx context.Context, email string) {
	if err := s.limiter.RecordFailure(ctx, email); err != nil {
		s.log.Warn().Err(err).Msg("failed to record login failure")
	}
}

// gravatarURL derives the display avatar from the account email.
func gravatarURL(email string) string {
	sum := md5.Sum([]byte(strings.ToLower(strings.TrimSpace(email))))
	return fmt.Sprintf("https://www.gravatar.com/avatar/%x?s=200&r=pg&d=mm", sum)
}
