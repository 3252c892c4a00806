package service

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/devconnect/social-network/internal/core/domain"
)

type stubUserRepo struct {
	users map[string]*domain.User // keyed by email
	seq   int
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	if _, exists := r.users[user.Email]; exists {
		return nil, domain.ErrUserExists
	}
	r.seq++
	created := cloneUser(user)
	created.ID = fmt.Sprintf("user-%d", r.seq)
	r.users[created.Email] = cloneUser(created)
	return created, nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	if u, ok := r.users[email]; ok {
		return cloneUser(u), nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

type stubLimiter struct {
	failures  map[string]int
	threshold int
}

func newStubLimiter() *stubLimiter {
	return &stubLimiter{failures: make(map[string]int), threshold: 10}
}

func (l *stubLimiter) TooManyFailures(_ context.Context, email string) (bool, error) {
	return l.failures[email] >= l.threshold, nil
}

func (l *stubLimiter) RecordFailure(_ context.Context, email string) error {
	l.failures[email]++
	return nil
}

func (l *stubLimiter) Reset(_ context.Context, email string) error {
	delete(l.failures, email)
	return nil
}

func newAuthService(repo *stubUserRepo, limiter *stubLimiter) (*AuthService, *TokenService) {
	tokens := NewTokenService("secret", time.Hour)
	return NewAuthService(repo, tokens, limiter, zerolog.Nop()), tokens
}

func TestAuthService_Register_Success(t *testing.T) {
	repo := newStubUserRepo()
	svc, tokens := newAuthService(repo, newStubLimiter())

	user, token, err := svc.Register(context.Background(), "Alice", "alice@example.com", "pass123")
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if user.PasswordHash == "pass123" {
		t.Fatalf("expected password to be hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("pass123")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
	if !strings.HasPrefix(user.Avatar, "https://www.gravatar.com/avatar/") {
		t.Fatalf("expected gravatar avatar, got %q", user.Avatar)
	}

	id, err := tokens.Verify(token)
	if err != nil {
		t.Fatalf("issued token invalid: %v", err)
	}
	if id != user.ID {
		t.Fatalf("token resolves to %s, want %s", id, user.ID)
	}
}

func TestAuthService_Register_Validation(t *testing.T) {
	svc, _ := newAuthService(newStubUserRepo(), newStubLimiter())

	if _, _, err := svc.Register(context.Background(), "", "a@example.com", "pass123"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials for empty name, got %v", err)
	}
	if _, _, err := svc.Register(context.Background(), "Bob", "b@example.com", "short"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials for short password, got %v", err)
	}
}

func TestAuthService_Register_Duplicate(t *testing.T) {
	repo := newStubUserRepo()
	svc, _ := newAuthService(repo, newStubLimiter())

	if _, _, err := svc.Register(context.Background(), "Bob", "bob@example.com", "pass123"); err != nil {
		t.Fatalf("first register failed: %v", err)
	}
	if _, _, err := svc.Register(context.Background(), "Bobby", "bob@example.com", "pass456"); err != domain.ErrUserExists {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	repo := newStubUserRepo()
	limiter := newStubLimiter()
	svc, tokens := newAuthService(repo, limiter)

	user, _, err := svc.Register(context.Background(), "Carol", "carol@example.com", "s3cret1")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	limiter.failures["carol@example.com"] = 3

	token, err := svc.Login(context.Background(), "carol@example.com", "s3cret1")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	id, err := tokens.Verify(token)
	if err != nil || id != user.ID {
		t.Fatalf("token resolves to %s (%v), want %s", id, err, user.ID)
	}
	if limiter.failures["carol@example.com"] != 0 {
		t.Fatalf("expected failure counter reset, got %d", limiter.failures["carol@example.com"])
	}
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	repo := newStubUserRepo()
	limiter := newStubLimiter()
	svc, _ := newAuthService(repo, limiter)

	_, _, _ = svc.Register(context.Background(), "Dave", "dave@example.com", "goodpass")

	if _, err := svc.Login(context.Background(), "dave@example.com", "badpass"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if limiter.failures["dave@example.com"] != 1 {
		t.Fatalf("expected one recorded failure, got %d", limiter.failures["dave@example.com"])
	}
}

func TestAuthService_Login_UnknownEmail(t *testing.T) {
	svc, _ := newAuthService(newStubUserRepo(), newStubLimiter())

	// Unknown email and wrong password are indistinguishable to the caller.
	if _, err := svc.Login(context.Background(), "ghost@example.com", "whatever"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_Throttled(t *testing.T) {
	repo := newStubUserRepo()
	limiter := newStubLimiter()
	svc, _ := newAuthService(repo, limiter)

	_, _, _ = svc.Register(context.Background(), "Eve", "eve@example.com", "goodpass")
	limiter.failures["eve@example.com"] = limiter.threshold

	if _, err := svc.Login(context.Background(), "eve@example.com", "goodpass"); err != domain.ErrTooManyAttempts {
		t.Fatalf("expected ErrTooManyAttempts, got %v", err)
	}
}

func TestAuthService_CurrentUser(t *testing.T) {
	repo := newStubUserRepo()
	svc, _ := newAuthService(repo, newStubLimiter())

	user, _, _ := svc.Register(context.Background(), "Frank", "frank@example.com", "pass123")

	got, err := svc.CurrentUser(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("CurrentUser returned error: %v", err)
	}
	if got.Email != "frank@example.com" {
		t.Fatalf("unexpected user: %+v", got)
	}

	if _, err := svc.CurrentUser(context.Background(), "missing"); err != domain.ErrUserNotFound {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}
