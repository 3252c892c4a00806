package redis

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	failureWindow = 15 * time.Minute
	maxFailures   = 10
)

// LoginLimiter throttles repeated failed logins per email, backed by Redis.
// Key format: login_failures:<email>, an INCR counter expiring after
// failureWindow.
type LoginLimiter struct {
	client *redis.Client
}

// NewLoginLimiter creates a LoginLimiter wrapping the given Redis client.
func NewLoginLimiter(client *redis.Client) *LoginLimiter {
	return &LoginLimiter{client: client}
}

// TooManyFailures reports whether the email has exhausted its failure budget
// within the current window.
func (l *LoginLimiter) TooManyFailures(ctx context.Context, email string) (bool, error) {
	n, err := l.client.Get(ctx, l.key(email)).Int64()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("login limiter check: %w", err)
	}
	return n >= maxFailures, nil
}

// RecordFailure bumps the failure counter; the first failure starts the window.
func (l *LoginLimiter) RecordFailure(ctx context.Context, email string) error {
	key := l.key(email)
	n, err := l.client.Incr(ctx, key).Result()
	if err != nil {
		return fmt.Errorf("login limiter incr: %w", err)
	}
	if n == 1 {
		if err := l.client.Expire(ctx, key, failureWindow).Err(); err != nil {
			return fmt.Errorf("login limiter expire: %w", err)
		}
	}
	return nil
}

// Reset clears the counter after a successful login.
func (l *LoginLimiter) Reset(ctx context.Context, email string) error {
	return l.client.Del(ctx, l.key(email)).Err()
}

func (l *LoginLimiter) key(email string) string {
	return "login_failures:" + strings.ToLower(email)
}
