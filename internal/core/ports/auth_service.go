package ports

import (
	"context"

	"github.com/devconnect/social-network/internal/core/domain"
)

// AuthService covers registration, login, and identity lookup.
type AuthService interface {
	// Register creates an account and returns it along with a freshly issued token.
	Register(ctx context.Context, name, email, password string) (*domain.User, string, error)
	// Login exchanges credentials for a token. Unknown email and wrong password
	// both return domain.ErrInvalidCredentials.
	Login(ctx context.Context, email, password string) (string, error)
	// CurrentUser resolves an authenticated user id to its full record.
	CurrentUser(ctx context.Context, userID string) (*domain.User, error)
}
