package domain

import (
	"errors"
	"time"
)

var ErrUserNotFound = errors.New("user not found")
var ErrUserExists = errors.New("user already exists")
var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrTokenInvalid = errors.New("token invalid")
var ErrTooManyAttempts = errors.New("too many login attempts")

// User models a registered member of the network.
// PasswordHash never leaves the process: the json tag drops it from every
// outbound representation.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Avatar       string    `json:"avatar"`
	CreatedAt    time.Time `json:"created_at"`
}
