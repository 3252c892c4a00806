package ports

// TokenIssuer signs identity tokens for authenticated users.
type TokenIssuer interface {
	Issue(userID string) (string, error)
}

// TokenVerifier checks a bearer token and returns the embedded user id.
// Every failure mode (malformed, expired, bad signature) surfaces as the same
// domain.ErrTokenInvalid; callers are not told why a token was rejected.
type TokenVerifier interface {
	Verify(token string) (string, error)
}

// TokenService issues and verifies signed, time-limited identity tokens.
type TokenService interface {
	TokenIssuer
	TokenVerifier
}
