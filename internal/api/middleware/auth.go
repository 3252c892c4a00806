package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/devconnect/social-network/internal/core/ports"
)

// TokenHeader is the request header clients supply their bearer token in.
const TokenHeader = "x-auth-token"

// Auth verifies the token from the x-auth-token header and injects the
// resolved user id into context under "user_id". It never touches the user
// store; resolving the id to a full record is the caller's business.
func Auth(verifier ports.TokenVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := c.Request().Header.Get(TokenHeader)
			if token == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "no token, authorization denied")
			}

			userID, err := verifier.Verify(token)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "token invalid")
			}

			c.Set("user_id", userID)
			return next(c)
		}
	}
}
