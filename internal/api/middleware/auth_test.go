package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/devconnect/social-network/internal/core/domain"
)

type stubVerifier struct {
	verifyFn func(token string) (string, error)
}

func (s *stubVerifier) Verify(token string) (string, error) {
	return s.verifyFn(token)
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	e := echo.New()
	verifier := &stubVerifier{verifyFn: func(token string) (string, error) {
		if token != "good-token" {
			t.Fatalf("unexpected token: %s", token)
		}
		return "user123", nil
	}}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(TokenHeader, "good-token")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	mw := Auth(verifier)
	handler := mw(func(c echo.Context) error {
		called = true
		if c.Get("user_id") != "user123" {
			t.Fatalf("user_id not set")
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next not called")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAuthMiddleware_MissingToken(t *testing.T) {
	e := echo.New()
	verifier := &stubVerifier{verifyFn: func(string) (string, error) {
		t.Fatalf("verify should not be called")
		return "", nil
	}}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	mw := Auth(verifier)
	handler := mw(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuthMiddleware_InvalidToken(t *testing.T) {
	e := echo.New()
	verifier := &stubVerifier{verifyFn: func(string) (string, error) {
		return "", domain.ErrTokenInvalid
	}}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(TokenHeader, "bad-token")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	mw := Auth(verifier)
	handler := mw(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}
