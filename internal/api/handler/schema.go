package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
)

// --- Request types ---

type registerRequest struct {
	Name     string `json:"name"     validate:"required"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type createPostRequest struct {
	Text string `json:"text" validate:"required"`
}

type addCommentRequest struct {
	Text string `json:"text" validate:"required"`
}

// --- Response types ---

type tokenResponse struct {
	Token string `json:"token"`
}

type messageResponse struct {
	Msg string `json:"msg"`
}

// errorItem mirrors the express-validator wire format the frontend consumes.
type errorItem struct {
	Msg string `json:"msg"`
}

type errorsResponse struct {
	Errors []errorItem `json:"errors"`
}

// validationFailed renders a 400 with the errors-array envelope.
func validationFailed(c echo.Context, err error) error {
	msgs := []string{err.Error()}
	var ve *ValidationError
	if errors.As(err, &ve) {
		msgs = ve.Messages
	}
	return errorList(c, http.StatusBadRequest, msgs...)
}

func errorList(c echo.Context, code int, msgs ...string) error {
	items := make([]errorItem, 0, len(msgs))
	for _, m := range msgs {
		items = append(items, errorItem{Msg: m})
	}
	return c.JSON(code, errorsResponse{Errors: items})
}
