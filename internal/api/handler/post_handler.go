package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/devconnect/social-network/internal/api/metrics"
	"github.com/devconnect/social-network/internal/core/ports"
)

// PostHandler handles HTTP requests for posts, likes, and comments. Domain
// errors bubble up to the central error handler; only validation failures are
// rendered here so they keep the errors-array envelope.
type PostHandler struct {
	service ports.PostService
}

func NewPostHandler(service ports.PostService) *PostHandler {
	return &PostHandler{service: service}
}

// Create handles POST /api/post.
//
// @Summary      Create a post
// @Tags         posts
// @Accept       json
// @Produce      json
// @Param        x-auth-token  header    string             true  "Bearer token"
// @Param        body          body      createPostRequest  true  "Post text"
// @Success      201  {object}  domain.Post
// @Failure      400  {object}  errorsResponse
// @Router       /api/post [post]
func (h *PostHandler) Create(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	var req createPostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return validationFailed(c, err)
	}

	post, err := h.service.Create(c.Request().Context(), userID, req.Text)
	if err != nil {
		return err
	}

	metrics.PostsTotal.WithLabelValues("created").Inc()
	return c.JSON(http.StatusCreated, post)
}

// List handles GET /api/post — all posts, newest first.
func (h *PostHandler) List(c echo.Context) error {
	posts, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, posts)
}

// Get handles GET /api/post/:id.
//
// @Summary      Get a post by id
// @Tags         posts
// @Produce      json
// @Param        x-auth-token  header    string  true  "Bearer token"
// @Param        id            path      string  true  "Post id"
// @Success      200  {object}  domain.Post
// @Failure      404  {object}  map[string]string
// @Router       /api/post/{id} [get]
func (h *PostHandler) Get(c echo.Context) error {
	post, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, post)
}

// ListByUser handles GET /api/post/user/:user_id.
func (h *PostHandler) ListByUser(c echo.Context) error {
	posts, err := h.service.ListByUser(c.Request().Context(), c.Param("user_id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, posts)
}

// Delete handles DELETE /api/post/:id. Owner only.
func (h *PostHandler) Delete(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), userID, c.Param("id")); err != nil {
		return err
	}

	metrics.PostsTotal.WithLabelValues("deleted").Inc()
	return c.JSON(http.StatusOK, messageResponse{Msg: "Post removed"})
}

// Like handles PUT /api/post/like/:id and returns the updated like list.
func (h *PostHandler) Like(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	likes, err := h.service.Like(c.Request().Context(), userID, c.Param("id"))
	if err != nil {
		return err
	}

	metrics.LikesTotal.WithLabelValues("like").Inc()
	return c.JSON(http.StatusOK, likes)
}

// Unlike handles PUT /api/post/unlike/:id and returns the updated like list.
func (h *PostHandler) Unlike(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	likes, err := h.service.Unlike(c.Request().Context(), userID, c.Param("id"))
	if err != nil {
		return err
	}

	metrics.LikesTotal.WithLabelValues("unlike").Inc()
	return c.JSON(http.StatusOK, likes)
}

// AddComment handles POST /api/post/comment/:id.
//
// @Summary      Comment on a post
// @Tags         posts
// @Accept       json
// @Produce      json
// @Param        x-auth-token  header    string             true  "Bearer token"
// @Param        id            path      string             true  "Post id"
// @Param        body          body      addCommentRequest  true  "Comment text"
// @Success      201  {array}   domain.Comment
// @Failure      400  {object}  errorsResponse
// @Failure      404  {object}  map[string]string
// @Router       /api/post/comment/{id} [post]
func (h *PostHandler) AddComment(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	var req addCommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return validationFailed(c, err)
	}

	comments, err := h.service.AddComment(c.Request().Context(), userID, c.Param("id"), req.Text)
	if err != nil {
		return err
	}

	metrics.CommentsTotal.WithLabelValues("added").Inc()
	return c.JSON(http.StatusCreated, comments)
}

// DeleteComment handles DELETE /api/post/:id/comment/:comment_id.
// Comment owner only — owning the parent post is not enough.
func (h *PostHandler) DeleteComment(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	comments, err := h.service.DeleteComment(c.Request().Context(), userID, c.Param("id"), c.Param("comment_id"))
	if err != nil {
		return err
	}

	metrics.CommentsTotal.WithLabelValues("deleted").Inc()
	return c.JSON(http.StatusOK, comments)
}
