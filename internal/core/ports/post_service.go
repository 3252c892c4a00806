package ports

import (
	"context"

	"github.com/devconnect/social-network/internal/core/domain"
)

// PostService defines use-case operations for posts, likes, and comments.
// Every operation takes the authenticated caller's user id resolved by the
// auth middleware.
type PostService interface {
	Create(ctx context.Context, userID, text string) (*domain.Post, error)
	List(ctx context.Context) ([]domain.Post, error)
	Get(ctx context.Context, id string) (*domain.Post, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Post, error)
	// Delete removes a post. Only the owner may delete it.
	Delete(ctx context.Context, callerID, id string) error

	// Like adds the caller's like and returns the updated like list.
	Like(ctx context.Context, callerID, id string) ([]domain.Like, error)
	// Unlike removes the caller's like and returns the updated like list.
	Unlike(ctx context.Context, callerID, id string) ([]domain.Like, error)

	// AddComment appends a comment authored by the caller and returns the
	// updated comment list.
	AddComment(ctx context.Context, callerID, postID, text string) ([]domain.Comment, error)
	// DeleteComment removes a comment. Only the comment's owner may delete it,
	// even when the caller owns the parent post.
	DeleteComment(ctx context.Context, callerID, postID, commentID string) ([]domain.Comment, error)
}
