package ports

import (
	"context"

	"github.com/devconnect/social-network/internal/core/domain"
)

// PostRepository defines persistence operations for posts and their embedded
// likes and comments.
//
// The like/unlike mutations are conditional at the store level: the guard and
// the write happen in one document update, so two concurrent likes by the same
// user cannot both pass the duplicate check.
type PostRepository interface {
	Create(ctx context.Context, p *domain.Post) (*domain.Post, error)
	// FindAll returns every post, newest first.
	FindAll(ctx context.Context) ([]domain.Post, error)
	// FindByID treats a malformed id like an unknown one: domain.ErrPostNotFound.
	FindByID(ctx context.Context, id string) (*domain.Post, error)
	// FindByUser returns all posts authored by userID, newest first.
	FindByUser(ctx context.Context, userID string) ([]domain.Post, error)
	Delete(ctx context.Context, id string) error

	// AddLike prepends like to the post's like set. Fails with
	// domain.ErrAlreadyLiked when the user already liked the post, and
	// domain.ErrPostNotFound when the post does not exist.
	AddLike(ctx context.Context, postID string, like domain.Like) ([]domain.Like, error)
	// RemoveLike removes the caller's like. Fails with domain.ErrNotLiked when
	// no such like exists.
	RemoveLike(ctx context.Context, postID, userID string) ([]domain.Like, error)

	// AddComment prepends comment to the post's comment list, assigning it a
	// fresh id. Returns the updated list.
	AddComment(ctx context.Context, postID string, comment domain.Comment) ([]domain.Comment, error)
	// RemoveComment removes the comment with commentID from the post and
	// returns the remaining list.
	RemoveComment(ctx context.Context, postID, commentID string) ([]domain.Comment, error)
}
