package service

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/devconnect/social-network/internal/core/domain"
	"github.com/devconnect/social-network/internal/core/ports"
)

// PostService implements post, like, and comment use cases. Ownership checks
// live here; like-set uniqueness is enforced by the repository's conditional
// updates so concurrent likes cannot race past the duplicate check.
type PostService struct {
	posts ports.PostRepository
	users ports.UserRepository
	log   zerolog.Logger
}

func NewPostService(posts ports.PostRepository, users ports.UserRepository, log zerolog.Logger) *PostService {
	return &PostService{posts: posts, users: users, log: log}
}

// Create persists a new post with the author's name and avatar snapshotted in.
func (s *PostService) Create(ctx context.Context, userID, text string) (*domain.Post, error) {
	if strings.TrimSpace(text) == "" {
		return nil, domain.ErrTextRequired
	}

	author, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	post := &domain.Post{
		Text:      text,
		Name:      author.Name,
		Avatar:    author.Avatar,
		User:      author.ID,
		Likes:     []domain.Like{},
		Comments:  []domain.Comment{},
		CreatedAt: time.Now().UTC(),
	}

	created, err := s.posts.Create(ctx, post)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("post_id", created.ID).Str("user_id", userID).Msg("post created")
	return created, nil
}

// List returns every post, newest first.
func (s *PostService) List(ctx context.Context) ([]domain.Post, error) {
	return s.posts.FindAll(ctx)
}

// Get returns a single post; malformed and unknown ids both yield not-found.
func (s *PostService) Get(ctx context.Context, id string) (*domain.Post, error) {
	return s.posts.FindByID(ctx, id)
}

// ListByUser returns all posts authored by userID, newest first.
func (s *PostService) ListByUser(ctx context.Context, userID string) ([]domain.Post, error) {
	return s.posts.FindByUser(ctx, userID)
}

// Delete removes a post after checking the caller owns it.
func (s *PostService) Delete(ctx context.Context, callerID, id string) error {
	post, err := s.posts.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if post.User != callerID {
		return domain.ErrForbidden
	}

	if err := s.posts.Delete(ctx, id); err != nil {
		return err
	}

	s.log.Info().Str("post_id", id).Str("user_id", callerID).Msg("post deleted")
	return nil
}

// Like records the caller's like and returns the updated like list.
func (s *PostService) Like(ctx context.Context, callerID, id string) ([]domain.Like, error) {
	return s.posts.AddLike(ctx, id, domain.Like{User: callerID})
}

// Unlike removes the caller's like and returns the updated like list.
func (s *PostService) Unlike(ctx context.Context, callerID, id string) ([]domain.Like, error) {
	return s.posts.RemoveLike(ctx, id, callerID)
}

// AddComment prepends a comment with the caller's name and avatar snapshotted
// in, and returns the updated comment list.
func (s *PostService) AddComment(ctx context.Context, callerID, postID, text string) ([]domain.Comment, error) {
	if strings.TrimSpace(text) == "" {
		return nil, domain.ErrTextRequired
	}

	author, err := s.users.FindByID(ctx, callerID)
	if err != nil {
		return nil, err
	}

	comment := domain.Comment{
		Text:      text,
		Name:      author.Name,
		Avatar:    author.Avatar,
		User:      author.ID,
		CreatedAt: time.Now().UTC(),
	}

	return s.posts.AddComment(ctx, postID, comment)
}

// DeleteComment removes a comment after checking the caller owns it. Owning
// the parent post is not enough.
func (s *PostService) DeleteComment(ctx context.Context, callerID, postID, commentID string) ([]domain.Comment, error) {
	post, err := s.posts.FindByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	comment := post.CommentByID(commentID)
	if comment == nil {
		return nil, domain.ErrCommentNotFound
	}
	if comment.User != callerID {
		return nil, domain.ErrForbidden
	}

	return s.posts.RemoveComment(ctx, postID, commentID)
}
