package domain

import (
	"errors"
	"time"
)

var ErrPostNotFound = errors.New("post not found")
var ErrCommentNotFound = errors.New("comment does not exist")
var ErrForbidden = errors.New("access forbidden")
var ErrAlreadyLiked = errors.New("post is already liked")
var ErrNotLiked = errors.New("post has not been liked yet")
var ErrTextRequired = errors.New("text is required")

// Like marks that a user liked a post. Likes are a set keyed by user id:
// a post holds at most one like per user.
type Like struct {
	User string `json:"user"`
}

// Comment is a sub-document embedded in its parent post. Name and Avatar are
// snapshots of the author taken when the comment was written, not live joins.
type Comment struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Name      string    `json:"name"`
	Avatar    string    `json:"avatar"`
	User      string    `json:"user"`
	CreatedAt time.Time `json:"created_at"`
}

// Post is the aggregate root. Likes and Comments are ordered newest-first;
// User is the owning user id and gates deletion. Name and Avatar snapshot the
// author at creation time.
type Post struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Name      string    `json:"name"`
	Avatar    string    `json:"avatar"`
	User      string    `json:"user"`
	Likes     []Like    `json:"likes"`
	Comments  []Comment `json:"comments"`
	CreatedAt time.Time `json:"created_at"`
}

// LikedBy reports whether userID already appears in the like set.
func (p *Post) LikedBy(userID string) bool {
	for _, l := range p.Likes {
		if l.User == userID {
			return true
		}
	}
	return false
}

// CommentByID returns the embedded comment with the given id, or nil.
func (p *Post) CommentByID(commentID string) *Comment {
	for i := range p.Comments {
		if p.Comments[i].ID == commentID {
			return &p.Comments[i]
		}
	}
	return nil
}
