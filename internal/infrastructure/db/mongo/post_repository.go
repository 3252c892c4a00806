package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/devconnect/social-network/internal/core/domain"
)

const postsCollection = "posts"

type PostRepository struct {
	coll *mongo.Collection
}

func NewPostRepository(db *mongo.Database) *PostRepository {
	return &PostRepository{coll: db.Collection(postsCollection)}
}

type mongoLike struct {
	User string `bson:"user"`
}

type mongoComment struct {
	ID        primitive.ObjectID `bson:"_id"`
	Text      string             `bson:"text"`
	Name      string             `bson:"name"`
	Avatar    string             `bson:"avatar"`
	User      string             `bson:"user"`
	CreatedAt time.Time          `bson:"created_at"`
}

type mongoPost struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Text      string             `bson:"text"`
	Name      string             `bson:"name"`
	Avatar    string             `bson:"avatar"`
	User      string             `bson:"user"`
	Likes     []mongoLike        `bson:"likes"`
	Comments  []mongoComment     `bson:"comments"`
	CreatedAt time.Time          `bson:"created_at"`
}

func (mp *mongoPost) toDomain() *domain.Post {
	return &domain.Post{
		ID:        mp.ID.Hex(),
		Text:      mp.Text,
		Name:      mp.Name,
		Avatar:    mp.Avatar,
		User:      mp.User,
		Likes:     likesToDomain(mp.Likes),
		Comments:  commentsToDomain(mp.Comments),
		CreatedAt: mp.CreatedAt,
	}
}

func likesToDomain(likes []mongoLike) []domain.Like {
	out := make([]domain.Like, 0, len(likes))
	for _, l := range likes {
		out = append(out, domain.Like{User: l.User})
	}
	return out
}

func commentsToDomain(comments []mongoComment) []domain.Comment {
	out := make([]domain.Comment, 0, len(comments))
	for _, c := range comments {
		out = append(out, domain.Comment{
			ID:        c.ID.Hex(),
			Text:      c.Text,
			Name:      c.Name,
			Avatar:    c.Avatar,
			User:      c.User,
			CreatedAt: c.CreatedAt,
		})
	}
	return out
}

func (r *PostRepository) Create(ctx context.Context, p *domain.Post) (*domain.Post, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoPost{
		ID:        primitive.NewObjectID(),
		Text:      p.Text,
		Name:      p.Name,
		Avatar:    p.Avatar,
		User:      p.User,
		Likes:     []mongoLike{},
		Comments:  []mongoComment{},
		CreatedAt: p.CreatedAt,
	}

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("insert post: %w", err)
	}
	return doc.toDomain(), nil
}

// FindAll returns every post sorted by creation time, newest first.
func (r *PostRepository) FindAll(ctx context.Context) ([]domain.Post, error) {
	return r.find(ctx, bson.M{})
}

// FindByUser returns all posts authored by userID, newest first.
func (r *PostRepository) FindByUser(ctx context.Context, userID string) ([]domain.Post, error) {
	return r.find(ctx, bson.M{"user": userID})
}

func (r *PostRepository) find(ctx context.Context, filter bson.M) ([]domain.Post, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("find posts: %w", err)
	}
	defer cur.Close(ctx)

	var docs []mongoPost
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode posts: %w", err)
	}

	posts := make([]domain.Post, 0, len(docs))
	for i := range docs {
		posts = append(posts, *docs[i].toDomain())
	}
	return posts, nil
}

// FindByID retrieves one post. A malformed hex id is treated the same as an
// unknown one.
func (r *PostRepository) FindByID(ctx context.Context, id string) (*domain.Post, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrPostNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mp mongoPost
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&mp); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrPostNotFound
		}
		return nil, fmt.Errorf("find post: %w", err)
	}
	return mp.toDomain(), nil
}

func (r *PostRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrPostNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrPostNotFound
	}
	return nil
}

// AddLike prepends the like in a single conditional update: the filter only
// matches when the user has not liked the post yet, so the duplicate check
// and the write cannot race.
func (r *PostRepository) AddLike(ctx context.Context, postID string, like domain.Like) ([]domain.Like, error) {
	oid, err := primitive.ObjectIDFromHex(postID)
	if err != nil {
		return nil, domain.ErrPostNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"_id": oid, "likes.user": bson.M{"$ne": like.User}}
	update := bson.M{"$push": bson.M{"likes": bson.M{
		"$each":     []mongoLike{{User: like.User}},
		"$position": 0,
	}}}

	updated, err := r.findOneAndUpdate(ctx, filter, update)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, r.mutationConflict(ctx, oid, domain.ErrAlreadyLiked)
		}
		return nil, fmt.Errorf("add like: %w", err)
	}
	return likesToDomain(updated.Likes), nil
}

// RemoveLike removes the user's like with a conditional $pull; the filter
// fails to match when no such like exists.
func (r *PostRepository) RemoveLike(ctx context.Context, postID, userID string) ([]domain.Like, error) {
	oid, err := primitive.ObjectIDFromHex(postID)
	if err != nil {
		return nil, domain.ErrPostNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"_id": oid, "likes.user": userID}
	update := bson.M{"$pull": bson.M{"likes": bson.M{"user": userID}}}

	updated, err := r.findOneAndUpdate(ctx, filter, update)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, r.mutationConflict(ctx, oid, domain.ErrNotLiked)
		}
		return nil, fmt.Errorf("remove like: %w", err)
	}
	return likesToDomain(updated.Likes), nil
}

// AddComment assigns a fresh id and prepends the comment.
func (r *PostRepository) AddComment(ctx context.Context, postID string, comment domain.Comment) ([]domain.Comment, error) {
	oid, err := primitive.ObjectIDFromHex(postID)
	if err != nil {
		return nil, domain.ErrPostNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoComment{
		ID:        primitive.NewObjectID(),
		Text:      comment.Text,
		Name:      comment.Name,
		Avatar:    comment.Avatar,
		User:      comment.User,
		CreatedAt: comment.CreatedAt,
	}
	update := bson.M{"$push": bson.M{"comments": bson.M{
		"$each":     []mongoComment{doc},
		"$position": 0,
	}}}

	updated, err := r.findOneAndUpdate(ctx, bson.M{"_id": oid}, update)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrPostNotFound
		}
		return nil, fmt.Errorf("add comment: %w", err)
	}
	return commentsToDomain(updated.Comments), nil
}

// RemoveComment pulls the comment by id and returns the remaining list.
func (r *PostRepository) RemoveComment(ctx context.Context, postID, commentID string) ([]domain.Comment, error) {
	oid, err := primitive.ObjectIDFromHex(postID)
	if err != nil {
		return nil, domain.ErrPostNotFound
	}
	coid, err := primitive.ObjectIDFromHex(commentID)
	if err != nil {
		return nil, domain.ErrCommentNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"_id": oid, "comments._id": coid}
	update := bson.M{"$pull": bson.M{"comments": bson.M{"_id": coid}}}

	updated, err := r.findOneAndUpdate(ctx, filter, update)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, r.mutationConflict(ctx, oid, domain.ErrCommentNotFound)
		}
		return nil, fmt.Errorf("remove comment: %w", err)
	}
	return commentsToDomain(updated.Comments), nil
}

func (r *PostRepository) findOneAndUpdate(ctx context.Context, filter, update bson.M) (*mongoPost, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var mp mongoPost
	if err := r.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&mp); err != nil {
		return nil, err
	}
	return &mp, nil
}

// mutationConflict disambiguates a non-matching conditional update: the post
// is either gone entirely (not found) or present but in the wrong like/comment
// state (conflict).
func (r *PostRepository) mutationConflict(ctx context.Context, oid primitive.ObjectID, conflict error) error {
	n, err := r.coll.CountDocuments(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("check post exists: %w", err)
	}
	if n == 0 {
		return domain.ErrPostNotFound
	}
	return conflict
}
