package documents

import (
	"context"
	"time"

	"github.com/yigit/campushub/internal/app/models"
	"github.com/yigit/campushub/internal/db"
	"github.com/yigit/campushub/internal/pkg/apperrors"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// PostStore is the adapter for the posts collection
type PostStore struct {
	db   *db.MongoDB
	coll *mongo.Collection
}

// NewPostStore creates a new PostStore
func NewPostStore(m *db.MongoDB) *PostStore {
	return &PostStore{db: m, coll: m.Database.Collection(CollectionPosts)}
}

// Create inserts a post with zeroed counters
func (s *PostStore) Create(ctx context.Context, post *models.Post) error {
	ctx, cancel := s.db.WithTimeout(ctx)
	defer cancel()

	if post.ID.IsZero() {
		post.ID = bson.NewObjectID()
	}
	stamp(&post.CreatedAt)
	post.UpdatedAt = post.CreatedAt
	post.LikesCount, post.CommentsCount = 0, 0

	if _, err := s.coll.InsertOne(ctx, post); err != nil {
		return docError("create post", err)
	}
	return nil
}

// GetByID retrieves a post by ID
func (s *PostStore) GetByID(ctx context.Context, id bson.ObjectID) (*models.Post, error) {
	ctx, cancel := s.db.WithTimeout(ctx)
	defer cancel()

	var post models.Post
	if err := s.coll.FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&post); err != nil {
		if isNoDocuments(err) {
			return nil, apperrors.NewResourceNotFoundError("Post not found")
		}
		return nil, docError("get post", err)
	}
	return &post, nil
}

// FeedFilter selects what a viewer may see: every PUBLIC post plus anything by
// the authors in the query. It is evaluated at read time, so a follow or
// unfollow changes the feed immediately.
func FeedFilter(q models.FeedQuery) bson.D {
	authors := q.AuthorIDs
	if authors == nil {
		authors = []int64{}
	}
	return bson.D{{Key: "$or", Value: bson.A{
		bson.D{{Key: "visibility", Value: models.VisibilityPublic}},
		bson.D{{Key: "user_id", Value: bson.D{{Key: "$in", Value: authors}}}},
	}}}
}

// ListFeed returns the newest posts matching the feed query
func (s *PostStore) ListFeed(ctx context.Context, q models.FeedQuery) ([]*models.Post, error) {
	ctx, cancel := s.db.WithTimeout(ctx)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}}).
		SetLimit(int64(q.Limit))

	cursor, err := s.coll.Find(ctx, FeedFilter(q), opts)
	if err != nil {
		return nil, docError("list feed", err)
	}

	posts := make([]*models.Post, 0, q.Limit)
	if err := cursor.All(ctx, &posts); err != nil {
		return nil, docError("decode feed", err)
	}
	return posts, nil
}

// IncrementLikes atomically adds delta to likes_count and returns the updated post
func (s *PostStore) IncrementLikes(ctx context.Context, id bson.ObjectID, delta int64) (*models.Post, error) {
	return s.increment(ctx, id, "likes_count", delta)
}

// IncrementComments atomically adds delta to comments_count and returns the updated post
func (s *PostStore) IncrementComments(ctx context.Context, id bson.ObjectID, delta int64) (*models.Post, error) {
	return s.increment(ctx, id, "comments_count", delta)
}

// increment uses $inc so concurrent mutations never lose updates. A decrement
// only matches while the counter is positive, so it never goes below zero.
func (s *PostStore) increment(ctx context.Context, id bson.ObjectID, field string, delta int64) (*models.Post, error) {
	ctx, cancel := s.db.WithTimeout(ctx)
	defer cancel()

	filter := bson.D{{Key: "_id", Value: id}}
	if delta < 0 {
		filter = append(filter, bson.E{Key: field, Value: bson.D{{Key: "$gt", Value: 0}}})
	}
	update := bson.D{
		{Key: "$inc", Value: bson.D{{Key: field, Value: delta}}},
		{Key: "$set", Value: bson.D{{Key: "updated_at", Value: time.Now().UTC()}}},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var post models.Post
	err := s.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&post)
	if err == nil {
		return &post, nil
	}
	if !isNoDocuments(err) {
		return nil, docError("update "+field, err)
	}
	if delta < 0 {
		return s.GetByID(ctx, id)
	}
	return nil, apperrors.NewResourceNotFoundError("Post not found")
}
