package documents

import (
	"context"

	"github.com/yigit/campushub/internal/app/models"
	"github.com/yigit/campushub/internal/db"
	"github.com/yigit/campushub/internal/pkg/apperrors"
	"github.com/yigit/campushub/internal/pkg/dberrors"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// CommentStore is the adapter for the comments collection
type CommentStore struct {
	db   *db.MongoDB
	coll *mongo.Collection
}

// NewCommentStore creates a new CommentStore
func NewCommentStore(m *db.MongoDB) *CommentStore {
	return &CommentStore{db: m, coll: m.Database.Collection(CollectionComments)}
}

// Create inserts a comment
func (s *CommentStore) Create(ctx context.Context, comment *models.Comment) error {
	ctx, cancel := s.db.WithTimeout(ctx)
	defer cancel()

	if comment.ID.IsZero() {
		comment.ID = bson.NewObjectID()
	}
	stamp(&comment.CreatedAt)

	if _, err := s.coll.InsertOne(ctx, comment); err != nil {
		return docError("create comment", err)
	}
	return nil
}

// ListByPost returns a post's comments, oldest first
func (s *CommentStore) ListByPost(ctx context.Context, postID bson.ObjectID) ([]*models.Comment, error) {
	ctx, cancel := s.db.WithTimeout(ctx)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}})
	cursor, err := s.coll.Find(ctx, bson.D{{Key: "post_id", Value: postID}}, opts)
	if err != nil {
		return nil, docError("list comments", err)
	}

	comments := make([]*models.Comment, 0)
	if err := cursor.All(ctx, &comments); err != nil {
		return nil, docError("decode comments", err)
	}
	return comments, nil
}

// LikeStore is the adapter for the likes collection
type LikeStore struct {
	db   *db.MongoDB
	coll *mongo.Collection
}

// NewLikeStore creates a new LikeStore
func NewLikeStore(m *db.MongoDB) *LikeStore {
	return &LikeStore{db: m, coll: m.Database.Collection(CollectionLikes)}
}

// Create records a like. The unique (post_id, user_id) index turns a second
// like into a conflict.
func (s *LikeStore) Create(ctx context.Context, like *models.Like) error {
	ctx, cancel := s.db.WithTimeout(ctx)
	defer cancel()

	if like.ID.IsZero() {
		like.ID = bson.NewObjectID()
	}
	stamp(&like.CreatedAt)

	if _, err := s.coll.InsertOne(ctx, like); err != nil {
		if dberrors.IsDuplicateKey(err) {
			return &apperrors.CustomError{
				Err:     apperrors.ErrConflict,
				Cause:   apperrors.ErrAlreadyLiked,
				Message: "You have already liked this post.",
			}
		}
		return docError("create like", err)
	}
	return nil
}

// Delete removes a like and reports whether one existed
func (s *LikeStore) Delete(ctx context.Context, postID bson.ObjectID, userID int64) (bool, error) {
	ctx, cancel := s.db.WithTimeout(ctx)
	defer cancel()

	res, err := s.coll.DeleteOne(ctx, bson.D{{Key: "post_id", Value: postID}, {Key: "user_id", Value: userID}})
	if err != nil {
		return false, docError("delete like", err)
	}
	return res.DeletedCount > 0, nil
}

// Exists reports whether the user likes the post
func (s *LikeStore) Exists(ctx context.Context, postID bson.ObjectID, userID int64) (bool, error) {
	ctx, cancel := s.db.WithTimeout(ctx)
	defer cancel()

	n, err := s.coll.CountDocuments(ctx,
		bson.D{{Key: "post_id", Value: postID}, {Key: "user_id", Value: userID}},
		options.Count().SetLimit(1))
	if err != nil {
		return false, docError("check like", err)
	}
	return n > 0, nil
}

// LikedPostIDs returns which of postIDs the user likes, in one query
func (s *LikeStore) LikedPostIDs(ctx context.Context, userID int64, postIDs []bson.ObjectID) (map[bson.ObjectID]bool, error) {
	liked := make(map[bson.ObjectID]bool, len(postIDs))
	if len(postIDs) == 0 {
		return liked, nil
	}

	ctx, cancel := s.db.WithTimeout(ctx)
	defer cancel()

	filter := bson.D{
		{Key: "user_id", Value: userID},
		{Key: "post_id", Value: bson.D{{Key: "$in", Value: postIDs}}},
	}
	opts := options.Find().SetProjection(bson.D{{Key: "post_id", Value: 1}})

	cursor, err := s.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, docError("list likes", err)
	}

	var likes []models.Like
	if err := cursor.All(ctx, &likes); err != nil {
		return nil, docError("decode likes", err)
	}
	for _, like := range likes {
		liked[like.PostID] = true
	}
	return liked, nil
}

// FollowStore is the adapter for the follows collection
type FollowStore struct {
	db   *db.MongoDB
	coll *mongo.Collection
}

// NewFollowStore creates a new FollowStore
func NewFollowStore(m *db.MongoDB) *FollowStore {
	return &FollowStore{db: m, coll: m.Database.Collection(CollectionFollows)}
}

// Create records a follow edge
func (s *FollowStore) Create(ctx context.Context, follow *models.Follow) error {
	ctx, cancel := s.db.WithTimeout(ctx)
	defer cancel()

	if follow.ID.IsZero() {
		follow.ID = bson.NewObjectID()
	}
	stamp(&follow.CreatedAt)

	if _, err := s.coll.InsertOne(ctx, follow); err != nil {
		if dberrors.IsDuplicateKey(err) {
			return &apperrors.CustomError{
				Err:     apperrors.ErrConflict,
				Cause:   apperrors.ErrAlreadyFollowing,
				Message: "You are already following this user.",
			}
		}
		return docError("create follow", err)
	}
	return nil
}

// Delete removes a follow edge and reports whether one existed
func (s *FollowStore) Delete(ctx context.Context, followerID, followingID int64) (bool, error) {
	ctx, cancel := s.db.WithTimeout(ctx)
	defer cancel()

	res, err := s.coll.DeleteOne(ctx, bson.D{{Key: "follower_id", Value: followerID}, {Key: "following_id", Value: followingID}})
	if err != nil {
		return false, docError("delete follow", err)
	}
	return res.DeletedCount > 0, nil
}

// FollowingIDs returns the ids the user follows
func (s *FollowStore) FollowingIDs(ctx context.Context, followerID int64) ([]int64, error) {
	ctx, cancel := s.db.WithTimeout(ctx)
	defer cancel()

	opts := options.Find().SetProjection(bson.D{{Key: "following_id", Value: 1}})
	cursor, err := s.coll.Find(ctx, bson.D{{Key: "follower_id", Value: followerID}}, opts)
	if err != nil {
		return nil, docError("list follows", err)
	}

	var follows []models.Follow
	if err := cursor.All(ctx, &follows); err != nil {
		return nil, docError("decode follows", err)
	}

	ids := make([]int64, 0, len(follows))
	for _, f := range follows {
		ids = append(ids, f.FollowingID)
	}
	return ids, nil
}
