// Package documents holds the document store adapters: posts, comments,
// likes, follows and notifications. User ids stored here are relational ids
// with no referential integrity; callers treat a missing user as displayable.
package documents

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/yigit/campushub/internal/db"
	"github.com/yigit/campushub/internal/pkg/apperrors"
	"github.com/yigit/campushub/internal/pkg/dberrors"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// Collection names
const (
	CollectionPosts         = "posts"
	CollectionComments      = "comments"
	CollectionLikes         = "likes"
	CollectionFollows       = "follows"
	CollectionNotifications = "notifications"
)

// Stores groups every document store adapter
type Stores struct {
	Posts         *PostStore
	Comments      *CommentStore
	Likes         *LikeStore
	Follows       *FollowStore
	Notifications *NotificationStore
}

// NewStores builds every adapter on top of one database handle
func NewStores(m *db.MongoDB) *Stores {
	return &Stores{
		Posts:         NewPostStore(m),
		Comments:      NewCommentStore(m),
		Likes:         NewLikeStore(m),
		Follows:       NewFollowStore(m),
		Notifications: NewNotificationStore(m),
	}
}

// IndexPlan lists the indexes each collection needs. The unique ones are the
// storage guards for one like per (post, user) and one follow per ordered pair.
func IndexPlan() map[string][]mongo.IndexModel {
	return map[string][]mongo.IndexModel{
		CollectionPosts: {
			{Keys: bson.D{{Key: "created_at", Value: -1}}, Options: options.Index().SetName("created_at_desc")},
			{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}}, Options: options.Index().SetName("user_created_at")},
		},
		CollectionComments: {
			{Keys: bson.D{{Key: "post_id", Value: 1}, {Key: "created_at", Value: 1}}, Options: options.Index().SetName("post_created_at")},
		},
		CollectionLikes: {
			{
				Keys:    bson.D{{Key: "post_id", Value: 1}, {Key: "user_id", Value: 1}},
				Options: options.Index().SetUnique(true).SetName("uniq_post_user"),
			},
			{Keys: bson.D{{Key: "user_id", Value: 1}}, Options: options.Index().SetName("user_id")},
		},
		CollectionFollows: {
			{
				Keys:    bson.D{{Key: "follower_id", Value: 1}, {Key: "following_id", Value: 1}},
				Options: options.Index().SetUnique(true).SetName("uniq_follower_following"),
			},
		},
		CollectionNotifications: {
			{Keys: bson.D{{Key: "receiver_id", Value: 1}, {Key: "created_at", Value: -1}}, Options: options.Index().SetName("receiver_created_at")},
			{Keys: bson.D{{Key: "receiver_id", Value: 1}, {Key: "is_read", Value: 1}}, Options: options.Index().SetName("receiver_is_read")},
		},
	}
}

// EnsureIndexes creates every index in IndexPlan. Creating an existing index is a no-op.
func EnsureIndexes(ctx context.Context, database *mongo.Database) error {
	for collection, indexes := range IndexPlan() {
		if _, err := database.Collection(collection).Indexes().CreateMany(ctx, indexes); err != nil {
			return fmt.Errorf("failed to create indexes on %s: %w", collection, err)
		}
	}
	return nil
}

// docError classifies a driver error into the application taxonomy
func docError(op string, err error) error {
	if dberrors.IsTimeout(err) {
		return apperrors.NewRetryableError(op+" timed out", err)
	}
	return apperrors.NewDependencyError(op+" failed", fmt.Errorf("%s: %w", op, err))
}

func isNoDocuments(err error) bool {
	return errors.Is(err, mongo.ErrNoDocuments)
}

func stamp(t *time.Time) {
	if t.IsZero() {
		*t = time.Now().UTC()
	}
}
