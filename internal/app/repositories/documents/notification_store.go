package documents

import (
	"context"
	"time"

	"github.com/yigit/campushub/internal/app/models"
	"github.com/yigit/campushub/internal/db"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// NotificationStore is the adapter for the notifications collection. Records
// are append-only apart from is_read and are removed only by the retention sweep.
type NotificationStore struct {
	db   *db.MongoDB
	coll *mongo.Collection
}

// NewNotificationStore creates a new NotificationStore
func NewNotificationStore(m *db.MongoDB) *NotificationStore {
	return &NotificationStore{db: m, coll: m.Database.Collection(CollectionNotifications)}
}

// Create inserts an unread notification
func (s *NotificationStore) Create(ctx context.Context, n *models.Notification) error {
	ctx, cancel := s.db.WithTimeout(ctx)
	defer cancel()

	if n.ID.IsZero() {
		n.ID = bson.NewObjectID()
	}
	stamp(&n.CreatedAt)
	n.IsRead = false

	if _, err := s.coll.InsertOne(ctx, n); err != nil {
		return docError("create notification", err)
	}
	return nil
}

// ListByReceiver returns the receiver's newest notifications
func (s *NotificationStore) ListByReceiver(ctx context.Context, receiverID int64, limit int) ([]*models.Notification, error) {
	ctx, cancel := s.db.WithTimeout(ctx)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := s.coll.Find(ctx, bson.D{{Key: "receiver_id", Value: receiverID}}, opts)
	if err != nil {
		return nil, docError("list notifications", err)
	}

	notifications := make([]*models.Notification, 0, limit)
	if err := cursor.All(ctx, &notifications); err != nil {
		return nil, docError("decode notifications", err)
	}
	return notifications, nil
}

// MarkAllRead flips every unread notification of the receiver and returns how many changed
func (s *NotificationStore) MarkAllRead(ctx context.Context, receiverID int64) (int64, error) {
	ctx, cancel := s.db.WithTimeout(ctx)
	defer cancel()

	res, err := s.coll.UpdateMany(ctx,
		bson.D{{Key: "receiver_id", Value: receiverID}, {Key: "is_read", Value: false}},
		bson.D{{Key: "$set", Value: bson.D{{Key: "is_read", Value: true}}}})
	if err != nil {
		return 0, docError("mark notifications read", err)
	}
	return res.ModifiedCount, nil
}

// MarkRead marks one notification read. The receiver is part of the filter, so
// another user's notification is indistinguishable from a missing one.
func (s *NotificationStore) MarkRead(ctx context.Context, id bson.ObjectID, receiverID int64) (bool, error) {
	ctx, cancel := s.db.WithTimeout(ctx)
	defer cancel()

	res, err := s.coll.UpdateOne(ctx,
		bson.D{{Key: "_id", Value: id}, {Key: "receiver_id", Value: receiverID}},
		bson.D{{Key: "$set", Value: bson.D{{Key: "is_read", Value: true}}}})
	if err != nil {
		return false, docError("mark notification read", err)
	}
	return res.MatchedCount > 0, nil
}

// CountUnread counts the receiver's unread notifications
func (s *NotificationStore) CountUnread(ctx context.Context, receiverID int64) (int64, error) {
	ctx, cancel := s.db.WithTimeout(ctx)
	defer cancel()

	n, err := s.coll.CountDocuments(ctx, bson.D{{Key: "receiver_id", Value: receiverID}, {Key: "is_read", Value: false}})
	if err != nil {
		return 0, docError("count unread notifications", err)
	}
	return n, nil
}

// DeleteOlderThan removes notifications created before cutoff
func (s *NotificationStore) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	ctx, cancel := s.db.WithTimeout(ctx)
	defer cancel()

	res, err := s.coll.DeleteMany(ctx, bson.D{{Key: "created_at", Value: bson.D{{Key: "$lt", Value: cutoff}}}})
	if err != nil {
		return 0, docError("delete old notifications", err)
	}
	return res.DeletedCount, nil
}
