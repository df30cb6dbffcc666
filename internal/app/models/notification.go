package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// NotificationType is one of the fixed notification kinds
type NotificationType string

const (
	NotificationNewLike               NotificationType = "NEW_LIKE"
	NotificationNewComment            NotificationType = "NEW_COMMENT"
	NotificationNewFollower           NotificationType = "NEW_FOLLOWER"
	NotificationEventAnnouncement     NotificationType = "EVENT_ANNOUNCEMENT"
	NotificationRegistrationConfirmed NotificationType = "REGISTRATION_CONFIRMED"
	NotificationNewResult             NotificationType = "NEW_RESULT"
	NotificationEventReminder         NotificationType = "EVENT_REMINDER"
	NotificationClubAnnouncement      NotificationType = "CLUB_ANNOUNCEMENT"
)

// IsValid reports whether t is a known notification kind
func (t NotificationType) IsValid() bool {
	switch t {
	case NotificationNewLike, NotificationNewComment, NotificationNewFollower,
		NotificationEventAnnouncement, NotificationRegistrationConfirmed,
		NotificationNewResult, NotificationEventReminder, NotificationClubAnnouncement:
		return true
	}
	return false
}

// Notification document. OriginatorID is nil for system notifications.
// Only IsRead ever changes after creation.
type Notification struct {
	ID           bson.ObjectID    `bson:"_id,omitempty" json:"id"`
	ReceiverID   int64            `bson:"receiver_id" json:"receiver_id"`
	OriginatorID *int64           `bson:"originator_id" json:"originator_id"`
	Type         NotificationType `bson:"type" json:"type"`
	Message      string           `bson:"message" json:"message"`
	Link         string           `bson:"link" json:"link"`
	IsRead       bool             `bson:"is_read" json:"is_read"`
	CreatedAt    time.Time        `bson:"created_at" json:"created_at"`
}
