package dto

import (
	"time"

	"github.com/yigit/campushub/internal/app/models"
)

// NotificationResponse is the enriched notification delivered over the realtime
// channel and returned by the read API. Originator is nil for system notifications.
type NotificationResponse struct {
	ID         string                  `json:"id"`
	Message    string                  `json:"message"`
	Link       string                  `json:"link"`
	Type       models.NotificationType `json:"type"`
	IsRead     bool                    `json:"is_read"`
	CreatedAt  time.Time               `json:"created_at"`
	Originator *UserSummary            `json:"originator"`
}

// NotificationListResponse wraps a page of notifications
type NotificationListResponse struct {
	Notifications []*NotificationResponse `json:"notifications"`
	Count         int                     `json:"count"`
}

// MarkReadResponse reports how many notifications changed state
type MarkReadResponse struct {
	Updated int64 `json:"updated"`
}

// UnreadCountResponse reports the receiver's unread notifications
type UnreadCountResponse struct {
	Unread int64 `json:"unread"`
}

// NewNotificationResponse builds the payload from a stored notification and its
// originator identity. identity may be nil only when the notification has no originator.
func NewNotificationResponse(n *models.Notification, identity *models.UserIdentity) *NotificationResponse {
	resp := &NotificationResponse{
		ID:        n.ID.Hex(),
		Message:   n.Message,
		Link:      n.Link,
		Type:      n.Type,
		IsRead:    n.IsRead,
		CreatedAt: n.CreatedAt,
	}
	if n.OriginatorID != nil {
		if identity == nil {
			identity = models.UnknownIdentity(*n.OriginatorID)
		}
		resp.Originator = NewUserSummary(identity)
	}
	return resp
}

// NewUserSummary projects an identity into its public form
func NewUserSummary(identity *models.UserIdentity) *UserSummary {
	if identity == nil {
		return nil
	}
	return &UserSummary{
		ID:           identity.ID,
		Name:         identity.Name,
		ProfilePhoto: identity.ProfilePhoto,
	}
}
