package services

import (
	"context"
	"time"

	"github.com/yigit/campushub/internal/app/models"
	"go.mongodb.org/mongo-driver/v2/bson"
)

// The interfaces below are the narrow store contracts each service depends on.
// The relational repositories and document store adapters satisfy them; tests
// substitute in-memory fakes.

// IdentityLookup resolves relational identities in one batch. Missing ids are
// absent from the map.
type IdentityLookup interface {
	GetIdentities(ctx context.Context, ids []int64) (map[int64]*models.UserIdentity, error)
}

// UserReader checks that a relational user exists
type UserReader interface {
	Exists(ctx context.Context, id int64) (bool, error)
}

// UserGetter loads a full relational user
type UserGetter interface {
	GetByID(ctx context.Context, id int64) (*models.User, error)
}

// RealtimePusher delivers an event to every live connection of a user. It
// must never block.
type RealtimePusher interface {
	EmitToUser(userID int64, event string, payload interface{})
}

// NotificationStore persists notifications
type NotificationStore interface {
	Create(ctx context.Context, n *models.Notification) error
	ListByReceiver(ctx context.Context, receiverID int64, limit int) ([]*models.Notification, error)
	MarkAllRead(ctx context.Context, receiverID int64) (int64, error)
	MarkRead(ctx context.Context, id bson.ObjectID, receiverID int64) (bool, error)
	CountUnread(ctx context.Context, receiverID int64) (int64, error)
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

// PostStore persists posts and their denormalized counters
type PostStore interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id bson.ObjectID) (*models.Post, error)
	ListFeed(ctx context.Context, q models.FeedQuery) ([]*models.Post, error)
	IncrementLikes(ctx context.Context, id bson.ObjectID, delta int64) (*models.Post, error)
	IncrementComments(ctx context.Context, id bson.ObjectID, delta int64) (*models.Post, error)
}

// CommentStore persists comments
type CommentStore interface {
	Create(ctx context.Context, comment *models.Comment) error
	ListByPost(ctx context.Context, postID bson.ObjectID) ([]*models.Comment, error)
}

// LikeStore persists likes, unique per (post, user)
type LikeStore interface {
	Create(ctx context.Context, like *models.Like) error
	Delete(ctx context.Context, postID bson.ObjectID, userID int64) (bool, error)
	Exists(ctx context.Context, postID bson.ObjectID, userID int64) (bool, error)
	LikedPostIDs(ctx context.Context, userID int64, postIDs []bson.ObjectID) (map[bson.ObjectID]bool, error)
}

// FollowStore persists follow edges, unique per ordered pair
type FollowStore interface {
	Create(ctx context.Context, follow *models.Follow) error
	Delete(ctx context.Context, followerID, followingID int64) (bool, error)
	FollowingIDs(ctx context.Context, followerID int64) ([]int64, error)
}

// ViewCache memoizes composed views. It is never authoritative.
type ViewCache interface {
	GetJSON(ctx context.Context, key string, dest interface{}) (bool, error)
	SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

// EventStore persists events and their announcements
type EventStore interface {
	Create(ctx context.Context, event *models.Event) error
	GetByID(ctx context.Context, id int64) (*models.Event, error)
	List(ctx context.Context) ([]*models.EventSummary, error)
	ListParticipantIDs(ctx context.Context, eventID int64) ([]int64, error)
	CreateAnnouncement(ctx context.Context, announcement *models.Announcement) error
	ClaimDueReminders(ctx context.Context, from, until time.Time) ([]*models.Event, error)
}

// ClubStore persists clubs and memberships, unique per (club, user)
type ClubStore interface {
	Create(ctx context.Context, club *models.Club) error
	GetByID(ctx context.Context, id int64) (*models.Club, error)
	List(ctx context.Context) ([]*models.Club, error)
	AddMember(ctx context.Context, clubID, userID int64) error
	RemoveMember(ctx context.Context, clubID, userID int64) (bool, error)
	MemberIDs(ctx context.Context, clubID int64) ([]int64, error)
}

// RegistrationCounter counts the registrations of an event
type RegistrationCounter interface {
	CountByEvent(ctx context.Context, eventID int64) (int, error)
}

// RegistrationStore owns the registration transactions
type RegistrationStore interface {
	CountByEvent(ctx context.Context, eventID int64) (int, error)
	FindRegisteredUsers(ctx context.Context, eventID int64, userIDs []int64) ([]int64, error)
	CreateTeamRegistration(ctx context.Context, params models.TeamRegistrationParams) (*models.TeamRegistration, error)
	CreateIndividualRegistration(ctx context.Context, params models.IndividualRegistrationParams) (*models.Registration, error)
}

// ResultStore persists event results
type ResultStore interface {
	ExistsForEvent(ctx context.Context, eventID int64) (bool, error)
	Create(ctx context.Context, result *models.Result) error
}

// actorName returns the display name of the acting user, or "Someone" when the
// identity cannot be resolved.
func actorName(ctx context.Context, identities IdentityLookup, userID int64) string {
	found, err := identities.GetIdentities(ctx, []int64{userID})
	if err != nil {
		return "Someone"
	}
	if identity, ok := found[userID]; ok && identity.Name != "" {
		return identity.Name
	}
	return "Someone"
}

func int64Ptr(v int64) *int64 { return &v }
