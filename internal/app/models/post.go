package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// PostVisibility controls who may see a post in their feed
type PostVisibility string

const (
	VisibilityPublic      PostVisibility = "PUBLIC"
	VisibilityDepartment  PostVisibility = "DEPARTMENT"
	VisibilityEvent       PostVisibility = "EVENT"
	VisibilityClubMembers PostVisibility = "CLUB_MEMBERS"
)

// IsValid reports whether v is a known visibility
func (v PostVisibility) IsValid() bool {
	switch v {
	case VisibilityPublic, VisibilityDepartment, VisibilityEvent, VisibilityClubMembers:
		return true
	}
	return false
}

// Post document. likes_count and comments_count are denormalized and only
// ever changed with $inc.
type Post struct {
	ID            bson.ObjectID  `bson:"_id,omitempty" json:"id"`
	UserID        int64          `bson:"user_id" json:"user_id"`
	Caption       string         `bson:"caption" json:"caption"`
	ImageURL      *string        `bson:"image_url,omitempty" json:"image_url,omitempty"`
	Visibility    PostVisibility `bson:"visibility" json:"visibility"`
	LikesCount    int64          `bson:"likes_count" json:"likes_count"`
	CommentsCount int64          `bson:"comments_count" json:"comments_count"`
	CreatedAt     time.Time      `bson:"created_at" json:"created_at"`
	UpdatedAt     time.Time      `bson:"updated_at" json:"updated_at"`
}

// Comment document
type Comment struct {
	ID        bson.ObjectID `bson:"_id,omitempty" json:"id"`
	PostID    bson.ObjectID `bson:"post_id" json:"post_id"`
	UserID    int64         `bson:"user_id" json:"user_id"`
	Text      string        `bson:"text" json:"text"`
	CreatedAt time.Time     `bson:"created_at" json:"created_at"`
}

// Like document. Unique per (post_id, user_id).
type Like struct {
	ID        bson.ObjectID `bson:"_id,omitempty" json:"id"`
	PostID    bson.ObjectID `bson:"post_id" json:"post_id"`
	UserID    int64         `bson:"user_id" json:"user_id"`
	CreatedAt time.Time     `bson:"created_at" json:"created_at"`
}

// Follow is a directed edge follower -> following. Unique per ordered pair.
type Follow struct {
	ID          bson.ObjectID `bson:"_id,omitempty" json:"id"`
	FollowerID  int64         `bson:"follower_id" json:"follower_id"`
	FollowingID int64         `bson:"following_id" json:"following_id"`
	CreatedAt   time.Time     `bson:"created_at" json:"created_at"`
}

// FeedQuery selects the posts a viewer may see: anything PUBLIC, plus posts by
// the viewer and by the authors they follow.
type FeedQuery struct {
	ViewerID  int64
	AuthorIDs []int64 // followed authors plus the viewer
	Limit     int
}

// NewFeedQuery builds the query for viewerID given the authors they follow
func NewFeedQuery(viewerID int64, following []int64, limit int) FeedQuery {
	authors := make([]int64, 0, len(following)+1)
	authors = append(authors, viewerID)
	for _, id := range following {
		if id != viewerID {
			authors = append(authors, id)
		}
	}
	return FeedQuery{ViewerID: viewerID, AuthorIDs: authors, Limit: limit}
}
