package dto

import (
	"time"

	"github.com/yigit/campushub/internal/app/models"
)

// --- Request DTOs ---

// CreatePostRequest represents post creation data. The image is uploaded
// elsewhere and referenced by URL.
type CreatePostRequest struct {
	Caption    string                `json:"caption" binding:"max=500"`
	ImageURL   *string               `json:"image_url,omitempty" binding:"omitempty,url"`
	Visibility models.PostVisibility `json:"visibility,omitempty" binding:"omitempty,oneof=PUBLIC DEPARTMENT EVENT CLUB_MEMBERS"`
}

// CreateCommentRequest represents comment creation data
type CreateCommentRequest struct {
	Text string `json:"text" binding:"required"`
}

// --- Response DTOs ---

// CommentResponse is a comment joined with its author
type CommentResponse struct {
	ID        string       `json:"id"`
	Text      string       `json:"text"`
	Author    *UserSummary `json:"author"`
	CreatedAt time.Time    `json:"created_at"`
}

// PostResponse is a post joined with its author and the viewer's like state
type PostResponse struct {
	ID            string                `json:"id"`
	Author        *UserSummary          `json:"author"`
	Caption       string                `json:"caption"`
	ImageURL      *string               `json:"image_url,omitempty"`
	Visibility    models.PostVisibility `json:"visibility"`
	LikesCount    int64                 `json:"likes_count"`
	CommentsCount int64                 `json:"comments_count"`
	IsLiked       bool                  `json:"is_liked"`
	CreatedAt     time.Time             `json:"created_at"`
	UpdatedAt     time.Time             `json:"updated_at"`
}

// PostDetailResponse is the single post view, including its comments.
// Everything except IsLiked is viewer independent and is what gets cached.
type PostDetailResponse struct {
	PostResponse
	Comments []*CommentResponse `json:"comments"`
}

// FeedResponse wraps a feed page
type FeedResponse struct {
	Posts []*PostResponse `json:"posts"`
	Count int             `json:"count"`
}

// LikeResponse reports the like state after a like mutation
type LikeResponse struct {
	PostID     string `json:"post_id"`
	Liked      bool   `json:"liked"`
	LikesCount int64  `json:"likes_count"`
}

// FollowResponse reports the follow state after a follow mutation
type FollowResponse struct {
	FollowerID  int64 `json:"follower_id"`
	FollowingID int64 `json:"following_id"`
	Following   bool  `json:"following"`
}

// NewPostResponse builds a post view. author may be nil when the author is
// missing from the relational store.
func NewPostResponse(post *models.Post, author *models.UserIdentity, isLiked bool) *PostResponse {
	if author == nil {
		author = models.UnknownIdentity(post.UserID)
	}
	return &PostResponse{
		ID:            post.ID.Hex(),
		Author:        NewUserSummary(author),
		Caption:       post.Caption,
		ImageURL:      post.ImageURL,
		Visibility:    post.Visibility,
		LikesCount:    post.LikesCount,
		CommentsCount: post.CommentsCount,
		IsLiked:       isLiked,
		CreatedAt:     post.CreatedAt,
		UpdatedAt:     post.UpdatedAt,
	}
}

// NewCommentResponse builds a comment view
func NewCommentResponse(comment *models.Comment, author *models.UserIdentity) *CommentResponse {
	if author == nil {
		author = models.UnknownIdentity(comment.UserID)
	}
	return &CommentResponse{
		ID:        comment.ID.Hex(),
		Text:      comment.Text,
		Author:    NewUserSummary(author),
		CreatedAt: comment.CreatedAt,
	}
}
