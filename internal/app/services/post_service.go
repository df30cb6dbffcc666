package services

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/yigit/campushub/internal/app/models"
	"github.com/yigit/campushub/internal/app/models/dto"
	"github.com/yigit/campushub/internal/pkg/apperrors"
	"github.com/yigit/campushub/internal/pkg/cache"
	"github.com/yigit/campushub/internal/pkg/validation"
	"go.mongodb.org/mongo-driver/v2/bson"
)

// DefaultFeedPageSize caps a feed page
const DefaultFeedPageSize = 20

// PostServiceConfig tunes feed size and cache lifetime
type PostServiceConfig struct {
	FeedPageSize int
	CacheTTL     time.Duration
}

// PostService defines post composition and mutation operations
type PostService interface {
	CreatePost(ctx context.Context, authorID int64, req *dto.CreatePostRequest) (*dto.PostResponse, error)
	GetPost(ctx context.Context, postID string, viewerID int64) (*dto.PostDetailResponse, error)
	GetFeed(ctx context.Context, viewerID int64) (*dto.FeedResponse, error)
	LikePost(ctx context.Context, postID string, userID int64) (*dto.LikeResponse, error)
	UnlikePost(ctx context.Context, postID string, userID int64) (*dto.LikeResponse, error)
	ToggleLike(ctx context.Context, postID string, userID int64) (*dto.LikeResponse, error)
	AddComment(ctx context.Context, postID string, userID int64, req *dto.CreateCommentRequest) (*dto.CommentResponse, error)
}

// postServiceImpl implements PostService
type postServiceImpl struct {
	posts      PostStore
	comments   CommentStore
	likes      LikeStore
	follows    FollowStore
	identities IdentityLookup
	cache      ViewCache
	notifier   Notifier
	cfg        PostServiceConfig
	logger     zerolog.Logger
}

// NewPostService creates a new PostService
func NewPostService(
	posts PostStore,
	comments CommentStore,
	likes LikeStore,
	follows FollowStore,
	identities IdentityLookup,
	viewCache ViewCache,
	notifier Notifier,
	cfg PostServiceConfig,
	logger zerolog.Logger,
) PostService {
	if cfg.FeedPageSize <= 0 {
		cfg.FeedPageSize = DefaultFeedPageSize
	}
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = cache.DefaultPostTTL
	}
	return &postServiceImpl{
		posts:      posts,
		comments:   comments,
		likes:      likes,
		follows:    follows,
		identities: identities,
		cache:      viewCache,
		notifier:   notifier,
		cfg:        cfg,
		logger:     logger,
	}
}

// CreatePost stores a new post with zero counters
func (s *postServiceImpl) CreatePost(ctx context.Context, authorID int64, req *dto.CreatePostRequest) (*dto.PostResponse, error) {
	caption := strings.TrimSpace(req.Caption)
	if !validation.ValidCaption(caption) {
		return nil, apperrors.NewValidationError("Caption must be at most 500 characters.")
	}

	visibility := req.Visibility
	if visibility == "" {
		visibility = models.VisibilityPublic
	}
	if !visibility.IsValid() {
		return nil, apperrors.NewValidationError("Invalid post visibility.")
	}
	if caption == "" && req.ImageURL == nil {
		return nil, apperrors.NewValidationError("A post needs a caption or an image.")
	}

	post := &models.Post{
		UserID:     authorID,
		Caption:    caption,
		ImageURL:   req.ImageURL,
		Visibility: visibility,
	}
	if err := s.posts.Create(ctx, post); err != nil {
		s.logger.Error().Err(err).Int64("authorID", authorID).Msg("Failed to create post")
		return nil, err
	}

	identities, err := s.identities.GetIdentities(ctx, []int64{authorID})
	if err != nil {
		s.logger.Warn().Err(err).Int64("authorID", authorID).Msg("Failed to resolve post author")
	}
	return dto.NewPostResponse(post, identities[authorID], false), nil
}

// GetPost returns the composed post. The viewer-independent part is served from
// the cache when present; the viewer's like state is always read fresh and
// reads as false when the like store cannot answer.
func (s *postServiceImpl) GetPost(ctx context.Context, postID string, viewerID int64) (*dto.PostDetailResponse, error) {
	id, err := parsePostID(postID)
	if err != nil {
		return nil, err
	}

	view, err := s.cachedView(ctx, id)
	if err != nil {
		return nil, err
	}

	liked, err := s.likes.Exists(ctx, id, viewerID)
	if err != nil {
		s.logger.Warn().Err(err).Str("postID", postID).Int64("viewerID", viewerID).
			Msg("Failed to read like state, serving post as not liked")
		liked = false
	}

	result := *view
	result.IsLiked = liked
	return &result, nil
}

func (s *postServiceImpl) cachedView(ctx context.Context, id bson.ObjectID) (*dto.PostDetailResponse, error) {
	key := cache.PostKey(id.Hex())

	var cached dto.PostDetailResponse
	hit, err := s.cache.GetJSON(ctx, key, &cached)
	if err != nil {
		s.logger.Warn().Err(err).Str("key", key).Msg("Cache read failed, composing from stores")
	}
	if hit {
		return &cached, nil
	}

	view, err := s.composePost(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.cache.SetJSON(ctx, key, view, s.cfg.CacheTTL); err != nil {
		s.logger.Warn().Err(err).Str("key", key).Msg("Cache write failed")
	}
	return view, nil
}

// composePost joins the post and its comments with their authors in one identity lookup
func (s *postServiceImpl) composePost(ctx context.Context, id bson.ObjectID) (*dto.PostDetailResponse, error) {
	post, err := s.posts.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	comments, err := s.comments.ListByPost(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Str("postID", id.Hex()).Msg("Failed to list comments")
		return nil, err
	}

	userIDs := []int64{post.UserID}
	for _, c := range comments {
		userIDs = append(userIDs, c.UserID)
	}
	identities, err := s.identities.GetIdentities(ctx, uniqueIDs(userIDs))
	if err != nil {
		s.logger.Error().Err(err).Str("postID", id.Hex()).Msg("Failed to resolve post identities")
		return nil, err
	}

	view := &dto.PostDetailResponse{
		PostResponse: *dto.NewPostResponse(post, identities[post.UserID], false),
		Comments:     make([]*dto.CommentResponse, 0, len(comments)),
	}
	for _, c := range comments {
		view.Comments = append(view.Comments, dto.NewCommentResponse(c, identities[c.UserID]))
	}
	return view, nil
}

// GetFeed returns the newest posts visible to the viewer. Feeds are never cached.
func (s *postServiceImpl) GetFeed(ctx context.Context, viewerID int64) (*dto.FeedResponse, error) {
	following, err := s.follows.FollowingIDs(ctx, viewerID)
	if err != nil {
		s.logger.Error().Err(err).Int64("viewerID", viewerID).Msg("Failed to list followed users")
		return nil, err
	}

	query := models.NewFeedQuery(viewerID, following, s.cfg.FeedPageSize)
	posts, err := s.posts.ListFeed(ctx, query)
	if err != nil {
		s.logger.Error().Err(err).Int64("viewerID", viewerID).Msg("Failed to list feed")
		return nil, err
	}

	authorIDs := make([]int64, 0, len(posts))
	postIDs := make([]bson.ObjectID, 0, len(posts))
	for _, p := range posts {
		authorIDs = append(authorIDs, p.UserID)
		postIDs = append(postIDs, p.ID)
	}

	identities, err := s.identities.GetIdentities(ctx, uniqueIDs(authorIDs))
	if err != nil {
		s.logger.Error().Err(err).Int64("viewerID", viewerID).Msg("Failed to resolve feed authors")
		return nil, err
	}

	liked, err := s.likes.LikedPostIDs(ctx, viewerID, postIDs)
	if err != nil {
		s.logger.Error().Err(err).Int64("viewerID", viewerID).Msg("Failed to read feed like state")
		return nil, err
	}

	feed := &dto.FeedResponse{Posts: make([]*dto.PostResponse, 0, len(posts))}
	for _, p := range posts {
		feed.Posts = append(feed.Posts, dto.NewPostResponse(p, identities[p.UserID], liked[p.ID]))
	}
	feed.Count = len(feed.Posts)
	return feed, nil
}

// LikePost records a like, bumps the counter, invalidates the cached view and
// notifies the owner.
func (s *postServiceImpl) LikePost(ctx context.Context, postID string, userID int64) (*dto.LikeResponse, error) {
	id, err := parsePostID(postID)
	if err != nil {
		return nil, err
	}

	post, err := s.posts.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.likes.Create(ctx, &models.Like{PostID: id, UserID: userID}); err != nil {
		return nil, err
	}

	updated, err := s.posts.IncrementLikes(ctx, id, 1)
	if err != nil {
		s.logger.Error().Err(err).Str("postID", postID).Msg("Like stored but counter update failed")
		return nil, err
	}
	s.invalidate(ctx, id)

	if post.UserID != userID {
		s.notifier.Notify(ctx, NotifyRequest{
			ReceiverID:   post.UserID,
			OriginatorID: int64Ptr(userID),
			Type:         models.NotificationNewLike,
			Message:      actorName(ctx, s.identities, userID) + " liked your post.",
			Link:         postLink(id),
		})
	}

	return &dto.LikeResponse{PostID: postID, Liked: true, LikesCount: updated.LikesCount}, nil
}

// UnlikePost removes the user's like and decrements the counter
func (s *postServiceImpl) UnlikePost(ctx context.Context, postID string, userID int64) (*dto.LikeResponse, error) {
	id, err := parsePostID(postID)
	if err != nil {
		return nil, err
	}

	removed, err := s.likes.Delete(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	if !removed {
		return nil, apperrors.NewResourceNotFoundError("You have not liked this post.")
	}

	updated, err := s.posts.IncrementLikes(ctx, id, -1)
	if err != nil {
		s.logger.Error().Err(err).Str("postID", postID).Msg("Like removed but counter update failed")
		return nil, err
	}
	s.invalidate(ctx, id)

	return &dto.LikeResponse{PostID: postID, Liked: false, LikesCount: updated.LikesCount}, nil
}

// ToggleLike likes the post when the user has not, and unlikes it otherwise
func (s *postServiceImpl) ToggleLike(ctx context.Context, postID string, userID int64) (*dto.LikeResponse, error) {
	id, err := parsePostID(postID)
	if err != nil {
		return nil, err
	}

	liked, err := s.likes.Exists(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	if liked {
		return s.UnlikePost(ctx, postID, userID)
	}
	return s.LikePost(ctx, postID, userID)
}

// AddComment stores a comment, bumps the counter, invalidates the cached view and
// notifies the owner.
func (s *postServiceImpl) AddComment(ctx context.Context, postID string, userID int64, req *dto.CreateCommentRequest) (*dto.CommentResponse, error) {
	id, err := parsePostID(postID)
	if err != nil {
		return nil, err
	}

	text := strings.TrimSpace(req.Text)
	if !validation.ValidComment(text) {
		return nil, apperrors.NewValidationError("Comment must be between 1 and 1000 characters.")
	}

	post, err := s.posts.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	comment := &models.Comment{PostID: id, UserID: userID, Text: text}
	if err := s.comments.Create(ctx, comment); err != nil {
		s.logger.Error().Err(err).Str("postID", postID).Msg("Failed to create comment")
		return nil, err
	}

	if _, err := s.posts.IncrementComments(ctx, id, 1); err != nil {
		s.logger.Error().Err(err).Str("postID", postID).Msg("Comment stored but counter update failed")
		return nil, err
	}
	s.invalidate(ctx, id)

	identities, err := s.identities.GetIdentities(ctx, []int64{userID})
	if err != nil {
		s.logger.Warn().Err(err).Int64("userID", userID).Msg("Failed to resolve comment author")
	}
	author := identities[userID]

	if post.UserID != userID {
		name := "Someone"
		if author != nil && author.Name != "" {
			name = author.Name
		}
		s.notifier.Notify(ctx, NotifyRequest{
			ReceiverID:   post.UserID,
			OriginatorID: int64Ptr(userID),
			Type:         models.NotificationNewComment,
			Message:      name + " commented on your post.",
			Link:         postLink(id),
		})
	}

	return dto.NewCommentResponse(comment, author), nil
}

// invalidate drops the cached view. Failures are logged only.
func (s *postServiceImpl) invalidate(ctx context.Context, id bson.ObjectID) {
	key := cache.PostKey(id.Hex())
	if err := s.cache.Delete(ctx, key); err != nil {
		s.logger.Warn().Err(err).Str("key", key).Msg("Failed to invalidate cached post")
	}
}

func parsePostID(postID string) (bson.ObjectID, error) {
	id, err := bson.ObjectIDFromHex(postID)
	if err != nil {
		return bson.NilObjectID, apperrors.NewValidationError("Invalid post id")
	}
	return id, nil
}

func postLink(id bson.ObjectID) string {
	return "/post/" + id.Hex()
}

func uniqueIDs(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
