package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/campushub/internal/app/models"
	"github.com/yigit/campushub/internal/app/models/dto"
	"github.com/yigit/campushub/internal/pkg/apperrors"
	"github.com/yigit/campushub/internal/pkg/cache"
	"github.com/yigit/campushub/internal/pkg/websocket"
)

const (
	alice int64 = 1
	bob   int64 = 2
	carol int64 = 3
	dave  int64 = 4
)

type postHarness struct {
	svc           PostService
	posts         *fakePostStore
	comments      *fakeCommentStore
	likes         *fakeLikeStore
	follows       *fakeFollowStore
	cache         *fakeCache
	directory     *fakeDirectory
	notifications *fakeNotificationStore
	pusher        *recordingPusher
}

func newPostHarness() *postHarness {
	h := &postHarness{
		posts:         newFakePostStore(),
		comments:      &fakeCommentStore{},
		likes:         newFakeLikeStore(),
		follows:       newFakeFollowStore(),
		cache:         newFakeCache(),
		directory:     newFakeDirectory(map[int64]string{alice: "Alice", bob: "Bob", carol: "Carol", dave: "Dave"}),
		notifications: newFakeNotificationStore(),
		pusher:        &recordingPusher{},
	}
	notifier := NewNotificationService(h.notifications, h.directory, h.pusher, zerolog.Nop())
	h.svc = NewPostService(h.posts, h.comments, h.likes, h.follows, h.directory, h.cache, notifier,
		PostServiceConfig{FeedPageSize: 10}, zerolog.Nop())
	return h
}

func (h *postHarness) post(t *testing.T, author int64, visibility models.PostVisibility) string {
	t.Helper()
	resp, err := h.svc.CreatePost(context.Background(), author, &dto.CreatePostRequest{
		Caption:    "hello from " + string(visibility),
		Visibility: visibility,
	})
	require.NoError(t, err)
	return resp.ID
}

func (h *postHarness) likePushes(userID int64) int {
	n := 0
	for _, p := range h.pusher.to(userID) {
		if p.event == websocket.EventNotificationNew && p.payload.(*dto.NotificationResponse).Type == models.NotificationNewLike {
			n++
		}
	}
	return n
}

func TestCreatePost(t *testing.T) {
	h := newPostHarness()
	ctx := context.Background()

	resp, err := h.svc.CreatePost(ctx, alice, &dto.CreatePostRequest{Caption: "  first post  "})
	require.NoError(t, err)
	assert.Equal(t, "first post", resp.Caption)
	assert.Equal(t, models.VisibilityPublic, resp.Visibility)
	assert.Zero(t, resp.LikesCount)
	assert.Zero(t, resp.CommentsCount)
	assert.Equal(t, "Alice", resp.Author.Name)

	_, err = h.svc.CreatePost(ctx, alice, &dto.CreatePostRequest{Caption: strings.Repeat("ç", 501)})
	assert.True(t, errors.Is(err, apperrors.ErrValidationFailed))

	_, err = h.svc.CreatePost(ctx, alice, &dto.CreatePostRequest{})
	assert.True(t, errors.Is(err, apperrors.ErrValidationFailed))

	_, err = h.svc.CreatePost(ctx, alice, &dto.CreatePostRequest{Caption: "x", Visibility: "FRIENDS"})
	assert.True(t, errors.Is(err, apperrors.ErrValidationFailed))

	image := "https://cdn.example/p.png"
	resp, err = h.svc.CreatePost(ctx, alice, &dto.CreatePostRequest{ImageURL: &image})
	require.NoError(t, err)
	assert.Equal(t, image, *resp.ImageURL)
}

func TestGetPostServesCachedViewWithFreshLikeState(t *testing.T) {
	h := newPostHarness()
	ctx := context.Background()
	id := h.post(t, bob, models.VisibilityPublic)
	_, err := h.svc.LikePost(ctx, id, alice)
	require.NoError(t, err)

	first, err := h.svc.GetPost(ctx, id, alice)
	require.NoError(t, err)
	assert.True(t, first.IsLiked)
	assert.True(t, h.cache.has(cache.PostKey(id)))

	reads := h.posts.reads
	second, err := h.svc.GetPost(ctx, id, carol)
	require.NoError(t, err)
	assert.False(t, second.IsLiked)
	assert.Equal(t, int64(1), second.LikesCount)
	assert.Equal(t, reads, h.posts.reads, "cached view must not hit the post store")
	assert.Equal(t, 1, h.cache.hits)
}

func TestGetPostFallsBackWhenCacheFails(t *testing.T) {
	h := newPostHarness()
	ctx := context.Background()
	id := h.post(t, bob, models.VisibilityPublic)
	h.cache.getErr = errors.New("redis down")
	h.cache.setErr = errors.New("redis down")

	view, err := h.svc.GetPost(ctx, id, alice)
	require.NoError(t, err)
	assert.Equal(t, "Bob", view.Author.Name)
}

func TestGetPostCacheHitSurvivesLikeStoreFailure(t *testing.T) {
	h := newPostHarness()
	ctx := context.Background()
	id := h.post(t, bob, models.VisibilityPublic)
	_, err := h.svc.LikePost(ctx, id, alice)
	require.NoError(t, err)

	_, err = h.svc.GetPost(ctx, id, alice)
	require.NoError(t, err)
	require.True(t, h.cache.has(cache.PostKey(id)))

	h.likes.existsErr = errors.New("mongo unreachable")
	view, err := h.svc.GetPost(ctx, id, alice)
	require.NoError(t, err)
	assert.False(t, view.IsLiked)
	assert.Equal(t, int64(1), view.LikesCount)
	assert.Equal(t, 1, h.cache.hits)
}

func TestGetPostErrors(t *testing.T) {
	h := newPostHarness()

	_, err := h.svc.GetPost(context.Background(), "zzz", alice)
	assert.True(t, errors.Is(err, apperrors.ErrValidationFailed))

	_, err = h.svc.GetPost(context.Background(), "65a000000000000000000000", alice)
	assert.True(t, errors.Is(err, apperrors.ErrResourceNotFound))
}

func TestCommentInvalidatesCachedPost(t *testing.T) {
	h := newPostHarness()
	ctx := context.Background()
	id := h.post(t, bob, models.VisibilityPublic)

	before, err := h.svc.GetPost(ctx, id, alice)
	require.NoError(t, err)
	assert.Zero(t, before.CommentsCount)
	require.True(t, h.cache.has(cache.PostKey(id)))

	comment, err := h.svc.AddComment(ctx, id, alice, &dto.CreateCommentRequest{Text: "nice"})
	require.NoError(t, err)
	assert.Equal(t, "Alice", comment.Author.Name)
	assert.False(t, h.cache.has(cache.PostKey(id)))

	after, err := h.svc.GetPost(ctx, id, alice)
	require.NoError(t, err)
	assert.Equal(t, int64(1), after.CommentsCount)
	require.Len(t, after.Comments, 1)
	assert.Equal(t, "nice", after.Comments[0].Text)
	assert.Equal(t, "Alice", after.Comments[0].Author.Name)

	notes := h.notifications.forReceiver(bob)
	require.Len(t, notes, 1)
	assert.Equal(t, models.NotificationNewComment, notes[0].Type)
	assert.Equal(t, "Alice commented on your post.", notes[0].Message)
	assert.Equal(t, "/post/"+id, notes[0].Link)
}

func TestLikeAndUnlikeKeepCachedCountsFresh(t *testing.T) {
	h := newPostHarness()
	ctx := context.Background()
	id := h.post(t, bob, models.VisibilityPublic)

	_, err := h.svc.GetPost(ctx, id, carol)
	require.NoError(t, err)

	liked, err := h.svc.LikePost(ctx, id, alice)
	require.NoError(t, err)
	assert.Equal(t, int64(1), liked.LikesCount)

	view, err := h.svc.GetPost(ctx, id, carol)
	require.NoError(t, err)
	assert.Equal(t, int64(1), view.LikesCount)

	unliked, err := h.svc.UnlikePost(ctx, id, alice)
	require.NoError(t, err)
	assert.False(t, unliked.Liked)

	view, err = h.svc.GetPost(ctx, id, carol)
	require.NoError(t, err)
	assert.Zero(t, view.LikesCount)
}

func TestCommentValidation(t *testing.T) {
	h := newPostHarness()
	id := h.post(t, bob, models.VisibilityPublic)

	_, err := h.svc.AddComment(context.Background(), id, alice, &dto.CreateCommentRequest{Text: "   "})
	assert.True(t, errors.Is(err, apperrors.ErrValidationFailed))

	_, err = h.svc.AddComment(context.Background(), id, alice, &dto.CreateCommentRequest{Text: strings.Repeat("a", 1001)})
	assert.True(t, errors.Is(err, apperrors.ErrValidationFailed))
}

func TestLikeNotifiesOwnerOncePerAction(t *testing.T) {
	h := newPostHarness()
	ctx := context.Background()
	id := h.post(t, bob, models.VisibilityPublic)

	_, err := h.svc.LikePost(ctx, id, alice)
	require.NoError(t, err)
	assert.Equal(t, 1, h.likePushes(bob))
	assert.Empty(t, h.pusher.to(alice))

	notes := h.notifications.forReceiver(bob)
	require.Len(t, notes, 1)
	assert.Equal(t, "Alice liked your post.", notes[0].Message)

	_, err = h.svc.UnlikePost(ctx, id, alice)
	require.NoError(t, err)
	_, err = h.svc.LikePost(ctx, id, alice)
	require.NoError(t, err)

	assert.Equal(t, 2, h.likePushes(bob))
	assert.Empty(t, h.pusher.to(alice))
}

func TestLikeOwnPostDoesNotNotify(t *testing.T) {
	h := newPostHarness()
	id := h.post(t, bob, models.VisibilityPublic)

	resp, err := h.svc.LikePost(context.Background(), id, bob)
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.LikesCount)
	assert.Empty(t, h.notifications.forReceiver(bob))
	assert.Empty(t, h.pusher.pushes)
}

func TestDoubleLikeIsConflict(t *testing.T) {
	h := newPostHarness()
	ctx := context.Background()
	id := h.post(t, bob, models.VisibilityPublic)

	_, err := h.svc.LikePost(ctx, id, alice)
	require.NoError(t, err)

	_, err = h.svc.LikePost(ctx, id, alice)
	assert.True(t, errors.Is(err, apperrors.ErrConflict))
	assert.True(t, errors.Is(err, apperrors.ErrAlreadyLiked))

	view, err := h.svc.GetPost(ctx, id, alice)
	require.NoError(t, err)
	assert.Equal(t, int64(1), view.LikesCount)
	assert.Equal(t, 1, h.likePushes(bob))
}

func TestUnlikeWithoutLike(t *testing.T) {
	h := newPostHarness()
	id := h.post(t, bob, models.VisibilityPublic)

	_, err := h.svc.UnlikePost(context.Background(), id, alice)
	assert.True(t, errors.Is(err, apperrors.ErrResourceNotFound))
	assert.Equal(t, "You have not liked this post.", apperrors.Message(err, ""))
}

func TestToggleLike(t *testing.T) {
	h := newPostHarness()
	ctx := context.Background()
	id := h.post(t, bob, models.VisibilityPublic)

	resp, err := h.svc.ToggleLike(ctx, id, alice)
	require.NoError(t, err)
	assert.True(t, resp.Liked)
	assert.Equal(t, int64(1), resp.LikesCount)

	resp, err = h.svc.ToggleLike(ctx, id, alice)
	require.NoError(t, err)
	assert.False(t, resp.Liked)
	assert.Zero(t, resp.LikesCount)
}

func TestFeedVisibility(t *testing.T) {
	h := newPostHarness()
	ctx := context.Background()
	require.NoError(t, h.follows.Create(ctx, &models.Follow{FollowerID: alice, FollowingID: bob}))

	public := h.post(t, carol, models.VisibilityPublic)
	hidden := h.post(t, carol, models.VisibilityDepartment)
	followed := h.post(t, bob, models.VisibilityClubMembers)
	own := h.post(t, alice, models.VisibilityEvent)

	ids := func(feed *dto.FeedResponse) []string {
		out := make([]string, 0, len(feed.Posts))
		for _, p := range feed.Posts {
			out = append(out, p.ID)
		}
		return out
	}

	feed, err := h.svc.GetFeed(ctx, alice)
	require.NoError(t, err)
	assert.Equal(t, []string{own, followed, public}, ids(feed))
	assert.Equal(t, 3, feed.Count)
	assert.NotContains(t, ids(feed), hidden)

	feed, err = h.svc.GetFeed(ctx, dave)
	require.NoError(t, err)
	assert.Equal(t, []string{public}, ids(feed))

	feed, err = h.svc.GetFeed(ctx, carol)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{public, hidden}, ids(feed))
}

func TestFeedMarksLikedPosts(t *testing.T) {
	h := newPostHarness()
	ctx := context.Background()
	first := h.post(t, bob, models.VisibilityPublic)
	h.post(t, bob, models.VisibilityPublic)
	_, err := h.svc.LikePost(ctx, first, alice)
	require.NoError(t, err)

	feed, err := h.svc.GetFeed(ctx, alice)
	require.NoError(t, err)
	require.Len(t, feed.Posts, 2)
	for _, p := range feed.Posts {
		assert.Equal(t, p.ID == first, p.IsLiked)
		assert.Equal(t, "Bob", p.Author.Name)
	}
}

func TestFeedIsCapped(t *testing.T) {
	h := newPostHarness()
	for i := 0; i < 15; i++ {
		h.post(t, bob, models.VisibilityPublic)
	}

	feed, err := h.svc.GetFeed(context.Background(), alice)
	require.NoError(t, err)
	assert.Len(t, feed.Posts, 10)
}
