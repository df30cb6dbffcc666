package services

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/campushub/internal/app/models"
	"github.com/yigit/campushub/internal/pkg/apperrors"
)

func newFollowHarness() (FollowService, *fakeFollowStore, *recordingNotifier) {
	follows := newFakeFollowStore()
	directory := newFakeDirectory(map[int64]string{alice: "Alice", bob: "Bob"})
	notifier := &recordingNotifier{}
	return NewFollowService(follows, directory, directory, notifier, zerolog.Nop()), follows, notifier
}

func TestFollowNotifiesTarget(t *testing.T) {
	svc, follows, notifier := newFollowHarness()

	resp, err := svc.Follow(context.Background(), alice, bob)
	require.NoError(t, err)
	assert.True(t, resp.Following)

	ids, err := follows.FollowingIDs(context.Background(), alice)
	require.NoError(t, err)
	assert.Equal(t, []int64{bob}, ids)

	require.Len(t, notifier.requests, 1)
	req := notifier.requests[0]
	assert.Equal(t, bob, req.ReceiverID)
	assert.Equal(t, models.NotificationNewFollower, req.Type)
	assert.Equal(t, "Alice started following you.", req.Message)
	assert.Equal(t, "/profile/1", req.Link)
}

func TestFollowErrors(t *testing.T) {
	svc, _, notifier := newFollowHarness()
	ctx := context.Background()

	_, err := svc.Follow(ctx, alice, alice)
	assert.True(t, errors.Is(err, apperrors.ErrValidationFailed))

	_, err = svc.Follow(ctx, alice, 77)
	assert.True(t, errors.Is(err, apperrors.ErrResourceNotFound))

	_, err = svc.Follow(ctx, alice, bob)
	require.NoError(t, err)
	_, err = svc.Follow(ctx, alice, bob)
	assert.True(t, errors.Is(err, apperrors.ErrAlreadyFollowing))

	assert.Len(t, notifier.requests, 1)
}

func TestUnfollow(t *testing.T) {
	svc, _, _ := newFollowHarness()
	ctx := context.Background()

	_, err := svc.Unfollow(ctx, alice, bob)
	assert.True(t, errors.Is(err, apperrors.ErrResourceNotFound))

	_, err = svc.Follow(ctx, alice, bob)
	require.NoError(t, err)

	resp, err := svc.Unfollow(ctx, alice, bob)
	require.NoError(t, err)
	assert.False(t, resp.Following)
}
