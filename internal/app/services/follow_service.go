package services

import (
	"context"
	"strconv"

	"github.com/rs/zerolog"
	"github.com/yigit/campushub/internal/app/models"
	"github.com/yigit/campushub/internal/app/models/dto"
	"github.com/yigit/campushub/internal/pkg/apperrors"
)

// FollowService defines follow graph operations
type FollowService interface {
	Follow(ctx context.Context, followerID, targetID int64) (*dto.FollowResponse, error)
	Unfollow(ctx context.Context, followerID, targetID int64) (*dto.FollowResponse, error)
}

// followServiceImpl implements FollowService
type followServiceImpl struct {
	follows    FollowStore
	users      UserReader
	identities IdentityLookup
	notifier   Notifier
	logger     zerolog.Logger
}

// NewFollowService creates a new FollowService
func NewFollowService(
	follows FollowStore,
	users UserReader,
	identities IdentityLookup,
	notifier Notifier,
	logger zerolog.Logger,
) FollowService {
	return &followServiceImpl{
		follows:    follows,
		users:      users,
		identities: identities,
		notifier:   notifier,
		logger:     logger,
	}
}

// Follow adds the edge follower -> target and notifies the target
func (s *followServiceImpl) Follow(ctx context.Context, followerID, targetID int64) (*dto.FollowResponse, error) {
	if followerID == targetID {
		return nil, apperrors.NewValidationError("You cannot follow yourself.")
	}

	exists, err := s.users.Exists(ctx, targetID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperrors.NewResourceNotFoundError("User not found")
	}

	if err := s.follows.Create(ctx, &models.Follow{FollowerID: followerID, FollowingID: targetID}); err != nil {
		return nil, err
	}

	s.notifier.Notify(ctx, NotifyRequest{
		ReceiverID:   targetID,
		OriginatorID: int64Ptr(followerID),
		Type:         models.NotificationNewFollower,
		Message:      actorName(ctx, s.identities, followerID) + " started following you.",
		Link:         "/profile/" + strconv.FormatInt(followerID, 10),
	})

	s.logger.Debug().Int64("followerID", followerID).Int64("targetID", targetID).Msg("User followed")
	return &dto.FollowResponse{FollowerID: followerID, FollowingID: targetID, Following: true}, nil
}

// Unfollow removes the edge follower -> target
func (s *followServiceImpl) Unfollow(ctx context.Context, followerID, targetID int64) (*dto.FollowResponse, error) {
	removed, err := s.follows.Delete(ctx, followerID, targetID)
	if err != nil {
		return nil, err
	}
	if !removed {
		return nil, apperrors.NewResourceNotFoundError("You are not following this user.")
	}
	return &dto.FollowResponse{FollowerID: followerID, FollowingID: targetID, Following: false}, nil
}
