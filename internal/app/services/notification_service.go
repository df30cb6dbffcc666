package services

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"github.com/yigit/campushub/internal/app/models"
	"github.com/yigit/campushub/internal/app/models/dto"
	"github.com/yigit/campushub/internal/pkg/apperrors"
	"github.com/yigit/campushub/internal/pkg/websocket"
	"go.mongodb.org/mongo-driver/v2/bson"
)

// Notification list bounds
const (
	DefaultNotificationLimit = 30
	MaxNotificationLimit     = 100
)

// NotifyRequest describes one notification. OriginatorID is nil for system notifications.
type NotifyRequest struct {
	ReceiverID   int64
	OriginatorID *int64
	Type         models.NotificationType
	Message      string
	Link         string
}

// Notifier creates and delivers notifications. Notify never fails the caller:
// it returns nil when no notification was created.
type Notifier interface {
	Notify(ctx context.Context, req NotifyRequest) *dto.NotificationResponse
}

// NotificationService defines the notification pipeline and its read API
type NotificationService interface {
	Notifier
	ListForUser(ctx context.Context, userID int64, limit int) ([]*dto.NotificationResponse, error)
	MarkAllRead(ctx context.Context, userID int64) (int64, error)
	MarkOneRead(ctx context.Context, notificationID string, userID int64) error
	CountUnread(ctx context.Context, userID int64) (int64, error)
	PurgeOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

// notificationServiceImpl implements NotificationService
type notificationServiceImpl struct {
	store      NotificationStore
	identities IdentityLookup
	pusher     RealtimePusher
	logger     zerolog.Logger
}

// NewNotificationService creates a new NotificationService
func NewNotificationService(
	store NotificationStore,
	identities IdentityLookup,
	pusher RealtimePusher,
	logger zerolog.Logger,
) NotificationService {
	return &notificationServiceImpl{
		store:      store,
		identities: identities,
		pusher:     pusher,
		logger:     logger,
	}
}

// Notify enriches, persists and pushes one notification. The originator is
// resolved before the write, so a failed lookup leaves nothing behind.
func (s *notificationServiceImpl) Notify(ctx context.Context, req NotifyRequest) *dto.NotificationResponse {
	log := s.logger.With().
		Int64("receiverID", req.ReceiverID).
		Str("type", string(req.Type)).
		Logger()

	if req.OriginatorID != nil && *req.OriginatorID == req.ReceiverID {
		log.Debug().Msg("Skipping self notification")
		return nil
	}

	if err := validateNotifyRequest(req); err != nil {
		log.Warn().Err(apperrors.NewNotificationDeliveryError("validation", err)).Msg("Notification rejected")
		return nil
	}

	var originator *models.UserIdentity
	if req.OriginatorID != nil {
		found, err := s.identities.GetIdentities(ctx, []int64{*req.OriginatorID})
		if err != nil {
			log.Error().Err(apperrors.NewNotificationDeliveryError("enrichment", err)).
				Int64("originatorID", *req.OriginatorID).
				Msg("Failed to resolve notification originator")
			return nil
		}
		originator = found[*req.OriginatorID]
	}

	notification := &models.Notification{
		ReceiverID:   req.ReceiverID,
		OriginatorID: req.OriginatorID,
		Type:         req.Type,
		Message:      req.Message,
		Link:         req.Link,
		IsRead:       false,
	}
	if err := s.store.Create(ctx, notification); err != nil {
		log.Error().Err(apperrors.NewNotificationDeliveryError("persist", err)).Msg("Failed to store notification")
		return nil
	}

	payload := dto.NewNotificationResponse(notification, originator)
	s.pusher.EmitToUser(req.ReceiverID, websocket.EventNotificationNew, payload)

	log.Debug().Str("notificationID", payload.ID).Msg("Notification created")
	return payload
}

func validateNotifyRequest(req NotifyRequest) error {
	switch {
	case req.ReceiverID <= 0:
		return errors.New("receiver id must be positive")
	case !req.Type.IsValid():
		return errors.New("unknown notification type")
	case req.Message == "":
		return errors.New("message is required")
	}
	return nil
}

// ListForUser returns the user's newest notifications with originators resolved in one lookup
func (s *notificationServiceImpl) ListForUser(ctx context.Context, userID int64, limit int) ([]*dto.NotificationResponse, error) {
	limit = clampLimit(limit, DefaultNotificationLimit, MaxNotificationLimit)

	notifications, err := s.store.ListByReceiver(ctx, userID, limit)
	if err != nil {
		s.logger.Error().Err(err).Int64("userID", userID).Msg("Failed to list notifications")
		return nil, err
	}

	originatorIDs := make([]int64, 0, len(notifications))
	seen := make(map[int64]struct{})
	for _, n := range notifications {
		if n.OriginatorID == nil {
			continue
		}
		if _, ok := seen[*n.OriginatorID]; ok {
			continue
		}
		seen[*n.OriginatorID] = struct{}{}
		originatorIDs = append(originatorIDs, *n.OriginatorID)
	}

	identities, err := s.identities.GetIdentities(ctx, originatorIDs)
	if err != nil {
		// A list without names is still useful; originators fall back to unknown.
		s.logger.Warn().Err(err).Int64("userID", userID).Msg("Failed to resolve notification originators")
		identities = map[int64]*models.UserIdentity{}
	}

	responses := make([]*dto.NotificationResponse, 0, len(notifications))
	for _, n := range notifications {
		var originator *models.UserIdentity
		if n.OriginatorID != nil {
			originator = identities[*n.OriginatorID]
		}
		responses = append(responses, dto.NewNotificationResponse(n, originator))
	}
	return responses, nil
}

// MarkAllRead marks every unread notification of the user. Repeating it changes nothing.
func (s *notificationServiceImpl) MarkAllRead(ctx context.Context, userID int64) (int64, error) {
	updated, err := s.store.MarkAllRead(ctx, userID)
	if err != nil {
		s.logger.Error().Err(err).Int64("userID", userID).Msg("Failed to mark notifications read")
		return 0, err
	}
	return updated, nil
}

// MarkOneRead marks one notification read. A notification owned by someone else
// is reported as not found.
func (s *notificationServiceImpl) MarkOneRead(ctx context.Context, notificationID string, userID int64) error {
	id, err := bson.ObjectIDFromHex(notificationID)
	if err != nil {
		return apperrors.NewValidationError("Invalid notification id")
	}

	matched, err := s.store.MarkRead(ctx, id, userID)
	if err != nil {
		s.logger.Error().Err(err).Str("notificationID", notificationID).Msg("Failed to mark notification read")
		return err
	}
	if !matched {
		return apperrors.NewResourceNotFoundError("Notification not found")
	}
	return nil
}

// CountUnread counts the user's unread notifications
func (s *notificationServiceImpl) CountUnread(ctx context.Context, userID int64) (int64, error) {
	return s.store.CountUnread(ctx, userID)
}

// PurgeOlderThan deletes notifications created before cutoff
func (s *notificationServiceImpl) PurgeOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	deleted, err := s.store.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		return 0, err
	}
	s.logger.Info().Int64("deleted", deleted).Time("cutoff", cutoff).Msg("Purged old notifications")
	return deleted, nil
}

func clampLimit(limit, def, max int) int {
	if limit <= 0 {
		return def
	}
	if limit > max {
		return max
	}
	return limit
}
