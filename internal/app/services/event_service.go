package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/yigit/campushub/internal/app/models"
	"github.com/yigit/campushub/internal/app/models/dto"
	"github.com/yigit/campushub/internal/pkg/apperrors"
	"github.com/yigit/campushub/internal/pkg/validation"
)

// EventService defines the event catalogue and the organizer operations that
// fan out notifications
type EventService interface {
	CreateEvent(ctx context.Context, actorID int64, role models.RoleType, req *dto.CreateEventRequest) (*dto.EventResponse, error)
	ListEvents(ctx context.Context) ([]*dto.EventResponse, error)
	GetEvent(ctx context.Context, eventID int64) (*dto.EventResponse, error)
	ListRegistrants(ctx context.Context, eventID, actorID int64, role models.RoleType) ([]*dto.UserSummary, error)
	PostAnnouncement(ctx context.Context, eventID, actorID int64, role models.RoleType, req *dto.CreateAnnouncementRequest) (*dto.AnnouncementResponse, error)
	PostResult(ctx context.Context, eventID, actorID int64, role models.RoleType, req *dto.CreateResultRequest) (*dto.ResultResponse, error)
	SendReminders(ctx context.Context, now time.Time, lead time.Duration) (int, error)
}

// eventServiceImpl implements EventService
type eventServiceImpl struct {
	events        EventStore
	results       ResultStore
	clubs         ClubStore
	registrations RegistrationCounter
	identities    IdentityLookup
	notifier      Notifier
	logger        zerolog.Logger
}

// NewEventService creates a new EventService
func NewEventService(
	events EventStore,
	results ResultStore,
	clubs ClubStore,
	registrations RegistrationCounter,
	identities IdentityLookup,
	notifier Notifier,
	logger zerolog.Logger,
) EventService {
	return &eventServiceImpl{
		events:        events,
		results:       results,
		clubs:         clubs,
		registrations: registrations,
		identities:    identities,
		notifier:      notifier,
		logger:        logger,
	}
}

// CreateEvent creates an event, optionally under a club the actor runs, and
// tells the club's members about it.
func (s *eventServiceImpl) CreateEvent(ctx context.Context, actorID int64, role models.RoleType, req *dto.CreateEventRequest) (*dto.EventResponse, error) {
	title := strings.TrimSpace(req.Title)
	if !validation.ValidEventTitle(title) {
		return nil, apperrors.NewValidationError("Title is required and must be at most 200 characters.")
	}
	if req.Price < 0 {
		return nil, apperrors.NewValidationError("Price cannot be negative.")
	}
	if req.RegistrationLimit != nil && *req.RegistrationLimit < 0 {
		return nil, apperrors.NewValidationError("Registration limit cannot be negative.")
	}

	event := &models.Event{
		Title:             title,
		Description:       strings.TrimSpace(req.Description),
		ClubID:            req.ClubID,
		CreatedBy:         actorID,
		EventDate:         req.EventDate,
		RegistrationLimit: req.RegistrationLimit,
		IsTeamEvent:       req.IsTeamEvent,
		MinTeamSize:       1,
		MaxTeamSize:       1,
		Price:             req.Price,
	}
	if req.IsTeamEvent {
		event.MinTeamSize = req.MinTeamSize
		event.MaxTeamSize = req.MaxTeamSize
	}
	if !event.HasValidTeamBounds() {
		return nil, apperrors.NewValidationError("Team events need a minimum team size of at least 2 and a maximum no smaller than the minimum.")
	}

	var club *models.Club
	if req.ClubID != nil {
		var err error
		club, err = s.clubs.GetByID(ctx, *req.ClubID)
		if err != nil {
			return nil, err
		}
		if !club.CanPublish(actorID, role) {
			return nil, apperrors.NewForbiddenError("You are not the organizer of this club")
		}
	}

	if err := s.events.Create(ctx, event); err != nil {
		s.logger.Error().Err(err).Int64("actorID", actorID).Msg("Failed to create event")
		return nil, err
	}
	s.logger.Info().Int64("eventID", event.ID).Int64("actorID", actorID).Msg("Event created")

	if club != nil {
		s.announceToClub(ctx, club, event, actorID)
	}
	return dto.NewEventResponse(event, 0), nil
}

// announceToClub sends a CLUB_ANNOUNCEMENT to every club member. Failures are
// logged; the event already exists.
func (s *eventServiceImpl) announceToClub(ctx context.Context, club *models.Club, event *models.Event, actorID int64) {
	members, err := s.clubs.MemberIDs(ctx, club.ID)
	if err != nil {
		s.logger.Error().Err(apperrors.NewNotificationDeliveryError("fan-out", err)).
			Int64("clubID", club.ID).
			Msg("Failed to list club members for new event")
		return
	}

	text := fmt.Sprintf("%s posted a new event: %s", club.Name, event.Title)
	for _, userID := range members {
		s.notifier.Notify(ctx, NotifyRequest{
			ReceiverID:   userID,
			OriginatorID: int64Ptr(actorID),
			Type:         models.NotificationClubAnnouncement,
			Message:      text,
			Link:         eventLink(event.ID),
		})
	}
}

// ListEvents returns every event with its registration count, soonest first
func (s *eventServiceImpl) ListEvents(ctx context.Context) ([]*dto.EventResponse, error) {
	summaries, err := s.events.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.EventResponse, 0, len(summaries))
	for _, summary := range summaries {
		out = append(out, dto.NewEventResponse(summary.Event, summary.RegistrationCount))
	}
	return out, nil
}

// GetEvent returns a single event with its registration count
func (s *eventServiceImpl) GetEvent(ctx context.Context, eventID int64) (*dto.EventResponse, error) {
	event, err := s.events.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	count, err := s.registrations.CountByEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	return dto.NewEventResponse(event, count), nil
}

// ListRegistrants returns every registered person once, whether they
// registered alone or in a team. Only the event's creator or an admin may ask.
func (s *eventServiceImpl) ListRegistrants(ctx context.Context, eventID, actorID int64, role models.RoleType) ([]*dto.UserSummary, error) {
	if _, err := s.managedEvent(ctx, eventID, actorID, role); err != nil {
		return nil, err
	}

	participants, err := s.events.ListParticipantIDs(ctx, eventID)
	if err != nil {
		return nil, err
	}
	participants = uniqueIDs(participants)

	identities, err := s.identities.GetIdentities(ctx, participants)
	if err != nil {
		return nil, err
	}

	out := make([]*dto.UserSummary, 0, len(participants))
	for _, id := range participants {
		identity, ok := identities[id]
		if !ok {
			identity = models.UnknownIdentity(id)
		}
		out = append(out, dto.NewUserSummary(identity))
	}
	return out, nil
}

// SendReminders claims every event starting within lead of now and sends each
// participant one EVENT_REMINDER. It returns the number of notifications sent.
func (s *eventServiceImpl) SendReminders(ctx context.Context, now time.Time, lead time.Duration) (int, error) {
	due, err := s.events.ClaimDueReminders(ctx, now, now.Add(lead))
	if err != nil {
		return 0, err
	}

	sent := 0
	for _, event := range due {
		participants, err := s.events.ListParticipantIDs(ctx, event.ID)
		if err != nil {
			// the claim is committed; this event's reminder is lost
			s.logger.Error().Err(apperrors.NewNotificationDeliveryError("fan-out", err)).
				Int64("eventID", event.ID).
				Msg("Failed to list participants for reminder")
			continue
		}

		text := fmt.Sprintf("Reminder: %s starts on %s", event.Title, event.EventDate.UTC().Format("Jan 2, 15:04 MST"))
		for _, userID := range uniqueIDs(participants) {
			if n := s.notifier.Notify(ctx, NotifyRequest{
				ReceiverID: userID,
				Type:       models.NotificationEventReminder,
				Message:    text,
				Link:       eventLink(event.ID),
			}); n != nil {
				sent++
			}
		}
	}

	if len(due) > 0 {
		s.logger.Info().Int("events", len(due)).Int("notifications", sent).Msg("Event reminders sent")
	}
	return sent, nil
}

func (s *eventServiceImpl) managedEvent(ctx context.Context, eventID, actorID int64, role models.RoleType) (*models.Event, error) {
	event, err := s.events.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if !event.CanManage(actorID, role) {
		return nil, apperrors.NewForbiddenError("You are not the creator of this event")
	}
	return event, nil
}

// PostAnnouncement stores an announcement and notifies every registered participant once
func (s *eventServiceImpl) PostAnnouncement(ctx context.Context, eventID, actorID int64, role models.RoleType, req *dto.CreateAnnouncementRequest) (*dto.AnnouncementResponse, error) {
	title := strings.TrimSpace(req.Title)
	message := strings.TrimSpace(req.Message)
	if title == "" || message == "" {
		return nil, apperrors.NewValidationError("Title and message are required.")
	}
	if !validation.NewStringValidation(title).WithMaxLength(validation.AnnouncementTitleMaxLength).Validate() {
		return nil, apperrors.NewValidationError("Title must be at most 200 characters.")
	}

	event, err := s.managedEvent(ctx, eventID, actorID, role)
	if err != nil {
		return nil, err
	}

	announcement := &models.Announcement{EventID: eventID, Title: title, Message: message, CreatedBy: actorID}
	if err := s.events.CreateAnnouncement(ctx, announcement); err != nil {
		s.logger.Error().Err(err).Int64("eventID", eventID).Msg("Failed to create announcement")
		return nil, err
	}

	participants, err := s.events.ListParticipantIDs(ctx, eventID)
	if err != nil {
		// the announcement is stored; only the fan-out is lost
		s.logger.Error().Err(apperrors.NewNotificationDeliveryError("fan-out", err)).
			Int64("eventID", eventID).
			Msg("Failed to list participants for announcement")
		return dto.NewAnnouncementResponse(announcement, 0), nil
	}

	text := fmt.Sprintf("New announcement for %s: %s", event.Title, title)
	delivered := 0
	for _, userID := range uniqueIDs(participants) {
		n := s.notifier.Notify(ctx, NotifyRequest{
			ReceiverID:   userID,
			OriginatorID: int64Ptr(actorID),
			Type:         models.NotificationEventAnnouncement,
			Message:      text,
			Link:         eventLink(eventID),
		})
		if n != nil {
			delivered++
		}
	}

	s.logger.Info().Int64("eventID", eventID).Int("recipients", delivered).Msg("Announcement posted")
	return dto.NewAnnouncementResponse(announcement, delivered), nil
}

// PostResult stores the single result of an event and congratulates the placed users
func (s *eventServiceImpl) PostResult(ctx context.Context, eventID, actorID int64, role models.RoleType, req *dto.CreateResultRequest) (*dto.ResultResponse, error) {
	if req.WinnerID <= 0 {
		return nil, apperrors.NewValidationError("Winner is required.")
	}
	if req.RunnerUpID != nil && *req.RunnerUpID == req.WinnerID {
		return nil, apperrors.NewValidationError("Winner and runner-up must be different users.")
	}

	event, err := s.managedEvent(ctx, eventID, actorID, role)
	if err != nil {
		return nil, err
	}

	exists, err := s.results.ExistsForEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, &apperrors.CustomError{
			Err:     apperrors.ErrConflict,
			Cause:   apperrors.ErrResultExists,
			Message: "Results for this event have already been posted",
		}
	}

	result := &models.Result{
		EventID:          eventID,
		WinnerID:         req.WinnerID,
		RunnerUpID:       req.RunnerUpID,
		CertificationURL: req.CertificationURL,
	}
	if err := s.results.Create(ctx, result); err != nil {
		return nil, err
	}

	s.notifier.Notify(ctx, NotifyRequest{
		ReceiverID:   req.WinnerID,
		OriginatorID: int64Ptr(actorID),
		Type:         models.NotificationNewResult,
		Message:      fmt.Sprintf("Congratulations! You won the event: %s!", event.Title),
		Link:         eventLink(eventID),
	})
	if req.RunnerUpID != nil {
		s.notifier.Notify(ctx, NotifyRequest{
			ReceiverID:   *req.RunnerUpID,
			OriginatorID: int64Ptr(actorID),
			Type:         models.NotificationNewResult,
			Message:      fmt.Sprintf("Congratulations! You are the runner-up for: %s!", event.Title),
			Link:         eventLink(eventID),
		})
	}

	return dto.NewResultResponse(result), nil
}
