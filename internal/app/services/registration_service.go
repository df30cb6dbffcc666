package services

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"github.com/yigit/campushub/internal/app/models"
	"github.com/yigit/campushub/internal/app/models/dto"
	"github.com/yigit/campushub/internal/pkg/apperrors"
	"github.com/yigit/campushub/internal/pkg/validation"
)

// RegistrationService defines event registration operations
type RegistrationService interface {
	RegisterTeam(ctx context.Context, eventID, leaderID int64, req *dto.RegisterTeamRequest) (*dto.TeamRegistrationResponse, error)
	RegisterIndividual(ctx context.Context, eventID, userID int64) (*dto.RegistrationResponse, error)
}

// registrationServiceImpl implements RegistrationService
type registrationServiceImpl struct {
	events        EventStore
	registrations RegistrationStore
	notifier      Notifier
	logger        zerolog.Logger
}

// NewRegistrationService creates a new RegistrationService
func NewRegistrationService(
	events EventStore,
	registrations RegistrationStore,
	notifier Notifier,
	logger zerolog.Logger,
) RegistrationService {
	return &registrationServiceImpl{
		events:        events,
		registrations: registrations,
		notifier:      notifier,
		logger:        logger,
	}
}

// RegisterTeam registers the leader and members as one team. The checks below
// fail fast; the transaction repeats the capacity check under a row lock and the
// participant primary key rejects anything that raced past the duplicate check.
func (s *registrationServiceImpl) RegisterTeam(ctx context.Context, eventID, leaderID int64, req *dto.RegisterTeamRequest) (*dto.TeamRegistrationResponse, error) {
	teamName := strings.TrimSpace(req.TeamName)
	if !validation.ValidTeamName(teamName) {
		return nil, apperrors.NewValidationError("Team name must be between 1 and 100 characters.")
	}

	event, err := s.events.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if !event.IsTeamEvent {
		return nil, apperrors.NewValidationError("This is an individual event.")
	}

	if err := s.checkCapacity(ctx, event); err != nil {
		return nil, err
	}

	members := models.TeamMemberSet(leaderID, req.MemberUserIDs)
	for _, id := range members {
		if id <= 0 {
			return nil, apperrors.NewValidationError("Member ids must be positive.")
		}
	}
	if !event.AcceptsTeamSize(len(members)) {
		return nil, apperrors.NewValidationError(
			fmt.Sprintf("Team size must be between %d and %d members.", event.MinTeamSize, event.MaxTeamSize))
	}

	registered, err := s.registrations.FindRegisteredUsers(ctx, eventID, members)
	if err != nil {
		return nil, err
	}
	if first, ok := firstRegistered(members, registered); ok {
		return nil, apperrors.NewDuplicateRegistrationError(
			fmt.Sprintf("A user (ID: %d) is already registered for this event.", first))
	}

	result, err := s.registrations.CreateTeamRegistration(ctx, models.TeamRegistrationParams{
		EventID:       eventID,
		LeaderID:      leaderID,
		TeamName:      teamName,
		MemberIDs:     members,
		PaymentStatus: event.InitialPaymentStatus(),
	})
	if err != nil {
		s.logger.Warn().Err(err).Int64("eventID", eventID).Str("team", teamName).Msg("Team registration failed")
		return nil, err
	}

	s.logger.Info().
		Int64("eventID", eventID).
		Int64("teamID", result.Team.ID).
		Int("members", len(members)).
		Msg("Team registered")

	message := fmt.Sprintf("Your team %q has successfully registered for %s!", teamName, event.Title)
	for _, memberID := range members {
		s.notifier.Notify(ctx, NotifyRequest{
			ReceiverID:   memberID,
			OriginatorID: int64Ptr(event.CreatedBy),
			Type:         models.NotificationRegistrationConfirmed,
			Message:      message,
			Link:         eventLink(eventID),
		})
	}

	return dto.NewTeamRegistrationResponse(result), nil
}

// RegisterIndividual registers a single user for a non-team event
func (s *registrationServiceImpl) RegisterIndividual(ctx context.Context, eventID, userID int64) (*dto.RegistrationResponse, error) {
	event, err := s.events.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if event.IsTeamEvent {
		return nil, apperrors.NewValidationError("This is a team event. Please register as a team.")
	}

	if err := s.checkCapacity(ctx, event); err != nil {
		return nil, err
	}

	registered, err := s.registrations.FindRegisteredUsers(ctx, eventID, []int64{userID})
	if err != nil {
		return nil, err
	}
	if len(registered) > 0 {
		return nil, apperrors.NewDuplicateRegistrationError("You are already registered for this event.")
	}

	registration, err := s.registrations.CreateIndividualRegistration(ctx, models.IndividualRegistrationParams{
		EventID:       eventID,
		UserID:        userID,
		PaymentStatus: event.InitialPaymentStatus(),
	})
	if err != nil {
		if apperrors.Is(err, apperrors.ErrDuplicateRegistration) {
			return nil, apperrors.NewDuplicateRegistrationError("You are already registered for this event.")
		}
		return nil, err
	}

	s.notifier.Notify(ctx, NotifyRequest{
		ReceiverID:   userID,
		OriginatorID: int64Ptr(event.CreatedBy),
		Type:         models.NotificationRegistrationConfirmed,
		Message:      fmt.Sprintf("You have successfully registered for %s!", event.Title),
		Link:         eventLink(eventID),
	})

	return dto.NewRegistrationResponse(registration), nil
}

func (s *registrationServiceImpl) checkCapacity(ctx context.Context, event *models.Event) error {
	if event.RegistrationLimit == nil {
		return nil
	}
	count, err := s.registrations.CountByEvent(ctx, event.ID)
	if err != nil {
		return err
	}
	if event.IsFull(count) {
		return apperrors.NewEventFullError()
	}
	return nil
}

// firstRegistered returns the first candidate, in member order, that already holds a registration
func firstRegistered(candidates, registered []int64) (int64, bool) {
	if len(registered) == 0 {
		return 0, false
	}
	set := make(map[int64]struct{}, len(registered))
	for _, id := range registered {
		set[id] = struct{}{}
	}
	for _, id := range candidates {
		if _, ok := set[id]; ok {
			return id, true
		}
	}
	return registered[0], true
}

func eventLink(eventID int64) string {
	return "/event/" + strconv.FormatInt(eventID, 10)
}
