package services

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"
	"github.com/yigit/campushub/internal/app/models"
	"github.com/yigit/campushub/internal/app/models/dto"
	"github.com/yigit/campushub/internal/pkg/apperrors"
	"github.com/yigit/campushub/internal/pkg/validation"
)

// ClubService defines club management and membership operations
type ClubService interface {
	CreateClub(ctx context.Context, req *dto.CreateClubRequest) (*dto.ClubResponse, error)
	ListClubs(ctx context.Context) ([]*dto.ClubResponse, error)
	GetClub(ctx context.Context, clubID int64) (*dto.ClubResponse, error)
	JoinClub(ctx context.Context, clubID, userID int64) (*dto.ClubMembershipResponse, error)
	LeaveClub(ctx context.Context, clubID, userID int64) (*dto.ClubMembershipResponse, error)
}

// clubServiceImpl implements ClubService
type clubServiceImpl struct {
	clubs  ClubStore
	users  UserGetter
	logger zerolog.Logger
}

// NewClubService creates a new ClubService
func NewClubService(clubs ClubStore, users UserGetter, logger zerolog.Logger) ClubService {
	return &clubServiceImpl{
		clubs:  clubs,
		users:  users,
		logger: logger,
	}
}

// CreateClub creates a club run by an existing organizer
func (s *clubServiceImpl) CreateClub(ctx context.Context, req *dto.CreateClubRequest) (*dto.ClubResponse, error) {
	name := strings.TrimSpace(req.Name)
	if !validation.ValidClubName(name) {
		return nil, apperrors.NewValidationError("Club name is required and must be at most 150 characters.")
	}

	organizer, err := s.users.GetByID(ctx, req.OrganizerID)
	if err != nil && !errors.Is(err, apperrors.ErrResourceNotFound) {
		return nil, err
	}
	if organizer == nil || organizer.Role != models.RoleOrganizer {
		return nil, apperrors.NewResourceNotFoundError("Organizer user not found or user is not an organizer")
	}

	club := &models.Club{Name: name, Description: trimmedOrNil(req.Description), OrganizerID: organizer.ID}
	if err := s.clubs.Create(ctx, club); err != nil {
		if !errors.Is(err, apperrors.ErrConflict) {
			s.logger.Error().Err(err).Str("name", name).Msg("Failed to create club")
		}
		return nil, err
	}

	s.logger.Info().Int64("clubID", club.ID).Int64("organizerID", organizer.ID).Msg("Club created")
	return dto.NewClubResponse(club), nil
}

// ListClubs returns every club ordered by name
func (s *clubServiceImpl) ListClubs(ctx context.Context) ([]*dto.ClubResponse, error) {
	clubs, err := s.clubs.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.ClubResponse, 0, len(clubs))
	for _, c := range clubs {
		out = append(out, dto.NewClubResponse(c))
	}
	return out, nil
}

// GetClub returns a single club
func (s *clubServiceImpl) GetClub(ctx context.Context, clubID int64) (*dto.ClubResponse, error) {
	club, err := s.clubs.GetByID(ctx, clubID)
	if err != nil {
		return nil, err
	}
	return dto.NewClubResponse(club), nil
}

// JoinClub adds the user to the club. Joining twice is a conflict.
func (s *clubServiceImpl) JoinClub(ctx context.Context, clubID, userID int64) (*dto.ClubMembershipResponse, error) {
	if _, err := s.clubs.GetByID(ctx, clubID); err != nil {
		return nil, err
	}
	if err := s.clubs.AddMember(ctx, clubID, userID); err != nil {
		return nil, err
	}
	s.logger.Debug().Int64("clubID", clubID).Int64("userID", userID).Msg("Joined club")
	return &dto.ClubMembershipResponse{ClubID: clubID, UserID: userID, Member: true}, nil
}

// LeaveClub removes the user from the club
func (s *clubServiceImpl) LeaveClub(ctx context.Context, clubID, userID int64) (*dto.ClubMembershipResponse, error) {
	removed, err := s.clubs.RemoveMember(ctx, clubID, userID)
	if err != nil {
		return nil, err
	}
	if !removed {
		return nil, apperrors.NewResourceNotFoundError("User is not a member of this club")
	}
	s.logger.Debug().Int64("clubID", clubID).Int64("userID", userID).Msg("Left club")
	return &dto.ClubMembershipResponse{ClubID: clubID, UserID: userID, Member: false}, nil
}

func trimmedOrNil(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
