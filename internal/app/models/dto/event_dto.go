package dto

import (
	"time"

	"github.com/yigit/campushub/internal/app/models"
)

// CreateEventRequest represents a new event. Team sizes are ignored for
// individual events.
type CreateEventRequest struct {
	Title             string     `json:"title" binding:"required,max=200"`
	Description       string     `json:"description"`
	ClubID            *int64     `json:"club_id,omitempty" binding:"omitempty,gt=0"`
	EventDate         *time.Time `json:"event_date,omitempty"`
	RegistrationLimit *int       `json:"registration_limit,omitempty" binding:"omitempty,gte=0"`
	IsTeamEvent       bool       `json:"is_team_event"`
	MinTeamSize       int        `json:"min_team_size" binding:"gte=0"`
	MaxTeamSize       int        `json:"max_team_size" binding:"gte=0"`
	Price             float64    `json:"price" binding:"gte=0"`
}

// EventResponse represents an event and its current registration count
type EventResponse struct {
	ID                int64      `json:"id"`
	Title             string     `json:"title"`
	Description       string     `json:"description"`
	ClubID            *int64     `json:"club_id,omitempty"`
	CreatedBy         int64      `json:"created_by"`
	EventDate         *time.Time `json:"event_date,omitempty"`
	RegistrationLimit *int       `json:"registration_limit,omitempty"`
	IsTeamEvent       bool       `json:"is_team_event"`
	MinTeamSize       int        `json:"min_team_size"`
	MaxTeamSize       int        `json:"max_team_size"`
	Price             float64    `json:"price"`
	RegistrationCount int        `json:"registration_count"`
	CreatedAt         time.Time  `json:"created_at"`
}

// CreateAnnouncementRequest represents an event announcement
type CreateAnnouncementRequest struct {
	Title   string `json:"title" binding:"required,max=200"`
	Message string `json:"message" binding:"required"`
}

// CreateResultRequest represents the outcome of an event
type CreateResultRequest struct {
	WinnerID         int64   `json:"winner_id" binding:"required,gt=0"`
	RunnerUpID       *int64  `json:"runner_up_id,omitempty" binding:"omitempty,gt=0"`
	CertificationURL *string `json:"certification_url,omitempty" binding:"omitempty,url"`
}

// AnnouncementResponse represents a stored announcement and its fan-out size
type AnnouncementResponse struct {
	ID         int64     `json:"id"`
	EventID    int64     `json:"event_id"`
	Title      string    `json:"title"`
	Message    string    `json:"message"`
	CreatedBy  int64     `json:"created_by"`
	CreatedAt  time.Time `json:"created_at"`
	Recipients int       `json:"recipients"`
}

// ResultResponse represents a stored event result
type ResultResponse struct {
	ID               int64     `json:"id"`
	EventID          int64     `json:"event_id"`
	WinnerID         int64     `json:"winner_id"`
	RunnerUpID       *int64    `json:"runner_up_id,omitempty"`
	CertificationURL *string   `json:"certification_url,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
}

// NewAnnouncementResponse converts an announcement model
func NewAnnouncementResponse(a *models.Announcement, recipients int) *AnnouncementResponse {
	return &AnnouncementResponse{
		ID:         a.ID,
		EventID:    a.EventID,
		Title:      a.Title,
		Message:    a.Message,
		CreatedBy:  a.CreatedBy,
		CreatedAt:  a.CreatedAt,
		Recipients: recipients,
	}
}

// NewResultResponse converts a result model
func NewResultResponse(r *models.Result) *ResultResponse {
	return &ResultResponse{
		ID:               r.ID,
		EventID:          r.EventID,
		WinnerID:         r.WinnerID,
		RunnerUpID:       r.RunnerUpID,
		CertificationURL: r.CertificationURL,
		CreatedAt:        r.CreatedAt,
	}
}

// NewEventResponse converts an event model
func NewEventResponse(e *models.Event, registrations int) *EventResponse {
	return &EventResponse{
		ID:                e.ID,
		Title:             e.Title,
		Description:       e.Description,
		ClubID:            e.ClubID,
		CreatedBy:         e.CreatedBy,
		EventDate:         e.EventDate,
		RegistrationLimit: e.RegistrationLimit,
		IsTeamEvent:       e.IsTeamEvent,
		MinTeamSize:       e.MinTeamSize,
		MaxTeamSize:       e.MaxTeamSize,
		Price:             e.Price,
		RegistrationCount: registrations,
		CreatedAt:         e.CreatedAt,
	}
}
