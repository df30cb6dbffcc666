package dto

import (
	"time"

	"github.com/yigit/campushub/internal/app/models"
)

// RegisterTeamRequest represents a team registration. The caller is the leader
// and is added to the member set automatically.
type RegisterTeamRequest struct {
	TeamName      string  `json:"team_name" binding:"required"`
	MemberUserIDs []int64 `json:"member_user_ids" binding:"omitempty,dive,gt=0"`
}

// RegistrationResponse represents a stored registration
type RegistrationResponse struct {
	ID            int64                `json:"id"`
	EventID       int64                `json:"event_id"`
	UserID        *int64               `json:"user_id,omitempty"`
	TeamID        *int64               `json:"team_id,omitempty"`
	PaymentStatus models.PaymentStatus `json:"payment_status"`
	CreatedAt     time.Time            `json:"created_at"`
}

// TeamRegistrationResponse represents a registered team and its registration
type TeamRegistrationResponse struct {
	TeamID       int64                 `json:"team_id"`
	TeamName     string                `json:"team_name"`
	MemberIDs    []int64               `json:"member_ids"`
	Registration *RegistrationResponse `json:"registration"`
}

// NewRegistrationResponse converts a registration model
func NewRegistrationResponse(r *models.Registration) *RegistrationResponse {
	return &RegistrationResponse{
		ID:            r.ID,
		EventID:       r.EventID,
		UserID:        r.UserID,
		TeamID:        r.TeamID,
		PaymentStatus: r.PaymentStatus,
		CreatedAt:     r.CreatedAt,
	}
}

// NewTeamRegistrationResponse converts the outcome of a team registration
func NewTeamRegistrationResponse(tr *models.TeamRegistration) *TeamRegistrationResponse {
	memberIDs := make([]int64, 0, len(tr.Team.Members))
	for _, m := range tr.Team.Members {
		memberIDs = append(memberIDs, m.UserID)
	}
	return &TeamRegistrationResponse{
		TeamID:       tr.Team.ID,
		TeamName:     tr.Team.Name,
		MemberIDs:    memberIDs,
		Registration: NewRegistrationResponse(tr.Registration),
	}
}
