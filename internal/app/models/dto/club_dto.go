package dto

import (
	"time"

	"github.com/yigit/campushub/internal/app/models"
)

// CreateClubRequest represents a new club and the organizer who runs it
type CreateClubRequest struct {
	Name        string  `json:"name" binding:"required,max=150"`
	Description *string `json:"description,omitempty"`
	OrganizerID int64   `json:"organizer_id" binding:"required,gt=0"`
}

// ClubResponse represents a club with its member and event counts
type ClubResponse struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	OrganizerID int64     `json:"organizer_id"`
	MemberCount int       `json:"member_count"`
	EventCount  int       `json:"event_count"`
	CreatedAt   time.Time `json:"created_at"`
}

// ClubMembershipResponse reports the caller's membership after a join or leave
type ClubMembershipResponse struct {
	ClubID int64 `json:"club_id"`
	UserID int64 `json:"user_id"`
	Member bool  `json:"member"`
}

// NewClubResponse converts a club model
func NewClubResponse(c *models.Club) *ClubResponse {
	return &ClubResponse{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		OrganizerID: c.OrganizerID,
		MemberCount: c.MemberCount,
		EventCount:  c.EventCount,
		CreatedAt:   c.CreatedAt,
	}
}
