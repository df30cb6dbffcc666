package models

import "time"

// Club defines the club model based on the 'clubs' table. MemberCount and
// EventCount are computed when listing.
type Club struct {
	ID          int64     `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Description *string   `json:"description,omitempty" db:"description"`
	OrganizerID int64     `json:"organizer_id" db:"organizer_id"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	MemberCount int       `json:"member_count" db:"-"`
	EventCount  int       `json:"event_count" db:"-"`
}

// CanPublish reports whether the user may create events under the club
func (c *Club) CanPublish(userID int64, role RoleType) bool {
	return c.OrganizerID == userID || role == RoleAdmin
}
