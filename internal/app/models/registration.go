package models

import "time"

// PaymentStatus of a registration
type PaymentStatus string

const (
	PaymentPending PaymentStatus = "PENDING"
	PaymentSuccess PaymentStatus = "SUCCESS"
	PaymentFailed  PaymentStatus = "FAILED"
)

// Registration belongs to one event and exactly one of an individual user or a team
type Registration struct {
	ID            int64         `json:"id" db:"id"`
	EventID       int64         `json:"event_id" db:"event_id"`
	UserID        *int64        `json:"user_id,omitempty" db:"user_id"`
	TeamID        *int64        `json:"team_id,omitempty" db:"team_id"`
	PaymentStatus PaymentStatus `json:"payment_status" db:"payment_status"`
	CreatedAt     time.Time     `json:"created_at" db:"created_at"`
}

// Team registered for a team event
type Team struct {
	ID        int64         `json:"id" db:"id"`
	EventID   int64         `json:"event_id" db:"event_id"`
	Name      string        `json:"name" db:"name"`
	CreatedAt time.Time     `json:"created_at" db:"created_at"`
	Members   []*TeamMember `json:"members,omitempty"`
}

// TeamMember links a user to a team
type TeamMember struct {
	ID       int64 `json:"id" db:"id"`
	TeamID   int64 `json:"team_id" db:"team_id"`
	UserID   int64 `json:"user_id" db:"user_id"`
	IsLeader bool  `json:"is_leader" db:"is_leader"`
}

// TeamRegistrationParams is the input of the team registration transaction
type TeamRegistrationParams struct {
	EventID       int64
	LeaderID      int64
	TeamName      string
	MemberIDs     []int64 // includes the leader
	PaymentStatus PaymentStatus
}

// TeamRegistration is the outcome of the team registration transaction
type TeamRegistration struct {
	Team         *Team
	Registration *Registration
}

// IndividualRegistrationParams is the input of an individual registration
type IndividualRegistrationParams struct {
	EventID       int64
	UserID        int64
	PaymentStatus PaymentStatus
}

// TeamMemberSet returns leader followed by the distinct member ids, in first-seen order
func TeamMemberSet(leaderID int64, memberIDs []int64) []int64 {
	seen := map[int64]struct{}{leaderID: {}}
	members := []int64{leaderID}
	for _, id := range memberIDs {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		members = append(members, id)
	}
	return members
}
