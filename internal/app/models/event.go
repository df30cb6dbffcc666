package models

import "time"

// Event defines the event model based on the 'events' table
type Event struct {
	ID                int64      `json:"id" db:"id"`
	Title             string     `json:"title" db:"title"`
	Description       string     `json:"description" db:"description"`
	ClubID            *int64     `json:"club_id,omitempty" db:"club_id"`
	CreatedBy         int64      `json:"created_by" db:"created_by"`
	EventDate         *time.Time `json:"event_date,omitempty" db:"event_date"`
	RegistrationLimit *int       `json:"registration_limit,omitempty" db:"registration_limit"` // nil means unlimited
	IsTeamEvent       bool       `json:"is_team_event" db:"is_team_event"`
	MinTeamSize       int        `json:"min_team_size" db:"min_team_size"`
	MaxTeamSize       int        `json:"max_team_size" db:"max_team_size"`
	Price             float64    `json:"price" db:"price"`
	CreatedAt         time.Time  `json:"created_at" db:"created_at"`
}

// IsFull reports whether count registrations exhaust the event's capacity
func (e *Event) IsFull(count int) bool {
	return e.RegistrationLimit != nil && count >= *e.RegistrationLimit
}

// InitialPaymentStatus is PENDING for paid events and SUCCESS for free ones
func (e *Event) InitialPaymentStatus() PaymentStatus {
	if e.Price > 0 {
		return PaymentPending
	}
	return PaymentSuccess
}

// AcceptsTeamSize reports whether size is within the event's team bounds
func (e *Event) AcceptsTeamSize(size int) bool {
	return size >= e.MinTeamSize && size <= e.MaxTeamSize
}

// HasValidTeamBounds matches the events table checks. An individual event is a
// team of exactly one; a team event needs at least two members.
func (e *Event) HasValidTeamBounds() bool {
	if !e.IsTeamEvent {
		return e.MinTeamSize == 1 && e.MaxTeamSize == 1
	}
	return e.MinTeamSize >= 2 && e.MaxTeamSize >= e.MinTeamSize
}

// EventSummary is an event listed with its current registration count
type EventSummary struct {
	Event             *Event
	RegistrationCount int
}

// CanManage reports whether the user may post announcements or results
func (e *Event) CanManage(userID int64, role RoleType) bool {
	return e.CreatedBy == userID || role == RoleAdmin
}

// Announcement defines an event announcement based on the 'announcements' table
type Announcement struct {
	ID        int64     `json:"id" db:"id"`
	EventID   int64     `json:"event_id" db:"event_id"`
	Title     string    `json:"title" db:"title"`
	Message   string    `json:"message" db:"message"`
	CreatedBy int64     `json:"created_by" db:"created_by"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// Result defines the outcome of an event. One per event.
type Result struct {
	ID               int64     `json:"id" db:"id"`
	EventID          int64     `json:"event_id" db:"event_id"`
	WinnerID         int64     `json:"winner_id" db:"winner_id"`
	RunnerUpID       *int64    `json:"runner_up_id,omitempty" db:"runner_up_id"`
	CertificationURL *string   `json:"certification_url,omitempty" db:"certification_url"`
	CreatedAt        time.Time `json:"created_at" db:"created_at"`
}
