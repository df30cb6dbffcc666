package models

// RoleType defines the user role type
type RoleType string

const (
	RoleStudent   RoleType = "STUDENT"
	RoleOrganizer RoleType = "ORGANIZER"
	RoleAdmin     RoleType = "ADMIN"
)

// IsValid reports whether the role is one of the known roles
func (r RoleType) IsValid() bool {
	switch r {
	case RoleStudent, RoleOrganizer, RoleAdmin:
		return true
	}
	return false
}

// UnknownUserName is shown wherever a referenced user no longer exists.
const UnknownUserName = "Unknown User"
