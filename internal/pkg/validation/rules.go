package validation

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// Validation limits, measured in characters
var (
	CaptionMaxLength = 500

	CommentMinLength = 1
	CommentMaxLength = 1000

	TeamNameMinLength = 1
	TeamNameMaxLength = 100

	AnnouncementTitleMaxLength = 200

	EventTitleMaxLength = 200
	ClubNameMaxLength   = 150
)

// CompiledPatterns caches compiled regex patterns
var CompiledPatterns = struct {
	TeamName    *regexp.Regexp
	DisplayName *regexp.Regexp
}{
	// printable text without control characters
	TeamName:    regexp.MustCompile(`^[^\x00-\x1f\x7f]+$`),
	DisplayName: regexp.MustCompile(`^[^\x00-\x1f\x7f]+$`),
}

// StringValidation checks one string value. Lengths count runes, not bytes.
type StringValidation struct {
	Value    string
	MinLen   int
	MaxLen   int
	Required bool
	Pattern  *regexp.Regexp
}

// NewStringValidation creates a new string validation. Surrounding whitespace is ignored.
func NewStringValidation(value string) *StringValidation {
	return &StringValidation{
		Value:    strings.TrimSpace(value),
		Required: true,
	}
}

// WithMinLength sets minimum length
func (v *StringValidation) WithMinLength(min int) *StringValidation {
	v.MinLen = min
	return v
}

// WithMaxLength sets maximum length
func (v *StringValidation) WithMaxLength(max int) *StringValidation {
	v.MaxLen = max
	return v
}

// WithPattern sets regex pattern
func (v *StringValidation) WithPattern(pattern *regexp.Regexp) *StringValidation {
	v.Pattern = pattern
	return v
}

// WithRequired sets if field is required
func (v *StringValidation) WithRequired(required bool) *StringValidation {
	v.Required = required
	return v
}

// Validate performs validation
func (v *StringValidation) Validate() bool {
	if v.Value == "" {
		return !v.Required
	}

	length := utf8.RuneCountInString(v.Value)
	if v.MinLen > 0 && length < v.MinLen {
		return false
	}
	if v.MaxLen > 0 && length > v.MaxLen {
		return false
	}

	if v.Pattern != nil && !v.Pattern.MatchString(v.Value) {
		return false
	}
	return true
}

// ValidCaption reports whether a post caption is acceptable. Captions are optional.
func ValidCaption(caption string) bool {
	return NewStringValidation(caption).
		WithRequired(false).
		WithMaxLength(CaptionMaxLength).
		Validate()
}

// ValidComment reports whether a comment text is acceptable
func ValidComment(text string) bool {
	return NewStringValidation(text).
		WithMinLength(CommentMinLength).
		WithMaxLength(CommentMaxLength).
		Validate()
}

// ValidTeamName reports whether a team name is acceptable
func ValidTeamName(name string) bool {
	return NewStringValidation(name).
		WithMinLength(TeamNameMinLength).
		WithMaxLength(TeamNameMaxLength).
		WithPattern(CompiledPatterns.TeamName).
		Validate()
}

// ValidClubName reports whether a club name is acceptable
func ValidClubName(name string) bool {
	return NewStringValidation(name).
		WithMaxLength(ClubNameMaxLength).
		WithPattern(CompiledPatterns.DisplayName).
		Validate()
}

// ValidEventTitle reports whether an event title is acceptable
func ValidEventTitle(title string) bool {
	return NewStringValidation(title).
		WithMaxLength(EventTitleMaxLength).
		WithPattern(CompiledPatterns.DisplayName).
		Validate()
}
