package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidCaption(t *testing.T) {
	assert.True(t, ValidCaption(""))
	assert.True(t, ValidCaption(strings.Repeat("a", 500)))
	assert.False(t, ValidCaption(strings.Repeat("a", 501)))
	// multi-byte characters count once
	assert.True(t, ValidCaption(strings.Repeat("ş", 500)))
}

func TestValidComment(t *testing.T) {
	assert.False(t, ValidComment(""))
	assert.False(t, ValidComment("   "))
	assert.True(t, ValidComment("nice"))
	assert.True(t, ValidComment(strings.Repeat("b", 1000)))
	assert.False(t, ValidComment(strings.Repeat("b", 1001)))
}

func TestValidTeamName(t *testing.T) {
	assert.True(t, ValidTeamName("Byte Me"))
	assert.False(t, ValidTeamName(""))
	assert.False(t, ValidTeamName("bad\x01name"))
	assert.False(t, ValidTeamName(strings.Repeat("x", 101)))
}

func TestOptionalStringValidation(t *testing.T) {
	assert.True(t, NewStringValidation("").WithRequired(false).WithMinLength(3).Validate())
	assert.False(t, NewStringValidation("ab").WithRequired(false).WithMinLength(3).Validate())
}

func TestValidClubName(t *testing.T) {
	assert.True(t, ValidClubName("Robotics Society"))
	assert.False(t, ValidClubName("  "))
	assert.False(t, ValidClubName("tab\tname"))
	assert.True(t, ValidClubName(strings.Repeat("k", 150)))
	assert.False(t, ValidClubName(strings.Repeat("k", 151)))
}

func TestValidEventTitle(t *testing.T) {
	assert.True(t, ValidEventTitle("Spring Hackathon"))
	assert.False(t, ValidEventTitle(""))
	assert.False(t, ValidEventTitle(strings.Repeat("e", 201)))
}
