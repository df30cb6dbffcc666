package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func intPtr(v int) *int { return &v }

func TestTeamMemberSetCollapsesDuplicates(t *testing.T) {
	assert.Equal(t, []int64{1, 2, 3}, TeamMemberSet(1, []int64{2, 1, 3, 2}))
	assert.Equal(t, []int64{5}, TeamMemberSet(5, nil))
}

func TestEventCapacityAndPayment(t *testing.T) {
	event := &Event{RegistrationLimit: intPtr(1)}
	assert.False(t, event.IsFull(0))
	assert.True(t, event.IsFull(1))
	assert.True(t, event.IsFull(2))

	unlimited := &Event{}
	assert.False(t, unlimited.IsFull(10_000))

	assert.Equal(t, PaymentSuccess, (&Event{Price: 0}).InitialPaymentStatus())
	assert.Equal(t, PaymentPending, (&Event{Price: 12.5}).InitialPaymentStatus())
}

func TestEventTeamSizeBounds(t *testing.T) {
	event := &Event{IsTeamEvent: true, MinTeamSize: 2, MaxTeamSize: 3}
	assert.False(t, event.AcceptsTeamSize(1))
	assert.True(t, event.AcceptsTeamSize(2))
	assert.True(t, event.AcceptsTeamSize(3))
	assert.False(t, event.AcceptsTeamSize(4))
}

func TestEventCanManage(t *testing.T) {
	event := &Event{CreatedBy: 10}
	assert.True(t, event.CanManage(10, RoleOrganizer))
	assert.True(t, event.CanManage(99, RoleAdmin))
	assert.False(t, event.CanManage(99, RoleOrganizer))
}

func TestEventTeamBounds(t *testing.T) {
	assert.True(t, (&Event{MinTeamSize: 1, MaxTeamSize: 1}).HasValidTeamBounds())
	assert.False(t, (&Event{MinTeamSize: 1, MaxTeamSize: 3}).HasValidTeamBounds())
	assert.True(t, (&Event{IsTeamEvent: true, MinTeamSize: 2, MaxTeamSize: 4}).HasValidTeamBounds())
	assert.False(t, (&Event{IsTeamEvent: true, MinTeamSize: 1, MaxTeamSize: 4}).HasValidTeamBounds())
	assert.False(t, (&Event{IsTeamEvent: true, MinTeamSize: 3, MaxTeamSize: 2}).HasValidTeamBounds())
}

func TestClubCanPublish(t *testing.T) {
	club := &Club{OrganizerID: 4}
	assert.True(t, club.CanPublish(4, RoleOrganizer))
	assert.True(t, club.CanPublish(9, RoleAdmin))
	assert.False(t, club.CanPublish(9, RoleOrganizer))
}

func TestFeedQueryIncludesViewerOnce(t *testing.T) {
	q := NewFeedQuery(1, []int64{2, 1}, 20)
	assert.Equal(t, int64(1), q.ViewerID)
	assert.Equal(t, []int64{1, 2}, q.AuthorIDs)
	assert.Equal(t, 20, q.Limit)

	q = NewFeedQuery(5, nil, 10)
	assert.Equal(t, []int64{5}, q.AuthorIDs)
}

func TestEnumValidation(t *testing.T) {
	assert.True(t, VisibilityClubMembers.IsValid())
	assert.False(t, PostVisibility("FRIENDS").IsValid())
	assert.True(t, NotificationEventReminder.IsValid())
	assert.False(t, NotificationType("NEW_POKE").IsValid())
	assert.True(t, RoleOrganizer.IsValid())
	assert.False(t, RoleType("INSTRUCTOR").IsValid())
}
