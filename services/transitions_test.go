package services

import (
	"testing"

	"github.com/anjiri1684/mentorship/models"
	"github.com/stretchr/testify/assert"
)

func TestNextStatusMatchesTable(t *testing.T) {
	type key struct {
		action models.BookingAction
		from   models.BookingStatus
		role   models.ParticipantRole
	}
	allowed := map[key]models.BookingStatus{
		{models.BookingActionAccept, models.BookingStatusRequested, models.ParticipantMentor}:   models.BookingStatusAccepted,
		{models.BookingActionDecline, models.BookingStatusRequested, models.ParticipantMentor}:  models.BookingStatusDeclined,
		{models.BookingActionDecline, models.BookingStatusAccepted, models.ParticipantMentor}:   models.BookingStatusDeclined,
		{models.BookingActionCancel, models.BookingStatusRequested, models.ParticipantMentor}:   models.BookingStatusCancelled,
		{models.BookingActionCancel, models.BookingStatusAccepted, models.ParticipantMentor}:    models.BookingStatusCancelled,
		{models.BookingActionCancel, models.BookingStatusRequested, models.ParticipantMentee}:   models.BookingStatusCancelled,
		{models.BookingActionCancel, models.BookingStatusAccepted, models.ParticipantMentee}:    models.BookingStatusCancelled,
		{models.BookingActionComplete, models.BookingStatusAccepted, models.ParticipantMentor}:  models.BookingStatusCompleted,
	}

	statuses := []models.BookingStatus{
		models.BookingStatusRequested, models.BookingStatusAccepted, models.BookingStatusDeclined,
		models.BookingStatusCancelled, models.BookingStatusCompleted,
	}
	roles := []models.ParticipantRole{models.ParticipantMentor, models.ParticipantMentee, ""}

	for _, action := range allActions {
		for _, from := range statuses {
			for _, role := range roles {
				next, ok := NextStatus(action, from, role)
				want, allowedHere := allowed[key{action, from, role}]
				assert.Equal(t, allowedHere, ok, "%s from %s as %q", action, from, role)
				if allowedHere {
					assert.Equal(t, want, next, "%s from %s as %q", action, from, role)
				}
			}
		}
	}
}

func TestTerminalStatusesAllowNothing(t *testing.T) {
	for _, status := range []models.BookingStatus{models.BookingStatusDeclined, models.BookingStatusCancelled, models.BookingStatusCompleted} {
		assert.True(t, status.Terminal())
		assert.Empty(t, AllowedActions(status, models.ParticipantMentor))
		assert.Empty(t, AllowedActions(status, models.ParticipantMentee))
	}
}

func TestAllowedActions(t *testing.T) {
	assert.Equal(t, []string{"accept", "decline", "cancel"}, AllowedActions(models.BookingStatusRequested, models.ParticipantMentor))
	assert.Equal(t, []string{"cancel"}, AllowedActions(models.BookingStatusRequested, models.ParticipantMentee))
	assert.Equal(t, []string{"decline", "cancel", "complete"}, AllowedActions(models.BookingStatusAccepted, models.ParticipantMentor))
}

func TestParseBookingAction(t *testing.T) {
	for _, action := range allActions {
		parsed, ok := models.ParseBookingAction(action.String())
		assert.True(t, ok)
		assert.Equal(t, action, parsed)
	}
	_, ok := models.ParseBookingAction("ACCEPT")
	assert.False(t, ok)
	_, ok = models.ParseBookingAction("reopen")
	assert.False(t, ok)
}
