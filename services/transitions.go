package services

import "github.com/anjiri1684/mentorship/models"

// NextStatus reports the status a booking moves to when role performs action on a
// booking in status from. Anything not listed here is refused.
//
//	accept   mentor         requested          -> accepted
//	decline  mentor         requested|accepted -> declined
//	cancel   mentor|mentee  requested|accepted -> cancelled
//	complete mentor         accepted           -> completed
func NextStatus(action models.BookingAction, from models.BookingStatus, role models.ParticipantRole) (models.BookingStatus, bool) {
	pending := from == models.BookingStatusRequested || from == models.BookingStatusAccepted
	mentor := role == models.ParticipantMentor

	switch action {
	case models.BookingActionAccept:
		if mentor && from == models.BookingStatusRequested {
			return models.BookingStatusAccepted, true
		}
	case models.BookingActionDecline:
		if mentor && pending {
			return models.BookingStatusDeclined, true
		}
	case models.BookingActionCancel:
		if (mentor || role == models.ParticipantMentee) && pending {
			return models.BookingStatusCancelled, true
		}
	case models.BookingActionComplete:
		if mentor && from == models.BookingStatusAccepted {
			return models.BookingStatusCompleted, true
		}
	}
	return "", false
}

var allActions = []models.BookingAction{
	models.BookingActionAccept,
	models.BookingActionDecline,
	models.BookingActionCancel,
	models.BookingActionComplete,
}

// AllowedActions lists the actions role may take on a booking in status from.
func AllowedActions(from models.BookingStatus, role models.ParticipantRole) []string {
	out := []string{}
	for _, action := range allActions {
		if _, ok := NextStatus(action, from, role); ok {
			out = append(out, action.String())
		}
	}
	return out
}

type transitionCopy struct {
	notificationType string
	title            string
	body             string
}

// copyFor builds the notification sent to the party that did not act.
func copyFor(action models.BookingAction, actor string) transitionCopy {
	switch action {
	case models.BookingActionAccept:
		return transitionCopy{models.NotificationTypeBookingAccepted, "Mentorship request accepted",
			actor + " accepted your mentorship request."}
	case models.BookingActionDecline:
		return transitionCopy{models.NotificationTypeBookingDeclined, "Mentorship request declined",
			actor + " declined your mentorship request."}
	case models.BookingActionCancel:
		return transitionCopy{models.NotificationTypeBookingCancelled, "Mentorship booking cancelled",
			actor + " cancelled your mentorship booking."}
	case models.BookingActionComplete:
		return transitionCopy{models.NotificationTypeBookingCompleted, "Mentorship session completed",
			actor + " marked your mentorship session as completed."}
	}
	panic("unhandled booking action " + action.String())
}
