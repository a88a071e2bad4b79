package models

import (
	"time"

	"github.com/google/uuid"
)

type BookingStatus string

const (
	BookingStatusRequested BookingStatus = "requested"
	BookingStatusAccepted  BookingStatus = "accepted"
	BookingStatusDeclined  BookingStatus = "declined"
	BookingStatusCancelled BookingStatus = "cancelled"
	BookingStatusCompleted BookingStatus = "completed"
)

// Terminal reports whether no action can move the booking out of this status.
func (s BookingStatus) Terminal() bool {
	switch s {
	case BookingStatusDeclined, BookingStatusCancelled, BookingStatusCompleted:
		return true
	}
	return false
}

func (s BookingStatus) Valid() bool {
	switch s {
	case BookingStatusRequested, BookingStatusAccepted, BookingStatusDeclined,
		BookingStatusCancelled, BookingStatusCompleted:
		return true
	}
	return false
}

// BookingAction is the closed set of transitions a participant can request.
type BookingAction int

const (
	BookingActionAccept BookingAction = iota + 1
	BookingActionDecline
	BookingActionCancel
	BookingActionComplete
)

// ParseBookingAction maps a wire token to an action. Unknown tokens return false.
func ParseBookingAction(token string) (BookingAction, bool) {
	switch token {
	case "accept":
		return BookingActionAccept, true
	case "decline":
		return BookingActionDecline, true
	case "cancel":
		return BookingActionCancel, true
	case "complete":
		return BookingActionComplete, true
	}
	return 0, false
}

func (a BookingAction) String() string {
	switch a {
	case BookingActionAccept:
		return "accept"
	case BookingActionDecline:
		return "decline"
	case BookingActionCancel:
		return "cancel"
	case BookingActionComplete:
		return "complete"
	}
	return "unknown"
}

// ParticipantRole is the caller's relationship to a booking.
type ParticipantRole string

const (
	ParticipantMentor ParticipantRole = "mentor"
	ParticipantMentee ParticipantRole = "mentee"
)

type Booking struct {
	ID         uuid.UUID     `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	MentorID   uuid.UUID     `gorm:"type:uuid;not null;index" json:"mentor_id"`
	MenteeID   uuid.UUID     `gorm:"type:uuid;not null;index" json:"mentee_id"`
	Message    *string       `gorm:"type:text" json:"message"`
	Status     BookingStatus `gorm:"size:20;not null;default:'requested'" json:"status"`
	RemindedAt *time.Time    `json:"-"`

	Mentor *Mentor `gorm:"foreignkey:MentorID" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Booking) TableName() string {
	return "mentor_bookings"
}

// RoleOf resolves the caller's relationship through the mentor's owning account.
// The mentor must be loaded.
func (b *Booking) RoleOf(userID uuid.UUID) (ParticipantRole, bool) {
	if b.Mentor != nil && b.Mentor.UserID == userID {
		return ParticipantMentor, true
	}
	if b.MenteeID == userID {
		return ParticipantMentee, true
	}
	return "", false
}

// BookingFilter narrows ListForUser. Zero values mean "any".
type BookingFilter struct {
	UserID uuid.UUID
	Role   ParticipantRole
	Status BookingStatus
	Limit  int
	Offset int
}
