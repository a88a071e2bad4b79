package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	NotificationTypeBookingRequest     = "booking_request"
	NotificationTypeBookingRequestSent = "booking_request_sent"
	NotificationTypeBookingAccepted    = "booking_accepted"
	NotificationTypeBookingDeclined    = "booking_declined"
	NotificationTypeBookingCancelled   = "booking_cancelled"
	NotificationTypeBookingCompleted   = "booking_completed"
	NotificationTypeBookingReminder    = "booking_reminder"
)

// Notification is write-once; only ReadAt changes afterwards.
type Notification struct {
	ID        uuid.UUID  `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	UserID    uuid.UUID  `gorm:"type:uuid;not null;index" json:"user_id"`
	Type      string     `gorm:"size:64;not null" json:"type"`
	Title     string     `gorm:"size:255;not null" json:"title"`
	Body      *string    `gorm:"type:text" json:"body"`
	Link      *string    `gorm:"size:512" json:"link"`
	ReadAt    *time.Time `json:"read_at"`
	CreatedAt time.Time  `json:"created_at"`
}

func (n *Notification) Unread() bool {
	return n.ReadAt == nil
}

type NotificationFilter struct {
	UnreadOnly bool
	Type       string
	Limit      int
	Offset     int
}

// UnreadSummary is one row of the per-user unread aggregate used by the digest job.
type UnreadSummary struct {
	UserID uuid.UUID
	Count  int64
}

const (
	EventNotificationCreated = "notification.created"
	EventNotificationRead    = "notification.read"
)

// RealtimeEvent is pushed to the user's websocket connections.
type RealtimeEvent struct {
	Type         string        `json:"type"`
	Notification *Notification `json:"notification,omitempty"`
	UnreadCount  int64         `json:"unread_count"`
}
