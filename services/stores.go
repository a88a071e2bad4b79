package services

import (
	"context"
	"time"

	"github.com/anjiri1684/mentorship/models"
	"github.com/google/uuid"
)

// The store interfaces are satisfied by both database (postgres) and database/memstore.

type BookingStore interface {
	Create(ctx context.Context, booking *models.Booking) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Booking, error)
	ListForUser(ctx context.Context, filter models.BookingFilter) ([]models.Booking, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, from, to models.BookingStatus) (*models.Booking, error)
	ListStaleRequests(ctx context.Context, olderThan time.Time) ([]models.Booking, error)
	MarkReminded(ctx context.Context, id uuid.UUID, at time.Time) error
}

type MentorStore interface {
	Create(ctx context.Context, mentor *models.Mentor) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Mentor, error)
	FindByUserID(ctx context.Context, userID uuid.UUID) (*models.Mentor, error)
	ListActive(ctx context.Context, limit, offset int) ([]models.Mentor, error)
}

type NotificationStore interface {
	Create(ctx context.Context, notification *models.Notification) error
	ListForUser(ctx context.Context, userID uuid.UUID, filter models.NotificationFilter) ([]models.Notification, error)
	CountUnread(ctx context.Context, userID uuid.UUID) (int64, error)
	MarkRead(ctx context.Context, userID, id uuid.UUID, at time.Time) error
	MarkAllRead(ctx context.Context, userID uuid.UUID, at time.Time) (int64, error)
	UnreadSummaries(ctx context.Context) ([]models.UnreadSummary, error)
}

type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	AddXP(ctx context.Context, id uuid.UUID, xp int) error
	Leaderboard(ctx context.Context, limit int) ([]models.LeaderboardEntry, error)
}
