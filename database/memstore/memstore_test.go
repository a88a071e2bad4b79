package memstore

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/anjiri1684/mentorship/database"
	"github.com/anjiri1684/mentorship/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seed(t *testing.T) (*Stores, *models.Mentor, uuid.UUID) {
	t.Helper()
	s := New()
	ctx := context.Background()
	owner := &models.User{FullName: "Grace", Email: "grace@example.com"}
	require.NoError(t, s.Users.Create(ctx, owner))
	mentor := &models.Mentor{UserID: owner.ID, Headline: "Compilers"}
	require.NoError(t, s.Mentors.Create(ctx, mentor))
	return s, mentor, uuid.New()
}

func TestGuardedStatusUpdate(t *testing.T) {
	s, mentor, mentee := seed(t)
	ctx := context.Background()

	booking := &models.Booking{MentorID: mentor.ID, MenteeID: mentee, Status: models.BookingStatusRequested}
	require.NoError(t, s.Bookings.Create(ctx, booking))

	updated, err := s.Bookings.UpdateStatus(ctx, booking.ID, models.BookingStatusRequested, models.BookingStatusAccepted)
	require.NoError(t, err)
	assert.Equal(t, models.BookingStatusAccepted, updated.Status)
	require.NotNil(t, updated.Mentor)
	assert.Equal(t, mentor.UserID, updated.Mentor.UserID)

	_, err = s.Bookings.UpdateStatus(ctx, booking.ID, models.BookingStatusRequested, models.BookingStatusDeclined)
	assert.True(t, errors.Is(err, database.ErrStaleBooking))
}

func TestCreateBookingForUnknownMentor(t *testing.T) {
	s, _, mentee := seed(t)
	err := s.Bookings.Create(context.Background(), &models.Booking{MentorID: uuid.New(), MenteeID: mentee})
	assert.True(t, errors.Is(err, database.ErrNotFound))
}

func TestListForUserByRole(t *testing.T) {
	s, mentor, mentee := seed(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		require.NoError(t, s.Bookings.Create(ctx, &models.Booking{MentorID: mentor.ID, MenteeID: mentee, Status: models.BookingStatusRequested}))
	}

	asMentor, err := s.Bookings.ListForUser(ctx, models.BookingFilter{UserID: mentor.UserID, Role: models.ParticipantMentor})
	require.NoError(t, err)
	assert.Len(t, asMentor, 3)

	page, err := s.Bookings.ListForUser(ctx, models.BookingFilter{UserID: mentee, Limit: 2, Offset: 2})
	require.NoError(t, err)
	assert.Len(t, page, 1)

	none, err := s.Bookings.ListForUser(ctx, models.BookingFilter{UserID: mentee, Role: models.ParticipantMentor})
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestUniqueConstraints(t *testing.T) {
	s, mentor, _ := seed(t)
	ctx := context.Background()

	err := s.Users.Create(ctx, &models.User{FullName: "Other", Email: "GRACE@example.com"})
	assert.True(t, errors.Is(err, database.ErrDuplicate))

	err = s.Mentors.Create(ctx, &models.Mentor{UserID: mentor.UserID, Headline: "Again"})
	assert.True(t, errors.Is(err, database.ErrDuplicate))
}

func TestMarkReadKeepsFirstTimestamp(t *testing.T) {
	s, _, user := seed(t)
	ctx := context.Background()

	n := &models.Notification{UserID: user, Type: "t", Title: "hello"}
	require.NoError(t, s.Notifications.Create(ctx, n))

	first := time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC)
	require.NoError(t, s.Notifications.MarkRead(ctx, user, n.ID, first))
	require.NoError(t, s.Notifications.MarkRead(ctx, user, n.ID, first.Add(time.Hour)))

	list, err := s.Notifications.ListForUser(ctx, user, models.NotificationFilter{})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, first, *list[0].ReadAt)

	err = s.Notifications.MarkRead(ctx, uuid.New(), n.ID, first)
	assert.True(t, errors.Is(err, database.ErrNotFound))

	summaries, err := s.Notifications.UnreadSummaries(ctx)
	require.NoError(t, err)
	assert.Empty(t, summaries)
}
