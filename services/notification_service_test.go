package services

import (
	"context"
	"testing"

	"github.com/anjiri1684/mentorship/auth"
	"github.com/anjiri1684/mentorship/models"
	"github.com/anjiri1684/mentorship/notifications"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newNotificationService(f *fixture, mailer notifications.Mailer) (*NotificationService, *recordingPublisher) {
	pub := &recordingPublisher{}
	return NewNotificationService(f.stores.Notifications, f.stores.Users, pub, mailer, "https://app.example.com", zap.NewNop()), pub
}

func (f *fixture) dispatch(t *testing.T, svc *NotificationService, userID uuid.UUID, notificationType string) *models.Notification {
	t.Helper()
	n, err := svc.Dispatch(context.Background(), NotificationInput{UserID: userID, Type: notificationType, Title: "Hello"})
	require.NoError(t, err)
	return n
}

func TestDispatchStoresAndPublishes(t *testing.T) {
	f := newFixture(t)
	svc, pub := newNotificationService(f, nil)

	body := "Ada requested a session."
	n, err := svc.Dispatch(context.Background(), NotificationInput{
		UserID: f.mentorUser.ID,
		Type:   models.NotificationTypeBookingRequest,
		Title:  "New mentorship request",
		Body:   &body,
	})
	require.NoError(t, err)
	assert.True(t, n.Unread())
	assert.False(t, n.CreatedAt.IsZero())

	events := pub.For(f.mentorUser.ID)
	require.Len(t, events, 1)
	assert.Equal(t, models.EventNotificationCreated, events[0].Type)
	assert.Equal(t, int64(1), events[0].UnreadCount)
	assert.Equal(t, n.ID, events[0].Notification.ID)
}

func TestDispatchValidation(t *testing.T) {
	f := newFixture(t)
	svc, pub := newNotificationService(f, nil)
	ctx := context.Background()

	_, err := svc.Dispatch(ctx, NotificationInput{Type: "x", Title: "y"})
	requireKind(t, err, KindValidation)

	_, err = svc.Dispatch(ctx, NotificationInput{UserID: f.menteeUser.ID, Type: "x"})
	svcErr := requireKind(t, err, KindValidation)
	assert.Equal(t, "title is required", svcErr.Message)

	assert.Empty(t, pub.For(f.menteeUser.ID))
}

func TestDispatchForwardsBookingRequestsByEmail(t *testing.T) {
	f := newFixture(t)
	mailer := &recordingMailer{}
	svc, _ := newNotificationService(f, mailer)

	f.dispatch(t, svc, f.mentorUser.ID, models.NotificationTypeBookingRequest)
	f.dispatch(t, svc, f.menteeUser.ID, models.NotificationTypeBookingRequestSent)
	svc.Wait()

	sent := mailer.Sent()
	require.Len(t, sent, 1)
	assert.Equal(t, "grace@example.com", sent[0].ToEmail)
	assert.Equal(t, "Hello", sent[0].Subject)
}

func TestDispatchSucceedsWhenEmailFails(t *testing.T) {
	f := newFixture(t)
	mailer := &recordingMailer{err: errDispatchDown}
	svc, _ := newNotificationService(f, mailer)

	n := f.dispatch(t, svc, f.mentorUser.ID, models.NotificationTypeBookingRequest)
	svc.Wait()
	assert.NotNil(t, n)
	assert.Len(t, mailer.Sent(), 1)
}

func TestMarkReadIsIdempotent(t *testing.T) {
	f := newFixture(t)
	svc, pub := newNotificationService(f, nil)
	ctx := context.Background()
	n := f.dispatch(t, svc, f.menteeUser.ID, models.NotificationTypeBookingAccepted)

	require.NoError(t, svc.MarkRead(ctx, f.menteeID(), n.ID))
	first, err := svc.List(ctx, f.menteeID(), models.NotificationFilter{})
	require.NoError(t, err)
	require.Len(t, first, 1)
	require.NotNil(t, first[0].ReadAt)
	readAt := *first[0].ReadAt

	require.NoError(t, svc.MarkRead(ctx, f.menteeID(), n.ID))
	second, err := svc.List(ctx, f.menteeID(), models.NotificationFilter{})
	require.NoError(t, err)
	assert.Equal(t, readAt, *second[0].ReadAt)

	count, err := svc.UnreadCount(ctx, f.menteeID())
	require.NoError(t, err)
	assert.Zero(t, count)

	events := pub.For(f.menteeUser.ID)
	require.Len(t, events, 3)
	assert.Equal(t, models.EventNotificationRead, events[2].Type)
	assert.Zero(t, events[2].UnreadCount)
}

func TestMarkReadOfAnotherUsersNotification(t *testing.T) {
	f := newFixture(t)
	svc, _ := newNotificationService(f, nil)
	n := f.dispatch(t, svc, f.menteeUser.ID, models.NotificationTypeBookingAccepted)

	err := svc.MarkRead(context.Background(), f.mentorID(), n.ID)
	requireKind(t, err, KindNotFound)

	count, err := svc.UnreadCount(context.Background(), f.menteeID())
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestListFiltersAndMarkAllRead(t *testing.T) {
	f := newFixture(t)
	svc, _ := newNotificationService(f, nil)
	ctx := context.Background()

	first := f.dispatch(t, svc, f.menteeUser.ID, models.NotificationTypeBookingAccepted)
	f.dispatch(t, svc, f.menteeUser.ID, models.NotificationTypeBookingCancelled)
	f.dispatch(t, svc, f.menteeUser.ID, models.NotificationTypeBookingCancelled)
	f.dispatch(t, svc, f.mentorUser.ID, models.NotificationTypeBookingRequest)
	require.NoError(t, svc.MarkRead(ctx, f.menteeID(), first.ID))

	unread, err := svc.List(ctx, f.menteeID(), models.NotificationFilter{UnreadOnly: true})
	require.NoError(t, err)
	assert.Len(t, unread, 2)

	cancelled, err := svc.List(ctx, f.menteeID(), models.NotificationFilter{Type: models.NotificationTypeBookingCancelled, Limit: 1})
	require.NoError(t, err)
	assert.Len(t, cancelled, 1)

	updated, err := svc.MarkAllRead(ctx, f.menteeID())
	require.NoError(t, err)
	assert.Equal(t, int64(2), updated)

	updated, err = svc.MarkAllRead(ctx, f.menteeID())
	require.NoError(t, err)
	assert.Zero(t, updated)

	mentorUnread, err := svc.UnreadCount(ctx, f.mentorID())
	require.NoError(t, err)
	assert.Equal(t, int64(1), mentorUnread)
}

func TestReadSideRequiresIdentity(t *testing.T) {
	f := newFixture(t)
	svc, _ := newNotificationService(f, nil)
	ctx := context.Background()

	_, err := svc.List(ctx, auth.Identity{}, models.NotificationFilter{})
	requireKind(t, err, KindAuthenticationRequired)
	_, err = svc.UnreadCount(ctx, auth.Identity{})
	requireKind(t, err, KindAuthenticationRequired)
	err = svc.MarkRead(ctx, auth.Identity{}, uuid.New())
	requireKind(t, err, KindAuthenticationRequired)
}

func TestSendDigests(t *testing.T) {
	f := newFixture(t)
	mailer := &recordingMailer{}
	svc, _ := newNotificationService(f, mailer)

	f.dispatch(t, svc, f.menteeUser.ID, models.NotificationTypeBookingAccepted)
	f.dispatch(t, svc, f.menteeUser.ID, models.NotificationTypeBookingCancelled)

	queued, err := svc.SendDigests(context.Background())
	require.NoError(t, err)
	svc.Wait()

	assert.Equal(t, 1, queued)
	sent := mailer.Sent()
	require.Len(t, sent, 1)
	assert.Equal(t, "ada@example.com", sent[0].ToEmail)
	assert.Equal(t, "You have 2 unread notifications", sent[0].Subject)
}

func TestSendDigestsWithoutMailer(t *testing.T) {
	f := newFixture(t)
	svc, _ := newNotificationService(f, nil)
	f.dispatch(t, svc, f.menteeUser.ID, models.NotificationTypeBookingAccepted)

	queued, err := svc.SendDigests(context.Background())
	require.NoError(t, err)
	assert.Zero(t, queued)
}
