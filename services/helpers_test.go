package services

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/anjiri1684/mentorship/auth"
	"github.com/anjiri1684/mentorship/database/memstore"
	"github.com/anjiri1684/mentorship/models"
	"github.com/anjiri1684/mentorship/notifications"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

type recordingDispatcher struct {
	mu    sync.Mutex
	calls []NotificationInput
	err   error
}

func (d *recordingDispatcher) Dispatch(_ context.Context, in NotificationInput) (*models.Notification, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.calls = append(d.calls, in)
	if d.err != nil {
		return nil, d.err
	}
	return &models.Notification{ID: uuid.New(), UserID: in.UserID, Type: in.Type, Title: in.Title}, nil
}

type recordingPublisher struct {
	mu     sync.Mutex
	events map[uuid.UUID][]models.RealtimeEvent
}

func (p *recordingPublisher) Publish(userID uuid.UUID, event models.RealtimeEvent) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.events == nil {
		p.events = make(map[uuid.UUID][]models.RealtimeEvent)
	}
	p.events[userID] = append(p.events[userID], event)
}

func (p *recordingPublisher) For(userID uuid.UUID) []models.RealtimeEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]models.RealtimeEvent(nil), p.events[userID]...)
}

type recordingMailer struct {
	mu   sync.Mutex
	sent []notifications.Message
	err  error
}

func (m *recordingMailer) Send(_ context.Context, msg notifications.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, msg)
	return m.err
}

func (m *recordingMailer) Sent() []notifications.Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]notifications.Message(nil), m.sent...)
}

var errDispatchDown = errors.New("dispatcher unavailable")

type fixture struct {
	stores *memstore.Stores

	mentorUser *models.User
	menteeUser *models.User
	mentor     *models.Mentor
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{stores: memstore.New()}
	ctx := context.Background()

	f.mentorUser = &models.User{FullName: "Grace Hopper", Email: "grace@example.com", Password: "x"}
	f.menteeUser = &models.User{FullName: "Ada Lovelace", Email: "ada@example.com", Password: "x"}
	require.NoError(t, f.stores.Users.Create(ctx, f.mentorUser))
	require.NoError(t, f.stores.Users.Create(ctx, f.menteeUser))

	f.mentor = &models.Mentor{UserID: f.mentorUser.ID, Headline: "Compilers and COBOL"}
	require.NoError(t, f.stores.Mentors.Create(ctx, f.mentor))
	return f
}

func (f *fixture) mentorID() auth.Identity {
	return auth.Identity{UserID: f.mentorUser.ID, Role: models.RoleMember, Name: f.mentorUser.FullName}
}

func (f *fixture) menteeID() auth.Identity {
	return auth.Identity{UserID: f.menteeUser.ID, Role: models.RoleMember, Name: f.menteeUser.FullName}
}

func requireKind(t *testing.T, err error, kind Kind) *Error {
	t.Helper()
	require.Error(t, err)
	svcErr := AsError(err)
	require.Equal(t, kind, svcErr.Kind, "unexpected error: %v", err)
	return svcErr
}
