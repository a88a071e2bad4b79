package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/anjiri1684/mentorship/auth"
	"github.com/anjiri1684/mentorship/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeConn struct {
	mu         sync.Mutex
	written    []interface{}
	attempts   int
	closed     bool
	failAll    bool
	writeDelay time.Duration

	incoming chan []byte
	hangup   sync.Once
}

func newFakeConn(frames ...[]byte) *fakeConn {
	c := &fakeConn{incoming: make(chan []byte, len(frames)+1)}
	for _, f := range frames {
		c.incoming <- f
	}
	return c
}

func (c *fakeConn) WriteJSON(v interface{}) error {
	if c.writeDelay > 0 {
		time.Sleep(c.writeDelay)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.attempts++
	if c.failAll || c.closed {
		return errors.New("broken pipe")
	}
	c.written = append(c.written, v)
	return nil
}

func (c *fakeConn) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	c.Hangup()
	return nil
}

// Hangup ends the read side as a peer going away would, leaving writes open.
func (c *fakeConn) Hangup() {
	c.hangup.Do(func() { close(c.incoming) })
}

func (c *fakeConn) Attempts() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.attempts
}

func (c *fakeConn) ReadJSON(v interface{}) error {
	frame, ok := <-c.incoming
	if !ok {
		return io.EOF
	}
	return json.Unmarshal(frame, v)
}

func (c *fakeConn) ReadMessage() (int, []byte, error) {
	frame, ok := <-c.incoming
	if !ok {
		return 0, nil, io.EOF
	}
	return 1, frame, nil
}

func (c *fakeConn) SetReadDeadline(time.Time) error { return nil }

func (c *fakeConn) Written() []interface{} {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]interface{}(nil), c.written...)
}

func (c *fakeConn) IsClosed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

func startHub(t *testing.T) *Hub {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	h := NewHub(zap.NewNop())
	go h.Run(ctx)
	t.Cleanup(cancel)
	return h
}

func TestPublishReachesEveryConnectionOfUser(t *testing.T) {
	h := startHub(t)
	userID := uuid.New()
	other := uuid.New()

	connA, connB, connOther := newFakeConn(), newFakeConn(), newFakeConn()
	for _, c := range []*Client{NewClient(userID, connA), NewClient(userID, connB), NewClient(other, connOther)} {
		h.Register(c)
		go c.WritePump(zap.NewNop())
	}
	require.Eventually(t, func() bool { return h.Connected(userID) == 2 }, time.Second, 5*time.Millisecond)

	h.Publish(userID, models.RealtimeEvent{Type: models.EventNotificationCreated, UnreadCount: 3})

	require.Eventually(t, func() bool { return len(connA.Written()) == 1 && len(connB.Written()) == 1 }, time.Second, 5*time.Millisecond)
	event := connA.Written()[0].(models.RealtimeEvent)
	assert.Equal(t, int64(3), event.UnreadCount)
	assert.Empty(t, connOther.Written())
}

func TestUnregisterRemovesOnlyThatConnection(t *testing.T) {
	h := startHub(t)
	userID := uuid.New()

	first := NewClient(userID, newFakeConn())
	second := NewClient(userID, newFakeConn())
	h.Register(first)
	h.Register(second)
	require.Eventually(t, func() bool { return h.Connected(userID) == 2 }, time.Second, 5*time.Millisecond)

	h.Unregister(first)
	require.Eventually(t, func() bool { return h.Connected(userID) == 1 }, time.Second, 5*time.Millisecond)
	h.Unregister(first)
	h.Unregister(second)
	require.Eventually(t, func() bool { return h.Connected(userID) == 0 }, time.Second, 5*time.Millisecond)
}

func TestFailedWriteClosesConnection(t *testing.T) {
	h := startHub(t)
	userID := uuid.New()
	conn := newFakeConn()
	conn.failAll = true

	client := NewClient(userID, conn)
	h.Register(client)
	go client.WritePump(zap.NewNop())
	require.Eventually(t, func() bool { return h.Connected(userID) == 1 }, time.Second, 5*time.Millisecond)

	h.Publish(userID, models.RealtimeEvent{Type: models.EventNotificationRead})
	require.Eventually(t, conn.IsClosed, time.Second, 5*time.Millisecond)
}

func TestPublishWithoutListenersDoesNotBlock(t *testing.T) {
	h := NewHub(zap.NewNop())
	done := make(chan struct{})
	go func() {
		for i := 0; i < publishBuffer*2; i++ {
			h.Publish(uuid.New(), models.RealtimeEvent{Type: models.EventNotificationCreated})
		}
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Publish blocked without a running hub")
	}
}

func TestServeAuthenticatesFirstFrame(t *testing.T) {
	h := startHub(t)
	secret := "ws-secret"
	userID := uuid.New()
	token, err := auth.IssueToken(secret, auth.Identity{UserID: userID}, time.Minute)
	require.NoError(t, err)

	frame, _ := json.Marshal(authFrame{Type: "auth", Token: token})
	conn := newFakeConn(frame)
	finished := make(chan struct{})
	go func() {
		Serve(h, secret, conn, zap.NewNop())
		close(finished)
	}()

	require.Eventually(t, func() bool { return h.Connected(userID) == 1 }, time.Second, 5*time.Millisecond)
	h.Publish(userID, models.RealtimeEvent{Type: models.EventNotificationCreated, UnreadCount: 1})
	require.Eventually(t, func() bool { return len(conn.Written()) == 2 }, time.Second, 5*time.Millisecond)

	_ = conn.Close()
	<-finished
	require.Eventually(t, func() bool { return h.Connected(userID) == 0 }, time.Second, 5*time.Millisecond)
}

func TestServeReturnsAfterWritePump(t *testing.T) {
	h := startHub(t)
	secret := "ws-secret"
	userID := uuid.New()
	token, err := auth.IssueToken(secret, auth.Identity{UserID: userID}, time.Minute)
	require.NoError(t, err)

	frame, _ := json.Marshal(authFrame{Type: "auth", Token: token})
	conn := newFakeConn(frame)
	conn.writeDelay = 5 * time.Millisecond
	finished := make(chan struct{})
	go func() {
		Serve(h, secret, conn, zap.NewNop())
		close(finished)
	}()

	require.Eventually(t, func() bool { return h.Connected(userID) == 1 }, time.Second, 5*time.Millisecond)
	for i := 0; i < 10; i++ {
		h.Publish(userID, models.RealtimeEvent{Type: models.EventNotificationCreated, UnreadCount: int64(i)})
	}
	require.Eventually(t, func() bool { return conn.Attempts() >= 2 }, time.Second, time.Millisecond)

	conn.Hangup()
	select {
	case <-finished:
	case <-time.After(2 * time.Second):
		t.Fatal("Serve did not return after the peer hung up")
	}

	after := conn.Attempts()
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, after, conn.Attempts(), "no write may reach the connection after Serve returns")
	assert.True(t, conn.IsClosed())
}

func TestServeRejectsBadAuth(t *testing.T) {
	h := startHub(t)

	tests := map[string][]byte{
		"wrong type":    []byte(`{"type":"hello","token":"x"}`),
		"invalid token": []byte(`{"type":"auth","token":"not-a-jwt"}`),
		"garbage":       []byte(`{`),
	}
	for name, frame := range tests {
		t.Run(name, func(t *testing.T) {
			conn := newFakeConn(frame)
			Serve(h, "ws-secret", conn, zap.NewNop())
			assert.True(t, conn.IsClosed())
			require.Len(t, conn.Written(), 1)
		})
	}
}
