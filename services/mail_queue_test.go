package services

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/anjiri1684/mentorship/notifications"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// gatedMailer holds every Send until release is closed and tracks how many run at once.
type gatedMailer struct {
	release chan struct{}

	mu       sync.Mutex
	inFlight int
	peak     int
	sent     int
}

func (m *gatedMailer) Send(ctx context.Context, _ notifications.Message) error {
	m.mu.Lock()
	m.inFlight++
	if m.inFlight > m.peak {
		m.peak = m.inFlight
	}
	m.mu.Unlock()

	defer func() {
		m.mu.Lock()
		m.inFlight--
		m.sent++
		m.mu.Unlock()
	}()

	select {
	case <-m.release:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (m *gatedMailer) stats() (inFlight, peak, sent int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.inFlight, m.peak, m.sent
}

func TestMailQueueCapsConcurrentSends(t *testing.T) {
	mailer := &gatedMailer{release: make(chan struct{})}
	q := newMailQueue(mailer, zap.NewNop())

	const total = 200
	for i := 0; i < total; i++ {
		q.enqueue(notifications.Message{ToEmail: fmt.Sprintf("user%d@example.com", i), Subject: "digest"})
	}

	require.Eventually(t, func() bool {
		inFlight, _, _ := mailer.stats()
		return inFlight == maxConcurrentSends
	}, time.Second, 5*time.Millisecond)
	time.Sleep(20 * time.Millisecond)

	_, peak, _ := mailer.stats()
	assert.Equal(t, maxConcurrentSends, peak)

	close(mailer.release)
	q.wait()

	_, peak, sent := mailer.stats()
	assert.Equal(t, total, sent)
	assert.LessOrEqual(t, peak, maxConcurrentSends)
}

func TestMailQueueWithoutMailer(t *testing.T) {
	q := newMailQueue(nil, zap.NewNop())
	assert.False(t, q.enabled())
	q.enqueue(notifications.Message{ToEmail: "ada@example.com"})
	q.wait()
}
