package services

import (
	"context"
	"sync"
	"time"

	"github.com/anjiri1684/mentorship/notifications"
	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"
)

const (
	mailTimeout = 15 * time.Second

	// maxConcurrentSends caps open SMTP or Brevo requests. Digests enqueue one message
	// per user in a burst.
	maxConcurrentSends = 8
)

// mailQueue sends email off the request path. A nil mailer drops every message.
type mailQueue struct {
	mailer notifications.Mailer
	log    *zap.Logger
	sem    *semaphore.Weighted
	wg     sync.WaitGroup
}

func newMailQueue(mailer notifications.Mailer, log *zap.Logger) *mailQueue {
	return &mailQueue{mailer: mailer, log: log, sem: semaphore.NewWeighted(maxConcurrentSends)}
}

func (q *mailQueue) enabled() bool {
	return q.mailer != nil
}

// enqueue never blocks; the message waits for a free send slot in its own goroutine.
func (q *mailQueue) enqueue(msg notifications.Message) {
	if q.mailer == nil {
		return
	}
	q.wg.Add(1)
	go func() {
		defer q.wg.Done()
		if err := q.sem.Acquire(context.Background(), 1); err != nil {
			return
		}
		defer q.sem.Release(1)

		ctx, cancel := context.WithTimeout(context.Background(), mailTimeout)
		defer cancel()
		if err := q.mailer.Send(ctx, msg); err != nil {
			q.log.Warn("failed to send email", zap.String("to", msg.ToEmail), zap.String("subject", msg.Subject), zap.Error(err))
		}
	}()
}

// wait blocks until every queued message has been attempted.
func (q *mailQueue) wait() {
	q.wg.Wait()
}
