package jobs

import (
	"context"

	"go.uber.org/zap"
)

type DigestSender interface {
	SendDigests(ctx context.Context) (int, error)
}

// DigestJob emails every user with unread notifications once a day.
type DigestJob struct {
	Notifications DigestSender
	Log           *zap.Logger
}

func NewDigestJob(notifications DigestSender, log *zap.Logger) *DigestJob {
	return &DigestJob{Notifications: notifications, Log: log}
}

func (j *DigestJob) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	queued, err := j.Notifications.SendDigests(ctx)
	if err != nil {
		j.Log.Error("unread digest job failed", zap.Error(err))
		return
	}
	j.Log.Info("queued unread digests", zap.Int("queued", queued))
}
