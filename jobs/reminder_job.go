package jobs

import (
	"context"
	"time"

	"go.uber.org/zap"
)

const jobTimeout = 2 * time.Minute

type Reminder interface {
	SendReminders(ctx context.Context, now time.Time, after time.Duration) (int, error)
}

// ReminderJob nudges mentors about requests left unanswered for longer than After.
type ReminderJob struct {
	Bookings Reminder
	After    time.Duration
	Log      *zap.Logger

	now func() time.Time
}

func NewReminderJob(bookings Reminder, after time.Duration, log *zap.Logger) *ReminderJob {
	return &ReminderJob{Bookings: bookings, After: after, Log: log, now: time.Now}
}

func (j *ReminderJob) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	sent, err := j.Bookings.SendReminders(ctx, j.now(), j.After)
	if err != nil {
		j.Log.Error("booking reminder job failed", zap.Int("sent", sent), zap.Error(err))
		return
	}
	if sent > 0 {
		j.Log.Info("sent booking reminders", zap.Int("sent", sent))
	}
}
