package jobs

import (
	"github.com/pkg/errors"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

const (
	ReminderSpec = "*/15 * * * *"
	DigestSpec   = "0 8 * * *"
)

// NewScheduler registers both jobs on a cron that skips a run while the previous one is
// still going. The caller starts and stops it.
func NewScheduler(log *zap.Logger, reminders *ReminderJob, digests *DigestJob) (*cron.Cron, error) {
	cronLog := cron.PrintfLogger(zap.NewStdLog(log))
	c := cron.New(
		cron.WithLogger(cronLog),
		cron.WithChain(cron.Recover(cronLog), cron.SkipIfStillRunning(cronLog)),
	)

	if _, err := c.AddJob(ReminderSpec, reminders); err != nil {
		return nil, errors.Wrap(err, "unable to schedule booking reminders")
	}
	if _, err := c.AddJob(DigestSpec, digests); err != nil {
		return nil, errors.Wrap(err, "unable to schedule unread digests")
	}
	return c, nil
}
