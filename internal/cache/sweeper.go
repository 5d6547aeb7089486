package cache

import (
	"fmt"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

type Sweeper interface {
	Sweep() int
}

// StartSweeper runs target.Sweep on the given cron schedule, for example
// "@every 1m". The returned scheduler must be stopped by the caller.
func StartSweeper(target Sweeper, schedule string, logger *logrus.Logger) (*cron.Cron, error) {
	scheduler := cron.New()
	if _, err := scheduler.AddFunc(schedule, func() {
		if removed := target.Sweep(); removed > 0 && logger != nil {
			logger.WithField("removed", removed).Debug("swept expired cache entries")
		}
	}); err != nil {
		return nil, fmt.Errorf("schedule cache sweep %q: %w", schedule, err)
	}
	scheduler.Start()
	return scheduler, nil
}
