package cron

import (
	"context"
	"time"

	"clipbook/services/calendar"
	"clipbook/utils"

	robfig "github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

const tickTimeout = 2 * time.Minute

// StartWindowMaintainer schedules the daily rolling-window advance at local
// midnight and runs one catch-up pass immediately, so windows that went stale
// while the process was down are re-anchored on startup instead of waiting
// for the next midnight. Returns the scheduler so the caller can stop it on
// shutdown.
func StartWindowMaintainer(svc calendar.CalendarService, loc *time.Location) *robfig.Cron {
	logger := utils.GetLogger()

	tick := func() {
		ctx, cancel := context.WithTimeout(context.Background(), tickTimeout)
		defer cancel()

		advanced, err := svc.AdvanceAllWindows(ctx)
		if err != nil {
			logger.Error("rolling-window tick failed", zap.Error(err))
			return
		}
		logger.Info("rolling-window tick complete", zap.Int("advanced", advanced))
	}

	c := robfig.New(robfig.WithLocation(loc))
	if _, err := c.AddFunc("0 0 * * *", tick); err != nil {
		logger.Fatal("failed to schedule rolling-window job", zap.Error(err))
	}
	c.Start()

	go tick()
	return c
}
