package cron

import (
	"context"

	"github.com/Lord-Boros/the-forbidden-button/internal/jobs"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// StartBillingCronJobs schedules the daily premium-expiry sweep.
func StartBillingCronJobs(sweeper *jobs.PremiumExpirySweeper) {
	c := cron.New()

	c.AddFunc("@daily", func() {
		if err := sweeper.Run(context.Background()); err != nil {
			logrus.WithError(err).Error("Premium expiry sweep failed")
		}
	})

	c.Start()
}
