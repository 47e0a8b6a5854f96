package jobs

import (
	"context"

	"subman-bot-be/internal/pkg/logger"
	"subman-bot-be/internal/service"
)

// ExpirySweepJob is the cron entry point for the subscription sweep.
type ExpirySweepJob struct {
	sweepService service.ISweepService
	logger       logger.ILogger
}

func NewExpirySweepJob(sweepService service.ISweepService, logger logger.ILogger) *ExpirySweepJob {
	return &ExpirySweepJob{
		sweepService: sweepService,
		logger:       logger,
	}
}

// Run satisfies cron.AddFunc's func() signature. A failed pass is logged
// and retried on the next schedule tick.
func (j *ExpirySweepJob) Run() {
	ctx := context.Background()

	if err := j.sweepService.Run(ctx); err != nil {
		j.logger.Error("jobs.expiry_sweep", "Sweep pass failed", map[string]interface{}{
			"error": err.Error(),
		})
	}
}
