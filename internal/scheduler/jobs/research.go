// Package jobs defines the scheduled jobs wired into the scheduler.
package jobs

import (
	"context"
	"fmt"

	"github.com/wonny/valuescout/backend/internal/pipeline"
	"github.com/wonny/valuescout/backend/internal/report"
	"github.com/wonny/valuescout/backend/pkg/logger"
)

// ResearchJob runs one full pipeline pass on schedule.
type ResearchJob struct {
	runner   *pipeline.Runner
	schedule string
	logger   *logger.Logger
}

func NewResearchJob(runner *pipeline.Runner, schedule string, log *logger.Logger) *ResearchJob {
	return &ResearchJob{runner: runner, schedule: schedule, logger: log}
}

func (j *ResearchJob) Name() string { return "research_run" }

func (j *ResearchJob) Schedule() string { return j.schedule }

func (j *ResearchJob) Run(ctx context.Context) error {
	result, err := j.runner.Run(ctx)
	if err != nil {
		return fmt.Errorf("research run: %w", err)
	}

	// Movements are the actionable output; surface them in the log
	// where a scheduled run is the only observer.
	for _, mv := range result.Movements {
		j.logger.WithFields(map[string]interface{}{
			"symbol": mv.Symbol,
			"change": string(mv.ChangeType),
			"detail": mv.Detail,
		}).Info("Watchlist movement")
	}
	j.logger.Info("\n" + report.Render(result))

	return nil
}
