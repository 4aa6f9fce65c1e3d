// Package scheduler periodically reloads the catalog snapshot of the gateway.
package scheduler

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"

	"github.com/dmitrijs2005/scholarmatch/internal/logging"
)

// Refresher is the job the scheduler runs.
type Refresher interface {
	Refresh(ctx context.Context) error
}

// Scheduler wraps robfig/cron.
type Scheduler struct {
	cron *cron.Cron
	job  Refresher
	spec string // cron spec, e.g. "@every 1h"
	log  logging.Logger
}

func New(spec string, job Refresher, log logging.Logger) *Scheduler {
	return &Scheduler{
		cron: cron.New(),
		job:  job,
		spec: spec,
		log:  log.With("module", "scheduler"),
	}
}

// Start registers the job, starts the cron loop and runs the job once right
// away without blocking.
func (s *Scheduler) Start(ctx context.Context) error {
	_, err := s.cron.AddFunc(s.spec, func() {
		s.run(ctx)
	})
	if err != nil {
		return fmt.Errorf("cron.AddFunc: %w", err)
	}

	s.cron.Start()
	s.log.Info(ctx, "cron started", "spec", s.spec)

	go s.run(ctx)

	return nil
}

// Stop halts the cron loop and waits for a running job to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	s.log.Info(context.Background(), "cron stopped")
}

func (s *Scheduler) run(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}
	if err := s.job.Refresh(ctx); err != nil {
		s.log.Error(ctx, "catalog refresh failed", "error", err)
	}
}
