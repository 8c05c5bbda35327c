// SPDX-License-Identifier: Apache-2.0
// Copyright © 2022 Wrangle Ltd

package promote

import (
	"context"
	"fmt"

	"github.com/go-logr/logr"
	"github.com/robfig/cron/v3"
)

// Scheduler runs promotion plans on cron schedules. A tick is skipped while
// the previous run of the same plan is still going.
type Scheduler struct {
	cron     *cron.Cron
	promoter *Promoter
	logger   logr.Logger
	ctx      context.Context
	cancel   context.CancelFunc

	// OnResult is called after every scheduled run
	OnResult func(res *Result, err error)
}

func NewScheduler(promoter *Promoter, logger logr.Logger) *Scheduler {
	if logger.GetSink() == nil {
		logger = logr.Discard()
	}
	logger = logger.WithName("Scheduler")
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		cron: cron.New(
			cron.WithLogger(logger),
			cron.WithChain(cron.SkipIfStillRunning(logger), cron.Recover(logger)),
		),
		promoter: promoter,
		logger:   logger,
		ctx:      ctx,
		cancel:   cancel,
	}
}

// Add schedules plan on spec, a standard 5-field cron expression or a
// descriptor such as "@monthly" or "@every 1h".
func (s *Scheduler) Add(spec string, plan *Plan) (cron.EntryID, error) {
	if err := plan.Validate(); err != nil {
		return 0, err
	}
	sched, err := cron.ParseStandard(spec)
	if err != nil {
		return 0, fmt.Errorf("invalid schedule %q: %w", spec, err)
	}
	return s.cron.Schedule(sched, cron.FuncJob(func() {
		res, err := s.promoter.Run(s.ctx, plan)
		if err != nil {
			s.logger.Error(err, "scheduled promotion failed", "model", plan.ModelName)
		}
		if s.OnResult != nil {
			s.OnResult(res, err)
		}
	})), nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop cancels running promotions and waits for them to return
func (s *Scheduler) Stop() {
	s.cancel()
	<-s.cron.Stop().Done()
}

// Run starts the scheduler and blocks until ctx is done
func (s *Scheduler) Run(ctx context.Context) error {
	s.Start()
	for _, e := range s.cron.Entries() {
		s.logger.Info("scheduled", "entry", e.ID, "next", e.Next)
	}
	<-ctx.Done()
	s.Stop()
	return nil
}
