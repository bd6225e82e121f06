package scheduler

import (
	"context"
	"time"

	"coachdesk/internal/shared/logger"
)

// PastDueSweeper runs one past-due sweep and reports how many trainers it
// marked.
type PastDueSweeper interface {
	Execute(ctx context.Context) (int, error)
}

// PastDueScheduler periodically sweeps overdue active subscriptions into
// past_due. One sweep runs at startup, then one per interval.
type PastDueScheduler struct {
	sweeper  PastDueSweeper
	logger   logger.Interface
	interval time.Duration
	stopChan chan struct{}
}

func NewPastDueScheduler(sweeper PastDueSweeper, interval time.Duration, log logger.Interface) *PastDueScheduler {
	return &PastDueScheduler{
		sweeper:  sweeper,
		logger:   log,
		interval: interval,
		stopChan: make(chan struct{}),
	}
}

// Start launches the sweep loop.
func (s *PastDueScheduler) Start(ctx context.Context) {
	s.logger.Infow("starting past-due scheduler", "interval", s.interval)
	go s.run(ctx)
}

// Stop stops the scheduler.
func (s *PastDueScheduler) Stop() {
	close(s.stopChan)
}

func (s *PastDueScheduler) run(ctx context.Context) {
	s.sweep(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Infow("past-due scheduler stopped due to context cancellation")
			return
		case <-s.stopChan:
			s.logger.Infow("past-due scheduler stopped")
			return
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

func (s *PastDueScheduler) sweep(ctx context.Context) {
	marked, err := s.sweeper.Execute(ctx)
	if err != nil {
		s.logger.Errorw("past-due sweep failed", "error", err)
		return
	}

	if marked > 0 {
		s.logger.Infow("past-due sweep completed", "marked", marked)
	}
}
