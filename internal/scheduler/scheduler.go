package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// AlertChecker runs one alert evaluation pass.
type AlertChecker interface {
	Check(ctx context.Context) error
}

// Scheduler invokes the alert checker on a fixed interval from a single
// goroutine, which keeps the engine's at-most-once-per-interval contract
// on one scheduling context.
type Scheduler struct {
	checker  AlertChecker
	logger   *logrus.Logger
	interval time.Duration
	stop     chan struct{}
	wg       sync.WaitGroup
	stopOnce sync.Once
}

func New(checker AlertChecker, logger *logrus.Logger, interval time.Duration) *Scheduler {
	if interval <= 0 {
		interval = time.Hour
	}
	return &Scheduler{
		checker:  checker,
		logger:   logger,
		interval: interval,
		stop:     make(chan struct{}),
	}
}

// Start launches the tick loop. The first pass runs immediately.
func (s *Scheduler) Start() {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.runOnce()

		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				s.runOnce()
			case <-s.stop:
				return
			}
		}
	}()
}

// Stop halts the tick loop and waits for an in-flight pass to finish.
// Idempotent.
func (s *Scheduler) Stop() {
	s.stopOnce.Do(func() {
		close(s.stop)
		s.wg.Wait()
	})
}

func (s *Scheduler) runOnce() {
	if err := s.checker.Check(context.Background()); err != nil {
		s.logger.WithError(err).Error("Scheduler.runOnce.check error")
		return
	}
	s.logger.Debug("Scheduler.runOnce.complete")
}
