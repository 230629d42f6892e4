package workers

import (
	"context"
	"sync"
	"time"

	"github.com/MKhiriev/go-course-catalog/internal/config"
	"github.com/MKhiriev/go-course-catalog/internal/logger"
)

type Workers struct {
	workers []Worker

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewWorkers builds the workers enabled by cfg. A zero sweep interval
// disables the session sweeper; expired sessions are then only dropped when
// their id is looked up.
func NewWorkers(sessions SessionSweeper, cfg config.Workers, logger *logger.Logger) *Workers {
	w := &Workers{}
	if cfg.SessionSweepInterval > 0 {
		w.workers = append(w.workers, NewSessionSweeperWorker(sessions, cfg.SessionSweepInterval, logger))
	}
	return w
}

// Run starts every worker. They run until ctx is cancelled or Stop is
// called.
func (w *Workers) Run(ctx context.Context) {
	ctx, w.cancel = context.WithCancel(ctx)
	for _, worker := range w.workers {
		w.wg.Add(1)
		go func() {
			defer w.wg.Done()
			worker.Run(ctx)
			<-ctx.Done()
		}()
	}
}

// Stop cancels the workers started by Run and waits for them to return.
func (w *Workers) Stop() {
	if w.cancel != nil {
		w.cancel()
	}
	w.wg.Wait()
}

type sessionSweeperWorker struct {
	sessions SessionSweeper
	interval time.Duration
	logger   *logger.Logger
}

func NewSessionSweeperWorker(sessions SessionSweeper, interval time.Duration, logger *logger.Logger) Worker {
	return &sessionSweeperWorker{
		sessions: sessions,
		interval: interval,
		logger:   logger,
	}
}

func (s *sessionSweeperWorker) Run(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				s.logger.Debug().Msg("session sweeper stopped")
				return
			case <-ticker.C:
				if removed := s.sessions.Sweep(); removed > 0 {
					s.logger.Info().Int("removed", removed).Msg("expired sessions evicted")
				}
			}
		}
	}()
}
