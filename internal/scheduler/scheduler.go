package scheduler

import (
	"context"
	"time"

	"github.com/copystack/printledger/internal/clock"
	"github.com/copystack/printledger/internal/collector"
	"github.com/copystack/printledger/internal/config"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type Params struct {
	fx.In

	Log       *zap.Logger
	Cfg       config.Config
	Clock     clock.Clock
	Collector *collector.Service
}

// Scheduler drives periodic refresh batches. It owns no state beyond the
// interval; every run is a fresh RefreshAll over the device registry.
type Scheduler struct {
	log       *zap.Logger
	interval  time.Duration
	clock     clock.Clock
	collector *collector.Service
}

func New(p Params) *Scheduler {
	return &Scheduler{
		log:       p.Log.Named("scheduler").With(zap.String("component", "scheduler")),
		interval:  time.Duration(p.Cfg.RefreshIntervalMinutes) * time.Minute,
		clock:     p.Clock,
		collector: p.Collector,
	}
}

// Enabled reports whether a refresh interval is configured.
func (s *Scheduler) Enabled() bool { return s.interval > 0 }

// RunOnce executes one refresh batch and logs its outcome. A device-level
// failure is part of the batch result, not an error of the run.
func (s *Scheduler) RunOnce(ctx context.Context) error {
	started := s.clock.Now()

	results, err := s.collector.RefreshAll(ctx)
	if err != nil {
		return err
	}

	failed := 0
	for _, r := range results {
		if r.Error != "" {
			failed++
		}
	}
	s.log.Info("refresh run finished",
		zap.Int("devices", len(results)),
		zap.Int("failed", failed),
		zap.Duration("elapsed", s.clock.Now().Sub(started)),
	)
	return nil
}

func (s *Scheduler) RunForever(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		if err := s.RunOnce(ctx); err != nil {
			s.log.Warn("refresh run failed", zap.Error(err))
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
