package services

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/islandscholars/backend/repository"
)

// JanitorConfig controls the notification retention sweep.
type JanitorConfig struct {
	Interval  time.Duration
	Retention time.Duration
}

// Janitor prunes read notifications once they fall outside the retention
// window. Unread notifications are never touched.
type Janitor struct {
	notifications repository.NotificationRepository
	logger        *zap.Logger
	cron          *cron.Cron
	cfg           JanitorConfig
}

func NewJanitor(notifications repository.NotificationRepository, logger *zap.Logger, cfg JanitorConfig) *Janitor {
	if cfg.Interval <= 0 {
		cfg.Interval = time.Hour
	}
	if cfg.Retention <= 0 {
		cfg.Retention = 30 * 24 * time.Hour
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	j := &Janitor{
		notifications: notifications,
		logger:        logger,
		cfg:           cfg,
		cron:          cron.New(cron.WithSeconds()),
	}

	schedule := fmt.Sprintf("@every %ds", int(cfg.Interval.Seconds()))
	_, _ = j.cron.AddFunc(schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), cfg.Interval)
		defer cancel()
		if err := j.Sweep(ctx); err != nil {
			j.logger.Error("notification sweep failed", zap.Error(err))
		}
	})

	return j
}

func (j *Janitor) Start() {
	j.cron.Start()
}

// Stop halts the scheduler and waits for an in-flight sweep to finish or the
// context to expire.
func (j *Janitor) Stop(ctx context.Context) {
	done := j.cron.Stop().Done()
	select {
	case <-done:
	case <-ctx.Done():
	}
}

// Sweep removes read notifications older than the retention cutoff.
func (j *Janitor) Sweep(ctx context.Context) error {
	cutoff := time.Now().Add(-j.cfg.Retention)
	pruned, err := j.notifications.Prune(ctx, cutoff)
	if err != nil {
		return err
	}
	if pruned > 0 {
		j.logger.Info("pruned read notifications", zap.Int("count", pruned))
	}
	return nil
}
