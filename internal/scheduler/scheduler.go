package scheduler

import (
	"context"
	"log/slog"
	"time"

	"tubereport/internal/featured"

	"github.com/robfig/cron/v3"
)

const (
	HourlyRefreshSpec     = "0 * * * *"
	Timezone              = "UTC"
	TimezoneOffsetSeconds = 0
	refreshTimeout        = 10 * time.Minute
)

// Scheduler refreshes the featured-video catalog on an hourly cron.
type Scheduler struct {
	ctx       context.Context
	cron      *cron.Cron
	refresher *featured.Refresher
	log       *slog.Logger
}

func New(ctx context.Context, refresher *featured.Refresher, log *slog.Logger) *Scheduler {
	c := cron.New(cron.WithLocation(time.FixedZone(Timezone, TimezoneOffsetSeconds)))

	return &Scheduler{
		ctx:       ctx,
		cron:      c,
		refresher: refresher,
		log:       log,
	}
}

func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc(HourlyRefreshSpec, s.refreshFeatured); err != nil {
		return err
	}

	s.cron.Start()

	return nil
}

func (s *Scheduler) Stop() {
	s.cron.Stop()
}

func (s *Scheduler) refreshFeatured() {
	ctx, cancel := context.WithTimeout(s.ctx, refreshTimeout)
	defer cancel()

	select {
	case <-ctx.Done():
		s.log.InfoContext(ctx, "Scheduler context is done",
			"error", ctx.Err())
		return
	default:
	}

	if err := s.refresher.Refresh(ctx); err != nil {
		s.log.ErrorContext(ctx, "Failed to refresh featured videos",
			"error", err)
	}
}
