package jobs

import (
	"context"
	"errors"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/rs/zerolog"
)

const sweepTimeout = time.Minute

// Purger deletes notifications created before cutoff
type Purger interface {
	PurgeOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

// NotificationSweeper periodically removes notifications past their retention
type NotificationSweeper struct {
	purger    Purger
	retention time.Duration
	interval  time.Duration
	scheduler gocron.Scheduler
	now       func() time.Time
	logger    zerolog.Logger
}

// NewNotificationSweeper creates a sweeper that runs every interval and keeps
// notifications younger than retention.
func NewNotificationSweeper(purger Purger, retention, interval time.Duration, logger zerolog.Logger) (*NotificationSweeper, error) {
	if retention <= 0 {
		return nil, errors.New("notification retention must be positive")
	}
	if interval <= 0 {
		return nil, errors.New("sweep interval must be positive")
	}

	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}

	return &NotificationSweeper{
		purger:    purger,
		retention: retention,
		interval:  interval,
		scheduler: scheduler,
		now:       time.Now,
		logger:    logger.With().Str("job", "notification_sweeper").Logger(),
	}, nil
}

// Start registers the sweep job and starts the scheduler
func (s *NotificationSweeper) Start() error {
	_, err := s.scheduler.NewJob(
		gocron.DurationJob(s.interval),
		gocron.NewTask(func() {
			ctx, cancel := context.WithTimeout(context.Background(), sweepTimeout)
			defer cancel()
			s.Sweep(ctx)
		}),
		gocron.WithName("notification-sweep"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return err
	}

	s.scheduler.Start()
	s.logger.Info().
		Dur("interval", s.interval).
		Dur("retention", s.retention).
		Msg("Notification sweeper started")
	return nil
}

// Sweep deletes everything older than the retention window once
func (s *NotificationSweeper) Sweep(ctx context.Context) (int64, error) {
	cutoff := s.now().Add(-s.retention)
	deleted, err := s.purger.PurgeOlderThan(ctx, cutoff)
	if err != nil {
		s.logger.Error().Err(err).Time("cutoff", cutoff).Msg("Notification sweep failed")
		return 0, err
	}
	return deleted, nil
}

// Shutdown stops the scheduler and waits for a running sweep
func (s *NotificationSweeper) Shutdown() error {
	return s.scheduler.Shutdown()
}
