package jobs

import (
	"context"
	"errors"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/rs/zerolog"
)

const reminderTimeout = time.Minute

// Reminder notifies participants of events starting within lead of now
type Reminder interface {
	SendReminders(ctx context.Context, now time.Time, lead time.Duration) (int, error)
}

// EventReminder periodically sends EVENT_REMINDER notifications
type EventReminder struct {
	reminder  Reminder
	lead      time.Duration
	interval  time.Duration
	scheduler gocron.Scheduler
	now       func() time.Time
	logger    zerolog.Logger
}

// NewEventReminder creates a job that runs every interval and reminds
// participants of events starting within lead.
func NewEventReminder(reminder Reminder, lead, interval time.Duration, logger zerolog.Logger) (*EventReminder, error) {
	if lead <= 0 {
		return nil, errors.New("reminder lead must be positive")
	}
	if interval <= 0 {
		return nil, errors.New("reminder interval must be positive")
	}

	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}

	return &EventReminder{
		reminder:  reminder,
		lead:      lead,
		interval:  interval,
		scheduler: scheduler,
		now:       time.Now,
		logger:    logger.With().Str("job", "event_reminder").Logger(),
	}, nil
}

// Start registers the reminder job and starts the scheduler
func (r *EventReminder) Start() error {
	_, err := r.scheduler.NewJob(
		gocron.DurationJob(r.interval),
		gocron.NewTask(func() {
			ctx, cancel := context.WithTimeout(context.Background(), reminderTimeout)
			defer cancel()
			r.Run(ctx)
		}),
		gocron.WithName("event-reminder"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return err
	}

	r.scheduler.Start()
	r.logger.Info().Dur("interval", r.interval).Dur("lead", r.lead).Msg("Event reminder started")
	return nil
}

// Run sends the reminders that are due once
func (r *EventReminder) Run(ctx context.Context) (int, error) {
	sent, err := r.reminder.SendReminders(ctx, r.now(), r.lead)
	if err != nil {
		r.logger.Error().Err(err).Msg("Event reminder run failed")
		return 0, err
	}
	return sent, nil
}

// Shutdown stops the scheduler and waits for a running pass
func (r *EventReminder) Shutdown() error {
	return r.scheduler.Shutdown()
}
