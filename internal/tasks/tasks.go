// Package tasks runs the background sweeps: a periodic reminder scan
// over upcoming confirmed reservations and a rollover that closes out
// elapsed ones. Both share the store with interactive requests and
// mutate it through the same repository discipline.
package tasks

import (
	"context"
	"time"

	"mesa/config"
	"mesa/internal/domains/reservation/model"
	"mesa/internal/domains/reservation/repository"
	scheduleService "mesa/internal/domains/schedule/service"
	tableService "mesa/internal/domains/table/service"
	"mesa/shared/constant"
	"mesa/shared/timezone"

	"github.com/rs/zerolog/log"
)

const rolloverInterval = time.Hour

type Runner struct {
	cfg       *config.Config
	repo      repository.Reservation
	schedules scheduleService.Schedule
	tables    tableService.Table
	stop      chan struct{}
}

func NewRunner(cfg *config.Config, repo repository.Reservation, schedules scheduleService.Schedule, tables tableService.Table) *Runner {
	return &Runner{
		cfg:       cfg,
		repo:      repo,
		schedules: schedules,
		tables:    tables,
		stop:      make(chan struct{}),
	}
}

func (r *Runner) Start() {
	if !r.cfg.Tasks.Enable {
		log.Info().Msg("background tasks disabled")

		return
	}

	go r.loop(time.Duration(r.cfg.Tasks.ReminderIntervalMin)*time.Minute, r.remindUpcoming)
	go r.loop(rolloverInterval, r.rolloverElapsed)

	log.Info().
		Int("reminder_interval_min", r.cfg.Tasks.ReminderIntervalMin).
		Msg("background tasks started")
}

func (r *Runner) Stop() {
	close(r.stop)
}

func (r *Runner) loop(interval time.Duration, sweep func(ctx context.Context)) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			sweep(context.Background())
		case <-r.stop:
			return
		}
	}
}

// remindUpcoming logs confirmed reservations starting inside the
// reminder window. Delivery channels hook in here later.
func (r *Runner) remindUpcoming(ctx context.Context) {
	now := timezone.Now()
	window := time.Duration(r.cfg.Tasks.ReminderWindowMin) * time.Minute

	upcoming, err := r.repo.FindStartingBetween(ctx, now, now.Add(window), []string{model.StatusConfirmed})
	if err != nil {
		log.Error().Err(err).Msg("reminder sweep failed")

		return
	}

	for _, reservation := range upcoming {
		log.Info().
			Str("reservation_id", reservation.ID).
			Str("table_id", reservation.TableID).
			Str("starts_at", reservation.StartsAt.Format(constant.DateFormat)).
			Msg("reservation starting soon")
	}
}

// rolloverElapsed marks pending and confirmed reservations whose end
// has passed as DONE and re-broadcasts occupancy when anything moved.
func (r *Runner) rolloverElapsed(ctx context.Context) {
	affected, err := r.repo.MarkElapsedDone(ctx, timezone.Now())
	if err != nil {
		log.Error().Err(err).Msg("rollover sweep failed")

		return
	}

	if affected > 0 {
		log.Info().Int64("count", affected).Msg("rolled elapsed reservations to DONE")
		r.tables.PublishOccupancy(ctx)
	}
}
