// Package batch holds the periodic sweeps triggered by cron or the
// in-process ticker.
package batch

import (
	"context"
	"fmt"
	"time"

	domain "github.com/BruksfildServices01/barbershop-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barbershop-booking/internal/domain/schedule"
	"github.com/BruksfildServices01/barbershop-booking/internal/infra/events"
	"github.com/BruksfildServices01/barbershop-booking/internal/models"
	"github.com/BruksfildServices01/barbershop-booking/internal/timezone"
	booking "github.com/BruksfildServices01/barbershop-booking/internal/usecase/appointment"
)

type Result struct {
	CompletedCount  int `json:"completed_count"`
	ErrorCount      int `json:"error_count"`
	TotalConsidered int `json:"total_considered"`
}

type AutoComplete struct {
	booking.Deps
}

func NewAutoComplete(d booking.Deps) *AutoComplete {
	return &AutoComplete{Deps: d}
}

// Execute completes every pending or confirmed appointment whose end is
// not after now. Items fail independently; running it again only picks
// up what is still open.
func (uc *AutoComplete) Execute(ctx context.Context, now time.Time) (Result, error) {
	today := timezone.DateString(now)

	apps, err := uc.Repo.ListByStatusUpTo(
		ctx,
		[]domain.Status{domain.StatusConfirmed, domain.StatusPending},
		today,
	)
	if err != nil {
		return Result{}, fmt.Errorf("list open appointments: %w", err)
	}

	res := Result{TotalConsidered: len(apps)}
	current := now.Hour()*60 + now.Minute()

	for i := range apps {
		ap := &apps[i]

		ok, err := finished(ap, today, current)
		if err != nil {
			res.ErrorCount++
			uc.Metrics.AutoCompleteErrors.Inc()
			uc.Log.Warn("autocomplete.bad_time", "appointment_id", ap.ID, "time", ap.Time, "error", err)
			continue
		}
		if !ok {
			continue
		}

		previous := domain.Status(ap.Status)
		if err := domain.Complete(ap, now); err != nil {
			res.ErrorCount++
			uc.Metrics.AutoCompleteErrors.Inc()
			continue
		}

		changed, err := uc.Repo.UpdateStatusIf(ctx, ap, previous)
		if err != nil {
			res.ErrorCount++
			uc.Metrics.AutoCompleteErrors.Inc()
			uc.Log.Error("autocomplete.update_failed", "appointment_id", ap.ID, "error", err)
			continue
		}
		// Someone else moved it since the listing; their change stands.
		if !changed {
			uc.Log.Info("autocomplete.skipped_changed", "appointment_id", ap.ID)
			continue
		}

		res.CompletedCount++
		uc.Metrics.AutoCompleted.Inc()
		uc.ApplyStats(ctx, previous, ap)
		uc.Record("appointment_auto_completed", nil, ap, map[string]any{"status_from": string(previous)})
		uc.Publish(ctx, events.AppointmentModified, ap)
	}

	uc.Log.Info("autocomplete.done",
		"completed", res.CompletedCount,
		"errors", res.ErrorCount,
		"considered", res.TotalConsidered,
	)

	return res, nil
}

// finished reports whether ap has ended by currentMinutes on today.
// Earlier dates always have.
func finished(ap *models.Appointment, today string, currentMinutes int) (bool, error) {
	if ap.Date < today {
		return true, nil
	}

	start, err := schedule.ParseClock(ap.Time)
	if err != nil {
		return false, err
	}
	return start+ap.DurationOr(schedule.DefaultBookedDuration) <= currentMinutes, nil
}
