package appointment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/barbershop-booking/internal/domain/schedule"
	"github.com/BruksfildServices01/barbershop-booking/internal/httperr"
	"github.com/BruksfildServices01/barbershop-booking/internal/timezone"
)

// validateSlot runs the booking rules for one requested start on date.
// It only reads; callers hold the date lock and write afterwards.
func (d Deps) validateSlot(
	ctx context.Context,
	date time.Time,
	start int,
	duration int,
	excludeID uint,
) error {

	closedDays, err := d.Calendar.ListClosedDays(ctx)
	if err != nil {
		return err
	}
	if schedule.IsDateClosed(date, closedDays) {
		return httperr.ErrClosed("shop_closed")
	}

	hours, err := d.Calendar.ListOpeningHours(ctx)
	if err != nil {
		return err
	}
	// Unconfigured weekdays count as closed here too, not as a default
	// closing time.
	day, ok := schedule.ResolveDayHours(date, hours)
	if !ok {
		return httperr.ErrClosed("shop_closed")
	}

	existing, err := d.Repo.ListActiveScheduledForDate(ctx, timezone.DateString(date), excludeID)
	if err != nil {
		return err
	}

	switch code := schedule.SlotViolation(day, start, duration, schedule.BookedIntervals(existing)); code {
	case "":
		return nil
	case "slot_conflict":
		return httperr.ErrConflict(code)
	default:
		return httperr.ErrBusiness(code)
	}
}

// parseDateTime validates a YYYY-MM-DD date and HH:MM time in the shop's
// location and returns the start in minutes since midnight.
func (d Deps) parseDateTime(dateStr, timeStr string) (time.Time, int, error) {
	loc := d.Clock.Now().Location()

	date, err := timezone.ParseDate(dateStr, loc)
	if err != nil {
		return time.Time{}, 0, httperr.ErrBusiness("invalid_date_or_time")
	}

	start, err := schedule.ParseClock(timeStr)
	if err != nil {
		return time.Time{}, 0, httperr.ErrBusiness("invalid_date_or_time")
	}

	return date, start, nil
}

func (d Deps) isPast(date time.Time, start int) bool {
	at := time.Date(date.Year(), date.Month(), date.Day(), start/60, start%60, 0, 0, date.Location())
	return at.Before(d.Clock.Now())
}

// conflictSeen counts and audits a rejected booking.
func (d Deps) conflictSeen(err error, actorID *uint, date string, hm string) {
	if httperr.KindOf(err) != httperr.KindConflict {
		return
	}
	d.Metrics.SlotConflicts.Inc()
	d.Record("appointment_conflict", actorID, nil, map[string]any{
		"date": date,
		"time": hm,
	})
}
