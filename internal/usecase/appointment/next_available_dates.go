package appointment

import (
	"context"

	"github.com/BruksfildServices01/barbershop-booking/internal/domain/schedule"
	"github.com/BruksfildServices01/barbershop-booking/internal/httperr"
	"github.com/BruksfildServices01/barbershop-booking/internal/timezone"
)

const maxAvailableDates = 60

type NextAvailableDates struct {
	Deps
}

func NewNextAvailableDates(d Deps) *NextAvailableDates {
	return &NextAvailableDates{Deps: d}
}

// Execute returns up to count open dates from `from` (today when empty).
func (uc *NextAvailableDates) Execute(
	ctx context.Context,
	from string,
	count int,
) ([]string, error) {

	now := uc.Clock.Now()
	start := timezone.StartOfDay(now)

	if from != "" {
		d, err := timezone.ParseDate(from, now.Location())
		if err != nil {
			return nil, httperr.ErrBusiness("invalid_date_or_time")
		}
		if d.After(start) {
			start = d
		}
	}

	if count <= 0 || count > maxAvailableDates {
		return nil, httperr.ErrBusiness("invalid_count")
	}

	hours, err := uc.Calendar.ListOpeningHours(ctx)
	if err != nil {
		return nil, err
	}
	closedDays, err := uc.Calendar.ListClosedDays(ctx)
	if err != nil {
		return nil, err
	}

	dates := schedule.NextAvailableDates(start, count, hours, closedDays)

	out := make([]string, len(dates))
	for i, d := range dates {
		out[i] = timezone.DateString(d)
	}
	return out, nil
}
