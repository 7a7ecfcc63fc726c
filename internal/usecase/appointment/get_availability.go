package appointment

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/barbershop-booking/internal/domain/schedule"
	"github.com/BruksfildServices01/barbershop-booking/internal/httperr"
	"github.com/BruksfildServices01/barbershop-booking/internal/timezone"
)

type AvailabilityInput struct {
	Date      string
	ServiceID uint
}

type AvailabilityResult struct {
	Date   string          `json:"date"`
	Slots  []schedule.Slot `json:"slots"`
	Closed bool            `json:"closed"`
}

type GetAvailability struct {
	Deps
}

func NewGetAvailability(d Deps) *GetAvailability {
	return &GetAvailability{Deps: d}
}

// Execute lists the day's slot grid for the service. A closed or
// unconfigured day yields Closed with no slots. On today, slots already
// started are reported unavailable.
func (uc *GetAvailability) Execute(
	ctx context.Context,
	in AvailabilityInput,
) (*AvailabilityResult, error) {

	now := uc.Clock.Now()

	date, err := timezone.ParseDate(in.Date, now.Location())
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date_or_time")
	}
	if in.ServiceID == 0 {
		return nil, httperr.ErrBusiness("service_required")
	}

	svc, err := uc.Repo.GetService(ctx, in.ServiceID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrNotFound("service_not_found")
		}
		return nil, err
	}

	duration := svc.DurationMin
	if duration <= 0 {
		duration = schedule.DefaultBookedDuration
	}

	hours, err := uc.Calendar.ListOpeningHours(ctx)
	if err != nil {
		return nil, err
	}
	closedDays, err := uc.Calendar.ListClosedDays(ctx)
	if err != nil {
		return nil, err
	}

	out := &AvailabilityResult{Date: in.Date, Slots: []schedule.Slot{}}

	if date.Before(timezone.StartOfDay(now)) {
		out.Closed = true
		return out, nil
	}

	existing, err := uc.Repo.ListActiveScheduledForDate(ctx, in.Date, 0)
	if err != nil {
		return nil, err
	}

	slots := schedule.AvailableSlotsWithStep(
		date,
		duration,
		schedule.BookedIntervals(existing),
		hours,
		closedDays,
		uc.SlotStep,
	)
	if len(slots) == 0 {
		out.Closed = true
		return out, nil
	}

	if timezone.DateString(now) == in.Date {
		current := now.Hour()*60 + now.Minute()
		for i := range slots {
			if schedule.TimeToMinutes(slots[i].Time) <= current {
				slots[i].Available = false
			}
		}
	}

	out.Slots = slots
	return out, nil
}
