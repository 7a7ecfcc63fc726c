package schedule

import (
	"time"

	"github.com/BruksfildServices01/barbershop-booking/internal/models"
	"github.com/BruksfildServices01/barbershop-booking/internal/timezone"
)

// IsDateClosed reports whether any closure covers date.
func IsDateClosed(date time.Time, closedDays []models.ClosedDay) bool {
	for _, cd := range closedDays {
		d, err := time.Parse(timezone.DateLayout, cd.Date)
		if err != nil {
			continue
		}

		if cd.Recurring {
			if d.Month() == date.Month() && d.Day() == date.Day() {
				return true
			}
			continue
		}

		if d.Year() == date.Year() && d.Month() == date.Month() && d.Day() == date.Day() {
			return true
		}
	}
	return false
}

// ResolveDayHours returns the opening hours of date's weekday, or false
// when the weekday is unconfigured or closed.
func ResolveDayHours(date time.Time, openingHours []models.OpeningHour) (*models.OpeningHour, bool) {
	weekday := int(date.Weekday())

	for i := range openingHours {
		oh := &openingHours[i]
		if oh.Weekday != weekday {
			continue
		}
		if oh.IsClosed || oh.OpenTime == "" || oh.CloseTime == "" {
			return nil, false
		}
		return oh, true
	}
	return nil, false
}

// IsInBreak reports whether hm is in [breakStart, breakEnd).
func IsInBreak(hm, breakStart, breakEnd string) bool {
	if breakStart == "" || breakEnd == "" {
		return false
	}

	t := TimeToMinutes(hm)
	return t >= TimeToMinutes(breakStart) && t < TimeToMinutes(breakEnd)
}
