package schedule

import (
	"time"

	"github.com/BruksfildServices01/barbershop-booking/internal/models"
)

// DefaultBookedDuration applies to bookings whose service is unknown.
const DefaultBookedDuration = 45

type Slot struct {
	Time      string `json:"time"`
	Available bool   `json:"available"`
}

// Interval is a half-open [Start, End) range in minutes since midnight.
type Interval struct {
	Start int
	End   int
}

func (i Interval) Overlaps(o Interval) bool {
	return i.Start < o.End && i.End > o.Start
}

// BookedIntervals converts appointments into intervals. Walk-ins are not
// time-slotted and are skipped.
func BookedIntervals(appointments []models.Appointment) []Interval {
	out := make([]Interval, 0, len(appointments))
	for i := range appointments {
		ap := &appointments[i]
		if ap.IsWalkin() {
			continue
		}
		start := TimeToMinutes(ap.Time)
		out = append(out, Interval{Start: start, End: start + ap.DurationOr(DefaultBookedDuration)})
	}
	return out
}

// HasConflict reports whether candidate overlaps any booked interval.
func HasConflict(candidate Interval, booked []Interval) bool {
	for _, b := range booked {
		if candidate.Overlaps(b) {
			return true
		}
	}
	return false
}

// AvailableSlots uses the default 30 minute grid.
func AvailableSlots(
	date time.Time,
	serviceDuration int,
	booked []Interval,
	openingHours []models.OpeningHour,
	closedDays []models.ClosedDay,
) []Slot {
	return AvailableSlotsWithStep(date, serviceDuration, booked, openingHours, closedDays, DefaultSlotStep)
}

// AvailableSlotsWithStep lists every grid slot of date with its
// availability. An empty result means the date is not bookable at all.
// booked must already be restricted to date and to active appointments.
func AvailableSlotsWithStep(
	date time.Time,
	serviceDuration int,
	booked []Interval,
	openingHours []models.OpeningHour,
	closedDays []models.ClosedDay,
	step int,
) []Slot {
	if IsDateClosed(date, closedDays) {
		return []Slot{}
	}

	hours, ok := ResolveDayHours(date, openingHours)
	if !ok {
		return []Slot{}
	}

	closeAt := TimeToMinutes(hours.CloseTime)
	grid := GenerateTimeSlots(hours.OpenTime, hours.CloseTime, step)

	slots := make([]Slot, 0, len(grid))
	for _, hm := range grid {
		start := TimeToMinutes(hm)
		candidate := Interval{Start: start, End: start + serviceDuration}

		available := !IsInBreak(hm, hours.BreakStart, hours.BreakEnd) &&
			candidate.End <= closeAt &&
			!HasConflict(candidate, booked)

		slots = append(slots, Slot{Time: hm, Available: available})
	}
	return slots
}

// NextAvailableDates collects up to count open dates starting at start.
// The walk stops after count*4 days even if fewer dates were found.
func NextAvailableDates(
	start time.Time,
	count int,
	openingHours []models.OpeningHour,
	closedDays []models.ClosedDay,
) []time.Time {
	if count <= 0 {
		return []time.Time{}
	}

	day := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, start.Location())
	out := make([]time.Time, 0, count)

	for i := 0; i < count*4 && len(out) < count; i++ {
		if _, open := ResolveDayHours(day, openingHours); open && !IsDateClosed(day, closedDays) {
			out = append(out, day)
		}
		day = day.AddDate(0, 0, 1)
	}
	return out
}

// SlotViolation checks a single requested start time against the day's
// rules and returns a violation code, or "" when the slot is bookable.
// The caller has already resolved hours for the date.
func SlotViolation(hours *models.OpeningHour, start, duration int, booked []Interval) string {
	if start < TimeToMinutes(hours.OpenTime) {
		return "outside_working_hours"
	}
	if IsInBreak(MinutesToTime(start), hours.BreakStart, hours.BreakEnd) {
		return "in_break"
	}
	if start+duration > TimeToMinutes(hours.CloseTime) {
		return "past_closing"
	}
	if HasConflict(Interval{Start: start, End: start + duration}, booked) {
		return "slot_conflict"
	}
	return ""
}
