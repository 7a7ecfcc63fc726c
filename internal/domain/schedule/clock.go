// Package schedule holds the pure scheduling rules: clock arithmetic,
// calendar resolution and slot availability. Nothing here touches storage.
package schedule

import (
	"fmt"
	"strconv"
	"strings"
)

// DefaultSlotStep is the spacing of the slot grid in minutes.
const DefaultSlotStep = 30

// ParseClock parses HH:MM (24h) into minutes since midnight.
func ParseClock(hm string) (int, error) {
	h, m, ok := strings.Cut(hm, ":")
	if !ok || len(h) == 0 || len(h) > 2 || len(m) != 2 {
		return 0, fmt.Errorf("invalid clock time %q", hm)
	}

	hours, err := strconv.Atoi(h)
	if err != nil || hours < 0 || hours > 23 {
		return 0, fmt.Errorf("invalid hour in %q", hm)
	}

	minutes, err := strconv.Atoi(m)
	if err != nil || minutes < 0 || minutes > 59 {
		return 0, fmt.Errorf("invalid minute in %q", hm)
	}

	return hours*60 + minutes, nil
}

// TimeToMinutes is ParseClock for values that come from configuration or
// storage. It panics on malformed input.
func TimeToMinutes(hm string) int {
	m, err := ParseClock(hm)
	if err != nil {
		panic(err)
	}
	return m
}

// MinutesToTime formats minutes since midnight as HH:MM.
func MinutesToTime(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// GenerateTimeSlots lists open, open+step, ... strictly before closeTime.
func GenerateTimeSlots(open, closeTime string, step int) []string {
	if step <= 0 {
		step = DefaultSlotStep
	}

	start := TimeToMinutes(open)
	end := TimeToMinutes(closeTime)

	slots := make([]string, 0, max(0, (end-start+step-1)/step))
	for cur := start; cur < end; cur += step {
		slots = append(slots, MinutesToTime(cur))
	}
	return slots
}
