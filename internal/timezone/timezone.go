package timezone

import "time"

const DefaultTimezone = "America/Sao_Paulo"

// DateLayout is the storage format of appointment and closure dates.
const DateLayout = "2006-01-02"

// ClockLayout is the storage format of appointment times.
const ClockLayout = "15:04"

func IsValid(tz string) bool {
	if tz == "" {
		return false
	}
	_, err := time.LoadLocation(tz)
	return err == nil
}

func Location(tz string) *time.Location {
	if IsValid(tz) {
		if loc, err := time.LoadLocation(tz); err == nil {
			return loc
		}
	}

	loc, err := time.LoadLocation(DefaultTimezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// Clock is the injectable time source of the engine.
type Clock interface {
	Now() time.Time
}

// ShopClock reports the wall clock in the shop's location.
type ShopClock struct {
	Loc *time.Location
}

func NewShopClock(tz string) ShopClock {
	return ShopClock{Loc: Location(tz)}
}

func (c ShopClock) Now() time.Time {
	return time.Now().In(c.Loc)
}

// FixedClock always returns T. Used by tests and one-shot sweeps.
type FixedClock struct {
	T time.Time
}

func (c FixedClock) Now() time.Time {
	return c.T
}

// StartOfDay returns midnight of t's calendar day in t's location.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// DateString formats t's calendar day.
func DateString(t time.Time) string {
	return t.Format(DateLayout)
}

// ParseDate parses a YYYY-MM-DD date at midnight in loc.
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(DateLayout, s, loc)
}
