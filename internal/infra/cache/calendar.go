// Package cache keeps the read-mostly calendar configuration in memory.
// Appointments and slots are never cached.
package cache

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/BruksfildServices01/barbershop-booking/internal/models"
)

// CalendarSource loads opening hours and closures from the record store.
type CalendarSource interface {
	ListOpeningHours(ctx context.Context) ([]models.OpeningHour, error)
	ListClosedDays(ctx context.Context) ([]models.ClosedDay, error)
}

const (
	keyHours  = "opening_hours"
	keyClosed = "closed_days"
)

type Calendar struct {
	source CalendarSource
	hours  *expirable.LRU[string, []models.OpeningHour]
	closed *expirable.LRU[string, []models.ClosedDay]
}

func NewCalendar(source CalendarSource, ttl time.Duration) *Calendar {
	return &Calendar{
		source: source,
		hours:  expirable.NewLRU[string, []models.OpeningHour](1, nil, ttl),
		closed: expirable.NewLRU[string, []models.ClosedDay](1, nil, ttl),
	}
}

func (c *Calendar) ListOpeningHours(ctx context.Context) ([]models.OpeningHour, error) {
	if v, ok := c.hours.Get(keyHours); ok {
		return v, nil
	}

	v, err := c.source.ListOpeningHours(ctx)
	if err != nil {
		return nil, err
	}
	c.hours.Add(keyHours, v)
	return v, nil
}

func (c *Calendar) ListClosedDays(ctx context.Context) ([]models.ClosedDay, error) {
	if v, ok := c.closed.Get(keyClosed); ok {
		return v, nil
	}

	v, err := c.source.ListClosedDays(ctx)
	if err != nil {
		return nil, err
	}
	c.closed.Add(keyClosed, v)
	return v, nil
}

// Invalidate drops both entries after an admin edit.
func (c *Calendar) Invalidate() {
	c.hours.Purge()
	c.closed.Purge()
}
