// Package fixture wires the scheduling use cases to in-memory
// collaborators for tests.
package fixture

import (
	"context"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/barbershop-booking/internal/audit"
	"github.com/BruksfildServices01/barbershop-booking/internal/domain/schedule"
	"github.com/BruksfildServices01/barbershop-booking/internal/infra/archive"
	"github.com/BruksfildServices01/barbershop-booking/internal/infra/events"
	"github.com/BruksfildServices01/barbershop-booking/internal/infra/lock"
	"github.com/BruksfildServices01/barbershop-booking/internal/infra/notify"
	"github.com/BruksfildServices01/barbershop-booking/internal/logger"
	"github.com/BruksfildServices01/barbershop-booking/internal/metrics"
	"github.com/BruksfildServices01/barbershop-booking/internal/models"
	"github.com/BruksfildServices01/barbershop-booking/internal/testutil/memstore"
	"github.com/BruksfildServices01/barbershop-booking/internal/timezone"
	booking "github.com/BruksfildServices01/barbershop-booking/internal/usecase/appointment"
	"github.com/BruksfildServices01/barbershop-booking/internal/usecase/clientstats"
)

// Notifier records notifications. Reject makes Dispatch refuse them.
type Notifier struct {
	mu     sync.Mutex
	Sent   []notify.Notification
	Reject bool
}

func (n *Notifier) Dispatch(x notify.Notification) bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.Reject {
		return false
	}
	n.Sent = append(n.Sent, x)
	return true
}

func (n *Notifier) Kinds() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]string, len(n.Sent))
	for i, x := range n.Sent {
		out[i] = x.Kind
	}
	return out
}

// Publisher records events.
type Publisher struct {
	mu     sync.Mutex
	Events []events.Event
}

func (p *Publisher) Publish(_ context.Context, ev events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Events = append(p.Events, ev)
	return nil
}

func (p *Publisher) Types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, len(p.Events))
	for i, ev := range p.Events {
		out[i] = ev.Type
	}
	return out
}

// Archiver records archived ids. Fail makes it fail for the given ids.
type Archiver struct {
	mu       sync.Mutex
	Archived []uint
	Fail     map[uint]bool
}

func (a *Archiver) Archive(_ context.Context, ap models.Appointment) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.Fail[ap.ID] {
		return context.DeadlineExceeded
	}
	a.Archived = append(a.Archived, ap.ID)
	return nil
}

var _ archive.Archiver = (*Archiver)(nil)

type Env struct {
	Store     *memstore.Store
	Notifier  *Notifier
	Publisher *Publisher
	Archiver  *Archiver
	Locker    *lock.LocalLocker
	Registry  *prometheus.Registry
	Metrics   *metrics.Metrics
}

// New builds an Env with a shop open Tuesday to Saturday 09:00–19:30.
func New() *Env {
	reg := prometheus.NewRegistry()

	e := &Env{
		Store:     memstore.New(),
		Notifier:  &Notifier{},
		Publisher: &Publisher{},
		Archiver:  &Archiver{Fail: map[uint]bool{}},
		Locker:    lock.NewLocalLocker(),
		Registry:  reg,
		Metrics:   metrics.NewMetrics("test", reg),
	}

	for wd := 0; wd <= 6; wd++ {
		e.Store.Hours = append(e.Store.Hours, models.OpeningHour{
			Weekday:   wd,
			OpenTime:  "09:00",
			CloseTime: "19:30",
			IsClosed:  wd == 0 || wd == 1,
		})
	}
	return e
}

// Deps returns use case collaborators whose clock reads now.
func (e *Env) Deps(now time.Time) booking.Deps {
	return booking.Deps{
		Repo:     e.Store,
		Calendar: e.Store,
		Clients:  e.Store,
		Stats:    clientstats.NewReconciler(e.Store),
		Locker:   e.Locker,
		Events:   e.Publisher,
		Notifier: e.Notifier,
		Audit:    audit.Discard{},
		Archiver: e.Archiver,
		Clock:    timezone.FixedClock{T: now},
		Log:      logger.NewNop(),
		Metrics:  e.Metrics,
		SlotStep: schedule.DefaultSlotStep,
	}
}

// Service registers an active service.
func (e *Env) Service(name string, minutes int, price string) uint {
	return e.Store.AddService(models.Service{
		Name:        name,
		DurationMin: minutes,
		Price:       decimal.RequireFromString(price),
		Active:      true,
	})
}

// Loc is the shop location used by tests.
var Loc = timezone.Location(timezone.DefaultTimezone)

// At builds a time in Loc.
func At(year int, month time.Month, day, hour, minute int) time.Time {
	return time.Date(year, month, day, hour, minute, 0, 0, Loc)
}
