package appointment

import (
	"context"

	"github.com/BruksfildServices01/barbershop-booking/internal/audit"
	domain "github.com/BruksfildServices01/barbershop-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barbershop-booking/internal/infra/archive"
	"github.com/BruksfildServices01/barbershop-booking/internal/infra/events"
	"github.com/BruksfildServices01/barbershop-booking/internal/infra/lock"
	"github.com/BruksfildServices01/barbershop-booking/internal/infra/notify"
	"github.com/BruksfildServices01/barbershop-booking/internal/logger"
	"github.com/BruksfildServices01/barbershop-booking/internal/metrics"
	"github.com/BruksfildServices01/barbershop-booking/internal/models"
	"github.com/BruksfildServices01/barbershop-booking/internal/timezone"
	"github.com/BruksfildServices01/barbershop-booking/internal/usecase/clientstats"
)

type Auditor interface {
	Dispatch(ev audit.Event)
}

type Notifier interface {
	Dispatch(n notify.Notification) bool
}

type Publisher interface {
	Publish(ctx context.Context, ev events.Event) error
}

// Deps are the collaborators shared by the scheduling use cases.
type Deps struct {
	Repo     domain.Repository
	Calendar domain.CalendarRepository
	Clients  domain.ClientRepository
	Stats    *clientstats.Reconciler
	Locker   lock.Locker
	Events   Publisher
	Notifier Notifier
	Audit    Auditor
	Archiver archive.Archiver
	Clock    timezone.Clock
	Log      logger.Logger
	Metrics  *metrics.Metrics
	SlotStep int
}

// Publish is fire-and-forget: a failed publish is logged, never returned.
func (d Deps) Publish(ctx context.Context, kind string, ap *models.Appointment) {
	ev := events.Event{
		Type:          kind,
		AppointmentID: ap.ID,
		Date:          ap.Date,
		Time:          ap.Time,
		Status:        ap.Status,
		ClientName:    ap.ClientName,
		At:            d.Clock.Now(),
	}
	if err := d.Events.Publish(ctx, ev); err != nil {
		d.Log.Warn("events.publish_failed", "type", kind, "appointment_id", ap.ID, "error", err)
	}
}

func (d Deps) Notify(kind string, ap *models.Appointment) bool {
	n := notify.Notification{
		Kind:          kind,
		AppointmentID: ap.ID,
		ClientName:    ap.ClientName,
		ClientEmail:   ap.ClientEmail,
		ClientPhone:   ap.ClientPhone,
		Date:          ap.Date,
		Time:          ap.Time,
		CancelToken:   ap.CancellationToken,
	}
	if ap.Service != nil {
		n.Service = ap.Service.Name
	}
	return d.Notifier.Dispatch(n)
}

func (d Deps) Record(action string, actorID *uint, ap *models.Appointment, meta any) {
	var entityID *uint
	if ap != nil && ap.ID != 0 {
		id := ap.ID
		entityID = &id
	}
	d.Audit.Dispatch(audit.Event{
		UserID:   actorID,
		Action:   action,
		Entity:   "appointment",
		EntityID: entityID,
		Metadata: meta,
	})
}

// ApplyStats updates client aggregates after a status change. Failures
// are logged and counted; the status change already committed stands.
func (d Deps) ApplyStats(ctx context.Context, previous domain.Status, ap *models.Appointment) {
	if err := d.Stats.Apply(ctx, previous, ap); err != nil {
		d.Metrics.StatsFailures.Inc()
		d.Log.Error("client_stats.apply_failed", "appointment_id", ap.ID, "error", err)
	}
}

// ReverseStats is ApplyStats for deletions.
func (d Deps) ReverseStats(ctx context.Context, ap *models.Appointment) {
	if err := d.Stats.Reverse(ctx, ap); err != nil {
		d.Metrics.StatsFailures.Inc()
		d.Log.Error("client_stats.reverse_failed", "appointment_id", ap.ID, "client_id", ap.ClientID, "error", err)
	}
}

// WithLock runs fn while holding key.
func (d Deps) WithLock(ctx context.Context, key string, fn func() error) error {
	release, err := d.Locker.Acquire(ctx, key)
	if err != nil {
		return err
	}
	defer release()
	return fn()
}
