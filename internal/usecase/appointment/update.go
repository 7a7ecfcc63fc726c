package appointment

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/barbershop-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barbershop-booking/internal/domain/schedule"
	"github.com/BruksfildServices01/barbershop-booking/internal/httperr"
	"github.com/BruksfildServices01/barbershop-booking/internal/infra/events"
	"github.com/BruksfildServices01/barbershop-booking/internal/infra/lock"
	"github.com/BruksfildServices01/barbershop-booking/internal/infra/notify"
	"github.com/BruksfildServices01/barbershop-booking/internal/models"
)

// ======================================================
// INPUT
// ======================================================

// UpdateAppointmentInput is a partial update: nil fields are left alone.
type UpdateAppointmentInput struct {
	ID uint

	Date      *string
	Time      *string
	ServiceID *uint
	Barber    *string
	Notes     *string
	Status    *string

	ActorID *uint
}

// ======================================================
// USE CASE
// ======================================================

type UpdateAppointment struct {
	Deps
}

func NewUpdateAppointment(d Deps) *UpdateAppointment {
	return &UpdateAppointment{Deps: d}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *UpdateAppointment) Execute(
	ctx context.Context,
	in UpdateAppointmentInput,
) (*models.Appointment, error) {

	ap, err := uc.Repo.GetAppointment(ctx, in.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrNotFound("appointment_not_found")
		}
		return nil, err
	}

	previous := domain.Status(ap.Status)

	var target *domain.Status
	if in.Status != nil {
		st, ok := domain.ParseStatus(strings.TrimSpace(*in.Status))
		if !ok {
			return nil, httperr.ErrBusiness("invalid_status")
		}
		target = &st
	}

	// --------------------------------------------------
	// Resolve the effective date, time and service
	// --------------------------------------------------
	newDate, newTime := ap.Date, ap.Time
	if in.Date != nil {
		newDate = *in.Date
	}
	if in.Time != nil {
		newTime = *in.Time
	}

	newService := ap.Service
	serviceChanged := in.ServiceID != nil && (ap.ServiceID == nil || *ap.ServiceID != *in.ServiceID)
	if serviceChanged {
		svc, err := uc.Repo.GetService(ctx, *in.ServiceID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, httperr.ErrNotFound("service_not_found")
			}
			return nil, err
		}
		if !svc.Active {
			return nil, httperr.ErrBusiness("service_inactive")
		}
		newService = svc
	}

	moved := newDate != ap.Date || newTime != ap.Time
	reschedule := moved || serviceChanged

	apply := func() error {
		if reschedule {
			ap.Date = newDate
			ap.Time = newTime
			ap.Service = newService
			if newService != nil {
				ap.ServiceID = &newService.ID
			}
			if moved {
				ap.ReminderSent = false
			}
		}
		if in.Barber != nil {
			ap.Barber = *in.Barber
		}
		if in.Notes != nil {
			ap.Notes = *in.Notes
		}
		if target != nil {
			if err := domain.Transition(ap, *target, uc.Clock.Now()); err != nil {
				return err
			}
		}
		return nil
	}

	// --------------------------------------------------
	// Status and detail updates skip slot validation
	// --------------------------------------------------
	if !reschedule {
		if err := apply(); err != nil {
			return nil, err
		}
		changed, err := uc.Repo.UpdateStatusIf(ctx, ap, previous)
		if err != nil {
			return nil, err
		}
		if !changed {
			return nil, httperr.ErrBusiness("status_changed")
		}
		uc.afterUpdate(ctx, in.ActorID, previous, ap, nil)
		return ap, nil
	}

	// --------------------------------------------------
	// Reschedule
	// --------------------------------------------------
	if ap.IsWalkin() || previous.IsTerminal() {
		return nil, httperr.ErrBusiness("invalid_state")
	}

	date, start, err := uc.parseDateTime(newDate, newTime)
	if err != nil {
		return nil, err
	}
	if moved && uc.isPast(date, start) {
		return nil, httperr.ErrBusiness("in_the_past")
	}

	from := map[string]any{"date": ap.Date, "time": ap.Time, "service_id": ap.ServiceID}

	duration := schedule.DefaultBookedDuration
	if newService != nil && newService.DurationMin > 0 {
		duration = newService.DurationMin
	}

	err = uc.WithLock(ctx, lock.DateKey(newDate), func() error {
		if err := uc.validateSlot(ctx, date, start, duration, ap.ID); err != nil {
			return err
		}
		if err := apply(); err != nil {
			return err
		}
		if err := uc.Repo.UpdateAppointment(ctx, ap); err != nil {
			if httperr.KindOf(err) == httperr.KindConflict {
				return httperr.ErrConflict("slot_conflict")
			}
			return err
		}
		return nil
	})
	if err != nil {
		uc.conflictSeen(err, in.ActorID, newDate, newTime)
		return nil, err
	}

	uc.afterUpdate(ctx, in.ActorID, previous, ap, map[string]any{"from": from})
	return ap, nil
}

func (uc *UpdateAppointment) afterUpdate(
	ctx context.Context,
	actorID *uint,
	previous domain.Status,
	ap *models.Appointment,
	meta map[string]any,
) {
	current := domain.Status(ap.Status)
	if current != previous {
		uc.ApplyStats(ctx, previous, ap)
		if meta == nil {
			meta = map[string]any{}
		}
		meta["status_from"] = string(previous)
		meta["status_to"] = string(current)
	}

	if current == domain.StatusCancelled && previous != current {
		uc.Record("appointment_cancelled", actorID, ap, meta)
		uc.Publish(ctx, events.AppointmentCancelled, ap)
		uc.Notify(notify.KindCancellation, ap)
		return
	}

	uc.Record("appointment_updated", actorID, ap, meta)
	uc.Publish(ctx, events.AppointmentModified, ap)
}
