package appointment

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/barbershop-booking/internal/httperr"
	"github.com/BruksfildServices01/barbershop-booking/internal/infra/events"
	"github.com/BruksfildServices01/barbershop-booking/internal/timezone"
)

// ======================================================
// DELETE
// ======================================================

type DeleteAppointment struct {
	Deps
}

func NewDeleteAppointment(d Deps) *DeleteAppointment {
	return &DeleteAppointment{Deps: d}
}

// Execute removes the appointment and takes it back out of its client's
// statistics. A statistics failure does not undo the delete.
func (uc *DeleteAppointment) Execute(
	ctx context.Context,
	id uint,
	actorID *uint,
) error {

	ap, err := uc.Repo.GetAppointment(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return httperr.ErrNotFound("appointment_not_found")
		}
		return err
	}

	if err := uc.Repo.DeleteAppointment(ctx, ap.ID); err != nil {
		return err
	}

	uc.ReverseStats(ctx, ap)
	uc.Record("appointment_deleted", actorID, ap, map[string]any{
		"date":   ap.Date,
		"time":   ap.Time,
		"status": ap.Status,
	})
	uc.Publish(ctx, events.AppointmentDeleted, ap)

	return nil
}

// ======================================================
// PURGE
// ======================================================

type PurgeResult struct {
	Purged     int `json:"purged"`
	ErrorCount int `json:"error_count"`
	Considered int `json:"total_considered"`
}

type PurgeAppointments struct {
	Deps
}

func NewPurgeAppointments(d Deps) *PurgeAppointments {
	return &PurgeAppointments{Deps: d}
}

// Execute archives and deletes every appointment dated before `before`,
// which may not be later than today. An appointment that fails to
// archive is kept.
func (uc *PurgeAppointments) Execute(
	ctx context.Context,
	before string,
	actorID *uint,
) (PurgeResult, error) {

	now := uc.Clock.Now()
	cutoff, err := timezone.ParseDate(before, now.Location())
	if err != nil {
		return PurgeResult{}, httperr.ErrBusiness("invalid_date_or_time")
	}
	if cutoff.After(timezone.StartOfDay(now)) {
		return PurgeResult{}, httperr.ErrBusiness("purge_future_date")
	}

	apps, err := uc.Repo.ListBefore(ctx, before)
	if err != nil {
		return PurgeResult{}, err
	}

	res := PurgeResult{Considered: len(apps)}

	for i := range apps {
		ap := &apps[i]

		if err := uc.Archiver.Archive(ctx, *ap); err != nil {
			res.ErrorCount++
			uc.Log.Error("purge.archive_failed", "appointment_id", ap.ID, "error", err)
			continue
		}

		if err := uc.Repo.DeleteAppointment(ctx, ap.ID); err != nil {
			res.ErrorCount++
			uc.Log.Error("purge.delete_failed", "appointment_id", ap.ID, "error", err)
			continue
		}

		uc.ReverseStats(ctx, ap)
		res.Purged++
	}

	uc.Record("appointments_purged", actorID, nil, map[string]any{
		"before": before,
		"purged": res.Purged,
		"errors": res.ErrorCount,
	})

	return res, nil
}
