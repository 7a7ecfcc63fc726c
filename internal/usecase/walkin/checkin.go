// Package walkin runs the same-day walk-in queue.
package walkin

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/barbershop-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barbershop-booking/internal/httperr"
	"github.com/BruksfildServices01/barbershop-booking/internal/infra/events"
	"github.com/BruksfildServices01/barbershop-booking/internal/infra/lock"
	"github.com/BruksfildServices01/barbershop-booking/internal/models"
	"github.com/BruksfildServices01/barbershop-booking/internal/timezone"
	booking "github.com/BruksfildServices01/barbershop-booking/internal/usecase/appointment"
)

// DefaultWalkinDuration is assumed for walk-ins without a known service.
const DefaultWalkinDuration = 20

// allStatuses feeds the next queue position. Positions count every
// walk-in of the day, not only those still queued or in service, so a
// number is never handed out twice within a day.
var allStatuses = []domain.Status{
	domain.StatusPending,
	domain.StatusConfirmed,
	domain.StatusCompleted,
	domain.StatusCancelled,
	domain.StatusNoShow,
	domain.StatusInQueue,
	domain.StatusInService,
}

func waitFor(ap *models.Appointment) int {
	return ap.DurationOr(DefaultWalkinDuration)
}

// ======================================================
// CHECK-IN
// ======================================================

type CheckInInput struct {
	ClientName  string
	ClientPhone string
	ServiceID   *uint
	Barber      string
	Notes       string
	ActorID     *uint
}

type CheckIn struct {
	booking.Deps
}

func NewCheckIn(d booking.Deps) *CheckIn {
	return &CheckIn{Deps: d}
}

// Execute appends a walk-in to today's queue. Positions only grow during
// a day, whatever happened to earlier walk-ins.
func (uc *CheckIn) Execute(
	ctx context.Context,
	in CheckInInput,
) (*models.Appointment, error) {

	in.ClientName = strings.TrimSpace(in.ClientName)
	if in.ClientName == "" {
		return nil, httperr.ErrBusiness("client_name_required")
	}

	var svc *models.Service
	if in.ServiceID != nil {
		s, err := uc.Repo.GetService(ctx, *in.ServiceID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, httperr.ErrNotFound("service_not_found")
			}
			return nil, err
		}
		svc = s
	}

	var clientID *uint
	if in.ClientPhone != "" {
		c, err := uc.Clients.FindOrCreateClient(ctx, in.ClientName, in.ClientPhone, "")
		if err != nil {
			return nil, err
		}
		clientID = &c.ID
	}

	now := uc.Clock.Now()
	today := timezone.DateString(now)

	ap := &models.Appointment{
		ClientID:          clientID,
		ClientName:        in.ClientName,
		ClientPhone:       strings.TrimSpace(in.ClientPhone),
		ServiceID:         in.ServiceID,
		Service:           svc,
		Barber:            in.Barber,
		Date:              today,
		Time:              now.Format(timezone.ClockLayout),
		AppointmentType:   models.AppointmentTypeWalkin,
		Status:            string(domain.StatusInQueue),
		CheckedInAt:       &now,
		CancellationToken: uuid.NewString(),
		Notes:             in.Notes,
	}

	err := uc.WithLock(ctx, lock.QueueKey(today), func() error {
		last, err := uc.Repo.ListWalkins(ctx, today, allStatuses, true)
		if err != nil {
			return err
		}

		position := 1
		if len(last) > 0 && last[0].QueuePosition != nil {
			position = *last[0].QueuePosition + 1
		}

		waiting, err := uc.Repo.ListWalkins(ctx, today, []domain.Status{domain.StatusInQueue}, false)
		if err != nil {
			return err
		}

		wait := 0
		for i := range waiting {
			wait += waitFor(&waiting[i])
		}

		ap.QueuePosition = &position
		ap.EstimatedWaitMinutes = &wait

		return uc.Repo.CreateAppointment(ctx, ap)
	})
	if err != nil {
		return nil, err
	}

	uc.Metrics.WalkinsCheckedIn.Inc()
	uc.Record("walkin_checked_in", in.ActorID, ap, map[string]any{"queue_position": *ap.QueuePosition})
	uc.Publish(ctx, events.WalkinCheckedIn, ap)

	return ap, nil
}
