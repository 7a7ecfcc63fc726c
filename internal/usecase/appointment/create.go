package appointment

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/barbershop-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barbershop-booking/internal/domain/schedule"
	"github.com/BruksfildServices01/barbershop-booking/internal/httperr"
	"github.com/BruksfildServices01/barbershop-booking/internal/infra/events"
	"github.com/BruksfildServices01/barbershop-booking/internal/infra/lock"
	"github.com/BruksfildServices01/barbershop-booking/internal/infra/notify"
	"github.com/BruksfildServices01/barbershop-booking/internal/models"
	"github.com/BruksfildServices01/barbershop-booking/internal/validators"
)

// ======================================================
// INPUT
// ======================================================

type CreateAppointmentInput struct {
	ClientName  string
	ClientPhone string
	ClientEmail string

	ServiceID uint
	Barber    string

	Date  string
	Time  string
	Notes string

	// Status lets the admin book straight into confirmed.
	Status  string
	ActorID *uint
}

// ======================================================
// USE CASE
// ======================================================

type CreateAppointment struct {
	Deps
}

func NewCreateAppointment(d Deps) *CreateAppointment {
	return &CreateAppointment{Deps: d}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateAppointment) Execute(
	ctx context.Context,
	in CreateAppointmentInput,
) (*models.Appointment, error) {

	// --------------------------------------------------
	// 1. Input
	// --------------------------------------------------
	in.ClientName = strings.TrimSpace(in.ClientName)
	if in.ClientName == "" {
		return nil, httperr.ErrBusiness("client_name_required")
	}
	if in.ServiceID == 0 {
		return nil, httperr.ErrBusiness("service_required")
	}
	in.ClientEmail = strings.ToLower(strings.TrimSpace(in.ClientEmail))
	if in.ClientEmail != "" && !validators.IsEmailValid(in.ClientEmail) {
		return nil, httperr.ErrBusiness("invalid_email")
	}
	in.ClientPhone = strings.TrimSpace(in.ClientPhone)
	if in.ClientPhone != "" && !validators.IsPhoneValid(in.ClientPhone) {
		return nil, httperr.ErrBusiness("invalid_phone")
	}

	date, start, err := uc.parseDateTime(in.Date, in.Time)
	if err != nil {
		return nil, err
	}
	if uc.isPast(date, start) {
		return nil, httperr.ErrBusiness("in_the_past")
	}

	status, err := domain.InitialStatus(in.Status)
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 2. Service
	// --------------------------------------------------
	svc, err := uc.Repo.GetService(ctx, in.ServiceID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrNotFound("service_not_found")
		}
		return nil, err
	}
	if !svc.Active {
		return nil, httperr.ErrBusiness("service_inactive")
	}

	// --------------------------------------------------
	// 3. Client (weak reference for statistics)
	// --------------------------------------------------
	var clientID *uint
	if in.ClientPhone != "" || in.ClientEmail != "" {
		client, err := uc.Clients.FindOrCreateClient(ctx, in.ClientName, in.ClientPhone, in.ClientEmail)
		if err != nil {
			return nil, err
		}
		clientID = &client.ID
	}

	ap := &models.Appointment{
		ClientID:          clientID,
		ClientName:        in.ClientName,
		ClientEmail:       in.ClientEmail,
		ClientPhone:       in.ClientPhone,
		ServiceID:         &svc.ID,
		Service:           svc,
		Barber:            in.Barber,
		Date:              in.Date,
		Time:              in.Time,
		AppointmentType:   models.AppointmentTypeScheduled,
		Status:            string(status),
		CancellationToken: uuid.NewString(),
		Notes:             in.Notes,
	}

	// --------------------------------------------------
	// 4. Check and write under the date lock
	// --------------------------------------------------
	err = uc.WithLock(ctx, lock.DateKey(in.Date), func() error {
		if err := uc.validateSlot(ctx, date, start, ap.DurationOr(schedule.DefaultBookedDuration), 0); err != nil {
			return err
		}

		if err := uc.Repo.CreateAppointment(ctx, ap); err != nil {
			if httperr.KindOf(err) == httperr.KindConflict {
				return httperr.ErrConflict("slot_conflict")
			}
			return err
		}
		return nil
	})
	if err != nil {
		uc.conflictSeen(err, in.ActorID, in.Date, in.Time)
		return nil, err
	}

	// --------------------------------------------------
	// 5. Side effects
	// --------------------------------------------------
	uc.Metrics.AppointmentsCreated.Inc()
	uc.Record("appointment_created", in.ActorID, ap, nil)
	uc.Publish(ctx, events.AppointmentCreated, ap)
	uc.Notify(notify.KindBookingConfirmation, ap)

	return ap, nil
}
