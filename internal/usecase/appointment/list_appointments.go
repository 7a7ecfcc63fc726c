package appointment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/barbershop-booking/internal/domain/schedule"
	"github.com/BruksfildServices01/barbershop-booking/internal/dto"
	"github.com/BruksfildServices01/barbershop-booking/internal/httperr"
	"github.com/BruksfildServices01/barbershop-booking/internal/models"
	"github.com/BruksfildServices01/barbershop-booking/internal/timezone"
)

func endTime(ap *models.Appointment) string {
	if ap.IsWalkin() {
		return ""
	}
	m, err := schedule.ParseClock(ap.Time)
	if err != nil {
		return ""
	}
	return schedule.MinutesToTime(m + ap.DurationOr(schedule.DefaultBookedDuration))
}

// ======================================================
// BY DATE
// ======================================================

type ListAppointmentsByDate struct {
	Deps
}

func NewListAppointmentsByDate(d Deps) *ListAppointmentsByDate {
	return &ListAppointmentsByDate{Deps: d}
}

func (uc *ListAppointmentsByDate) Execute(
	ctx context.Context,
	date string,
) ([]dto.AppointmentListDTO, error) {

	day, err := timezone.ParseDate(date, uc.Clock.Now().Location())
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date_or_time")
	}

	apps, err := uc.Repo.ListForPeriod(
		ctx,
		timezone.DateString(day),
		timezone.DateString(day.AddDate(0, 0, 1)),
	)
	if err != nil {
		return nil, err
	}

	return dto.NewAppointmentList(apps, endTime), nil
}

// ======================================================
// BY MONTH
// ======================================================

type ListAppointmentsByMonth struct {
	Deps
}

func NewListAppointmentsByMonth(d Deps) *ListAppointmentsByMonth {
	return &ListAppointmentsByMonth{Deps: d}
}

func (uc *ListAppointmentsByMonth) Execute(
	ctx context.Context,
	year int,
	month int,
) ([]dto.AppointmentListDTO, error) {

	if month < 1 || month > 12 || year < 2000 || year > 2100 {
		return nil, httperr.ErrBusiness("invalid_month")
	}

	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, uc.Clock.Now().Location())
	end := start.AddDate(0, 1, 0)

	apps, err := uc.Repo.ListForPeriod(
		ctx,
		timezone.DateString(start),
		timezone.DateString(end),
	)
	if err != nil {
		return nil, err
	}

	return dto.NewAppointmentList(apps, endTime), nil
}
