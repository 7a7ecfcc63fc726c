package appointment

import (
	"time"

	"github.com/BruksfildServices01/barbershop-booking/internal/models"
)

// ===============================
// Domain Actions
// ===============================

// Transition moves ap to status and stamps the matching timestamp.
func Transition(ap *models.Appointment, to Status, now time.Time) error {
	if err := CanTransition(ap.AppointmentType, Status(ap.Status), to); err != nil {
		return err
	}

	if Status(ap.Status) == to {
		return nil
	}

	ap.Status = string(to)
	switch to {
	case StatusCancelled:
		ap.CancelledAt = &now
	case StatusCompleted:
		ap.CompletedAt = &now
	}
	return nil
}

func Cancel(ap *models.Appointment, now time.Time) error {
	return Transition(ap, StatusCancelled, now)
}

func Complete(ap *models.Appointment, now time.Time) error {
	return Transition(ap, StatusCompleted, now)
}

// CallIn starts service for a queued walk-in. The appointment time becomes
// the service start, distinct from its check-in time.
func CallIn(ap *models.Appointment, now time.Time) error {
	if err := CanCallIn(ap); err != nil {
		return err
	}

	ap.Status = string(StatusInService)
	ap.Time = now.Format("15:04")
	return nil
}
