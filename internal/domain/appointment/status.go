package appointment

import (
	"slices"

	"github.com/BruksfildServices01/barbershop-booking/internal/httperr"
	"github.com/BruksfildServices01/barbershop-booking/internal/models"
)

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
	StatusNoShow    Status = "noshow"
	StatusInQueue   Status = "inqueue"
	StatusInService Status = "inservice"
)

func ParseStatus(s string) (Status, bool) {
	st := Status(s)
	switch st {
	case StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled,
		StatusNoShow, StatusInQueue, StatusInService:
		return st, true
	}
	return "", false
}

func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled || s == StatusNoShow
}

var scheduledTransitions = map[Status][]Status{
	StatusPending:   {StatusConfirmed, StatusCompleted, StatusCancelled, StatusNoShow},
	StatusConfirmed: {StatusCompleted, StatusCancelled, StatusNoShow},
}

// inservice is absent as a target: it is only reachable through CallNext.
var walkinTransitions = map[Status][]Status{
	StatusInQueue:   {StatusCancelled, StatusNoShow},
	StatusInService: {StatusCompleted, StatusCancelled, StatusNoShow},
}

// ===============================
// Validations
// ===============================

// CanTransition validates a status change requested through a regular
// update. Moving to the current status is allowed and changes nothing.
func CanTransition(appointmentType string, from, to Status) error {
	if from == to {
		return nil
	}

	table := scheduledTransitions
	if appointmentType == models.AppointmentTypeWalkin {
		table = walkinTransitions
	}

	if !slices.Contains(table[from], to) {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

// CanCallIn validates the queue-only inqueue → inservice move.
func CanCallIn(ap *models.Appointment) error {
	if !ap.IsWalkin() || Status(ap.Status) != StatusInQueue {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

// InitialStatus is the status of a freshly booked scheduled appointment
// unless the admin picks confirmed.
func InitialStatus(requested string) (Status, error) {
	if requested == "" {
		return StatusPending, nil
	}
	st := Status(requested)
	if st != StatusPending && st != StatusConfirmed {
		return "", httperr.ErrBusiness("invalid_initial_status")
	}
	return st, nil
}
