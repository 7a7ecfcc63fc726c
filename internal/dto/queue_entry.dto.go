package dto

import "github.com/BruksfildServices01/barbershop-booking/internal/models"

// QueueEntry is a walk-in as shown on the queue board. The stored
// estimated_wait_minutes is the figure given at check-in;
// current_wait_minutes is recomputed from who is still queued ahead.
type QueueEntry struct {
	models.Appointment
	CurrentWaitMinutes *int `json:"current_wait_minutes,omitempty"`
}
