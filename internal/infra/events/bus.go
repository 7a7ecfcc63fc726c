// Package events carries live appointment events to admin dashboards.
package events

import (
	"context"
	"time"
)

const (
	AppointmentCreated   = "appointment.created"
	AppointmentModified  = "appointment.modified"
	AppointmentCancelled = "appointment.cancelled"
	AppointmentDeleted   = "appointment.deleted"
	WalkinCheckedIn      = "walkin.checked_in"
	WalkinCalled         = "walkin.called"
)

type Event struct {
	Type          string    `json:"type"`
	AppointmentID uint      `json:"appointment_id"`
	Date          string    `json:"date,omitempty"`
	Time          string    `json:"time,omitempty"`
	Status        string    `json:"status,omitempty"`
	ClientName    string    `json:"client_name,omitempty"`
	At            time.Time `json:"at"`
}

// Bus is a publish/subscribe channel. Publishing never blocks on slow
// subscribers.
type Bus interface {
	Publish(ctx context.Context, ev Event) error
	// Subscribe streams events until ctx is done or cancel is called.
	Subscribe(ctx context.Context) (<-chan Event, func())
}
