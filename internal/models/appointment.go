package models

import "time"

const (
	AppointmentTypeScheduled = "scheduled"
	AppointmentTypeWalkin    = "walkin"
)

type Appointment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	// ClientID only attributes statistics; display uses the snapshot below.
	ClientID    *uint  `gorm:"index" json:"client_id"`
	ClientName  string `gorm:"size:100;not null" json:"client_name"`
	ClientEmail string `gorm:"size:100" json:"client_email"`
	ClientPhone string `gorm:"size:20" json:"client_phone"`

	ServiceID *uint    `json:"service_id"`
	Service   *Service `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"service,omitempty"`

	Barber string `gorm:"size:100" json:"barber"`

	Date string `gorm:"size:10;not null;index" json:"date"`
	Time string `gorm:"size:5;not null" json:"time"`

	AppointmentType string `gorm:"size:10;default:'scheduled';index" json:"appointment_type"`
	Status          string `gorm:"size:20;default:'pending';index" json:"status"`

	QueuePosition        *int       `json:"queue_position,omitempty"`
	EstimatedWaitMinutes *int       `json:"estimated_wait_minutes,omitempty"`
	CheckedInAt          *time.Time `json:"checked_in_at,omitempty"`

	CancellationToken string `gorm:"size:64;uniqueIndex" json:"-"`
	ReminderSent      bool   `gorm:"default:false" json:"reminder_sent"`

	Notes       string     `gorm:"size:500" json:"notes"`
	CancelledAt *time.Time `json:"cancelled_at"`
	CompletedAt *time.Time `json:"completed_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// DurationOr returns the service duration in minutes, or def when the
// service is not loaded or has no duration.
func (a *Appointment) DurationOr(def int) int {
	if a.Service != nil && a.Service.DurationMin > 0 {
		return a.Service.DurationMin
	}
	return def
}

func (a *Appointment) IsWalkin() bool {
	return a.AppointmentType == AppointmentTypeWalkin
}
