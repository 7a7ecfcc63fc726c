package models

import "time"

const (
	ClosedDayHoliday  = "holiday"
	ClosedDayVacation = "vacation"
	ClosedDaySpecial  = "special"
)

// ClosedDay suppresses bookings on a date. Recurring entries match on
// month and day only.
type ClosedDay struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Date      string `gorm:"size:10;not null;index" json:"date"`
	Type      string `gorm:"size:20;default:'holiday'" json:"type"`
	Reason    string `gorm:"size:255" json:"reason"`
	Recurring bool   `json:"recurring"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
