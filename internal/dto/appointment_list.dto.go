package dto

import (
	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/barbershop-booking/internal/models"
)

type AppointmentListDTO struct {
	ID              uint            `json:"id"`
	Date            string          `json:"date"`
	Time            string          `json:"time"`
	EndTime         string          `json:"end_time,omitempty"`
	Status          string          `json:"status"`
	AppointmentType string          `json:"appointment_type"`
	ClientName      string          `json:"client_name"`
	ClientPhone     string          `json:"client_phone,omitempty"`
	ServiceName     string          `json:"service_name"`
	Price           decimal.Decimal `json:"price"`
	Barber          string          `json:"barber,omitempty"`
	QueuePosition   *int            `json:"queue_position,omitempty"`
	Notes           string          `json:"notes,omitempty"`
}

// NewAppointmentList flattens appointments for the admin calendar.
// endOf computes the displayed end time and may be nil.
func NewAppointmentList(apps []models.Appointment, endOf func(*models.Appointment) string) []AppointmentListDTO {
	out := make([]AppointmentListDTO, 0, len(apps))
	for i := range apps {
		ap := &apps[i]

		item := AppointmentListDTO{
			ID:              ap.ID,
			Date:            ap.Date,
			Time:            ap.Time,
			Status:          ap.Status,
			AppointmentType: ap.AppointmentType,
			ClientName:      ap.ClientName,
			ClientPhone:     ap.ClientPhone,
			Barber:          ap.Barber,
			QueuePosition:   ap.QueuePosition,
			Notes:           ap.Notes,
		}
		if ap.Service != nil {
			item.ServiceName = ap.Service.Name
			item.Price = ap.Service.Price
		}
		if endOf != nil {
			item.EndTime = endOf(ap)
		}
		out = append(out, item)
	}
	return out
}
