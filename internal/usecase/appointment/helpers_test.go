package appointment_test

import "github.com/BruksfildServices01/barbershop-booking/internal/models"

func fixtureClosed(date string, recurring bool) models.ClosedDay {
	return models.ClosedDay{Date: date, Type: models.ClosedDayHoliday, Recurring: recurring}
}

func ptr[T any](v T) *T {
	return &v
}
