package appointment

import (
	"context"

	"github.com/BruksfildServices01/barbershop-booking/internal/models"
)

// Repository is the record store seen by the scheduling engine.
type Repository interface {
	// -------- Service --------
	GetService(ctx context.Context, id uint) (*models.Service, error)

	// -------- Appointment --------
	CreateAppointment(ctx context.Context, ap *models.Appointment) error
	GetAppointment(ctx context.Context, id uint) (*models.Appointment, error)
	GetAppointmentByToken(ctx context.Context, token string) (*models.Appointment, error)
	UpdateAppointment(ctx context.Context, ap *models.Appointment) error

	// UpdateStatusIf writes ap's status, its timestamps, barber and notes
	// only while the stored status is still from. It reports whether the
	// row changed; date, time and service are never touched.
	UpdateStatusIf(ctx context.Context, ap *models.Appointment, from Status) (bool, error)
	DeleteAppointment(ctx context.Context, id uint) error

	// ListActiveScheduledForDate returns non-cancelled scheduled
	// appointments on date, minus excludeID when non-zero.
	ListActiveScheduledForDate(ctx context.Context, date string, excludeID uint) ([]models.Appointment, error)

	// ListForPeriod lists every appointment with from <= date < to.
	ListForPeriod(ctx context.Context, from, to string) ([]models.Appointment, error)

	// ListByStatusUpTo lists appointments in statuses with date <= date.
	ListByStatusUpTo(ctx context.Context, statuses []Status, date string) ([]models.Appointment, error)

	// ListReminderCandidates lists date's pending/confirmed appointments
	// that have not had a reminder yet.
	ListReminderCandidates(ctx context.Context, date string) ([]models.Appointment, error)

	MarkReminderSent(ctx context.Context, id uint) error

	// ListBefore lists appointments dated strictly before date.
	ListBefore(ctx context.Context, date string) ([]models.Appointment, error)

	// -------- Walk-in queue --------

	// ListWalkins returns date's walk-ins in statuses ordered by queue
	// position (descending when desc).
	ListWalkins(ctx context.Context, date string, statuses []Status, desc bool) ([]models.Appointment, error)
}

// CalendarRepository serves opening hours and closures. Reads may be
// served from a cache.
type CalendarRepository interface {
	ListOpeningHours(ctx context.Context) ([]models.OpeningHour, error)
	ListClosedDays(ctx context.Context) ([]models.ClosedDay, error)
}

// ClientRepository owns the aggregate statistics of clients.
type ClientRepository interface {
	GetClient(ctx context.Context, id uint) (*models.Client, error)
	FindOrCreateClient(ctx context.Context, name, phone, email string) (*models.Client, error)
	SaveClientStats(ctx context.Context, c *models.Client) error

	// LatestCompletedDate returns the most recent date of the client's
	// completed appointments other than excludeID, or nil.
	LatestCompletedDate(ctx context.Context, clientID uint, excludeID uint) (*string, error)
}
