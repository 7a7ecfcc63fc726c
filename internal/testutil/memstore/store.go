// Package memstore is an in-memory record store for tests.
package memstore

import (
	"context"
	"slices"
	"sort"
	"sync"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/barbershop-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barbershop-booking/internal/httperr"
	"github.com/BruksfildServices01/barbershop-booking/internal/models"
)

type Store struct {
	mu sync.Mutex

	nextID uint

	Services     map[uint]*models.Service
	Appointments map[uint]*models.Appointment
	Clients      map[uint]*models.Client
	Hours        []models.OpeningHour
	Closed       []models.ClosedDay

	// FailUpdate makes UpdateAppointment and UpdateStatusIf fail for the
	// given ids.
	FailUpdate map[uint]error
	// FailClients makes every client read fail.
	FailClients error
}

func New() *Store {
	return &Store{
		Services:     map[uint]*models.Service{},
		Appointments: map[uint]*models.Appointment{},
		Clients:      map[uint]*models.Client{},
		FailUpdate:   map[uint]error{},
	}
}

func (s *Store) id() uint {
	s.nextID++
	return s.nextID
}

// AddService registers svc and returns its id.
func (s *Store) AddService(svc models.Service) uint {
	s.mu.Lock()
	defer s.mu.Unlock()

	svc.ID = s.id()
	s.Services[svc.ID] = &svc
	return svc.ID
}

// AddClient registers c and returns its id.
func (s *Store) AddClient(c models.Client) uint {
	s.mu.Lock()
	defer s.mu.Unlock()

	c.ID = s.id()
	s.Clients[c.ID] = &c
	return c.ID
}

// Put stores ap as is, bypassing the unique index.
func (s *Store) Put(ap models.Appointment) uint {
	s.mu.Lock()
	defer s.mu.Unlock()

	if ap.ID == 0 {
		ap.ID = s.id()
	}
	ap.Service = nil
	s.Appointments[ap.ID] = &ap
	return ap.ID
}

func (s *Store) load(ap *models.Appointment) models.Appointment {
	out := *ap
	if ap.ServiceID != nil {
		if svc, ok := s.Services[*ap.ServiceID]; ok {
			c := *svc
			out.Service = &c
		}
	}
	return out
}

func (s *Store) filter(keep func(*models.Appointment) bool) []models.Appointment {
	out := []models.Appointment{}
	for _, ap := range s.Appointments {
		if keep(ap) {
			out = append(out, s.load(ap))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date < out[j].Date
		}
		if out[i].Time != out[j].Time {
			return out[i].Time < out[j].Time
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func activeScheduled(ap *models.Appointment) bool {
	return ap.AppointmentType == models.AppointmentTypeScheduled &&
		ap.Status != string(domain.StatusCancelled)
}

// violatesIndex mirrors the partial unique index on (date, time).
func (s *Store) violatesIndex(ap *models.Appointment) bool {
	if !activeScheduled(ap) {
		return false
	}
	for _, other := range s.Appointments {
		if other.ID != ap.ID && activeScheduled(other) &&
			other.Date == ap.Date && other.Time == ap.Time {
			return true
		}
	}
	return false
}

func uniqueViolation() error {
	return &pgconn.PgError{Code: "23505", ConstraintName: "idx_appointments_active_slot"}
}

// --------------------------------------------------
// Repository
// --------------------------------------------------

func (s *Store) GetService(_ context.Context, id uint) (*models.Service, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	svc, ok := s.Services[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	c := *svc
	return &c, nil
}

func (s *Store) CreateAppointment(_ context.Context, ap *models.Appointment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.violatesIndex(ap) {
		return uniqueViolation()
	}

	ap.ID = s.id()
	stored := *ap
	stored.Service = nil
	s.Appointments[ap.ID] = &stored
	return nil
}

func (s *Store) GetAppointment(_ context.Context, id uint) (*models.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ap, ok := s.Appointments[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	out := s.load(ap)
	return &out, nil
}

func (s *Store) GetAppointmentByToken(_ context.Context, token string) (*models.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, ap := range s.Appointments {
		if ap.CancellationToken == token {
			out := s.load(ap)
			return &out, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *Store) UpdateAppointment(_ context.Context, ap *models.Appointment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.FailUpdate[ap.ID]; err != nil {
		return err
	}
	if _, ok := s.Appointments[ap.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	if s.violatesIndex(ap) {
		return uniqueViolation()
	}

	stored := *ap
	stored.Service = nil
	s.Appointments[ap.ID] = &stored
	return nil
}

func (s *Store) UpdateStatusIf(_ context.Context, ap *models.Appointment, from domain.Status) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.FailUpdate[ap.ID]; err != nil {
		return false, err
	}
	stored, ok := s.Appointments[ap.ID]
	if !ok || domain.Status(stored.Status) != from {
		return false, nil
	}

	stored.Status = ap.Status
	stored.CancelledAt = ap.CancelledAt
	stored.CompletedAt = ap.CompletedAt
	stored.Barber = ap.Barber
	stored.Notes = ap.Notes
	return true, nil
}

func (s *Store) DeleteAppointment(_ context.Context, id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.Appointments[id]; !ok {
		return httperr.ErrNotFound("appointment_not_found")
	}
	delete(s.Appointments, id)
	return nil
}

func (s *Store) ListActiveScheduledForDate(_ context.Context, date string, excludeID uint) ([]models.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.filter(func(ap *models.Appointment) bool {
		return ap.Date == date && ap.ID != excludeID && activeScheduled(ap)
	}), nil
}

func (s *Store) ListForPeriod(_ context.Context, from, to string) ([]models.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.filter(func(ap *models.Appointment) bool {
		return ap.Date >= from && ap.Date < to
	}), nil
}

func (s *Store) ListByStatusUpTo(_ context.Context, statuses []domain.Status, date string) ([]models.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.filter(func(ap *models.Appointment) bool {
		return ap.Date <= date && slices.Contains(statuses, domain.Status(ap.Status))
	}), nil
}

func (s *Store) ListReminderCandidates(_ context.Context, date string) ([]models.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.filter(func(ap *models.Appointment) bool {
		st := domain.Status(ap.Status)
		return ap.Date == date && !ap.ReminderSent &&
			(st == domain.StatusPending || st == domain.StatusConfirmed)
	}), nil
}

func (s *Store) MarkReminderSent(_ context.Context, id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if ap, ok := s.Appointments[id]; ok {
		ap.ReminderSent = true
	}
	return nil
}

func (s *Store) ListBefore(_ context.Context, date string) ([]models.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.filter(func(ap *models.Appointment) bool {
		return ap.Date < date
	}), nil
}

func (s *Store) ListWalkins(_ context.Context, date string, statuses []domain.Status, desc bool) ([]models.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := s.filter(func(ap *models.Appointment) bool {
		return ap.Date == date && ap.IsWalkin() && slices.Contains(statuses, domain.Status(ap.Status))
	})

	pos := func(ap models.Appointment) int {
		if ap.QueuePosition == nil {
			return 0
		}
		return *ap.QueuePosition
	}
	sort.SliceStable(out, func(i, j int) bool {
		if desc {
			return pos(out[i]) > pos(out[j])
		}
		return pos(out[i]) < pos(out[j])
	})
	return out, nil
}

// --------------------------------------------------
// CalendarRepository
// --------------------------------------------------

func (s *Store) ListOpeningHours(context.Context) ([]models.OpeningHour, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.Hours), nil
}

func (s *Store) ListClosedDays(context.Context) ([]models.ClosedDay, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.Closed), nil
}

// --------------------------------------------------
// ClientRepository
// --------------------------------------------------

func (s *Store) GetClient(_ context.Context, id uint) (*models.Client, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.FailClients != nil {
		return nil, s.FailClients
	}
	c, ok := s.Clients[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	out := *c
	out.Tags = slices.Clone(c.Tags)
	return &out, nil
}

func (s *Store) FindOrCreateClient(_ context.Context, name, phone, email string) (*models.Client, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, c := range s.Clients {
		if (phone != "" && c.Phone == phone) || (phone == "" && email != "" && c.Email == email) {
			out := *c
			return &out, nil
		}
	}

	c := &models.Client{ID: s.id(), Name: name, Phone: phone, Email: email, Tags: []string{models.TagNew}}
	s.Clients[c.ID] = c
	out := *c
	return &out, nil
}

func (s *Store) SaveClientStats(_ context.Context, c *models.Client) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.FailClients != nil {
		return s.FailClients
	}
	stored := *c
	stored.Tags = slices.Clone(c.Tags)
	s.Clients[c.ID] = &stored
	return nil
}

func (s *Store) LatestCompletedDate(_ context.Context, clientID uint, excludeID uint) (*string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var latest *string
	for _, ap := range s.Appointments {
		if ap.ID == excludeID || ap.ClientID == nil || *ap.ClientID != clientID ||
			ap.Status != string(domain.StatusCompleted) {
			continue
		}
		if latest == nil || ap.Date > *latest {
			d := ap.Date
			latest = &d
		}
	}
	return latest, nil
}

// Snapshot returns a copy of the stored appointment.
func (s *Store) Snapshot(id uint) (models.Appointment, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ap, ok := s.Appointments[id]
	if !ok {
		return models.Appointment{}, false
	}
	return *ap, true
}

var (
	_ domain.Repository         = (*Store)(nil)
	_ domain.CalendarRepository = (*Store)(nil)
	_ domain.ClientRepository   = (*Store)(nil)
)
