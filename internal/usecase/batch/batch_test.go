package batch

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	domain "github.com/BruksfildServices01/barbershop-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barbershop-booking/internal/models"
	"github.com/BruksfildServices01/barbershop-booking/internal/testutil/fixture"
	"github.com/BruksfildServices01/barbershop-booking/internal/testutil/memstore"
	booking "github.com/BruksfildServices01/barbershop-booking/internal/usecase/appointment"
)

func put(env *fixture.Env, serviceID *uint, date, hm, status string) uint {
	return env.Store.Put(models.Appointment{
		ClientName:      "Ana",
		ServiceID:       serviceID,
		Date:            date,
		Time:            hm,
		AppointmentType: models.AppointmentTypeScheduled,
		Status:          status,
	})
}

func TestAutoCompleteBoundary(t *testing.T) {
	env := fixture.New()
	sid := env.Service("Trim", 30, "25.00")
	id := put(env, &sid, "2025-03-04", "14:00", "confirmed")

	early := fixture.At(2025, 3, 4, 14, 29)
	res, err := NewAutoComplete(env.Deps(early)).Execute(context.Background(), early)
	if err != nil {
		t.Fatal(err)
	}
	if res.CompletedCount != 0 || res.TotalConsidered != 1 {
		t.Fatalf("14:29: %+v", res)
	}
	if ap, _ := env.Store.Snapshot(id); ap.Status != "confirmed" {
		t.Fatalf("14:29: status %s", ap.Status)
	}

	onTime := fixture.At(2025, 3, 4, 14, 30)
	res, err = NewAutoComplete(env.Deps(onTime)).Execute(context.Background(), onTime)
	if err != nil {
		t.Fatal(err)
	}
	if res.CompletedCount != 1 {
		t.Fatalf("14:30: %+v", res)
	}
	ap, _ := env.Store.Snapshot(id)
	if ap.Status != "completed" || ap.CompletedAt == nil {
		t.Fatalf("14:30: %+v", ap)
	}
}

func TestAutoCompleteSweep(t *testing.T) {
	env := fixture.New()
	sid := env.Service("Cut", 30, "25.00")
	clientID := env.Store.AddClient(models.Client{Name: "Ana"})

	past := put(env, &sid, "2025-03-01", "18:00", "pending")
	env.Store.Appointments[past].ClientID = &clientID

	unknown := put(env, nil, "2025-03-04", "13:00", "confirmed") // default 45 → 13:45
	later := put(env, &sid, "2025-03-04", "16:00", "confirmed")
	put(env, &sid, "2025-03-05", "09:00", "confirmed")
	put(env, &sid, "2025-03-02", "10:00", "cancelled")

	broken := put(env, &sid, "2025-03-02", "11:00", "confirmed")
	env.Store.FailUpdate[broken] = errors.New("write failed")

	now := fixture.At(2025, 3, 4, 13, 50)
	res, err := NewAutoComplete(env.Deps(now)).Execute(context.Background(), now)
	if err != nil {
		t.Fatal(err)
	}

	if res.TotalConsidered != 4 || res.CompletedCount != 2 || res.ErrorCount != 1 {
		t.Fatalf("result = %+v", res)
	}
	for id, want := range map[uint]string{past: "completed", unknown: "completed", later: "confirmed", broken: "confirmed"} {
		if ap, _ := env.Store.Snapshot(id); ap.Status != want {
			t.Errorf("appointment %d: %s, want %s", id, ap.Status, want)
		}
	}

	if c := env.Store.Clients[clientID]; c.TotalVisits != 1 || c.LastVisit == nil || *c.LastVisit != "2025-03-01" {
		t.Errorf("client stats not applied: %+v", c)
	}

	// Idempotent: a second run only retries what is still open.
	delete(env.Store.FailUpdate, broken)
	res, err = NewAutoComplete(env.Deps(now)).Execute(context.Background(), now)
	if err != nil {
		t.Fatal(err)
	}
	if res.CompletedCount != 1 || res.TotalConsidered != 2 {
		t.Fatalf("second run = %+v", res)
	}
	if c := env.Store.Clients[clientID]; c.TotalVisits != 1 {
		t.Errorf("second run counted the visit again: %d", c.TotalVisits)
	}
}

func TestSendReminders(t *testing.T) {
	env := fixture.New()
	sid := env.Service("Cut", 30, "25.00")

	a := put(env, &sid, "2025-03-05", "10:00", "pending")
	b := put(env, &sid, "2025-03-05", "11:00", "confirmed")
	put(env, &sid, "2025-03-05", "12:00", "cancelled")
	put(env, &sid, "2025-03-06", "10:00", "confirmed")

	now := fixture.At(2025, 3, 4, 18, 0)
	uc := NewSendReminders(env.Deps(now))

	res, err := uc.Execute(context.Background(), now)
	if err != nil {
		t.Fatal(err)
	}
	if res.Sent != 2 || res.TotalConsidered != 2 {
		t.Fatalf("result = %+v", res)
	}
	for _, id := range []uint{a, b} {
		if ap, _ := env.Store.Snapshot(id); !ap.ReminderSent {
			t.Errorf("appointment %d not flagged", id)
		}
	}

	res, err = uc.Execute(context.Background(), now)
	if err != nil {
		t.Fatal(err)
	}
	if res.TotalConsidered != 0 {
		t.Fatalf("reminders must go out once, got %+v", res)
	}
}

func TestRemindersRetriedWhenDispatcherIsFull(t *testing.T) {
	env := fixture.New()
	sid := env.Service("Cut", 30, "25.00")
	id := put(env, &sid, "2025-03-05", "10:00", "pending")

	env.Notifier.Reject = true
	now := fixture.At(2025, 3, 4, 18, 0)

	res, err := NewSendReminders(env.Deps(now)).Execute(context.Background(), now)
	if err != nil {
		t.Fatal(err)
	}
	if res.Sent != 0 || res.ErrorCount != 1 {
		t.Fatalf("result = %+v", res)
	}
	if ap, _ := env.Store.Snapshot(id); ap.ReminderSent {
		t.Fatal("rejected reminder must stay pending")
	}
}

// staleListing lets a completion land after the sweep has listed its
// candidates and before it writes them.
type staleListing struct {
	*memstore.Store
	afterList func()
}

func (s *staleListing) ListByStatusUpTo(ctx context.Context, statuses []domain.Status, date string) ([]models.Appointment, error) {
	out, err := s.Store.ListByStatusUpTo(ctx, statuses, date)
	if s.afterList != nil {
		s.afterList()
	}
	return out, err
}

func TestAutoCompleteLeavesConcurrentCompletionAlone(t *testing.T) {
	env := fixture.New()
	sid := env.Service("Cut", 30, "40.00")
	clientID := env.Store.AddClient(models.Client{Name: "Ana", Phone: "1"})

	id := put(env, &sid, "2025-03-04", "10:00", "confirmed")
	env.Store.Appointments[id].ClientID = &clientID

	now := fixture.At(2025, 3, 4, 15, 0)
	completed := "completed"

	d := env.Deps(now)
	d.Repo = &staleListing{
		Store: env.Store,
		afterList: func() {
			in := booking.UpdateAppointmentInput{ID: id, Status: &completed}
			if _, err := booking.NewUpdateAppointment(env.Deps(now)).Execute(context.Background(), in); err != nil {
				t.Errorf("manual completion: %v", err)
			}
		},
	}

	res, err := NewAutoComplete(d).Execute(context.Background(), now)
	if err != nil {
		t.Fatal(err)
	}
	if res.TotalConsidered != 1 || res.CompletedCount != 0 || res.ErrorCount != 0 {
		t.Fatalf("result = %+v", res)
	}

	c := env.Store.Clients[clientID]
	if c.TotalVisits != 1 || !c.TotalSpent.Equal(decimal.RequireFromString("40.00")) {
		t.Fatalf("stats = visits %d spent %s", c.TotalVisits, c.TotalSpent)
	}
}
