package app

import (
	"context"
	"testing"

	"github.com/BruksfildServices01/barbershop-booking/internal/logger"
	"github.com/BruksfildServices01/barbershop-booking/internal/models"
	"github.com/BruksfildServices01/barbershop-booking/internal/testutil/fixture"
	"github.com/BruksfildServices01/barbershop-booking/internal/timezone"
	ucBatch "github.com/BruksfildServices01/barbershop-booking/internal/usecase/batch"
)

func TestSweeperRunOnce(t *testing.T) {
	env := fixture.New()
	svc := env.Service("Haircut", 30, "40.00")

	finished := env.Store.Put(models.Appointment{
		ClientName:      "Gil",
		ServiceID:       &svc,
		Date:            "2025-03-04",
		Time:            "09:00",
		AppointmentType: models.AppointmentTypeScheduled,
		Status:          "confirmed",
	})
	tomorrow := env.Store.Put(models.Appointment{
		ClientName:      "Hugo",
		ClientEmail:     "hugo@example.com",
		ServiceID:       &svc,
		Date:            "2025-03-05",
		Time:            "10:00",
		AppointmentType: models.AppointmentTypeScheduled,
		Status:          "pending",
	})

	now := fixture.At(2025, 3, 4, 18, 0)
	d := env.Deps(now)

	s := &Sweeper{
		AutoComplete: ucBatch.NewAutoComplete(d),
		Reminders:    ucBatch.NewSendReminders(d),
		Clock:        timezone.FixedClock{T: now},
		Log:          logger.NewNop(),
	}
	s.RunOnce(context.Background())

	if ap, _ := env.Store.Snapshot(finished); ap.Status != "completed" {
		t.Fatalf("expected morning appointment completed, got %q", ap.Status)
	}
	if ap, _ := env.Store.Snapshot(tomorrow); !ap.ReminderSent {
		t.Fatalf("expected reminder flag on tomorrow's appointment")
	}
}

func TestSweeperStartWithZeroIntervalsIsInert(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	s := &Sweeper{Log: logger.NewNop()}
	// nil use cases would panic if a loop ran
	s.Start(ctx)
}
