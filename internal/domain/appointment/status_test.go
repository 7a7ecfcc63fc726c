package appointment

import (
	"testing"
	"time"

	"github.com/BruksfildServices01/barbershop-booking/internal/httperr"
	"github.com/BruksfildServices01/barbershop-booking/internal/models"
)

func TestScheduledTransitions(t *testing.T) {
	cases := []struct {
		from, to Status
		ok       bool
	}{
		{StatusPending, StatusConfirmed, true},
		{StatusPending, StatusCompleted, true},
		{StatusConfirmed, StatusCompleted, true},
		{StatusConfirmed, StatusCancelled, true},
		{StatusPending, StatusNoShow, true},
		{StatusConfirmed, StatusPending, false},
		{StatusCompleted, StatusCancelled, false},
		{StatusCancelled, StatusConfirmed, false},
		{StatusNoShow, StatusCompleted, false},
		{StatusPending, StatusInService, false},
		{StatusCompleted, StatusCompleted, true},
	}

	for _, tc := range cases {
		err := CanTransition(models.AppointmentTypeScheduled, tc.from, tc.to)
		if tc.ok && err != nil {
			t.Errorf("%s -> %s: unexpected %v", tc.from, tc.to, err)
		}
		if !tc.ok && httperr.KindOf(err) != httperr.KindValidation {
			t.Errorf("%s -> %s: expected validation error, got %v", tc.from, tc.to, err)
		}
	}
}

func TestWalkinTransitions(t *testing.T) {
	if err := CanTransition(models.AppointmentTypeWalkin, StatusInQueue, StatusInService); err == nil {
		t.Fatal("inservice is only reachable by calling the walk-in in")
	}
	if err := CanTransition(models.AppointmentTypeWalkin, StatusInQueue, StatusCompleted); err == nil {
		t.Fatal("a queued walk-in cannot complete without service")
	}
	if err := CanTransition(models.AppointmentTypeWalkin, StatusInService, StatusCompleted); err != nil {
		t.Fatal(err)
	}
}

func TestTransitionStampsTimestamps(t *testing.T) {
	now := time.Date(2025, 3, 4, 15, 0, 0, 0, time.UTC)

	ap := &models.Appointment{AppointmentType: models.AppointmentTypeScheduled, Status: string(StatusConfirmed)}
	if err := Complete(ap, now); err != nil {
		t.Fatal(err)
	}
	if ap.CompletedAt == nil || !ap.CompletedAt.Equal(now) {
		t.Fatalf("completed_at not stamped: %v", ap.CompletedAt)
	}

	ap = &models.Appointment{AppointmentType: models.AppointmentTypeScheduled, Status: string(StatusPending)}
	if err := Cancel(ap, now); err != nil {
		t.Fatal(err)
	}
	if ap.Status != string(StatusCancelled) || ap.CancelledAt == nil {
		t.Fatalf("cancel not applied: %+v", ap)
	}
}

func TestCallIn(t *testing.T) {
	now := time.Date(2025, 3, 4, 10, 17, 0, 0, time.UTC)

	ap := &models.Appointment{AppointmentType: models.AppointmentTypeWalkin, Status: string(StatusInQueue), Time: "09:50"}
	if err := CallIn(ap, now); err != nil {
		t.Fatal(err)
	}
	if ap.Status != string(StatusInService) || ap.Time != "10:17" {
		t.Fatalf("got %s at %s", ap.Status, ap.Time)
	}

	if err := CallIn(ap, now); err == nil {
		t.Fatal("already in service")
	}

	scheduled := &models.Appointment{AppointmentType: models.AppointmentTypeScheduled, Status: string(StatusInQueue)}
	if err := CallIn(scheduled, now); err == nil {
		t.Fatal("scheduled appointments are not queued")
	}
}

func TestInitialStatus(t *testing.T) {
	if st, err := InitialStatus(""); err != nil || st != StatusPending {
		t.Fatalf("got %s %v", st, err)
	}
	if st, err := InitialStatus("confirmed"); err != nil || st != StatusConfirmed {
		t.Fatalf("got %s %v", st, err)
	}
	if _, err := InitialStatus("completed"); err == nil {
		t.Fatal("bookings cannot start completed")
	}
}
