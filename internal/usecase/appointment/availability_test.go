package appointment_test

import (
	"context"
	"slices"
	"testing"

	"github.com/BruksfildServices01/barbershop-booking/internal/httperr"
	"github.com/BruksfildServices01/barbershop-booking/internal/testutil/fixture"
	booking "github.com/BruksfildServices01/barbershop-booking/internal/usecase/appointment"
)

func TestAvailabilityMarksStartedSlotsToday(t *testing.T) {
	env := fixture.New()
	cut := env.Service("Cut", 30, "30.00")

	d := env.Deps(fixture.At(2025, 3, 4, 13, 10))
	res, err := booking.NewGetAvailability(d).Execute(context.Background(), booking.AvailabilityInput{
		Date: "2025-03-04", ServiceID: cut,
	})
	if err != nil {
		t.Fatal(err)
	}
	if res.Closed {
		t.Fatal("tuesday is open")
	}

	for _, s := range res.Slots {
		before := s.Time <= "13:00"
		if before && s.Available {
			t.Errorf("%s has already started", s.Time)
		}
		if !before && !s.Available {
			t.Errorf("%s should be free", s.Time)
		}
	}
}

func TestAvailabilityClosedDay(t *testing.T) {
	env := fixture.New()
	cut := env.Service("Cut", 30, "30.00")
	env.Store.Closed = append(env.Store.Closed, fixtureClosed("2025-03-06", false))

	uc := booking.NewGetAvailability(env.Deps(morning))

	for _, date := range []string{"2025-03-06", "2025-03-09", "2025-03-01"} {
		res, err := uc.Execute(context.Background(), booking.AvailabilityInput{Date: date, ServiceID: cut})
		if err != nil {
			t.Fatalf("%s: %v", date, err)
		}
		if !res.Closed || len(res.Slots) != 0 {
			t.Errorf("%s: expected closed with no slots, got %+v", date, res)
		}
	}

	if _, err := uc.Execute(context.Background(), booking.AvailabilityInput{Date: "tomorrow", ServiceID: cut}); httperr.KindOf(err) != httperr.KindValidation {
		t.Errorf("bad date: %v", err)
	}
}

func TestNextAvailableDatesSkipsClosures(t *testing.T) {
	env := fixture.New()
	env.Store.Closed = append(env.Store.Closed, fixtureClosed("2025-03-05", false))

	uc := booking.NewNextAvailableDates(env.Deps(morning))

	got, err := uc.Execute(context.Background(), "", 4)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"2025-03-04", "2025-03-06", "2025-03-07", "2025-03-08"}
	if !slices.Equal(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}

	if _, err := uc.Execute(context.Background(), "", 0); httperr.KindOf(err) != httperr.KindValidation {
		t.Fatalf("zero count: %v", err)
	}
}
