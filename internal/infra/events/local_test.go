package events

import (
	"context"
	"testing"
	"time"
)

func TestLocalBusDeliversToSubscribers(t *testing.T) {
	bus := NewLocalBus()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	a, cancelA := bus.Subscribe(ctx)
	defer cancelA()
	b, cancelB := bus.Subscribe(ctx)
	defer cancelB()

	if err := bus.Publish(ctx, Event{Type: AppointmentCreated, AppointmentID: 7}); err != nil {
		t.Fatalf("publish: %v", err)
	}

	for _, ch := range []<-chan Event{a, b} {
		select {
		case ev := <-ch:
			if ev.Type != AppointmentCreated || ev.AppointmentID != 7 {
				t.Fatalf("unexpected event %+v", ev)
			}
		case <-time.After(time.Second):
			t.Fatalf("event not delivered")
		}
	}
}

func TestLocalBusUnsubscribeClosesChannel(t *testing.T) {
	bus := NewLocalBus()
	ch, cancel := bus.Subscribe(context.Background())
	cancel()
	cancel()

	if _, ok := <-ch; ok {
		t.Fatalf("expected closed channel")
	}

	if err := bus.Publish(context.Background(), Event{Type: AppointmentDeleted}); err != nil {
		t.Fatalf("publish after unsubscribe: %v", err)
	}
}
