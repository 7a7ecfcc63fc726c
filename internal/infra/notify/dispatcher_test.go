package notify

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/BruksfildServices01/barbershop-booking/internal/logger"
)

type recordingSender struct {
	mu   sync.Mutex
	got  []Notification
	fail bool
	done chan struct{}
}

func (s *recordingSender) Send(_ context.Context, n Notification) error {
	s.mu.Lock()
	s.got = append(s.got, n)
	s.mu.Unlock()
	s.done <- struct{}{}
	if s.fail {
		return errors.New("smtp down")
	}
	return nil
}

func TestDispatcherDeliversAsync(t *testing.T) {
	s := &recordingSender{done: make(chan struct{}, 1)}
	d := NewDispatcher(s, logger.NewNop())
	defer d.Close()

	if !d.Dispatch(Notification{Kind: KindReminder, AppointmentID: 3}) {
		t.Fatalf("expected dispatch to be accepted")
	}

	select {
	case <-s.done:
	case <-time.After(time.Second):
		t.Fatalf("notification not delivered")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.got) != 1 || s.got[0].AppointmentID != 3 {
		t.Fatalf("unexpected deliveries %+v", s.got)
	}
}

func TestDispatcherSurvivesSenderFailure(t *testing.T) {
	s := &recordingSender{fail: true, done: make(chan struct{}, 2)}
	d := NewDispatcher(s, logger.NewNop())
	defer d.Close()

	d.Dispatch(Notification{Kind: KindCancellation, AppointmentID: 1})
	d.Dispatch(Notification{Kind: KindCancellation, AppointmentID: 2})

	for i := 0; i < 2; i++ {
		select {
		case <-s.done:
		case <-time.After(time.Second):
			t.Fatalf("worker stopped after a failed send")
		}
	}
}

func TestDispatcherCloseDrainsQueue(t *testing.T) {
	s := &recordingSender{done: make(chan struct{}, 10)}
	d := NewDispatcher(s, logger.NewNop())

	for i := uint(1); i <= 5; i++ {
		d.Dispatch(Notification{Kind: KindReminder, AppointmentID: i})
	}
	d.Close()

	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.got) != 5 {
		t.Fatalf("expected 5 deliveries before Close returned, got %d", len(s.got))
	}
}
