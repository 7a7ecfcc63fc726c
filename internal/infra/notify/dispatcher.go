// Package notify hands customer notifications to an outbound channel
// without blocking the lifecycle operation that triggered them.
package notify

import (
	"context"
	"time"

	"github.com/BruksfildServices01/barbershop-booking/internal/logger"
)

const (
	KindBookingConfirmation = "booking_confirmation"
	KindCancellation        = "cancellation_confirmation"
	KindReminder            = "reminder"
	KindYourTurn            = "walkin_your_turn"
)

type Notification struct {
	Kind          string `json:"kind"`
	AppointmentID uint   `json:"appointment_id"`
	ClientName    string `json:"client_name"`
	ClientEmail   string `json:"client_email,omitempty"`
	ClientPhone   string `json:"client_phone,omitempty"`
	Date          string `json:"date"`
	Time          string `json:"time"`
	Service       string `json:"service,omitempty"`
	CancelToken   string `json:"cancel_token,omitempty"`
}

// Sender delivers one notification to the outside world.
type Sender interface {
	Send(ctx context.Context, n Notification) error
}

type Dispatcher struct {
	sender Sender
	log    logger.Logger
	queue  chan Notification
	done   chan struct{}
}

func NewDispatcher(sender Sender, log logger.Logger) *Dispatcher {
	d := &Dispatcher{
		sender: sender,
		log:    log,
		queue:  make(chan Notification, 100),
		done:   make(chan struct{}),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	defer close(d.done)
	for n := range d.queue {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		if err := d.sender.Send(ctx, n); err != nil {
			d.log.Error("notify.send_failed",
				"kind", n.Kind,
				"appointment_id", n.AppointmentID,
				"error", err,
			)
		}
		cancel()
	}
}

// Dispatch enqueues n and reports whether it was accepted. A full queue
// drops the notification; the caller's state change stands.
func (d *Dispatcher) Dispatch(n Notification) bool {
	select {
	case d.queue <- n:
		return true
	default:
		d.log.Warn("notify.queue_full", "kind", n.Kind, "appointment_id", n.AppointmentID)
		return false
	}
}

// Close stops accepting work and waits for the queue to drain.
func (d *Dispatcher) Close() {
	close(d.queue)
	<-d.done
}

// LogSender only logs. Used when no broker is configured.
type LogSender struct {
	Log logger.Logger
}

func (s LogSender) Send(_ context.Context, n Notification) error {
	s.Log.Info("notify.log_only",
		"kind", n.Kind,
		"appointment_id", n.AppointmentID,
		"date", n.Date,
		"time", n.Time,
	)
	return nil
}
