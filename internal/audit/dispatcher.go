package audit

import (
	applog "github.com/BruksfildServices01/barbershop-booking/internal/logger"
)

type Event struct {
	UserID   *uint
	Action   string
	Entity   string
	EntityID *uint
	Metadata any
}

// Writer persists one audit event.
type Writer interface {
	Log(ev Event) error
}

type Dispatcher struct {
	writer Writer
	log    applog.Logger
	queue  chan Event
}

func NewDispatcher(writer Writer, log applog.Logger) *Dispatcher {
	d := &Dispatcher{
		writer: writer,
		log:    log,
		queue:  make(chan Event, 100),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	for ev := range d.queue {
		if err := d.writer.Log(ev); err != nil {
			d.log.Error("audit.write_failed", "action", ev.Action, "error", err)
		}
	}
}

// Dispatch never blocks: a full queue drops the event.
func (d *Dispatcher) Dispatch(ev Event) {
	select {
	case d.queue <- ev:
	default:
		d.log.Warn("audit.queue_full", "action", ev.Action)
	}
}

// Discard is an audit sink for tests and one-shot tools.
type Discard struct{}

func (Discard) Dispatch(Event) {}
