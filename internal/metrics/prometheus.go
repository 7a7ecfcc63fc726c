package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the scheduling engine counters.
type Metrics struct {
	AppointmentsCreated prometheus.Counter
	SlotConflicts       prometheus.Counter
	WalkinsCheckedIn    prometheus.Counter
	AutoCompleted       prometheus.Counter
	AutoCompleteErrors  prometheus.Counter
	RemindersSent       prometheus.Counter
	StatsFailures       prometheus.Counter
	RequestDuration     *prometheus.HistogramVec
}

func NewMetrics(namespace string, reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)

	return &Metrics{
		AppointmentsCreated: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "appointments_created_total",
			Help:      "Appointments booked through the API",
		}),
		SlotConflicts: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "slot_conflicts_total",
			Help:      "Bookings or reschedules rejected because the slot was taken",
		}),
		WalkinsCheckedIn: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "walkins_checked_in_total",
			Help:      "Walk-in customers added to the queue",
		}),
		AutoCompleted: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "autocomplete_completed_total",
			Help:      "Appointments completed by the auto-complete sweep",
		}),
		AutoCompleteErrors: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "autocomplete_errors_total",
			Help:      "Per-appointment failures in the auto-complete sweep",
		}),
		RemindersSent: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reminders_sent_total",
			Help:      "Reminder notifications handed to the dispatcher",
		}),
		StatsFailures: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "client_stats_failures_total",
			Help:      "Client statistics updates that failed and were skipped",
		}),
		RequestDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
	}
}
