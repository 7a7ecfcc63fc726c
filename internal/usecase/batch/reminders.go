package batch

import (
	"context"
	"fmt"
	"time"

	"github.com/BruksfildServices01/barbershop-booking/internal/infra/notify"
	"github.com/BruksfildServices01/barbershop-booking/internal/timezone"
	booking "github.com/BruksfildServices01/barbershop-booking/internal/usecase/appointment"
)

type ReminderResult struct {
	Sent            int `json:"sent"`
	ErrorCount      int `json:"error_count"`
	TotalConsidered int `json:"total_considered"`
}

type SendReminders struct {
	booking.Deps
}

func NewSendReminders(d booking.Deps) *SendReminders {
	return &SendReminders{Deps: d}
}

// Execute queues a reminder for each of tomorrow's open appointments that
// has not had one. The flag is only set once the dispatcher accepted the
// notification, so a full queue is retried on the next run.
func (uc *SendReminders) Execute(ctx context.Context, now time.Time) (ReminderResult, error) {
	tomorrow := timezone.DateString(timezone.StartOfDay(now).AddDate(0, 0, 1))

	apps, err := uc.Repo.ListReminderCandidates(ctx, tomorrow)
	if err != nil {
		return ReminderResult{}, fmt.Errorf("list reminder candidates: %w", err)
	}

	res := ReminderResult{TotalConsidered: len(apps)}

	for i := range apps {
		ap := &apps[i]

		if ap.IsWalkin() {
			continue
		}

		if !uc.Notify(notify.KindReminder, ap) {
			res.ErrorCount++
			continue
		}

		if err := uc.Repo.MarkReminderSent(ctx, ap.ID); err != nil {
			res.ErrorCount++
			uc.Log.Error("reminders.mark_failed", "appointment_id", ap.ID, "error", err)
			continue
		}

		res.Sent++
		uc.Metrics.RemindersSent.Inc()
	}

	uc.Log.Info("reminders.done", "date", tomorrow, "sent", res.Sent, "errors", res.ErrorCount)
	return res, nil
}
