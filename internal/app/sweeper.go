package app

import (
	"context"
	"time"

	"github.com/BruksfildServices01/barbershop-booking/internal/logger"
	"github.com/BruksfildServices01/barbershop-booking/internal/timezone"
	ucBatch "github.com/BruksfildServices01/barbershop-booking/internal/usecase/batch"
)

// Sweeper runs the auto-complete and reminder jobs on a fixed interval.
// A zero interval disables that job.
type Sweeper struct {
	AutoComplete         *ucBatch.AutoComplete
	Reminders            *ucBatch.SendReminders
	Clock                timezone.Clock
	Log                  logger.Logger
	AutoCompleteInterval time.Duration
	ReminderInterval     time.Duration
}

func (s *Sweeper) Start(ctx context.Context) {
	if s.AutoCompleteInterval > 0 {
		go s.loop(ctx, "auto_complete", s.AutoCompleteInterval, s.runAutoComplete)
	}
	if s.ReminderInterval > 0 {
		go s.loop(ctx, "reminders", s.ReminderInterval, s.runReminders)
	}
}

func (s *Sweeper) loop(ctx context.Context, name string, every time.Duration, run func(context.Context)) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	s.Log.Info("sweeper.started", "job", name, "interval", every.String())
	for {
		select {
		case <-ctx.Done():
			s.Log.Info("sweeper.stopped", "job", name)
			return
		case <-ticker.C:
			run(ctx)
		}
	}
}

func (s *Sweeper) runAutoComplete(ctx context.Context) {
	res, err := s.AutoComplete.Execute(ctx, s.Clock.Now())
	if err != nil {
		s.Log.Error("sweeper.auto_complete_failed", "error", err)
		return
	}
	s.Log.Info("sweeper.auto_complete",
		"completed", res.CompletedCount,
		"errors", res.ErrorCount,
		"considered", res.TotalConsidered,
	)
}

func (s *Sweeper) runReminders(ctx context.Context) {
	res, err := s.Reminders.Execute(ctx, s.Clock.Now())
	if err != nil {
		s.Log.Error("sweeper.reminders_failed", "error", err)
		return
	}
	s.Log.Info("sweeper.reminders",
		"sent", res.Sent,
		"errors", res.ErrorCount,
		"considered", res.TotalConsidered,
	)
}

// RunOnce runs both jobs a single time, for external cron.
func (s *Sweeper) RunOnce(ctx context.Context) {
	s.runAutoComplete(ctx)
	s.runReminders(ctx)
}
