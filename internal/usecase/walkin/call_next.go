package walkin

import (
	"context"

	domain "github.com/BruksfildServices01/barbershop-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barbershop-booking/internal/httperr"
	"github.com/BruksfildServices01/barbershop-booking/internal/infra/events"
	"github.com/BruksfildServices01/barbershop-booking/internal/infra/lock"
	"github.com/BruksfildServices01/barbershop-booking/internal/infra/notify"
	"github.com/BruksfildServices01/barbershop-booking/internal/models"
	"github.com/BruksfildServices01/barbershop-booking/internal/timezone"
	booking "github.com/BruksfildServices01/barbershop-booking/internal/usecase/appointment"
)

type CallNext struct {
	booking.Deps
}

func NewCallNext(d booking.Deps) *CallNext {
	return &CallNext{Deps: d}
}

// Execute moves the lowest-positioned queued walk-in into service.
func (uc *CallNext) Execute(
	ctx context.Context,
	actorID *uint,
) (*models.Appointment, error) {

	now := uc.Clock.Now()
	today := timezone.DateString(now)

	var ap *models.Appointment

	err := uc.WithLock(ctx, lock.QueueKey(today), func() error {
		queued, err := uc.Repo.ListWalkins(ctx, today, []domain.Status{domain.StatusInQueue}, false)
		if err != nil {
			return err
		}
		if len(queued) == 0 {
			return httperr.ErrNotFound("queue_empty")
		}

		next := queued[0]
		if err := domain.CallIn(&next, now); err != nil {
			return err
		}
		if err := uc.Repo.UpdateAppointment(ctx, &next); err != nil {
			return err
		}

		ap = &next
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.Record("walkin_called", actorID, ap, nil)
	uc.Publish(ctx, events.WalkinCalled, ap)
	uc.Notify(notify.KindYourTurn, ap)

	return ap, nil
}
