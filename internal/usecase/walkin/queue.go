package walkin

import (
	"context"

	domain "github.com/BruksfildServices01/barbershop-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barbershop-booking/internal/dto"
	"github.com/BruksfildServices01/barbershop-booking/internal/timezone"
	booking "github.com/BruksfildServices01/barbershop-booking/internal/usecase/appointment"
)

type ListQueue struct {
	booking.Deps
}

func NewListQueue(d booking.Deps) *ListQueue {
	return &ListQueue{Deps: d}
}

// Execute returns today's active walk-ins by position. Each queued entry
// carries its current wait next to the estimate stored at check-in.
func (uc *ListQueue) Execute(ctx context.Context) ([]dto.QueueEntry, error) {
	today := timezone.DateString(uc.Clock.Now())

	apps, err := uc.Repo.ListWalkins(
		ctx,
		today,
		[]domain.Status{domain.StatusInQueue, domain.StatusInService},
		false,
	)
	if err != nil {
		return nil, err
	}

	out := make([]dto.QueueEntry, len(apps))
	ahead := 0
	for i := range apps {
		out[i].Appointment = apps[i]
		if domain.Status(apps[i].Status) != domain.StatusInQueue {
			continue
		}
		wait := ahead
		out[i].CurrentWaitMinutes = &wait
		ahead += waitFor(&apps[i])
	}

	return out, nil
}
