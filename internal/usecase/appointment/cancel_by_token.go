package appointment

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/barbershop-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barbershop-booking/internal/httperr"
	"github.com/BruksfildServices01/barbershop-booking/internal/infra/events"
	"github.com/BruksfildServices01/barbershop-booking/internal/infra/notify"
	"github.com/BruksfildServices01/barbershop-booking/internal/models"
)

// CancelByToken is the client's self-service cancellation. The token
// is the only credential.
type CancelByToken struct {
	Deps
}

func NewCancelByToken(d Deps) *CancelByToken {
	return &CancelByToken{Deps: d}
}

func (uc *CancelByToken) Execute(
	ctx context.Context,
	token string,
) (*models.Appointment, error) {

	token = strings.TrimSpace(token)
	if token == "" {
		return nil, httperr.ErrBusiness("token_required")
	}

	ap, err := uc.Repo.GetAppointmentByToken(ctx, token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrNotFound("appointment_not_found")
		}
		return nil, err
	}

	// Repeating the request is harmless.
	if domain.Status(ap.Status) == domain.StatusCancelled {
		return ap, nil
	}

	previous := domain.Status(ap.Status)
	if err := domain.Cancel(ap, uc.Clock.Now()); err != nil {
		return nil, err
	}

	changed, err := uc.Repo.UpdateStatusIf(ctx, ap, previous)
	if err != nil {
		return nil, err
	}
	if !changed {
		return nil, httperr.ErrBusiness("status_changed")
	}

	uc.Record("appointment_cancelled_by_client", nil, ap, nil)
	uc.Publish(ctx, events.AppointmentCancelled, ap)
	uc.Notify(notify.KindCancellation, ap)

	return ap, nil
}
