// Package clientstats keeps the visit, spend and no-show counters of a
// client consistent with its appointments.
package clientstats

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	domain "github.com/BruksfildServices01/barbershop-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barbershop-booking/internal/models"
)

type Reconciler struct {
	clients domain.ClientRepository
}

func NewReconciler(clients domain.ClientRepository) *Reconciler {
	return &Reconciler{clients: clients}
}

func price(ap *models.Appointment) decimal.Decimal {
	if ap.Service != nil {
		return ap.Service.Price
	}
	return decimal.Zero
}

// Apply counts ap into its client's aggregates after it moved from
// previous into completed or noshow. Any other move is a no-op, so the
// counters are applied at most once per appointment.
func (r *Reconciler) Apply(ctx context.Context, previous domain.Status, ap *models.Appointment) error {
	if ap.ClientID == nil {
		return nil
	}

	current := domain.Status(ap.Status)
	if current == previous || (current != domain.StatusCompleted && current != domain.StatusNoShow) {
		return nil
	}

	client, err := r.clients.GetClient(ctx, *ap.ClientID)
	if err != nil {
		return fmt.Errorf("load client %d: %w", *ap.ClientID, err)
	}

	switch current {
	case domain.StatusCompleted:
		client.TotalVisits++
		client.TotalSpent = client.TotalSpent.Add(price(ap))
		if client.LastVisit == nil || *client.LastVisit < ap.Date {
			d := ap.Date
			client.LastVisit = &d
		}
	case domain.StatusNoShow:
		client.NoShowCount++
	}

	return r.clients.SaveClientStats(ctx, client)
}

// Reverse undoes Apply for an appointment that is being deleted.
func (r *Reconciler) Reverse(ctx context.Context, ap *models.Appointment) error {
	if ap.ClientID == nil {
		return nil
	}

	status := domain.Status(ap.Status)
	if status != domain.StatusCompleted && status != domain.StatusNoShow {
		return nil
	}

	client, err := r.clients.GetClient(ctx, *ap.ClientID)
	if err != nil {
		return fmt.Errorf("load client %d: %w", *ap.ClientID, err)
	}

	switch status {
	case domain.StatusCompleted:
		client.TotalVisits = max(client.TotalVisits-1, 0)

		spent := client.TotalSpent.Sub(price(ap))
		if spent.IsNegative() {
			spent = decimal.Zero
		}
		client.TotalSpent = spent

		last, err := r.clients.LatestCompletedDate(ctx, client.ID, ap.ID)
		if err != nil {
			return fmt.Errorf("recompute last visit for client %d: %w", client.ID, err)
		}
		client.LastVisit = last

		if client.TotalVisits == 0 && client.HasTag(models.TagRegular) {
			client.ReplaceTag(models.TagRegular, models.TagNew)
		}

	case domain.StatusNoShow:
		client.NoShowCount = max(client.NoShowCount-1, 0)
	}

	return r.clients.SaveClientStats(ctx, client)
}
