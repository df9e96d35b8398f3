package workflows

import (
	"context"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"bakeshop/internal/models"
	"bakeshop/internal/notify"
)

// RescheduleBakeSale moves a sale to a new date, recomputes its cutoff and
// notifies every open order's customer. Purely informational for orders:
// no status or voucher mutation happens here.
func (s *Service) RescheduleBakeSale(ctx context.Context, caller Caller, saleID primitive.ObjectID, newDate time.Time, reason string) (int, error) {
	if err := authorize(caller, models.RoleOwner, models.RoleManager); err != nil {
		return 0, err
	}

	sale, err := s.sales.Find(ctx, saleID)
	if err != nil {
		return 0, err
	}
	if sale == nil {
		return 0, NotFoundError{Entity: "Bake sale"}
	}
	oldDate := sale.Date

	if err := s.sales.Reschedule(ctx, saleID, newDate, cutoffFor(newDate)); err != nil {
		return 0, err
	}

	affected, err := s.orders.ListOpenByBakeSale(ctx, saleID)
	if err != nil {
		return 0, err
	}

	for _, ao := range affected {
		err := s.notifier.Send(ctx, ao.User.Email, notify.BakeSaleRescheduled{
			OrderRef: ao.Order.Reference(),
			OldDate:  formatDate(oldDate),
			NewDate:  formatDate(newDate),
			Reason:   reason,
		})
		if err != nil {
			return 0, err
		}
	}

	log.Printf("[BAKESALE] [INFO] rescheduled sale %s to %s, %d orders notified", saleID.Hex(), newDate.Format("2006-01-02"), len(affected))
	s.cache.Invalidate(ViewAdminOrders, ViewAdminBakeSales, ViewOrderPage)
	return len(affected), nil
}
