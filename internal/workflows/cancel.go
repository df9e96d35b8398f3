package workflows

import (
	"context"
	"fmt"
	"log"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"bakeshop/internal/models"
	"bakeshop/internal/notify"
)

// CancelBakeSale deactivates a sale and resolves every open order against
// it. When another upcoming sale exists the customer gets to choose
// (transfer or cancel) via the resolution flow; otherwise the order is
// closed out immediately with a refund-or-cancel decision and any voucher
// use is returned.
//
// Orders are processed sequentially; a failure aborts the remaining loop
// and surfaces as a single workflow error with no rollback of orders
// already resolved.
func (s *Service) CancelBakeSale(ctx context.Context, caller Caller, saleID primitive.ObjectID, reason string) (int, error) {
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

	affected, err := s.orders.ListOpenByBakeSale(ctx, saleID)
	if err != nil {
		return 0, err
	}

	hasAlternative, err := s.sales.HasUpcomingAlternative(ctx, saleID, s.now())
	if err != nil {
		return 0, err
	}

	for _, ao := range affected {
		if hasAlternative {
			if err := s.offerResolution(ctx, sale, ao); err != nil {
				return 0, err
			}
			continue
		}
		if err := s.closeOut(ctx, sale, ao, reason); err != nil {
			return 0, err
		}
	}

	// Deactivate even when no orders were affected, so retrying a
	// half-cancelled sale is harmless.
	if err := s.sales.Deactivate(ctx, saleID); err != nil {
		return 0, err
	}

	log.Printf("[BAKESALE] [INFO] cancelled sale %s, %d orders affected", saleID.Hex(), len(affected))
	s.cache.Invalidate(ViewAdminOrders, ViewAdminBakeSales, ViewOrderPage)
	return len(affected), nil
}

// offerResolution parks the order in action_required and points the
// customer at the resolution flow.
func (s *Service) offerResolution(ctx context.Context, sale *models.BakeSale, ao AffectedOrder) error {
	if err := s.orders.SetStatus(ctx, ao.Order.ID, models.StatusActionRequired); err != nil {
		return err
	}
	return s.notifier.Send(ctx, ao.User.Email, notify.ActionRequired{
		OrderRef:       ao.Order.Reference(),
		OriginalDate:   formatDate(sale.Date),
		ResolutionLink: fmt.Sprintf("%s/orders/%s/resolve", s.baseURL, ao.Order.ID.Hex()),
	})
}

// closeOut cancels or refunds the order, returns its voucher use, and
// notifies the customer.
func (s *Service) closeOut(ctx context.Context, sale *models.BakeSale, ao AffectedOrder, reason string) error {
	status := terminalStatusFor(ao.Order.PaymentStatus)
	if err := s.orders.SetStatus(ctx, ao.Order.ID, status); err != nil {
		return err
	}
	if err := s.restoreVoucher(ctx, ao.Order); err != nil {
		return err
	}
	return s.notifier.Send(ctx, ao.User.Email, notify.BakeSaleCancelled{
		OrderRef:     ao.Order.Reference(),
		Date:         formatDate(sale.Date),
		LocationName: sale.Location.Name,
		Reason:       reason,
	})
}
