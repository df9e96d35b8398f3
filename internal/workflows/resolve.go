package workflows

import (
	"context"
	"log"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Resolution is the customer's choice for an action_required order.
type Resolution string

const (
	ResolutionCancel   Resolution = "cancel"
	ResolutionTransfer Resolution = "transfer"
)

// ResolveOrderIssue is the customer-facing counterpart to cancellation:
// the affected customer either cancels the order (refund path when paid)
// or transfers it to a specific alternative bake sale.
//
// The workflow does not re-check that the order is still action_required;
// that guard belongs to the calling page. No notification is sent — the
// caller's UI communicates the outcome.
func (s *Service) ResolveOrderIssue(ctx context.Context, caller Caller, orderID primitive.ObjectID, resolution Resolution, newSaleID *primitive.ObjectID) error {
	order, _, err := s.orders.FindWithUser(ctx, orderID)
	if err != nil {
		return err
	}
	if order == nil {
		return NotFoundError{Entity: "Order"}
	}
	if caller.UserID.IsZero() || order.UserID != caller.UserID {
		return ErrUnauthorized
	}

	switch resolution {
	case ResolutionCancel:
		status := terminalStatusFor(order.PaymentStatus)
		if err := s.orders.SetStatus(ctx, orderID, status); err != nil {
			return err
		}
		if err := s.restoreVoucher(ctx, *order); err != nil {
			return err
		}
		log.Printf("[ORDER] [INFO] order %s resolved as %s", orderID.Hex(), status)

	case ResolutionTransfer:
		// No stock or capacity check at this stage, deliberately.
		if newSaleID == nil {
			return ValidationError{Field: "newBakeSaleId"}
		}
		if err := s.orders.Transfer(ctx, orderID, *newSaleID); err != nil {
			return err
		}
		log.Printf("[ORDER] [INFO] order %s transferred to sale %s", orderID.Hex(), newSaleID.Hex())

	default:
		return ValidationError{Field: "resolution", Reason: "invalid"}
	}

	s.cache.Invalidate(ViewOrderPage, ViewAdminOrders)
	return nil
}
