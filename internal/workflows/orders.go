package workflows

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"bakeshop/internal/models"
	"bakeshop/internal/notify"
)

// UpdateOrderStatus persists the new status unconditionally: any known
// status may be set from any status. Only ready and completed fan out a
// customer notification.
func (s *Service) UpdateOrderStatus(ctx context.Context, caller Caller, orderID primitive.ObjectID, status models.OrderStatus) error {
	if err := authorize(caller, models.RoleOwner, models.RoleManager, models.RoleStaff); err != nil {
		return err
	}

	order, user, err := s.orders.FindWithUser(ctx, orderID)
	if err != nil {
		return err
	}
	if order == nil {
		return NotFoundError{Entity: "Order"}
	}
	if user == nil {
		return NotFoundError{Entity: "User"}
	}

	if err := s.orders.SetStatus(ctx, orderID, status); err != nil {
		return err
	}
	log.Printf("[ORDER] [INFO] order %s status set to %s", orderID.Hex(), status)

	switch status {
	case models.StatusReady:
		sale, err := s.sales.Find(ctx, order.BakeSaleID)
		if err != nil {
			return err
		}
		if sale == nil {
			return NotFoundError{Entity: "Bake sale"}
		}
		if err := s.notifier.Send(ctx, user.Email, notify.OrderReadyForCollection{
			OrderRef:        order.Reference(),
			LocationName:    sale.Location.Name,
			LocationAddress: sale.Location.Address,
			CollectionTime:  collectionHoursOrDefault(sale.Location.CollectionHours),
		}); err != nil {
			return err
		}
	case models.StatusFulfilled:
		if err := s.notifier.Send(ctx, user.Email, notify.OrderCompleted{
			OrderRef: order.Reference(),
		}); err != nil {
			return err
		}
	}

	s.cache.Invalidate(ViewAdminOrders, ViewOrderPage)
	return nil
}

// MarkOrderReady is the staff shortcut for the ready transition.
func (s *Service) MarkOrderReady(ctx context.Context, caller Caller, orderID primitive.ObjectID) error {
	return s.UpdateOrderStatus(ctx, caller, orderID, models.StatusReady)
}

// MarkOrderComplete is the staff shortcut for the fulfilled transition.
func (s *Service) MarkOrderComplete(ctx context.Context, caller Caller, orderID primitive.ObjectID) error {
	return s.UpdateOrderStatus(ctx, caller, orderID, models.StatusFulfilled)
}

// ItemUpdate is one requested line-item quantity change.
type ItemUpdate struct {
	ItemID      primitive.ObjectID
	NewQuantity int
}

// UpdateOrderItems applies staff edits to an order's lines and recomputes
// the total. The new total sums only the items named in the request;
// unmentioned lines drop out of it. That matches the reference behaviour
// and is flagged in DESIGN.md rather than silently corrected.
func (s *Service) UpdateOrderItems(ctx context.Context, caller Caller, orderID primitive.ObjectID, updates []ItemUpdate, audience notify.ChangeAudience) error {
	if err := authorize(caller, models.RoleOwner, models.RoleManager, models.RoleStaff); err != nil {
		return err
	}

	order, user, err := s.orders.FindWithUser(ctx, orderID)
	if err != nil {
		return err
	}
	if order == nil {
		return NotFoundError{Entity: "Order"}
	}
	if user == nil {
		return NotFoundError{Entity: "User"}
	}

	newTotal := decimal.Zero
	var changes []string

	for _, update := range updates {
		item := findItem(order.Items, update.ItemID)
		if item == nil {
			// Lines missing from the order are skipped silently.
			continue
		}

		if update.NewQuantity != item.Quantity {
			if err := s.orders.SetItemQuantity(ctx, orderID, update.ItemID, update.NewQuantity); err != nil {
				return err
			}
			if update.NewQuantity == 0 {
				changes = append(changes, fmt.Sprintf("%s removed", item.DisplayName()))
			} else {
				changes = append(changes, fmt.Sprintf("%s quantity changed from %d to %d", item.DisplayName(), item.Quantity, update.NewQuantity))
			}
		}

		// Every requested line counts towards the new total, changed or
		// not.
		newTotal = newTotal.Add(lineSubtotal(item.UnitPrice, update.NewQuantity))
	}

	total, _ := newTotal.Float64()
	if err := s.orders.SetTotal(ctx, orderID, total); err != nil {
		return err
	}
	log.Printf("[ORDER] [INFO] order %s items updated, new total %s", orderID.Hex(), formatMoney(newTotal))

	if err := s.notifier.Send(ctx, user.Email, notify.OrderUpdate{
		Audience:      audience,
		OrderRef:      order.Reference(),
		ChangeDetails: changeList(changes),
		NewTotal:      formatMoney(newTotal),
	}); err != nil {
		return err
	}

	s.cache.Invalidate(ViewAdminOrders, ViewOrderPage)
	return nil
}

func findItem(items []models.OrderItem, id primitive.ObjectID) *models.OrderItem {
	for i := range items {
		if items[i].ItemID == id {
			return &items[i]
		}
	}
	return nil
}

// changeList renders the change summary as the HTML list the order-update
// templates embed.
func changeList(changes []string) string {
	if len(changes) == 0 {
		return "<ul></ul>"
	}
	var b strings.Builder
	b.WriteString("<ul>")
	for _, change := range changes {
		b.WriteString("<li>")
		b.WriteString(change)
		b.WriteString("</li>")
	}
	b.WriteString("</ul>")
	return b.String()
}
