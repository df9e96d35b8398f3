package workflows

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"bakeshop/internal/models"
	"bakeshop/internal/notify"
)

// Views the workflows invalidate after mutating state.
const (
	ViewAdminOrders    = "admin_orders"
	ViewAdminBakeSales = "admin_bake_sales"
	ViewOrderPage      = "order_page"
)

// Caller identifies who invoked a workflow.
type Caller struct {
	UserID primitive.ObjectID
	Role   models.Role
}

// AffectedOrder pairs an order with its owner for notification fan-out.
type AffectedOrder struct {
	Order models.Order
	User  models.User
}

// OrderStore is the order persistence consumed by the workflows. Every
// write is a row-level atomic update.
type OrderStore interface {
	FindWithUser(ctx context.Context, id primitive.ObjectID) (*models.Order, *models.User, error)
	// ListOpenByBakeSale returns the sale's orders outside the terminal
	// set, each with its owning user.
	ListOpenByBakeSale(ctx context.Context, saleID primitive.ObjectID) ([]AffectedOrder, error)
	SetStatus(ctx context.Context, id primitive.ObjectID, status models.OrderStatus) error
	// Transfer moves the order to another bake sale and resets it to
	// pending.
	Transfer(ctx context.Context, id, newSaleID primitive.ObjectID) error
	SetItemQuantity(ctx context.Context, orderID, itemID primitive.ObjectID, quantity int) error
	SetTotal(ctx context.Context, id primitive.ObjectID, total float64) error
}

// BakeSaleStore is the bake-sale persistence consumed by the workflows.
type BakeSaleStore interface {
	Find(ctx context.Context, id primitive.ObjectID) (*models.BakeSale, error)
	// HasUpcomingAlternative reports whether any other active sale is
	// scheduled strictly after the given time. Only existence matters, so
	// the lookup is ordered ascending by date and limited to one.
	HasUpcomingAlternative(ctx context.Context, excludeID primitive.ObjectID, after time.Time) (bool, error)
	Deactivate(ctx context.Context, id primitive.ObjectID) error
	Reschedule(ctx context.Context, id primitive.ObjectID, newDate, cutoff time.Time) error
}

// VoucherLedger restores consumed voucher uses. RestoreOnce decrements the
// voucher's counter unless a restoration for this (order, voucher) pair was
// already recorded, and reports whether the decrement happened.
type VoucherLedger interface {
	RestoreOnce(ctx context.Context, orderID, voucherID primitive.ObjectID) (bool, error)
}

// CacheInvalidator is the fire-and-forget staleness side channel.
type CacheInvalidator interface {
	Invalidate(views ...string)
}

// Service runs the bake-sale and order workflows against its collaborator
// interfaces. Invocations share no in-process state.
type Service struct {
	orders   OrderStore
	sales    BakeSaleStore
	vouchers VoucherLedger
	notifier notify.Sender
	cache    CacheInvalidator
	baseURL  string
	now      func() time.Time
}

func NewService(orders OrderStore, sales BakeSaleStore, vouchers VoucherLedger, notifier notify.Sender, cache CacheInvalidator, baseURL string) *Service {
	return &Service{
		orders:   orders,
		sales:    sales,
		vouchers: vouchers,
		notifier: notifier,
		cache:    cache,
		baseURL:  baseURL,
		now:      time.Now,
	}
}

// authorize is the single capability check shared by all staff-facing
// workflows.
func authorize(caller Caller, allowed ...models.Role) error {
	for _, role := range allowed {
		if caller.Role == role {
			return nil
		}
	}
	return ErrUnauthorized
}

// restoreVoucher returns the consumed use when the order actually carried
// a voucher. The ledger makes retried restorations a no-op.
func (s *Service) restoreVoucher(ctx context.Context, order models.Order) error {
	if order.VoucherID == nil {
		return nil
	}
	_, err := s.vouchers.RestoreOnce(ctx, order.ID, *order.VoucherID)
	return err
}
