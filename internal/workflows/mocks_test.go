package workflows

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"bakeshop/internal/models"
	"bakeshop/internal/notify"
)

type mockOrderStore struct {
	mock.Mock
}

func (m *mockOrderStore) FindWithUser(ctx context.Context, id primitive.ObjectID) (*models.Order, *models.User, error) {
	args := m.Called(ctx, id)
	var order *models.Order
	if v := args.Get(0); v != nil {
		order = v.(*models.Order)
	}
	var user *models.User
	if v := args.Get(1); v != nil {
		user = v.(*models.User)
	}
	return order, user, args.Error(2)
}

func (m *mockOrderStore) ListOpenByBakeSale(ctx context.Context, saleID primitive.ObjectID) ([]AffectedOrder, error) {
	args := m.Called(ctx, saleID)
	var affected []AffectedOrder
	if v := args.Get(0); v != nil {
		affected = v.([]AffectedOrder)
	}
	return affected, args.Error(1)
}

func (m *mockOrderStore) SetStatus(ctx context.Context, id primitive.ObjectID, status models.OrderStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *mockOrderStore) Transfer(ctx context.Context, id, newSaleID primitive.ObjectID) error {
	args := m.Called(ctx, id, newSaleID)
	return args.Error(0)
}

func (m *mockOrderStore) SetItemQuantity(ctx context.Context, orderID, itemID primitive.ObjectID, quantity int) error {
	args := m.Called(ctx, orderID, itemID, quantity)
	return args.Error(0)
}

func (m *mockOrderStore) SetTotal(ctx context.Context, id primitive.ObjectID, total float64) error {
	args := m.Called(ctx, id, total)
	return args.Error(0)
}

type mockBakeSaleStore struct {
	mock.Mock
}

func (m *mockBakeSaleStore) Find(ctx context.Context, id primitive.ObjectID) (*models.BakeSale, error) {
	args := m.Called(ctx, id)
	var sale *models.BakeSale
	if v := args.Get(0); v != nil {
		sale = v.(*models.BakeSale)
	}
	return sale, args.Error(1)
}

func (m *mockBakeSaleStore) HasUpcomingAlternative(ctx context.Context, excludeID primitive.ObjectID, after time.Time) (bool, error) {
	args := m.Called(ctx, excludeID, after)
	return args.Bool(0), args.Error(1)
}

func (m *mockBakeSaleStore) Deactivate(ctx context.Context, id primitive.ObjectID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockBakeSaleStore) Reschedule(ctx context.Context, id primitive.ObjectID, newDate, cutoff time.Time) error {
	args := m.Called(ctx, id, newDate, cutoff)
	return args.Error(0)
}

type mockVoucherLedger struct {
	mock.Mock
}

func (m *mockVoucherLedger) RestoreOnce(ctx context.Context, orderID, voucherID primitive.ObjectID) (bool, error) {
	args := m.Called(ctx, orderID, voucherID)
	return args.Bool(0), args.Error(1)
}

type mockSender struct {
	mock.Mock
}

func (m *mockSender) Send(ctx context.Context, recipientEmail string, p notify.Payload) error {
	args := m.Called(ctx, recipientEmail, p)
	return args.Error(0)
}

type spyInvalidator struct {
	views []string
}

func (s *spyInvalidator) Invalidate(views ...string) {
	s.views = append(s.views, views...)
}

type fixture struct {
	orders   *mockOrderStore
	sales    *mockBakeSaleStore
	vouchers *mockVoucherLedger
	sender   *mockSender
	cache    *spyInvalidator
	svc      *Service
}

func newFixture() *fixture {
	f := &fixture{
		orders:   new(mockOrderStore),
		sales:    new(mockBakeSaleStore),
		vouchers: new(mockVoucherLedger),
		sender:   new(mockSender),
		cache:    &spyInvalidator{},
	}
	f.svc = NewService(f.orders, f.sales, f.vouchers, f.sender, f.cache, "https://shop.example")
	return f
}

// payloadFor matches a sent notification by template name.
func payloadFor(template string) interface{} {
	return mock.MatchedBy(func(p notify.Payload) bool {
		return p.Template() == template
	})
}
