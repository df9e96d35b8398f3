package workflows

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"bakeshop/internal/models"
	"bakeshop/internal/notify"
)

func manager() Caller {
	return Caller{UserID: primitive.NewObjectID(), Role: models.RoleManager}
}

func testSale(id primitive.ObjectID) *models.BakeSale {
	return &models.BakeSale{
		ID:       id,
		Date:     time.Date(2025, 11, 27, 0, 0, 0, 0, time.UTC),
		IsActive: true,
		Location: models.Location{Name: "Town Hall", Address: "1 Market Square"},
	}
}

func openOrder(payment models.PaymentStatus, voucherID *primitive.ObjectID) AffectedOrder {
	return AffectedOrder{
		Order: models.Order{
			ID:            primitive.NewObjectID(),
			UserID:        primitive.NewObjectID(),
			Status:        models.StatusPending,
			PaymentStatus: payment,
			VoucherID:     voucherID,
		},
		User: models.User{Email: "customer@example.com", Name: "Pat"},
	}
}

func TestCancelBakeSaleRequiresElevatedRole(t *testing.T) {
	f := newFixture()
	caller := Caller{UserID: primitive.NewObjectID(), Role: models.RoleStaff}

	affected, err := f.svc.CancelBakeSale(context.Background(), caller, primitive.NewObjectID(), "oven broke")

	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.Zero(t, affected)
	f.sales.AssertNotCalled(t, "Find", mock.Anything, mock.Anything)
	f.orders.AssertNotCalled(t, "SetStatus", mock.Anything, mock.Anything, mock.Anything)
	f.sender.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything)
	assert.Empty(t, f.cache.views)
}

func TestCancelBakeSaleNotFound(t *testing.T) {
	f := newFixture()
	saleID := primitive.NewObjectID()
	f.sales.On("Find", mock.Anything, saleID).Return(nil, nil)

	_, err := f.svc.CancelBakeSale(context.Background(), manager(), saleID, "flooding")

	var notFound NotFoundError
	assert.ErrorAs(t, err, &notFound)
	assert.Equal(t, "Bake sale not found", err.Error())
}

func TestCancelBakeSaleNoAlternativesRefundsPaidOrder(t *testing.T) {
	f := newFixture()
	saleID := primitive.NewObjectID()
	voucherID := primitive.NewObjectID()
	order := openOrder(models.PaymentCompleted, &voucherID)

	f.sales.On("Find", mock.Anything, saleID).Return(testSale(saleID), nil)
	f.orders.On("ListOpenByBakeSale", mock.Anything, saleID).Return([]AffectedOrder{order}, nil)
	f.sales.On("HasUpcomingAlternative", mock.Anything, saleID, mock.Anything).Return(false, nil)
	f.orders.On("SetStatus", mock.Anything, order.Order.ID, models.StatusRefunded).Return(nil)
	f.vouchers.On("RestoreOnce", mock.Anything, order.Order.ID, voucherID).Return(true, nil)
	f.sender.On("Send", mock.Anything, "customer@example.com", payloadFor("bake_sale_cancelled")).Return(nil).Once()
	f.sales.On("Deactivate", mock.Anything, saleID).Return(nil)

	affected, err := f.svc.CancelBakeSale(context.Background(), manager(), saleID, "oven broke")

	assert.NoError(t, err)
	assert.Equal(t, 1, affected)
	f.orders.AssertExpectations(t)
	f.sales.AssertExpectations(t)
	f.vouchers.AssertExpectations(t)
	f.sender.AssertExpectations(t)
	assert.Contains(t, f.cache.views, ViewAdminBakeSales)
}

func TestCancelBakeSaleCancelledNotificationPayload(t *testing.T) {
	f := newFixture()
	saleID := primitive.NewObjectID()
	order := openOrder(models.PaymentCompleted, nil)

	var sent notify.Payload
	f.sales.On("Find", mock.Anything, saleID).Return(testSale(saleID), nil)
	f.orders.On("ListOpenByBakeSale", mock.Anything, saleID).Return([]AffectedOrder{order}, nil)
	f.sales.On("HasUpcomingAlternative", mock.Anything, saleID, mock.Anything).Return(false, nil)
	f.orders.On("SetStatus", mock.Anything, order.Order.ID, models.StatusRefunded).Return(nil)
	f.sender.On("Send", mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { sent = args.Get(2).(notify.Payload) }).
		Return(nil)
	f.sales.On("Deactivate", mock.Anything, saleID).Return(nil)

	_, err := f.svc.CancelBakeSale(context.Background(), manager(), saleID, "oven broke")

	assert.NoError(t, err)
	data := sent.Data()
	assert.Equal(t, "27 November 2025", data["date"])
	assert.Equal(t, "Town Hall", data["location"])
	assert.Equal(t, "oven broke", data["reason"])
	assert.Equal(t, order.Order.Reference(), data["order_ref"])
}

func TestCancelBakeSaleWithAlternativesDefersToResolution(t *testing.T) {
	f := newFixture()
	saleID := primitive.NewObjectID()
	voucherID := primitive.NewObjectID()
	order := openOrder(models.PaymentCompleted, &voucherID)

	f.sales.On("Find", mock.Anything, saleID).Return(testSale(saleID), nil)
	f.orders.On("ListOpenByBakeSale", mock.Anything, saleID).Return([]AffectedOrder{order}, nil)
	f.sales.On("HasUpcomingAlternative", mock.Anything, saleID, mock.Anything).Return(true, nil)
	f.orders.On("SetStatus", mock.Anything, order.Order.ID, models.StatusActionRequired).Return(nil)
	f.sender.On("Send", mock.Anything, "customer@example.com", payloadFor("action_required")).Return(nil).Once()
	f.sales.On("Deactivate", mock.Anything, saleID).Return(nil)

	affected, err := f.svc.CancelBakeSale(context.Background(), manager(), saleID, "venue lost")

	assert.NoError(t, err)
	assert.Equal(t, 1, affected)
	f.vouchers.AssertNotCalled(t, "RestoreOnce", mock.Anything, mock.Anything, mock.Anything)
	f.sender.AssertExpectations(t)
	f.sales.AssertExpectations(t)
}

func TestCancelBakeSaleUnpaidOrderIsCancelledNotRefunded(t *testing.T) {
	f := newFixture()
	saleID := primitive.NewObjectID()
	order := openOrder(models.PaymentPending, nil)

	f.sales.On("Find", mock.Anything, saleID).Return(testSale(saleID), nil)
	f.orders.On("ListOpenByBakeSale", mock.Anything, saleID).Return([]AffectedOrder{order}, nil)
	f.sales.On("HasUpcomingAlternative", mock.Anything, saleID, mock.Anything).Return(false, nil)
	f.orders.On("SetStatus", mock.Anything, order.Order.ID, models.StatusCancelled).Return(nil)
	f.sender.On("Send", mock.Anything, mock.Anything, payloadFor("bake_sale_cancelled")).Return(nil)
	f.sales.On("Deactivate", mock.Anything, saleID).Return(nil)

	_, err := f.svc.CancelBakeSale(context.Background(), manager(), saleID, "short staffed")

	assert.NoError(t, err)
	f.orders.AssertExpectations(t)
}

func TestCancelBakeSaleSecondRunIsHarmless(t *testing.T) {
	f := newFixture()
	saleID := primitive.NewObjectID()

	f.sales.On("Find", mock.Anything, saleID).Return(testSale(saleID), nil)
	f.orders.On("ListOpenByBakeSale", mock.Anything, saleID).Return([]AffectedOrder{}, nil)
	f.sales.On("HasUpcomingAlternative", mock.Anything, saleID, mock.Anything).Return(false, nil)
	f.sales.On("Deactivate", mock.Anything, saleID).Return(nil)

	affected, err := f.svc.CancelBakeSale(context.Background(), manager(), saleID, "repeat call")

	assert.NoError(t, err)
	assert.Zero(t, affected)
	f.orders.AssertNotCalled(t, "SetStatus", mock.Anything, mock.Anything, mock.Anything)
	f.sender.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything)
	f.sales.AssertExpectations(t)
}
