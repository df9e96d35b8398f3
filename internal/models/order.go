package models

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// OrderStatus is the closed set of order lifecycle states.
type OrderStatus string

const (
	StatusPending        OrderStatus = "pending"
	StatusProcessing     OrderStatus = "processing"
	StatusReady          OrderStatus = "ready"
	StatusFulfilled      OrderStatus = "fulfilled"
	StatusActionRequired OrderStatus = "action_required"
	StatusCancelled      OrderStatus = "cancelled"
	StatusRefunded       OrderStatus = "refunded"
)

// ParseOrderStatus validates a raw status string at the boundary.
func ParseOrderStatus(raw string) (OrderStatus, bool) {
	switch s := OrderStatus(strings.TrimSpace(raw)); s {
	case StatusPending, StatusProcessing, StatusReady, StatusFulfilled,
		StatusActionRequired, StatusCancelled, StatusRefunded:
		return s, true
	default:
		return "", false
	}
}

// TerminalStatuses lists the statuses excluded by affected-order queries.
func TerminalStatuses() []OrderStatus {
	return []OrderStatus{StatusCancelled, StatusRefunded, StatusFulfilled}
}

// PaymentStatus mirrors the payment provider's view of an order.
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentCompleted PaymentStatus = "completed"
)

// OrderItem represents a single line within an order. A quantity of zero
// means the line was removed by staff.
type OrderItem struct {
	ItemID      primitive.ObjectID `bson:"itemId" json:"itemId"`
	ProductName string             `bson:"productName" json:"productName"`
	VariantName string             `bson:"variantName,omitempty" json:"variantName,omitempty"`
	UnitPrice   float64            `bson:"unitPrice" json:"unitPrice"`
	Quantity    int                `bson:"quantity" json:"quantity"`
}

// DisplayName is the customer-facing name used in change summaries.
func (i OrderItem) DisplayName() string {
	if i.VariantName != "" {
		return i.ProductName + " (" + i.VariantName + ")"
	}
	return i.ProductName
}

// Order defines the persisted order document.
type Order struct {
	ID                primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	UserID            primitive.ObjectID  `bson:"userId" json:"userId"`
	BakeSaleID        primitive.ObjectID  `bson:"bakeSaleId" json:"bakeSaleId"`
	VoucherID         *primitive.ObjectID `bson:"voucherId,omitempty" json:"voucherId,omitempty"`
	Items             []OrderItem         `bson:"items" json:"items"`
	Total             float64             `bson:"total" json:"total"`
	Status            OrderStatus         `bson:"status" json:"status"`
	PaymentStatus     PaymentStatus       `bson:"paymentStatus" json:"paymentStatus"`
	FulfillmentMethod string              `bson:"fulfillmentMethod" json:"fulfillmentMethod"`
	CreatedAt         time.Time           `bson:"createdAt" json:"createdAt"`
	UpdatedAt         time.Time           `bson:"updatedAt" json:"updatedAt"`
}

// Reference is the short order reference shown to customers in
// notifications, derived from the tail of the order id.
func (o Order) Reference() string {
	hex := o.ID.Hex()
	if len(hex) > 6 {
		hex = hex[len(hex)-6:]
	}
	return "#" + strings.ToUpper(hex)
}
