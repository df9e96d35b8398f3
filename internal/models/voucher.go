package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Voucher is a discount code with a bounded usage counter. A use is
// consumed at checkout and returned when the order is cancelled or
// refunded.
type Voucher struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Code        string             `bson:"code" json:"code"`
	CurrentUses int                `bson:"currentUses" json:"currentUses"`
}

// VoucherRestoration records a single returned voucher use. The unique
// (orderId, voucherId) index makes restoration idempotent across retried
// cancellations.
type VoucherRestoration struct {
	ID         string             `bson:"_id" json:"id"`
	OrderID    primitive.ObjectID `bson:"orderId" json:"orderId"`
	VoucherID  primitive.ObjectID `bson:"voucherId" json:"voucherId"`
	RestoredAt time.Time          `bson:"restoredAt" json:"restoredAt"`
}
