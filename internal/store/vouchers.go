package store

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"bakeshop/internal/models"
)

// Vouchers is the Mongo-backed voucher ledger.
type Vouchers struct {
	db *mongo.Database
}

func NewVouchers(db *mongo.Database) *Vouchers {
	return &Vouchers{db: db}
}

// RestoreOnce returns one consumed use to the voucher. The ledger insert
// and the counter decrement run in a single transaction; the unique
// (orderId, voucherId) index turns a repeated restoration into a no-op, so
// a retried cancellation cannot double-restore.
func (s *Vouchers) RestoreOnce(ctx context.Context, orderID, voucherID primitive.ObjectID) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	session, err := s.db.Client().StartSession()
	if err != nil {
		return false, err
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sessCtx mongo.SessionContext) (interface{}, error) {
		entry := models.VoucherRestoration{
			ID:         uuid.NewString(),
			OrderID:    orderID,
			VoucherID:  voucherID,
			RestoredAt: time.Now(),
		}
		if _, err := s.db.Collection("voucher_restorations").InsertOne(sessCtx, entry); err != nil {
			return nil, err
		}

		// No clamp at zero: restoration is a known return of a consumed
		// use, guarded by the ledger rather than a floor.
		_, err := s.db.Collection("vouchers").UpdateOne(
			sessCtx,
			bson.M{"_id": voucherID},
			bson.M{"$inc": bson.M{"currentUses": -1}},
		)
		return nil, err
	})
	if mongo.IsDuplicateKeyError(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
