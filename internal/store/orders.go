package store

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"bakeshop/internal/models"
	"bakeshop/internal/workflows"
)

const opTimeout = 5 * time.Second

// Orders is the Mongo-backed order store.
type Orders struct {
	db *mongo.Database
}

func NewOrders(db *mongo.Database) *Orders {
	return &Orders{db: db}
}

func (s *Orders) FindWithUser(ctx context.Context, id primitive.ObjectID) (*models.Order, *models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	var order models.Order
	err := s.db.Collection("orders").FindOne(ctx, bson.M{"_id": id}).Decode(&order)
	if err == mongo.ErrNoDocuments {
		return nil, nil, nil
	}
	if err != nil {
		return nil, nil, err
	}

	var user models.User
	err = s.db.Collection("users").FindOne(ctx, bson.M{"_id": order.UserID}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return &order, nil, nil
	}
	if err != nil {
		return nil, nil, err
	}

	return &order, &user, nil
}

func (s *Orders) ListOpenByBakeSale(ctx context.Context, saleID primitive.ObjectID) ([]workflows.AffectedOrder, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	filter := bson.M{
		"bakeSaleId": saleID,
		"status":     bson.M{"$nin": models.TerminalStatuses()},
	}

	cursor, err := s.db.Collection("orders").Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var orders []models.Order
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, err
	}

	affected := make([]workflows.AffectedOrder, 0, len(orders))
	for _, order := range orders {
		var user models.User
		err := s.db.Collection("users").FindOne(ctx, bson.M{"_id": order.UserID}).Decode(&user)
		if err != nil && err != mongo.ErrNoDocuments {
			return nil, err
		}
		affected = append(affected, workflows.AffectedOrder{Order: order, User: user})
	}
	return affected, nil
}

func (s *Orders) SetStatus(ctx context.Context, id primitive.ObjectID, status models.OrderStatus) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	_, err := s.db.Collection("orders").UpdateOne(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"status": status, "updatedAt": time.Now()}},
	)
	return err
}

func (s *Orders) Transfer(ctx context.Context, id, newSaleID primitive.ObjectID) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	_, err := s.db.Collection("orders").UpdateOne(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{
			"bakeSaleId": newSaleID,
			"status":     models.StatusPending,
			"updatedAt":  time.Now(),
		}},
	)
	return err
}

func (s *Orders) SetItemQuantity(ctx context.Context, orderID, itemID primitive.ObjectID, quantity int) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	_, err := s.db.Collection("orders").UpdateOne(
		ctx,
		bson.M{"_id": orderID, "items.itemId": itemID},
		bson.M{"$set": bson.M{
			"items.$.quantity": quantity,
			"updatedAt":        time.Now(),
		}},
	)
	return err
}

func (s *Orders) SetTotal(ctx context.Context, id primitive.ObjectID, total float64) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	_, err := s.db.Collection("orders").UpdateOne(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"total": total, "updatedAt": time.Now()}},
	)
	return err
}
