package store

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"bakeshop/internal/models"
)

// BakeSales is the Mongo-backed bake-sale store.
type BakeSales struct {
	db *mongo.Database
}

func NewBakeSales(db *mongo.Database) *BakeSales {
	return &BakeSales{db: db}
}

func (s *BakeSales) Find(ctx context.Context, id primitive.ObjectID) (*models.BakeSale, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	var sale models.BakeSale
	err := s.db.Collection("bake_sales").FindOne(ctx, bson.M{"_id": id}).Decode(&sale)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &sale, nil
}

func (s *BakeSales) HasUpcomingAlternative(ctx context.Context, excludeID primitive.ObjectID, after time.Time) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	filter := bson.M{
		"_id":      bson.M{"$ne": excludeID},
		"isActive": true,
		"date":     bson.M{"$gt": after},
	}
	opts := options.FindOne().SetSort(bson.D{{Key: "date", Value: 1}})

	err := s.db.Collection("bake_sales").FindOne(ctx, filter, opts).Err()
	if err == mongo.ErrNoDocuments {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (s *BakeSales) Deactivate(ctx context.Context, id primitive.ObjectID) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	_, err := s.db.Collection("bake_sales").UpdateOne(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"isActive": false}},
	)
	return err
}

func (s *BakeSales) Reschedule(ctx context.Context, id primitive.ObjectID, newDate, cutoff time.Time) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	_, err := s.db.Collection("bake_sales").UpdateOne(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"date": newDate, "cutoffAt": cutoff}},
	)
	return err
}

// List returns sales for the admin view, soonest first.
func (s *BakeSales) List(ctx context.Context) ([]models.BakeSale, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "date", Value: 1}})
	cursor, err := s.db.Collection("bake_sales").Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var sales []models.BakeSale
	if err := cursor.All(ctx, &sales); err != nil {
		return nil, err
	}
	return sales, nil
}
