package database

import (
	"context"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func EnsureUserIndexes(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	indexes := db.Collection("users").Indexes()

	emailIndex := mongo.IndexModel{
		Keys: bson.D{{Key: "email", Value: 1}},
		Options: options.Index().
			SetName("email_unique").
			SetUnique(true),
	}

	log.Println("EnsureUserIndexes: creating email_unique index")
	_, err := indexes.CreateOne(ctx, emailIndex)
	if err != nil {
		log.Println("EnsureUserIndexes: email index error:", err)
		return err
	}
	log.Println("EnsureUserIndexes: email_unique index created")
	return nil
}

func EnsureOrderIndexes(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	indexes := db.Collection("orders").Indexes()

	orderIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "userId", Value: 1}},
			Options: options.Index().SetName("userId_index"),
		},
		{
			Keys: bson.D{
				{Key: "bakeSaleId", Value: 1},
				{Key: "status", Value: 1},
			},
			Options: options.Index().SetName("bakeSaleId_status_index"),
		},
	}

	log.Println("EnsureOrderIndexes: creating order indexes")
	_, err := indexes.CreateMany(ctx, orderIndexes)
	if err != nil {
		log.Println("EnsureOrderIndexes: order index error:", err)
		return err
	}
	log.Println("EnsureOrderIndexes: order indexes created")
	return nil
}

func EnsureBakeSaleIndexes(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	indexes := db.Collection("bake_sales").Indexes()

	dateIndex := mongo.IndexModel{
		Keys: bson.D{
			{Key: "isActive", Value: 1},
			{Key: "date", Value: 1},
		},
		Options: options.Index().SetName("isActive_date_index"),
	}

	log.Println("EnsureBakeSaleIndexes: creating isActive_date_index index")
	_, err := indexes.CreateOne(ctx, dateIndex)
	if err != nil {
		log.Println("EnsureBakeSaleIndexes: date index error:", err)
		return err
	}
	log.Println("EnsureBakeSaleIndexes: isActive_date_index index created")
	return nil
}

// EnsureRestorationIndexes backs the once-per-order voucher restoration
// guarantee with a unique compound key.
func EnsureRestorationIndexes(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	indexes := db.Collection("voucher_restorations").Indexes()

	pairIndex := mongo.IndexModel{
		Keys: bson.D{
			{Key: "orderId", Value: 1},
			{Key: "voucherId", Value: 1},
		},
		Options: options.Index().
			SetName("orderId_voucherId_unique").
			SetUnique(true),
	}

	log.Println("EnsureRestorationIndexes: creating orderId_voucherId_unique index")
	_, err := indexes.CreateOne(ctx, pairIndex)
	if err != nil {
		log.Println("EnsureRestorationIndexes: restoration index error:", err)
		return err
	}
	log.Println("EnsureRestorationIndexes: orderId_voucherId_unique index created")
	return nil
}
