package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Location carries the display details for a collection point.
type Location struct {
	Name            string `bson:"name" json:"name"`
	Address         string `bson:"address" json:"address"`
	CollectionHours string `bson:"collectionHours,omitempty" json:"collectionHours,omitempty"`
}

// BakeSale is a scheduled one-day fulfillment event at a location.
type BakeSale struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Date     time.Time          `bson:"date" json:"date"`
	CutoffAt time.Time          `bson:"cutoffAt" json:"cutoffAt"`
	IsActive bool               `bson:"isActive" json:"isActive"`
	Location Location           `bson:"location" json:"location"`
}
