package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Inventory tracks warehouse stock for a product. DateIn/DateOut are
// optional and carry no ordering constraint between them.
type Inventory struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"inventory_id"`
	ProductID string             `bson:"product_id" json:"product_id"`
	Stock     int                `bson:"stock" json:"stock"`
	DateIn    *time.Time         `bson:"date_in" json:"date_in,omitempty"`
	DateOut   *time.Time         `bson:"date_out" json:"date_out,omitempty"`
}
