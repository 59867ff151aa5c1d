package domain

import "go.mongodb.org/mongo-driver/bson/primitive"

// Product is a sellable item belonging to a category.
type Product struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"product_id"`
	Name       string             `bson:"name" json:"name"`
	Price      float64            `bson:"price" json:"price"`
	CategoryID string             `bson:"category_id" json:"category_id"`
}
