package domain

import "go.mongodb.org/mongo-driver/bson/primitive"

// Category groups products.
type Category struct {
	ID   primitive.ObjectID `bson:"_id,omitempty" json:"category_id"`
	Name string             `bson:"name" json:"name"`
}
