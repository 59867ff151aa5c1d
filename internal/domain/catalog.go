package domain

import "go.mongodb.org/mongo-driver/bson/primitive"

// Catalog is a storefront entry for a product.
type Catalog struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"catalog_id"`
	ProductID    string             `bson:"product_id" json:"product_id"`
	Name         string             `bson:"name" json:"name"`
	Availability bool               `bson:"availability" json:"availability"`
}
