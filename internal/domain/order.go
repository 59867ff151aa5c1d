package domain

import "go.mongodb.org/mongo-driver/bson/primitive"

// Order lifecycle states. Only admins may move an order between states.
const (
	OrderStatusPending   = "pending"
	OrderStatusPaid      = "paid"
	OrderStatusShipped   = "shipped"
	OrderStatusDelivered = "delivered"
	OrderStatusCancelled = "cancelled"
)

// OrderStatuses lists every valid order state.
var OrderStatuses = []string{
	OrderStatusPending,
	OrderStatusPaid,
	OrderStatusShipped,
	OrderStatusDelivered,
	OrderStatusCancelled,
}

// Order is a purchase made by a user over a set of inventory entries.
type Order struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"order_id"`
	UserID      string             `bson:"user_id" json:"user_id"`
	InventoryID []string           `bson:"inventory_id" json:"inventory_id"`
	Total       float64            `bson:"total" json:"total"`
	Status      string             `bson:"status" json:"status"`
}
