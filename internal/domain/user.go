package domain

import "go.mongodb.org/mongo-driver/bson/primitive"

// Authorization levels carried in the access token.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User represents an account that can authenticate against the API.
// The password hash is persisted but never serialized back to clients.
type User struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"user_id"`
	Email    string             `bson:"email" json:"email"`
	Password string             `bson:"password" json:"-"`
	Role     string             `bson:"role" json:"role"`
}
