package auth

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Merchant is an application account. Password is stored as a bcrypt hash
// and never serialized.
type Merchant struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email        string             `bson:"email" json:"email"`
	Name         string             `bson:"name" json:"name"`
	PasswordHash string             `bson:"password_hash" json:"-"`
	CreatedAt    time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time          `bson:"updated_at" json:"updated_at"`
}
