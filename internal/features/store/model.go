package store

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Store is one retail location owned by a merchant account.
type Store struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    primitive.ObjectID `bson:"user_id" json:"user_id"`
	Name      string             `bson:"name" json:"name"`
	Slug      string             `bson:"slug" json:"slug"`
	Address   string             `bson:"address,omitempty" json:"address,omitempty"`
	Timezone  string             `bson:"timezone,omitempty" json:"timezone,omitempty"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updated_at"`
}
