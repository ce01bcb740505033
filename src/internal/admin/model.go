package admin

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Identity is the single admin account the service authenticates against.
// Exactly one document is expected per configured username; the bootstrap
// reconciler creates and maintains it.
type Identity struct {
	ID           primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Username     string             `json:"username" bson:"username"`
	PasswordHash string             `json:"-" bson:"password"`
	CreatedAt    time.Time          `json:"createdAt" bson:"created_at"`
	UpdatedAt    time.Time          `json:"updatedAt" bson:"updated_at"`
}
