package recipe

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Recipe struct {
	ID           primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	Title        string             `json:"title" bson:"title"`
	Description  string             `json:"description" bson:"description"`
	Ingredients  string             `json:"ingredients" bson:"ingredients"`
	Instructions string             `json:"instructions" bson:"instructions"`
	CreatedAt    time.Time          `json:"createdAt" bson:"created_at"`
	UpdatedAt    time.Time          `json:"updatedAt" bson:"updated_at"`
}

// UpsertRequest carries the editable fields for create and update.
type UpsertRequest struct {
	Title        string `json:"title"`
	Description  string `json:"description"`
	Ingredients  string `json:"ingredients"`
	Instructions string `json:"instructions"`
}

// Trim normalizes all fields in place.
func (r *UpsertRequest) Trim() {
	r.Title = strings.TrimSpace(r.Title)
	r.Description = strings.TrimSpace(r.Description)
	r.Ingredients = strings.TrimSpace(r.Ingredients)
	r.Instructions = strings.TrimSpace(r.Instructions)
}

// Complete reports whether all required fields are present after trimming.
func (r *UpsertRequest) Complete() bool {
	return r.Title != "" && r.Description != "" && r.Ingredients != "" && r.Instructions != ""
}
