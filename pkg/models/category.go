package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Category tracks ProductCount as an incrementally maintained cache of how
// many products currently reference it. A category cannot be deleted while
// the counter is above zero.
type Category struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name         string             `bson:"name" json:"name"`
	Description  string             `bson:"description,omitempty" json:"description,omitempty"`
	ProductCount int64              `bson:"productCount" json:"productCount"`
}

type CategoryPatch struct {
	Name        *string
	Description *string
}
