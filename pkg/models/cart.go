package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Cart holds line-item snapshots for a user or an anonymous visitor.
// Total is recomputed after every mutation and must always equal
// ItemsTotal(Items).
type Cart struct {
	ID     primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	UserID *primitive.ObjectID `bson:"userId,omitempty" json:"userId,omitempty"`
	Items  []LineItem          `bson:"items" json:"items"`
	Total  float64             `bson:"total" json:"total"`
}

type CartPatch struct {
	UserID *primitive.ObjectID
	Items  *[]LineItem
	Total  *float64
}
