package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Product is the catalog's source of truth for pricing. CategoryName is a
// denormalized copy of the referenced category's name, refreshed only on
// create/update of the product itself.
type Product struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name            string             `bson:"name" json:"name"`
	Description     string             `bson:"description,omitempty" json:"description,omitempty"`
	Price           float64            `bson:"price" json:"price"`
	Stock           int                `bson:"stock" json:"stock"`
	CategoryID      primitive.ObjectID `bson:"categoryId" json:"categoryId"`
	CategoryName    string             `bson:"categoryName" json:"categoryName"`
	Photos          []string           `bson:"photos,omitempty" json:"photos,omitempty"`
	Characteristics []string           `bson:"characteristics,omitempty" json:"characteristics,omitempty"`
	Views           int64              `bson:"views" json:"views"`
	BoughtCount     int64              `bson:"boughtCount" json:"boughtCount"`
}

// ProductPatch carries the fields a partial update may touch. Nil means
// "leave unchanged". CategoryName is filled by the service when CategoryID
// moves, never by callers.
type ProductPatch struct {
	Name            *string
	Description     *string
	Price           *float64
	Stock           *int
	CategoryID      *primitive.ObjectID
	CategoryName    *string
	Photos          *[]string
	Characteristics *[]string
}
