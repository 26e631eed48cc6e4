package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// LineItem is a price/name snapshot embedded in carts and orders. It is
// captured once, when the product enters the cart or order, and is never
// refreshed even if the source product later changes.
type LineItem struct {
	ProductID primitive.ObjectID `bson:"productId" json:"productId"`
	Name      string             `bson:"name" json:"name"`
	Price     float64            `bson:"price" json:"price"`
	Quantity  int                `bson:"quantity" json:"quantity"`
}

// Snapshot freezes the product's current name and price into a line item.
func Snapshot(p *Product, quantity int) LineItem {
	return LineItem{
		ProductID: p.ID,
		Name:      p.Name,
		Price:     p.Price,
		Quantity:  quantity,
	}
}

// ItemsTotal is the one way totals are computed anywhere in the system.
func ItemsTotal(items []LineItem) float64 {
	var total float64
	for _, it := range items {
		total += it.Price * float64(it.Quantity)
	}
	return total
}
