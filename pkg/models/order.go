package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type OrderStatus string
type PaymentStatus string

const (
	OrderStatusPendiente  OrderStatus = "Pendiente"
	OrderStatusProcesando OrderStatus = "Procesando"
	OrderStatusEnviado    OrderStatus = "Enviado"
	OrderStatusEntregado  OrderStatus = "Entregado"
	OrderStatusCancelado  OrderStatus = "Cancelado"

	PaymentStatusPendiente PaymentStatus = "Pendiente"
	PaymentStatusAprobado  PaymentStatus = "Aprobado"
	PaymentStatusFallido   PaymentStatus = "Fallido"
)

// Valid reports whether s is one of the order statuses. Any valid status may
// follow any other; there is no transition graph.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPendiente, OrderStatusProcesando, OrderStatusEnviado,
		OrderStatusEntregado, OrderStatusCancelado:
		return true
	}
	return false
}

func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentStatusPendiente, PaymentStatusAprobado, PaymentStatusFallido:
		return true
	}
	return false
}

// Order is immutable once created except for its two status fields.
// OrderNumber is the human-facing sequence starting at 1000. OrderTotal is
// fixed at creation and never recomputed. ShippingAddress is a copy taken at
// creation, never re-synced with the user's address.
type Order struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	OrderNumber     int64              `bson:"orderNumber" json:"orderNumber"`
	UserID          primitive.ObjectID `bson:"userId" json:"userId"`
	ShippingAddress string             `bson:"shippingAddress" json:"shippingAddress"`
	Items           []LineItem         `bson:"items" json:"items"`
	OrderTotal      float64            `bson:"orderTotal" json:"orderTotal"`
	PaymentStatus   PaymentStatus      `bson:"paymentStatus" json:"paymentStatus"`
	Status          OrderStatus        `bson:"status" json:"status"`
	CreatedAt       time.Time          `bson:"createdAt" json:"createdAt"`
}

// OrderPatch is the only mutation an existing order accepts.
type OrderPatch struct {
	Status        *OrderStatus
	PaymentStatus *PaymentStatus
}
