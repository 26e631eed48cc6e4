package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Role string

const (
	RoleCliente  Role = "cliente"
	RoleAdmin    Role = "admin"
	RoleVendedor Role = "vendedor"
)

func (r Role) Valid() bool {
	switch r {
	case RoleCliente, RoleAdmin, RoleVendedor:
		return true
	}
	return false
}

// User holds an account plus a weak back-reference list of order ids.
// PastOrders is maintained only by order create/delete, never by user
// updates. Password holds the bcrypt hash and is never serialized.
type User struct {
	ID         primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Email      string               `bson:"email" json:"email"`
	Password   string               `bson:"password" json:"-"`
	Name       string               `bson:"name" json:"name"`
	Address    string               `bson:"address" json:"address"`
	Role       Role                 `bson:"role" json:"role"`
	PastOrders []primitive.ObjectID `bson:"pastOrders" json:"pastOrders"`
	CreatedAt  time.Time            `bson:"createdAt" json:"createdAt"`
	UpdatedAt  time.Time            `bson:"updatedAt" json:"updatedAt"`
}

type UserPatch struct {
	Email    *string
	Password *string
	Name     *string
	Address  *string
	Role     *Role
}
