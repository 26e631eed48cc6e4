package service

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/example/joyashop/pkg/models"
)

// Store contracts consumed by the services. pkg/repository provides the
// MongoDB implementations; tests provide in-memory ones.

type ProductStore interface {
	Insert(ctx context.Context, p *models.Product) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error)
	FindAll(ctx context.Context) ([]models.Product, error)
	Update(ctx context.Context, id primitive.ObjectID, patch models.ProductPatch) (*models.Product, error)
	Delete(ctx context.Context, id primitive.ObjectID) (*models.Product, error)
	IncViews(ctx context.Context, id primitive.ObjectID) error
	IncBoughtCount(ctx context.Context, id primitive.ObjectID, delta int) error
}

type CategoryStore interface {
	Insert(ctx context.Context, c *models.Category) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Category, error)
	FindAll(ctx context.Context) ([]models.Category, error)
	Update(ctx context.Context, id primitive.ObjectID, patch models.CategoryPatch) (*models.Category, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	IncProductCount(ctx context.Context, id primitive.ObjectID, delta int) error
}

type CartStore interface {
	Insert(ctx context.Context, c *models.Cart) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Cart, error)
	FindAll(ctx context.Context) ([]models.Cart, error)
	Replace(ctx context.Context, c *models.Cart) error
	Update(ctx context.Context, id primitive.ObjectID, patch models.CartPatch) (*models.Cart, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type OrderStore interface {
	Insert(ctx context.Context, o *models.Order) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Order, error)
	FindAll(ctx context.Context) ([]models.Order, error)
	FindByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Order, error)
	Update(ctx context.Context, id primitive.ObjectID, patch models.OrderPatch) (*models.Order, error)
	Delete(ctx context.Context, id primitive.ObjectID) (*models.Order, error)
	NextOrderNumber(ctx context.Context) (int64, error)
}

type UserStore interface {
	Insert(ctx context.Context, u *models.User) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindAll(ctx context.Context) ([]models.User, error)
	Update(ctx context.Context, id primitive.ObjectID, patch models.UserPatch) (*models.User, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	PushOrder(ctx context.Context, userID, orderID primitive.ObjectID) error
	PullOrder(ctx context.Context, userID, orderID primitive.ObjectID) error
}

// ProductCache is the read-through cache in front of the product store.
// Failures are treated as misses; the cache is never authoritative.
type ProductCache interface {
	CacheProduct(ctx context.Context, p *models.Product) error
	GetProduct(ctx context.Context, id string) (*models.Product, error)
	InvalidateProduct(ctx context.Context, id string) error
}
