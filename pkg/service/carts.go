package service

import (
	"context"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/example/joyashop/pkg/models"
)

// CartItemInput references a product by id; the cart freezes its own
// price/name snapshot when the item is added.
type CartItemInput struct {
	ProductID primitive.ObjectID
	Quantity  int
}

type CartsService struct {
	carts    CartStore
	products ProductStore
	logger   *zap.Logger
}

func NewCartsService(carts CartStore, products ProductStore, logger *zap.Logger) *CartsService {
	return &CartsService{carts: carts, products: products, logger: logger}
}

// Create resolves every referenced product, snapshots price and name, and
// persists the cart with its computed total.
func (s *CartsService) Create(ctx context.Context, userID *primitive.ObjectID, items []CartItemInput) (*models.Cart, error) {
	cart := &models.Cart{
		UserID: userID,
		Items:  []models.LineItem{},
	}

	for _, item := range items {
		if item.Quantity < 1 {
			return nil, errors.Wrap(models.ErrInvalidInput, "quantity must be at least 1")
		}
		product, err := s.products.FindByID(ctx, item.ProductID)
		if err != nil {
			return nil, err
		}
		cart.Items = append(cart.Items, models.Snapshot(product, item.Quantity))
	}
	cart.Total = models.ItemsTotal(cart.Items)

	if err := s.carts.Insert(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// AddProduct bumps the quantity in place when the product is already in the
// cart; the existing snapshot's price and name are deliberately left stale.
func (s *CartsService) AddProduct(ctx context.Context, cartID, productID primitive.ObjectID, quantity int) (*models.Cart, error) {
	if quantity < 1 {
		return nil, errors.Wrap(models.ErrInvalidInput, "quantity must be at least 1")
	}

	cart, err := s.carts.FindByID(ctx, cartID)
	if err != nil {
		return nil, err
	}
	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	found := false
	for i := range cart.Items {
		if cart.Items[i].ProductID == productID {
			cart.Items[i].Quantity += quantity
			found = true
			break
		}
	}
	if !found {
		cart.Items = append(cart.Items, models.Snapshot(product, quantity))
	}
	cart.Total = models.ItemsTotal(cart.Items)

	if err := s.carts.Replace(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// RemoveProduct filters the product out of the cart. Removing a product that
// is not in the cart is a no-op success.
func (s *CartsService) RemoveProduct(ctx context.Context, cartID, productID primitive.ObjectID) (*models.Cart, error) {
	cart, err := s.carts.FindByID(ctx, cartID)
	if err != nil {
		return nil, err
	}

	kept := cart.Items[:0]
	for _, item := range cart.Items {
		if item.ProductID != productID {
			kept = append(kept, item)
		}
	}
	cart.Items = kept
	cart.Total = models.ItemsTotal(cart.Items)

	if err := s.carts.Replace(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

func (s *CartsService) Get(ctx context.Context, id primitive.ObjectID) (*models.Cart, error) {
	return s.carts.FindByID(ctx, id)
}

func (s *CartsService) List(ctx context.Context) ([]models.Cart, error) {
	return s.carts.FindAll(ctx)
}

func (s *CartsService) Update(ctx context.Context, id primitive.ObjectID, patch models.CartPatch) (*models.Cart, error) {
	return s.carts.Update(ctx, id, patch)
}

func (s *CartsService) Remove(ctx context.Context, id primitive.ObjectID) error {
	return s.carts.Delete(ctx, id)
}
