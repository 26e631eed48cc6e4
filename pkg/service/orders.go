package service

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/example/joyashop/pkg/models"
)

type OrderItemInput struct {
	ProductID primitive.ObjectID
	Quantity  int
}

type OrdersService struct {
	orders       OrderStore
	products     ProductStore
	users        UserStore
	payments     PaymentGateway
	logger       *zap.Logger
	validateUser bool
}

type OrdersOption func(*OrdersService)

// WithUserValidation toggles the user-existence check during order creation.
// Enabled by default.
func WithUserValidation(enabled bool) OrdersOption {
	return func(s *OrdersService) { s.validateUser = enabled }
}

func NewOrdersService(orders OrderStore, products ProductStore, users UserStore, payments PaymentGateway, logger *zap.Logger, opts ...OrdersOption) *OrdersService {
	s := &OrdersService{
		orders:       orders,
		products:     products,
		users:        users,
		payments:     payments,
		logger:       logger,
		validateUser: true,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create runs the checkout protocol: validate the input, re-resolve every
// product and freeze price/name snapshots, authorize the (simulated)
// payment, derive the initial status, pull the next order number and
// persist. Any item failure aborts the whole order; nothing partial is ever
// stored. The trailing append to the user's history is best effort: if it
// fails the order still stands.
func (s *OrdersService) Create(ctx context.Context, userID primitive.ObjectID, shippingAddress string, items []OrderItemInput) (*models.Order, error) {
	if len(items) == 0 {
		return nil, errors.Wrap(models.ErrInvalidInput, "order must contain at least one item")
	}

	if s.validateUser {
		if _, err := s.users.FindByID(ctx, userID); err != nil {
			return nil, err
		}
	}

	orderItems := make([]models.LineItem, 0, len(items))
	for _, item := range items {
		product, err := s.products.FindByID(ctx, item.ProductID)
		if err != nil {
			return nil, err
		}
		if item.Quantity < 1 {
			return nil, errors.Wrap(models.ErrInvalidInput, "quantity must be at least 1")
		}
		orderItems = append(orderItems, models.Snapshot(product, item.Quantity))
	}
	orderTotal := models.ItemsTotal(orderItems)

	paymentStatus := s.payments.Authorize(ctx, orderTotal)
	status := models.OrderStatusCancelado
	if paymentStatus == models.PaymentStatusAprobado {
		status = models.OrderStatusProcesando
	}

	orderNumber, err := s.orders.NextOrderNumber(ctx)
	if err != nil {
		return nil, err
	}

	order := &models.Order{
		OrderNumber:     orderNumber,
		UserID:          userID,
		ShippingAddress: shippingAddress,
		Items:           orderItems,
		OrderTotal:      orderTotal,
		PaymentStatus:   paymentStatus,
		Status:          status,
		CreatedAt:       time.Now(),
	}
	if err := s.orders.Insert(ctx, order); err != nil {
		return nil, err
	}

	if err := s.users.PushOrder(ctx, userID, order.ID); err != nil {
		s.logger.Warn("order not appended to user history",
			zap.String("order_id", order.ID.Hex()),
			zap.String("user_id", userID.Hex()),
			zap.Error(err))
	}

	for _, item := range order.Items {
		if err := s.products.IncBoughtCount(ctx, item.ProductID, item.Quantity); err != nil {
			s.logger.Debug("bought counter not incremented",
				zap.String("product_id", item.ProductID.Hex()), zap.Error(err))
		}
	}

	return order, nil
}

// Update accepts only status and paymentStatus and validates both against
// their flat enums. Any valid status may follow any other.
func (s *OrdersService) Update(ctx context.Context, id primitive.ObjectID, patch models.OrderPatch) (*models.Order, error) {
	if patch.Status != nil && !patch.Status.Valid() {
		return nil, errors.Wrapf(models.ErrInvalidInput, "invalid status %q", *patch.Status)
	}
	if patch.PaymentStatus != nil && !patch.PaymentStatus.Valid() {
		return nil, errors.Wrapf(models.ErrInvalidInput, "invalid payment status %q", *patch.PaymentStatus)
	}
	return s.orders.Update(ctx, id, patch)
}

// Remove deletes the order and detaches it from the owner's history.
func (s *OrdersService) Remove(ctx context.Context, id primitive.ObjectID) error {
	deleted, err := s.orders.Delete(ctx, id)
	if err != nil {
		return err
	}
	if err := s.users.PullOrder(ctx, deleted.UserID, deleted.ID); err != nil {
		s.logger.Warn("order not removed from user history",
			zap.String("order_id", deleted.ID.Hex()),
			zap.String("user_id", deleted.UserID.Hex()),
			zap.Error(err))
	}
	return nil
}

func (s *OrdersService) Get(ctx context.Context, id primitive.ObjectID) (*models.Order, error) {
	return s.orders.FindByID(ctx, id)
}

func (s *OrdersService) List(ctx context.Context) ([]models.Order, error) {
	return s.orders.FindAll(ctx)
}

func (s *OrdersService) ListByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Order, error) {
	return s.orders.FindByUser(ctx, userID)
}
