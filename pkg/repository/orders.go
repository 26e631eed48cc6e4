package repository

import (
	"context"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/example/joyashop/pkg/models"
)

// First order ever created gets number orderNumberBase+1 = 1000.
const orderNumberBase = 999

type OrderRepository struct {
	col      *mongo.Collection
	counters *mongo.Collection
}

func NewOrderRepository(m *Mongo) *OrderRepository {
	return &OrderRepository{
		col:      m.database.Collection(colOrders),
		counters: m.database.Collection(colCounters),
	}
}

func (r *OrderRepository) Insert(ctx context.Context, o *models.Order) error {
	res, err := r.col.InsertOne(ctx, o)
	if err != nil {
		return errors.Wrap(err, "insert order")
	}
	o.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *OrderRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Order, error) {
	var o models.Order
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&o)
	if err == mongo.ErrNoDocuments {
		return nil, errors.Wrapf(models.ErrNotFound, "order %s", id.Hex())
	}
	if err != nil {
		return nil, errors.Wrap(err, "find order")
	}
	return &o, nil
}

func (r *OrderRepository) FindAll(ctx context.Context) ([]models.Order, error) {
	return r.find(ctx, bson.M{})
}

func (r *OrderRepository) FindByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Order, error) {
	return r.find(ctx, bson.M{"userId": userID})
}

func (r *OrderRepository) find(ctx context.Context, filter bson.M) ([]models.Order, error) {
	cursor, err := r.col.Find(ctx, filter)
	if err != nil {
		return nil, errors.Wrap(err, "list orders")
	}
	defer cursor.Close(ctx)

	orders := []models.Order{}
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, errors.Wrap(err, "decode orders")
	}
	return orders, nil
}

func (r *OrderRepository) Update(ctx context.Context, id primitive.ObjectID, patch models.OrderPatch) (*models.Order, error) {
	set := bson.M{}
	if patch.Status != nil {
		set["status"] = *patch.Status
	}
	if patch.PaymentStatus != nil {
		set["paymentStatus"] = *patch.PaymentStatus
	}
	if len(set) == 0 {
		return r.FindByID(ctx, id)
	}

	var o models.Order
	err := r.col.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&o)
	if err == mongo.ErrNoDocuments {
		return nil, errors.Wrapf(models.ErrNotFound, "order %s", id.Hex())
	}
	if err != nil {
		return nil, errors.Wrap(err, "update order")
	}
	return &o, nil
}

// Delete removes the order and returns the deleted document so the caller can
// detach it from the owner's history.
func (r *OrderRepository) Delete(ctx context.Context, id primitive.ObjectID) (*models.Order, error) {
	var o models.Order
	err := r.col.FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&o)
	if err == mongo.ErrNoDocuments {
		return nil, errors.Wrapf(models.ErrNotFound, "order %s", id.Hex())
	}
	if err != nil {
		return nil, errors.Wrap(err, "delete order")
	}
	return &o, nil
}

// NextOrderNumber hands out the human-facing sequence through an atomic
// increment on a counter document, so concurrent checkouts cannot observe
// the same number.
func (r *OrderRepository) NextOrderNumber(ctx context.Context) (int64, error) {
	var doc struct {
		Seq int64 `bson:"seq"`
	}
	err := r.counters.FindOneAndUpdate(ctx,
		bson.M{"_id": "orderNumber"},
		bson.M{"$inc": bson.M{"seq": 1}},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		return 0, errors.Wrap(err, "next order number")
	}
	return orderNumberBase + doc.Seq, nil
}
