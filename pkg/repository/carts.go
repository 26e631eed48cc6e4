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

type CartRepository struct {
	col *mongo.Collection
}

func NewCartRepository(m *Mongo) *CartRepository {
	return &CartRepository{col: m.database.Collection(colCarts)}
}

func (r *CartRepository) Insert(ctx context.Context, c *models.Cart) error {
	res, err := r.col.InsertOne(ctx, c)
	if err != nil {
		return errors.Wrap(err, "insert cart")
	}
	c.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *CartRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Cart, error) {
	var c models.Cart
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&c)
	if err == mongo.ErrNoDocuments {
		return nil, errors.Wrapf(models.ErrNotFound, "cart %s", id.Hex())
	}
	if err != nil {
		return nil, errors.Wrap(err, "find cart")
	}
	return &c, nil
}

func (r *CartRepository) FindAll(ctx context.Context) ([]models.Cart, error) {
	cursor, err := r.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, errors.Wrap(err, "list carts")
	}
	defer cursor.Close(ctx)

	carts := []models.Cart{}
	if err := cursor.All(ctx, &carts); err != nil {
		return nil, errors.Wrap(err, "decode carts")
	}
	return carts, nil
}

// Replace persists a cart mutated in memory (add/remove product).
func (r *CartRepository) Replace(ctx context.Context, c *models.Cart) error {
	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": c.ID}, c)
	if err != nil {
		return errors.Wrap(err, "replace cart")
	}
	if res.MatchedCount == 0 {
		return errors.Wrapf(models.ErrNotFound, "cart %s", c.ID.Hex())
	}
	return nil
}

func (r *CartRepository) Update(ctx context.Context, id primitive.ObjectID, patch models.CartPatch) (*models.Cart, error) {
	set := bson.M{}
	if patch.UserID != nil {
		set["userId"] = *patch.UserID
	}
	if patch.Items != nil {
		set["items"] = *patch.Items
	}
	if patch.Total != nil {
		set["total"] = *patch.Total
	}
	if len(set) == 0 {
		return r.FindByID(ctx, id)
	}

	var c models.Cart
	err := r.col.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&c)
	if err == mongo.ErrNoDocuments {
		return nil, errors.Wrapf(models.ErrNotFound, "cart %s", id.Hex())
	}
	if err != nil {
		return nil, errors.Wrap(err, "update cart")
	}
	return &c, nil
}

func (r *CartRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return errors.Wrap(err, "delete cart")
	}
	if res.DeletedCount == 0 {
		return errors.Wrapf(models.ErrNotFound, "cart %s", id.Hex())
	}
	return nil
}
