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

type ProductRepository struct {
	col *mongo.Collection
}

func NewProductRepository(m *Mongo) *ProductRepository {
	return &ProductRepository{col: m.database.Collection(colProducts)}
}

func (r *ProductRepository) Insert(ctx context.Context, p *models.Product) error {
	res, err := r.col.InsertOne(ctx, p)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return errors.Wrapf(models.ErrInvalidInput, "product name %q already exists", p.Name)
		}
		return errors.Wrap(err, "insert product")
	}
	p.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *ProductRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {
	var p models.Product
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&p)
	if err == mongo.ErrNoDocuments {
		return nil, errors.Wrapf(models.ErrNotFound, "product %s", id.Hex())
	}
	if err != nil {
		return nil, errors.Wrap(err, "find product")
	}
	return &p, nil
}

func (r *ProductRepository) FindAll(ctx context.Context) ([]models.Product, error) {
	cursor, err := r.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, errors.Wrap(err, "list products")
	}
	defer cursor.Close(ctx)

	products := []models.Product{}
	if err := cursor.All(ctx, &products); err != nil {
		return nil, errors.Wrap(err, "decode products")
	}
	return products, nil
}

func (r *ProductRepository) Update(ctx context.Context, id primitive.ObjectID, patch models.ProductPatch) (*models.Product, error) {
	set := bson.M{}
	if patch.Name != nil {
		set["name"] = *patch.Name
	}
	if patch.Description != nil {
		set["description"] = *patch.Description
	}
	if patch.Price != nil {
		set["price"] = *patch.Price
	}
	if patch.Stock != nil {
		set["stock"] = *patch.Stock
	}
	if patch.CategoryID != nil {
		set["categoryId"] = *patch.CategoryID
	}
	if patch.CategoryName != nil {
		set["categoryName"] = *patch.CategoryName
	}
	if patch.Photos != nil {
		set["photos"] = *patch.Photos
	}
	if patch.Characteristics != nil {
		set["characteristics"] = *patch.Characteristics
	}
	if len(set) == 0 {
		return r.FindByID(ctx, id)
	}

	var p models.Product
	err := r.col.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&p)
	if err == mongo.ErrNoDocuments {
		return nil, errors.Wrapf(models.ErrNotFound, "product %s", id.Hex())
	}
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, errors.Wrap(models.ErrInvalidInput, "product name already exists")
		}
		return nil, errors.Wrap(err, "update product")
	}
	return &p, nil
}

// Delete removes the product and returns the deleted document so the caller
// can adjust the owning category's counter.
func (r *ProductRepository) Delete(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {
	var p models.Product
	err := r.col.FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&p)
	if err == mongo.ErrNoDocuments {
		return nil, errors.Wrapf(models.ErrNotFound, "product %s", id.Hex())
	}
	if err != nil {
		return nil, errors.Wrap(err, "delete product")
	}
	return &p, nil
}

func (r *ProductRepository) IncViews(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$inc": bson.M{"views": 1}})
	return errors.Wrap(err, "increment views")
}

func (r *ProductRepository) IncBoughtCount(ctx context.Context, id primitive.ObjectID, delta int) error {
	_, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$inc": bson.M{"boughtCount": delta}})
	return errors.Wrap(err, "increment bought count")
}
