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

type CategoryRepository struct {
	col *mongo.Collection
}

func NewCategoryRepository(m *Mongo) *CategoryRepository {
	return &CategoryRepository{col: m.database.Collection(colCategories)}
}

func (r *CategoryRepository) Insert(ctx context.Context, c *models.Category) error {
	res, err := r.col.InsertOne(ctx, c)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return errors.Wrapf(models.ErrInvalidInput, "category name %q already exists", c.Name)
		}
		return errors.Wrap(err, "insert category")
	}
	c.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *CategoryRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Category, error) {
	var c models.Category
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&c)
	if err == mongo.ErrNoDocuments {
		return nil, errors.Wrapf(models.ErrNotFound, "category %s", id.Hex())
	}
	if err != nil {
		return nil, errors.Wrap(err, "find category")
	}
	return &c, nil
}

func (r *CategoryRepository) FindAll(ctx context.Context) ([]models.Category, error) {
	cursor, err := r.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, errors.Wrap(err, "list categories")
	}
	defer cursor.Close(ctx)

	categories := []models.Category{}
	if err := cursor.All(ctx, &categories); err != nil {
		return nil, errors.Wrap(err, "decode categories")
	}
	return categories, nil
}

func (r *CategoryRepository) Update(ctx context.Context, id primitive.ObjectID, patch models.CategoryPatch) (*models.Category, error) {
	set := bson.M{}
	if patch.Name != nil {
		set["name"] = *patch.Name
	}
	if patch.Description != nil {
		set["description"] = *patch.Description
	}
	if len(set) == 0 {
		return r.FindByID(ctx, id)
	}

	var c models.Category
	err := r.col.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&c)
	if err == mongo.ErrNoDocuments {
		return nil, errors.Wrapf(models.ErrNotFound, "category %s", id.Hex())
	}
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, errors.Wrap(models.ErrInvalidInput, "category name already exists")
		}
		return nil, errors.Wrap(err, "update category")
	}
	return &c, nil
}

func (r *CategoryRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return errors.Wrap(err, "delete category")
	}
	if res.DeletedCount == 0 {
		return errors.Wrapf(models.ErrNotFound, "category %s", id.Hex())
	}
	return nil
}

// IncProductCount adjusts the denormalized product counter atomically. For a
// negative delta the filter requires enough headroom so the counter can never
// drop below zero.
func (r *CategoryRepository) IncProductCount(ctx context.Context, id primitive.ObjectID, delta int) error {
	filter := bson.M{"_id": id}
	if delta < 0 {
		filter["productCount"] = bson.M{"$gte": -delta}
	}
	_, err := r.col.UpdateOne(ctx, filter, bson.M{"$inc": bson.M{"productCount": delta}})
	return errors.Wrap(err, "adjust product count")
}
