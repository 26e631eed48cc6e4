package repository

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/example/joyashop/pkg/models"
)

type UserRepository struct {
	col *mongo.Collection
}

func NewUserRepository(m *Mongo) *UserRepository {
	return &UserRepository{col: m.database.Collection(colUsers)}
}

func (r *UserRepository) Insert(ctx context.Context, u *models.User) error {
	now := time.Now()
	u.CreatedAt = now
	u.UpdatedAt = now
	if u.PastOrders == nil {
		u.PastOrders = []primitive.ObjectID{}
	}

	res, err := r.col.InsertOne(ctx, u)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return errors.Wrapf(models.ErrInvalidInput, "email %q already registered", u.Email)
		}
		return errors.Wrap(err, "insert user")
	}
	u.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *UserRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var u models.User
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&u)
	if err == mongo.ErrNoDocuments {
		return nil, errors.Wrapf(models.ErrNotFound, "user %s", id.Hex())
	}
	if err != nil {
		return nil, errors.Wrap(err, "find user")
	}
	return &u, nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	err := r.col.FindOne(ctx, bson.M{"email": email}).Decode(&u)
	if err == mongo.ErrNoDocuments {
		return nil, errors.Wrapf(models.ErrNotFound, "user with email %q", email)
	}
	if err != nil {
		return nil, errors.Wrap(err, "find user by email")
	}
	return &u, nil
}

func (r *UserRepository) FindAll(ctx context.Context) ([]models.User, error) {
	cursor, err := r.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, errors.Wrap(err, "list users")
	}
	defer cursor.Close(ctx)

	users := []models.User{}
	if err := cursor.All(ctx, &users); err != nil {
		return nil, errors.Wrap(err, "decode users")
	}
	return users, nil
}

func (r *UserRepository) Update(ctx context.Context, id primitive.ObjectID, patch models.UserPatch) (*models.User, error) {
	set := bson.M{"updatedAt": time.Now()}
	if patch.Email != nil {
		set["email"] = *patch.Email
	}
	if patch.Password != nil {
		set["password"] = *patch.Password
	}
	if patch.Name != nil {
		set["name"] = *patch.Name
	}
	if patch.Address != nil {
		set["address"] = *patch.Address
	}
	if patch.Role != nil {
		set["role"] = *patch.Role
	}

	var u models.User
	err := r.col.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&u)
	if err == mongo.ErrNoDocuments {
		return nil, errors.Wrapf(models.ErrNotFound, "user %s", id.Hex())
	}
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, errors.Wrap(models.ErrInvalidInput, "email already registered")
		}
		return nil, errors.Wrap(err, "update user")
	}
	return &u, nil
}

func (r *UserRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return errors.Wrap(err, "delete user")
	}
	if res.DeletedCount == 0 {
		return errors.Wrapf(models.ErrNotFound, "user %s", id.Hex())
	}
	return nil
}

// PushOrder appends an order id to the user's history.
func (r *UserRepository) PushOrder(ctx context.Context, userID, orderID primitive.ObjectID) error {
	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": userID},
		bson.M{"$push": bson.M{"pastOrders": orderID}},
	)
	if err != nil {
		return errors.Wrap(err, "push order to history")
	}
	if res.MatchedCount == 0 {
		return errors.Wrapf(models.ErrNotFound, "user %s", userID.Hex())
	}
	return nil
}

// PullOrder removes an order id from the user's history.
func (r *UserRepository) PullOrder(ctx context.Context, userID, orderID primitive.ObjectID) error {
	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": userID},
		bson.M{"$pull": bson.M{"pastOrders": orderID}},
	)
	if err != nil {
		return errors.Wrap(err, "pull order from history")
	}
	if res.MatchedCount == 0 {
		return errors.Wrapf(models.ErrNotFound, "user %s", userID.Hex())
	}
	return nil
}
