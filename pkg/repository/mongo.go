package repository

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/example/joyashop/pkg/config"
)

// Collection names. Counters backs the order-number sequence.
const (
	colProducts   = "products"
	colCategories = "categories"
	colCarts      = "carts"
	colOrders     = "orders"
	colUsers      = "users"
	colCounters   = "counters"
)

type Mongo struct {
	client   *mongo.Client
	database *mongo.Database
}

func NewMongo(cfg *config.MongoDBConfig) (*Mongo, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, errors.Wrap(err, "connect to mongodb")
	}

	return &Mongo{
		client:   client,
		database: client.Database(cfg.Database),
	}, nil
}

func (m *Mongo) Ping(ctx context.Context) error {
	return m.client.Ping(ctx, nil)
}

func (m *Mongo) Close(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}

// EnsureIndexes creates the unique indexes the data model relies on:
// product and category names, user emails and order numbers.
func (m *Mongo) EnsureIndexes(ctx context.Context) error {
	unique := options.Index().SetUnique(true)

	for col, key := range map[string]string{
		colProducts:   "name",
		colCategories: "name",
		colUsers:      "email",
		colOrders:     "orderNumber",
	} {
		_, err := m.database.Collection(col).Indexes().CreateOne(ctx, mongo.IndexModel{
			Keys:    bson.D{{Key: key, Value: 1}},
			Options: unique,
		})
		if err != nil {
			return errors.Wrapf(err, "create %s.%s index", col, key)
		}
	}
	return nil
}
