package storage

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"byggmakker-scraper/models"
	"byggmakker-scraper/utils"
)

const mongoOpTimeout = 30 * time.Second

// MongoWriter persists normalized products to a MongoDB collection.
type MongoWriter struct {
	client     *mongo.Client
	collection *mongo.Collection
	logger     *utils.Logger
}

// NewMongoWriter connects to MongoDB, pings it (with retries) and returns
// a writer bound to the given database and collection.
func NewMongoWriter(uri, db, collection string, logger *utils.Logger) (*MongoWriter, error) {
	if uri == "" {
		return nil, fmt.Errorf("mongo: MONGODB_URI is not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), mongoOpTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongo: connect: %w", err)
	}

	retry := &utils.RetryConfig{MaxAttempts: 5, BaseDelay: 2 * time.Second, Logger: logger}
	err = retry.Do("mongo-ping", func() error {
		pingCtx, pingCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer pingCancel()
		return client.Ping(pingCtx, readpref.Primary())
	})
	if err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo: ping: %w", err)
	}

	return &MongoWriter{
		client:     client,
		collection: client.Database(db).Collection(collection),
		logger:     logger,
	}, nil
}

// Write bulk-inserts the whole batch in one InsertMany call.
func (w *MongoWriter) Write(products []*models.Product) error {
	if len(products) == 0 {
		return nil
	}

	docs := make([]interface{}, len(products))
	for i, p := range products {
		docs[i] = p
	}

	ctx, cancel := context.WithTimeout(context.Background(), mongoOpTimeout)
	defer cancel()

	res, err := w.collection.InsertMany(ctx, docs)
	if err != nil {
		return fmt.Errorf("mongo: insert %d products: %w", len(products), err)
	}

	w.logger.Info("[mongo] Inserted %d documents into %s", len(res.InsertedIDs), w.collection.Name())
	return nil
}

// Close disconnects the underlying client.
func (w *MongoWriter) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return w.client.Disconnect(ctx)
}
