package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"agroassist/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoConfig locates the predictions collection.
type MongoConfig struct {
	URI        string
	Database   string
	Collection string
}

// Mongo is a Store backed by a MongoDB collection.
type Mongo struct {
	client      *mongo.Client
	predictions *mongo.Collection
	now         func() time.Time
}

// NewMongo connects, checks the deployment is reachable and ensures indexes.
func NewMongo(ctx context.Context, cfg MongoConfig) (*Mongo, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo ping: %w", err)
	}

	m := &Mongo{
		client:      client,
		predictions: client.Database(cfg.Database).Collection(cfg.Collection),
		now:         time.Now,
	}
	// Indexes
	if _, err := m.predictions.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "created_at", Value: -1}},
	}); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo index: %w", err)
	}
	return m, nil
}

func (m *Mongo) Create(ctx context.Context, input models.InputData, preds []models.CropPrediction) (string, error) {
	now := m.now().UTC()
	rec := models.PredictionRecord{
		InputData:     input,
		Predictions:   copyPredictions(preds),
		SelectedCrops: []string{},
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	res, err := m.predictions.InsertOne(ctx, &rec)
	if err != nil {
		return "", fmt.Errorf("insert prediction: %w", err)
	}
	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", fmt.Errorf("insert prediction: unexpected id type %T", res.InsertedID)
	}
	return oid.Hex(), nil
}

func (m *Mongo) SetSelection(ctx context.Context, id string, crops []string) error {
	if len(crops) == 0 {
		return ErrEmptySelection
	}
	oid, err := parseID(id)
	if err != nil {
		return err
	}
	res, err := m.predictions.UpdateOne(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": bson.M{
			"selected_crops": crops,
			"updated_at":     m.now().UTC(),
		}},
	)
	if err != nil {
		return fmt.Errorf("update selection: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (m *Mongo) Get(ctx context.Context, id string) (*models.PredictionRecord, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	var rec models.PredictionRecord
	if err := m.predictions.FindOne(ctx, bson.M{"_id": oid}).Decode(&rec); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find prediction: %w", err)
	}
	return &rec, nil
}

func (m *Mongo) Ping(ctx context.Context) error { return m.client.Ping(ctx, nil) }

func (m *Mongo) Close(ctx context.Context) error { return m.client.Disconnect(ctx) }
