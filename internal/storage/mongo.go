package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type mongoSlotDocument struct {
	Slot      string     `bson:"slot"`
	Record    CartRecord `bson:"record"`
	UpdatedAt time.Time  `bson:"updated_at"`
}

type mongoStore struct {
	collection *mongo.Collection
}

// NewMongoStore returns a SlotStore backed by the carts collection.
func NewMongoStore(db *mongo.Database) SlotStore {
	return &mongoStore{collection: db.Collection("carts")}
}

func (m *mongoStore) Save(ctx context.Context, slot string, rec CartRecord) error {
	doc := mongoSlotDocument{
		Slot:      slot,
		Record:    rec,
		UpdatedAt: time.Now(),
	}

	filter := bson.M{"slot": slot}
	update := bson.M{"$set": doc}
	opts := options.Update().SetUpsert(true)

	if _, err := m.collection.UpdateOne(ctx, filter, update, opts); err != nil {
		return fmt.Errorf("failed to upsert cart slot: %w", err)
	}
	return nil
}

func (m *mongoStore) Load(ctx context.Context, slot string) (CartRecord, error) {
	var doc mongoSlotDocument

	filter := bson.M{"slot": slot}
	err := m.collection.FindOne(ctx, filter).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return CartRecord{}, ErrSlotNotFound
		}
		return CartRecord{}, fmt.Errorf("failed to load cart slot: %w", err)
	}

	if doc.Record.Version != SchemaVersion {
		// Unreadable schema: drop the slot and report absence.
		_ = m.Delete(ctx, slot)
		return CartRecord{}, ErrSlotNotFound
	}
	return doc.Record, nil
}

func (m *mongoStore) Delete(ctx context.Context, slot string) error {
	filter := bson.M{"slot": slot}
	if _, err := m.collection.DeleteOne(ctx, filter); err != nil {
		return fmt.Errorf("failed to delete cart slot: %w", err)
	}
	return nil
}

// EnsureIndexes creates the slot uniqueness and expiry indexes.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "slot", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "updated_at", Value: 1}},
			Options: options.Index().SetExpireAfterSeconds(90 * 24 * 60 * 60), // 90 days TTL
		},
	}

	if _, err := db.Collection("carts").Indexes().CreateMany(ctx, indexes); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// ConnectMongoDB opens a pooled connection and verifies it with a ping.
func ConnectMongoDB(ctx context.Context, uri, database string) (*mongo.Database, error) {
	clientOpts := options.Client().
		ApplyURI(uri).
		SetConnectTimeout(10 * time.Second).
		SetServerSelectionTimeout(5 * time.Second).
		SetMaxPoolSize(100).
		SetMinPoolSize(10)

	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	return client.Database(database), nil
}
