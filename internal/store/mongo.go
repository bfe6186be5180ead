package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const slotsCollection = "store_slots"

type mongoSlot struct {
	Key       string    `bson:"_id"`
	Value     []byte    `bson:"value"`
	UpdatedAt time.Time `bson:"updated_at"`
}

// MongoStore keeps one document per slot.
type MongoStore struct {
	collection *mongo.Collection
}

// NewMongoStore constructs a MongoStore on the given database.
func NewMongoStore(db *mongo.Database) *MongoStore {
	return &MongoStore{collection: db.Collection(slotsCollection)}
}

func (s *MongoStore) Get(ctx context.Context, key string) ([]byte, error) {
	var doc mongoSlot
	if err := s.collection.FindOne(ctx, bson.M{"_id": key}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrSlotNotFound
		}
		return nil, fmt.Errorf("store/mongo: get %s: %w", key, err)
	}
	return doc.Value, nil
}

func (s *MongoStore) Set(ctx context.Context, key string, value []byte) error {
	update := bson.M{"$set": bson.M{"value": value, "updated_at": time.Now().UTC()}}
	_, err := s.collection.UpdateOne(ctx, bson.M{"_id": key}, update, options.Update().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("store/mongo: set %s: %w", key, err)
	}
	return nil
}

func (s *MongoStore) Delete(ctx context.Context, key string) error {
	if _, err := s.collection.DeleteOne(ctx, bson.M{"_id": key}); err != nil {
		return fmt.Errorf("store/mongo: delete %s: %w", key, err)
	}
	return nil
}

var _ Store = (*MongoStore)(nil)
