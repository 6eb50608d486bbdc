package kvstore

import (
	"context"

	"go-merchant/internal/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type kvEntry struct {
	Key   string `bson:"_id"`
	Value string `bson:"value"`
}

// MongoStore persists one document per key in the kv_entries collection.
type MongoStore struct {
	collection *mongo.Collection
}

func NewMongoStore(db *database.MongodbDB) Store {
	return &MongoStore{
		collection: db.DB.Collection("kv_entries"),
	}
}

func (s *MongoStore) GetItem(ctx context.Context, key string) (string, error) {
	var entry kvEntry
	err := s.collection.FindOne(ctx, bson.M{"_id": key}).Decode(&entry)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return "", ErrNotFound
		}
		return "", err
	}
	return entry.Value, nil
}

func (s *MongoStore) SetItem(ctx context.Context, key string, value string) error {
	filter := bson.M{"_id": key}
	update := bson.M{"$set": bson.M{"value": value}}
	opts := options.Update().SetUpsert(true)
	_, err := s.collection.UpdateOne(ctx, filter, update, opts)
	return err
}

func (s *MongoStore) RemoveItem(ctx context.Context, key string) error {
	_, err := s.collection.DeleteOne(ctx, bson.M{"_id": key})
	return err
}

func (s *MongoStore) Clear(ctx context.Context) error {
	_, err := s.collection.DeleteMany(ctx, bson.M{})
	return err
}
