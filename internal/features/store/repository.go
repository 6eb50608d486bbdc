package store

import (
	"context"
	"errors"
	"time"

	"go-merchant/internal/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

var ErrStoreNotFound = errors.New("store not found")

type StoreRepository interface {
	Create(ctx context.Context, s *Store) error
	Get(ctx context.Context, id string) (*Store, error)
	FindByUserID(ctx context.Context, userID string) ([]Store, error)
	Delete(ctx context.Context, id string) error
}

type StoreRepositoryImpl struct {
	collection *mongo.Collection
}

func NewStoreRepository(db *database.MongodbDB) StoreRepository {
	return &StoreRepositoryImpl{
		collection: db.DB.Collection("stores"),
	}
}

func (r *StoreRepositoryImpl) Create(ctx context.Context, s *Store) error {
	if s.ID.IsZero() {
		s.ID = primitive.NewObjectID()
	}
	s.CreatedAt = time.Now()
	s.UpdatedAt = time.Now()

	_, err := r.collection.InsertOne(ctx, s)
	return err
}

func (r *StoreRepositoryImpl) Get(ctx context.Context, id string) (*Store, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	var s Store
	err = r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&s)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrStoreNotFound
		}
		return nil, err
	}
	return &s, nil
}

func (r *StoreRepositoryImpl) FindByUserID(ctx context.Context, userID string) ([]Store, error) {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, err
	}

	cursor, err := r.collection.Find(ctx, bson.M{"user_id": oid})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var stores []Store
	if err = cursor.All(ctx, &stores); err != nil {
		return nil, err
	}
	return stores, nil
}

func (r *StoreRepositoryImpl) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return err
	}

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return ErrStoreNotFound
	}
	return nil
}
