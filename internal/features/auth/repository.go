package auth

import (
	"context"
	"errors"
	"time"

	"go-merchant/internal/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

var ErrMerchantNotFound = errors.New("merchant not found")

type MerchantRepository interface {
	Create(ctx context.Context, merchant *Merchant) error
	FindByEmail(ctx context.Context, email string) (*Merchant, error)
	FindByID(ctx context.Context, id string) (*Merchant, error)
}

type MerchantRepositoryImpl struct {
	collection *mongo.Collection
}

func NewMerchantRepository(db *database.MongodbDB) MerchantRepository {
	return &MerchantRepositoryImpl{
		collection: db.DB.Collection("merchants"),
	}
}

func (r *MerchantRepositoryImpl) Create(ctx context.Context, merchant *Merchant) error {
	if merchant.ID.IsZero() {
		merchant.ID = primitive.NewObjectID()
	}
	merchant.CreatedAt = time.Now()
	merchant.UpdatedAt = time.Now()

	_, err := r.collection.InsertOne(ctx, merchant)
	return err
}

func (r *MerchantRepositoryImpl) FindByEmail(ctx context.Context, email string) (*Merchant, error) {
	var merchant Merchant
	err := r.collection.FindOne(ctx, bson.M{"email": email}).Decode(&merchant)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrMerchantNotFound
		}
		return nil, err
	}
	return &merchant, nil
}

func (r *MerchantRepositoryImpl) FindByID(ctx context.Context, id string) (*Merchant, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	var merchant Merchant
	err = r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&merchant)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrMerchantNotFound
		}
		return nil, err
	}
	return &merchant, nil
}
