package database

import "go.mongodb.org/mongo-driver/mongo"

// MongodbDB wraps the application database handle.
type MongodbDB struct {
	DB *mongo.Database
}
