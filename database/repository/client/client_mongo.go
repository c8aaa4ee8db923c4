package clientRepo

import (
	"context"
	"fmt"
	"time"

	"coachflow/database"
	"coachflow/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoClientRepo implements ClientRepository using MongoDB.
type MongoClientRepo struct {
	coll *mongo.Collection
}

// NewMongoClientRepo constructs a new instance of MongoClientRepo.
func NewMongoClientRepo() ClientRepository {
	return &MongoClientRepo{
		coll: database.DB().Collection("clients"),
	}
}

// GetByID retrieves a client document by ID.
func (repo *MongoClientRepo) GetByID(clientID string) (*models.Client, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var client models.Client
	filter := bson.M{"id": clientID}
	if err := repo.coll.FindOne(ctx, filter).Decode(&client); err != nil {
		return nil, fmt.Errorf("error fetching client with id %s: %w", clientID, err)
	}
	return &client, nil
}
