package coachRepo

import (
	"context"
	"fmt"
	"time"

	"coachflow/database"
	"coachflow/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoCoachRepo implements CoachRepository using MongoDB.
type MongoCoachRepo struct {
	coll *mongo.Collection
}

// NewMongoCoachRepo constructs a new instance of MongoCoachRepo.
func NewMongoCoachRepo() CoachRepository {
	return &MongoCoachRepo{
		coll: database.DB().Collection("coaches"),
	}
}

// GetByID retrieves a coach document by ID.
func (repo *MongoCoachRepo) GetByID(coachID string) (*models.Coach, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var coach models.Coach
	filter := bson.M{"id": coachID}
	if err := repo.coll.FindOne(ctx, filter).Decode(&coach); err != nil {
		return nil, fmt.Errorf("error fetching coach with id %s: %w", coachID, err)
	}
	return &coach, nil
}

// ListIDs returns the IDs of all coaches.
func (repo *MongoCoachRepo) ListIDs() ([]string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	cursor, err := repo.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to list coaches: %w", err)
	}
	defer cursor.Close(ctx)

	var ids []string
	for cursor.Next(ctx) {
		var doc struct {
			ID string `bson:"id"`
		}
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("error decoding coach: %w", err)
		}
		ids = append(ids, doc.ID)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %w", err)
	}
	return ids, nil
}
