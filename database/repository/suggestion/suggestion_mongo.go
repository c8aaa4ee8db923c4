package suggestionRepo

import (
	"context"
	"fmt"
	"time"

	"coachflow/database"
	"coachflow/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoSuggestionRepo implements SuggestionRepository using MongoDB.
type MongoSuggestionRepo struct {
	coll *mongo.Collection
}

// NewMongoSuggestionRepo constructs a new instance of MongoSuggestionRepo.
func NewMongoSuggestionRepo() SuggestionRepository {
	return &MongoSuggestionRepo{
		coll: database.DB().Collection("suggestions"),
	}
}

func (repo *MongoSuggestionRepo) InsertMany(suggestions []models.Suggestion) error {
	if len(suggestions) == 0 {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	docs := make([]interface{}, 0, len(suggestions))
	for _, s := range suggestions {
		docs = append(docs, s)
	}
	if _, err := repo.coll.InsertMany(ctx, docs); err != nil {
		return fmt.Errorf("failed to insert suggestions: %w", err)
	}
	return nil
}

func (repo *MongoSuggestionRepo) GetByID(id string) (*models.Suggestion, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var suggestion models.Suggestion
	filter := bson.M{"id": id}
	if err := repo.coll.FindOne(ctx, filter).Decode(&suggestion); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("error fetching suggestion with id %s: %w", id, err)
	}
	return &suggestion, nil
}

func (repo *MongoSuggestionRepo) GetPendingByCoach(coachID string, now time.Time) ([]models.Suggestion, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	filter := bson.M{
		"coach_id":   coachID,
		"status":     models.SuggestionStatusPending,
		"expires_at": bson.M{"$gt": now},
	}
	opts := options.Find().SetSort(bson.D{{Key: "benefit_score", Value: -1}})

	cursor, err := repo.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch pending suggestions for coach %s: %w", coachID, err)
	}
	defer cursor.Close(ctx)

	var suggestions []models.Suggestion
	if err := cursor.All(ctx, &suggestions); err != nil {
		return nil, fmt.Errorf("error decoding suggestions: %w", err)
	}
	return suggestions, nil
}

func (repo *MongoSuggestionRepo) MarkReviewed(id, status string, reviewedAt time.Time) error {
	return repo.setStatus(id, bson.M{"status": status, "reviewed_at": reviewedAt})
}

func (repo *MongoSuggestionRepo) MarkApplied(id string, appliedAt time.Time) error {
	return repo.setStatus(id, bson.M{"status": models.SuggestionStatusApplied, "applied_at": appliedAt})
}

func (repo *MongoSuggestionRepo) MarkExpired(id string) error {
	return repo.setStatus(id, bson.M{"status": models.SuggestionStatusExpired})
}

func (repo *MongoSuggestionRepo) setStatus(id string, fields bson.M) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	res, err := repo.coll.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": fields})
	if err != nil {
		return fmt.Errorf("failed to update suggestion %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("suggestion %s not found", id)
	}
	return nil
}

func (repo *MongoSuggestionRepo) ExpireDue(now time.Time) (int64, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	filter := bson.M{
		"status":     models.SuggestionStatusPending,
		"expires_at": bson.M{"$lte": now},
	}
	update := bson.M{"$set": bson.M{"status": models.SuggestionStatusExpired}}

	res, err := repo.coll.UpdateMany(ctx, filter, update)
	if err != nil {
		return 0, fmt.Errorf("failed to expire suggestions: %w", err)
	}
	return res.ModifiedCount, nil
}
