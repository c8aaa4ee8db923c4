package suggestionRepo

import (
	"time"

	"coachflow/models"
)

// SuggestionRepository persists and mutates suggestion records. Status
// transitions are single-field updates; the lifecycle rules themselves live
// in the optimizer service.
type SuggestionRepository interface {
	InsertMany(suggestions []models.Suggestion) error
	GetByID(id string) (*models.Suggestion, error)
	// GetPendingByCoach returns pending, non-expired suggestions for a coach
	// sorted by benefit score descending.
	GetPendingByCoach(coachID string, now time.Time) ([]models.Suggestion, error)
	MarkReviewed(id, status string, reviewedAt time.Time) error
	MarkApplied(id string, appliedAt time.Time) error
	MarkExpired(id string) error
	// ExpireDue transitions every pending suggestion whose expiry has passed
	// to expired and returns the number of records changed.
	ExpireDue(now time.Time) (int64, error)
}
