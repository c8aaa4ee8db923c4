package coachRepo

import "coachflow/models"

// CoachRepository provides coach profile lookups. The nightly optimizer scan
// iterates ListIDs to enqueue one analysis task per coach.
type CoachRepository interface {
	GetByID(coachID string) (*models.Coach, error)
	ListIDs() ([]string, error)
}
