package clientRepo

import "coachflow/models"

// ClientRepository resolves client identifiers to directory records.
type ClientRepository interface {
	GetByID(clientID string) (*models.Client, error)
}
