package models

import "time"

// Suggestion lifecycle states. Pending moves to accepted or rejected on
// review, accepted moves to applied or expired on apply, and pending moves
// to expired via the periodic sweep once its expiry timestamp passes.
const (
	SuggestionStatusPending  = "pending"
	SuggestionStatusAccepted = "accepted"
	SuggestionStatusRejected = "rejected"
	SuggestionStatusApplied  = "applied"
	SuggestionStatusExpired  = "expired"
)

// Suggestion is the persisted form of an OptimizationOpportunity. Scores are
// denormalized so pending lists sort without recomputation.
type Suggestion struct {
	ID           string `bson:"id" json:"id"`
	CoachID      string `bson:"coach_id" json:"coach_id"`
	BookingID    string `bson:"booking_id" json:"booking_id"`
	ClientID     string `bson:"client_id" json:"client_id"`
	ClientName   string `bson:"client_name" json:"client_name"`
	LocationType string `bson:"location_type" json:"location_type"`

	OriginalDate  string `bson:"original_date" json:"original_date"`
	OriginalStart int    `bson:"original_start" json:"original_start"`
	OriginalEnd   int    `bson:"original_end" json:"original_end"`
	ProposedDate  string `bson:"proposed_date" json:"proposed_date"`
	ProposedStart int    `bson:"proposed_start" json:"proposed_start"`
	ProposedEnd   int    `bson:"proposed_end" json:"proposed_end"`

	SuggestionType string `bson:"suggestion_type" json:"suggestion_type"`
	GapStart       int    `bson:"gap_start" json:"gap_start"`
	GapEnd         int    `bson:"gap_end" json:"gap_end"`
	MinutesFreed   int    `bson:"minutes_freed" json:"minutes_freed"`
	NewBlockSize   int    `bson:"new_block_size" json:"new_block_size"`

	Reason          string `bson:"reason" json:"reason"`
	Details         string `bson:"details" json:"details"`
	BenefitScore    int    `bson:"benefit_score" json:"benefit_score"`
	PreferenceScore int    `bson:"preference_score" json:"preference_score"`

	Status     string     `bson:"status" json:"status"`
	CreatedAt  time.Time  `bson:"created_at" json:"created_at"`
	ExpiresAt  time.Time  `bson:"expires_at" json:"expires_at"`
	ReviewedAt *time.Time `bson:"reviewed_at,omitempty" json:"reviewed_at,omitempty"`
	AppliedAt  *time.Time `bson:"applied_at,omitempty" json:"applied_at,omitempty"`
}
