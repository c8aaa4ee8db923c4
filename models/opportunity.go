package models

// Suggestion type tags assigned by the opportunity analyzer.
const (
	SuggestionTypeConsolidateGap = "consolidate_gap" // resulting free block < 60 min
	SuggestionTypeCreateBlock    = "create_block"    // resulting free block >= 60 min
)

// OptimizationOpportunity is a proposed single-booking move, the transient
// output of analysis before it is persisted as a Suggestion.
type OptimizationOpportunity struct {
	BookingID    string `json:"booking_id"`
	CoachID      string `json:"coach_id"`
	ClientID     string `json:"client_id"`
	ClientName   string `json:"client_name"`
	LocationType string `json:"location_type"`

	OriginalDate  string `json:"original_date"`
	OriginalStart int    `json:"original_start"`
	OriginalEnd   int    `json:"original_end"`
	ProposedDate  string `json:"proposed_date"`
	ProposedStart int    `json:"proposed_start"`
	ProposedEnd   int    `json:"proposed_end"`

	SuggestionType string `json:"suggestion_type"` // consolidate_gap or create_block
	GapStart       int    `json:"gap_start"`
	GapEnd         int    `json:"gap_end"`
	MinutesFreed   int    `json:"minutes_freed"`
	NewBlockSize   int    `json:"new_block_size"`

	Reason          string `json:"reason"`  // short rationale
	Details         string `json:"details"` // detailed rationale
	BenefitScore    int    `json:"benefit_score"`    // 0-100
	PreferenceScore int    `json:"preference_score"` // 0-100
}
