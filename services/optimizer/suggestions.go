package optimizer

import (
	"context"
	"fmt"

	"coachflow/models"
	"coachflow/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CreateSuggestions persists a batch of opportunities as pending suggestions
// expiring after the retention window, then notifies the coach best-effort.
func (svc *DefaultGapOptimizerService) CreateSuggestions(coachID string, opportunities []models.OptimizationOpportunity) ([]models.Suggestion, error) {
	if len(opportunities) == 0 {
		return nil, nil
	}

	now := svc.now()
	expiresAt := now.Add(svc.retention())

	suggestions := make([]models.Suggestion, 0, len(opportunities))
	for _, opp := range opportunities {
		suggestions = append(suggestions, models.Suggestion{
			ID:              uuid.New().String(),
			CoachID:         coachID,
			BookingID:       opp.BookingID,
			ClientID:        opp.ClientID,
			ClientName:      opp.ClientName,
			LocationType:    opp.LocationType,
			OriginalDate:    opp.OriginalDate,
			OriginalStart:   opp.OriginalStart,
			OriginalEnd:     opp.OriginalEnd,
			ProposedDate:    opp.ProposedDate,
			ProposedStart:   opp.ProposedStart,
			ProposedEnd:     opp.ProposedEnd,
			SuggestionType:  opp.SuggestionType,
			GapStart:        opp.GapStart,
			GapEnd:          opp.GapEnd,
			MinutesFreed:    opp.MinutesFreed,
			NewBlockSize:    opp.NewBlockSize,
			Reason:          opp.Reason,
			Details:         opp.Details,
			BenefitScore:    opp.BenefitScore,
			PreferenceScore: opp.PreferenceScore,
			Status:          models.SuggestionStatusPending,
			CreatedAt:       now,
			ExpiresAt:       expiresAt,
		})
	}

	if err := svc.SuggestionRepo.InsertMany(suggestions); err != nil {
		return nil, fmt.Errorf("failed to persist suggestions: %w", err)
	}

	if svc.Notifier != nil {
		if err := svc.Notifier.NotifyNewSuggestions(context.Background(), coachID, len(suggestions)); err != nil {
			utils.GetLogger().Warn("failed to notify coach of new suggestions",
				zap.String("coachID", coachID), zap.Error(err))
		}
	}
	return suggestions, nil
}

// GetPendingSuggestions returns non-expired pending suggestions for a coach
// sorted by benefit score descending.
func (svc *DefaultGapOptimizerService) GetPendingSuggestions(coachID string) ([]models.Suggestion, error) {
	return svc.SuggestionRepo.GetPendingByCoach(coachID, svc.now())
}

// RespondToSuggestion accepts or rejects a pending suggestion. Responding to
// an already-reviewed suggestion is a precondition violation, never a silent
// overwrite.
func (svc *DefaultGapOptimizerService) RespondToSuggestion(id string, accept bool) error {
	suggestion, err := svc.SuggestionRepo.GetByID(id)
	if err != nil {
		return fmt.Errorf("failed to load suggestion %s: %w", id, err)
	}
	if suggestion == nil {
		return NewOptimizeError(CodeSuggestionNotFound, fmt.Sprintf("suggestion %s not found", id))
	}
	if suggestion.Status != models.SuggestionStatusPending {
		return NewOptimizeError(CodeAlreadyReviewed,
			fmt.Sprintf("suggestion %s has already been reviewed (status %s)", id, suggestion.Status))
	}

	status := models.SuggestionStatusRejected
	if accept {
		status = models.SuggestionStatusAccepted
	}
	return svc.SuggestionRepo.MarkReviewed(id, status, svc.now())
}

// ApplySuggestion moves the underlying booking to the stored proposed slot.
// The availability oracle is re-invoked immediately before the write: the
// system holds no lock between scoring and apply, so staleness is detected
// here. A slot taken in the meantime expires the suggestion and leaves the
// booking untouched.
func (svc *DefaultGapOptimizerService) ApplySuggestion(id string) error {
	suggestion, err := svc.SuggestionRepo.GetByID(id)
	if err != nil {
		return fmt.Errorf("failed to load suggestion %s: %w", id, err)
	}
	if suggestion == nil {
		return NewOptimizeError(CodeSuggestionNotFound, fmt.Sprintf("suggestion %s not found", id))
	}
	if suggestion.Status != models.SuggestionStatusAccepted {
		return NewOptimizeError(CodeNotAccepted,
			fmt.Sprintf("suggestion %s must be accepted before it can be applied (status %s)", id, suggestion.Status))
	}

	free, err := svc.Availability.IsAvailable(
		suggestion.CoachID, suggestion.ProposedDate,
		suggestion.ProposedStart, suggestion.ProposedEnd,
		suggestion.LocationType, suggestion.BookingID)
	if err != nil {
		return fmt.Errorf("availability re-check failed for suggestion %s: %w", id, err)
	}
	if !free {
		if markErr := svc.SuggestionRepo.MarkExpired(id); markErr != nil {
			utils.GetLogger().Warn("failed to expire stale suggestion",
				zap.String("suggestionID", id), zap.Error(markErr))
		}
		return NewOptimizeError(CodeSlotTaken,
			fmt.Sprintf("slot no longer available for suggestion %s", id))
	}

	if err := svc.BookingRepo.Reschedule(
		suggestion.BookingID, suggestion.ProposedDate,
		suggestion.ProposedStart, suggestion.ProposedEnd); err != nil {
		return fmt.Errorf("failed to reschedule booking %s: %w", suggestion.BookingID, err)
	}

	return svc.SuggestionRepo.MarkApplied(id, svc.now())
}

// ExpireOldSuggestions transitions every pending suggestion past its expiry
// to expired. Idempotent; safe to run repeatedly.
func (svc *DefaultGapOptimizerService) ExpireOldSuggestions() (int64, error) {
	count, err := svc.SuggestionRepo.ExpireDue(svc.now())
	if err != nil {
		return 0, fmt.Errorf("expire sweep failed: %w", err)
	}
	if count > 0 {
		utils.GetLogger().Info("expired stale suggestions", zap.Int64("count", count))
	}
	return count, nil
}
