package optimizer

import (
	"time"

	"coachflow/models"
	"coachflow/utils"

	"go.uber.org/zap"
)

// Preference scoring heuristic. Additive, not exclusive: all applicable
// adjustments stack on the neutral baseline before clamping to [0, 100].
const (
	neutralPreferenceScore = 50
	sameDayBonus           = 20
	nearTimeBonus          = 20
	unfamiliarDayPenalty   = 10
	habitFractionThreshold = 0.3
	nearTimeWindowMinutes  = 60
)

// PreferenceScore estimates how well a candidate day-of-week (0-6, Sunday=0)
// and start time match the client's habitual booking pattern with this
// coach. No history, or a failed lookup, yields the neutral baseline.
func (svc *DefaultGapOptimizerService) PreferenceScore(clientID, coachID string, dayOfWeek, startMinutes int) int {
	history, err := svc.BookingRepo.GetCompletedByClientAndCoach(clientID, coachID, svc.historyLimit())
	if err != nil {
		utils.GetLogger().Debug("PreferenceScore: history lookup failed, using neutral baseline",
			zap.String("clientID", clientID), zap.Error(err))
		return neutralPreferenceScore
	}
	return scoreClientPreference(history, dayOfWeek, startMinutes)
}

func scoreClientPreference(history []models.Booking, dayOfWeek, startMinutes int) int {
	if len(history) == 0 {
		return neutralPreferenceScore
	}

	var sameDay, nearTime int
	for _, b := range history {
		d, err := time.Parse(dateLayout, b.Date)
		if err != nil {
			continue
		}
		if int(d.Weekday()) == dayOfWeek {
			sameDay++
		}
		diff := b.Start - startMinutes
		if diff < 0 {
			diff = -diff
		}
		if diff <= nearTimeWindowMinutes {
			nearTime++
		}
	}

	score := neutralPreferenceScore
	total := float64(len(history))
	if float64(sameDay)/total > habitFractionThreshold {
		score += sameDayBonus
	}
	if float64(nearTime)/total > habitFractionThreshold {
		score += nearTimeBonus
	}
	if sameDay == 0 {
		score -= unfamiliarDayPenalty
	}

	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	return score
}
