package optimizer

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"coachflow/models"
	"coachflow/utils"

	"go.uber.org/zap"
)

const analysisCacheTTL = 10 * time.Minute

// AnalyzeOpportunities walks every date in the inclusive range, finds
// consolidatable gaps, and returns qualifying single-booking moves sorted by
// benefit score descending (stable, so discovery order breaks ties).
//
// Per-day lookup failures skip that day silently; a totally unreachable
// booking store yields an empty result rather than an error, because this is
// an advisory feature where silence is safer than noisy failure.
func (svc *DefaultGapOptimizerService) AnalyzeOpportunities(coachID, startDate, endDate string) []models.OptimizationOpportunity {
	logger := utils.GetLogger()

	start, err := time.Parse(dateLayout, startDate)
	if err != nil {
		logger.Warn("AnalyzeOpportunities: invalid start date", zap.String("startDate", startDate))
		return nil
	}
	end, err := time.Parse(dateLayout, endDate)
	if err != nil {
		logger.Warn("AnalyzeOpportunities: invalid end date", zap.String("endDate", endDate))
		return nil
	}

	cacheKey := fmt.Sprintf("gapopt:%s:%s:%s", coachID, startDate, endDate)
	if cached := svc.cachedAnalysis(cacheKey); cached != nil {
		return cached
	}

	var opportunities []models.OptimizationOpportunity
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		dayOpps := svc.analyzeDay(coachID, d.Format(dateLayout), int(d.Weekday()))
		opportunities = append(opportunities, dayOpps...)
	}

	sort.SliceStable(opportunities, func(i, j int) bool {
		return opportunities[i].BenefitScore > opportunities[j].BenefitScore
	})

	svc.storeAnalysis(cacheKey, opportunities)
	return opportunities
}

// analyzeDay evaluates every consecutive booking pair on one date. Only gaps
// in the 30-90 minute window (inclusive) are candidates: smaller gaps are
// not worth consolidating and larger ones already count as acceptable free
// time.
func (svc *DefaultGapOptimizerService) analyzeDay(coachID, date string, dayOfWeek int) []models.OptimizationOpportunity {
	logger := utils.GetLogger()

	bookings, err := svc.BookingRepo.GetConfirmedByCoachAndDate(coachID, date)
	if err != nil {
		logger.Debug("analyzeDay: booking lookup failed, skipping day",
			zap.String("coachID", coachID), zap.String("date", date), zap.Error(err))
		return nil
	}
	if len(bookings) < 2 {
		return nil
	}

	var out []models.OptimizationOpportunity
	for i := 0; i < len(bookings)-1; i++ {
		earlier := bookings[i]
		mover := bookings[i+1]

		gap := mover.Start - earlier.End
		if gap < svc.minGap() || gap > svc.maxGap() {
			continue
		}

		duration := mover.Duration
		if duration <= 0 {
			duration = mover.End - mover.Start
		}
		proposedStart := earlier.End
		proposedEnd := proposedStart + duration

		free, err := svc.Availability.IsAvailable(coachID, date, proposedStart, proposedEnd, mover.LocationType, mover.ID)
		if err != nil {
			logger.Debug("analyzeDay: availability check failed, skipping gap",
				zap.String("bookingID", mover.ID), zap.Error(err))
			continue
		}
		if !free {
			continue
		}

		prefScore := svc.PreferenceScore(mover.ClientID, coachID, dayOfWeek, proposedStart)
		benefit := BenefitScore(gap, len(bookings), prefScore)
		if benefit < svc.minBenefit() {
			continue
		}

		// Free minutes between the moved booking's new end and whatever
		// follows it, or the end-of-day boundary if it was the last session.
		blockEnd := svc.dayEnd()
		if i+2 < len(bookings) {
			blockEnd = bookings[i+2].Start
		}
		newBlockSize := blockEnd - proposedEnd
		if newBlockSize < 0 {
			newBlockSize = 0
		}

		suggestionType := models.SuggestionTypeConsolidateGap
		if newBlockSize >= 60 {
			suggestionType = models.SuggestionTypeCreateBlock
		}

		name := svc.clientName(mover.ClientID)
		oldTime := utils.MinutesToTime(mover.Start)
		newTime := utils.MinutesToTime(proposedStart)

		out = append(out, models.OptimizationOpportunity{
			BookingID:       mover.ID,
			CoachID:         coachID,
			ClientID:        mover.ClientID,
			ClientName:      name,
			LocationType:    mover.LocationType,
			OriginalDate:    mover.Date,
			OriginalStart:   mover.Start,
			OriginalEnd:     mover.End,
			ProposedDate:    date,
			ProposedStart:   proposedStart,
			ProposedEnd:     proposedEnd,
			SuggestionType:  suggestionType,
			GapStart:        earlier.End,
			GapEnd:          mover.Start,
			MinutesFreed:    gap,
			NewBlockSize:    newBlockSize,
			Reason:          fmt.Sprintf("Move %s's session from %s to %s", name, oldTime, newTime),
			Details: fmt.Sprintf(
				"Moving %s's session on %s from %s-%s to %s-%s closes a %d-minute gap and frees a %d-minute block.",
				name, date, oldTime, utils.MinutesToTime(mover.End),
				newTime, utils.MinutesToTime(proposedEnd), gap, newBlockSize),
			BenefitScore:    benefit,
			PreferenceScore: prefScore,
		})
	}
	return out
}

func (svc *DefaultGapOptimizerService) cachedAnalysis(key string) []models.OptimizationOpportunity {
	if svc.CacheClient == nil {
		return nil
	}
	ctx := context.Background()
	cached, err := svc.CacheClient.Get(ctx, key).Result()
	if err != nil || cached == "" {
		return nil
	}
	var opportunities []models.OptimizationOpportunity
	if err := json.Unmarshal([]byte(cached), &opportunities); err != nil {
		return nil
	}
	return opportunities
}

func (svc *DefaultGapOptimizerService) storeAnalysis(key string, opportunities []models.OptimizationOpportunity) {
	if svc.CacheClient == nil || len(opportunities) == 0 {
		return
	}
	data, err := json.Marshal(opportunities)
	if err != nil {
		return
	}
	ctx := context.Background()
	if err := svc.CacheClient.Set(ctx, key, data, analysisCacheTTL).Err(); err != nil {
		utils.GetLogger().Debug("failed to cache analysis result", zap.Error(err))
	}
}
