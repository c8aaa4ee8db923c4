package optimizer

import (
	"coachflow/models"
	"coachflow/utils"

	"go.uber.org/zap"
)

// DetectGaps returns the idle windows between consecutive confirmed bookings
// for the coach on the date. Fewer than two bookings means no gap is
// possible; that is an empty result, not an error. Store failures also
// degrade to an empty result since this feeds an advisory feature.
func (svc *DefaultGapOptimizerService) DetectGaps(coachID, date string, minGapMinutes int) []models.GapAnalysis {
	logger := utils.GetLogger()
	if minGapMinutes <= 0 {
		minGapMinutes = svc.minGap()
	}

	bookings, err := svc.BookingRepo.GetConfirmedByCoachAndDate(coachID, date)
	if err != nil {
		logger.Debug("DetectGaps: booking lookup failed, returning empty result",
			zap.String("coachID", coachID), zap.String("date", date), zap.Error(err))
		return nil
	}
	if len(bookings) < 2 {
		return nil
	}

	var gaps []models.GapAnalysis
	for i := 0; i < len(bookings)-1; i++ {
		current := bookings[i]
		next := bookings[i+1]

		gap := next.Start - current.End
		if gap < minGapMinutes {
			continue
		}

		gaps = append(gaps, models.GapAnalysis{
			Date:     date,
			Start:    current.End,
			End:      next.Start,
			Duration: gap,
			BeforeBooking: models.GapBookingRef{
				BookingID:  current.ID,
				ClientName: svc.clientName(current.ClientID),
				Time:       current.End,
			},
			AfterBooking: models.GapBookingRef{
				BookingID:  next.ID,
				ClientName: svc.clientName(next.ClientID),
				Time:       next.Start,
			},
		})
	}
	return gaps
}
