// Package availability hosts the conflict check the optimizer consults
// before proposing or applying a move. The optimizer treats it as a black
// box; the default implementation answers from the booking store.
package availability

import (
	"fmt"

	bookingRepo "coachflow/database/repository/booking"
	coachRepo "coachflow/database/repository/coach"
)

// Checker reports whether a coach is free for a candidate slot. The
// excludeBookingID carves the booking being moved out of the conflict check.
type Checker interface {
	IsAvailable(coachID, date string, start, end int, locationType string, excludeBookingID string) (bool, error)
}

// DefaultChecker answers availability from confirmed bookings and the
// coach's bookable-day bounds.
type DefaultChecker struct {
	BookingRepo   bookingRepo.BookingRepository
	CoachRepo     coachRepo.CoachRepository
	DayEndMinutes int // fallback boundary when the coach has no override
}

func (c *DefaultChecker) IsAvailable(coachID, date string, start, end int, locationType string, excludeBookingID string) (bool, error) {
	if start < 0 || end <= start {
		return false, fmt.Errorf("invalid slot [%d, %d]", start, end)
	}

	dayEnd := c.DayEndMinutes
	if c.CoachRepo != nil {
		if coach, err := c.CoachRepo.GetByID(coachID); err == nil && coach.DayEndMinutes > 0 {
			dayEnd = coach.DayEndMinutes
		}
	}
	if dayEnd > 0 && end > dayEnd {
		return false, nil
	}

	count, err := c.BookingRepo.CountOverlapping(coachID, date, start, end, excludeBookingID)
	if err != nil {
		return false, fmt.Errorf("availability check failed for coach %s on %s: %w", coachID, date, err)
	}
	return count == 0, nil
}
