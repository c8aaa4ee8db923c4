package bookingRepo

import "coachflow/models"

// BookingRepository provides read access to the bookings collection plus the
// single reschedule update issued when an accepted suggestion is applied.
type BookingRepository interface {
	// GetConfirmedByCoachAndDate returns confirmed bookings for a coach on a
	// date, ordered by start time ascending.
	GetConfirmedByCoachAndDate(coachID, date string) ([]models.Booking, error)
	// GetCompletedByClientAndCoach returns up to limit completed bookings for
	// a client with a coach, newest first.
	GetCompletedByClientAndCoach(clientID, coachID string, limit int) ([]models.Booking, error)
	// CountOverlapping counts confirmed bookings for a coach on a date that
	// overlap [start, end), excluding the given booking ID.
	CountOverlapping(coachID, date string, start, end int, excludeBookingID string) (int, error)
	GetByID(bookingID string) (*models.Booking, error)
	// Reschedule moves a booking to a new date and time window and flags it
	// as rescheduled by the system.
	Reschedule(bookingID, date string, start, end int) error
}
