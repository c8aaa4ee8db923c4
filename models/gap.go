package models

// GapBookingRef identifies one of the two bookings bounding a gap.
type GapBookingRef struct {
	BookingID  string `json:"booking_id"`
	ClientName string `json:"client_name"`
	Time       int    `json:"time"` // boundary time touching the gap (minutes from midnight)
}

// GapAnalysis is a derived idle window between two consecutive confirmed
// bookings on the same date. It is recomputed on demand and never persisted.
type GapAnalysis struct {
	Date          string        `json:"date"`
	Start         int           `json:"start"`    // minutes from midnight
	End           int           `json:"end"`      // minutes from midnight
	Duration      int           `json:"duration"` // End - Start, always >= the configured minimum
	BeforeBooking GapBookingRef `json:"before_booking"`
	AfterBooking  GapBookingRef `json:"after_booking"`
}
