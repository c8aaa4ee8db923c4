package models

import "time"

// Booking status values stored in the bookings collection.
const (
	BookingStatusConfirmed = "confirmed"
	BookingStatusCompleted = "completed"
	BookingStatusCancelled = "cancelled"
	BookingStatusNoShow    = "no_show"
)

// Booking represents one scheduled session on a coach's calendar.
type Booking struct {
	ID                  string    `bson:"id" json:"id"`                                   // Unique booking identifier (e.g., UUID)
	CoachID             string    `bson:"coach_id" json:"coach_id"`                       // Coach who owns the session
	ClientID            string    `bson:"client_id" json:"client_id"`                     // Client attending the session
	Date                string    `bson:"date" json:"date"`                               // Session date in "YYYY-MM-DD" format
	Start               int       `bson:"start" json:"start"`                             // Start time (minutes from midnight)
	End                 int       `bson:"end" json:"end"`                                 // End time (minutes from midnight)
	Duration            int       `bson:"duration" json:"duration"`                       // Session length in minutes
	Status              string    `bson:"status" json:"status"`                           // confirmed, completed, cancelled, no_show
	LocationType        string    `bson:"location_type" json:"location_type"`             // e.g., "in_person", "virtual"
	Rescheduled         bool      `bson:"rescheduled,omitempty" json:"rescheduled,omitempty"`
	RescheduledBySystem bool      `bson:"rescheduled_by_system,omitempty" json:"rescheduled_by_system,omitempty"`
	CreatedAt           time.Time `bson:"created_at" json:"created_at"`
}
