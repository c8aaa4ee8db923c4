package models

import "time"

// Coach is the owner of a bookable calendar.
type Coach struct {
	ID            string    `bson:"id" json:"id"`
	Name          string    `bson:"name" json:"name"`
	Email         string    `bson:"email" json:"email"`
	DeviceTokens  []string  `bson:"device_tokens,omitempty" json:"device_tokens,omitempty"` // FCM registration tokens
	DayEndMinutes int       `bson:"day_end_minutes,omitempty" json:"day_end_minutes,omitempty"` // bookable-day boundary override (minutes from midnight)
	CreatedAt     time.Time `bson:"created_at" json:"created_at"`
}
