package model

import (
	"time"

	"github.com/google/uuid"
)

// Booking is a booking intent. Nothing executes it; it is only logged.
type Booking struct {
	Reference   uuid.UUID `json:"reference"`
	CountryCode string    `json:"country"`
	City        string    `json:"city"`
	Date        time.Time `json:"date"`
	RequestedAt time.Time `json:"requestedAt"`
}
