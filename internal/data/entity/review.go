package entity

import (
	"github.com/google/uuid"
)

type Review struct {
	BaseSimple
	BookingID  uuid.UUID `db:"booking_id"` // unique, one review per booking
	ClientID   uuid.UUID `db:"client_id"`
	ProviderID uuid.UUID `db:"provider_id"`
	Rating     int       `db:"rating"` // 1-5
	Comment    *string   `db:"comment"`
}

// ProviderReviewStats is the derived reputation aggregate for a provider.
type ProviderReviewStats struct {
	AverageRating float64 `db:"average_rating"`
	ReviewCount   int64   `db:"review_count"`
}
