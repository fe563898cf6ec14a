package response

import (
	"time"

	"servilink/internal/data/entity"
)

type ReviewResponse struct {
	ID         string    `json:"id"`
	BookingID  string    `json:"booking_id"`
	ClientID   string    `json:"client_id"`
	ClientName string    `json:"client_name,omitempty"`
	ProviderID string    `json:"provider_id"`
	Rating     int       `json:"rating"`
	Comment    *string   `json:"comment,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

type ReviewSummary struct {
	Total         int64   `json:"total"`
	AverageRating float64 `json:"average_rating"`
}

type ProviderReviewsResponse struct {
	Data    []ReviewResponse `json:"data"`
	Summary ReviewSummary    `json:"summary"`
}

// Helper converter
func ReviewToResponse(review *entity.Review, clientName string) ReviewResponse {
	return ReviewResponse{
		ID:         review.ID.String(),
		BookingID:  review.BookingID.String(),
		ClientID:   review.ClientID.String(),
		ClientName: clientName,
		ProviderID: review.ProviderID.String(),
		Rating:     review.Rating,
		Comment:    review.Comment,
		CreatedAt:  review.CreatedAt,
	}
}
