package response

import (
	"time"

	"servilink/internal/data/entity"
)

type BookingResponse struct {
	ID                 string               `json:"id"`
	ClientID           string               `json:"client_id"`
	ProviderID         string               `json:"provider_id"`
	ServiceID          string               `json:"service_id"`
	ServiceTitle       *string              `json:"service_title,omitempty"`
	ServiceDescription *string              `json:"service_description,omitempty"`
	ProviderName       *string              `json:"provider_name,omitempty"`
	ClientName         *string              `json:"client_name,omitempty"`
	BookingDate        string               `json:"booking_date"`
	BookingTime        string               `json:"booking_time"`
	Duration           int                  `json:"duration"`
	Status             entity.BookingStatus `json:"status"`
	Address            string               `json:"address"`
	City               *string              `json:"city,omitempty"`
	Phone              *string              `json:"phone,omitempty"`
	Notes              *string              `json:"notes,omitempty"`
	TotalAmount        float64              `json:"total_amount"`
	PaymentStatus      entity.PaymentStatus `json:"payment_status"`
	CreatedAt          time.Time            `json:"created_at"`
}

// Helper converters
func BookingToResponse(booking *entity.Booking) BookingResponse {
	return BookingResponse{
		ID:            booking.ID.String(),
		ClientID:      booking.ClientID.String(),
		ProviderID:    booking.ProviderID.String(),
		ServiceID:     booking.ServiceID.String(),
		BookingDate:   booking.BookingDate,
		BookingTime:   booking.BookingTime,
		Duration:      booking.Duration,
		Status:        booking.Status,
		Address:       booking.Address,
		City:          booking.City,
		Phone:         booking.Phone,
		Notes:         booking.Notes,
		TotalAmount:   booking.TotalAmount,
		PaymentStatus: booking.PaymentStatus,
		CreatedAt:     booking.CreatedAt,
	}
}

func BookingDetailToResponse(detail *entity.BookingDetail) BookingResponse {
	resp := BookingToResponse(&detail.Booking)
	resp.ServiceTitle = detail.ServiceTitle
	resp.ServiceDescription = detail.ServiceDescription
	resp.ProviderName = detail.ProviderName
	resp.ClientName = detail.ClientName
	return resp
}
