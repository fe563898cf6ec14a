package request

type CreateBookingRequest struct {
	ServiceID   string  `json:"service_id" validate:"required,uuid4"`
	BookingDate string  `json:"booking_date" validate:"required,datetime=2006-01-02"`
	BookingTime string  `json:"booking_time" validate:"required,datetime=15:04"`
	Duration    *int    `json:"duration,omitempty" validate:"omitempty,gte=15,lte=480"`
	Address     string  `json:"address" validate:"required,max=255"`
	City        *string `json:"city,omitempty" validate:"omitempty,max=100"`
	Phone       *string `json:"phone,omitempty" validate:"omitempty,min=8,max=15"`
	Notes       *string `json:"notes,omitempty" validate:"omitempty,max=500"`
}

type UpdateBookingStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=confirmed completed cancelled rejected"`
}
