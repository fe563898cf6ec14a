package wire

import (
	"servilink/internal/adaptor"
	"servilink/pkg/middleware"
	"servilink/pkg/token"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireBooking(
	r chi.Router,
	bookingHandler *adaptor.BookingHandler,
	tokens *token.Service,
	log *zap.Logger,
) {
	// ==================== PROTECTED ROUTES (require auth) ====================
	// All booking routes require a principal; visibility and transition
	// permissions are enforced in the service layer.
	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(tokens, log))

		// POST /api/bookings - Create new booking (client books a service)
		r.Post("/api/bookings", bookingHandler.Create)

		// GET /api/bookings - List bookings visible to the caller's role
		r.Get("/api/bookings", bookingHandler.List)

		// GET /api/bookings/{id} - Booking details (participants and admin)
		r.Get("/api/bookings/{id}", bookingHandler.Get)

		// PUT /api/bookings/{id}/status - Drive the booking state machine
		r.Put("/api/bookings/{id}/status", bookingHandler.UpdateStatus)

		// DELETE /api/bookings/{id} - Remove a booking (owning client)
		r.Delete("/api/bookings/{id}", bookingHandler.Delete)
	})
}
