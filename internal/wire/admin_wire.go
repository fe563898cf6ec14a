package wire

import (
	"servilink/internal/adaptor"
	"servilink/pkg/middleware"
	"servilink/pkg/token"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireAdmin(
	r chi.Router,
	adminHandler *adaptor.AdminHandler,
	tokens *token.Service,
	log *zap.Logger,
) {
	// ==================== ADMIN ROUTES ====================
	r.Route("/api/admin", func(r chi.Router) {
		// Apply middleware chain: Auth → Admin
		r.Use(middleware.Auth(tokens, log))
		r.Use(middleware.Admin(log))

		// GET /api/admin/users - List all accounts
		r.Get("/users", adminHandler.ListUsers)

		// GET /api/admin/stats - Platform-wide counters and revenue
		r.Get("/stats", adminHandler.GetStats)

		// GET /api/admin/payments - Booking payment overview
		r.Get("/payments", adminHandler.ListPayments)

		// PUT /api/admin/payments/{id} - Mark a booking's payment state
		r.Put("/payments/{id}", adminHandler.UpdatePaymentStatus)
	})
}
