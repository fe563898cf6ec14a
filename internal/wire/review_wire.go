package wire

import (
	"servilink/internal/adaptor"
	"servilink/pkg/middleware"
	"servilink/pkg/token"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireReview(
	r chi.Router,
	reviewHandler *adaptor.ReviewHandler,
	tokens *token.Service,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	// GET /api/reviews/{providerId} - Provider reviews with summary (public)
	r.Get("/api/reviews/{providerId}", reviewHandler.ListByProvider)

	// ==================== PROTECTED ROUTES (require auth) ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(tokens, log))

		// POST /api/reviews - Review a completed booking
		r.Post("/api/reviews", reviewHandler.Create)

		// DELETE /api/reviews/{id} - Remove own review
		r.Delete("/api/reviews/{id}", reviewHandler.Delete)
	})
}
