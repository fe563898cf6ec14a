package wire

import (
	"servilink/internal/adaptor"
	"servilink/pkg/middleware"
	"servilink/pkg/token"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireCatalog(
	r chi.Router,
	catalogHandler *adaptor.CatalogHandler,
	tokens *token.Service,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	// GET /api/categories - List categories (public)
	r.Get("/api/categories", catalogHandler.ListCategories)

	// GET /api/services - Browse services, optional ?category_id= filter (public)
	r.Get("/api/services", catalogHandler.ListServices)

	// GET /api/services/{id} - Service details (public)
	r.Get("/api/services/{id}", catalogHandler.GetService)

	// ==================== PROTECTED ROUTES (require auth) ====================
	// Service management; ownership is enforced in the service layer.
	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(tokens, log))

		// POST /api/services - Publish a new service (providers)
		r.Post("/api/services", catalogHandler.CreateService)

		// PUT /api/services/{id} - Update own service
		r.Put("/api/services/{id}", catalogHandler.UpdateService)

		// DELETE /api/services/{id} - Retire own service
		r.Delete("/api/services/{id}", catalogHandler.DeleteService)
	})

	// ==================== ADMIN ROUTES ====================
	// Category management is admin only.
	r.Route("/api/admin/categories", func(r chi.Router) {
		r.Use(middleware.Auth(tokens, log))
		r.Use(middleware.Admin(log))

		r.Post("/", catalogHandler.CreateCategory)
		r.Put("/{id}", catalogHandler.UpdateCategory)
		r.Delete("/{id}", catalogHandler.DeleteCategory)
	})
}
