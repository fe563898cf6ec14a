package wire

import (
	"net/http"

	"servilink/internal/adaptor"
	"servilink/internal/data/repository"
	"servilink/internal/usecase"
	"servilink/pkg/middleware"
	"servilink/pkg/token"
	"servilink/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// App holds the wired dependencies exposed to the entrypoint.
type App struct {
	Router *chi.Mux
}

// Wiring builds services, handlers, and the router.
func Wiring(repo *repository.Repository, tokens *token.Service, config *utils.Config, logger *zap.Logger) *App {
	service := usecase.NewService(repo, tokens, config, logger)
	handler := adaptor.NewHandler(service, logger)

	router := setupRouter(handler, tokens, config, logger)

	return &App{
		Router: router,
	}
}

func setupRouter(
	handler *adaptor.Handler,
	tokens *token.Service,
	config *utils.Config,
	logger *zap.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	// Apply global middleware
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS(config.CORS.AllowedOrigins))

	// Apply routes
	wireAuth(r, handler.Auth, tokens, logger)
	wireCatalog(r, handler.Catalog, tokens, logger)
	wireBooking(r, handler.Booking, tokens, logger)
	wireReview(r, handler.Review, tokens, logger)
	wireAdmin(r, handler.Admin, tokens, logger)

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	return r
}
