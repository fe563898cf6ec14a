package wire

import (
	"servilink/internal/adaptor"
	"servilink/pkg/middleware"
	"servilink/pkg/token"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireAuth(
	r chi.Router,
	authHandler *adaptor.AuthHandler,
	tokens *token.Service,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	r.Post("/api/auth/register", authHandler.Register)
	r.Post("/api/auth/login", authHandler.Login)

	// ==================== PROTECTED ROUTES ====================
	r.With(middleware.Auth(tokens, log)).Get("/api/auth/me", authHandler.Me)
}
