package middleware

import (
	"net/http"
	"strings"

	"servilink/internal/authz"
	"servilink/pkg/token"
	"servilink/pkg/utils"

	"go.uber.org/zap"
)

// Auth resolves the bearer credential into a principal and stores it in the
// request context. Requests without a valid credential never reach the handler.
func Auth(tokens *token.Service, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				utils.ResponseUnauthorized(w, "Missing authorization token")
				return
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				utils.ResponseUnauthorized(w, "Invalid token format. Use: Bearer <token>")
				return
			}

			claims, err := tokens.Verify(parts[1])
			if err != nil {
				if err == token.ErrExpiredToken {
					utils.ResponseUnauthorized(w, "Token expired")
					return
				}
				logger.Warn("Invalid bearer token", zap.Error(err), zap.String("path", r.URL.Path))
				utils.ResponseUnauthorized(w, "Invalid or expired token")
				return
			}

			role := authz.Role(claims.Role)
			if !role.Valid() {
				logger.Warn("Token carries unknown role",
					zap.String("role", claims.Role),
					zap.String("user_id", claims.UserID.String()))
				utils.ResponseUnauthorized(w, "Invalid or expired token")
				return
			}

			ctx := utils.SetPrincipal(r.Context(), authz.Principal{ID: claims.UserID, Role: role})

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Admin rejects any principal that is not an administrator.
func Admin(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal, ok := utils.GetPrincipal(r.Context())
			if !ok {
				utils.ResponseUnauthorized(w, "Authentication required")
				return
			}

			if !authz.CanPerform(principal.Role, authz.ActionAdminPanel, false) {
				logger.Warn("Admin check: non-admin access attempt",
					zap.String("user_id", principal.ID.String()),
					zap.String("role", string(principal.Role)),
					zap.String("path", r.URL.Path))
				utils.ResponseForbidden(w, "Admin access required")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
