package utils

import (
	"context"

	"servilink/internal/authz"

	"github.com/google/uuid"
)

type contextKey string

const (
	UserIDKey contextKey = "user_id"
	RoleKey   contextKey = "role"
)

// SetPrincipal stores the authenticated principal in the request context.
func SetPrincipal(ctx context.Context, principal authz.Principal) context.Context {
	ctx = context.WithValue(ctx, UserIDKey, principal.ID.String())
	ctx = context.WithValue(ctx, RoleKey, string(principal.Role))
	return ctx
}

// GetPrincipal extracts the authenticated principal from the context.
func GetPrincipal(ctx context.Context) (authz.Principal, bool) {
	userIDVal := ctx.Value(UserIDKey)
	if userIDVal == nil {
		return authz.Principal{}, false
	}

	userIDStr, ok := userIDVal.(string)
	if !ok {
		return authz.Principal{}, false
	}

	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return authz.Principal{}, false
	}

	roleVal := ctx.Value(RoleKey)
	roleStr, ok := roleVal.(string)
	if !ok {
		return authz.Principal{}, false
	}

	role := authz.Role(roleStr)
	if !role.Valid() {
		return authz.Principal{}, false
	}

	return authz.Principal{ID: userID, Role: role}, true
}
