package authz

import (
	"github.com/google/uuid"
)

// Role is the closed set of principal roles.
type Role string

const (
	RoleClient   Role = "client"
	RoleProvider Role = "prestataire"
	RoleAdmin    Role = "admin"
)

func (r Role) Valid() bool {
	switch r {
	case RoleClient, RoleProvider, RoleAdmin:
		return true
	}
	return false
}

// Principal is the authenticated actor behind a request.
type Principal struct {
	ID   uuid.UUID
	Role Role
}

// Action enumerates every gated operation.
type Action int

const (
	ActionCreateBooking Action = iota
	ActionReadBooking
	ActionCancelBooking
	ActionConfirmBooking
	ActionRejectBooking
	ActionCompleteBooking
	ActionDeleteBooking
	ActionManageService
	ActionDeleteReview
	ActionAdminPanel
)

// CanPerform is the single rule table consulted before every mutation.
// owner reports whether the principal owns the target resource: the booking's
// client for client-side actions, the booked service's provider for
// provider-side actions, the review's author for review deletion.
func CanPerform(role Role, action Action, owner bool) bool {
	if role == RoleAdmin {
		return true
	}

	switch action {
	case ActionCreateBooking:
		// Any authenticated principal, always acting as itself.
		return role.Valid()
	case ActionReadBooking:
		return owner
	case ActionCancelBooking, ActionDeleteBooking:
		return role == RoleClient && owner
	case ActionConfirmBooking, ActionRejectBooking:
		return role == RoleProvider && owner
	case ActionCompleteBooking:
		// Either side of the engagement may mark the work done.
		return (role == RoleClient || role == RoleProvider) && owner
	case ActionManageService:
		return role == RoleProvider && owner
	case ActionDeleteReview:
		return role == RoleClient && owner
	case ActionAdminPanel:
		return false
	}

	return false
}
