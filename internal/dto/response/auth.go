package response

import (
	"time"

	"servilink/internal/authz"
	"servilink/internal/data/entity"
)

type AuthResponse struct {
	UserID    string     `json:"user_id"`
	Token     string     `json:"token"`
	ExpiresAt time.Time  `json:"expires_at"`
	Email     string     `json:"email"`
	Name      string     `json:"name"`
	Role      authz.Role `json:"role"`
}

type UserResponse struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Email       string     `json:"email"`
	Phone       *string    `json:"phone,omitempty"`
	City        *string    `json:"city,omitempty"`
	Role        authz.Role `json:"role"`
	Rating      float64    `json:"rating"`
	ReviewCount int64      `json:"review_count"`
	IsActive    bool       `json:"is_active"`
	CreatedAt   time.Time  `json:"created_at"`
}

// Helper converters
func UserToResponse(user *entity.User) UserResponse {
	return UserResponse{
		ID:          user.ID.String(),
		Name:        user.Name,
		Email:       user.Email,
		Phone:       user.Phone,
		City:        user.City,
		Role:        user.Role,
		Rating:      user.Rating,
		ReviewCount: user.ReviewCount,
		IsActive:    user.IsActive,
		CreatedAt:   user.CreatedAt,
	}
}

func AuthToResponse(user *entity.User, tokenStr string, expiresAt time.Time) AuthResponse {
	return AuthResponse{
		UserID:    user.ID.String(),
		Token:     tokenStr,
		ExpiresAt: expiresAt,
		Email:     user.Email,
		Name:      user.Name,
		Role:      user.Role,
	}
}
