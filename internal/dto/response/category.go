package response

import (
	"time"

	"servilink/internal/data/entity"
)

type CategoryResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	Icon        *string   `json:"icon,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// Helper converter
func CategoryToResponse(category *entity.Category) CategoryResponse {
	return CategoryResponse{
		ID:          category.ID.String(),
		Name:        category.Name,
		Description: category.Description,
		Icon:        category.Icon,
		CreatedAt:   category.CreatedAt,
	}
}
