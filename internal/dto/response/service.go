package response

import (
	"time"

	"servilink/internal/data/entity"
)

type ServiceResponse struct {
	ID           string    `json:"id"`
	ProviderID   string    `json:"provider_id"`
	ProviderName string    `json:"provider_name,omitempty"`
	CategoryID   string    `json:"category_id"`
	CategoryName string    `json:"category_name,omitempty"`
	Title        string    `json:"title"`
	Description  *string   `json:"description,omitempty"`
	Price        float64   `json:"price"`
	City         *string   `json:"city,omitempty"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
}

// Helper converter
func ServiceToResponse(service *entity.Service, providerName, categoryName string) ServiceResponse {
	return ServiceResponse{
		ID:           service.ID.String(),
		ProviderID:   service.ProviderID.String(),
		ProviderName: providerName,
		CategoryID:   service.CategoryID.String(),
		CategoryName: categoryName,
		Title:        service.Title,
		Description:  service.Description,
		Price:        service.Price,
		City:         service.City,
		IsActive:     service.IsActive,
		CreatedAt:    service.CreatedAt,
	}
}
