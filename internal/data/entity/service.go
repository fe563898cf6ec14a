package entity

import (
	"github.com/google/uuid"
)

type Service struct {
	Base
	ProviderID  uuid.UUID `db:"provider_id"`
	CategoryID  uuid.UUID `db:"category_id"`
	Title       string    `db:"title"`
	Description *string   `db:"description"`
	Price       float64   `db:"price"`
	City        *string   `db:"city"`
	IsActive    bool      `db:"is_active"`
}
