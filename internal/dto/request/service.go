package request

type CreateServiceRequest struct {
	CategoryID  string  `json:"category_id" validate:"required,uuid4"`
	Title       string  `json:"title" validate:"required,min=3,max=150"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=2000"`
	Price       float64 `json:"price" validate:"required,gt=0"`
	City        *string `json:"city,omitempty" validate:"omitempty,max=100"`
}

type UpdateServiceRequest struct {
	CategoryID  *string  `json:"category_id,omitempty" validate:"omitempty,uuid4"`
	Title       *string  `json:"title,omitempty" validate:"omitempty,min=3,max=150"`
	Description *string  `json:"description,omitempty" validate:"omitempty,max=2000"`
	Price       *float64 `json:"price,omitempty" validate:"omitempty,gt=0"`
	City        *string  `json:"city,omitempty" validate:"omitempty,max=100"`
	IsActive    *bool    `json:"is_active,omitempty"`
}
