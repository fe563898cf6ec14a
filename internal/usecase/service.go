package usecase

import (
	"servilink/internal/data/repository"
	"servilink/pkg/token"
	"servilink/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Auth    AuthService
	Catalog CatalogService
	Booking BookingService
	Review  ReviewService
	Admin   AdminService
}

func NewService(repo *repository.Repository, tokens *token.Service, config *utils.Config, log *zap.Logger) *Service {
	return &Service{
		Auth:    NewAuthService(repo, tokens, log),
		Catalog: NewCatalogService(repo, log),
		Booking: NewBookingService(repo, log),
		Review:  NewReviewService(repo, log),
		Admin:   NewAdminService(repo, log),
	}
}
