package repository

import (
	"servilink/pkg/database"

	"go.uber.org/zap"
)

type Repository struct {
	User     UserRepository
	Category CategoryRepository
	Service  ServiceRepository
	Booking  BookingRepository
	Review   ReviewRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		User:     NewUserRepository(db, log),
		Category: NewCategoryRepository(db, log),
		Service:  NewServiceRepository(db, log),
		Booking:  NewBookingRepository(db, log),
		Review:   NewReviewRepository(db, log),
	}
}
