package usecase

import (
	"context"

	"servilink/internal/authz"
	"servilink/internal/data/entity"
	"servilink/internal/data/repository"
	"servilink/internal/dto/request"
	"servilink/internal/dto/response"
	"servilink/pkg/apperr"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AdminService backs the administrative surfaces: user listing, global stats
// and the payment-history view. Route middleware already guarantees the
// caller is an admin.
type AdminService interface {
	ListUsers(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.UserResponse], error)
	GetGlobalStats(ctx context.Context) (*response.GlobalStats, error)
	ListPayments(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error)
	UpdatePaymentStatus(ctx context.Context, bookingID, status string) (*response.BookingResponse, error)
}

type adminService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewAdminService(repo *repository.Repository, log *zap.Logger) AdminService {
	return &adminService{
		repo: repo,
		log:  log.With(zap.String("service", "admin")),
	}
}

func (s *adminService) ListUsers(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.UserResponse], error) {
	users, err := s.repo.User.FindAll(ctx, req.Limit(), req.Offset())
	if err != nil {
		s.log.Error("Failed to list users", zap.Error(err))
		return nil, err
	}

	total, err := s.repo.User.CountAll(ctx)
	if err != nil {
		s.log.Error("Failed to count users", zap.Error(err))
		return nil, err
	}

	userResponses := make([]response.UserResponse, len(users))
	for i, user := range users {
		userResponses[i] = response.UserToResponse(user)
	}

	return response.NewPaginatedResponse(userResponses, req.Page, req.PerPage, total), nil
}

func (s *adminService) GetGlobalStats(ctx context.Context) (*response.GlobalStats, error) {
	stats := &response.GlobalStats{
		UsersByRole:      make(map[string]int64),
		BookingsByStatus: make(map[string]int64),
	}

	var err error
	if stats.TotalUsers, err = s.repo.User.CountAll(ctx); err != nil {
		return nil, err
	}

	for _, role := range []authz.Role{authz.RoleClient, authz.RoleProvider, authz.RoleAdmin} {
		count, err := s.repo.User.CountByRole(ctx, role)
		if err != nil {
			return nil, err
		}
		stats.UsersByRole[string(role)] = count
	}

	if stats.TotalServices, err = s.repo.Service.CountAll(ctx); err != nil {
		return nil, err
	}

	if stats.TotalBookings, err = s.repo.Booking.CountAll(ctx); err != nil {
		return nil, err
	}

	statuses := []entity.BookingStatus{
		entity.BookingStatusPending,
		entity.BookingStatusConfirmed,
		entity.BookingStatusCompleted,
		entity.BookingStatusCancelled,
		entity.BookingStatusRejected,
	}
	for _, status := range statuses {
		count, err := s.repo.Booking.CountByStatus(ctx, status)
		if err != nil {
			return nil, err
		}
		stats.BookingsByStatus[string(status)] = count
	}

	if stats.CompletedRevenue, err = s.repo.Booking.SumCompletedAmount(ctx); err != nil {
		return nil, err
	}

	if stats.TotalReviews, err = s.repo.Review.CountAll(ctx); err != nil {
		return nil, err
	}

	return stats, nil
}

func (s *adminService) ListPayments(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error) {
	details, err := s.repo.Booking.FindAll(ctx, req.Limit(), req.Offset())
	if err != nil {
		s.log.Error("Failed to list payment history", zap.Error(err))
		return nil, err
	}

	total, err := s.repo.Booking.CountAll(ctx)
	if err != nil {
		return nil, err
	}

	bookingResponses := make([]response.BookingResponse, len(details))
	for i, detail := range details {
		bookingResponses[i] = response.BookingDetailToResponse(detail)
	}

	return response.NewPaginatedResponse(bookingResponses, req.Page, req.PerPage, total), nil
}

func (s *adminService) UpdatePaymentStatus(ctx context.Context, bookingID, status string) (*response.BookingResponse, error) {
	paymentStatus := entity.PaymentStatus(status)
	if !paymentStatus.Valid() {
		return nil, apperr.Validation(map[string]string{
			"payment_status": "Must be one of: pending, paid, refunded",
		})
	}

	bookingUUID, err := uuid.Parse(bookingID)
	if err != nil {
		return nil, apperr.NotFoundf("booking %s not found", bookingID)
	}

	booking, err := s.repo.Booking.FindByID(ctx, bookingUUID)
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, apperr.NotFoundf("booking %s not found", bookingID)
	}

	if err := s.repo.Booking.UpdatePaymentStatus(ctx, bookingUUID, paymentStatus); err != nil {
		s.log.Error("Failed to update payment status",
			zap.Error(err),
			zap.String("booking_id", bookingID),
			zap.String("payment_status", status),
		)
		return nil, err
	}

	s.log.Info("Payment status updated",
		zap.String("booking_id", bookingID),
		zap.String("from", string(booking.PaymentStatus)),
		zap.String("to", status))

	booking.PaymentStatus = paymentStatus
	resp := response.BookingToResponse(booking)
	return &resp, nil
}
